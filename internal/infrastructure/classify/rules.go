// Package classify maps free-form product names to LCA categories using
// an ordered rule table. The table is evaluated top to bottom, so more
// specific rules (plant milks) must precede broader ones (milk).
package classify

import (
	"strings"
	"sync"
)

// Rule matches any of its patterns as a lowercase substring of the name
type Rule struct {
	Patterns []string
	Category string
}

// DefaultFallback is the category assigned when no rule matches
const DefaultFallback = "Other"

// DefaultRules covers the categories carried by the LCA footprint sources.
// Order matters: "oat milk" must classify as Plant Milk before the "milk"
// rule sees it.
func DefaultRules() []Rule {
	return []Rule{
		{Patterns: []string{"oat milk", "soy milk", "almond milk", "rice milk", "coconut milk", "plant milk"}, Category: "Plant Milk"},
		{Patterns: []string{"beef", "steak", "hamburger"}, Category: "Beef"},
		{Patterns: []string{"chicken", "poultry", "hen"}, Category: "Chicken"},
		{Patterns: []string{"pork", "bacon", "ham", "sausage"}, Category: "Pork"},
		{Patterns: []string{"salmon", "tuna", "fish", "cod", "tilapia"}, Category: "Fish"},
		{Patterns: []string{"tofu", "tempeh"}, Category: "Tofu"},
		{Patterns: []string{"lentil", "chickpea", "bean", "legume"}, Category: "Legumes"},
		{Patterns: []string{"cheese"}, Category: "Cheese"},
		{Patterns: []string{"egg"}, Category: "Eggs"},
		{Patterns: []string{"milk"}, Category: "Milk"},
		{Patterns: []string{"bread", "wheat", "rye"}, Category: "Bread"},
		{Patterns: []string{"rice"}, Category: "Rice"},
		{Patterns: []string{"oat"}, Category: "Oatmeal"},
		{Patterns: []string{"apple", "banana", "orange", "berry", "grape"}, Category: "Fruit"},
		{Patterns: []string{"lettuce", "tomato", "onion", "carrot", "broccoli", "spinach", "vegetable"}, Category: "Vegetables"},
	}
}

// RuleClassifier is a substring-rule classifier with a lazily populated,
// concurrency-safe memoization cache. Classification is idempotent, so
// duplicate cache writes under parallel callers are harmless.
type RuleClassifier struct {
	rules    []Rule
	fallback string
	cache    sync.Map // lowercase name -> category
}

// NewRuleClassifier creates a classifier. Nil rules select DefaultRules;
// an empty fallback selects DefaultFallback.
func NewRuleClassifier(rules []Rule, fallback string) *RuleClassifier {
	if rules == nil {
		rules = DefaultRules()
	}
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &RuleClassifier{rules: rules, fallback: fallback}
}

// Classify returns the first matching rule's category, or the fallback
func (c *RuleClassifier) Classify(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return c.fallback
	}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(string)
	}

	category := c.fallback
	for _, rule := range c.rules {
		if matches(key, rule.Patterns) {
			category = rule.Category
			break
		}
	}

	c.cache.Store(key, category)
	return category
}

func matches(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// Package health assigns nutritional quality scores to products and
// baskets, loosely following Nutri-Score principles. Scores live in [0,1],
// higher is healthier.
package health

import (
	"sort"
	"strings"

	"github.com/greencart/backend/internal/domain"
)

// DefaultScore is the moderate score used when nothing is known
const DefaultScore = 0.5

// categoryScores maps LCA categories to health scores
var categoryScores = map[string]float64{
	// Meat
	"Beef":    0.4,
	"Pork":    0.5,
	"Chicken": 0.7,
	"Fish":    0.85,

	// Plant proteins
	"Tofu":    0.8,
	"Tempeh":  0.85,
	"Legumes": 0.9,
	"Beans":   0.9,
	"Nuts":    0.85,

	// Dairy
	"Milk":   0.6,
	"Cheese": 0.5,
	"Eggs":   0.65,

	// Plant milk
	"Plant Milk": 0.7,

	// Grains
	"Bread":   0.65,
	"Rice":    0.6,
	"Oatmeal": 0.85,

	// Produce
	"Vegetables": 0.9,
	"Fruit":      0.9,

	// Sweeteners
	"Sugar": 0.2,
}

// CategoryScorer scores products from a category lookup table
type CategoryScorer struct {
	scores map[string]float64
	keys   []string // sorted, for deterministic partial matching
}

// NewCategoryScorer creates a scorer. Nil scores select the built-in table.
func NewCategoryScorer(scores map[string]float64) *CategoryScorer {
	if scores == nil {
		scores = categoryScores
	}
	keys := make([]string, 0, len(scores))
	for key := range scores {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &CategoryScorer{scores: scores, keys: keys}
}

// Score returns the health score for a product. Lookup order: exact
// product id, exact category, then partial key match against the id.
func (s *CategoryScorer) Score(productID, category string) float64 {
	if score, ok := s.scores[productID]; ok {
		return score
	}
	if score, ok := s.scores[category]; ok {
		return score
	}

	idLower := strings.ToLower(productID)
	for _, key := range s.keys {
		if strings.Contains(idLower, strings.ToLower(key)) {
			return s.scores[key]
		}
	}
	return DefaultScore
}

// BasketScore returns the quantity-weighted average health score
func (s *CategoryScorer) BasketScore(items []domain.Product) float64 {
	totalWeight := 0.0
	weighted := 0.0
	for _, item := range items {
		score := item.HealthScore
		if score == 0 {
			score = s.Score(item.ID, item.Category)
		}
		weighted += score * item.Quantity
		totalWeight += item.Quantity
	}
	if totalWeight == 0 {
		return DefaultScore
	}
	return weighted / totalWeight
}

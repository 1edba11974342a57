package domain

import "strings"

// Product represents a single basket line item with its emissions profile
type Product struct {
	ID          string            `json:"product_id"`
	Name        string            `json:"name,omitempty"`
	Category    string            `json:"category,omitempty"`
	Price       float64           `json:"price"`     // unit price, USD per kg
	Quantity    float64           `json:"quantity"`  // kg-equivalent
	Emissions   float64           `json:"emissions"` // kg CO2e per kg, mean
	Variance    float64           `json:"emissions_variance,omitempty"`
	HealthScore float64           `json:"health_score,omitempty"` // 0-1, higher is healthier
	Vegetarian  bool              `json:"vegetarian"`
	Allergens   []string          `json:"allergens,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// HasAllergen reports whether the product carries the given allergen
// tag. Tags arrive from user requests, so matching folds case.
func (p Product) HasAllergen(tag string) bool {
	for _, a := range p.Allergens {
		if strings.EqualFold(a, tag) {
			return true
		}
	}
	return false
}

// Basket is an ordered sequence of products. Order matters only for
// optimization, where a position is the unit of substitution.
type Basket struct {
	ID     string    `json:"basket_id"`
	UserID string    `json:"user_id,omitempty"`
	Items  []Product `json:"items"`
}

// TotalCost returns the quantity-weighted basket cost
func (b Basket) TotalCost() float64 {
	total := 0.0
	for _, p := range b.Items {
		total += p.Price * p.Quantity
	}
	return total
}

// TotalEmissions returns the quantity-weighted basket emissions mean
func (b Basket) TotalEmissions() float64 {
	total := 0.0
	for _, p := range b.Items {
		total += p.Emissions * p.Quantity
	}
	return total
}

// Clone returns a deep enough copy for positional swaps: the item slice is
// copied so one beam state cannot mutate another's products.
func (b Basket) Clone() Basket {
	items := make([]Product, len(b.Items))
	copy(items, b.Items)
	return Basket{ID: b.ID, UserID: b.UserID, Items: items}
}

// Constraints carries the user's substitution limits. A nil MaxPriceDelta
// means "use the configured default"; a nil MaxPrice means unbounded.
type Constraints struct {
	MaxPriceDelta *float64 `json:"max_price_delta,omitempty"`
	Vegetarian    bool     `json:"vegetarian,omitempty"`
	Vegan         bool     `json:"vegan,omitempty"`
	Allergens     []string `json:"allergens,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
}

// UserContext carries the behavioral features consumed by the acceptance
// estimator. Zero values are meaningful, so callers that have no history
// should start from DefaultUserContext.
type UserContext struct {
	UserID              string  `json:"user_id,omitempty"`
	PriorAcceptanceRate float64 `json:"prior_acceptance_rate"`
	SustainabilityScore float64 `json:"sustainability_score"`
}

// DefaultUserContext returns the population priors used when nothing is
// known about the shopper.
func DefaultUserContext() UserContext {
	return UserContext{PriorAcceptanceRate: 0.3, SustainabilityScore: 0.5}
}

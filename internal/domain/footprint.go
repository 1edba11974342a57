package domain

// Footprint is a product or category emissions distribution from an LCA
// source. Looked up, never mutated, by the engine.
type Footprint struct {
	Mean     float64 `json:"mean"`     // kg CO2e per kg
	Variance float64 `json:"variance"` // kg CO2e per kg, squared
	Category string  `json:"category"`
	Source   string  `json:"source,omitempty"`
}

// Default footprint applied when a product cannot be resolved against any
// LCA source. A silent fallback, not an error: optimization must stay
// well-defined for unknown products.
const (
	DefaultFootprintMean     = 5.0
	DefaultFootprintVariance = 2.0
	UnknownCategory          = "Unknown"
)

// DefaultFootprint returns the fallback footprint for unresolvable products
func DefaultFootprint() Footprint {
	return Footprint{
		Mean:     DefaultFootprintMean,
		Variance: DefaultFootprintVariance,
		Category: UnknownCategory,
		Source:   "default",
	}
}

// ItemEmissions is the per-item contribution to a basket total
type ItemEmissions struct {
	ProductID string  `json:"product_id"`
	Emissions float64 `json:"emissions"`
	Variance  float64 `json:"variance"`
}

// BasketEmissions is the aggregated basket distribution with its
// risk-adjusted upper bound.
type BasketEmissions struct {
	Emissions float64         `json:"emissions"`
	Variance  float64         `json:"variance"`
	RACS      float64         `json:"racs"`
	Items     []ItemEmissions `json:"product_emissions,omitempty"`
}

package domain

// RankedProduct is a substitute candidate with its similarity to the
// product it would replace.
type RankedProduct struct {
	Product    Product `json:"product"`
	Similarity float64 `json:"similarity"` // 0-1
}

// SwapCandidate describes one possible substitution, as consumed by the
// optimizer. EmissionsReduction is original mean minus substitute mean and
// can be negative.
type SwapCandidate struct {
	OriginalID         string  `json:"original_product_id"`
	SubstituteID       string  `json:"substitute_product_id"`
	EmissionsReduction float64 `json:"emissions_reduction"`
	CostChange         float64 `json:"cost_change"`
	SimilarityScore    float64 `json:"similarity_score"`
	Category           string  `json:"category"`
}

// SwapRecord is a substitution that made it into the optimized basket,
// enriched with its acceptance probability by the estimator.
type SwapRecord struct {
	OriginalID         string  `json:"original_product_id"`
	SubstituteID       string  `json:"substitute_product_id"`
	EmissionsReduction float64 `json:"emissions_reduction"`
	PriceChange        float64 `json:"price_change"`
	Description        string  `json:"description"`
	SimilarityScore    float64 `json:"similarity_score,omitempty"`
	BrandChange        bool    `json:"brand_change,omitempty"`
	AcceptanceProb     float64 `json:"acceptance_prob"`
}

// SwapSimulation is the acceptance estimator's output over a swap list
type SwapSimulation struct {
	Swaps         []SwapRecord `json:"swaps"`
	BAE           float64      `json:"bae"`
	AvgAcceptance float64      `json:"avg_acceptance"`
}

// Message types understood by the acceptance estimator and the
// explanation generator.
const (
	MessageNumeric        = "numeric"
	MessageConversational = "conversational"
)

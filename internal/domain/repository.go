package domain

import "context"

// FootprintRepository is a read-only mapping from product identity or
// category to an emissions distribution. Loaded once before analysis and
// shared without locking across concurrent basket analyses.
type FootprintRepository interface {
	ByID(id string) (Footprint, bool)
	ByCategory(category string) (Footprint, bool)
	Categories() []string
}

// ProductCatalog is the read-only substitute catalog
type ProductCatalog interface {
	Product(id string) (Product, bool)
	ByCategory(category string) []Product
}

// CategoryClassifier maps a free-form product name to an LCA category.
// Implementations must be safe for concurrent use; classification is
// idempotent so duplicate cache writes are harmless.
type CategoryClassifier interface {
	Classify(name string) string
}

// HealthScorer assigns health scores in [0,1] to products and baskets
type HealthScorer interface {
	Score(productID, category string) float64
	BasketScore(items []Product) float64
}

// AcceptancePredictor maps a fixed 7-dimensional feature vector to the
// positive-class probability of a trained swap-acceptance classifier.
type AcceptancePredictor interface {
	Predict(features []float64) (float64, error)
}

// AuditLogger receives analysis events and owns their persistence
type AuditLogger interface {
	Log(ctx context.Context, event AuditEvent) error
}

// ExplanationGenerator renders a human-readable explanation of a result.
// The basket and result are opaque inputs to the generator.
type ExplanationGenerator interface {
	Generate(ctx context.Context, basket Basket, result *Result) (string, error)
}

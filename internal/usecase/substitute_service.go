package usecase

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/greencart/backend/internal/domain"
)

// Substitution families. Candidates may cross category only along these
// two groups; any other category substitutes within itself.
var (
	proteinFamily = []string{"Beef", "Chicken", "Pork", "Fish", "Tofu", "Tempeh", "Legumes"}
	milkFamily    = []string{"Milk", "Plant Milk"}
)

// Feature-vector scaling constants for similarity. Emissions and price are
// normalized against typical grocery ranges; allergen count against the
// common-allergen tag set size.
const (
	emissionsScale = 100.0
	priceScale     = 20.0
	allergenScale  = 5.0
)

// SubstituteConfig holds configuration for the substitute service
type SubstituteConfig struct {
	MaxResults int
}

// SubstituteService generates and ranks substitute candidates from the
// read-only product catalog.
type SubstituteService struct {
	catalog    domain.ProductCatalog
	maxResults int
	logger     *zap.Logger
}

// NewSubstituteService creates a substitute service with the given catalog
func NewSubstituteService(catalog domain.ProductCatalog, config SubstituteConfig, logger *zap.Logger) *SubstituteService {
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SubstituteService{
		catalog:    catalog,
		maxResults: maxResults,
		logger:     logger,
	}
}

// FindSubstitutes returns ranked candidate replacements for a product.
// Ranking is by descending emissions reduction relative to the original,
// then by descending similarity; this order, not similarity alone, decides
// which candidates the optimizer tries first. Unknown product ids yield an
// empty list.
func (s *SubstituteService) FindSubstitutes(productID string, constraints domain.Constraints, maxResults int) []domain.RankedProduct {
	original, ok := s.catalog.Product(productID)
	if !ok {
		s.logger.Debug("no substitutes for unknown product", zap.String("productID", productID))
		return nil
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var ranked []domain.RankedProduct
	for _, candidate := range s.candidates(original) {
		if candidate.ID == productID {
			continue
		}
		if !passesFilters(candidate, constraints) {
			continue
		}
		ranked = append(ranked, domain.RankedProduct{
			Product:    candidate,
			Similarity: s.Similarity(original, candidate),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ri := original.Emissions - ranked[i].Product.Emissions
		rj := original.Emissions - ranked[j].Product.Emissions
		if ri != rj {
			return ri > rj
		}
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

// SwapCandidates wraps FindSubstitutes into the optimizer's candidate view
func (s *SubstituteService) SwapCandidates(productID string, constraints domain.Constraints, maxResults int) []domain.SwapCandidate {
	original, ok := s.catalog.Product(productID)
	if !ok {
		return nil
	}

	substitutes := s.FindSubstitutes(productID, constraints, maxResults)
	candidates := make([]domain.SwapCandidate, 0, len(substitutes))
	for _, sub := range substitutes {
		candidates = append(candidates, domain.SwapCandidate{
			OriginalID:         productID,
			SubstituteID:       sub.Product.ID,
			EmissionsReduction: original.Emissions - sub.Product.Emissions,
			CostChange:         sub.Product.Price - original.Price,
			SimilarityScore:    sub.Similarity,
			Category:           sub.Product.Category,
		})
	}
	return candidates
}

// candidates unions same-category products with the original's
// substitution family, if it belongs to one.
func (s *SubstituteService) candidates(original domain.Product) []domain.Product {
	seen := make(map[string]bool)
	var result []domain.Product

	add := func(products []domain.Product) {
		for _, p := range products {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			result = append(result, p)
		}
	}

	add(s.catalog.ByCategory(original.Category))

	for _, family := range [][]string{proteinFamily, milkFamily} {
		if !containsCategory(family, original.Category) {
			continue
		}
		for _, category := range family {
			add(s.catalog.ByCategory(category))
		}
	}

	return result
}

// Similarity computes cosine similarity between two products' feature
// vectors, rescaled from [-1,1] to [0,1]. Zero-norm vectors default to 0.5.
func (s *SubstituteService) Similarity(a, b domain.Product) float64 {
	va := featureVector(a)
	vb := featureVector(b)

	dot, normA, normB := 0.0, 0.0, 0.0
	for i := range va {
		dot += va[i] * vb[i]
		normA += va[i] * va[i]
		normB += vb[i] * vb[i]
	}
	if normA == 0 || normB == 0 {
		return 0.5
	}

	cosine := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cosine + 1) / 2
}

func featureVector(p domain.Product) [5]float64 {
	vegetarian := 0.0
	if p.Vegetarian {
		vegetarian = 1.0
	}
	return [5]float64{
		p.Emissions / emissionsScale,
		p.Price / priceScale,
		p.HealthScore,
		vegetarian,
		float64(len(p.Allergens)) / allergenScale,
	}
}

// passesFilters applies the dietary, allergen and price filters to one
// candidate. The optimizer separately enforces the aggregate basket cost
// constraint.
func passesFilters(candidate domain.Product, constraints domain.Constraints) bool {
	if constraints.Vegetarian && !candidate.Vegetarian {
		return false
	}
	if constraints.Vegan {
		if !candidate.Vegetarian || candidate.HasAllergen("dairy") {
			return false
		}
	}
	for _, allergen := range constraints.Allergens {
		if candidate.HasAllergen(allergen) {
			return false
		}
	}
	if constraints.MaxPrice != nil && candidate.Price > *constraints.MaxPrice {
		return false
	}
	return true
}

func containsCategory(family []string, category string) bool {
	for _, c := range family {
		if c == category {
			return true
		}
	}
	return false
}

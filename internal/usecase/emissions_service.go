package usecase

import (
	"strings"

	"go.uber.org/zap"

	"github.com/greencart/backend/internal/domain"
	"github.com/greencart/backend/pkg/carbon"
)

// EmissionsConfig holds configuration for the emissions service
type EmissionsConfig struct {
	ConfidenceLevel float64
}

// EmissionsService resolves product footprints and aggregates basket-level
// emissions with uncertainty. Pure given its repository snapshot; safe for
// concurrent use across basket analyses.
type EmissionsService struct {
	footprints      domain.FootprintRepository
	classifier      domain.CategoryClassifier
	confidenceLevel float64
	logger          *zap.Logger
}

// NewEmissionsService creates an emissions service. A nil classifier
// disables the rule-based resolution step; a nil logger is replaced with
// a no-op logger.
func NewEmissionsService(
	footprints domain.FootprintRepository,
	classifier domain.CategoryClassifier,
	config EmissionsConfig,
	logger *zap.Logger,
) *EmissionsService {
	confidence := config.ConfidenceLevel
	if confidence <= 0 {
		confidence = 0.95
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &EmissionsService{
		footprints:      footprints,
		classifier:      classifier,
		confidenceLevel: confidence,
		logger:          logger,
	}
}

// ResolveFootprint resolves a product to an emissions distribution.
// Resolution order: exact product-id match, category substring match
// against the id and name, rule-based classification, then the fixed
// default footprint. The default is a silent fallback, not an error.
func (s *EmissionsService) ResolveFootprint(p domain.Product) domain.Footprint {
	if fp, ok := s.footprints.ByID(p.ID); ok {
		return fp
	}

	id := strings.ToLower(p.ID)
	name := strings.ToLower(p.Name)
	for _, category := range s.footprints.Categories() {
		needle := strings.ToLower(category)
		if strings.Contains(id, needle) || (name != "" && strings.Contains(name, needle)) {
			if fp, ok := s.footprints.ByCategory(category); ok {
				return fp
			}
		}
	}

	if s.classifier != nil && p.Name != "" {
		if category := s.classifier.Classify(p.Name); category != "" {
			if fp, ok := s.footprints.ByCategory(category); ok {
				return fp
			}
		}
	}

	s.logger.Debug("footprint unresolved, using default",
		zap.String("productID", p.ID),
		zap.String("name", p.Name),
	)
	return domain.DefaultFootprint()
}

// Enrich fills emissions, variance and category on every basket item from
// the footprint repository. Items that already carry an explicit category
// keep it.
func (s *EmissionsService) Enrich(basket domain.Basket) domain.Basket {
	enriched := basket.Clone()
	for i, item := range enriched.Items {
		fp := s.ResolveFootprint(item)
		enriched.Items[i].Emissions = fp.Mean
		enriched.Items[i].Variance = fp.Variance
		if enriched.Items[i].Category == "" {
			enriched.Items[i].Category = fp.Category
		}
	}
	return enriched
}

// Aggregate computes the basket emissions mean, variance, and RACS upper
// bound. Items are assumed independent, so no covariance term.
func (s *EmissionsService) Aggregate(basket domain.Basket) domain.BasketEmissions {
	result := domain.BasketEmissions{}

	for _, item := range basket.Items {
		emissions := item.Emissions * item.Quantity
		variance := item.Variance * item.Quantity * item.Quantity

		result.Emissions += emissions
		result.Variance += variance
		result.Items = append(result.Items, domain.ItemEmissions{
			ProductID: item.ID,
			Emissions: emissions,
			Variance:  variance,
		})
	}

	result.RACS = carbon.RiskAdjustedScore(result.Emissions, result.Variance, s.confidenceLevel)
	return result
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/greencart/backend/internal/domain"
	"github.com/greencart/backend/pkg/carbon"
)

// EventBasketAnalysis is the audit event type emitted after each analysis
const EventBasketAnalysis = "basket_analysis"

// CHCS parameters: basket emissions normalize against [0, 100] kg CO2e,
// weighted equally against the basket health score.
const (
	chcsLambda       = 0.5
	chcsEmissionsMin = 0.0
	chcsEmissionsMax = 100.0
)

// CheckoutConfig holds configuration for the checkout service
type CheckoutConfig struct {
	MessageType string
}

// CheckoutService orchestrates one basket analysis: enrichment, baseline
// aggregation, beam-search optimization, acceptance simulation and the
// derived decision metrics. It holds no basket-to-basket state and is safe
// to call concurrently.
type CheckoutService struct {
	emissions   *EmissionsService
	substitutes *SubstituteService
	optimizer   *OptimizerService
	acceptance  *AcceptanceService
	catalog     domain.ProductCatalog
	health      domain.HealthScorer
	audit       domain.AuditLogger
	messageType string
	logger      *zap.Logger
}

// NewCheckoutService wires the engine together. The audit logger may be
// nil, in which case no events are emitted.
func NewCheckoutService(
	emissions *EmissionsService,
	substitutes *SubstituteService,
	optimizer *OptimizerService,
	acceptance *AcceptanceService,
	catalog domain.ProductCatalog,
	health domain.HealthScorer,
	audit domain.AuditLogger,
	config CheckoutConfig,
	logger *zap.Logger,
) *CheckoutService {
	messageType := config.MessageType
	if messageType == "" {
		messageType = domain.MessageConversational
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CheckoutService{
		emissions:   emissions,
		substitutes: substitutes,
		optimizer:   optimizer,
		acceptance:  acceptance,
		catalog:     catalog,
		health:      health,
		audit:       audit,
		messageType: messageType,
		logger:      logger,
	}
}

// Analyze scores a basket and searches for lower-emission substitutions.
// Malformed basket records surface as ErrInvalidBasket; every domain edge
// case (unknown products, empty baskets, no feasible swaps) resolves to a
// well-defined Result instead of an error.
func (s *CheckoutService) Analyze(ctx context.Context, basket domain.Basket, constraints domain.Constraints, user domain.UserContext) (*domain.Result, error) {
	if err := validateBasket(basket); err != nil {
		return nil, err
	}
	if basket.ID == "" {
		basket.ID = ulid.Make().String()
	}

	enriched := s.enrich(basket)
	baseline := s.emissions.Aggregate(enriched)

	optimization, err := s.optimizer.Optimize(ctx, enriched, constraints)
	if err != nil {
		return nil, err
	}

	swaps := s.extractSwaps(enriched, optimization.Basket)
	simulation := s.acceptance.Simulate(swaps, user, s.messageType)

	healthScore := s.health.BasketScore(enriched.Items)
	chcs := carbon.CompositeHealthScore(
		carbon.NormalizeEmissions(baseline.Emissions, chcsEmissionsMin, chcsEmissionsMax),
		healthScore, chcsLambda)

	result := &domain.Result{
		BasketID:           basket.ID,
		Emissions:          baseline.Emissions,
		EmissionsOptimized: optimization.Emissions,
		COG:                optimization.COG,
		COGRatio:           optimization.COGRatio,
		BAE:                simulation.BAE,
		RACS:               baseline.RACS,
		MACBasket:          optimization.MACBasket,
		HealthScore:        healthScore,
		CHCS:               chcs,
		CostOriginal:       enriched.TotalCost(),
		CostOptimized:      optimization.Cost,
		Swaps:              simulation.Swaps,
		AcceptanceRate:     simulation.AvgAcceptance,
	}

	s.emitAudit(ctx, basket.ID, baseline, result)

	s.logger.Info("basket analyzed",
		zap.String("basketID", basket.ID),
		zap.Int("items", len(basket.Items)),
		zap.Float64("emissions", result.Emissions),
		zap.Float64("cogRatio", result.COGRatio),
		zap.Int("swaps", len(result.Swaps)),
	)
	return result, nil
}

// validateBasket rejects records missing required fields. These indicate a
// contract violation at the ingestion boundary, not a domain edge case.
func validateBasket(basket domain.Basket) error {
	for i, item := range basket.Items {
		if item.ID == "" {
			return fmt.Errorf("%w: item %d has no product_id", domain.ErrInvalidBasket, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d (%s) has non-positive quantity", domain.ErrInvalidBasket, i, item.ID)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: item %d (%s) has negative price", domain.ErrInvalidBasket, i, item.ID)
		}
	}
	return nil
}

// enrich merges catalog master data into the basket, then resolves
// footprints and health scores. Basket-supplied price and quantity win
// over catalog values.
func (s *CheckoutService) enrich(basket domain.Basket) domain.Basket {
	merged := basket.Clone()
	for i, item := range merged.Items {
		if product, ok := s.catalog.Product(item.ID); ok {
			if item.Name == "" {
				merged.Items[i].Name = product.Name
			}
			merged.Items[i].Category = product.Category
			merged.Items[i].HealthScore = product.HealthScore
			merged.Items[i].Vegetarian = product.Vegetarian
			merged.Items[i].Allergens = product.Allergens
		}
	}

	enriched := s.emissions.Enrich(merged)
	for i, item := range enriched.Items {
		if item.HealthScore == 0 {
			enriched.Items[i].HealthScore = s.health.Score(item.ID, item.Category)
		}
	}
	return enriched
}

// extractSwaps reads the substitutions out of the optimized basket by
// positional comparison with the original.
func (s *CheckoutService) extractSwaps(original, optimized domain.Basket) []domain.SwapRecord {
	var swaps []domain.SwapRecord
	for i := range original.Items {
		if i >= len(optimized.Items) {
			break
		}
		orig := original.Items[i]
		sub := optimized.Items[i]
		if orig.ID == sub.ID {
			continue
		}
		swaps = append(swaps, domain.SwapRecord{
			OriginalID:         orig.ID,
			SubstituteID:       sub.ID,
			EmissionsReduction: orig.Emissions - sub.Emissions,
			PriceChange:        (sub.Price - orig.Price) * orig.Quantity,
			Description:        fmt.Sprintf("Swap %s for %s", displayName(orig), displayName(sub)),
			SimilarityScore:    s.substitutes.Similarity(orig, sub),
		})
	}
	return swaps
}

func (s *CheckoutService) emitAudit(ctx context.Context, basketID string, baseline domain.BasketEmissions, result *domain.Result) {
	if s.audit == nil {
		return
	}
	event := domain.AuditEvent{
		ID:        ulid.Make().String(),
		EventType: EventBasketAnalysis,
		Timestamp: time.Now().UTC(),
		BasketID:  basketID,
		Emissions: baseline,
		Result:    result,
	}
	if err := s.audit.Log(ctx, event); err != nil {
		// Audit persistence is the collaborator's concern; an analysis
		// never fails because its event could not be stored.
		s.logger.Warn("audit log failed", zap.String("basketID", basketID), zap.Error(err))
	}
}

func displayName(p domain.Product) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/greencart/backend/internal/domain"
	"github.com/greencart/backend/pkg/carbon"
)

// OptimizerConfig holds the beam search parameters and objective weights
type OptimizerConfig struct {
	BeamWidth           int
	MaxPriceDelta       float64
	MaxSubstitutes      int
	WeightEmissions     float64
	WeightCost          float64
	WeightDissimilarity float64
	WeightHealth        float64
}

// OptimizationResult is the terminal state of one beam search
type OptimizationResult struct {
	Basket    domain.Basket `json:"optimized_basket"`
	Emissions float64       `json:"emissions"`
	Cost      float64       `json:"cost"`
	COG       float64       `json:"cog"`
	COGRatio  float64       `json:"cog_ratio"`
	MACBasket float64       `json:"mac_basket"`
}

// beamState is a candidate full basket and its objective value, created
// and discarded entirely within one Optimize call.
type beamState struct {
	items []domain.Product
	score float64
}

// OptimizerService runs a constrained beam search over single-position
// substitutions to minimize the weighted objective
// J = alpha*E + beta*C + gamma*D + delta*(1-H).
type OptimizerService struct {
	substitutes *SubstituteService
	catalog     domain.ProductCatalog
	config      OptimizerConfig
	logger      *zap.Logger
}

// NewOptimizerService creates an optimizer. Zero beam width, price delta
// and candidate limit fall back to defaults; each unset weight falls back
// independently to (1.0, 0.1, 0.5, 0.3).
func NewOptimizerService(
	substitutes *SubstituteService,
	catalog domain.ProductCatalog,
	config OptimizerConfig,
	logger *zap.Logger,
) *OptimizerService {
	if config.BeamWidth <= 0 {
		config.BeamWidth = 10
	}
	if config.MaxPriceDelta <= 0 {
		config.MaxPriceDelta = 0.03
	}
	if config.MaxSubstitutes <= 0 {
		config.MaxSubstitutes = 10
	}
	if config.WeightEmissions <= 0 {
		config.WeightEmissions = 1.0
	}
	if config.WeightCost <= 0 {
		config.WeightCost = 0.1
	}
	if config.WeightDissimilarity <= 0 {
		config.WeightDissimilarity = 0.5
	}
	if config.WeightHealth <= 0 {
		config.WeightHealth = 0.3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OptimizerService{
		substitutes: substitutes,
		catalog:     catalog,
		config:      config,
		logger:      logger,
	}
}

// Optimize runs the beam search over the basket. The basket must already
// carry emissions data on every item. Candidate generation at each
// position is keyed by the product that occupied that position in the
// original basket, even when a beam state already holds a substitute
// there: a position is swapped at most once.
func (s *OptimizerService) Optimize(ctx context.Context, basket domain.Basket, constraints domain.Constraints) (*OptimizationResult, error) {
	original := basket.Items
	originalCost := basket.TotalCost()

	beam := []beamState{{
		items: basket.Clone().Items,
		score: s.objective(original, original),
	}}

	for idx := range original {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		candidates := s.substitutes.SwapCandidates(original[idx].ID, constraints, s.config.MaxSubstitutes)

		var next []beamState
		for _, state := range beam {
			for _, candidate := range candidates {
				swapped, err := s.applySwap(state.items, idx, candidate)
				if err != nil {
					return nil, err
				}
				if !s.satisfiesConstraints(swapped, originalCost, constraints) {
					continue
				}
				next = append(next, beamState{
					items: swapped,
					score: s.objective(swapped, original),
				})
			}
			// A position with no substitutes carries the state forward
			// unmodified. A position whose candidates were all filtered
			// out drops the state instead.
			if len(candidates) == 0 {
				next = append(next, state)
			}
		}

		if len(next) > 0 {
			sort.SliceStable(next, func(i, j int) bool { return next[i].score < next[j].score })
			if len(next) > s.config.BeamWidth {
				next = next[:s.config.BeamWidth]
			}
			beam = next
		}
		// Every candidate at this position was infeasible for every
		// state: retain the pre-position beam rather than starving.
	}

	optimized := basket.Clone()
	if len(beam) > 0 {
		optimized.Items = beam[0].items
	}

	result := s.buildResult(basket, optimized)
	s.logger.Debug("beam search finished",
		zap.String("basketID", basket.ID),
		zap.Int("beamSize", len(beam)),
		zap.Float64("cog", result.COG),
		zap.Float64("cogRatio", result.COGRatio),
	)
	return result, nil
}

func (s *OptimizerService) buildResult(original, optimized domain.Basket) *OptimizationResult {
	originalEmissions := original.TotalEmissions()
	optimizedEmissions := optimized.TotalEmissions()
	originalCost := original.TotalCost()
	optimizedCost := optimized.TotalCost()

	cog, cogRatio := carbon.OpportunityGap(originalEmissions, optimizedEmissions)

	return &OptimizationResult{
		Basket:    optimized,
		Emissions: optimizedEmissions,
		Cost:      optimizedCost,
		COG:       cog,
		COGRatio:  cogRatio,
		MACBasket: carbon.MarginalAbatementCost(originalCost, optimizedCost, originalEmissions, optimizedEmissions),
	}
}

// applySwap replaces a single position with the full substitute product,
// preserving the original quantity. A candidate the catalog cannot resolve
// is a contract violation, not a domain edge case.
func (s *OptimizerService) applySwap(items []domain.Product, idx int, candidate domain.SwapCandidate) ([]domain.Product, error) {
	substitute, ok := s.catalog.Product(candidate.SubstituteID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSubstituteNotFound, candidate.SubstituteID)
	}

	swapped := make([]domain.Product, len(items))
	copy(swapped, items)

	substitute.Quantity = items[idx].Quantity
	swapped[idx] = substitute
	return swapped, nil
}

// satisfiesConstraints checks a full candidate basket against the
// original basket's cost baseline. Dietary and allergen rules are
// enforced per candidate at generation time; only the aggregate price
// constraint needs the whole basket.
func (s *OptimizerService) satisfiesConstraints(items []domain.Product, originalCost float64, constraints domain.Constraints) bool {
	// Price constraint is skipped, not violated, for a zero-cost baseline.
	if originalCost <= 0 {
		return true
	}

	maxDelta := s.config.MaxPriceDelta
	if constraints.MaxPriceDelta != nil {
		maxDelta = *constraints.MaxPriceDelta
	}
	cost := 0.0
	for _, item := range items {
		cost += item.Price * item.Quantity
	}
	ratio := (cost - originalCost) / originalCost
	if ratio < 0 {
		ratio = -ratio
	}
	return ratio <= maxDelta
}

// objective computes J over a full basket against the original.
// Dissimilarity is the basket-size-normalized sum of (1 - similarity)
// over positions that differ.
func (s *OptimizerService) objective(items, original []domain.Product) float64 {
	emissions := 0.0
	cost := 0.0
	healthSum := 0.0
	for _, item := range items {
		emissions += item.Emissions * item.Quantity
		cost += item.Price * item.Quantity
		healthSum += item.HealthScore
	}

	health := 0.5
	if len(items) > 0 {
		health = healthSum / float64(len(items))
	}

	return s.config.WeightEmissions*emissions +
		s.config.WeightCost*cost +
		s.config.WeightDissimilarity*s.dissimilarity(items, original) +
		s.config.WeightHealth*(1-health)
}

func (s *OptimizerService) dissimilarity(items, original []domain.Product) float64 {
	// Length mismatch cannot occur within one run, since only
	// single-position swaps are applied; treat it as maximally dissimilar.
	if len(items) != len(original) {
		return 1.0
	}
	if len(items) == 0 {
		return 0.0
	}

	total := 0.0
	for i := range items {
		if items[i].ID == original[i].ID {
			continue
		}
		total += 1.0 - s.substitutes.Similarity(original[i], items[i])
	}
	return total / float64(len(items))
}

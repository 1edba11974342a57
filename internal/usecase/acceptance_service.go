package usecase

import (
	"go.uber.org/zap"

	"github.com/greencart/backend/internal/domain"
	"github.com/greencart/backend/pkg/carbon"
)

// Heuristic base acceptance rates by message type, used when no trained
// predictor is available.
const (
	baseRateNumeric        = 0.17
	baseRateConversational = 0.36

	priceIncreasePenalty = 0.8
	largeReductionBonus  = 1.2
	largeReductionCutoff = 5.0
)

// AcceptanceService maps proposed swaps to acceptance probabilities and
// discounts emissions savings into an expected, behavior-adjusted value.
type AcceptanceService struct {
	predictor domain.AcceptancePredictor // nil enables the heuristic path
	logger    *zap.Logger
}

// NewAcceptanceService creates an acceptance service. A nil predictor is
// valid and selects the heuristic fallback for every prediction.
func NewAcceptanceService(predictor domain.AcceptancePredictor, logger *zap.Logger) *AcceptanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcceptanceService{predictor: predictor, logger: logger}
}

// Predict returns the probability that the user accepts a swap
func (s *AcceptanceService) Predict(swap domain.SwapRecord, user domain.UserContext, messageType string) float64 {
	if s.predictor == nil {
		return s.heuristic(swap, messageType)
	}

	prob, err := s.predictor.Predict(features(swap, user, messageType))
	if err != nil {
		s.logger.Warn("acceptance predictor failed, using heuristic",
			zap.String("substituteID", swap.SubstituteID),
			zap.Error(err),
		)
		return s.heuristic(swap, messageType)
	}
	return carbon.Clip(prob, 0, 1)
}

// Simulate enriches every swap with its acceptance probability and
// returns the behavior-adjusted emissions total plus the mean acceptance
// rate, which is 0.0 for an empty swap list.
func (s *AcceptanceService) Simulate(swaps []domain.SwapRecord, user domain.UserContext, messageType string) domain.SwapSimulation {
	enriched := make([]domain.SwapRecord, 0, len(swaps))
	accepted := make([]carbon.AcceptedSwap, 0, len(swaps))
	probSum := 0.0

	for _, swap := range swaps {
		prob := s.Predict(swap, user, messageType)
		swap.AcceptanceProb = prob
		enriched = append(enriched, swap)
		accepted = append(accepted, carbon.AcceptedSwap{
			AcceptanceProb:     prob,
			EmissionsReduction: swap.EmissionsReduction,
		})
		probSum += prob
	}

	avg := 0.0
	if len(enriched) > 0 {
		avg = probSum / float64(len(enriched))
	}

	return domain.SwapSimulation{
		Swaps:         enriched,
		BAE:           carbon.BehaviorAdjustedEmissions(accepted),
		AvgAcceptance: avg,
	}
}

// features builds the fixed 7-dimensional vector the trained classifier
// was fitted on. Order matters and must not change without retraining.
func features(swap domain.SwapRecord, user domain.UserContext, messageType string) []float64 {
	brandChange := 0.0
	if swap.BrandChange {
		brandChange = 1.0
	}
	conversational := 0.0
	if messageType == domain.MessageConversational {
		conversational = 1.0
	}
	return []float64{
		swap.PriceChange,
		swap.EmissionsReduction,
		swap.SimilarityScore,
		brandChange,
		user.PriorAcceptanceRate,
		user.SustainabilityScore,
		conversational,
	}
}

func (s *AcceptanceService) heuristic(swap domain.SwapRecord, messageType string) float64 {
	rate := baseRateConversational
	if messageType == domain.MessageNumeric {
		rate = baseRateNumeric
	}
	if swap.PriceChange > 0 {
		rate *= priceIncreasePenalty
	}
	if swap.EmissionsReduction > largeReductionCutoff {
		rate *= largeReductionBonus
	}
	return carbon.Clip(rate, 0, 1)
}

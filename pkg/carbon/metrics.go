// Package carbon implements the basket-level decision metrics: COG, BAE,
// RACS, MAC, RPE and CHCS. Every function is pure; domain edge cases come
// back as sentinel values (0, +Inf), never as errors.
package carbon

import "math"

// zScores maps a confidence level to its one-sided normal quantile.
// Unknown levels fall back to the 95% value.
var zScores = map[float64]float64{
	0.90: 1.645,
	0.95: 1.96,
	0.99: 2.576,
}

// ZScore returns the z value for a confidence level, defaulting to 1.96
func ZScore(confidence float64) float64 {
	if z, ok := zScores[confidence]; ok {
		return z
	}
	return zScores[0.95]
}

// OpportunityGap computes the Carbon Opportunity Gap and its ratio.
// The ratio is 0 when the original emissions are 0.
func OpportunityGap(emissionsOriginal, emissionsOptimized float64) (cog, ratio float64) {
	cog = emissionsOriginal - emissionsOptimized
	if emissionsOriginal > 0 {
		ratio = cog / emissionsOriginal
	}
	return cog, ratio
}

// AcceptedSwap pairs an acceptance probability with the emissions
// reduction the swap would deliver.
type AcceptedSwap struct {
	AcceptanceProb     float64
	EmissionsReduction float64
}

// BehaviorAdjustedEmissions computes BAE = sum of p_s * deltaE_s
func BehaviorAdjustedEmissions(swaps []AcceptedSwap) float64 {
	bae := 0.0
	for _, s := range swaps {
		bae += s.AcceptanceProb * s.EmissionsReduction
	}
	return bae
}

// RiskAdjustedScore computes RACS_alpha = mean + z_alpha * sqrt(variance)
func RiskAdjustedScore(mean, variance, confidence float64) float64 {
	return mean + ZScore(confidence)*math.Sqrt(variance)
}

// MarginalAbatementCost computes the cost per unit of emissions avoided.
// Returns +Inf when the emissions reduction is zero or negative.
func MarginalAbatementCost(costOriginal, costOptimized, emissionsOriginal, emissionsOptimized float64) float64 {
	reduction := emissionsOriginal - emissionsOptimized
	if reduction <= 0 {
		return math.Inf(1)
	}
	return (costOptimized - costOriginal) / reduction
}

// ItemEmission is one product's emissions for frequency weighting
type ItemEmission struct {
	ProductID string
	Emissions float64
}

// RecurringPurchaseEmissions computes RPE over a purchase-frequency table.
// Products missing from the table default to a frequency of 1.0.
func RecurringPurchaseEmissions(items []ItemEmission, frequencies map[string]float64) float64 {
	rpe := 0.0
	for _, item := range items {
		freq, ok := frequencies[item.ProductID]
		if !ok {
			freq = 1.0
		}
		rpe += freq * item.Emissions
	}
	return rpe
}

// CompositeHealthScore computes CHCS = lambda*(1 - eNorm) + (1-lambda)*health
func CompositeHealthScore(emissionsNormalized, healthScore, lambda float64) float64 {
	return lambda*(1-emissionsNormalized) + (1-lambda)*healthScore
}

// NormalizeEmissions maps emissions into [0,1] against reference bounds,
// clipping out-of-range values. Degenerate bounds normalize to 0.
func NormalizeEmissions(emissions, referenceMin, referenceMax float64) float64 {
	if referenceMax <= referenceMin {
		return 0.0
	}
	norm := (emissions - referenceMin) / (referenceMax - referenceMin)
	return Clip(norm, 0, 1)
}

// Clip bounds v to [lo, hi]
func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package acceptance provides the trained swap-acceptance predictor. The
// model is consumed, never trained, here: coefficients come from an
// offline training pipeline and are loaded from a YAML file.
package acceptance

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/greencart/backend/internal/domain"
)

// FeatureCount is the fixed dimensionality of the acceptance feature
// vector: price_change, emissions_reduction, similarity_score,
// brand_change, prior_acceptance_rate, sustainability_score and the
// message-type indicator.
const FeatureCount = 7

// LogisticModel scores the feature vector with a trained logistic
// regression: sigmoid(w . x + b).
type LogisticModel struct {
	weights []float64
	bias    float64
}

// NewLogisticModel creates a model from explicit coefficients
func NewLogisticModel(weights []float64, bias float64) (*LogisticModel, error) {
	if len(weights) != FeatureCount {
		return nil, fmt.Errorf("%w: expected %d weights, got %d", domain.ErrInvalidModel, FeatureCount, len(weights))
	}
	w := make([]float64, FeatureCount)
	copy(w, weights)
	return &LogisticModel{weights: w, bias: bias}, nil
}

// modelFile is the on-disk coefficient schema
type modelFile struct {
	Weights []float64 `yaml:"weights"`
	Bias    float64   `yaml:"bias"`
}

// LoadModel reads trained coefficients from a YAML file
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading acceptance model: %w", err)
	}

	var file modelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidModel, err)
	}

	return NewLogisticModel(file.Weights, file.Bias)
}

// Predict returns the positive-class probability for a feature vector
func (m *LogisticModel) Predict(features []float64) (float64, error) {
	if len(features) != FeatureCount {
		return 0, fmt.Errorf("%w: expected %d features, got %d", domain.ErrInvalidModel, FeatureCount, len(features))
	}

	z := m.bias
	for i, w := range m.weights {
		z += w * features[i]
	}
	return 1.0 / (1.0 + math.Exp(-z)), nil
}

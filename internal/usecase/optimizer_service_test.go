package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/greencart/backend/internal/domain"
)

func newTestOptimizer(cat domain.ProductCatalog, config OptimizerConfig) *OptimizerService {
	substitutes := NewSubstituteService(cat, SubstituteConfig{}, nil)
	return NewOptimizerService(substitutes, cat, config, nil)
}

// enrichedItem pulls a catalog product into a basket position
func enrichedItem(cat domain.ProductCatalog, id string, quantity float64) domain.Product {
	p, ok := cat.Product(id)
	if !ok {
		panic("unknown test product " + id)
	}
	p.Quantity = quantity
	return p
}

func TestOptimize(t *testing.T) {
	cat := testCatalog()

	t.Run("swaps a high-emission item when price allows", func(t *testing.T) {
		optimizer := newTestOptimizer(cat, OptimizerConfig{MaxPriceDelta: 1.0})
		basket := domain.Basket{ID: "b1", Items: []domain.Product{
			enrichedItem(cat, "beef_001", 1),
		}}

		result, err := optimizer.Optimize(context.Background(), basket, domain.Constraints{})
		if err != nil {
			t.Fatalf("Optimize() error = %v", err)
		}

		if result.COGRatio <= 0 {
			t.Errorf("COGRatio = %f, want positive for swappable beef", result.COGRatio)
		}
		if result.Basket.Items[0].ID == "beef_001" {
			t.Error("expected beef_001 to be swapped")
		}
		if result.Emissions >= basket.TotalEmissions() {
			t.Errorf("optimized emissions %f not below original %f", result.Emissions, basket.TotalEmissions())
		}
	})

	t.Run("tight price delta blocks cheaper-emission swaps", func(t *testing.T) {
		// Every beef substitute changes basket cost by far more than 0.1%.
		optimizer := newTestOptimizer(cat, OptimizerConfig{MaxPriceDelta: 0.001})
		basket := domain.Basket{Items: []domain.Product{
			enrichedItem(cat, "beef_001", 1),
		}}

		result, err := optimizer.Optimize(context.Background(), basket, domain.Constraints{})
		if err != nil {
			t.Fatalf("Optimize() error = %v", err)
		}

		if result.Basket.Items[0].ID != "beef_001" {
			t.Errorf("item swapped to %s despite tight price constraint", result.Basket.Items[0].ID)
		}
		if result.COG != 0 {
			t.Errorf("COG = %f, want 0 when nothing swaps", result.COG)
		}
		if !math.IsInf(result.MACBasket, 1) {
			t.Errorf("MACBasket = %f, want +Inf when reduction is zero", result.MACBasket)
		}
	})

	t.Run("request constraint overrides configured price delta", func(t *testing.T) {
		optimizer := newTestOptimizer(cat, OptimizerConfig{MaxPriceDelta: 0.001})
		delta := 1.0
		basket := domain.Basket{Items: []domain.Product{
			enrichedItem(cat, "beef_001", 1),
		}}

		result, err := optimizer.Optimize(context.Background(), basket, domain.Constraints{MaxPriceDelta: &delta})
		if err != nil {
			t.Fatalf("Optimize() error = %v", err)
		}

		if result.Basket.Items[0].ID == "beef_001" {
			t.Error("expected swap under the per-request price delta")
		}
	})

	t.Run("never increases emissions", func(t *testing.T) {
		optimizer := newTestOptimizer(cat, OptimizerConfig{MaxPriceDelta: 1.0})
		baskets := []domain.Basket{
			{Items: []domain.Product{enrichedItem(cat, "beans_001", 2)}},
			{Items: []domain.Product{enrichedItem(cat, "beef_001", 1), enrichedItem(cat, "milk_001", 3)}},
			{Items: []domain.Product{enrichedItem(cat, "oat_milk_001", 1)}},
		}

		for _, basket := range baskets {
			result, err := optimizer.Optimize(context.Background(), basket, domain.Constraints{})
			if err != nil {
				t.Fatalf("Optimize() error = %v", err)
			}
			if result.Emissions > basket.TotalEmissions()+1e-9 {
				t.Errorf("optimized emissions %f above original %f", result.Emissions, basket.TotalEmissions())
			}
		}
	})

	t.Run("positions without substitutes carry forward", func(t *testing.T) {
		optimizer := newTestOptimizer(cat, OptimizerConfig{MaxPriceDelta: 1.0})
		basket := domain.Basket{Items: []domain.Product{
			{ID: "sku-unknown", Name: "Mystery", Price: 2.0, Quantity: 1, Emissions: 5.0},
			enrichedItem(cat, "beef_001", 1),
		}}

		result, err := optimizer.Optimize(context.Background(), basket, domain.Constraints{})
		if err != nil {
			t.Fatalf("Optimize() error = %v", err)
		}

		if result.Basket.Items[0].ID != "sku-unknown" {
			t.Errorf("unknown item replaced by %s", result.Basket.Items[0].ID)
		}
		if result.Basket.Items[1].ID == "beef_001" {
			t.Error("expected known item still swapped alongside the unknown one")
		}
	})

	t.Run("swap preserves original quantity", func(t *testing.T) {
		optimizer := newTestOptimizer(cat, OptimizerConfig{MaxPriceDelta: 1.0})
		basket := domain.Basket{Items: []domain.Product{
			enrichedItem(cat, "beef_001", 3),
		}}

		result, err := optimizer.Optimize(context.Background(), basket, domain.Constraints{})
		if err != nil {
			t.Fatalf("Optimize() error = %v", err)
		}

		if result.Basket.Items[0].Quantity != 3 {
			t.Errorf("Quantity = %f, want 3 preserved across swap", result.Basket.Items[0].Quantity)
		}
	})

	t.Run("empty basket returns zeroed result", func(t *testing.T) {
		optimizer := newTestOptimizer(cat, OptimizerConfig{})

		result, err := optimizer.Optimize(context.Background(), domain.Basket{}, domain.Constraints{})
		if err != nil {
			t.Fatalf("Optimize() error = %v", err)
		}

		if result.Emissions != 0 || result.COG != 0 || result.COGRatio != 0 {
			t.Errorf("got (%f, %f, %f), want zeros", result.Emissions, result.COG, result.COGRatio)
		}
	})

	t.Run("zero-cost basket skips the price constraint", func(t *testing.T) {
		freeCat := newFakeCatalog(
			domain.Product{ID: "promo_beef", Category: "Beef", Emissions: 60.0, Price: 0},
			domain.Product{ID: "tofu_001", Category: "Tofu", Emissions: 2.0, Price: 3.99, Vegetarian: true},
		)
		optimizer := newTestOptimizer(freeCat, OptimizerConfig{})
		basket := domain.Basket{Items: []domain.Product{
			enrichedItem(freeCat, "promo_beef", 1),
		}}

		result, err := optimizer.Optimize(context.Background(), basket, domain.Constraints{})
		if err != nil {
			t.Fatalf("Optimize() error = %v", err)
		}

		if result.Basket.Items[0].ID != "tofu_001" {
			t.Errorf("item = %s, want tofu_001 despite any price change", result.Basket.Items[0].ID)
		}
	})

	t.Run("cancelled context stops the search", func(t *testing.T) {
		optimizer := newTestOptimizer(cat, OptimizerConfig{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		basket := domain.Basket{Items: []domain.Product{
			enrichedItem(cat, "beef_001", 1),
		}}

		_, err := optimizer.Optimize(ctx, basket, domain.Constraints{})
		if err != context.Canceled {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("beam width one still finds the greedy optimum", func(t *testing.T) {
		optimizer := newTestOptimizer(cat, OptimizerConfig{BeamWidth: 1, MaxPriceDelta: 1.0})
		basket := domain.Basket{Items: []domain.Product{
			enrichedItem(cat, "beef_001", 1),
			enrichedItem(cat, "milk_001", 1),
		}}

		result, err := optimizer.Optimize(context.Background(), basket, domain.Constraints{})
		if err != nil {
			t.Fatalf("Optimize() error = %v", err)
		}

		if result.Emissions >= basket.TotalEmissions() {
			t.Errorf("optimized emissions %f not below original %f", result.Emissions, basket.TotalEmissions())
		}
	})
}

func TestOptimizerDefaults(t *testing.T) {
	optimizer := newTestOptimizer(testCatalog(), OptimizerConfig{})

	if optimizer.config.BeamWidth != 10 {
		t.Errorf("BeamWidth = %d, want 10", optimizer.config.BeamWidth)
	}
	if optimizer.config.MaxPriceDelta != 0.03 {
		t.Errorf("MaxPriceDelta = %f, want 0.03", optimizer.config.MaxPriceDelta)
	}
	if optimizer.config.WeightEmissions != 1.0 || optimizer.config.WeightCost != 0.1 ||
		optimizer.config.WeightDissimilarity != 0.5 || optimizer.config.WeightHealth != 0.3 {
		t.Errorf("weights = (%f, %f, %f, %f), want (1.0, 0.1, 0.5, 0.3)",
			optimizer.config.WeightEmissions, optimizer.config.WeightCost,
			optimizer.config.WeightDissimilarity, optimizer.config.WeightHealth)
	}

	t.Run("each weight defaults independently", func(t *testing.T) {
		custom := newTestOptimizer(testCatalog(), OptimizerConfig{WeightEmissions: 2.0})
		if custom.config.WeightEmissions != 2.0 {
			t.Errorf("WeightEmissions = %f, want 2.0", custom.config.WeightEmissions)
		}
		if custom.config.WeightCost != 0.1 {
			t.Errorf("WeightCost = %f, want default 0.1 when unset", custom.config.WeightCost)
		}
		if custom.config.WeightDissimilarity != 0.5 {
			t.Errorf("WeightDissimilarity = %f, want default 0.5 when unset", custom.config.WeightDissimilarity)
		}
		if custom.config.WeightHealth != 0.3 {
			t.Errorf("WeightHealth = %f, want default 0.3 when unset", custom.config.WeightHealth)
		}
	})
}

func TestDissimilarity(t *testing.T) {
	optimizer := newTestOptimizer(testCatalog(), OptimizerConfig{})

	a := domain.Product{ID: "a", Emissions: 5, Price: 5, HealthScore: 0.5}
	b := domain.Product{ID: "b", Emissions: 6, Price: 5, HealthScore: 0.5}

	t.Run("identical baskets are zero", func(t *testing.T) {
		if d := optimizer.dissimilarity([]domain.Product{a, b}, []domain.Product{a, b}); d != 0 {
			t.Errorf("dissimilarity = %f, want 0", d)
		}
	})

	t.Run("length mismatch is maximal", func(t *testing.T) {
		if d := optimizer.dissimilarity([]domain.Product{a}, []domain.Product{a, b}); d != 1.0 {
			t.Errorf("dissimilarity = %f, want 1.0", d)
		}
	})

	t.Run("normalized by basket size", func(t *testing.T) {
		one := optimizer.dissimilarity([]domain.Product{b}, []domain.Product{a})
		half := optimizer.dissimilarity([]domain.Product{b, a}, []domain.Product{a, a})
		if math.Abs(half-one/2) > 1e-9 {
			t.Errorf("two-item dissimilarity = %f, want half of %f", half, one)
		}
	})
}

package usecase

import (
	"testing"

	"github.com/greencart/backend/internal/domain"
)

// fakeCatalog is a map-backed product catalog for tests
type fakeCatalog struct {
	products   map[string]domain.Product
	byCategory map[string][]string
}

func newFakeCatalog(products ...domain.Product) *fakeCatalog {
	c := &fakeCatalog{
		products:   make(map[string]domain.Product),
		byCategory: make(map[string][]string),
	}
	for _, p := range products {
		c.products[p.ID] = p
		c.byCategory[p.Category] = append(c.byCategory[p.Category], p.ID)
	}
	return c
}

func (c *fakeCatalog) Product(id string) (domain.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

func (c *fakeCatalog) ByCategory(category string) []domain.Product {
	var result []domain.Product
	for _, id := range c.byCategory[category] {
		result = append(result, c.products[id])
	}
	return result
}

func testCatalog() *fakeCatalog {
	return newFakeCatalog(
		domain.Product{ID: "beef_001", Name: "Ground Beef", Category: "Beef", Emissions: 60.0, Price: 8.99, HealthScore: 0.4},
		domain.Product{ID: "chicken_001", Name: "Chicken Breast", Category: "Chicken", Emissions: 6.9, Price: 6.99, HealthScore: 0.7},
		domain.Product{ID: "tofu_001", Name: "Firm Tofu", Category: "Tofu", Emissions: 2.0, Price: 3.99, HealthScore: 0.8, Vegetarian: true, Allergens: []string{"soy"}},
		domain.Product{ID: "beans_001", Name: "Black Beans", Category: "Legumes", Emissions: 0.9, Price: 1.99, HealthScore: 0.9, Vegetarian: true},
		domain.Product{ID: "milk_001", Name: "Whole Milk", Category: "Milk", Emissions: 3.2, Price: 3.49, HealthScore: 0.6, Vegetarian: true, Allergens: []string{"dairy"}},
		domain.Product{ID: "oat_milk_001", Name: "Oat Milk", Category: "Plant Milk", Emissions: 0.9, Price: 4.49, HealthScore: 0.7, Vegetarian: true},
		domain.Product{ID: "cheese_001", Name: "Cheddar", Category: "Cheese", Emissions: 21.0, Price: 5.99, HealthScore: 0.5, Vegetarian: true, Allergens: []string{"dairy"}},
		domain.Product{ID: "cheese_002", Name: "Mozzarella", Category: "Cheese", Emissions: 19.0, Price: 5.49, HealthScore: 0.5, Vegetarian: true, Allergens: []string{"dairy"}},
	)
}

func TestFindSubstitutes(t *testing.T) {
	service := NewSubstituteService(testCatalog(), SubstituteConfig{}, nil)

	t.Run("beef crosses the protein family", func(t *testing.T) {
		subs := service.FindSubstitutes("beef_001", domain.Constraints{}, 0)

		if len(subs) == 0 {
			t.Fatal("expected substitutes for beef_001")
		}
		// Ranking is by descending emissions reduction
		if subs[0].Product.ID != "beans_001" {
			t.Errorf("top substitute = %s, want beans_001 (largest reduction)", subs[0].Product.ID)
		}
		for i := 1; i < len(subs); i++ {
			prev := 60.0 - subs[i-1].Product.Emissions
			cur := 60.0 - subs[i].Product.Emissions
			if cur > prev {
				t.Errorf("ranking not monotone at %d: %f > %f", i, cur, prev)
			}
		}
		for _, sub := range subs {
			if sub.Product.Category == "Milk" || sub.Product.Category == "Plant Milk" {
				t.Errorf("protein substitute crossed into milk family: %s", sub.Product.ID)
			}
		}
	})

	t.Run("milk crosses only the milk family", func(t *testing.T) {
		subs := service.FindSubstitutes("milk_001", domain.Constraints{}, 0)

		if len(subs) != 1 || subs[0].Product.ID != "oat_milk_001" {
			t.Fatalf("substitutes = %v, want exactly oat_milk_001", ids(subs))
		}
	})

	t.Run("category without family stays within itself", func(t *testing.T) {
		subs := service.FindSubstitutes("cheese_001", domain.Constraints{}, 0)

		if len(subs) != 1 || subs[0].Product.ID != "cheese_002" {
			t.Fatalf("substitutes = %v, want exactly cheese_002", ids(subs))
		}
	})

	t.Run("unknown product yields empty list", func(t *testing.T) {
		subs := service.FindSubstitutes("sku-unknown", domain.Constraints{}, 0)
		if subs != nil {
			t.Errorf("substitutes = %v, want nil", ids(subs))
		}
	})

	t.Run("vegetarian constraint excludes meat", func(t *testing.T) {
		subs := service.FindSubstitutes("beef_001", domain.Constraints{Vegetarian: true}, 0)

		for _, sub := range subs {
			if !sub.Product.Vegetarian {
				t.Errorf("non-vegetarian substitute %s under vegetarian constraint", sub.Product.ID)
			}
		}
		if len(subs) == 0 {
			t.Error("expected vegetarian substitutes for beef_001")
		}
	})

	t.Run("vegan constraint excludes dairy", func(t *testing.T) {
		subs := service.FindSubstitutes("milk_001", domain.Constraints{Vegan: true}, 0)

		for _, sub := range subs {
			if sub.Product.HasAllergen("dairy") {
				t.Errorf("dairy substitute %s under vegan constraint", sub.Product.ID)
			}
		}
	})

	t.Run("allergen constraint excludes matches", func(t *testing.T) {
		subs := service.FindSubstitutes("beef_001", domain.Constraints{Allergens: []string{"soy"}}, 0)

		for _, sub := range subs {
			if sub.Product.HasAllergen("soy") {
				t.Errorf("soy substitute %s under soy allergen constraint", sub.Product.ID)
			}
		}
	})

	t.Run("max price constraint filters candidates", func(t *testing.T) {
		maxPrice := 2.50
		subs := service.FindSubstitutes("beef_001", domain.Constraints{MaxPrice: &maxPrice}, 0)

		for _, sub := range subs {
			if sub.Product.Price > maxPrice {
				t.Errorf("substitute %s at %.2f exceeds max price %.2f", sub.Product.ID, sub.Product.Price, maxPrice)
			}
		}
		if len(subs) != 1 || subs[0].Product.ID != "beans_001" {
			t.Errorf("substitutes = %v, want exactly beans_001", ids(subs))
		}
	})

	t.Run("maxResults truncates the ranking", func(t *testing.T) {
		subs := service.FindSubstitutes("beef_001", domain.Constraints{}, 2)
		if len(subs) != 2 {
			t.Errorf("len = %d, want 2", len(subs))
		}
	})
}

func TestSwapCandidates(t *testing.T) {
	service := NewSubstituteService(testCatalog(), SubstituteConfig{}, nil)

	candidates := service.SwapCandidates("beef_001", domain.Constraints{}, 1)

	if len(candidates) != 1 {
		t.Fatalf("len = %d, want 1", len(candidates))
	}
	c := candidates[0]
	if c.OriginalID != "beef_001" || c.SubstituteID != "beans_001" {
		t.Errorf("candidate = %s -> %s, want beef_001 -> beans_001", c.OriginalID, c.SubstituteID)
	}
	if c.EmissionsReduction != 60.0-0.9 {
		t.Errorf("EmissionsReduction = %f, want %f", c.EmissionsReduction, 60.0-0.9)
	}
	if c.CostChange != 1.99-8.99 {
		t.Errorf("CostChange = %f, want %f", c.CostChange, 1.99-8.99)
	}
}

func TestSimilarity(t *testing.T) {
	service := NewSubstituteService(testCatalog(), SubstituteConfig{}, nil)

	t.Run("identical products score 1", func(t *testing.T) {
		p := domain.Product{Emissions: 6.9, Price: 6.99, HealthScore: 0.7}
		sim := service.Similarity(p, p)
		if sim < 0.999 || sim > 1.001 {
			t.Errorf("Similarity = %f, want 1.0", sim)
		}
	})

	t.Run("zero-norm vectors default to 0.5", func(t *testing.T) {
		empty := domain.Product{}
		other := domain.Product{Emissions: 6.9, Price: 6.99}
		if sim := service.Similarity(empty, other); sim != 0.5 {
			t.Errorf("Similarity = %f, want 0.5", sim)
		}
	})

	t.Run("similar proteins score higher than dissimilar pairs", func(t *testing.T) {
		chicken := domain.Product{Emissions: 6.9, Price: 6.99, HealthScore: 0.7}
		turkey := domain.Product{Emissions: 10.9, Price: 7.49, HealthScore: 0.7}
		candy := domain.Product{Emissions: 3.0, Price: 2.99, HealthScore: 0.1, Vegetarian: true, Allergens: []string{"soy", "dairy"}}

		if service.Similarity(chicken, turkey) <= service.Similarity(chicken, candy) {
			t.Error("expected turkey to be more similar to chicken than candy")
		}
	})

	t.Run("result stays in [0,1]", func(t *testing.T) {
		for _, a := range testCatalog().products {
			for _, b := range testCatalog().products {
				sim := service.Similarity(a, b)
				if sim < 0 || sim > 1 {
					t.Errorf("Similarity(%s, %s) = %f, out of [0,1]", a.ID, b.ID, sim)
				}
			}
		}
	})
}

func ids(subs []domain.RankedProduct) []string {
	var result []string
	for _, s := range subs {
		result = append(result, s.Product.ID)
	}
	return result
}

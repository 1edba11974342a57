package catalog

import "github.com/greencart/backend/internal/domain"

// SampleProducts returns a small synthetic catalog spanning the protein
// and milk substitution families. Used by tests and as the demo fallback
// when no catalog file is configured.
func SampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "beef_001", Name: "Ground Beef", Category: "Beef", Emissions: 60.0, Price: 8.99, HealthScore: 0.4, Vegetarian: false},
		{ID: "beef_002", Name: "Beef Steak", Category: "Beef", Emissions: 65.0, Price: 12.99, HealthScore: 0.4, Vegetarian: false},

		{ID: "chicken_001", Name: "Chicken Breast", Category: "Chicken", Emissions: 6.9, Price: 6.99, HealthScore: 0.7, Vegetarian: false},
		{ID: "chicken_002", Name: "Ground Chicken", Category: "Chicken", Emissions: 7.2, Price: 5.99, HealthScore: 0.7, Vegetarian: false},

		{ID: "tofu_001", Name: "Firm Tofu", Category: "Tofu", Emissions: 2.0, Price: 3.99, HealthScore: 0.8, Vegetarian: true, Allergens: []string{"soy"}},
		{ID: "tofu_002", Name: "Extra Firm Tofu", Category: "Tofu", Emissions: 2.1, Price: 4.49, HealthScore: 0.8, Vegetarian: true, Allergens: []string{"soy"}},
		{ID: "tempeh_001", Name: "Tempeh", Category: "Tempeh", Emissions: 2.3, Price: 4.99, HealthScore: 0.85, Vegetarian: true, Allergens: []string{"soy"}},
		{ID: "beans_001", Name: "Black Beans", Category: "Legumes", Emissions: 0.9, Price: 1.99, HealthScore: 0.9, Vegetarian: true},

		{ID: "milk_001", Name: "Whole Milk", Category: "Milk", Emissions: 3.2, Price: 4.99, HealthScore: 0.6, Vegetarian: true, Allergens: []string{"dairy"}},
		{ID: "milk_002", Name: "2% Milk", Category: "Milk", Emissions: 3.0, Price: 4.79, HealthScore: 0.6, Vegetarian: true, Allergens: []string{"dairy"}},

		{ID: "oat_milk_001", Name: "Oat Milk", Category: "Plant Milk", Emissions: 0.9, Price: 4.49, HealthScore: 0.7, Vegetarian: true},
		{ID: "almond_milk_001", Name: "Almond Milk", Category: "Plant Milk", Emissions: 0.7, Price: 4.99, HealthScore: 0.7, Vegetarian: true, Allergens: []string{"nuts"}},
		{ID: "soy_milk_001", Name: "Soy Milk", Category: "Plant Milk", Emissions: 0.8, Price: 3.99, HealthScore: 0.75, Vegetarian: true, Allergens: []string{"soy"}},

		{ID: "pork_001", Name: "Pork Chops", Category: "Pork", Emissions: 12.1, Price: 7.99, HealthScore: 0.5, Vegetarian: false},
		{ID: "pork_002", Name: "Ground Pork", Category: "Pork", Emissions: 11.8, Price: 6.99, HealthScore: 0.5, Vegetarian: false},

		{ID: "fish_001", Name: "Salmon Fillet", Category: "Fish", Emissions: 11.9, Price: 14.99, HealthScore: 0.85, Vegetarian: false, Allergens: []string{"fish"}},
		{ID: "fish_002", Name: "Tuna", Category: "Fish", Emissions: 6.1, Price: 9.99, HealthScore: 0.85, Vegetarian: false, Allergens: []string{"fish"}},
	}
}

// SampleFootprints returns footprints matching the sample catalog: one per
// product id plus category-level distributions for fallback resolution.
func SampleFootprints() (byID, byCategory map[string]domain.Footprint) {
	byCategory = map[string]domain.Footprint{
		"Beef":       {Mean: 60.0, Variance: 144.0, Category: "Beef", Source: "poore-nemecek-2018"},
		"Chicken":    {Mean: 6.9, Variance: 1.44, Category: "Chicken", Source: "poore-nemecek-2018"},
		"Pork":       {Mean: 12.1, Variance: 6.25, Category: "Pork", Source: "poore-nemecek-2018"},
		"Fish":       {Mean: 11.9, Variance: 9.0, Category: "Fish", Source: "poore-nemecek-2018"},
		"Tofu":       {Mean: 2.0, Variance: 0.25, Category: "Tofu", Source: "poore-nemecek-2018"},
		"Tempeh":     {Mean: 2.3, Variance: 0.25, Category: "Tempeh", Source: "poore-nemecek-2018"},
		"Legumes":    {Mean: 0.9, Variance: 0.04, Category: "Legumes", Source: "poore-nemecek-2018"},
		"Milk":       {Mean: 3.2, Variance: 0.64, Category: "Milk", Source: "poore-nemecek-2018"},
		"Plant Milk": {Mean: 0.8, Variance: 0.04, Category: "Plant Milk", Source: "poore-nemecek-2018"},
	}

	byID = make(map[string]domain.Footprint)
	for _, p := range SampleProducts() {
		fp := byCategory[p.Category]
		byID[p.ID] = domain.Footprint{
			Mean:     p.Emissions,
			Variance: fp.Variance,
			Category: p.Category,
			Source:   fp.Source,
		}
	}
	return byID, byCategory
}

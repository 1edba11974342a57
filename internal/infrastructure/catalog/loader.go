package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/greencart/backend/internal/domain"
)

// fileProduct is the on-disk product schema
type fileProduct struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Price       float64  `yaml:"price"`
	Emissions   float64  `yaml:"emissions"`
	Variance    float64  `yaml:"emissions_variance"`
	HealthScore float64  `yaml:"health_score"`
	Vegetarian  bool     `yaml:"vegetarian"`
	Allergens   []string `yaml:"allergens"`
}

// fileFootprint is the on-disk footprint schema
type fileFootprint struct {
	ProductID string  `yaml:"product_id"`
	Category  string  `yaml:"category"`
	Mean      float64 `yaml:"mean"`
	Variance  float64 `yaml:"variance"`
	Source    string  `yaml:"source"`
}

// catalogFile is the top-level YAML document
type catalogFile struct {
	Products   []fileProduct   `yaml:"products"`
	Footprints []fileFootprint `yaml:"footprints"`
}

// LoadFile reads a YAML catalog file into a product store and a footprint
// table. Footprint entries carrying a product_id key the id index; the
// rest key the category index.
func LoadFile(path string) (*ProductStore, *FootprintTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}

	products := make([]domain.Product, 0, len(file.Products))
	for i, fp := range file.Products {
		if fp.ID == "" {
			return nil, nil, fmt.Errorf("%w: product %d in %s has no id", domain.ErrInvalidRequest, i, path)
		}
		products = append(products, domain.Product{
			ID:          fp.ID,
			Name:        fp.Name,
			Category:    fp.Category,
			Price:       fp.Price,
			Emissions:   fp.Emissions,
			Variance:    fp.Variance,
			HealthScore: fp.HealthScore,
			Vegetarian:  fp.Vegetarian,
			Allergens:   fp.Allergens,
		})
	}

	byID := make(map[string]domain.Footprint)
	byCategory := make(map[string]domain.Footprint)
	for _, ff := range file.Footprints {
		footprint := domain.Footprint{
			Mean:     ff.Mean,
			Variance: ff.Variance,
			Category: ff.Category,
			Source:   ff.Source,
		}
		if ff.ProductID != "" {
			byID[ff.ProductID] = footprint
		} else if ff.Category != "" {
			byCategory[ff.Category] = footprint
		}
	}

	return NewProductStore(products), NewFootprintTable(byID, byCategory), nil
}

// Package catalog provides the read-only product and footprint
// repositories consumed by the engine. Repositories are built once, before
// analysis, and shared without locking across concurrent callers.
package catalog

import (
	"sort"

	"github.com/greencart/backend/internal/domain"
)

// ProductStore is an in-memory product catalog with a category index
type ProductStore struct {
	products   map[string]domain.Product
	byCategory map[string][]string
}

// NewProductStore builds a catalog from a product list. Later duplicates
// of a product id replace earlier ones.
func NewProductStore(products []domain.Product) *ProductStore {
	store := &ProductStore{
		products:   make(map[string]domain.Product, len(products)),
		byCategory: make(map[string][]string),
	}
	for _, p := range products {
		if _, exists := store.products[p.ID]; !exists {
			store.byCategory[p.Category] = append(store.byCategory[p.Category], p.ID)
		}
		store.products[p.ID] = p
	}
	return store
}

// Product returns the product with the given id
func (s *ProductStore) Product(id string) (domain.Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// ByCategory returns all products in a category, in insertion order
func (s *ProductStore) ByCategory(category string) []domain.Product {
	ids := s.byCategory[category]
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		products = append(products, s.products[id])
	}
	return products
}

// Len returns the number of products in the catalog
func (s *ProductStore) Len() int {
	return len(s.products)
}

// FootprintTable is an in-memory footprint repository keyed by product id
// and by category.
type FootprintTable struct {
	byID       map[string]domain.Footprint
	byCategory map[string]domain.Footprint
	categories []string
}

// NewFootprintTable builds a footprint table. Category iteration order is
// sorted so footprint resolution is deterministic.
func NewFootprintTable(byID, byCategory map[string]domain.Footprint) *FootprintTable {
	if byID == nil {
		byID = make(map[string]domain.Footprint)
	}
	if byCategory == nil {
		byCategory = make(map[string]domain.Footprint)
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return &FootprintTable{byID: byID, byCategory: byCategory, categories: categories}
}

// ByID returns the footprint recorded for an exact product id
func (t *FootprintTable) ByID(id string) (domain.Footprint, bool) {
	fp, ok := t.byID[id]
	return fp, ok
}

// ByCategory returns the footprint recorded for a category
func (t *FootprintTable) ByCategory(category string) (domain.Footprint, bool) {
	fp, ok := t.byCategory[category]
	return fp, ok
}

// Categories returns all category names in sorted order
func (t *FootprintTable) Categories() []string {
	return t.categories
}

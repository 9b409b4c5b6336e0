package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"biomed-backend/internal/domain"
)

//go:embed products.json
var productsFS embed.FS

// Catalog is the static, read-only product reference data. It is loaded
// once at startup and safe for concurrent reads.
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// Load parses the embedded product data.
func Load() (*Catalog, error) {
	raw, err := productsFS.ReadFile("products.json")
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parse products: %w", err)
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}, nil
}

// Get resolves a product by id.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

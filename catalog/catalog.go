// Package catalog holds the fixed, read-only list of purchasable products and
// the detail records shown in the product overlay.
package catalog

import (
	"strings"

	"techstore/models"
)

type Catalog struct {
	products []models.Product
	byID     map[string]int
	details  map[string]detailRecord
}

type detailRecord struct {
	specifications []models.Specification
}

var features = []string{
	"Bảo hành chính hãng 12 tháng",
	"Miễn phí giao hàng toàn quốc",
	"Sản phẩm chính hãng 100%",
}

const (
	defaultRating      = 4.8
	defaultReviewCount = 127
)

// New builds a catalog from products. Later duplicates of an id are dropped.
func New(products []models.Product, specs map[string][]models.Specification) *Catalog {
	c := &Catalog{
		byID:    make(map[string]int, len(products)),
		details: make(map[string]detailRecord, len(specs)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	for id, s := range specs {
		c.details[id] = detailRecord{specifications: s}
	}
	return c
}

func Default() *Catalog {
	return New(defaultProducts, defaultSpecifications)
}

func (c *Catalog) List() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search returns products whose name contains query, case-insensitively.
func (c *Catalog) Search(query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.List()
	}
	out := []models.Product{}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Get(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// Detail assembles the overlay payload for a product. Products without a
// specification record get an empty list, not an error.
func (c *Catalog) Detail(id string) (models.ProductDetail, bool) {
	p, ok := c.Get(id)
	if !ok {
		return models.ProductDetail{}, false
	}

	specs := []models.Specification{}
	if rec, ok := c.details[id]; ok {
		specs = append(specs, rec.specifications...)
	}

	return models.ProductDetail{
		Product:        p,
		Features:       append([]string(nil), features...),
		Specifications: specs,
		Rating:         defaultRating,
		ReviewCount:    defaultReviewCount,
		InStock:        true,
	}, true
}

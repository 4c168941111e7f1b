package search

import (
	"github.com/storefrontapp/storefront-server/internal/domain"
)

// Document is the indexed projection of a product. The resolved
// category title is denormalized in so a search for "cakes" finds the
// products of that category.
type Document struct {
	ID            string
	Name          string
	Tags          []string
	Category      string
	CategoryTitle string
	Price         float64
	Banner        bool
	InStock       bool
	Popularity    float64
	CreatedAt     int64
}

// FromProduct builds a search document. categoryTitle may be empty when
// the product's category key has no title row.
func FromProduct(p *domain.Product, categoryTitle string) *Document {
	return &Document{
		ID:            p.ID,
		Name:          p.Name,
		Tags:          p.Tags,
		Category:      p.Category,
		CategoryTitle: categoryTitle,
		Price:         p.Price,
		Banner:        p.Banner,
		InStock:       p.Available(),
		Popularity:    p.Popularity,
		CreatedAt:     p.CreatedAt.Unix(),
	}
}

// ToMap converts the document to a map so field names match the index
// mapping (lowercase).
func (d *Document) ToMap() map[string]any {
	return map[string]any{
		"id":             d.ID,
		"name":           d.Name,
		"tags":           d.Tags,
		"category":       d.Category,
		"category_title": d.CategoryTitle,
		"price":          d.Price,
		"banner":         d.Banner,
		"in_stock":       d.InStock,
		"popularity":     d.Popularity,
		"created_at":     d.CreatedAt,
	}
}

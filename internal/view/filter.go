package view

import (
	"sort"
	"strings"

	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/normalize"
)

// Sort orders for filtered product lists.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

// Filter is the facet selection applied to the product list. Empty
// facets are permissive; set facets combine with AND, values within a
// facet with OR.
type Filter struct {
	Query        string
	Category     string
	Tags         []string
	Sizes        []string
	Levels       []string
	FeaturedOnly bool
	InStockOnly  bool
	MinPrice     *float64
	MaxPrice     *float64
	Sort         string
}

// Catalog bundles the cached collections a filter pass reads from.
type Catalog struct {
	Products    []*domain.Product
	Categories  []domain.Category
	Descendants map[string]map[string]bool
}

// Apply returns the products matching the filter, in the requested
// order. Inactive products never appear. The input slice is not
// modified.
func (f Filter) Apply(c Catalog) []*domain.Product {
	query := normalize.Fold(f.Query)
	titles := make(map[string]string, len(c.Categories))
	for _, cat := range c.Categories {
		titles[cat.Key] = normalize.Fold(cat.Title)
	}

	var out []*domain.Product
	for _, p := range c.Products {
		if !p.IsActive() {
			continue
		}
		if !InBranch(p.Category, f.Category, c.Descendants) {
			continue
		}
		if query != "" && !matchesQuery(p, query, titles) {
			continue
		}
		if len(f.Tags) > 0 && !anyOf(p.Tags, f.Tags) {
			continue
		}
		if len(f.Sizes) > 0 && !anyOf(p.Sizes, f.Sizes) {
			continue
		}
		if len(f.Levels) > 0 && !contains(f.Levels, p.LevelID) {
			continue
		}
		if f.FeaturedOnly && !p.Banner {
			continue
		}
		if f.InStockOnly && !p.Available() {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return out
}

// matchesQuery reports whether the folded query is a substring of the
// product's folded name, any folded tag, or its folded category title.
func matchesQuery(p *domain.Product, query string, foldedTitles map[string]string) bool {
	if strings.Contains(normalize.Fold(p.Name), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(normalize.Fold(tag), query) {
			return true
		}
	}
	if title := foldedTitles[p.Category]; title != "" && strings.Contains(title, query) {
		return true
	}
	return false
}

func sortProducts(products []*domain.Product, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	case SortPopular:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Popularity > products[j].Popularity })
	}
}

func anyOf(have, want []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

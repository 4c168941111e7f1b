// Package view derives the storefront-facing projections of the cached
// catalog: the category list from the navigation tree, facet filtering,
// navigation state transitions and type-ahead suggestions.
package view

import (
	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/normalize"
)

// productBranchKey is the navigation branch whose children are the
// browsable product categories.
const productBranchKey = "product"

// CategoryOption is one selectable category in the storefront filter
// bar.
type CategoryOption struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// ProductCategories flattens the product branch of the menu tree into
// the ordered category list. Titles prefer the category tab row, then
// the menu node's own title with surrounding quotes stripped, then the
// bare key.
func ProductCategories(menu []domain.MenuNode, categories []domain.Category) []CategoryOption {
	branch := domain.FindBranch(menu, productBranchKey)
	if branch == nil {
		return nil
	}

	titles := make(map[string]string, len(categories))
	for _, c := range categories {
		if c.Title != "" {
			titles[c.Key] = c.Title
		}
	}

	var out []CategoryOption
	var walk func(nodes []domain.MenuNode)
	walk = func(nodes []domain.MenuNode) {
		for _, n := range nodes {
			title := titles[n.Key]
			if title == "" {
				title = normalize.StripQuotes(n.Title)
			}
			if title == "" {
				title = n.Key
			}
			out = append(out, CategoryOption{Key: n.Key, Title: title})
			walk(n.Children)
		}
	}
	walk(branch.Children)
	return out
}

// DescendantIndex maps every node key in the menu forest to the set of
// keys strictly beneath it. Selecting a branch category then matches
// products filed under any of its leaves.
func DescendantIndex(menu []domain.MenuNode) map[string]map[string]bool {
	index := make(map[string]map[string]bool)

	var walk func(n domain.MenuNode) []string
	walk = func(n domain.MenuNode) []string {
		var below []string
		for _, child := range n.Children {
			below = append(below, child.Key)
			below = append(below, walk(child)...)
		}
		if len(below) > 0 {
			set := make(map[string]bool, len(below))
			for _, key := range below {
				set[key] = true
			}
			index[n.Key] = set
		}
		return below
	}
	for _, n := range menu {
		walk(n)
	}
	return index
}

// InBranch reports whether a product's category key falls under the
// selected category. "all" selects everything.
func InBranch(catKey, selected string, descendants map[string]map[string]bool) bool {
	if selected == "" || selected == CategoryAll {
		return true
	}
	if catKey == selected {
		return true
	}
	return descendants[selected][catKey]
}

// CategoryAll is the pseudo-category selecting the whole catalog.
const CategoryAll = "all"

package view

import (
	"strings"

	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/normalize"
)

const (
	perKindLimit    = 5
	suggestionLimit = 10
)

// Suggestion is one type-ahead hit.
type Suggestion struct {
	Kind  string `json:"kind"` // category, product or tag
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Suggest returns type-ahead suggestions for a query: up to five
// categories, then up to five products, then up to five tags whose
// folded text contains the folded query, capped at ten overall.
func Suggest(query string, categories []CategoryOption, products []*domain.Product, tags []domain.Tag) []Suggestion {
	folded := normalize.Fold(query)
	if folded == "" {
		return nil
	}

	var out []Suggestion

	n := 0
	for _, c := range categories {
		if n == perKindLimit {
			break
		}
		if strings.Contains(normalize.Fold(c.Title), folded) {
			out = append(out, Suggestion{Kind: "category", Key: c.Key, Label: c.Title})
			n++
		}
	}

	n = 0
	for _, p := range products {
		if n == perKindLimit {
			break
		}
		if p.IsActive() && strings.Contains(normalize.Fold(p.Name), folded) {
			out = append(out, Suggestion{Kind: "product", Key: p.ID, Label: p.Name})
			n++
		}
	}

	n = 0
	for _, t := range tags {
		if n == perKindLimit {
			break
		}
		if strings.Contains(normalize.Fold(t.Label), folded) {
			out = append(out, Suggestion{Kind: "tag", Key: t.ID, Label: t.Label})
			n++
		}
	}

	if len(out) > suggestionLimit {
		out = out[:suggestionLimit]
	}
	return out
}

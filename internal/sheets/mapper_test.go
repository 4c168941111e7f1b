package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontapp/storefront-server/internal/normalize"
)

// fakeLookup mimics the drive image index with a fixed table.
type fakeLookup map[string][]string

func (f fakeLookup) Lookup(name string) []string {
	return f[normalize.Fold(name)]
}

func TestMapProducts(t *testing.T) {
	rows := []Row{
		{
			"name":     "Bánh Kem",
			"price":    "100,000",
			"category": "cakes",
			"tags":     "sweet, birthday",
			"banner":   "x",
			"typeid":   "round",
		},
		{"name": "", "price": "50000"}, // nameless rows are dropped
		{
			"name":   "Tiramisu",
			"images": "https://example.com/t.jpg | https://drive.google.com/file/d/abc123/view",
		},
	}

	products := MapProducts(rows, fakeLookup{
		"banh kem": {"/img/banh-kem.jpg"},
	}, "/images/")

	require.Len(t, products, 2)

	p := products[0]
	assert.NotEmpty(t, p.ID, "missing id is generated")
	assert.Equal(t, "Bánh Kem", p.Name)
	assert.Equal(t, 100000.0, p.Price)
	assert.Equal(t, "cakes", p.Category)
	assert.Equal(t, []string{"sweet", "birthday"}, p.Tags)
	assert.True(t, p.Banner)
	assert.Equal(t, "round", p.TypeID)
	assert.Equal(t, []string{"/img/banh-kem.jpg"}, p.Images, "no image cell falls back to the index")
	assert.Nil(t, p.InStock, "absent stock cell stays unset")
	assert.True(t, p.Available())

	ti := products[1]
	assert.Equal(t, []string{
		"https://example.com/t.jpg",
		"https://drive.google.com/thumbnail?id=abc123&sz=w2048",
	}, ti.Images, "explicit image cell wins over the index")
}

func TestMapProductsAdminFields(t *testing.T) {
	rows := []Row{{
		"name":        "Cheesecake",
		"id":          "p-1",
		"instock":     "0",
		"active":      "true",
		"createdat":   "2026-03-01T10:00:00Z",
		"pricebysize": "s:90000; m:120000",
		"sizes":       "s;m",
		"levelid":     "basic",
		"description": "classic",
		"popular":     "7",
	}}

	products := MapProducts(rows, nil, "/images/")
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "p-1", p.ID)
	require.NotNil(t, p.InStock)
	assert.False(t, *p.InStock)
	assert.False(t, p.Available())
	require.NotNil(t, p.Active)
	assert.True(t, *p.Active)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), p.CreatedAt)
	assert.Equal(t, map[string]float64{"s": 90000, "m": 120000}, p.PriceBySize)
	assert.Equal(t, []string{"s", "m"}, p.Sizes)
	assert.Equal(t, "basic", p.LevelID)
	assert.Equal(t, "classic", p.Description)
	assert.Equal(t, 7.0, p.Popularity)
}

func TestMapCategories(t *testing.T) {
	rows := []Row{
		{"key": "cakes", "title": "Cakes"},
		{"key": "pies"},
		{"key": "", "title": "ignored"},
	}

	categories := MapCategories(rows)
	require.Len(t, categories, 2)
	assert.Equal(t, "Cakes", categories[0].Title)
	assert.Equal(t, "pies", categories[1].Title, "title falls back to key")
}

func TestMapTags(t *testing.T) {
	rows := []Row{
		{"id": "sweet", "label": "Sweet"},
		{"label": "Slow Burn"},
		{"id": "", "label": ""},
	}

	tags := MapTags(rows)
	require.Len(t, tags, 2)
	assert.Equal(t, "slow-burn", tags[1].ID, "id slugs from label")
}

func TestMapMenu(t *testing.T) {
	rows := []Row{
		{"key": "product", "label": "Products", "order": "0"},
		{"key": "cakes", "title": "Cakes", "parent": "product", "order": "1"},
		{"key": "bare"},
		{"key": ""},
	}

	items := MapMenu(rows)
	require.Len(t, items, 3)
	assert.Equal(t, "Products", items[0].Title, "label wins over title")
	assert.Equal(t, "Cakes", items[1].Title)
	assert.Equal(t, "product", items[1].Parent)
	assert.Equal(t, "bare", items[2].Title, "title falls back to key")
}

func TestMapTypes(t *testing.T) {
	rows := []Row{
		{"id": "sheet", "name": "Sheet cakes", "order": "2"},
		{"key": "round", "title": "Round cakes", "sizes": "16|16cm; 20|20cm", "order": "1"},
		{"id": ""},
	}

	types := MapTypes(rows)
	require.Len(t, types, 2)
	assert.Equal(t, "round", types[0].ID, "sorted by order")
	assert.Equal(t, "Round cakes", types[0].Name)
	require.Len(t, types[0].Sizes, 2)
	assert.Equal(t, "16cm", types[0].Sizes[0].Label)
	assert.Equal(t, "sheet", types[1].ID)
}

func TestMapLevels(t *testing.T) {
	rows := []Row{
		{"id": "basic", "type": "round", "prices": "16:100000; 20:150000"},
		{"id": ""},
	}

	levels := MapLevels(rows)
	require.Len(t, levels, 1)
	assert.Equal(t, "basic", levels[0].Name, "name falls back to id")
	assert.Equal(t, "round", levels[0].TypeID)
	assert.Equal(t, map[string]float64{"16": 100000, "20": 150000}, levels[0].Prices)
}

func TestMapPages(t *testing.T) {
	rows := []Row{
		{"key": "about", "title": "About us", "body": "hello"},
		{"key": "contact", "content": "mail us"},
	}

	pages := MapPages(rows)
	require.Len(t, pages, 2)
	assert.Equal(t, "hello", pages[0].Body)
	assert.Equal(t, "mail us", pages[1].Body, "content is an accepted body column")
	assert.Equal(t, "contact", pages[1].Title)
}

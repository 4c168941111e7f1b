package sheets

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/normalize"
)

// ImageLookup resolves a product name to candidate image URLs from an
// externally built index. A nil lookup disables matching.
type ImageLookup interface {
	Lookup(name string) []string
}

// MapProducts converts product rows into domain products. Rows without
// a name are dropped. Products with no explicit image cell get their
// images from the lookup by folded name.
func MapProducts(rows []Row, images ImageLookup, imageBase string) []domain.Product {
	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		name := row["name"]
		if name == "" {
			continue
		}

		p := domain.Product{
			ID:          row["id"],
			Name:        name,
			Category:    row["category"],
			TypeID:      first(row, "typeid", "type"),
			LevelID:     first(row, "levelid", "level"),
			Price:       normalize.Number(row["price"]),
			PriceBySize: normalize.ParsePriceTable(first(row, "pricebysize", "prices")),
			Sizes:       normalize.SplitList(row["sizes"], ",;/|"),
			Tags:        normalize.SplitList(row["tags"], ","),
			Description: first(row, "description", "desc"),
			Banner:      normalize.Bool(row["banner"]),
			Popularity:  normalize.Number(row["popular"]),
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}

		if v := row["instock"]; v != "" {
			inStock := normalize.Bool(v)
			p.InStock = &inStock
		}
		if v := row["active"]; v != "" {
			active := normalize.Bool(v)
			p.Active = &active
		}
		if v := row["createdat"]; v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				p.CreatedAt = t
			}
		}

		for _, img := range normalize.SplitList(first(row, "images", "image"), "|,\n") {
			if u := CanonicalImageURL(img, imageBase); u != "" {
				p.Images = append(p.Images, u)
			}
		}
		if len(p.Images) == 0 && images != nil {
			p.Images = images.Lookup(p.Name)
		}

		products = append(products, p)
	}
	return products
}

// MapCategories converts category rows. Key is required; a blank title
// falls back to the key.
func MapCategories(rows []Row) []domain.Category {
	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		key := row["key"]
		if key == "" {
			continue
		}
		title := row["title"]
		if title == "" {
			title = key
		}
		categories = append(categories, domain.Category{Key: key, Title: title})
	}
	return categories
}

// MapTags converts tag rows. A missing id becomes the slug of the
// label; rows with neither are dropped.
func MapTags(rows []Row) []domain.Tag {
	tags := make([]domain.Tag, 0, len(rows))
	for _, row := range rows {
		id := row["id"]
		label := row["label"]
		if id == "" {
			id = normalize.Slug(label)
		}
		if id == "" {
			continue
		}
		if label == "" {
			label = id
		}
		tags = append(tags, domain.Tag{ID: id, Label: label})
	}
	return tags
}

// MapMenu converts menu rows into flat items ready for tree assembly.
// Title priority is label, then title, then the key itself.
func MapMenu(rows []Row) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(rows))
	for _, row := range rows {
		key := row["key"]
		if key == "" {
			continue
		}
		title := first(row, "label", "title")
		if title == "" {
			title = key
		}
		items = append(items, domain.MenuItem{
			Key:    key,
			Title:  title,
			Parent: row["parent"],
			Order:  normalize.Number(row["order"]),
		})
	}
	return items
}

// MapPages converts page rows. Key is required.
func MapPages(rows []Row) []domain.Page {
	pages := make([]domain.Page, 0, len(rows))
	for _, row := range rows {
		key := row["key"]
		if key == "" {
			continue
		}
		title := row["title"]
		if title == "" {
			title = key
		}
		pages = append(pages, domain.Page{
			Key:   key,
			Title: title,
			Body:  first(row, "body", "content"),
		})
	}
	return pages
}

// MapTypes converts size type rows, sorted by ascending order value.
func MapTypes(rows []Row) []domain.SizeType {
	types := make([]domain.SizeType, 0, len(rows))
	for _, row := range rows {
		id := first(row, "id", "key")
		if id == "" {
			continue
		}
		name := first(row, "name", "title")
		if name == "" {
			name = id
		}
		pairs := normalize.SplitPairs(row["sizes"])
		sizes := make([]domain.SizeOption, 0, len(pairs))
		for _, pair := range pairs {
			sizes = append(sizes, domain.SizeOption{Key: pair.Key, Label: pair.Label})
		}
		types = append(types, domain.SizeType{
			ID:    id,
			Name:  name,
			Sizes: sizes,
			Order: normalize.Number(row["order"]),
		})
	}
	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Order < types[j].Order
	})
	return types
}

// MapLevels converts price level rows.
func MapLevels(rows []Row) []domain.PriceLevel {
	levels := make([]domain.PriceLevel, 0, len(rows))
	for _, row := range rows {
		id := row["id"]
		if id == "" {
			continue
		}
		name := row["name"]
		if name == "" {
			name = id
		}
		levels = append(levels, domain.PriceLevel{
			ID:     id,
			Name:   name,
			TypeID: first(row, "typeid", "type", "schemeid", "scheme"),
			Prices: normalize.ParsePriceTable(row["prices"]),
		})
	}
	return levels
}

// first returns the first non-empty cell among the named columns.
func first(row Row, names ...string) string {
	for _, name := range names {
		if v := row[name]; v != "" {
			return v
		}
	}
	return ""
}

package domain

import "time"

// Product is a catalog item. Most fields originate from a spreadsheet
// row and are parsed permissively; Name is the only required field.
type Product struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category,omitempty"`
	TypeID      string             `json:"typeId,omitempty"`
	LevelID     string             `json:"levelId,omitempty"`
	Price       float64            `json:"price"`
	PriceBySize map[string]float64 `json:"priceBySize,omitempty"`
	Sizes       []string           `json:"sizes,omitempty"`
	Images      []string           `json:"images,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Description string             `json:"description,omitempty"`
	Banner      bool               `json:"banner"`
	InStock     *bool              `json:"inStock,omitempty"`
	Active      *bool              `json:"active,omitempty"`
	Popularity  float64            `json:"popular,omitempty"`
	CreatedAt   time.Time          `json:"createdAt,omitzero"`
}

// Available reports whether the product is in stock. Only an explicit
// false filters a product out; absent means available.
func (p *Product) Available() bool {
	return p.InStock == nil || *p.InStock
}

// IsActive reports whether the product should be shown at all.
func (p *Product) IsActive() bool {
	return p.Active == nil || *p.Active
}

// PriceForSize resolves the price of one size: the product's own
// per-size entry wins, then the given price level's table, then the
// base price.
func (p *Product) PriceForSize(sizeKey string, level *PriceLevel) float64 {
	if v, ok := p.PriceBySize[sizeKey]; ok {
		return v
	}
	if level != nil {
		if v, ok := level.Prices[sizeKey]; ok {
			return v
		}
	}
	return p.Price
}

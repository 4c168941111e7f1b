package domain

// PriceLevel is a named price table for the sizes of one size type.
// A product referencing a level prices its sizes from this table
// unless it carries its own per-size entry.
type PriceLevel struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	TypeID string             `json:"typeId,omitempty"`
	Prices map[string]float64 `json:"prices,omitempty"`
}

package domain

// Category is a product grouping key with a display title.
// Categories referenced by products but absent from the category tab
// are derived during sync with the key doubling as the title.
type Category struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

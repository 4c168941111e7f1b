package domain

// Tag is a free-form product label. ID is the canonical form; a tag
// row without an explicit id gets the slug of its label.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

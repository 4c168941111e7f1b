package domain

// Page is static storefront content addressed by key.
type Page struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

package view

// Reserved navigation views. Any other view value is a category key or
// a page key.
const (
	ViewHome   = "home"
	ViewSearch = "search"
	ViewAdmin  = "admin"
)

// Navigation is the storefront navigation state: which view is active,
// the live search query and the category filter the search applies.
type Navigation struct {
	View     string `json:"view"`
	Query    string `json:"query,omitempty"`
	Category string `json:"category"`
}

// NewNavigation returns the initial state: home view, all categories.
func NewNavigation() Navigation {
	return Navigation{View: ViewHome, Category: CategoryAll}
}

// WithQuery sets the search query. A non-empty query forces the search
// view unless the admin view is active; clearing the query while
// searching returns to the active category.
func (n Navigation) WithQuery(query string) Navigation {
	n.Query = query
	if query != "" {
		if n.View != ViewAdmin {
			n.View = ViewSearch
		}
		return n
	}
	if n.View == ViewSearch {
		if n.Category != "" && n.Category != CategoryAll {
			n.View = n.Category
		} else {
			n.View = ViewHome
			n.Category = CategoryAll
		}
	}
	return n
}

// WithCategory selects a category. With a query active the search view
// stays and the category narrows it; otherwise the category becomes the
// view.
func (n Navigation) WithCategory(key string) Navigation {
	if key == "" {
		key = CategoryAll
	}
	n.Category = key
	if n.Query != "" && n.View == ViewSearch {
		return n
	}
	if key == CategoryAll {
		n.View = ViewHome
	} else {
		n.View = key
	}
	return n
}

// WithPage opens a static page, dropping any live search.
func (n Navigation) WithPage(key string) Navigation {
	n.View = key
	n.Query = ""
	return n
}

// WithAdmin switches to the admin view, dropping any live search.
func (n Navigation) WithAdmin() Navigation {
	n.View = ViewAdmin
	n.Query = ""
	return n
}

// Searching reports whether the search view is active.
func (n Navigation) Searching() bool {
	return n.View == ViewSearch
}

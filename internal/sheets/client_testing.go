package sheets

import "log/slog"

// NewWithBaseURL creates a client that targets an arbitrary base URL
// instead of docs.google.com. Intended for tests against httptest
// servers.
func NewWithBaseURL(baseURL string, logger *slog.Logger) *Client {
	c := New("test-sheet", logger)
	c.baseURL = baseURL
	return c
}

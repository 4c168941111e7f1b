package sheets

import "errors"

// Sentinel errors returned by the spreadsheet client.
var (
	// ErrNotFound indicates the spreadsheet or tab does not exist or is
	// not shared publicly.
	ErrNotFound = errors.New("sheet not found")

	// ErrForbidden indicates the spreadsheet denied access.
	ErrForbidden = errors.New("sheet access denied")

	// ErrRateLimited indicates Google rejected the request with 429.
	ErrRateLimited = errors.New("sheet rate limited")

	// ErrServer indicates a Google-side 5xx failure.
	ErrServer = errors.New("sheet server error")

	// ErrMalformed indicates a response body that could not be parsed.
	ErrMalformed = errors.New("malformed sheet response")
)

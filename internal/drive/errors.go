package drive

import "errors"

// Sentinel errors returned by the Drive client.
var (
	// ErrNotFound indicates the folder does not exist or is not shared.
	ErrNotFound = errors.New("drive folder not found")

	// ErrForbidden indicates the API key is not allowed to list the folder.
	ErrForbidden = errors.New("drive access denied")

	// ErrRateLimited indicates Google rejected the request with 429.
	ErrRateLimited = errors.New("drive rate limited")

	// ErrServer indicates a Google-side 5xx failure.
	ErrServer = errors.New("drive server error")
)

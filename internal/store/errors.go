package store

import "errors"

// Sentinel errors returned by collection operations.
var (
	// ErrConflict indicates a baseline-checked replace lost the race:
	// the collection was written after the baseline was observed.
	ErrConflict = errors.New("collection modified since baseline")
)

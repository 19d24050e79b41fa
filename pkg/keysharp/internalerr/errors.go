package internalerr

import "errors"

// Sentinel errors shared by the loader, store and config layers.
// The analysis core (ngram, analytics, search) never returns errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStoreUnavailable = errors.New("store unavailable")
)

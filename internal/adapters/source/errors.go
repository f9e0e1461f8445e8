package source

import "errors"

// Sentinel kinds for source errors. Every fetch failure wraps ErrFetch.
var (
	ErrFetch      = errors.New("fetch country records failed")
	ErrStatus     = errors.New("unexpected upstream status")
	ErrNoFields   = errors.New("no fields requested")
	ErrBadBaseURL = errors.New("invalid source base url")
)

package country

import "errors"

// Sentinel kinds for record decoding.
var (
	ErrDecode = errors.New("decode country records failed")
)

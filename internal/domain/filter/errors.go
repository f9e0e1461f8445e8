package filter

import "errors"

// Sentinel kinds for filter errors. These allow errors.Is from callers.
var (
	// ErrInvalidPopulationRange is returned when the maximum population is
	// below the minimum. It is a validation signal, not a failure.
	ErrInvalidPopulationRange = errors.New("max population must be greater than or equal to min population")
	ErrInvalidNumber          = errors.New("invalid population bound")
	ErrNegativeBound          = errors.New("population bound must not be negative")
)

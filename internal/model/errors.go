package model

import "errors"

// Parameter validation errors.
// These errors are returned by Parameters.Validate() and provide specific
// information about what is wrong with the run parameters.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each check. This allows callers to use errors.Is()
// for programmatic error handling while still providing human-readable
// messages. Callers wrap these with %w and the offending value.
var (
	// ErrInvalidRadius is returned when the search radius is not positive.
	// A zero or negative radius would make every neighborhood empty.
	ErrInvalidRadius = errors.New("invalid search radius: must be positive")

	// ErrInvalidSpacing is returned when the grid spacing is not positive.
	// A zero spacing would produce an infinite lattice.
	ErrInvalidSpacing = errors.New("invalid grid spacing: must be positive")

	// ErrTooFewNeighbors is returned when the minimum neighbor count is
	// below the number of free parameters in the conic model. The local
	// quadratic has six coefficients; fewer observations leave the
	// regression under-determined and the covariance uncomputable.
	ErrTooFewNeighbors = errors.New("invalid minimum neighbor count: must be at least 6 (conic model has 6 free parameters)")

	// ErrUnknownMethod is returned when the fitting method name is not one
	// of the supported methods.
	ErrUnknownMethod = errors.New("unknown fitting method")

	// ErrInvalidDateBounds is returned when the date range is inverted
	// (from after to). Both bounds are integer YYYYMMDD and inclusive.
	ErrInvalidDateBounds = errors.New("invalid date bounds: from must not exceed to")
)

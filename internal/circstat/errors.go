package circstat

import "errors"

// Distribution construction errors.
var (
	// ErrNotPositiveDefinite is returned when the covariance submatrix is
	// not symmetric positive definite and therefore defines no valid
	// bivariate normal distribution.
	ErrNotPositiveDefinite = errors.New("covariance matrix is not positive definite")
)

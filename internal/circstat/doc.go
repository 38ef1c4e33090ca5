// Package circstat evaluates the circular distribution of flow direction.
//
// The direction of a bivariate normal random vector follows the projected
// normal (angular Gaussian) distribution. Given the fitted gradient mean
// vector and its 2×2 covariance submatrix, this package evaluates the
// angular density and integrates it over direction intervals, which is how
// a fitted gradient becomes a directional confidence statement.
//
// The closed-form density contains exp(E²/2) for an auxiliary term
// E = (uᵀΣ⁻¹μ)/√(uᵀΣ⁻¹u), which overflows for strongly concentrated
// distributions. Above a threshold the evaluation switches to the
// asymptotically equivalent large-argument form, in which the exponentials
// combine into a bounded quantity. Interval probabilities saturate to 1
// instead of propagating non-finite intermediate values: probability mass
// is bounded in [0, 1], so 1 is the safe answer for a practically certain
// event.
package circstat

// Package fit performs the local conic regression at one grid target.
//
// The model is a quadratic potential surface in coordinates relative to the
// target,
//
//	z(x, y) = A·dx² + B·dy² + C·dx·dy + D·dx + E·dy + F
//
// fitted to the head values of the target's neighborhood. Two methods are
// supported: ordinary least squares with the closed-form normal-equations
// solve, and robust M-estimation using iteratively reweighted least squares
// with the Tukey biweight weight function. The robust covariance uses the
// bias-corrected scaled estimator for M-estimators, not the naive ordinary
// formula: downweighted outliers must not inflate apparent precision.
//
// A rank-deficient design matrix (all neighbors collinear, duplicated
// locations) is surfaced as ErrRankDeficient rather than silently producing
// a meaningless covariance.
//
// Linear algebra is gonum/mat throughout: the normal equations are solved
// through a Cholesky factorization of XᵀX, which also yields the (XᵀX)⁻¹
// needed for the parameter covariance.
package fit

package model

import (
	"math"

	"github.com/paulmach/orb"
)

// ConicTerms is the number of coefficients in the local conic model.
const ConicTerms = 6

// Coefficient indices into FitResult.Coefficients.
// The fitted surface is
//
//	z(x, y) = A·dx² + B·dy² + C·dx·dy + D·dx + E·dy + F
//
// with (dx, dy) = (x, y) − target, so F is the fitted head at the target
// itself and (D, E) is the surface gradient there.
const (
	CoeffA = iota
	CoeffB
	CoeffC
	CoeffD
	CoeffE
	CoeffF
)

// FitResult is the fitted conic potential model at one grid target.
// It is created once by the fitter and immutable thereafter.
type FitResult struct {
	// Target is the grid point the local coordinate system is anchored at.
	Target orb.Point `json:"target"`

	// Count is the number of observations that entered the fit.
	Count int `json:"count"`

	// Coefficients holds [A, B, C, D, E, F] of the conic model.
	Coefficients [ConicTerms]float64 `json:"coefficients"`

	// Covariance is the symmetric positive-semidefinite parameter
	// covariance matrix, in coefficient order.
	Covariance [ConicTerms][ConicTerms]float64 `json:"covariance"`

	// Converged reports whether the iterative robust fit met its
	// convergence tolerance within the iteration cap. Always true for the
	// ordinary least squares method.
	Converged bool `json:"converged"`

	// Iterations is the number of reweighting iterations performed.
	// Zero for ordinary least squares.
	Iterations int `json:"iterations,omitempty"`

	// DirectionConfidence is the probability that the true flow direction
	// lies within ±10° of the fitted direction, from the projected normal
	// distribution of the gradient. Filled in by the orchestrator.
	DirectionConfidence float64 `json:"direction_confidence"`
}

// Gradient returns the hydraulic gradient vector at the target.
// Water flows down-gradient, so the flow vector is the negated surface
// gradient (−D, −E).
func (f *FitResult) Gradient() (gx, gy float64) {
	return -f.Coefficients[CoeffD], -f.Coefficients[CoeffE]
}

// GradientMagnitude returns the Euclidean norm of the gradient vector.
func (f *FitResult) GradientMagnitude() float64 {
	gx, gy := f.Gradient()
	return math.Hypot(gx, gy)
}

// Direction returns the flow direction in radians in (−π, π], measured
// counter-clockwise from the +x axis.
func (f *FitResult) Direction() float64 {
	gx, gy := f.Gradient()
	return math.Atan2(gy, gx)
}

// DirectionDegrees returns the flow direction in degrees in (−180, 180].
func (f *FitResult) DirectionDegrees() float64 {
	return f.Direction() * 180 / math.Pi
}

// GradientCovariance returns the 2×2 covariance submatrix of the flow
// vector (−D, −E). Negating both components leaves the covariance of the
// underlying (D, E) block unchanged.
func (f *FitResult) GradientCovariance() [2][2]float64 {
	return [2][2]float64{
		{f.Covariance[CoeffD][CoeffD], f.Covariance[CoeffD][CoeffE]},
		{f.Covariance[CoeffE][CoeffD], f.Covariance[CoeffE][CoeffE]},
	}
}

package circstat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// asymptoticThreshold is the value of the auxiliary term E above which the
// density switches from the direct closed form to the large-argument form.
// At E = 5 the two branches agree to full double precision while the direct
// form's exp(E²/2) factor is still a dozen orders of magnitude below
// overflow, so the switch is seamless.
const asymptoticThreshold = 5.0

// negativeThreshold is the magnitude of a negative E below which the direct
// form degenerates: Φ(E) underflows to zero near E = −38 while exp(E²/2)
// overflows, so their product turns into 0·Inf = NaN. Below −30 the
// Mills-ratio expansion of Φ is accurate to better than 1e-9 and is used
// instead.
const negativeThreshold = 30.0

// simpsonPanels is the number of (even) subdivisions used for interval
// integration of the density. The density is smooth on the circle, so a
// fixed Simpson rule at this resolution is accurate far beyond the digits
// the confidence statements carry.
const simpsonPanels = 512

// Dist is the projected normal distribution of the angle of a bivariate
// normal vector with mean mu and covariance sigma. Immutable after New.
type Dist struct {
	mu [2]float64

	// Cached inverse covariance and determinant.
	inv [2][2]float64
	det float64

	// c is μᵀΣ⁻¹μ, constant across angles.
	c float64
}

// New constructs the distribution from the mean vector and covariance
// matrix. The covariance must be symmetric positive definite.
func New(mu [2]float64, sigma [2][2]float64) (*Dist, error) {
	det := sigma[0][0]*sigma[1][1] - sigma[0][1]*sigma[1][0]
	if det <= 0 || sigma[0][0] <= 0 || sigma[1][1] <= 0 {
		return nil, fmt.Errorf("%w: [[%g, %g], [%g, %g]]", ErrNotPositiveDefinite,
			sigma[0][0], sigma[0][1], sigma[1][0], sigma[1][1])
	}

	d := &Dist{
		mu:  mu,
		det: det,
		inv: [2][2]float64{
			{sigma[1][1] / det, -sigma[0][1] / det},
			{-sigma[1][0] / det, sigma[0][0] / det},
		},
	}
	d.c = d.quadForm(mu, mu)
	return d, nil
}

// Mean returns the direction of the mean vector in radians.
func (d *Dist) Mean() float64 {
	return math.Atan2(d.mu[1], d.mu[0])
}

// quadForm evaluates aᵀΣ⁻¹b.
func (d *Dist) quadForm(a, b [2]float64) float64 {
	return a[0]*(d.inv[0][0]*b[0]+d.inv[0][1]*b[1]) +
		a[1]*(d.inv[1][0]*b[0]+d.inv[1][1]*b[1])
}

// PDF returns the angular density at theta.
//
// With u = (cos θ, sin θ), A = uᵀΣ⁻¹u, B = uᵀΣ⁻¹μ, C = μᵀΣ⁻¹μ and
// E = B/√A, the direct form is
//
//	f(θ) = e^(−C/2)/(2πA√|Σ|) · (1 + √(2π)·E·e^(E²/2)·Φ(E))
//
// For E above the threshold, Φ(E) approaches 1 and the exponentials combine
// into e^((B²/A − C)/2), which is bounded because B² ≤ A·C; the large-argument
// branch evaluates that combined form and cannot overflow.
//
// For E strongly negative the direct form degenerates the other way, Φ(E)
// underflowing against an overflowing exp(E²/2). There the Mills-ratio
// expansion Φ(E) ≈ φ(E)/|E|·(1 − 1/E² + 3/E⁴ − ...) collapses the bracket to
// 1/E² − 3/E⁴ + 15/E⁶ − 105/E⁸, which stays finite.
func (d *Dist) PDF(theta float64) float64 {
	u := [2]float64{math.Cos(theta), math.Sin(theta)}
	a := d.quadForm(u, u)
	b := d.quadForm(u, d.mu)
	e := b / math.Sqrt(a)

	base := math.Exp(-d.c/2) / (2 * math.Pi * a * math.Sqrt(d.det))
	if e > asymptoticThreshold {
		return base + e/(math.Sqrt(2*math.Pi)*a*math.Sqrt(d.det))*math.Exp((b*b/a-d.c)/2)
	}
	if e < -negativeThreshold {
		t := 1 / (e * e)
		return base * t * (1 - t*(3-t*(15-105*t)))
	}
	return base * (1 + math.Sqrt(2*math.Pi)*e*math.Exp(e*e/2)*distuv.UnitNormal.CDF(e))
}

// CDF integrates the density over [lower, upper] with a fixed Simpson rule.
// A non-finite integration result saturates to 1 rather than propagating;
// the result is clamped to [0, 1] either way. An empty interval returns 0.
func (d *Dist) CDF(lower, upper float64) float64 {
	if upper <= lower {
		return 0
	}

	h := (upper - lower) / simpsonPanels
	sum := d.PDF(lower) + d.PDF(upper)
	for i := 1; i < simpsonPanels; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		sum += w * d.PDF(lower+float64(i)*h)
	}
	p := sum * h / 3

	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 1
	}
	return math.Min(1, math.Max(0, p))
}

// IntervalAround returns the probability that the direction lies within
// ±halfWidth radians of the given center angle.
func (d *Dist) IntervalAround(center, halfWidth float64) float64 {
	return d.CDF(center-halfWidth, center+halfWidth)
}

package fit

import (
	"math"
	"sort"
)

// TukeyC is the Tukey biweight tuning constant. 4.685 gives 95% asymptotic
// efficiency at the normal distribution, the conventional choice.
const TukeyC = 4.685

// madScaleFactor converts the median absolute deviation to a consistent
// estimate of the normal standard deviation (1/Φ⁻¹(0.75)).
const madScaleFactor = 0.6745

// tukeyWeight is the Tukey biweight weight function w(u) = (1−(u/c)²)²
// for |u| ≤ c and zero beyond, applied to scaled residuals.
func tukeyWeight(u float64) float64 {
	t := u / TukeyC
	if t < -1 || t > 1 {
		return 0
	}
	s := 1 - t*t
	return s * s
}

// tukeyPsi is the influence function ψ(u) = u·w(u).
func tukeyPsi(u float64) float64 {
	return u * tukeyWeight(u)
}

// tukeyPsiDeriv is ψ'(u) = (1−(u/c)²)(1−5(u/c)²) for |u| ≤ c, zero beyond.
func tukeyPsiDeriv(u float64) float64 {
	t := u / TukeyC
	if t < -1 || t > 1 {
		return 0
	}
	t2 := t * t
	return (1 - t2) * (1 - 5*t2)
}

// madScale estimates the residual scale as MAD/0.6745.
func madScale(residuals []float64) float64 {
	abs := make([]float64, len(residuals))
	for i, r := range residuals {
		abs[i] = math.Abs(r)
	}
	sort.Float64s(abs)

	var med float64
	n := len(abs)
	if n%2 == 1 {
		med = abs[n/2]
	} else {
		med = (abs[n/2-1] + abs[n/2]) / 2
	}
	return med / madScaleFactor
}

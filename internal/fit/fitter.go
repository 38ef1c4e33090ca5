package fit

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hydrostat/gwflow/internal/model"
)

// Default bounds for the iteratively reweighted loop.
const (
	// DefaultMaxIterations caps the reweighting loop. Tukey IRLS on a
	// well-posed neighborhood converges in well under ten iterations;
	// hitting the cap is reported via FitResult.Converged, never silent.
	DefaultMaxIterations = 50

	// DefaultTolerance is the convergence tolerance on the largest
	// coefficient step between successive iterations, relative to the
	// coefficient magnitude.
	DefaultTolerance = 1e-8
)

// condLimit is the largest acceptable condition number for the normal
// equations built from unit-scaled local coordinates. Scaling removes the
// raw magnitude spread between the quadratic and constant columns, so any
// remaining ill-conditioning reflects the neighborhood geometry itself;
// beyond this limit the covariance is numerically meaningless and the
// design is treated as rank deficient.
const condLimit = 1e12

// Fitter fits the conic model to a target neighborhood.
// The zero value is not ready for use; construct with New.
type Fitter struct {
	maxIterations int
	tolerance     float64
}

// Option configures a Fitter.
type Option func(*Fitter)

// WithMaxIterations overrides the reweighting iteration cap.
func WithMaxIterations(n int) Option {
	return func(f *Fitter) {
		if n > 0 {
			f.maxIterations = n
		}
	}
}

// WithTolerance overrides the convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(f *Fitter) {
		if tol > 0 {
			f.tolerance = tol
		}
	}
}

// New creates a Fitter with the given options applied over the defaults.
func New(opts ...Option) *Fitter {
	f := &Fitter{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fit computes the conic model coefficients and their covariance at the
// target from the neighborhood observations.
//
// Precondition: the caller has already enforced the minimum neighbor count
// (at least model.MinConicNeighbors); Fit does not re-check it. The method
// has been validated at the configuration boundary.
//
// A rank-deficient neighborhood returns ErrRankDeficient wrapped with the
// target coordinates.
func (f *Fitter) Fit(target orb.Point, neighbors []model.Observation, method model.Method) (*model.FitResult, error) {
	x, z, scale := designMatrix(target, neighbors)

	var res *model.FitResult
	var err error
	switch method {
	case model.MethodRobust:
		res, err = f.robust(x, z, scale)
	default:
		res, err = f.ols(x, z, scale)
	}
	if err != nil {
		return nil, fmt.Errorf("target (%g, %g): %w", target[0], target[1], err)
	}

	res.Target = target
	res.Count = len(neighbors)
	return res, nil
}

// designMatrix builds the n×6 design matrix with columns
// dx², dy², dx·dy, dx, dy, 1 in local coordinates, and the response vector.
//
// The local offsets are divided by the largest absolute offset before the
// columns are formed. Without that, neighborhoods hundreds of meters across
// put the quadratic columns six orders of magnitude above the constant one
// and the normal equations fail the condition check even when the geometry
// is perfectly well posed. The returned scale lets the solution be mapped
// back to meter units afterwards.
func designMatrix(target orb.Point, neighbors []model.Observation) (*mat.Dense, *mat.VecDense, float64) {
	scale := 0.0
	for _, o := range neighbors {
		scale = math.Max(scale, math.Abs(o.Location[0]-target[0]))
		scale = math.Max(scale, math.Abs(o.Location[1]-target[1]))
	}
	if scale == 0 {
		scale = 1
	}

	n := len(neighbors)
	x := mat.NewDense(n, model.ConicTerms, nil)
	z := mat.NewVecDense(n, nil)
	for i, o := range neighbors {
		dx := (o.Location[0] - target[0]) / scale
		dy := (o.Location[1] - target[1]) / scale
		x.Set(i, model.CoeffA, dx*dx)
		x.Set(i, model.CoeffB, dy*dy)
		x.Set(i, model.CoeffC, dx*dy)
		x.Set(i, model.CoeffD, dx)
		x.Set(i, model.CoeffE, dy)
		x.Set(i, model.CoeffF, 1)
		z.SetVec(i, o.Head)
	}
	return x, z, scale
}

// coeffScale returns the factor that converts the coefficient at index i
// from the unit-scaled coordinate system back to meters: quadratic terms
// divide by scale², linear terms by scale, the intercept is untouched.
func coeffScale(i int, scale float64) float64 {
	switch i {
	case model.CoeffA, model.CoeffB, model.CoeffC:
		return 1 / (scale * scale)
	case model.CoeffD, model.CoeffE:
		return 1 / scale
	default:
		return 1
	}
}

// normalSolve solves the (optionally row-weighted) normal equations and
// returns the coefficients together with the inverse of the weighted XᵀX.
// A nil weight slice means all weights are one.
func normalSolve(x *mat.Dense, z *mat.VecDense, weights []float64) (*mat.VecDense, *mat.SymDense, error) {
	n, p := x.Dims()

	xw, zw := x, z
	if weights != nil {
		xw = mat.NewDense(n, p, nil)
		zw = mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			sw := math.Sqrt(weights[i])
			for j := 0; j < p; j++ {
				xw.Set(i, j, sw*x.At(i, j))
			}
			zw.SetVec(i, sw*z.AtVec(i))
		}
	}

	var xtx mat.SymDense
	xtx.SymOuterK(1, xw.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return nil, nil, ErrRankDeficient
	}
	if chol.Cond() > condLimit {
		return nil, nil, fmt.Errorf("%w: condition number %.3g", ErrRankDeficient, chol.Cond())
	}

	xtz := mat.NewVecDense(p, nil)
	xtz.MulVec(xw.T(), zw)

	beta := mat.NewVecDense(p, nil)
	if err := chol.SolveVecTo(beta, xtz); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRankDeficient, err)
	}

	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRankDeficient, err)
	}
	return beta, &inv, nil
}

// residuals returns z − X·beta.
func residuals(x *mat.Dense, z *mat.VecDense, beta *mat.VecDense) []float64 {
	n, _ := x.Dims()
	var fitted mat.VecDense
	fitted.MulVec(x, beta)
	r := make([]float64, n)
	for i := 0; i < n; i++ {
		r[i] = z.AtVec(i) - fitted.AtVec(i)
	}
	return r
}

// ols is the ordinary least squares fit with covariance σ²(XᵀX)⁻¹,
// σ² being the residual variance over n−p degrees of freedom.
func (f *Fitter) ols(x *mat.Dense, z *mat.VecDense, scale float64) (*model.FitResult, error) {
	beta, inv, err := normalSolve(x, z, nil)
	if err != nil {
		return nil, err
	}

	n, p := x.Dims()
	r := residuals(x, z, beta)
	var rss float64
	for _, ri := range r {
		rss += ri * ri
	}
	sigma2 := 0.0
	if n > p {
		sigma2 = rss / float64(n-p)
	}

	res := &model.FitResult{Converged: true}
	copyCoefficients(res, beta, scale)
	copyCovariance(res, inv, sigma2, scale)
	return res, nil
}

// robust is the iteratively reweighted least squares fit with the Tukey
// biweight. The scale is re-estimated from the MAD each iteration; the loop
// stops when the largest coefficient step falls under the tolerance or the
// iteration cap is reached, whichever comes first.
func (f *Fitter) robust(x *mat.Dense, z *mat.VecDense, coordScale float64) (*model.FitResult, error) {
	// Start from the ordinary solution.
	beta, _, err := normalSolve(x, z, nil)
	if err != nil {
		return nil, err
	}

	n, p := x.Dims()
	prev := make([]float64, p)
	weights := make([]float64, n)
	scale := 0.0
	converged := false
	iterations := 0

	for iter := 0; iter < f.maxIterations; iter++ {
		iterations = iter + 1
		r := residuals(x, z, beta)
		scale = madScale(r)
		if scale < 1e-12 {
			// Essentially exact fit; nothing left to downweight.
			converged = true
			scale = 0
			break
		}

		for i, ri := range r {
			weights[i] = tukeyWeight(ri / scale)
		}

		copy(prev, beta.RawVector().Data)
		next, _, err := normalSolve(x, z, weights)
		if err != nil {
			// The reweighting zeroed out too many rows; the weighted
			// design lost rank even though the full design had it.
			return nil, err
		}
		beta = next

		step := floats.Distance(prev, beta.RawVector().Data, math.Inf(1))
		limit := f.tolerance * (1 + floats.Norm(beta.RawVector().Data, math.Inf(1)))
		if step <= limit {
			converged = true
			break
		}
	}

	res := &model.FitResult{Converged: converged, Iterations: iterations}
	copyCoefficients(res, beta, coordScale)

	// Covariance needs the unweighted (XᵀX)⁻¹; the full design already
	// passed the rank check when the starting solution was computed.
	_, inv, err := normalSolve(x, z, nil)
	if err != nil {
		return nil, err
	}
	copyCovariance(res, inv, f.robustVariance(x, z, beta, scale), coordScale)
	return res, nil
}

// robustVariance computes the bias-corrected M-estimator variance scale
//
//	σ̂² = K² · [Σ(s·ψ(uᵢ))²/(n−p)] / [Σψ'(uᵢ)/n]²
//
// with the Huber small-sample correction
// K = 1 + (p/n)·Var(ψ')/mean(ψ')². Pairing this with (XᵀX)⁻¹ gives the
// covariance appropriate to the bounded-influence estimator.
func (f *Fitter) robustVariance(x *mat.Dense, z *mat.VecDense, beta *mat.VecDense, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	n, p := x.Dims()
	r := residuals(x, z, beta)

	var sumPsi2, sumDeriv, sumDeriv2 float64
	for _, ri := range r {
		u := ri / scale
		psi := scale * tukeyPsi(u)
		sumPsi2 += psi * psi
		d := tukeyPsiDeriv(u)
		sumDeriv += d
		sumDeriv2 += d * d
	}

	meanDeriv := sumDeriv / float64(n)
	if meanDeriv <= 0 || n <= p {
		// Everything was rejected as an outlier; fall back to the raw
		// residual variance rather than dividing by zero.
		var rss float64
		for _, ri := range r {
			rss += ri * ri
		}
		if n > p {
			return rss / float64(n-p)
		}
		return 0
	}

	varDeriv := sumDeriv2/float64(n) - meanDeriv*meanDeriv
	k := 1 + float64(p)/float64(n)*varDeriv/(meanDeriv*meanDeriv)
	return k * k * (sumPsi2 / float64(n-p)) / (meanDeriv * meanDeriv)
}

// copyCoefficients fills the result's coefficient array from the solution
// vector, converting each entry back to meter units.
func copyCoefficients(res *model.FitResult, beta *mat.VecDense, scale float64) {
	for i := 0; i < model.ConicTerms; i++ {
		res.Coefficients[i] = beta.AtVec(i) * coeffScale(i, scale)
	}
}

// copyCovariance fills the result's covariance as sigma2·inv converted back
// to meter units, symmetrized against floating-point drift.
func copyCovariance(res *model.FitResult, inv *mat.SymDense, sigma2 float64, scale float64) {
	for i := 0; i < model.ConicTerms; i++ {
		for j := i; j < model.ConicTerms; j++ {
			v := sigma2 * inv.At(i, j) * coeffScale(i, scale) * coeffScale(j, scale)
			res.Covariance[i][j] = v
			res.Covariance[j][i] = v
		}
	}
}

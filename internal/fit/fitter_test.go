package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/hydrostat/gwflow/internal/model"
)

// conicSurface evaluates the test surface
// z = a·dx² + b·dy² + c·dx·dy + d·dx + e·dy + f around the target.
func conicSurface(coeff [6]float64, target, p orb.Point) float64 {
	dx := p[0] - target[0]
	dy := p[1] - target[1]
	return coeff[0]*dx*dx + coeff[1]*dy*dy + coeff[2]*dx*dy + coeff[3]*dx + coeff[4]*dy + coeff[5]
}

// gridNeighbors lays observations on a local grid around the target with
// heads sampled from the surface plus the provided noise terms.
func gridNeighbors(coeff [6]float64, target orb.Point, noise []float64) []model.Observation {
	offsets := []orb.Point{
		{-2, -2}, {0, -2}, {2, -2},
		{-2, 0}, {2, 0},
		{-2, 2}, {0, 2}, {2, 2},
		{-1, -1}, {1, 1}, {-1, 1}, {1, -1},
	}
	obs := make([]model.Observation, len(offsets))
	for i, off := range offsets {
		p := orb.Point{target[0] + off[0], target[1] + off[1]}
		h := conicSurface(coeff, target, p)
		if noise != nil {
			h += noise[i%len(noise)]
		}
		obs[i] = model.Observation{WellID: "T", Location: p, Head: h}
	}
	return obs
}

// scatteredNeighbors spreads n wells on a spiral around the target with
// offsets reaching the given radius, heads sampled from the surface plus the
// provided noise terms. The spiral keeps the layout deterministic while
// avoiding any collinear or gridded structure.
func scatteredNeighbors(coeff [6]float64, target orb.Point, radius float64, n int, noise []float64) []model.Observation {
	obs := make([]model.Observation, n)
	for i := 0; i < n; i++ {
		ang := float64(i) * 2.399963
		r := radius * (0.2 + 0.8*float64(i+1)/float64(n))
		p := orb.Point{target[0] + r*math.Cos(ang), target[1] + r*math.Sin(ang)}
		h := conicSurface(coeff, target, p)
		if noise != nil {
			h += noise[i%len(noise)]
		}
		obs[i] = model.Observation{WellID: "S", Location: p, Head: h}
	}
	return obs
}

// TestFitFieldScaleNeighborhood exercises the fitter at realistic search
// radii, where neighbor offsets reach 1500 m and the quadratic design
// columns dwarf the constant one unless the coordinates are normalized.
func TestFitFieldScaleNeighborhood(t *testing.T) {
	t.Parallel()

	target := orb.Point{500000, 4200000}
	truth := [6]float64{3e-6, -2e-6, 1e-6, -0.01, 0.004, 75}

	t.Run("OLS recovers the surface at kilometer offsets", func(t *testing.T) {
		t.Parallel()
		obs := scatteredNeighbors(truth, target, 1500, 24, nil)
		res, err := New().Fit(target, obs, model.MethodOLS)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for i, want := range truth {
			tol := 1e-9 * math.Max(1, math.Abs(want))
			if math.Abs(res.Coefficients[i]-want) > tol {
				t.Errorf("coefficient %d: expected %v, got %v", i, want, res.Coefficients[i])
			}
		}
		gx, gy := res.Gradient()
		if math.Abs(gx-0.01) > 1e-9 || math.Abs(gy-(-0.004)) > 1e-9 {
			t.Errorf("expected gradient (0.01, -0.004), got (%v, %v)", gx, gy)
		}
	})

	t.Run("noisy planar trend fits with both methods", func(t *testing.T) {
		t.Parallel()
		planar := [6]float64{0, 0, 0, -0.01, -0.005, 50}
		noise := []float64{0.05, -0.03, 0.02, -0.05, 0.04, -0.01}
		obs := scatteredNeighbors(planar, target, 1500, 24, noise)

		for _, method := range []model.Method{model.MethodOLS, model.MethodRobust} {
			res, err := New().Fit(target, obs, method)
			if err != nil {
				t.Fatalf("%s: expected no error, got %v", method, err)
			}
			gx, gy := res.Gradient()
			if math.Abs(gx-0.01) > 1e-3 || math.Abs(gy-0.005) > 1e-3 {
				t.Errorf("%s: expected gradient near (0.01, 0.005), got (%v, %v)", method, gx, gy)
			}
		}
	})

	t.Run("robust path rejects a gross head error", func(t *testing.T) {
		t.Parallel()
		obs := scatteredNeighbors(truth, target, 1500, 24, nil)
		obs[5].Head += 50

		res, err := New().Fit(target, obs, model.MethodRobust)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !res.Converged {
			t.Errorf("expected convergence, took %d iterations", res.Iterations)
		}
		if got := math.Abs(res.Coefficients[model.CoeffF] - truth[5]); got > 1e-3 {
			t.Errorf("expected intercept within 1e-3 of %v, got error %v", truth[5], got)
		}
	})

	t.Run("collinear kilometer-scale wells stay rank deficient", func(t *testing.T) {
		t.Parallel()
		var obs []model.Observation
		for i := 0; i < 10; i++ {
			d := float64(i-5) * 300
			obs = append(obs, model.Observation{
				WellID:   "L",
				Location: orb.Point{target[0] + d, target[1] + 0.5*d},
				Head:     75 - 0.01*d,
			})
		}
		_, err := New().Fit(target, obs, model.MethodOLS)
		if !errors.Is(err, ErrRankDeficient) {
			t.Errorf("expected ErrRankDeficient, got %v", err)
		}
	})
}

// TestFitOLSExactRecovery verifies that ordinary least squares recovers the
// generating coefficients exactly on noise-free data.
func TestFitOLSExactRecovery(t *testing.T) {
	t.Parallel()

	target := orb.Point{100, 200}
	truth := [6]float64{0.5, -0.3, 0.2, 1.5, -2.5, 42}
	obs := gridNeighbors(truth, target, nil)

	res, err := New().Fit(target, obs, model.MethodOLS)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Run("coefficients match to 1e-8", func(t *testing.T) {
		t.Parallel()
		for i, want := range truth {
			if math.Abs(res.Coefficients[i]-want) > 1e-8 {
				t.Errorf("coefficient %d: expected %v, got %v", i, want, res.Coefficients[i])
			}
		}
	})

	t.Run("covariance is near zero on exact data", func(t *testing.T) {
		t.Parallel()
		for i := 0; i < model.ConicTerms; i++ {
			for j := 0; j < model.ConicTerms; j++ {
				if math.Abs(res.Covariance[i][j]) > 1e-10 {
					t.Errorf("covariance[%d][%d] = %v, expected near zero", i, j, res.Covariance[i][j])
				}
			}
		}
	})

	t.Run("result metadata", func(t *testing.T) {
		t.Parallel()
		if !res.Converged {
			t.Error("expected OLS to report converged")
		}
		if res.Iterations != 0 {
			t.Errorf("expected 0 iterations for OLS, got %d", res.Iterations)
		}
		if res.Count != len(obs) {
			t.Errorf("expected count %d, got %d", len(obs), res.Count)
		}
		if res.Target != target {
			t.Errorf("expected target %v, got %v", target, res.Target)
		}
	})

	t.Run("gradient is the negated linear terms", func(t *testing.T) {
		t.Parallel()
		gx, gy := res.Gradient()
		if math.Abs(gx-(-1.5)) > 1e-8 || math.Abs(gy-2.5) > 1e-8 {
			t.Errorf("expected gradient (-1.5, 2.5), got (%v, %v)", gx, gy)
		}
	})
}

// TestFitRobustCleanData verifies the robust fit agrees with OLS when there
// are no outliers to downweight.
func TestFitRobustCleanData(t *testing.T) {
	t.Parallel()

	target := orb.Point{0, 0}
	truth := [6]float64{0.1, 0.2, -0.05, 2, -1, 15}
	// Small symmetric perturbations, no gross outliers.
	noise := []float64{0.01, -0.01, 0.005, -0.005}
	obs := gridNeighbors(truth, target, noise)

	olsRes, err := New().Fit(target, obs, model.MethodOLS)
	if err != nil {
		t.Fatalf("OLS: expected no error, got %v", err)
	}
	robustRes, err := New().Fit(target, obs, model.MethodRobust)
	if err != nil {
		t.Fatalf("robust: expected no error, got %v", err)
	}

	if !robustRes.Converged {
		t.Errorf("expected robust fit to converge, took %d iterations", robustRes.Iterations)
	}
	for i := 0; i < model.ConicTerms; i++ {
		if math.Abs(olsRes.Coefficients[i]-robustRes.Coefficients[i]) > 0.05 {
			t.Errorf("coefficient %d: OLS %v vs robust %v differ beyond tolerance",
				i, olsRes.Coefficients[i], robustRes.Coefficients[i])
		}
	}
}

// TestFitRobustOutlierResistance verifies a gross outlier shifts the robust
// estimate far less than the ordinary one.
func TestFitRobustOutlierResistance(t *testing.T) {
	t.Parallel()

	target := orb.Point{0, 0}
	truth := [6]float64{0.1, 0.2, -0.05, 2, -1, 15}
	noise := []float64{0.02, -0.02, 0.01, -0.01}
	obs := gridNeighbors(truth, target, noise)

	// Corrupt one observation with a gross head error.
	obs[3].Head += 500

	olsRes, err := New().Fit(target, obs, model.MethodOLS)
	if err != nil {
		t.Fatalf("OLS: expected no error, got %v", err)
	}
	robustRes, err := New().Fit(target, obs, model.MethodRobust)
	if err != nil {
		t.Fatalf("robust: expected no error, got %v", err)
	}

	olsErr := math.Abs(olsRes.Coefficients[model.CoeffF] - truth[5])
	robustErr := math.Abs(robustRes.Coefficients[model.CoeffF] - truth[5])
	if robustErr >= olsErr/10 {
		t.Errorf("expected robust intercept error (%v) well under OLS error (%v)", robustErr, olsErr)
	}
	if robustErr > 0.5 {
		t.Errorf("expected robust intercept near %v, got %v", truth[5], robustRes.Coefficients[model.CoeffF])
	}
}

// TestFitRankDeficient verifies degenerate layouts are reported, not fitted.
func TestFitRankDeficient(t *testing.T) {
	t.Parallel()

	t.Run("collinear wells return ErrRankDeficient", func(t *testing.T) {
		t.Parallel()
		var obs []model.Observation
		for i := 0; i < 8; i++ {
			x := float64(i)
			obs = append(obs, model.Observation{
				WellID:   "L",
				Location: orb.Point{x, 2 * x},
				Head:     10 + x,
			})
		}
		_, err := New().Fit(orb.Point{0, 0}, obs, model.MethodOLS)
		if !errors.Is(err, ErrRankDeficient) {
			t.Errorf("expected ErrRankDeficient, got %v", err)
		}
	})

	t.Run("coincident wells return ErrRankDeficient", func(t *testing.T) {
		t.Parallel()
		var obs []model.Observation
		for i := 0; i < 8; i++ {
			obs = append(obs, model.Observation{
				WellID:   "C",
				Location: orb.Point{7, 7},
				Head:     12,
			})
		}
		_, err := New().Fit(orb.Point{0, 0}, obs, model.MethodRobust)
		if !errors.Is(err, ErrRankDeficient) {
			t.Errorf("expected ErrRankDeficient, got %v", err)
		}
	})

	t.Run("error names the target coordinates", func(t *testing.T) {
		t.Parallel()
		var obs []model.Observation
		for i := 0; i < 8; i++ {
			obs = append(obs, model.Observation{WellID: "C", Location: orb.Point{1, 1}, Head: 5})
		}
		_, err := New().Fit(orb.Point{123, 456}, obs, model.MethodOLS)
		if err == nil {
			t.Fatal("expected an error")
		}
		if got := err.Error(); got == "" || !errors.Is(err, ErrRankDeficient) {
			t.Errorf("unexpected error %v", err)
		}
	})
}

// TestFitCovarianceScaling verifies the OLS covariance grows with the
// residual noise level.
func TestFitCovarianceScaling(t *testing.T) {
	t.Parallel()

	target := orb.Point{0, 0}
	truth := [6]float64{0.3, 0.1, 0, 1, 1, 20}

	quiet, err := New().Fit(target, gridNeighbors(truth, target, []float64{0.01, -0.01}), model.MethodOLS)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	noisy, err := New().Fit(target, gridNeighbors(truth, target, []float64{1, -1}), model.MethodOLS)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for i := 0; i < model.ConicTerms; i++ {
		if noisy.Covariance[i][i] <= quiet.Covariance[i][i] {
			t.Errorf("variance %d: expected noisy (%v) above quiet (%v)",
				i, noisy.Covariance[i][i], quiet.Covariance[i][i])
		}
	}
}

// TestFitterOptions verifies the iteration cap and tolerance options.
func TestFitterOptions(t *testing.T) {
	t.Parallel()

	t.Run("iteration cap limits the robust loop", func(t *testing.T) {
		t.Parallel()
		target := orb.Point{0, 0}
		truth := [6]float64{0.1, 0.2, -0.05, 2, -1, 15}
		obs := gridNeighbors(truth, target, []float64{0.5, -0.4, 0.3, -0.6})
		obs[3].Head += 200

		res, err := New(WithMaxIterations(1)).Fit(target, obs, model.MethodRobust)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Iterations > 1 {
			t.Errorf("expected at most 1 iteration, got %d", res.Iterations)
		}
	})

	t.Run("non-positive option values keep defaults", func(t *testing.T) {
		t.Parallel()
		f := New(WithMaxIterations(0), WithTolerance(-1))
		if f.maxIterations != DefaultMaxIterations {
			t.Errorf("expected default max iterations, got %d", f.maxIterations)
		}
		if f.tolerance != DefaultTolerance {
			t.Errorf("expected default tolerance, got %v", f.tolerance)
		}
	})
}

// TestTukeyWeights verifies the biweight function shape.
func TestTukeyWeights(t *testing.T) {
	t.Parallel()

	t.Run("zero residual gets full weight", func(t *testing.T) {
		t.Parallel()
		if w := tukeyWeight(0); w != 1 {
			t.Errorf("expected weight 1 at zero, got %v", w)
		}
	})

	t.Run("weights decrease with residual size", func(t *testing.T) {
		t.Parallel()
		prev := tukeyWeight(0)
		for u := 0.5; u < TukeyC; u += 0.5 {
			w := tukeyWeight(u)
			if w >= prev {
				t.Errorf("expected weight to decrease at u=%v: %v then %v", u, prev, w)
			}
			prev = w
		}
	})

	t.Run("weights vanish beyond the cutoff", func(t *testing.T) {
		t.Parallel()
		for _, u := range []float64{TukeyC, TukeyC + 0.1, 10, -10} {
			if w := tukeyWeight(u); w != 0 {
				t.Errorf("expected weight 0 at u=%v, got %v", u, w)
			}
		}
	})

	t.Run("symmetric in the residual sign", func(t *testing.T) {
		t.Parallel()
		for _, u := range []float64{0.5, 1, 2, 4} {
			if tukeyWeight(u) != tukeyWeight(-u) {
				t.Errorf("expected symmetry at u=%v", u)
			}
		}
	})
}

// TestMADScale verifies the scale estimator on hand-computable inputs.
func TestMADScale(t *testing.T) {
	t.Parallel()

	t.Run("symmetric residuals", func(t *testing.T) {
		t.Parallel()
		// |r| = {1, 1, 2, 2, 3}; median 2; scale 2/0.6745.
		got := madScale([]float64{-3, -2, -1, 1, 2})
		want := 2 / 0.6745
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("all-zero residuals give zero scale", func(t *testing.T) {
		t.Parallel()
		if got := madScale([]float64{0, 0, 0, 0}); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})
}

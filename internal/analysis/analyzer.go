package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/hydrostat/gwflow/internal/circstat"
	"github.com/hydrostat/gwflow/internal/fit"
	"github.com/hydrostat/gwflow/internal/grid"
	"github.com/hydrostat/gwflow/internal/model"
	"github.com/hydrostat/gwflow/internal/spatial"
)

// ConfidenceHalfWidthDeg is the half-width, in degrees, of the directional
// confidence interval attached to every fit: the reported confidence is the
// probability that the true flow direction lies within this many degrees of
// the fitted direction.
const ConfidenceHalfWidthDeg = 10.0

// Analyzer runs venue analyses against one immutable observation index.
// It is safe for concurrent use; all state is read-only after construction.
type Analyzer struct {
	index   *spatial.Index
	fitter  *fit.Fitter
	logger  *slog.Logger
	workers int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom logger. If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithWorkers sets the number of concurrent per-target workers.
// Values below one fall back to the number of CPUs.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithFitter sets a custom fitter (for non-default iteration bounds).
func WithFitter(f *fit.Fitter) Option {
	return func(a *Analyzer) {
		a.fitter = f
	}
}

// New creates an Analyzer over the given observation index.
func New(index *spatial.Index, opts ...Option) *Analyzer {
	a := &Analyzer{
		index:   index,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.fitter == nil {
		a.fitter = fit.New()
	}
	return a
}

// targetOutcome is the per-target result slot. Exactly one of result and
// skip is set. Slots are written by the worker owning the slot index and
// read only after Wait, so no lock is needed.
type targetOutcome struct {
	result *model.FitResult
	skip   *model.SkippedTarget
}

// Run analyzes the venue with the given parameters and returns the
// completed AnalysisRun.
//
// Parameters are validated fast, before any computation. A zero-area venue
// is rejected as degenerate. If the context is cancelled mid-run the
// partial output is discarded and ctx.Err() is returned.
func (a *Analyzer) Run(ctx context.Context, venue model.Venue, params model.Parameters) (*model.AnalysisRun, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("venue %q: %w", venue.Name, err)
	}
	if venue.Shape == nil || venue.Shape.Area() == 0 {
		return nil, fmt.Errorf("venue %q: zero-area venue shape", venue.Name)
	}

	started := time.Now()
	targets := grid.Layout(venue.Shape, params.Spacing)

	a.logger.Info("starting analysis",
		"venue", venue.Name,
		"targets", len(targets),
		"observations", a.index.Len(),
		"method", params.Method,
		"workers", a.workers,
	)

	outcomes := make([]targetOutcome, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			outcomes[i] = a.analyzeTarget(target, params)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// A cancelled run has no usable partial output.
		a.logger.Warn("analysis cancelled", "venue", venue.Name, "reason", err)
		return nil, err
	}

	run := &model.AnalysisRun{
		Venue:       venue.Name,
		Parameters:  params,
		StartedAt:   started,
		TargetCount: len(targets),
	}
	for _, o := range outcomes {
		switch {
		case o.result != nil:
			if !o.result.Converged {
				run.Unconverged++
			}
			run.Results = append(run.Results, *o.result)
		case o.skip != nil:
			run.Skipped = append(run.Skipped, *o.skip)
		}
	}
	run.Elapsed = time.Since(started)

	a.logger.Info("analysis complete",
		"venue", venue.Name,
		"fitted", len(run.Results),
		"skipped", len(run.Skipped),
		"unconverged", run.Unconverged,
		"elapsed", run.Elapsed,
	)
	return run, nil
}

// analyzeTarget runs the query, filter, fit and direction steps for one
// grid target.
func (a *Analyzer) analyzeTarget(target orb.Point, params model.Parameters) targetOutcome {
	neighbors := spatial.FilterObservations(a.index.Within(target, params.Radius), params)
	if len(neighbors) < params.MinNeighbors {
		// Expected in sparse regions; excluded by design, not an error.
		return targetOutcome{skip: &model.SkippedTarget{
			Target:    target,
			Reason:    model.SkipInsufficientNeighbors,
			Neighbors: len(neighbors),
		}}
	}

	result, err := a.fitter.Fit(target, neighbors, params.Method)
	if err != nil {
		if errors.Is(err, fit.ErrRankDeficient) {
			a.logger.Debug("skipping rank-deficient target",
				"x", target[0], "y", target[1], "neighbors", len(neighbors))
			return targetOutcome{skip: &model.SkippedTarget{
				Target:    target,
				Reason:    model.SkipRankDeficient,
				Neighbors: len(neighbors),
			}}
		}
		// No other error kinds are produced by the fitter today; treat an
		// unexpected one like a rank problem rather than dropping it.
		a.logger.Warn("unexpected fit failure", "x", target[0], "y", target[1], "error", err)
		return targetOutcome{skip: &model.SkippedTarget{
			Target:    target,
			Reason:    model.SkipRankDeficient,
			Neighbors: len(neighbors),
		}}
	}

	result.DirectionConfidence = a.directionConfidence(result)
	return targetOutcome{result: result}
}

// directionConfidence evaluates P(direction within ±10° of the fitted
// direction) from the projected normal distribution of the gradient.
// A gradient covariance that is not positive definite (a degenerate but
// full-rank fit) yields zero confidence rather than an error.
func (a *Analyzer) directionConfidence(res *model.FitResult) float64 {
	gx, gy := res.Gradient()
	dist, err := circstat.New([2]float64{gx, gy}, res.GradientCovariance())
	if err != nil {
		a.logger.Debug("gradient covariance not positive definite",
			"x", res.Target[0], "y", res.Target[1])
		return 0
	}
	return dist.IntervalAround(dist.Mean(), ConfidenceHalfWidthDeg*math.Pi/180)
}

package model

import (
	"time"

	"github.com/paulmach/orb"
)

// Skip reasons recorded for targets that produced no FitResult.
const (
	// SkipInsufficientNeighbors marks a target whose filtered neighborhood
	// was smaller than MinNeighbors. This is an expected outcome in sparse
	// regions, excluded by design rather than reported as an error.
	SkipInsufficientNeighbors = "insufficient_neighbors"

	// SkipRankDeficient marks a target whose design matrix was rank
	// deficient (for example, all neighbors collinear). The fit is fatal
	// for that target only; the rest of the grid is unaffected.
	SkipRankDeficient = "rank_deficient"
)

// SkippedTarget records one grid target that was not fitted and why,
// so callers can audit grid coverage.
type SkippedTarget struct {
	// Target is the skipped grid point.
	Target orb.Point `json:"target"`

	// Reason is one of the Skip* constants.
	Reason string `json:"reason"`

	// Neighbors is the filtered neighbor count at the time of the skip.
	Neighbors int `json:"neighbors"`
}

// AnalysisRun is the aggregate result of analyzing one venue.
// It carries the run parameters for provenance alongside the results, so a
// stored or serialized run is self-describing.
type AnalysisRun struct {
	// Venue is the name of the analyzed region.
	Venue string `json:"venue"`

	// Parameters are the exact parameters the run was executed with.
	Parameters Parameters `json:"parameters"`

	// StartedAt is the wall-clock start of the run.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total run duration.
	Elapsed time.Duration `json:"elapsed"`

	// TargetCount is the total number of grid targets the venue produced.
	TargetCount int `json:"target_count"`

	// Results holds one FitResult per fitted target, in grid order.
	// The order is deterministic regardless of execution parallelism.
	Results []FitResult `json:"results"`

	// Skipped lists the targets that produced no fit, with reasons.
	Skipped []SkippedTarget `json:"skipped,omitempty"`

	// Unconverged counts robust fits that hit the iteration cap before
	// meeting the convergence tolerance. Their results are retained but
	// flagged via FitResult.Converged.
	Unconverged int `json:"unconverged,omitempty"`
}

// Coverage returns the fraction of grid targets that produced a fit.
// It returns zero for an empty grid.
func (r *AnalysisRun) Coverage() float64 {
	if r.TargetCount == 0 {
		return 0
	}
	return float64(len(r.Results)) / float64(r.TargetCount)
}

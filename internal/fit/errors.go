package fit

import "errors"

// Regression errors.
var (
	// ErrRankDeficient is returned when the design matrix does not have
	// full column rank, for example when all neighbors are collinear or
	// share a location. The fit is fatal for the affected target; the
	// orchestrator records the skip and continues with the rest of the
	// grid.
	ErrRankDeficient = errors.New("rank-deficient design matrix")
)

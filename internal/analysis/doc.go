// Package analysis orchestrates the full per-venue computation.
//
// For each grid target inside the venue the orchestrator queries the
// observation index, applies the attribute filters, fits the local conic
// model when enough neighbors remain, and converts the fitted gradient and
// its covariance into a directional confidence. Targets with too few
// neighbors are skipped silently by design; rank-deficient neighborhoods are
// skipped with a recorded reason so one bad neighborhood never invalidates
// the rest of the grid.
//
// Per-target work depends only on that target's neighborhood, so targets are
// processed in parallel with errgroup under a concurrency limit. Results are
// assembled by target position, making the output order deterministic
// regardless of completion order. A cancelled run discards partial output
// and returns the context error; partial result sets have no defined resume
// semantics.
package analysis

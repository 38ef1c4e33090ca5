package spatial

import (
	"github.com/hydrostat/gwflow/internal/model"
)

// FilterObservations applies the per-run attribute filters to a radius-query
// result: aquifer set membership and the inclusive YYYYMMDD date range.
// The input order is preserved; the input slice is not modified.
func FilterObservations(obs []model.Observation, params model.Parameters) []model.Observation {
	out := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		if !params.MatchesAquifer(o.Aquifer) {
			continue
		}
		if !params.InDateRange(o.ObservedOn) {
			continue
		}
		out = append(out, o)
	}
	return out
}

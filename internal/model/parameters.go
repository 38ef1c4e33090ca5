package model

import "fmt"

// MinConicNeighbors is the smallest admissible minimum-neighbor count.
// The conic model has six free parameters, so a neighborhood with fewer
// than six observations cannot determine the fit.
const MinConicNeighbors = 6

// Parameters holds the fitting parameters for one analysis run.
// They are validated once, at the boundary, before any computation begins;
// the engine itself assumes a valid set.
type Parameters struct {
	// Radius is the neighborhood search radius in meters. Observations
	// strictly closer than Radius to a grid target participate in that
	// target's fit.
	Radius float64 `json:"radius" yaml:"radius"`

	// Spacing is the grid lattice spacing in meters, applied on both axes.
	Spacing float64 `json:"spacing" yaml:"spacing"`

	// MinNeighbors is the minimum number of filtered neighbors required
	// before a target is fitted. Targets below the threshold are skipped,
	// not failed. Must be at least MinConicNeighbors.
	MinNeighbors int `json:"min_neighbors" yaml:"minNeighbors"`

	// Method selects the regression method for the local fit.
	Method Method `json:"method" yaml:"method"`

	// Aquifers restricts the fit to observations whose aquifer code is in
	// this set. Empty means all aquifers. An unrecognized code simply
	// matches nothing; vocabulary checks belong to the caller's registry.
	Aquifers []string `json:"aquifers,omitempty" yaml:"aquifers,omitempty"`

	// DateFrom and DateTo bound the observation dates, inclusive, as
	// integer YYYYMMDD. Zero means unbounded on that side.
	DateFrom int `json:"date_from,omitempty" yaml:"dateFrom,omitempty"`
	DateTo   int `json:"date_to,omitempty" yaml:"dateTo,omitempty"`
}

// Validate checks the parameters and returns the first problem found.
// Fixing one error often makes others irrelevant, so we do not collect all.
func (p Parameters) Validate() error {
	if p.Radius <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidRadius, p.Radius)
	}
	if p.Spacing <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidSpacing, p.Spacing)
	}
	if p.MinNeighbors < MinConicNeighbors {
		return fmt.Errorf("%w: got %d", ErrTooFewNeighbors, p.MinNeighbors)
	}
	if _, err := ParseMethod(string(p.Method)); err != nil {
		return err
	}
	if p.DateFrom != 0 && p.DateTo != 0 && p.DateFrom > p.DateTo {
		return fmt.Errorf("%w: got %d..%d", ErrInvalidDateBounds, p.DateFrom, p.DateTo)
	}
	return nil
}

// InDateRange reports whether the YYYYMMDD date falls inside the bounds.
// Both bounds are inclusive; a zero bound is open on that side.
func (p Parameters) InDateRange(yyyymmdd int) bool {
	if p.DateFrom != 0 && yyyymmdd < p.DateFrom {
		return false
	}
	if p.DateTo != 0 && yyyymmdd > p.DateTo {
		return false
	}
	return true
}

// MatchesAquifer reports whether the aquifer code passes the category
// filter. An empty filter matches everything.
func (p Parameters) MatchesAquifer(code string) bool {
	if len(p.Aquifers) == 0 {
		return true
	}
	for _, a := range p.Aquifers {
		if a == code {
			return true
		}
	}
	return false
}

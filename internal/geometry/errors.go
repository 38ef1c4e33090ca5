package geometry

import "errors"

// Shape construction errors.
// Constructors wrap these with the offending values, so callers can both
// match with errors.Is and show an actionable message.
var (
	// ErrDegenerateShape is returned when a shape cannot enclose any area:
	// a polygon with fewer than three distinct vertices, a ring whose
	// signed area is zero, a circle with non-positive radius, or a
	// rectangle with inverted or collapsed sides. The engine never coerces
	// a degenerate shape into a usable one.
	ErrDegenerateShape = errors.New("degenerate shape")
)

package geometry

import (
	"github.com/paulmach/orb"
)

// Kind identifies a shape variant. The set is closed: every Shape in the
// engine is exactly one of these.
type Kind int

const (
	// KindCircle is a circle given by center and radius.
	KindCircle Kind = iota

	// KindRectangle is an axis-aligned rectangle.
	KindRectangle

	// KindPolygon is a simple (non-self-intersecting) polygon ring.
	KindPolygon
)

// String returns a human-readable representation of the shape kind.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is the capability set every venue shape implements.
//
// Boundary rings are closed (first vertex repeated last) and oriented
// counter-clockwise, so the enclosed domain lies on the left of the ring and
// the signed-area formulas downstream see a positive area.
type Shape interface {
	// Kind returns the shape variant tag.
	Kind() Kind

	// Boundary returns the closed boundary ring. Curved boundaries are
	// approximated by a fixed vertex count.
	Boundary() []orb.Point

	// Extent returns the axis-aligned bounding box.
	Extent() orb.Bound

	// Centroid returns the area centroid.
	Centroid() orb.Point

	// Area returns the enclosed area. Internally signed formulas are used;
	// the returned value is the absolute area.
	Area() float64

	// Perimeter returns the boundary length.
	Perimeter() float64

	// Contains reports whether the point lies inside the shape.
	// Boundary handling is shape-specific; see each implementation.
	Contains(p orb.Point) bool

	// ContainsMany reports containment for each point in order.
	ContainsMany(pts []orb.Point) []bool

	// Circumcircle returns a center and radius enclosing every boundary
	// vertex. It is used to bound spatial-index queries, so it may be
	// slightly loose but never too small.
	Circumcircle() (orb.Point, float64)
}

// containsEach is the shared ContainsMany implementation: shapes with no
// cheaper batch strategy test each point individually.
func containsEach(s Shape, pts []orb.Point) []bool {
	in := make([]bool, len(pts))
	for i, p := range pts {
		in[i] = s.Contains(p)
	}
	return in
}

// signedArea computes the shoelace sum over a closed ring. The result is
// positive for counter-clockwise rings, negative for clockwise ones.
func signedArea(ring []orb.Point) float64 {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

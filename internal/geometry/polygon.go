package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygon is a simple (non-self-intersecting) polygon.
//
// The ring is stored closed and counter-clockwise, so the interior lies on
// the left of the boundary walk and the signed shoelace area is positive.
// Clockwise input is reversed at construction; the two constructions are
// geometrically identical.
type Polygon struct {
	ring orb.Ring
}

// NewPolygon constructs a Polygon from a vertex sequence. The ring may be
// given open or closed and in either orientation. It returns
// ErrDegenerateShape for fewer than three distinct vertices or a zero-area
// ring.
func NewPolygon(vertices []orb.Point) (*Polygon, error) {
	if n := countDistinct(vertices); n < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 distinct vertices, got %d", ErrDegenerateShape, n)
	}

	ring := make(orb.Ring, len(vertices), len(vertices)+1)
	copy(ring, vertices)
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}

	if signedArea(ring) == 0 {
		return nil, fmt.Errorf("%w: polygon ring encloses zero area", ErrDegenerateShape)
	}
	if ring.Orientation() == orb.CW {
		ring.Reverse()
	}
	return &Polygon{ring: ring}, nil
}

// countDistinct counts distinct vertices in the input sequence.
func countDistinct(vertices []orb.Point) int {
	seen := make(map[orb.Point]struct{}, len(vertices))
	for _, v := range vertices {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Kind returns KindPolygon.
func (pg *Polygon) Kind() Kind { return KindPolygon }

// Boundary returns a copy of the closed counter-clockwise ring.
func (pg *Polygon) Boundary() []orb.Point {
	out := make([]orb.Point, len(pg.ring))
	copy(out, pg.ring)
	return out
}

// Extent returns the bounding box of the ring.
func (pg *Polygon) Extent() orb.Bound { return pg.ring.Bound() }

// Centroid returns the area centroid of the polygon.
func (pg *Polygon) Centroid() orb.Point {
	c, _ := planar.CentroidArea(pg.ring)
	return c
}

// Area returns the absolute value of the signed shoelace area.
func (pg *Polygon) Area() float64 { return math.Abs(signedArea(pg.ring)) }

// Perimeter returns the ring length.
func (pg *Polygon) Perimeter() float64 { return planar.Length(pg.ring) }

// Contains reports whether p lies inside the polygon, by ray casting.
// Points exactly on an edge may classify either way depending on
// floating-point tie-breaking in the crossing test; the classification is
// consistent within this implementation but intentionally unspecified, since
// grid targets are generic floating coordinates and exact boundary hits are
// measure-zero in practice.
func (pg *Polygon) Contains(p orb.Point) bool {
	return planar.RingContains(pg.ring, p)
}

// ContainsMany reports containment for each point.
func (pg *Polygon) ContainsMany(pts []orb.Point) []bool {
	return containsEach(pg, pts)
}

// Circumcircle returns the extent center and the distance to the farthest
// vertex. The result encloses every vertex; it is not the minimal
// enclosing circle, which the query bounding use case does not need.
func (pg *Polygon) Circumcircle() (orb.Point, float64) {
	center := pg.ring.Bound().Center()
	var r2 float64
	for _, v := range pg.ring {
		if d := planar.DistanceSquared(center, v); d > r2 {
			r2 = d
		}
	}
	return center, math.Sqrt(r2)
}

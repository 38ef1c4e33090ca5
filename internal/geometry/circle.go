package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// circleSegments is the number of segments used to approximate a circle
// boundary. 64 keeps the polygonal approximation within 0.13% of the true
// area while staying cheap to iterate.
const circleSegments = 64

// Circle is a circular shape given by center and radius in meters.
type Circle struct {
	center orb.Point
	radius float64
}

// NewCircle constructs a Circle. The radius must be positive.
func NewCircle(center orb.Point, radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: circle radius %g must be positive", ErrDegenerateShape, radius)
	}
	return &Circle{center: center, radius: radius}, nil
}

// Kind returns KindCircle.
func (c *Circle) Kind() Kind { return KindCircle }

// Center returns the circle center.
func (c *Circle) Center() orb.Point { return c.center }

// Radius returns the circle radius.
func (c *Circle) Radius() float64 { return c.radius }

// Boundary returns the boundary approximated by circleSegments points evenly
// spaced in angle, counter-clockwise, with the first point repeated last.
func (c *Circle) Boundary() []orb.Point {
	ring := make([]orb.Point, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		ring[i] = orb.Point{
			c.center[0] + c.radius*math.Cos(a),
			c.center[1] + c.radius*math.Sin(a),
		}
	}
	ring[circleSegments] = ring[0]
	return ring
}

// Extent returns the bounding box [cx−r, cx+r] × [cy−r, cy+r].
func (c *Circle) Extent() orb.Bound {
	return orb.Bound{
		Min: orb.Point{c.center[0] - c.radius, c.center[1] - c.radius},
		Max: orb.Point{c.center[0] + c.radius, c.center[1] + c.radius},
	}
}

// Centroid returns the center.
func (c *Circle) Centroid() orb.Point { return c.center }

// Area returns πr².
func (c *Circle) Area() float64 { return math.Pi * c.radius * c.radius }

// Perimeter returns 2πr.
func (c *Circle) Perimeter() float64 { return 2 * math.Pi * c.radius }

// Contains reports whether p lies strictly inside the circle.
// Points exactly on the boundary are excluded.
func (c *Circle) Contains(p orb.Point) bool {
	return planar.DistanceSquared(c.center, p) < c.radius*c.radius
}

// ContainsMany reports containment for each point.
func (c *Circle) ContainsMany(pts []orb.Point) []bool {
	return containsEach(c, pts)
}

// Circumcircle returns the circle itself.
func (c *Circle) Circumcircle() (orb.Point, float64) {
	return c.center, c.radius
}

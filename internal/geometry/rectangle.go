package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	xmin, xmax, ymin, ymax float64
}

// NewRectangle constructs a Rectangle from its side coordinates.
// Requires xmin < xmax and ymin < ymax.
func NewRectangle(xmin, xmax, ymin, ymax float64) (*Rectangle, error) {
	if xmin >= xmax || ymin >= ymax {
		return nil, fmt.Errorf("%w: rectangle sides [%g,%g]x[%g,%g] must satisfy xmin<xmax and ymin<ymax",
			ErrDegenerateShape, xmin, xmax, ymin, ymax)
	}
	return &Rectangle{xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax}, nil
}

// Kind returns KindRectangle.
func (r *Rectangle) Kind() Kind { return KindRectangle }

// Boundary returns the four corners counter-clockwise starting at
// (xmin, ymin), with the first corner repeated last.
func (r *Rectangle) Boundary() []orb.Point {
	return []orb.Point{
		{r.xmin, r.ymin},
		{r.xmax, r.ymin},
		{r.xmax, r.ymax},
		{r.xmin, r.ymax},
		{r.xmin, r.ymin},
	}
}

// Extent returns the rectangle itself as a bound.
func (r *Rectangle) Extent() orb.Bound {
	return orb.Bound{Min: orb.Point{r.xmin, r.ymin}, Max: orb.Point{r.xmax, r.ymax}}
}

// Centroid returns the center point.
func (r *Rectangle) Centroid() orb.Point {
	return orb.Point{(r.xmin + r.xmax) / 2, (r.ymin + r.ymax) / 2}
}

// Area returns the rectangle area.
func (r *Rectangle) Area() float64 {
	return (r.xmax - r.xmin) * (r.ymax - r.ymin)
}

// Perimeter returns the rectangle perimeter.
func (r *Rectangle) Perimeter() float64 {
	return 2 * ((r.xmax - r.xmin) + (r.ymax - r.ymin))
}

// Contains reports whether p lies strictly inside the rectangle.
// All four sides are excluded.
func (r *Rectangle) Contains(p orb.Point) bool {
	return p[0] > r.xmin && p[0] < r.xmax && p[1] > r.ymin && p[1] < r.ymax
}

// ContainsMany reports containment for each point.
func (r *Rectangle) ContainsMany(pts []orb.Point) []bool {
	return containsEach(r, pts)
}

// Circumcircle returns the center and the half-diagonal.
func (r *Rectangle) Circumcircle() (orb.Point, float64) {
	return r.Centroid(), math.Hypot(r.xmax-r.xmin, r.ymax-r.ymin) / 2
}

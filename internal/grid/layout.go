package grid

import (
	"github.com/paulmach/orb"

	"github.com/hydrostat/gwflow/internal/geometry"
)

// Layout returns the grid targets for the shape at the given spacing,
// row-major (y ascending, then x ascending). The caller validates
// spacing > 0 at the boundary; Layout returns nil for a non-positive
// spacing rather than looping forever.
func Layout(shape geometry.Shape, spacing float64) []orb.Point {
	if spacing <= 0 {
		return nil
	}

	c := shape.Centroid()
	ext := shape.Extent()
	xs := lattice(c[0], ext.Min[0], ext.Max[0], spacing)
	ys := lattice(c[1], ext.Min[1], ext.Max[1], spacing)

	pts := make([]orb.Point, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			pts = append(pts, orb.Point{x, y})
		}
	}

	inside := shape.ContainsMany(pts)
	out := pts[:0]
	for i, p := range pts {
		if inside[i] {
			out = append(out, p)
		}
	}
	return out
}

// lattice returns anchor + k*step for all integer k such that the value
// stays within [lo, hi], in ascending order. The anchor itself (k = 0) is
// always included even when the extent degenerates around it.
func lattice(anchor, lo, hi, step float64) []float64 {
	var down []float64
	for v := anchor - step; v >= lo; v -= step {
		down = append(down, v)
	}

	// reverse the downward walk so the result ascends
	out := make([]float64, 0, len(down)+1)
	for i := len(down) - 1; i >= 0; i-- {
		out = append(out, down[i])
	}
	out = append(out, anchor)
	for v := anchor + step; v <= hi; v += step {
		out = append(out, v)
	}
	return out
}

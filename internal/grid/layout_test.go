package grid

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/hydrostat/gwflow/internal/geometry"
)

// TestLayoutRectangle verifies the lattice over an axis-aligned rectangle,
// where the expected node set can be enumerated by hand.
func TestLayoutRectangle(t *testing.T) {
	t.Parallel()

	t.Run("centroid anchored lattice fills the interior", func(t *testing.T) {
		t.Parallel()
		// Centroid (5, 5); spacing 2 puts nodes at the odd coordinates
		// 1,3,5,7,9 on each axis, all strictly inside (0,10).
		r, err := geometry.NewRectangle(0, 10, 0, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		pts := Layout(r, 2)
		if len(pts) != 25 {
			t.Fatalf("expected 25 targets, got %d", len(pts))
		}
		for _, p := range pts {
			if p[0] < 1 || p[0] > 9 || p[1] < 1 || p[1] > 9 {
				t.Errorf("target %v outside expected lattice", p)
			}
		}
	})

	t.Run("centroid is always a target", func(t *testing.T) {
		t.Parallel()
		r, err := geometry.NewRectangle(0, 10, 0, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		found := false
		for _, p := range Layout(r, 3) {
			if p == (orb.Point{5, 5}) {
				found = true
			}
		}
		if !found {
			t.Error("expected the centroid among the targets")
		}
	})

	t.Run("row major order y ascending then x ascending", func(t *testing.T) {
		t.Parallel()
		r, err := geometry.NewRectangle(0, 10, 0, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		pts := Layout(r, 2)
		for i := 1; i < len(pts); i++ {
			prev, cur := pts[i-1], pts[i]
			if cur[1] < prev[1] || (cur[1] == prev[1] && cur[0] <= prev[0]) {
				t.Fatalf("targets not row-major at %d: %v then %v", i, prev, cur)
			}
		}
	})

	t.Run("spacing larger than the extent leaves only the centroid", func(t *testing.T) {
		t.Parallel()
		r, err := geometry.NewRectangle(0, 10, 0, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		pts := Layout(r, 100)
		if len(pts) != 1 || pts[0] != (orb.Point{5, 5}) {
			t.Errorf("expected only the centroid, got %v", pts)
		}
	})

	t.Run("non-positive spacing returns nil", func(t *testing.T) {
		t.Parallel()
		r, err := geometry.NewRectangle(0, 10, 0, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := Layout(r, 0); got != nil {
			t.Errorf("expected nil for zero spacing, got %v", got)
		}
		if got := Layout(r, -1); got != nil {
			t.Errorf("expected nil for negative spacing, got %v", got)
		}
	})
}

// TestLayoutCircle verifies that circular venues keep only interior nodes.
func TestLayoutCircle(t *testing.T) {
	t.Parallel()

	c, err := geometry.NewCircle(orb.Point{0, 0}, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	pts := Layout(c, 4)

	t.Run("every target is inside the circle", func(t *testing.T) {
		t.Parallel()
		for _, p := range pts {
			if p[0]*p[0]+p[1]*p[1] >= 100 {
				t.Errorf("target %v not strictly inside the circle", p)
			}
		}
	})

	t.Run("corner lattice nodes are rejected", func(t *testing.T) {
		t.Parallel()
		// (8, 8) is on the lattice but outside the circle.
		for _, p := range pts {
			if p == (orb.Point{8, 8}) {
				t.Error("expected corner node {8 8} to be filtered out")
			}
		}
	})

	t.Run("lattice cross section matches expectation", func(t *testing.T) {
		t.Parallel()
		// Along y=0 the nodes -8, -4, 0, 4, 8 are all inside.
		var axis int
		for _, p := range pts {
			if p[1] == 0 {
				axis++
			}
		}
		if axis != 5 {
			t.Errorf("expected 5 targets along y=0, got %d", axis)
		}
	})
}

// TestLayoutDeterministic verifies that repeated calls produce identical
// output. Downstream report ordering depends on this.
func TestLayoutDeterministic(t *testing.T) {
	t.Parallel()

	pg, err := geometry.NewPolygon([]orb.Point{{0, 0}, {30, 0}, {30, 20}, {15, 30}, {0, 20}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	first := Layout(pg, 3)
	if len(first) == 0 {
		t.Fatal("expected a non-empty layout")
	}
	for run := 0; run < 5; run++ {
		again := Layout(pg, 3)
		if len(again) != len(first) {
			t.Fatalf("run %d: expected %d targets, got %d", run, len(first), len(again))
		}
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d: target %d differs: %v vs %v", run, i, first[i], again[i])
			}
		}
	}
}

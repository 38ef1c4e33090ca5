package spatial

import (
	"container/heap"
	"sort"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/hydrostat/gwflow/internal/model"
)

// wellPoint is one indexed observation, carrying its position in the
// observation slice so query results map back to full records.
type wellPoint struct {
	x, y float64
	idx  int
}

// Compare implements kdtree.Comparable.
func (p wellPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(wellPoint)
	switch d {
	case 0:
		return p.x - q.x
	case 1:
		return p.y - q.y
	default:
		panic("spatial: illegal dimension")
	}
}

// Dims implements kdtree.Comparable.
func (p wellPoint) Dims() int { return 2 }

// Distance implements kdtree.Comparable using the squared Euclidean metric.
// Queries compare against squared radii so no square roots are taken inside
// the tree walk.
func (p wellPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(wellPoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

// wellPoints implements kdtree.Interface for tree construction.
type wellPoints []wellPoint

func (p wellPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p wellPoints) Len() int                      { return len(p) }
func (p wellPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p wellPoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(pointPlane{wellPoints: p, Dim: d}, kdtree.MedianOfMedians(pointPlane{wellPoints: p, Dim: d}))
}

// pointPlane implements sort.Interface and kdtree.SortSlicer for wellPoints.
type pointPlane struct {
	wellPoints
	kdtree.Dim
}

func (p pointPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.wellPoints[i].x < p.wellPoints[j].x
	case 1:
		return p.wellPoints[i].y < p.wellPoints[j].y
	default:
		panic("spatial: illegal dimension")
	}
}
func (p pointPlane) Slice(start, end int) kdtree.SortSlicer {
	return pointPlane{wellPoints: p.wellPoints[start:end], Dim: p.Dim}
}
func (p pointPlane) Swap(i, j int) {
	p.wellPoints[i], p.wellPoints[j] = p.wellPoints[j], p.wellPoints[i]
}

// Index is the immutable spatial index over the observation set.
// Build once, query from as many goroutines as needed.
type Index struct {
	observations []model.Observation
	tree         *kdtree.Tree

	// byID holds observation indices sorted by WellID for O(log n) exact
	// lookup. Duplicate ids are adjacent and all retained.
	byID []int
}

// Build constructs an Index over the observation set. The slice is captured
// by reference and must not be mutated afterwards; the engine treats the
// observation set as frozen once loaded.
func Build(observations []model.Observation) *Index {
	pts := make(wellPoints, len(observations))
	for i, o := range observations {
		pts[i] = wellPoint{x: o.Location[0], y: o.Location[1], idx: i}
	}

	byID := make([]int, len(observations))
	for i := range byID {
		byID[i] = i
	}
	sort.Slice(byID, func(a, b int) bool {
		return observations[byID[a]].WellID < observations[byID[b]].WellID
	})

	return &Index{
		observations: observations,
		tree:         kdtree.New(pts, false),
		byID:         byID,
	}
}

// Len returns the number of indexed observations.
func (ix *Index) Len() int { return len(ix.observations) }

// Observations returns the full indexed observation set, shared read-only.
func (ix *Index) Observations() []model.Observation { return ix.observations }

// Within returns all observations strictly closer than radius to p
// (open ball), in unspecified order. Callers needing an order re-sort.
func (ix *Index) Within(p orb.Point, radius float64) []model.Observation {
	if ix.tree == nil || len(ix.observations) == 0 || radius <= 0 {
		return nil
	}

	q := wellPoint{x: p[0], y: p[1], idx: -1}
	keep := kdtree.NewDistKeeper(radius * radius)
	ix.tree.NearestSet(keep, q)

	r2 := radius * radius
	var out []model.Observation
	for keep.Len() > 0 {
		item := heap.Pop(keep).(kdtree.ComparableDist)
		if item.Comparable == nil {
			continue
		}
		// The keeper admits distances equal to its bound; the contract is
		// an open ball, so boundary hits are dropped here.
		if item.Dist >= r2 {
			continue
		}
		out = append(out, ix.observations[item.Comparable.(wellPoint).idx])
	}
	return out
}

// LookupByID returns all observations with the given well id, or nil if
// none match. Duplicate ids occur for repeated measurements, so the result
// is a slice rather than a single record.
func (ix *Index) LookupByID(id string) []model.Observation {
	lo := sort.Search(len(ix.byID), func(i int) bool {
		return ix.observations[ix.byID[i]].WellID >= id
	})
	var out []model.Observation
	for i := lo; i < len(ix.byID) && ix.observations[ix.byID[i]].WellID == id; i++ {
		out = append(out, ix.observations[ix.byID[i]])
	}
	return out
}

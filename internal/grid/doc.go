// Package grid generates the candidate target points for a venue.
//
// The lattice is anchored at the venue centroid: offset zero is always a
// lattice point on both axes, so the centroid itself is always a candidate.
// From the anchor the lattice extends in both directions by the spacing
// until it covers the venue extent, the two axis lattices are combined into
// their Cartesian product, and points outside the venue are dropped.
//
// Layout is a pure function: identical venue and spacing always produce the
// identical point set, returned row-major (y ascending, then x ascending)
// so downstream ordering is reproducible.
package grid

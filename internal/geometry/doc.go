// Package geometry provides the planar shape primitives venues are built on.
//
// Three shape kinds exist: Circle, Rectangle, and Polygon. All of them
// implement the Shape interface, a closed capability set covering boundary
// extraction, bounding extent, centroid, area, perimeter, point containment,
// batch containment, and a circumscribing circle used to bound spatial-index
// queries.
//
// Design decision: the shape kinds form a closed tagged set (Kind) dispatched
// through the shared Shape interface rather than an open subclass hierarchy.
// Callers that need to know what they hold switch on Kind() once; everything
// else goes through the interface.
//
// Coordinates are planar meters throughout; geographic coordinates must be
// projected before shapes are constructed. Geometry types come from
// github.com/paulmach/orb, with the orientation-sensitive formulas (signed
// shoelace area) implemented here because the engine relies on the
// counter-clockwise ring invariant.
package geometry

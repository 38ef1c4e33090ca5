package model

import (
	"github.com/hydrostat/gwflow/internal/geometry"
)

// Venue is a named region used as the spatial scope of one analysis run.
// Any shape kind can back a venue; everything downstream goes through the
// geometry.Shape capability set.
type Venue struct {
	// Name identifies the venue in reports and error messages.
	Name string

	// Shape is the venue geometry in the planar projection.
	Shape geometry.Shape
}

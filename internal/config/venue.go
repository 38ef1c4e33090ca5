package config

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/hydrostat/gwflow/internal/geometry"
	"github.com/hydrostat/gwflow/internal/model"
)

// Venue kind tags accepted in the venue file.
const (
	VenueKindCircle    = "circle"
	VenueKindRectangle = "rectangle"
	VenueKindPolygon   = "polygon"
)

// VenueSpec is one venue entry in the configuration file. The kind tag is
// explicit; a venue is classified exactly once when the file is decoded,
// never probed by trying constructors until one succeeds.
//
// Only the fields matching the kind are read:
//
//	kind: circle      center + radius
//	kind: rectangle   extent [xmin, xmax, ymin, ymax]
//	kind: polygon     vertices [[x, y], ...]
type VenueSpec struct {
	Kind     string       `yaml:"kind"`
	Center   []float64    `yaml:"center,omitempty"`
	Radius   float64      `yaml:"radius,omitempty"`
	Extent   []float64    `yaml:"extent,omitempty"`
	Vertices [][2]float64 `yaml:"vertices,omitempty"`
}

// Shape builds the geometry for the venue entry. The venue name is only
// used for error context.
func (v VenueSpec) Shape(name string) (geometry.Shape, error) {
	switch v.Kind {
	case VenueKindCircle:
		if len(v.Center) != 2 {
			return nil, fmt.Errorf("%w: venue %q: circle needs center [x, y], got %d values", ErrInvalidVenueSpec, name, len(v.Center))
		}
		s, err := geometry.NewCircle(orb.Point{v.Center[0], v.Center[1]}, v.Radius)
		if err != nil {
			return nil, fmt.Errorf("venue %q: %w", name, err)
		}
		return s, nil

	case VenueKindRectangle:
		if len(v.Extent) != 4 {
			return nil, fmt.Errorf("%w: venue %q: rectangle needs extent [xmin, xmax, ymin, ymax], got %d values", ErrInvalidVenueSpec, name, len(v.Extent))
		}
		s, err := geometry.NewRectangle(v.Extent[0], v.Extent[1], v.Extent[2], v.Extent[3])
		if err != nil {
			return nil, fmt.Errorf("venue %q: %w", name, err)
		}
		return s, nil

	case VenueKindPolygon:
		ring := make([]orb.Point, len(v.Vertices))
		for i, p := range v.Vertices {
			ring[i] = orb.Point{p[0], p[1]}
		}
		s, err := geometry.NewPolygon(ring)
		if err != nil {
			return nil, fmt.Errorf("venue %q: %w", name, err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%w: venue %q: %q (supported: %s, %s, %s)",
			ErrUnknownVenueKind, name, v.Kind, VenueKindCircle, VenueKindRectangle, VenueKindPolygon)
	}
}

// Venue resolves the named venue from the file into a model.Venue.
func (f *File) Venue(name string) (model.Venue, error) {
	spec, ok := f.Venues[name]
	if !ok {
		return model.Venue{}, fmt.Errorf("%w: %q (defined: %d venues)", ErrUnknownVenue, name, len(f.Venues))
	}
	shape, err := spec.Shape(name)
	if err != nil {
		return model.Venue{}, err
	}
	return model.Venue{Name: name, Shape: shape}, nil
}

package model

import (
	"github.com/paulmach/orb"
)

// Observation is a single head measurement at a well.
// The full observation set is loaded once, up front, and shared read-only by
// every query; nothing in the engine mutates an Observation after load.
//
// Locations are planar coordinates in meters. Conversion from geographic
// coordinates is the data provider's responsibility and happens before the
// engine ever sees the data.
type Observation struct {
	// WellID is the provider's well identifier. It is not unique across the
	// set: repeated measurements of the same well share a WellID and all of
	// them are retained.
	WellID string `json:"well_id"`

	// Location is the well position in the planar projection, in meters.
	Location orb.Point `json:"location"`

	// Head is the measured hydraulic head in the provider's vertical units.
	Head float64 `json:"head"`

	// Aquifer is the aquifer code this measurement belongs to.
	Aquifer string `json:"aquifer"`

	// ObservedOn is the measurement date as an integer YYYYMMDD.
	// An integer encoding keeps date-range comparisons a plain integer
	// compare in the query filter.
	ObservedOn int `json:"observed_on"`
}

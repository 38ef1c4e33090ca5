package config

import "errors"

// Configuration errors.
// These are returned by Config.Validate() and the venue file loader, and
// provide specific information about what is wrong before any analysis
// starts. Parameter-level errors (radius, spacing, neighbor count, method)
// come from the model package so every layer matches the same sentinels.
var (
	// ErrNoVenue is returned when no venue name was given.
	ErrNoVenue = errors.New("no venue specified: provide a venue name defined in the config file")

	// ErrUnknownVenue is returned when the requested venue is not defined
	// in the venue file.
	ErrUnknownVenue = errors.New("unknown venue")

	// ErrUnknownVenueKind is returned when a venue entry carries a kind
	// tag other than circle, rectangle, or polygon.
	ErrUnknownVenueKind = errors.New("unknown venue kind")

	// ErrInvalidVenueSpec is returned when a venue entry is missing the
	// fields its kind requires or carries malformed ones.
	ErrInvalidVenueSpec = errors.New("invalid venue definition")

	// ErrInvalidWorkers is returned when the worker count is negative.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are requested. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConfigNotFound is returned when the venue file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)

package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/hydrostat/gwflow/internal/model"
)

// Default configuration values.
// The numeric defaults reflect typical regional groundwater studies:
// kilometer-scale grids with neighborhoods wide enough to catch a handful
// of wells.
const (
	// DefaultRadius is the neighborhood search radius in meters. 1500 m
	// pairs with the default spacing so adjacent targets share part of
	// their neighborhoods and the fitted surface varies smoothly.
	DefaultRadius = 1500.0

	// DefaultSpacing is the grid spacing in meters on both axes.
	DefaultSpacing = 1000.0

	// DefaultMinNeighbors is the minimum neighborhood size before a target
	// is fitted. Six equals the number of conic coefficients, the smallest
	// mathematically admissible value.
	DefaultMinNeighbors = model.MinConicNeighbors

	// AppName is the application name used for XDG directory paths.
	AppName = "gwflow"

	// DefaultConfigFile is the default configuration file name.
	DefaultConfigFile = ".gwflow"

	// WellDBFile is the SQLite file name inside the data directory.
	WellDBFile = "wells.db"
)

// Config holds all options for a gwflow invocation.
// It is populated from CLI flags plus the venue file and passed through the
// application by dependency injection; there is no global state.
type Config struct {
	// VenueName selects which venue from the venue file to analyze.
	VenueName string

	// Parameters are the fitting parameters for the run.
	Parameters model.Parameters

	// Workers is the number of concurrent per-target workers.
	// Zero means one worker per CPU.
	Workers int

	// ConfigFilePath is the path to the venue/parameter file. If empty,
	// .gwflow is searched in the current directory and then the home
	// directory.
	ConfigFilePath string

	// DBDir is the directory holding the wells SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport selects JSON report output. Mutually exclusive with
	// MarkdownReport; the default is the human-readable summary.
	JSONReport bool

	// MarkdownReport selects Markdown report output.
	MarkdownReport bool

	// ReportFile is the output file path for the report. When empty the
	// report goes to stdout.
	ReportFile string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so a constructor doubles as documentation of what they are.
func NewConfig() *Config {
	return &Config{
		Parameters: model.Parameters{
			Radius:       DefaultRadius,
			Spacing:      DefaultSpacing,
			MinNeighbors: DefaultMinNeighbors,
			Method:       model.MethodRobust,
		},
		Workers: runtime.NumCPU(),
		DBDir:   XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for gwflow.
// On Linux: ~/.local/share/gwflow.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing, before any data is loaded, so a bad
// parameter is never discovered mid-run.
func (c *Config) Validate() error {
	if c.VenueName == "" {
		return ErrNoVenue
	}
	if err := c.Parameters.Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

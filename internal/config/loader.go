package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hydrostat/gwflow/internal/model"
)

// File represents the structure of the .gwflow configuration file.
type File struct {
	// Venues maps venue names to their geometric definitions.
	Venues map[string]VenueSpec `yaml:"venues,omitempty"`

	// Defaults are fitting parameters applied when the corresponding CLI
	// flag is left at its default. Zero fields are ignored.
	Defaults model.Parameters `yaml:"defaults,omitempty"`
}

// LoadConfigFile loads venue definitions and parameter defaults from a YAML
// file. If the file does not exist it returns ErrConfigNotFound; callers
// decide whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Venues == nil {
		f.Venues = make(map[string]VenueSpec)
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
// the explicit path if given, .gwflow in the current directory, then .gwflow
// in the user's home directory. It returns the path found or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ApplyDefaults overlays the file's default parameters onto the config for
// fields still at their built-in defaults. Explicit CLI flags win.
func (f *File) ApplyDefaults(c *Config) {
	if f.Defaults.Radius > 0 && c.Parameters.Radius == DefaultRadius {
		c.Parameters.Radius = f.Defaults.Radius
	}
	if f.Defaults.Spacing > 0 && c.Parameters.Spacing == DefaultSpacing {
		c.Parameters.Spacing = f.Defaults.Spacing
	}
	if f.Defaults.MinNeighbors > 0 && c.Parameters.MinNeighbors == DefaultMinNeighbors {
		c.Parameters.MinNeighbors = f.Defaults.MinNeighbors
	}
	if f.Defaults.Method != "" && c.Parameters.Method == model.MethodRobust {
		c.Parameters.Method = f.Defaults.Method
	}
	if len(f.Defaults.Aquifers) > 0 && len(c.Parameters.Aquifers) == 0 {
		c.Parameters.Aquifers = f.Defaults.Aquifers
	}
	if f.Defaults.DateFrom != 0 && c.Parameters.DateFrom == 0 {
		c.Parameters.DateFrom = f.Defaults.DateFrom
	}
	if f.Defaults.DateTo != 0 && c.Parameters.DateTo == 0 {
		c.Parameters.DateTo = f.Defaults.DateTo
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"field-planner/field"
	"field-planner/planner"
)

// DefaultConfigPath is the path to the canonical planner defaults file.
const DefaultConfigPath = "config/planner.defaults.json"

const maxFileSize = 1 * 1024 * 1024 // 1MB

// PlannerConfig is the on-disk planner configuration. Every field is optional;
// the Get* methods supply the default for anything left out.
type PlannerConfig struct {
	Clearance           *float64 `json:"clearance,omitempty"`
	CornerOffset        *float64 `json:"corner_offset,omitempty"`
	MaxExpansions       *int     `json:"max_expansions,omitempty"`
	NotFoundLogInterval *string  `json:"not_found_log_interval,omitempty"` // duration string like "1s"

	// LayoutPath names a GeoJSON layout. Empty selects the built-in 2023 field.
	LayoutPath *string `json:"layout_path,omitempty"`
	Debug      *bool   `json:"debug,omitempty"`
	ListenAddr *string `json:"listen_addr,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }
func ptrBool(v bool) *bool          { return &v }

// Empty returns a config with every field unset.
func Empty() *PlannerConfig {
	return &PlannerConfig{}
}

// Load reads a PlannerConfig from a JSON file. The file must have a .json
// extension and be at most 1MB. Fields missing from the file keep their defaults.
func Load(path string) (*PlannerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, errors.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat config file")
	}
	if info.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config JSON")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns an empty config when path is empty.
func LoadOrDefault(path string) (*PlannerConfig, error) {
	if path == "" {
		return Empty(), nil
	}
	return Load(path)
}

// Validate reports every invalid field.
func (c *PlannerConfig) Validate() error {
	var err error
	if c.Clearance != nil && *c.Clearance < 0 {
		err = multierr.Append(err, errors.Errorf("clearance must be non-negative, got %v", *c.Clearance))
	}
	if c.CornerOffset != nil && *c.CornerOffset < 0 {
		err = multierr.Append(err, errors.Errorf("corner_offset must be non-negative, got %v", *c.CornerOffset))
	}
	if c.MaxExpansions != nil && *c.MaxExpansions <= 0 {
		err = multierr.Append(err, errors.Errorf("max_expansions must be positive, got %d", *c.MaxExpansions))
	}
	if c.NotFoundLogInterval != nil && *c.NotFoundLogInterval != "" {
		d, perr := time.ParseDuration(*c.NotFoundLogInterval)
		switch {
		case perr != nil:
			err = multierr.Append(err, errors.Wrapf(perr, "invalid not_found_log_interval '%s'", *c.NotFoundLogInterval))
		case d <= 0:
			err = multierr.Append(err, errors.Errorf("not_found_log_interval must be positive, got %v", d))
		}
	}
	if c.LayoutPath != nil && *c.LayoutPath != "" && filepath.Ext(*c.LayoutPath) != ".geojson" && filepath.Ext(*c.LayoutPath) != ".json" {
		err = multierr.Append(err, errors.Errorf("layout_path must be a .geojson or .json file, got %q", *c.LayoutPath))
	}
	return err
}

// GetClearance returns the obstacle margin in meters.
func (c *PlannerConfig) GetClearance() float64 {
	if c.Clearance == nil {
		return planner.DefaultConfig().Clearance
	}
	return *c.Clearance
}

// GetCornerOffset returns how far outside obstacle corners waypoints are generated.
func (c *PlannerConfig) GetCornerOffset() float64 {
	if c.CornerOffset == nil {
		return planner.DefaultConfig().CornerOffset
	}
	return *c.CornerOffset
}

// GetMaxExpansions returns the search expansion cap.
func (c *PlannerConfig) GetMaxExpansions() int {
	if c.MaxExpansions == nil {
		return planner.DefaultMaxExpansions
	}
	return *c.MaxExpansions
}

// GetNotFoundLogInterval parses the interval, falling back to the default when
// unset or unparseable.
func (c *PlannerConfig) GetNotFoundLogInterval() time.Duration {
	def := planner.DefaultConfig().NotFoundLogInterval
	if c.NotFoundLogInterval == nil || *c.NotFoundLogInterval == "" {
		return def
	}
	d, err := time.ParseDuration(*c.NotFoundLogInterval)
	if err != nil {
		return def
	}
	return d
}

func (c *PlannerConfig) GetLayoutPath() string {
	if c.LayoutPath == nil {
		return ""
	}
	return *c.LayoutPath
}

func (c *PlannerConfig) GetDebug() bool {
	return c.Debug != nil && *c.Debug
}

func (c *PlannerConfig) GetListenAddr() string {
	if c.ListenAddr == nil || *c.ListenAddr == "" {
		return ":8080"
	}
	return *c.ListenAddr
}

// Planner converts the file config into the planner's runtime config.
func (c *PlannerConfig) Planner() planner.Config {
	return planner.Config{
		Clearance:           c.GetClearance(),
		CornerOffset:        c.GetCornerOffset(),
		MaxExpansions:       c.GetMaxExpansions(),
		NotFoundLogInterval: c.GetNotFoundLogInterval(),
	}
}

// Layout loads the configured field layout.
func (c *PlannerConfig) Layout() (*field.Layout, error) {
	path := c.GetLayoutPath()
	if path == "" {
		return field.ChargedUp2023(), nil
	}
	return field.LoadGeoJSON(path)
}

// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/blobs/palette"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Blob       BlobConfig       `yaml:"blob"`
	Food       FoodConfig       `yaml:"food"`
	Display    DisplayConfig    `yaml:"display"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the logical arena size. Fixed for the process lifetime.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PopulationConfig holds blob population limits.
type PopulationConfig struct {
	InitialBlobs int `yaml:"initial_blobs"`
	MaxBlobs     int `yaml:"max_blobs"`
}

// BlobConfig holds blob growth and movement parameters, in world units.
type BlobConfig struct {
	InitialSize float64 `yaml:"initial_size"`
	MinSize     float64 `yaml:"min_size"`   // Blob is removed below this
	SplitSize   float64 `yaml:"split_size"` // Blob splits in two at this size
	Speed       float64 `yaml:"speed"`      // Max distance per step
	Jitter      float64 `yaml:"jitter"`     // Max velocity change per step
	Metabolism  float64 `yaml:"metabolism"` // Size lost per step
	EatGain     float64 `yaml:"eat_gain"`   // Fraction of food size gained when eating
}

// FoodConfig holds food pellet parameters.
type FoodConfig struct {
	Count         int     `yaml:"count"` // Target pellet count
	Size          float64 `yaml:"size"`
	RegrowPerStep int     `yaml:"regrow_per_step"`
}

// DisplayConfig holds presentation settings. Window size is not configurable.
type DisplayConfig struct {
	VSync         bool   `yaml:"vsync"`
	ShowHUD       bool   `yaml:"show_hud"`
	Background    string `yaml:"background"` // Palette colour name
	StepsPerFrame int    `yaml:"steps_per_frame"`
}

// TelemetryConfig holds frame timing parameters.
type TelemetryConfig struct {
	PerfWindow int  `yaml:"perf_window"` // Frames per stats window
	LogPerf    bool `yaml:"log_perf"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Background palette.Color
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the values the renderer and simulation rely on.
func (c *Config) Validate() error {
	var errs []error
	if !(c.World.Width > 0 && c.World.Height > 0) {
		errs = append(errs, fmt.Errorf("world size %gx%g must be positive", c.World.Width, c.World.Height))
	}
	if c.Population.InitialBlobs < 0 || c.Population.MaxBlobs < c.Population.InitialBlobs {
		errs = append(errs, fmt.Errorf("population: need 0 <= initial_blobs (%d) <= max_blobs (%d)",
			c.Population.InitialBlobs, c.Population.MaxBlobs))
	}
	if c.Blob.MinSize < 0 || c.Blob.SplitSize <= c.Blob.MinSize {
		errs = append(errs, fmt.Errorf("blob: need 0 <= min_size (%g) < split_size (%g)", c.Blob.MinSize, c.Blob.SplitSize))
	}
	if c.Food.Count < 0 || c.Food.Size < 0 {
		errs = append(errs, errors.New("food: count and size must not be negative"))
	}
	if _, ok := palette.Named(c.Display.Background); !ok {
		errs = append(errs, fmt.Errorf("display: unknown background colour %q", c.Display.Background))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Background, _ = palette.Named(c.Display.Background)
	if c.Display.StepsPerFrame < 1 {
		c.Display.StepsPerFrame = 1
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

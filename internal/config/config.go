package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the CLI looks for a config file.
const DefaultConfigPath = "harmonic.yaml"

// Config holds all harmonic configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Digit reduction rule
	Reducer ReducerConfig `yaml:"reducer"`

	// Attribute mapper constants
	Attributes AttributesConfig `yaml:"attributes"`

	// Pattern catalog
	Patterns PatternsConfig `yaml:"patterns"`

	// Grid generation limits
	Grid GridConfig `yaml:"grid"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ReducerConfig configures the digit reducer.
type ReducerConfig struct {
	Base int `yaml:"base"` // modulus (default: 9)

	// ZeroReplacement is returned for a zero remainder. Nil means Base.
	ZeroReplacement *int `yaml:"zero_replacement,omitempty"`

	// AllowZero lets a zero remainder pass through. Conflicts with ZeroReplacement.
	AllowZero bool `yaml:"allow_zero"`
}

// GetZeroReplacement resolves the zero replacement.
func (c ReducerConfig) GetZeroReplacement() int {
	if c.AllowZero {
		return 0
	}
	if c.ZeroReplacement == nil {
		return c.Base
	}
	return *c.ZeroReplacement
}

// AttributesConfig configures the attribute mapper.
type AttributesConfig struct {
	FrequencyBase int `yaml:"frequency_base"` // default: 432
	HueStep       int `yaml:"hue_step"`       // default: 36
	Saturation    int `yaml:"saturation"`     // percent, default: 70
	Lightness     int `yaml:"lightness"`      // percent, default: 50
}

// PatternsConfig configures the pattern catalog.
type PatternsConfig struct {
	// LoadDefaults seeds the registry with the built-in catalog.
	LoadDefaults bool `yaml:"load_defaults"`

	// Custom patterns are registered after the defaults, in order.
	Custom []PatternSpec `yaml:"custom"`
}

// PatternSpec is one user-defined pattern.
type PatternSpec struct {
	Name        string `yaml:"name"`
	Sequence    []int  `yaml:"sequence"`
	Gateway     bool   `yaml:"gateway,omitempty"`
	Label       string `yaml:"label,omitempty"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty"` // vortex, gateway, repeat, pair, custom; empty = infer
	Overwrite   bool   `yaml:"overwrite,omitempty"`
}

// GridConfig configures grid generation.
type GridConfig struct {
	MaxCells       int    `yaml:"max_cells"`       // 0 = unlimited
	Workers        int    `yaml:"workers"`         // batch concurrency, 0 = unlimited
	DefaultFormula string `yaml:"default_formula"` // see grid.FormulaNames
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "harmonic",
		Version: "0.1.0",

		Reducer: ReducerConfig{
			Base: 9,
		},

		Attributes: AttributesConfig{
			FrequencyBase: 432,
			HueStep:       36,
			Saturation:    70,
			Lightness:     50,
		},

		Patterns: PatternsConfig{
			LoadDefaults: true,
		},

		Grid: GridConfig{
			MaxCells:       1 << 20,
			Workers:        4,
			DefaultFormula: "sum",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; fields omitted from the file keep their default values.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	ints := []struct {
		key    string
		target *int
	}{
		{"HARMONIC_MODULUS", &c.Reducer.Base},
		{"HARMONIC_FREQUENCY_BASE", &c.Attributes.FrequencyBase},
		{"HARMONIC_MAX_CELLS", &c.Grid.MaxCells},
	}
	for _, o := range ints {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.key, err)
		}
		*o.target = n
	}

	if level := os.Getenv("HARMONIC_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv("HARMONIC_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HARMONIC_DEBUG: %w", err)
		}
		c.Logging.DebugMode = debug
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Reducer.Base <= 0 {
		return fmt.Errorf("reducer.base must be positive, got %d", c.Reducer.Base)
	}
	if c.Reducer.AllowZero && c.Reducer.ZeroReplacement != nil {
		return fmt.Errorf("reducer.allow_zero conflicts with reducer.zero_replacement")
	}

	if c.Attributes.FrequencyBase <= 0 {
		return fmt.Errorf("attributes.frequency_base must be positive, got %d", c.Attributes.FrequencyBase)
	}
	if c.Attributes.HueStep < 0 {
		return fmt.Errorf("attributes.hue_step must be non-negative, got %d", c.Attributes.HueStep)
	}
	if c.Attributes.Saturation < 0 || c.Attributes.Saturation > 100 {
		return fmt.Errorf("attributes.saturation must be in [0, 100], got %d", c.Attributes.Saturation)
	}
	if c.Attributes.Lightness < 0 || c.Attributes.Lightness > 100 {
		return fmt.Errorf("attributes.lightness must be in [0, 100], got %d", c.Attributes.Lightness)
	}

	for i, p := range c.Patterns.Custom {
		if p.Name == "" {
			return fmt.Errorf("patterns.custom[%d]: name is required", i)
		}
		if len(p.Sequence) == 0 {
			return fmt.Errorf("patterns.custom[%d] (%s): sequence is required", i, p.Name)
		}
	}

	if c.Grid.MaxCells < 0 {
		return fmt.Errorf("grid.max_cells must be non-negative, got %d", c.Grid.MaxCells)
	}
	if c.Grid.Workers < 0 {
		return fmt.Errorf("grid.workers must be non-negative, got %d", c.Grid.Workers)
	}

	return c.Logging.Validate()
}

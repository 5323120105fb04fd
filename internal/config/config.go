// Package config handles reading and writing <home>/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// ErrUnknownVariant is returned when a variant name has no preset.
var ErrUnknownVariant = errors.New("unknown variant")

// Spawn modes.
const (
	ModeDecay = "decay"
	ModeFixed = "fixed"
	ModeBurst = "burst"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version  int                `yaml:"version"`
	Variant  string             `yaml:"variant" env:"FREEFLOW_VARIANT"`
	TickMs   int                `yaml:"tick_ms" env:"FREEFLOW_TICK_MS"` // host tick period
	History  HistoryConfig      `yaml:"history"`
	Variants map[string]Variant `yaml:"variants"`
}

// HistoryConfig controls the dive history database.
type HistoryConfig struct {
	Enabled    bool `yaml:"enabled" env:"FREEFLOW_HISTORY"`
	MaxAgeDays int  `yaml:"max_age_days"` // 0 keeps everything
}

// Variant is one dive preset.
type Variant struct {
	Description     string       `yaml:"description"`
	DurationSeconds float64      `yaml:"duration_seconds"` // 0 = open-ended
	LifetimeSeconds float64      `yaml:"lifetime_seconds"` // 0 = default, <0 never expires
	Spawn           SpawnConfig  `yaml:"spawn"`
	Depth           DepthConfig  `yaml:"depth"`
	Budget          BudgetConfig `yaml:"budget"`
}

// SpawnConfig selects and parameterizes the spawn cadence.
type SpawnConfig struct {
	Mode          string  `yaml:"mode"`           // "decay" | "fixed" | "burst"
	StartInterval float64 `yaml:"start_interval"` // seconds
	EndInterval   float64 `yaml:"end_interval"`   // seconds
	DecayConstant float64 `yaml:"decay_constant"`
	FixedInterval float64 `yaml:"fixed_interval"` // seconds
	BurstSize     int     `yaml:"burst_size"`
	BurstInterval float64 `yaml:"burst_interval"` // seconds
	PauseInterval float64 `yaml:"pause_interval"` // seconds
}

// DepthConfig controls the depth gauge.
type DepthConfig struct {
	Enabled         bool    `yaml:"enabled"`
	MaxDepth        float64 `yaml:"max_depth"` // metres
	Penalty         float64 `yaml:"penalty"`   // metres per tap
	MetersPerMinute float64 `yaml:"meters_per_minute"`
	PenaltyRecovers bool    `yaml:"penalty_recovers"`
}

// BudgetConfig controls the tap budget.
type BudgetConfig struct {
	Enabled bool `yaml:"enabled"`
	Quota   int  `yaml:"quota"`
}

const configFile = "config.yaml"

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, configFile)
}

// ReadConfig reads config.yaml from the given data directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to config.yaml in dir, creating dir if needed.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Load reads config.yaml if present, falls back to defaults otherwise,
// fills in missing presets, applies FREEFLOW_* environment overrides and
// validates the result.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}
	cfg.fillDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the selected variant and every preset.
func (c *Config) Validate() error {
	if c.TickMs <= 0 {
		return fmt.Errorf("invalid tick_ms: %d (must be positive)", c.TickMs)
	}
	if _, err := c.Selected(); err != nil {
		return err
	}
	for _, name := range c.VariantNames() {
		if err := c.Variants[name].Validate(); err != nil {
			return fmt.Errorf("variant %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks a single preset.
func (v Variant) Validate() error {
	if v.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds must be non-negative")
	}
	s := v.Spawn
	switch s.Mode {
	case ModeDecay:
		if s.StartInterval <= 0 || s.EndInterval <= 0 {
			return fmt.Errorf("decay intervals must be positive")
		}
	case ModeFixed:
		if s.FixedInterval <= 0 {
			return fmt.Errorf("fixed_interval must be positive")
		}
	case ModeBurst:
		if s.BurstSize <= 0 || s.BurstInterval <= 0 || s.PauseInterval <= 0 {
			return fmt.Errorf("burst_size, burst_interval and pause_interval must be positive")
		}
	default:
		return fmt.Errorf("unknown spawn mode %q", s.Mode)
	}
	if v.Depth.Enabled && v.Depth.MaxDepth <= 0 {
		return fmt.Errorf("depth.max_depth must be positive")
	}
	if v.Budget.Enabled && v.Budget.Quota <= 0 {
		return fmt.Errorf("budget.quota must be positive")
	}
	return nil
}

// Preset returns the named variant.
func (c *Config) Preset(name string) (Variant, error) {
	v, ok := c.Variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// Selected returns the variant named by c.Variant.
func (c *Config) Selected() (Variant, error) {
	return c.Preset(c.Variant)
}

// VariantNames lists preset names in sorted order.
func (c *Config) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tick is the host tick period.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// Duration is the dive length.
func (v Variant) Duration() time.Duration {
	return seconds(v.DurationSeconds)
}

// Lifetime is how long a spawn stays live.
func (v Variant) Lifetime() time.Duration {
	return seconds(v.LifetimeSeconds)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Variant == "" {
		c.Variant = def.Variant
	}
	if c.TickMs == 0 {
		c.TickMs = def.TickMs
	}
	if c.Variants == nil {
		c.Variants = map[string]Variant{}
	}
	for name, v := range def.Variants {
		if _, ok := c.Variants[name]; !ok {
			c.Variants[name] = v
		}
	}
}

// DefaultConfig returns a Config populated with the built-in presets.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Variant: "week1",
		TickMs:  1000,
		History: HistoryConfig{
			Enabled:    true,
			MaxAgeDays: 90,
		},
		Variants: map[string]Variant{
			"week1": {
				Description:     "40-minute dive, exponential decay from 5/sec to 1 every 2 min",
				DurationSeconds: 2400,
				LifetimeSeconds: 5,
				Spawn: SpawnConfig{
					Mode:          ModeDecay,
					StartInterval: 0.2,
					EndInterval:   120,
					DecayConstant: 4.0,
				},
			},
			"lockscreen": {
				Description:     "Open-ended lock screen, one notification every 3 seconds",
				LifetimeSeconds: 5,
				Spawn: SpawnConfig{
					Mode:          ModeFixed,
					FixedInterval: 3,
				},
			},
			"spam": {
				Description:     "Open-ended spam: 5 notifications in one second, then 7 seconds of quiet",
				LifetimeSeconds: 5,
				Spawn: SpawnConfig{
					Mode:          ModeBurst,
					BurstSize:     5,
					BurstInterval: 0.2,
					PauseInterval: 7,
				},
			},
			"depth": {
				Description:     "25-minute descent, every tap costs 2 metres",
				DurationSeconds: 25 * 60,
				LifetimeSeconds: 5,
				Spawn: SpawnConfig{
					Mode:          ModeDecay,
					StartInterval: 1,
					EndInterval:   60,
					DecayConstant: 4.0,
				},
				Depth: DepthConfig{
					Enabled:         true,
					MaxDepth:        25,
					Penalty:         2,
					MetersPerMinute: 1,
				},
			},
			"budget": {
				Description:     "25-minute dive, five taps and you surface",
				DurationSeconds: 25 * 60,
				LifetimeSeconds: 5,
				Spawn: SpawnConfig{
					Mode:          ModeDecay,
					StartInterval: 1,
					EndInterval:   60,
					DecayConstant: 4.0,
				},
				Budget: BudgetConfig{
					Enabled: true,
					Quota:   5,
				},
			},
		},
	}
}

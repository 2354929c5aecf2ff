package scheduler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/greenslot/core/factory"
)

const (
	DefaultHorizonDays     = 14
	DefaultFirstHour       = 9
	DefaultLastHour        = 19
	DefaultGreenWindowDays = 3
	DefaultTimezone        = "UTC"
)

// SchedulerConfig defines slot allocation parameters loaded from configuration.
// A nil GreenWindowDays means the default window; zero promotes no slot.
type SchedulerConfig struct {
	HorizonDays     int                    `json:"horizon_days" yaml:"horizon_days"`
	FirstHour       int                    `json:"first_hour" yaml:"first_hour"`
	LastHour        int                    `json:"last_hour" yaml:"last_hour"`
	GreenWindowDays *int                   `json:"green_window_days" yaml:"green_window_days"`
	Timezone        string                 `json:"timezone" yaml:"timezone"`
	GreenPolicy     []factory.ModuleConfig `json:"green_policy" yaml:"green_policy"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() SchedulerConfig {
	var c SchedulerConfig
	c.SetDefaults()
	return c
}

// SetDefaults fills unset fields. Delivery hours are only defaulted when both
// bounds are zero, so a midnight-only window stays expressible.
func (c *SchedulerConfig) SetDefaults() {
	if c.HorizonDays == 0 {
		c.HorizonDays = DefaultHorizonDays
	}
	if c.FirstHour == 0 && c.LastHour == 0 {
		c.FirstHour = DefaultFirstHour
		c.LastHour = DefaultLastHour
	}
	if c.GreenWindowDays == nil {
		w := DefaultGreenWindowDays
		c.GreenWindowDays = &w
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
}

// Validate checks hour bounds, horizon and time zone.
func (c SchedulerConfig) Validate() error {
	if c.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be positive")
	}
	if c.FirstHour < 0 || c.LastHour > 23 || c.FirstHour > c.LastHour {
		return fmt.Errorf("delivery hours must satisfy 0 <= first_hour <= last_hour <= 23, got %d-%d", c.FirstHour, c.LastHour)
	}
	if c.GreenWindow() < 0 {
		return fmt.Errorf("green_window_days must not be negative")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// GreenWindow returns the number of days from today during which green slots
// are promoted. An unset window means the default.
func (c SchedulerConfig) GreenWindow() int {
	if c.GreenWindowDays == nil {
		return DefaultGreenWindowDays
	}
	return *c.GreenWindowDays
}

// Capacity is the number of slots available on one day.
func (c SchedulerConfig) Capacity() int { return c.LastHour - c.FirstHour + 1 }

// Location resolves the configured time zone. An empty zone means UTC.
func (c SchedulerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LoadConfig loads SchedulerConfig from a JSON or YAML file and applies
// defaults.
func LoadConfig(path string) (SchedulerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return SchedulerConfig{}, err
	}
	defer func() { _ = f.Close() }()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "yaml", "yml", "json":
	default:
		return SchedulerConfig{}, fmt.Errorf("unsupported config format: .%s", ext)
	}
	return DecodeConfig(f, ext)
}

// DecodeConfig reads from r to decode a SchedulerConfig and applies defaults.
func DecodeConfig(r io.Reader, format string) (SchedulerConfig, error) {
	var cfg SchedulerConfig
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
			return cfg, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported format: %s", format)
	}
	cfg.SetDefaults()
	return cfg, nil
}

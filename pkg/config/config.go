// Package config loads the host-facing confetti configuration from a
// YAML file. Only presentation knobs live here (direction, count,
// origin, auto-trigger); physics constants are fixed inside the
// simulation core and deliberately absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LynchzDEV/lynchz-confetti/internal/sim"
)

// AutoTriggerConfig describes the optional one-shot delayed burst.
type AutoTriggerConfig struct {
	Enabled           bool   `yaml:"enabled"`
	Direction         string `yaml:"direction,omitempty"`
	Count             int    `yaml:"count,omitempty"`
	DelayMilliseconds int    `yaml:"delayMilliseconds,omitempty"`
}

// Config is the full host configuration surface. OriginX/OriginY are
// pointers so "not set" (use the viewport center) is distinguishable
// from an explicit 0.
type Config struct {
	Direction string   `yaml:"direction"`
	Count     int      `yaml:"count"`
	OriginX   *float64 `yaml:"originX,omitempty"`
	OriginY   *float64 `yaml:"originY,omitempty"`

	AutoTrigger AutoTriggerConfig `yaml:"autoTrigger,omitempty"`
}

// Default returns the configuration used when no file is supplied:
// a 50-particle center burst with no auto-trigger.
func Default() *Config {
	return &Config{
		Direction: string(sim.DirectionCenter),
		Count:     50,
	}
}

// Load reads and validates a YAML configuration file. Fields omitted
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks directions against the simulation's profile table
// and rejects negative counts and delays.
func (c *Config) Validate() error {
	if _, err := sim.ParseDirection(c.Direction); err != nil {
		return err
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", c.Count)
	}
	if c.AutoTrigger.Enabled {
		dir := c.AutoTrigger.Direction
		if dir == "" {
			dir = c.Direction
		}
		if _, err := sim.ParseDirection(dir); err != nil {
			return err
		}
		if c.AutoTrigger.Count < 0 {
			return fmt.Errorf("autoTrigger.count must be non-negative, got %d", c.AutoTrigger.Count)
		}
		if c.AutoTrigger.DelayMilliseconds < 0 {
			return fmt.Errorf("autoTrigger.delayMilliseconds must be non-negative, got %d", c.AutoTrigger.DelayMilliseconds)
		}
	}
	return nil
}

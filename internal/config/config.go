// Package config provides the yaml run configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"histmat/internal/formula"
)

// HistoryConfig tunes the undo/redo stack.
type HistoryConfig struct {
	MaxDepth     int    `yaml:"max_depth"`     // Entries kept by prune; 0 = unbounded
	ProtectEvery uint64 `yaml:"protect_every"` // Protect every Nth tick from pruning; 0 = none
}

// CheckpointConfig tunes durable snapshotting.
type CheckpointConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Backend  string `yaml:"backend"`  // "file" or "sqlite"
	Dir      string `yaml:"dir"`      // file backend: checkpoint directory
	Path     string `yaml:"path"`     // sqlite backend: database path
	Interval uint64 `yaml:"interval"` // Ticks between automatic checkpoints
	Retain   int    `yaml:"retain"`   // Automatic checkpoints kept; 0 = all
}

// EntityConfig declares one entity in an inline scenario.
type EntityConfig struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Kind          string  `yaml:"kind"`
	Wealth        float64 `yaml:"wealth"`
	Territory     float64 `yaml:"territory"`
	Organization  float64 `yaml:"organization"`
	Consciousness float64 `yaml:"consciousness"`
	Survival      float64 `yaml:"survival"`
}

// RelationshipConfig declares one edge in an inline scenario.
type RelationshipConfig struct {
	Source      string  `yaml:"source"`
	Target      string  `yaml:"target"`
	Kind        string  `yaml:"kind"`
	ValueFlow   float64 `yaml:"value_flow"`
	Tension     float64 `yaml:"tension"`
	Description string  `yaml:"description"`
}

// ScenarioConfig declares the initial world inline. When Entities is empty
// the named built-in scenario is used instead.
type ScenarioConfig struct {
	Builtin       string               `yaml:"builtin"` // "baseline" or "colonial-triad"
	WageRate      float64              `yaml:"wage_rate"`
	Entities      []EntityConfig       `yaml:"entities"`
	Relationships []RelationshipConfig `yaml:"relationships"`
}

// Config is the full run configuration.
type Config struct {
	Name            string               `yaml:"name"`
	Ticks           uint64               `yaml:"ticks"`
	Seed            int64                `yaml:"seed"`
	ObserverTimeout time.Duration        `yaml:"observer_timeout"`
	History         HistoryConfig        `yaml:"history"`
	Checkpoint      CheckpointConfig     `yaml:"checkpoint"`
	Coefficients    formula.Coefficients `yaml:"coefficients"`
	Scenario        ScenarioConfig       `yaml:"scenario"`
}

// Default returns a runnable configuration: baseline scenario, 100 ticks,
// default coefficients, checkpointing disabled.
func Default() Config {
	return Config{
		Name:            "baseline",
		Ticks:           100,
		Seed:            42,
		ObserverTimeout: 5 * time.Second,
		History:         HistoryConfig{MaxDepth: 256},
		Checkpoint:      CheckpointConfig{Backend: "file", Dir: "data/checkpoints", Interval: 25, Retain: 4},
		Coefficients:    formula.DefaultCoefficients(),
		Scenario:        ScenarioConfig{Builtin: "baseline", WageRate: 0.4},
	}
}

// Load reads and validates a yaml configuration. Unset coefficient and
// timing fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("run name is required")
	}
	if c.History.MaxDepth < 0 {
		return fmt.Errorf("history max_depth must not be negative")
	}
	if c.ObserverTimeout < 0 {
		return fmt.Errorf("observer_timeout must not be negative")
	}
	if c.Checkpoint.Enabled {
		switch c.Checkpoint.Backend {
		case "file":
			if strings.TrimSpace(c.Checkpoint.Dir) == "" {
				return fmt.Errorf("checkpoint dir is required for the file backend")
			}
		case "sqlite":
			if strings.TrimSpace(c.Checkpoint.Path) == "" {
				return fmt.Errorf("checkpoint path is required for the sqlite backend")
			}
		default:
			return fmt.Errorf("unknown checkpoint backend %q", c.Checkpoint.Backend)
		}
		if c.Checkpoint.Interval == 0 {
			return fmt.Errorf("checkpoint interval must be positive when enabled")
		}
	}
	if c.Scenario.Builtin == "" && len(c.Scenario.Entities) == 0 {
		return fmt.Errorf("scenario requires a builtin name or inline entities")
	}
	if c.Scenario.WageRate < 0 || c.Scenario.WageRate > 1 {
		return fmt.Errorf("scenario wage_rate %g outside [0,1]", c.Scenario.WageRate)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v2"

	"github.com/raidv/pointsweep/internal/sim"
)

// Bounds is an inclusive integer range for one point parameter
type Bounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Config is the sweep configuration file structure
type Config struct {
	X Bounds `yaml:"x"`
	Y Bounds `yaml:"y"`
	Z Bounds `yaml:"z"`
	C Bounds `yaml:"c"`

	ChallengeRand float64 `yaml:"challenge_rand"` // randomness weight for challenge outcomes
	RepRand       float64 `yaml:"rep_rand"`       // randomness weight for representative selection
	NumRuns       int     `yaml:"num_runs"`       // competitions per parameter tuple
	Workers       int     `yaml:"workers"`        // parallel runs; 0 means NumCPU
	Seed          int64   `yaml:"seed"`           // root seed; 0 means random

	OutputDir    string `yaml:"output_dir"`
	WriteRunLogs bool   `yaml:"write_run_logs"` // per-competition narrative files

	StabilityTopN    int `yaml:"stability_top_n"`
	StabilityTargetM int `yaml:"stability_target_m"`

	// Optional roster override; empty means the fixed 12-competitor field
	Roster []sim.RosterEntry `yaml:"roster"`
}

// Default returns the standard sweep configuration
func Default() *Config {
	return &Config{
		X:                Bounds{Min: 2, Max: 5},
		Y:                Bounds{Min: 3, Max: 7},
		Z:                Bounds{Min: 1, Max: 5},
		C:                Bounds{Min: 1, Max: 3},
		ChallengeRand:    0.4,
		RepRand:          0.3,
		NumRuns:          100,
		Workers:          runtime.NumCPU(),
		OutputDir:        "./artifacts",
		WriteRunLogs:     true,
		StabilityTopN:    sim.DefaultStabilityTopN,
		StabilityTargetM: sim.DefaultStabilityTargetM,
	}
}

// Load reads a YAML config file over the defaults and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sweep config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse sweep config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration invariants
func (c *Config) Validate() error {
	for name, b := range map[string]Bounds{"x": c.X, "y": c.Y, "z": c.Z, "c": c.C} {
		if b.Min > b.Max {
			return fmt.Errorf("bounds for %s are inverted: %d > %d", name, b.Min, b.Max)
		}
		if b.Min < 0 {
			return fmt.Errorf("bounds for %s must be non-negative, got %d", name, b.Min)
		}
	}

	if c.ChallengeRand < 0 || c.ChallengeRand > 1 {
		return fmt.Errorf("challenge_rand must be in [0,1], got %g", c.ChallengeRand)
	}
	if c.RepRand < 0 || c.RepRand > 1 {
		return fmt.Errorf("rep_rand must be in [0,1], got %g", c.RepRand)
	}
	if c.NumRuns < 1 {
		return fmt.Errorf("num_runs must be >= 1, got %d", c.NumRuns)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.StabilityTopN < 1 {
		return fmt.Errorf("stability_top_n must be >= 1, got %d", c.StabilityTopN)
	}
	if c.StabilityTargetM < 1 {
		return fmt.Errorf("stability_target_m must be >= 1, got %d", c.StabilityTargetM)
	}

	if len(c.Roster) > 0 {
		if len(c.Roster)%sim.NumTeams != 0 {
			return fmt.Errorf("roster size must be divisible by %d, got %d", sim.NumTeams, len(c.Roster))
		}
		for _, entry := range c.Roster {
			if entry.Skill < 0 {
				return fmt.Errorf("roster skill for %s must be non-negative, got %g", entry.Name, entry.Skill)
			}
		}
	}
	return nil
}

// Package config loads atomsolve settings with the priority
// environment > YAML file > defaults and validates them with struct tags.
//
// Environment variables:
//
//	ATOMSOLVE_TRIALS          solver.trials
//	ATOMSOLVE_SEED            solver.seed
//	ATOMSOLVE_TIME_BUDGET     solver.time_budget (Go duration, e.g. 30s)
//	ATOMSOLVE_PARALLELISM     solver.parallelism
//	ATOMSOLVE_MAX_ITERATIONS  search.max_iterations
//	ATOMSOLVE_PATIENCE        search.patience
//	ATOMSOLVE_NEIGHBORHOOD    search.neighborhood
//	ATOMSOLVE_LOG_LEVEL       log.level
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/atomsolve/search"
	"github.com/katalvlaran/atomsolve/solver"
	"github.com/katalvlaran/atomsolve/telemetry"
)

// ErrInvalidConfig wraps every load, parse or validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full atomsolve configuration.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// SolverConfig maps to solver.Options.
type SolverConfig struct {
	Trials      int           `yaml:"trials" validate:"gte=1,lte=100000"`
	Seed        int64         `yaml:"seed"`
	TimeBudget  time.Duration `yaml:"time_budget" validate:"gte=0s"`
	Parallelism int           `yaml:"parallelism" validate:"gte=0"`
	NoDeferral  bool          `yaml:"no_deferral"`
}

// SearchConfig maps to search.Options.
type SearchConfig struct {
	MaxIterations int     `yaml:"max_iterations" validate:"gte=1"`
	Patience      int     `yaml:"patience" validate:"gte=0"`
	InitialTemp   float64 `yaml:"initial_temp" validate:"gte=0"`
	FinalTemp     float64 `yaml:"final_temp" validate:"gte=0"`
	Descent       bool    `yaml:"descent"`
	Neighborhood  string  `yaml:"neighborhood" validate:"oneof=exhaustive sample adjacent"`
	Verify        bool    `yaml:"verify"`
}

// LogConfig selects the CLI log handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// Default returns the built-in configuration; it mirrors solver.DefaultOptions.
func Default() Config {
	s := search.DefaultOptions()

	return Config{
		Solver: SolverConfig{
			Trials: solver.DefaultTrials,
		},
		Search: SearchConfig{
			MaxIterations: s.MaxIterations,
			Patience:      s.Patience,
			Neighborhood:  s.Neighborhood.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load merges defaults, the YAML file at path (skipped when path is empty)
// and ATOMSOLVE_* environment variables, then validates the result.
// Unknown YAML keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("Load: %w: %w", ErrInvalidConfig, err)
		}
		if err = decodeYAML(data, &cfg); err != nil {
			return cfg, fmt.Errorf("Load: %s: %w: %w", path, ErrInvalidConfig, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, fmt.Errorf("Load: %w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("Load: %w", err)
	}

	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	return dec.Decode(cfg)
}

// applyEnv overrides cfg from the environment.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"ATOMSOLVE_TRIALS", &cfg.Solver.Trials},
		{"ATOMSOLVE_PARALLELISM", &cfg.Solver.Parallelism},
		{"ATOMSOLVE_MAX_ITERATIONS", &cfg.Search.MaxIterations},
		{"ATOMSOLVE_PATIENCE", &cfg.Search.Patience},
	}
	for _, e := range ints {
		if v, ok := lookup(e.key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", e.key, v, err)
			}
			*e.dst = n
		}
	}
	if v, ok := lookup("ATOMSOLVE_SEED"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ATOMSOLVE_SEED=%q: %w", v, err)
		}
		cfg.Solver.Seed = n
	}
	if v, ok := lookup("ATOMSOLVE_TIME_BUDGET"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ATOMSOLVE_TIME_BUDGET=%q: %w", v, err)
		}
		cfg.Solver.TimeBudget = d
	}
	if v, ok := lookup("ATOMSOLVE_NEIGHBORHOOD"); ok && v != "" {
		cfg.Search.Neighborhood = v
	}
	if v, ok := lookup("ATOMSOLVE_LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}

	return nil
}

// Validate checks the struct tags and the cross-field temperature rule.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("Validate: %w: %w", ErrInvalidConfig, err)
	}
	if c.Search.InitialTemp > 0 && c.Search.FinalTemp > c.Search.InitialTemp {
		return fmt.Errorf("Validate: final_temp %v exceeds initial_temp %v: %w",
			c.Search.FinalTemp, c.Search.InitialTemp, ErrInvalidConfig)
	}

	return nil
}

// SolverOptions converts c to solver.Options. Logger, Metrics and OnImprove
// are left for the caller.
func (c Config) SolverOptions() (solver.Options, error) {
	nb, err := search.ParseNeighborhood(c.Search.Neighborhood)
	if err != nil {
		return solver.Options{}, fmt.Errorf("SolverOptions: %w: %w", ErrInvalidConfig, err)
	}

	opts := solver.DefaultOptions()
	opts.Trials = c.Solver.Trials
	opts.Seed = c.Solver.Seed
	opts.TimeBudget = c.Solver.TimeBudget
	opts.Parallelism = c.Solver.Parallelism
	opts.NoDeferral = c.Solver.NoDeferral
	opts.Search.MaxIterations = c.Search.MaxIterations
	opts.Search.Patience = c.Search.Patience
	opts.Search.InitialTemp = c.Search.InitialTemp
	opts.Search.FinalTemp = c.Search.FinalTemp
	opts.Search.Descent = c.Search.Descent
	opts.Search.Neighborhood = nb
	opts.Search.Verify = c.Search.Verify

	return opts, nil
}

// LogLevel returns the configured slog level.
func (c Config) LogLevel() slog.Level {
	lvl, err := telemetry.ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}

	return lvl
}

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/atomsolve/config"
	"github.com/katalvlaran/atomsolve/search"
	"github.com/katalvlaran/atomsolve/solver"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atomsolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault_IsValidAndMatchesSolverDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	opts, err := cfg.SolverOptions()
	require.NoError(t, err)
	want := solver.DefaultOptions()
	assert.Equal(t, want.Trials, opts.Trials)
	assert.Equal(t, want.Search.MaxIterations, opts.Search.MaxIterations)
	assert.Equal(t, want.Search.Patience, opts.Search.Patience)
	assert.Equal(t, want.Search.Neighborhood, opts.Search.Neighborhood)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
solver:
  trials: 8
  seed: 42
  time_budget: 1500ms
search:
  max_iterations: 5000
  neighborhood: adjacent
  descent: true
log:
  level: debug
  format: json
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Solver.Trials)
	assert.Equal(t, int64(42), cfg.Solver.Seed)
	assert.Equal(t, 1500*time.Millisecond, cfg.Solver.TimeBudget)
	assert.Equal(t, "adjacent", cfg.Search.Neighborhood)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	t.Setenv("ATOMSOLVE_TRIALS", "2")
	t.Setenv("ATOMSOLVE_TIME_BUDGET", "3s")
	t.Setenv("ATOMSOLVE_NEIGHBORHOOD", "exhaustive")
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Solver.Trials)
	assert.Equal(t, 3*time.Second, cfg.Solver.TimeBudget)

	opts, err := cfg.SolverOptions()
	require.NoError(t, err)
	assert.Equal(t, search.Exhaustive, opts.Search.Neighborhood)
	assert.True(t, opts.Search.Descent)
	assert.Equal(t, int64(42), opts.Seed)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"zero trials":        "solver:\n  trials: 0\n",
		"unknown key":        "solver:\n  trails: 3\n",
		"bad neighborhood":   "search:\n  neighborhood: tabu\n",
		"negative budget":    "solver:\n  time_budget: -1s\n",
		"temperature order":  "search:\n  initial_temp: 1\n  final_temp: 2\n",
		"bad log format":     "log:\n  format: xml\n",
		"not yaml":           "solver: [",
		"negative patience":  "search:\n  patience: -4\n",
		"zero max iteration": "search:\n  max_iterations: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoad_EnvErrors(t *testing.T) {
	t.Setenv("ATOMSOLVE_SEED", "forty-two")
	_, err := config.Load("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_MissingFileAndEmptyFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := config.Load(writeFile(t, "\n"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

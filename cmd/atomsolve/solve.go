package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/atomsolve/codec"
	"github.com/katalvlaran/atomsolve/config"
	"github.com/katalvlaran/atomsolve/solver"
	"github.com/katalvlaran/atomsolve/telemetry"
)

type solveFlags struct {
	example      string
	print        bool
	configPath   string
	trials       int
	seed         int64
	timeBudget   time.Duration
	parallelism  int
	neighborhood string
	trace        bool
	metricsFile  string
}

func newSolveCmd() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve an instance file and print the best assignment",
		Long: `Solve reads an instance, runs independent greedy + annealing trials and
prints the best assignment as one line of space-separated atom types.
With -p every improving assignment is printed as soon as it is found; the
last line is always the best. SIGINT stops the search and prints the best
assignment found so far.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.example, "example", "e", "", "instance file (required)")
	fl.BoolVarP(&f.print, "print", "p", false, "print every improving solution")
	fl.StringVar(&f.configPath, "config", "", "YAML config file")
	fl.IntVar(&f.trials, "trials", 0, "number of independent trials")
	fl.Int64Var(&f.seed, "seed", 0, "base random seed")
	fl.DurationVar(&f.timeBudget, "time", 0, "wall-clock budget, e.g. 3m (0 = none)")
	fl.IntVar(&f.parallelism, "parallelism", 0, "concurrent trials (0 = GOMAXPROCS)")
	fl.StringVar(&f.neighborhood, "neighborhood", "", "exhaustive, sample or adjacent")
	fl.BoolVar(&f.trace, "trace", false, "print OpenTelemetry spans to stderr")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	_ = cmd.MarkFlagRequired("example")

	return cmd
}

// applyFlags overrides cfg with the flags the user actually set.
func applyFlags(cmd *cobra.Command, f solveFlags, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("trials") {
		cfg.Solver.Trials = f.trials
	}
	if fl.Changed("seed") {
		cfg.Solver.Seed = f.seed
	}
	if fl.Changed("time") {
		cfg.Solver.TimeBudget = f.timeBudget
	}
	if fl.Changed("parallelism") {
		cfg.Solver.Parallelism = f.parallelism
	}
	if fl.Changed("neighborhood") {
		cfg.Search.Neighborhood = f.neighborhood
	}

	return cfg.Validate()
}

func runSolve(cmd *cobra.Command, f solveFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if err = applyFlags(cmd, f, &cfg); err != nil {
		return err
	}
	opts, err := cfg.SolverOptions()
	if err != nil {
		return err
	}

	inst, err := codec.LoadInstance(f.example)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	opts.Logger = telemetry.NewLogger(stderr, cfg.LogLevel(), cfg.Log.Format == "json")

	if f.trace {
		shutdown, err := telemetry.SetupTracing(stderr, version)
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	var reg *prometheus.Registry
	if f.metricsFile != "" {
		reg = prometheus.NewRegistry()
		if opts.Metrics, err = telemetry.NewMetrics(reg); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	var (
		mu   sync.Mutex
		last []int
	)
	if f.print {
		opts.OnImprove = func(imp solver.Improvement) {
			mu.Lock()
			defer mu.Unlock()
			if codec.WriteSolution(out, imp.Types) == nil {
				last = imp.Types
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := solver.Solve(ctx, inst, opts)
	if err != nil {
		return err
	}

	mu.Lock()
	printed := f.print && slices.Equal(last, res.Types)
	mu.Unlock()
	if !printed {
		if err = codec.WriteSolution(out, res.Types); err != nil {
			return err
		}
	}

	if reg != nil {
		if err = prometheus.WriteToTextfile(f.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

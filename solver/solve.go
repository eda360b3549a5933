package solver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/atomsolve/assign"
	"github.com/katalvlaran/atomsolve/construct"
	"github.com/katalvlaran/atomsolve/problem"
	"github.com/katalvlaran/atomsolve/search"
	"github.com/katalvlaran/atomsolve/telemetry"
)

var tracer = otel.Tracer("github.com/katalvlaran/atomsolve/solver")

// constructStream is the DeriveSeed stream that separates a trial's
// construction generator from its search generator.
const constructStream = 1

// Solve runs opts.Trials independent trials on inst and returns the best
// assignment (see the package doc).
//
// Errors:
//   - ErrInvalidOptions: opts.Validate failed.
//   - problem.ErrInvalidInstance: inst is nil.
//   - assign.ErrBookkeeping: a trial's incremental state drifted.
//   - construct.ErrInfeasibleInstance: internal quota accounting failed.
//
// A TimeBudget or ctx cancellation is not an error; see Result.Status.
func Solve(ctx context.Context, inst *problem.Instance, opts Options) (Result, error) {
	start := time.Now()
	if err := opts.Validate(); err != nil {
		return Result{}, fmt.Errorf("Solve: %w", err)
	}
	if inst == nil {
		return Result{}, fmt.Errorf("Solve: nil instance: %w", problem.ErrInvalidInstance)
	}

	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "solver.Solve", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("nodes", inst.NodeCount()),
		attribute.Int("types", inst.AtomCount()),
		attribute.Int("edges", inst.EdgeCount()),
		attribute.Int("trials", opts.Trials),
		attribute.Int64("seed", opts.Seed),
	))
	defer span.End()

	logger := opts.Logger
	if logger == nil {
		logger = telemetry.DiscardLogger()
	}
	logger = telemetry.LoggerWithTrace(ctx, logger).With(slog.String("run_id", runID))

	if opts.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeBudget)
		defer cancel()
	}

	d := &driver{
		inst:   inst,
		opts:   opts,
		logger: logger,
		start:  start,
		trials: make([]TrialResult, opts.Trials),
		types:  make([][]int, opts.Trials),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism(opts))
	for i := 0; i < opts.Trials; i++ {
		g.Go(func() error { return d.runTrial(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("solve failed", slog.Any("error", err))

		return Result{}, fmt.Errorf("Solve: %w", err)
	}

	res, err := d.reduce()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("solve failed", slog.Any("error", err))

		return Result{}, err
	}
	res.RunID = runID
	res.Elapsed = time.Since(start)

	opts.Metrics.SetBestEnergy(res.Energy)
	span.SetAttributes(
		attribute.Int64("energy", res.Energy),
		attribute.String("status", res.Status.String()),
		attribute.Int("best_trial", res.BestTrial),
	)
	logger.Info("solve finished",
		slog.Int64("energy", res.Energy),
		slog.String("status", res.Status.String()),
		slog.Int("best_trial", res.BestTrial),
		slog.Int("trials", opts.Trials),
		slog.Duration("elapsed", res.Elapsed),
	)

	return res, nil
}

// parallelism resolves the number of concurrent trials.
func parallelism(opts Options) int {
	p := opts.Parallelism
	if p == 0 {
		p = runtime.GOMAXPROCS(0)
	}

	return min(p, opts.Trials)
}

// driver holds the per-Solve state shared by trial goroutines. Each trial
// writes only its own slots of trials and types.
type driver struct {
	inst   *problem.Instance
	opts   Options
	logger *slog.Logger
	start  time.Time

	trials []TrialResult
	types  [][]int

	mu      sync.Mutex // guards hasBest, bestE and the OnImprove call
	hasBest bool
	bestE   int64
}

// runTrial constructs and refines one private Assignment.
func (d *driver) runTrial(ctx context.Context, i int) error {
	began := time.Now()
	seed := search.DeriveSeed(d.opts.Seed, uint64(i))
	ctx, span := tracer.Start(ctx, "solver.trial", trace.WithAttributes(
		attribute.Int("trial", i),
		attribute.Int64("seed", seed),
	))
	defer span.End()

	cOpts := construct.DefaultOptions()
	cOpts.NoDeferral = d.opts.NoDeferral
	if i > 0 {
		cOpts.Rand = search.NewRand(search.DeriveSeed(seed, constructStream))
	}
	a, stats, err := construct.Build(d.inst, cOpts)
	if err != nil {
		return d.fail(span, i, began, fmt.Errorf("trial %d: %w", i, err))
	}
	span.AddEvent("constructed", trace.WithAttributes(
		attribute.Int64("energy", a.Energy()),
		attribute.Int("components", stats.Seeds),
		attribute.Int("deferred", stats.Deferred),
	))
	d.improve(i, -1, a.Energy(), a.View())

	sOpts := d.opts.Search
	sOpts.Seed = seed
	sOpts.OnImprove = func(step search.Step, types []int) {
		d.improve(i, step.Iteration, step.Energy, types)
	}
	initial := a.Energy()
	res, err := search.Run(ctx, a, sOpts)
	if err != nil {
		return d.fail(span, i, began, fmt.Errorf("trial %d: %w", i, err))
	}

	d.trials[i] = TrialResult{
		Trial:         i,
		Seed:          seed,
		InitialEnergy: initial,
		Energy:        res.Energy,
		Status:        res.Status,
		Iterations:    res.Iterations,
		Accepted:      res.Accepted,
		Improvements:  res.Improvements,
		Components:    stats.Seeds,
		Deferred:      stats.Deferred,
		Duration:      time.Since(began),
	}
	d.types[i] = a.Types()

	d.opts.Metrics.RecordTrial(res.Status.String(), res.Iterations, res.Accepted, d.trials[i].Duration)
	span.SetAttributes(
		attribute.Int64("energy", res.Energy),
		attribute.String("status", res.Status.String()),
		attribute.Int("iterations", res.Iterations),
	)
	d.logger.Debug("trial finished",
		slog.Int("trial", i),
		slog.Int64("initial_energy", initial),
		slog.Int64("energy", res.Energy),
		slog.String("status", res.Status.String()),
		slog.Int("iterations", res.Iterations),
		slog.Int("accepted", res.Accepted),
		slog.Float64("initial_temp", res.InitialTemp),
		slog.Duration("duration", d.trials[i].Duration),
	)

	return nil
}

// fail records a fatal trial error on the span and the metrics.
func (d *driver) fail(span trace.Span, i int, began time.Time, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	d.opts.Metrics.RecordTrial("failed", 0, 0, time.Since(began))
	d.logger.Error("trial failed", slog.Int("trial", i), slog.Any("error", err))

	return err
}

// improve forwards a strictly better global energy to OnImprove.
func (d *driver) improve(trial, iteration int, energy int64, types []int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hasBest && energy >= d.bestE {
		return
	}
	d.hasBest, d.bestE = true, energy
	if d.opts.OnImprove == nil {
		return
	}
	snapshot := make([]int, len(types))
	copy(snapshot, types)
	d.opts.OnImprove(Improvement{
		Trial:     trial,
		Iteration: iteration,
		Energy:    energy,
		Types:     snapshot,
		Elapsed:   time.Since(d.start),
	})
}

// reduce picks the best trial and re-checks it from scratch.
func (d *driver) reduce() (Result, error) {
	var (
		best   = 0
		status = Converged
		i      int
	)
	for i = range d.trials {
		if d.trials[i].Energy < d.trials[best].Energy {
			best = i
		}
		if d.trials[i].Status != Converged {
			status = Stopped
		}
	}

	energy, err := assign.Check(d.inst, d.types[best])
	if err != nil {
		return Result{}, fmt.Errorf("Solve: best trial %d: %w: %w", best, assign.ErrBookkeeping, err)
	}
	if energy != d.trials[best].Energy {
		return Result{}, fmt.Errorf("Solve: best trial %d energy %d, recomputed %d: %w",
			best, d.trials[best].Energy, energy, assign.ErrBookkeeping)
	}

	return Result{
		Types:     d.types[best],
		Energy:    energy,
		Status:    status,
		BestTrial: best,
		Trials:    d.trials,
	}, nil
}

package solver

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/atomsolve/search"
	"github.com/katalvlaran/atomsolve/telemetry"
)

// ErrInvalidOptions is returned (wrapped with the offending field) when
// Options fail validation.
var ErrInvalidOptions = errors.New("solver: invalid options")

// Status is the terminal state of a Solve or of one trial.
type Status = search.Status

// Terminal statuses.
const (
	Converged = search.Converged
	Stopped   = search.Stopped
)

// Options configures Solve.
type Options struct {
	// Trials is the number of independent construct+search runs; ≥ 1.
	Trials int
	// Seed is the base seed; per-trial seeds are derived from it.
	Seed int64
	// TimeBudget bounds the whole Solve; 0 means none.
	TimeBudget time.Duration
	// Parallelism caps concurrent trials; 0 ⇒ GOMAXPROCS, 1 ⇒ sequential.
	Parallelism int

	// Search configures each trial's local search. Search.Seed and
	// Search.OnImprove are overwritten per trial; Search.OnStep, when set,
	// is called from several goroutines and must be safe for that.
	Search search.Options
	// NoDeferral disables greedy deferral of positive-marginal nodes.
	NoDeferral bool

	// Logger receives structured records; nil discards them.
	Logger *slog.Logger
	// Metrics, when non-nil, records trial outcomes.
	Metrics *telemetry.Metrics
	// OnImprove is called, serialized, each time any trial finds an energy
	// strictly below every energy reported before.
	OnImprove func(Improvement)
}

// Default trial count used by DefaultOptions.
const DefaultTrials = 4

// DefaultOptions returns DefaultTrials trials, GOMAXPROCS parallelism, no
// time budget and search.DefaultOptions.
func DefaultOptions() Options {
	return Options{
		Trials: DefaultTrials,
		Search: search.DefaultOptions(),
	}
}

// Validate reports the first meaningless field, wrapped in ErrInvalidOptions.
func (o Options) Validate() error {
	switch {
	case o.Trials < 1:
		return fmt.Errorf("Validate: Trials %d must be >= 1: %w", o.Trials, ErrInvalidOptions)
	case o.TimeBudget < 0:
		return fmt.Errorf("Validate: TimeBudget %s must be >= 0: %w", o.TimeBudget, ErrInvalidOptions)
	case o.Parallelism < 0:
		return fmt.Errorf("Validate: Parallelism %d must be >= 0: %w", o.Parallelism, ErrInvalidOptions)
	}
	if err := o.Search.Validate(); err != nil {
		return fmt.Errorf("Validate: Search: %w: %w", ErrInvalidOptions, err)
	}

	return nil
}

// Improvement reports a new global best.
type Improvement struct {
	Trial int
	// Iteration is the search step, or -1 for the constructed assignment.
	Iteration int
	Energy    int64
	// Types is a private copy the callee may keep.
	Types   []int
	Elapsed time.Duration
}

// TrialResult describes one finished trial.
type TrialResult struct {
	Trial         int
	Seed          int64
	InitialEnergy int64 // after construction
	Energy        int64 // best after search
	Status        Status
	Iterations    int
	Accepted      int
	Improvements  int
	Components    int // greedy component seeds
	Deferred      int // nodes placed by the greedy forced pass
	Duration      time.Duration
}

// Result is the outcome of Solve.
type Result struct {
	// RunID identifies this Solve in logs and traces.
	RunID string
	// Types is the best assignment, node → atom type.
	Types  []int
	Energy int64
	// Status is Converged iff every trial converged.
	Status    Status
	BestTrial int
	Trials    []TrialResult
	Elapsed   time.Duration
}

package search

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrInvalidOptions is returned (wrapped with the offending field) when
	// Options fail validation.
	ErrInvalidOptions = errors.New("search: invalid options")

	// ErrIncomplete is returned when Run receives an Assignment with
	// unassigned nodes.
	ErrIncomplete = errors.New("search: assignment is not complete")
)

// Status is the state of a local-search run.
type Status int

const (
	// Running is the state while steps are being taken.
	Running Status = iota
	// Converged means no further progress was expected.
	Converged
	// Stopped means cancellation or a budget ended the run.
	Stopped
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Neighborhood selects how candidate pairs are drawn.
type Neighborhood int

const (
	// Exhaustive sweeps all pairs u < v in lexicographic order, cyclically.
	Exhaustive Neighborhood = iota
	// Sample draws u and v uniformly at random.
	Sample
	// Adjacent draws u at random and v among the nodes joined to u by an
	// edge or sharing a neighbor with u; falls back to Sample when u has
	// no such partner of a different type.
	Adjacent
)

var neighborhoodNames = [...]string{"exhaustive", "sample", "adjacent"}

// String implements fmt.Stringer.
func (n Neighborhood) String() string {
	if n < 0 || int(n) >= len(neighborhoodNames) {
		return fmt.Sprintf("Neighborhood(%d)", int(n))
	}

	return neighborhoodNames[n]
}

// ParseNeighborhood maps "exhaustive", "sample" or "adjacent" (any case)
// to a Neighborhood.
func ParseNeighborhood(s string) (Neighborhood, error) {
	for i, name := range neighborhoodNames {
		if strings.EqualFold(s, name) {
			return Neighborhood(i), nil
		}
	}

	return 0, fmt.Errorf("ParseNeighborhood: %q: %w", s, ErrInvalidOptions)
}

// Step describes one local-search step and is passed to the hooks.
type Step struct {
	Iteration   int
	U, V        int
	Delta       int64
	Accepted    bool
	Energy      int64 // after the step
	Best        int64 // best energy so far, non-increasing
	Temperature float64
}

// Options configures Run.
type Options struct {
	// MaxIterations is the step ceiling; must be > 0. Reaching it ⇒ Stopped.
	MaxIterations int
	// Patience is the number of consecutive steps without a new best after
	// which the run is Converged; 0 disables the rule.
	Patience int
	// TimeLimit bounds wall-clock time; 0 means none.
	TimeLimit time.Duration

	// InitialTemp is T0; 0 ⇒ calibrated from sampled deltas.
	InitialTemp float64
	// FinalTemp is the temperature at the last iteration; 0 ⇒ T0·1e-3.
	FinalTemp float64
	// Descent forces T = 0 throughout: only strictly improving swaps.
	Descent bool

	Neighborhood Neighborhood
	// Seed feeds the run's RNG; 0 ⇒ fixed default.
	Seed int64

	// Verify recomputes the bookkeeping after every accepted swap and fails
	// the run with assign.ErrBookkeeping on drift. O(t + |E|) per accept.
	Verify bool

	// OnStep, if set, is called after every step.
	OnStep func(Step)
	// OnImprove, if set, is called on every new best with a read-only view
	// of the type vector, valid only during the call.
	OnImprove func(step Step, types []int)
}

// Defaults used by DefaultOptions.
const (
	DefaultMaxIterations = 200_000
	DefaultPatience      = 20_000
	defaultFinalRatio    = 1e-3
)

// DefaultOptions returns annealing with a calibrated temperature, the Sample
// neighborhood and the default iteration and patience budgets.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Patience:      DefaultPatience,
		Neighborhood:  Sample,
	}
}

// Validate reports the first meaningless field, wrapped in ErrInvalidOptions.
func (o Options) Validate() error {
	switch {
	case o.MaxIterations <= 0:
		return fmt.Errorf("Validate: MaxIterations %d must be > 0: %w", o.MaxIterations, ErrInvalidOptions)
	case o.Patience < 0:
		return fmt.Errorf("Validate: Patience %d must be >= 0: %w", o.Patience, ErrInvalidOptions)
	case o.TimeLimit < 0:
		return fmt.Errorf("Validate: TimeLimit %s must be >= 0: %w", o.TimeLimit, ErrInvalidOptions)
	case o.InitialTemp < 0 || math.IsNaN(o.InitialTemp) || math.IsInf(o.InitialTemp, 0):
		return fmt.Errorf("Validate: InitialTemp %v must be finite and >= 0: %w", o.InitialTemp, ErrInvalidOptions)
	case o.FinalTemp < 0 || math.IsNaN(o.FinalTemp) || math.IsInf(o.FinalTemp, 0):
		return fmt.Errorf("Validate: FinalTemp %v must be finite and >= 0: %w", o.FinalTemp, ErrInvalidOptions)
	case o.InitialTemp > 0 && o.FinalTemp > o.InitialTemp:
		return fmt.Errorf("Validate: FinalTemp %v exceeds InitialTemp %v: %w", o.FinalTemp, o.InitialTemp, ErrInvalidOptions)
	case o.Neighborhood < Exhaustive || o.Neighborhood > Adjacent:
		return fmt.Errorf("Validate: %s: %w", o.Neighborhood, ErrInvalidOptions)
	}

	return nil
}

// Result summarizes a run. The Assignment passed to Run holds the best
// solution; Energy is its energy.
type Result struct {
	Status       Status
	Energy       int64
	Iterations   int
	Accepted     int
	Improvements int
	InitialTemp  float64
	Elapsed      time.Duration
}

package construct

import (
	"errors"
	"math/rand"
)

// ErrInfeasibleInstance reports that quota accounting could not cover every
// node. A validated instance never produces it; seeing it means a bug.
var ErrInfeasibleInstance = errors.New("construct: infeasible instance")

// Options configures Greedy.
type Options struct {
	// Rand, when non-nil, permutes the order in which component seeds are
	// chosen. Marginal ties are still broken by lowest type index.
	Rand *rand.Rand

	// NoDeferral places every node immediately instead of deferring nodes
	// whose best marginal energy is positive.
	NoDeferral bool
}

// DefaultOptions returns deterministic options: index-ordered seeds,
// deferral enabled.
func DefaultOptions() Options {
	return Options{
		Rand:       nil,
		NoDeferral: false,
	}
}

// Pair is one ordered pair of atom types with its interaction energy.
type Pair struct {
	I, J   int
	Energy int64
}

// Stats describes one construction run.
type Stats struct {
	// Seeds is the number of component seeds that were started.
	Seeds int
	// Deferred is the number of nodes placed by the final forced pass.
	Deferred int
}

package assign

import (
	"fmt"

	"github.com/katalvlaran/atomsolve/problem"
)

// Check validates a complete solution produced outside the solver and returns
// its total energy. It enforces, in order:
//  1. len(types) == t                      (ErrLengthMismatch),
//  2. every entry in [0, k)                 (ErrTypeOutOfRange),
//  3. per-type counts equal the quotas      (ErrQuotaViolation).
//
// Complexity: O(t + k + |E|).
func Check(inst *problem.Instance, types []int) (int64, error) {
	if len(types) != inst.NodeCount() {
		return 0, fmt.Errorf("Check: %d entries, node count %d: %w",
			len(types), inst.NodeCount(), ErrLengthMismatch)
	}

	var (
		k      = inst.AtomCount()
		counts = make([]int, k)
		node   int
		t      int
	)
	for node, t = range types {
		if t < 0 || t >= k {
			return 0, fmt.Errorf("Check: node %d has type %d, valid types 0..%d: %w",
				node, t, k-1, ErrTypeOutOfRange)
		}
		counts[t]++
	}
	for t = 0; t < k; t++ {
		if counts[t] != inst.Quota(t) {
			return 0, fmt.Errorf("Check: type %d placed %d times, quota %d: %w",
				t, counts[t], inst.Quota(t), ErrQuotaViolation)
		}
	}

	return TotalEnergy(inst, types), nil
}

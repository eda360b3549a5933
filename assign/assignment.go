package assign

import (
	"fmt"

	"github.com/katalvlaran/atomsolve/problem"
)

// Unassigned marks a node that has no atom type yet.
const Unassigned = -1

// Assignment is a complete or partial mapping node → atom type with
// incrementally maintained remaining quotas and total energy.
type Assignment struct {
	inst      *problem.Instance
	types     []int
	remaining []int
	placed    int
	energy    int64
}

// New returns an empty Assignment for inst: every node Unassigned, every
// remaining quota equal to the instance quota, energy 0.
func New(inst *problem.Instance) *Assignment {
	a := &Assignment{
		inst:      inst,
		types:     make([]int, inst.NodeCount()),
		remaining: inst.Quotas(),
	}
	for i := range a.types {
		a.types[i] = Unassigned
	}

	return a
}

// FromTypes builds a complete Assignment from a type vector after checking
// it with Check.
func FromTypes(inst *problem.Instance, types []int) (*Assignment, error) {
	energy, err := Check(inst, types)
	if err != nil {
		return nil, err
	}
	a := &Assignment{
		inst:      inst,
		types:     make([]int, len(types)),
		remaining: make([]int, inst.AtomCount()),
		placed:    len(types),
		energy:    energy,
	}
	copy(a.types, types)

	return a, nil
}

// Instance returns the problem the Assignment belongs to.
func (a *Assignment) Instance() *problem.Instance { return a.inst }

// TypeOf returns the type of node, or Unassigned.
func (a *Assignment) TypeOf(node int) int { return a.types[node] }

// Types returns a copy of the node → type vector.
func (a *Assignment) Types() []int {
	out := make([]int, len(a.types))
	copy(out, a.types)

	return out
}

// View returns the internal node → type vector. It must not be modified and
// is only valid until the next mutation.
func (a *Assignment) View() []int { return a.types }

// Remaining returns how many more nodes may receive atom type t.
func (a *Assignment) Remaining(t int) int { return a.remaining[t] }

// Placed returns the number of nodes that currently have a type.
func (a *Assignment) Placed() int { return a.placed }

// Complete reports whether every node has a type (and therefore every
// remaining quota is zero).
func (a *Assignment) Complete() bool { return a.placed == len(a.types) }

// Energy returns the running total energy.
func (a *Assignment) Energy() int64 { return a.energy }

// Place gives the unassigned node the atom type t and returns the marginal
// energy that was added.
func (a *Assignment) Place(node, t int) (int64, error) {
	if node < 0 || node >= len(a.types) {
		return 0, fmt.Errorf("Place: node %d: %w", node, ErrNodeOutOfRange)
	}
	if t < 0 || t >= len(a.remaining) {
		return 0, fmt.Errorf("Place: type %d: %w", t, ErrTypeOutOfRange)
	}
	if a.types[node] != Unassigned {
		return 0, fmt.Errorf("Place: node %d: %w", node, ErrAlreadyPlaced)
	}
	if a.remaining[t] == 0 {
		return 0, fmt.Errorf("Place: type %d: %w", t, ErrQuotaExhausted)
	}

	delta := MarginalEnergy(a.inst, a.types, node, t)
	a.types[node] = t
	a.remaining[t]--
	a.placed++
	a.energy += delta

	return delta, nil
}

// Unplace removes the type of node and returns it, giving its quota back.
func (a *Assignment) Unplace(node int) (int, error) {
	if node < 0 || node >= len(a.types) {
		return Unassigned, fmt.Errorf("Unplace: node %d: %w", node, ErrNodeOutOfRange)
	}
	t := a.types[node]
	if t == Unassigned {
		return Unassigned, fmt.Errorf("Unplace: node %d: %w", node, ErrNotPlaced)
	}

	// The marginal formula reads neighbors only, so unassign first.
	a.types[node] = Unassigned
	a.energy -= MarginalEnergy(a.inst, a.types, node, t)
	a.remaining[t]++
	a.placed--

	return t, nil
}

// Swap exchanges the types of two assigned nodes and returns the energy
// delta that was applied. Quotas are unaffected by construction.
func (a *Assignment) Swap(u, v int) (int64, error) {
	if u < 0 || u >= len(a.types) || v < 0 || v >= len(a.types) {
		return 0, fmt.Errorf("Swap: nodes (%d, %d): %w", u, v, ErrNodeOutOfRange)
	}
	if a.types[u] == Unassigned || a.types[v] == Unassigned {
		return 0, fmt.Errorf("Swap: nodes (%d, %d): %w", u, v, ErrNotPlaced)
	}

	delta := SwapDelta(a.inst, a.types, u, v)
	a.applySwap(u, v, delta)

	return delta, nil
}

// applySwap is the unchecked hot-path variant used once delta is known.
func (a *Assignment) applySwap(u, v int, delta int64) {
	a.types[u], a.types[v] = a.types[v], a.types[u]
	a.energy += delta
}

// SwapKnown applies a swap whose delta was already computed with SwapDelta on
// the current state. Callers own the correctness of delta; Verify detects
// misuse.
func (a *Assignment) SwapKnown(u, v int, delta int64) { a.applySwap(u, v, delta) }

// Clone returns an independent deep copy sharing only the read-only Instance.
func (a *Assignment) Clone() *Assignment {
	c := &Assignment{
		inst:      a.inst,
		types:     make([]int, len(a.types)),
		remaining: make([]int, len(a.remaining)),
		placed:    a.placed,
		energy:    a.energy,
	}
	copy(c.types, a.types)
	copy(c.remaining, a.remaining)

	return c
}

// Restore overwrites a complete Assignment with a previously snapshotted
// complete type vector of known energy. Quotas stay all zero.
func (a *Assignment) Restore(types []int, energy int64) {
	copy(a.types, types)
	a.energy = energy
}

// Verify recomputes remaining quotas and total energy from scratch and
// compares them with the incremental bookkeeping.
//
// Errors: ErrBookkeeping (with the diverging values) on any mismatch.
//
// Complexity: O(t + k + |E|).
func (a *Assignment) Verify() error {
	counts := make([]int, len(a.remaining))
	placed := 0
	for _, t := range a.types {
		if t == Unassigned {
			continue
		}
		counts[t]++
		placed++
	}
	if placed != a.placed {
		return fmt.Errorf("Verify: placed %d, tracked %d: %w", placed, a.placed, ErrBookkeeping)
	}
	for t, c := range counts {
		if a.inst.Quota(t)-c != a.remaining[t] {
			return fmt.Errorf("Verify: type %d remaining %d, tracked %d: %w",
				t, a.inst.Quota(t)-c, a.remaining[t], ErrBookkeeping)
		}
	}
	if e := TotalEnergy(a.inst, a.types); e != a.energy {
		return fmt.Errorf("Verify: energy %d, tracked %d: %w", e, a.energy, ErrBookkeeping)
	}

	return nil
}

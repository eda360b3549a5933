// Package assign - objective evaluator.
//
// Three evaluators share one convention: an edge entry u → v contributes
// Energy(type[u], type[v]) when both endpoints are assigned and nothing
// otherwise.
//
//   - TotalEnergy: one pass over all edge entries, O(|E|).
//   - MarginalEnergy: energy added by giving one unassigned node a type, O(deg).
//   - SwapDelta: energy change of exchanging the types of two nodes,
//     O(deg(u) + deg(v)).
//
// SwapDelta counts every edge entry touching u or v exactly once:
//   - entries u → w and w → u with w ∉ {u, v} change one endpoint type,
//   - self-loops u → u change both endpoints (Energy(tu,tu) → Energy(tv,tv)),
//   - entries u → v are visited from u's outgoing list only and entries
//     v → u from v's outgoing list only; the incoming lists skip them.
package assign

import "github.com/katalvlaran/atomsolve/problem"

// TotalEnergy sums the contributions of all edge entries whose endpoints are
// both assigned. For a complete vector this is the objective value.
//
// Contract: len(types) == inst.NodeCount(); entries are Unassigned or in [0, k).
func TotalEnergy(inst *problem.Instance, types []int) int64 {
	var (
		total  int64
		u, tu  int
		w, tw  int
		row    []int64
		target []int
	)
	for u = 0; u < inst.NodeCount(); u++ {
		tu = types[u]
		if tu == Unassigned {
			continue
		}
		row = inst.EnergyRow(tu)
		target = inst.Neighbors(u)
		for _, w = range target {
			tw = types[w]
			if tw == Unassigned {
				continue
			}
			total += row[tw]
		}
	}

	return total
}

// MarginalEnergy returns the energy that giving the unassigned node the atom
// type t would add, given the types currently in types. Self-loops on node
// are included.
func MarginalEnergy(inst *problem.Instance, types []int, node, t int) int64 {
	var (
		delta int64
		w, tw int
		row   = inst.EnergyRow(t)
	)
	for _, w = range inst.Neighbors(node) {
		if w == node {
			delta += row[t]
			continue
		}
		if tw = types[w]; tw != Unassigned {
			delta += row[tw]
		}
	}
	for _, w = range inst.InNeighbors(node) {
		if w == node {
			continue // already counted from the outgoing side
		}
		if tw = types[w]; tw != Unassigned {
			delta += inst.Energy(tw, t)
		}
	}

	return delta
}

// SwapDelta returns new − old total energy if the types of u and v were
// exchanged. Both nodes must be assigned; equal types yield 0.
func SwapDelta(inst *problem.Instance, types []int, u, v int) int64 {
	tu, tv := types[u], types[v]
	if tu == tv || u == v {
		return 0
	}

	return endpointDelta(inst, types, u, v, tu, tv) + endpointDelta(inst, types, v, u, tv, tu)
}

// endpointDelta accumulates the change on edge entries incident to x when x
// moves from type tx to type ty and its partner y moves from ty to tx.
// Entries between x and y are taken from x's outgoing list only.
func endpointDelta(inst *problem.Instance, types []int, x, y, tx, ty int) int64 {
	var (
		delta  int64
		w, tw  int
		oldRow = inst.EnergyRow(tx)
		newRow = inst.EnergyRow(ty)
	)
	for _, w = range inst.Neighbors(x) {
		switch w {
		case x:
			delta += newRow[ty] - oldRow[tx]
		case y:
			// x → y: Energy(tx, ty) becomes Energy(ty, tx).
			delta += newRow[tx] - oldRow[ty]
		default:
			if tw = types[w]; tw != Unassigned {
				delta += newRow[tw] - oldRow[tw]
			}
		}
	}
	for _, w = range inst.InNeighbors(x) {
		if w == x || w == y {
			continue
		}
		if tw = types[w]; tw != Unassigned {
			delta += inst.Energy(tw, ty) - inst.Energy(tw, tx)
		}
	}

	return delta
}

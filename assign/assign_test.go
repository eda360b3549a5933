package assign_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/atomsolve/assign"
	"github.com/katalvlaran/atomsolve/problem"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// cycleInstance builds the 4-cycle 0→1→2→3→0 with quotas [2,2].
func cycleInstance(t *testing.T, energy [][]int64) *problem.Instance {
	t.Helper()
	edges := []problem.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}}
	inst, err := problem.New(4, []int{2, 2}, energy, edges)
	require.NoError(t, err)

	return inst
}

// randomInstance builds an asymmetric instance with self-loops, duplicate
// entries and both edge directions, plus a random complete type vector.
func randomInstance(t *testing.T, rng *rand.Rand, n, k, m int) (*problem.Instance, []int) {
	t.Helper()
	types := make([]int, n)
	quotas := make([]int, k)
	for i := range types {
		types[i] = rng.Intn(k)
		quotas[types[i]]++
	}
	energy := make([][]int64, k)
	for i := range energy {
		energy[i] = make([]int64, k)
		for j := range energy[i] {
			energy[i][j] = int64(rng.Intn(21) - 10)
		}
	}
	edges := make([]problem.Edge, m)
	for i := range edges {
		edges[i] = problem.Edge{From: rng.Intn(n), To: rng.Intn(n)}
	}
	inst, err := problem.New(n, quotas, energy, edges)
	require.NoError(t, err)

	return inst, types
}

// -----------------------------------------------------------------------------
// Objective evaluator
// -----------------------------------------------------------------------------

func TestTotalEnergy_Cycle(t *testing.T) {
	inst := cycleInstance(t, [][]int64{{0, 1}, {1, 0}})

	assert.Equal(t, int64(4), assign.TotalEnergy(inst, []int{0, 1, 0, 1}))
	assert.Equal(t, int64(2), assign.TotalEnergy(inst, []int{0, 0, 1, 1}))
	assert.Equal(t, int64(1), assign.TotalEnergy(inst, []int{0, 1, assign.Unassigned, assign.Unassigned}))
}

func TestTotalEnergy_Directed(t *testing.T) {
	edges := []problem.Edge{{From: 0, To: 1}}
	inst, err := problem.New(2, []int{1, 1}, [][]int64{{0, 7}, {-3, 0}}, edges)
	require.NoError(t, err)

	assert.Equal(t, int64(7), assign.TotalEnergy(inst, []int{0, 1}))
	assert.Equal(t, int64(-3), assign.TotalEnergy(inst, []int{1, 0}))
}

func TestSwapDelta_MatchesRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		inst, types := randomInstance(t, rng, 12, 3, 40)
		base := assign.TotalEnergy(inst, types)

		for u := 0; u < inst.NodeCount(); u++ {
			for v := 0; v < inst.NodeCount(); v++ {
				delta := assign.SwapDelta(inst, types, u, v)

				types[u], types[v] = types[v], types[u]
				want := assign.TotalEnergy(inst, types) - base
				types[u], types[v] = types[v], types[u]

				require.Equalf(t, want, delta, "trial %d swap (%d,%d)", trial, u, v)
			}
		}
	}
}

func TestSwapDelta_EdgeBetweenSwappedNodesCountedOnce(t *testing.T) {
	// Both directions between 0 and 1 plus a self-loop on 0.
	edges := []problem.Edge{{From: 0, To: 1}, {From: 1, To: 0}, {From: 0, To: 0}}
	inst, err := problem.New(2, []int{1, 1}, [][]int64{{1, 10}, {100, 1000}}, edges)
	require.NoError(t, err)

	types := []int{0, 1}
	// before: E(0,1)+E(1,0)+E(0,0) = 10+100+1 = 111
	// after:  E(1,0)+E(0,1)+E(1,1) = 100+10+1000 = 1110
	assert.Equal(t, int64(111), assign.TotalEnergy(inst, types))
	assert.Equal(t, int64(999), assign.SwapDelta(inst, types, 0, 1))
	assert.Equal(t, int64(999), assign.SwapDelta(inst, types, 1, 0))
}

func TestMarginalEnergy_PartialNeighbors(t *testing.T) {
	inst := cycleInstance(t, [][]int64{{0, 1}, {2, 0}})
	types := []int{0, assign.Unassigned, 1, assign.Unassigned}

	// node 1: in-edge 0→1, out-edge 1→2.
	assert.Equal(t, int64(0+1), assign.MarginalEnergy(inst, types, 1, 0)) // E(0,0)+E(0,1)
	assert.Equal(t, int64(1+0), assign.MarginalEnergy(inst, types, 1, 1)) // E(0,1)+E(1,1)
}

// -----------------------------------------------------------------------------
// Assignment bookkeeping
// -----------------------------------------------------------------------------

func TestAssignment_PlaceUnplace(t *testing.T) {
	inst := cycleInstance(t, [][]int64{{0, 1}, {1, 0}})
	a := assign.New(inst)

	assert.False(t, a.Complete())
	assert.Equal(t, 2, a.Remaining(0))
	assert.Equal(t, assign.Unassigned, a.TypeOf(3))

	for node, typ := range []int{0, 1, 0, 1} {
		_, err := a.Place(node, typ)
		require.NoError(t, err)
		require.NoError(t, a.Verify())
	}
	assert.True(t, a.Complete())
	assert.Equal(t, int64(4), a.Energy())
	assert.Equal(t, 0, a.Remaining(0))
	assert.Equal(t, 0, a.Remaining(1))

	typ, err := a.Unplace(1)
	require.NoError(t, err)
	assert.Equal(t, 1, typ)
	assert.Equal(t, 1, a.Remaining(1))
	assert.Equal(t, int64(2), a.Energy())
	require.NoError(t, a.Verify())
}

func TestAssignment_PlaceErrors(t *testing.T) {
	inst := cycleInstance(t, [][]int64{{0, 1}, {1, 0}})
	a := assign.New(inst)

	_, err := a.Place(4, 0)
	assert.ErrorIs(t, err, assign.ErrNodeOutOfRange)
	_, err = a.Place(0, 2)
	assert.ErrorIs(t, err, assign.ErrTypeOutOfRange)

	_, err = a.Place(0, 0)
	require.NoError(t, err)
	_, err = a.Place(0, 1)
	assert.ErrorIs(t, err, assign.ErrAlreadyPlaced)

	_, err = a.Place(1, 0)
	require.NoError(t, err)
	_, err = a.Place(2, 0)
	assert.ErrorIs(t, err, assign.ErrQuotaExhausted)

	_, err = a.Unplace(3)
	assert.ErrorIs(t, err, assign.ErrNotPlaced)
	_, err = a.Swap(0, 3)
	assert.ErrorIs(t, err, assign.ErrNotPlaced)
}

func TestAssignment_SwapKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inst, types := randomInstance(t, rng, 20, 4, 60)
	a, err := assign.FromTypes(inst, types)
	require.NoError(t, err)

	for step := 0; step < 500; step++ {
		u, v := rng.Intn(20), rng.Intn(20)
		_, err = a.Swap(u, v)
		require.NoError(t, err)
		require.NoError(t, a.Verify(), "step %d", step)
	}
	_, err = assign.Check(inst, a.Types())
	assert.NoError(t, err, "swaps must preserve quotas")
}

func TestAssignment_CloneIsIndependent(t *testing.T) {
	inst := cycleInstance(t, [][]int64{{0, 1}, {1, 0}})
	a, err := assign.FromTypes(inst, []int{0, 0, 1, 1})
	require.NoError(t, err)

	c := a.Clone()
	_, err = c.Swap(0, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 1, 1}, a.Types())
	assert.Equal(t, []int{1, 0, 1, 0}, c.Types())
	assert.Equal(t, int64(2), a.Energy())
	assert.Equal(t, int64(4), c.Energy())

	c.Restore(a.View(), a.Energy())
	assert.Equal(t, a.Types(), c.Types())
	require.NoError(t, c.Verify())
}

func TestAssignment_VerifyDetectsDrift(t *testing.T) {
	inst := cycleInstance(t, [][]int64{{0, 1}, {1, 0}})
	a, err := assign.FromTypes(inst, []int{0, 0, 1, 1})
	require.NoError(t, err)

	a.SwapKnown(0, 3, 0) // wrong delta on purpose
	assert.ErrorIs(t, a.Verify(), assign.ErrBookkeeping)
}

// -----------------------------------------------------------------------------
// Solution checker
// -----------------------------------------------------------------------------

func TestCheck(t *testing.T) {
	inst := cycleInstance(t, [][]int64{{-1, 0}, {0, -1}})

	energy, err := assign.Check(inst, []int{0, 0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, int64(-2), energy)

	_, err = assign.Check(inst, []int{0, 0, 1})
	assert.ErrorIs(t, err, assign.ErrLengthMismatch)

	_, err = assign.Check(inst, []int{0, 0, 1, 2})
	assert.ErrorIs(t, err, assign.ErrTypeOutOfRange)

	_, err = assign.Check(inst, []int{0, 0, 0, 1})
	assert.ErrorIs(t, err, assign.ErrQuotaViolation)

	_, err = assign.FromTypes(inst, []int{1, 1, 1, 1})
	assert.ErrorIs(t, err, assign.ErrQuotaViolation)
}

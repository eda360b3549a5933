package construct

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"

	"github.com/katalvlaran/atomsolve/assign"
	"github.com/katalvlaran/atomsolve/problem"
)

// node states during construction.
const (
	stateOpen = iota
	statePlaced
	stateDeferred
)

// RankedPairs returns all k² ordered type pairs sorted by ascending energy,
// ties by (I, J).
//
// Complexity: O(k² log k).
func RankedPairs(inst *problem.Instance) []Pair {
	k := inst.AtomCount()
	pairs := make([]Pair, 0, k*k)

	var i, j int
	for i = 0; i < k; i++ {
		for j = 0; j < k; j++ {
			pairs = append(pairs, Pair{I: i, J: j, Energy: inst.Energy(i, j)})
		}
	}
	slices.SortFunc(pairs, func(a, b Pair) int {
		if c := cmp.Compare(a.Energy, b.Energy); c != 0 {
			return c
		}
		if c := cmp.Compare(a.I, b.I); c != 0 {
			return c
		}

		return cmp.Compare(a.J, b.J)
	})

	return pairs
}

// Greedy builds a complete Assignment for inst (see the package doc).
func Greedy(inst *problem.Instance, opts Options) (*assign.Assignment, error) {
	a, _, err := Build(inst, opts)

	return a, err
}

// Build is Greedy that also reports construction statistics.
//
// Errors: ErrInfeasibleInstance (wrapped with the node that could not be
// placed) when quota accounting fails.
func Build(inst *problem.Instance, opts Options) (*assign.Assignment, Stats, error) {
	var (
		n     = inst.NodeCount()
		k     = inst.AtomCount()
		total int
		i     int
	)
	for i = 0; i < k; i++ {
		total += inst.Quota(i)
	}
	if total != n {
		return nil, Stats{}, fmt.Errorf("Greedy: quotas cover %d of %d nodes: %w", total, n, ErrInfeasibleInstance)
	}

	b := &builder{
		inst:      inst,
		a:         assign.New(inst),
		pairs:     RankedPairs(inst),
		state:     make([]uint8, n),
		placedNbr: make([]int, n),
		seedOrder: make([]int, n),
		noDefer:   opts.NoDeferral,
	}
	for i = 0; i < n; i++ {
		b.seedOrder[i] = i
	}
	if opts.Rand != nil {
		opts.Rand.Shuffle(n, func(x, y int) { b.seedOrder[x], b.seedOrder[y] = b.seedOrder[y], b.seedOrder[x] })
	}

	if err := b.run(); err != nil {
		return nil, b.stats, err
	}

	return b.a, b.stats, nil
}

// builder carries the working state of one Greedy run.
type builder struct {
	inst  *problem.Instance
	a     *assign.Assignment
	pairs []Pair

	state     []uint8
	placedNbr []int
	frontier  frontier

	seedOrder  []int
	seedCursor int

	deferred []int
	noDefer  bool
	stats    Stats
}

// run executes the connectivity-ordered main phase and the forced pass.
func (b *builder) run() error {
	var (
		n        = b.inst.NodeCount()
		node, t  int
		marginal int64
		ok       bool
		err      error
	)
	for b.a.Placed()+len(b.deferred) < n {
		node, ok = b.popFrontier()
		if !ok {
			node = b.nextSeed()
			if t, ok = b.seedType(node); !ok {
				return fmt.Errorf("Greedy: seed %d: no type with remaining quota: %w", node, ErrInfeasibleInstance)
			}
			b.stats.Seeds++
		} else {
			if t, marginal, ok = b.bestType(node); !ok {
				return fmt.Errorf("Greedy: node %d: no type with remaining quota: %w", node, ErrInfeasibleInstance)
			}
			if marginal > 0 && !b.noDefer {
				b.state[node] = stateDeferred
				b.deferred = append(b.deferred, node)
				continue
			}
		}
		if err = b.place(node, t); err != nil {
			return err
		}
	}

	// Forced pass: every neighbor that could still be placed now is.
	for _, node = range b.deferred {
		if t, _, ok = b.bestType(node); !ok {
			return fmt.Errorf("Greedy: deferred node %d: no type with remaining quota: %w", node, ErrInfeasibleInstance)
		}
		if err = b.place(node, t); err != nil {
			return err
		}
	}
	b.stats.Deferred = len(b.deferred)

	if !b.a.Complete() {
		return fmt.Errorf("Greedy: %d of %d nodes placed: %w", b.a.Placed(), n, ErrInfeasibleInstance)
	}

	return nil
}

// place assigns t to node and pushes its open neighbors onto the frontier.
func (b *builder) place(node, t int) error {
	if _, err := b.a.Place(node, t); err != nil {
		return fmt.Errorf("Greedy: %w: %w", ErrInfeasibleInstance, err)
	}
	b.state[node] = statePlaced
	b.touch(node, b.inst.Neighbors(node))
	b.touch(node, b.inst.InNeighbors(node))

	return nil
}

// touch increments the placed-neighbor count of every open node in nbrs.
func (b *builder) touch(node int, nbrs []int) {
	for _, w := range nbrs {
		if w == node || b.state[w] != stateOpen {
			continue
		}
		b.placedNbr[w]++
		heap.Push(&b.frontier, frontierEntry{node: w, count: b.placedNbr[w]})
	}
}

// popFrontier returns the open node with the most placed neighbors, skipping
// stale heap entries.
func (b *builder) popFrontier() (int, bool) {
	var e frontierEntry
	for b.frontier.Len() > 0 {
		e = heap.Pop(&b.frontier).(frontierEntry)
		if b.state[e.node] == stateOpen && e.count == b.placedNbr[e.node] {
			return e.node, true
		}
	}

	return 0, false
}

// nextSeed returns the next open node in seed order. The caller guarantees
// that at least one open node exists.
func (b *builder) nextSeed() int {
	for b.state[b.seedOrder[b.seedCursor]] != stateOpen {
		b.seedCursor++
	}

	return b.seedOrder[b.seedCursor]
}

// seedType picks the type of a component seed: type I of the first ranked
// pair the quotas can host when the seed has neighbors, otherwise (or when no
// pair fits) the greedy best type.
func (b *builder) seedType(node int) (int, bool) {
	if b.hasOtherNeighbor(node) {
		for _, p := range b.pairs {
			need := 1
			if p.I == p.J {
				need = 2
			}
			if b.a.Remaining(p.I) >= need && b.a.Remaining(p.J) >= 1 {
				return p.I, true
			}
		}
	}
	t, _, ok := b.bestType(node)

	return t, ok
}

// hasOtherNeighbor reports whether node has an incident edge to another node.
func (b *builder) hasOtherNeighbor(node int) bool {
	for _, w := range b.inst.Neighbors(node) {
		if w != node {
			return true
		}
	}
	for _, w := range b.inst.InNeighbors(node) {
		if w != node {
			return true
		}
	}

	return false
}

// bestType returns the available type with the lowest marginal energy for
// node, ties lowest index; ok is false when no type has remaining quota.
func (b *builder) bestType(node int) (int, int64, bool) {
	var (
		best     = -1
		bestCost int64
		cost     int64
		t        int
		types    = b.a.View()
	)
	for t = 0; t < b.inst.AtomCount(); t++ {
		if b.a.Remaining(t) == 0 {
			continue
		}
		cost = assign.MarginalEnergy(b.inst, types, node, t)
		if best < 0 || cost < bestCost {
			best, bestCost = t, cost
		}
	}

	return best, bestCost, best >= 0
}

// frontierEntry is a lazy heap entry; it is stale once count no longer
// matches the node's current placed-neighbor count.
type frontierEntry struct {
	node  int
	count int
}

// frontier is a max-heap on count, ties lowest node index.
type frontier []frontierEntry

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].count != f[j].count {
		return f[i].count > f[j].count
	}

	return f[i].node < f[j].node
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierEntry)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]

	return x
}

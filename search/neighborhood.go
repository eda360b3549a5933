package search

import (
	"math/rand"

	"github.com/katalvlaran/atomsolve/problem"
)

const (
	// sampleRetries bounds uniform redraws before the linear fallback.
	sampleRetries = 32
	// adjacentRetries bounds restricted redraws before falling back to Sample.
	adjacentRetries = 8
)

// picker draws candidate pairs (u, v) with types[u] != types[v].
//
// Contract: the type vector holds at least two distinct types, so a
// differing pair always exists.
type picker struct {
	mode  Neighborhood
	inst  *problem.Instance
	types []int
	rng   *rand.Rand
	n     int

	// Exhaustive cursor state.
	cu, cv  int
	scanned int
	pairs   int
}

func newPicker(mode Neighborhood, inst *problem.Instance, types []int, rng *rand.Rand) *picker {
	n := inst.NodeCount()

	return &picker{
		mode:  mode,
		inst:  inst,
		types: types,
		rng:   rng,
		n:     n,
		pairs: n * (n - 1) / 2,
	}
}

// next returns a differing pair. ok is false only in Exhaustive mode, once a
// full sweep has passed since the last call to reset; the sweep then starts
// over.
func (p *picker) next() (u, v int, ok bool) {
	switch p.mode {
	case Exhaustive:
		return p.sweep()
	case Adjacent:
		u, v = p.adjacent()
	default:
		u, v = p.sample()
	}

	return u, v, true
}

// reset marks an accepted move: the current sweep restarts its count.
func (p *picker) reset() { p.scanned = 0 }

// sweep advances the lexicographic cursor over u < v to the next differing
// pair.
func (p *picker) sweep() (int, int, bool) {
	for {
		if p.scanned >= p.pairs {
			p.scanned = 0

			return 0, 0, false
		}
		p.scanned++
		p.cv++
		if p.cv >= p.n {
			p.cu++
			if p.cu >= p.n-1 {
				p.cu = 0
			}
			p.cv = p.cu + 1
		}
		if p.types[p.cu] != p.types[p.cv] {
			return p.cu, p.cv, true
		}
	}
}

// sample draws a uniform differing pair, with a linear scan from a random
// node as the fallback for heavily skewed quotas.
func (p *picker) sample() (int, int) {
	var u, v, try int
	for try = 0; try < sampleRetries; try++ {
		u, v = p.rng.Intn(p.n), p.rng.Intn(p.n)
		if p.types[u] != p.types[v] {
			return u, v
		}
	}
	u = p.rng.Intn(p.n)
	for v = (u + 1) % p.n; p.types[v] == p.types[u]; v = (v + 1) % p.n {
	}

	return u, v
}

// adjacent draws u uniformly and v at distance one or two from u.
func (p *picker) adjacent() (int, int) {
	var u, v, w, try int
	var ok bool
	for try = 0; try < adjacentRetries; try++ {
		u = p.rng.Intn(p.n)
		if w, ok = p.randomNeighbor(u); !ok {
			continue
		}
		v = w
		if p.rng.Intn(2) == 1 {
			if v, ok = p.randomNeighbor(w); !ok {
				v = w
			}
		}
		if v != u && p.types[u] != p.types[v] {
			return u, v
		}
	}

	return p.sample()
}

// randomNeighbor returns a uniform entry of node's outgoing and incoming
// lists combined.
func (p *picker) randomNeighbor(node int) (int, bool) {
	out, in := p.inst.Neighbors(node), p.inst.InNeighbors(node)
	d := len(out) + len(in)
	if d == 0 {
		return 0, false
	}
	i := p.rng.Intn(d)
	if i < len(out) {
		return out[i], true
	}

	return in[i-len(out)], true
}

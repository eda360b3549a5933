// SPDX-License-Identifier: MIT
// Package: atomsolve/generate
//
// instance.go - Instance(t, k, opts...).
//
// Complexity:
//   - Time: O(t²) Bernoulli trials + O(t + |E|) repair + O(k²) energies.
//   - Space: O(t + |E| + k²).

package generate

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/atomsolve/problem"
)

const (
	methodInstance = "Instance"
	minNodes       = 1
	minTypes       = 2
)

// Instance samples a connected random instance with t nodes and k atom types.
//
// Errors: ErrTooFewNodes, ErrTooFewTypes, ErrInvalidDensity,
// ErrNeedRandSource; problem.ErrInvalidInstance never occurs for valid
// parameters.
func Instance(t, k int, opts ...Option) (*problem.Instance, error) {
	cfg := newConfig(opts...)
	if t < minNodes {
		return nil, fmt.Errorf("%s: t=%d < min=%d: %w", methodInstance, t, minNodes, ErrTooFewNodes)
	}
	if k < minTypes {
		return nil, fmt.Errorf("%s: k=%d < min=%d: %w", methodInstance, k, minTypes, ErrTooFewTypes)
	}
	if cfg.density < 0 || cfg.density > 1 || math.IsNaN(cfg.density) {
		return nil, fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodInstance, cfg.density, ErrInvalidDensity)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodInstance, ErrNeedRandSource)
	}

	edges := connect(t, randomEdges(t, cfg), cfg)
	quotas := randomQuotas(t, k, cfg)
	energy := symmetricEnergy(k, cfg)

	inst, err := problem.New(t, quotas, energy, edges)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodInstance, err)
	}

	return inst, nil
}

// randomEdges samples each unordered pair i < j with probability density,
// in stable (i asc, j asc) order.
func randomEdges(t int, cfg config) []problem.Edge {
	var (
		edges []problem.Edge
		i, j  int
	)
	for i = 0; i < t; i++ {
		for j = i + 1; j < t; j++ {
			if cfg.rng.Float64() < cfg.density {
				edges = append(edges, problem.Edge{From: i, To: j})
			}
		}
	}

	return edges
}

// connect grows the component of node 0 breadth-first; whenever it stops
// short of t nodes, the lowest unreached node is linked to a random reached
// one and the search resumes from it. The result is sorted by (From, To).
func connect(t int, edges []problem.Edge, cfg config) []problem.Edge {
	adj := make([][]int, t)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}

	var (
		reached = make([]bool, t)
		comp    = make([]int, 0, t)
		queue   = []int{0}
		next    int
		node, w int
	)
	reached[0] = true
	for {
		for len(queue) > 0 {
			node, queue = queue[0], queue[1:]
			comp = append(comp, node)
			for _, w = range adj[node] {
				if !reached[w] {
					reached[w] = true
					queue = append(queue, w)
				}
			}
		}
		if len(comp) == t {
			break
		}
		for reached[next] {
			next++
		}
		reached[next] = true
		pre := comp[cfg.rng.Intn(len(comp))]
		edges = append(edges, problem.Edge{From: min(pre, next), To: max(pre, next)})
		queue = append(queue, next)
	}

	slices.SortFunc(edges, func(a, b problem.Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}

		return cmp.Compare(a.To, b.To)
	})

	return edges
}

// randomQuotas draws a uniform type per node, then moves half of a random
// type's count to another random type 0..maxExchanges times.
func randomQuotas(t, k int, cfg config) []int {
	quotas := make([]int, k)

	var i, a, b, moved int
	for i = 0; i < t; i++ {
		quotas[cfg.rng.Intn(k)]++
	}
	exchanges := cfg.rng.Intn(maxExchanges + 1)
	for i = 0; i < exchanges; i++ {
		a = cfg.rng.Intn(k)
		for b = cfg.rng.Intn(k); b == a; b = cfg.rng.Intn(k) {
		}
		moved = quotas[a] / 2
		quotas[a] -= moved
		quotas[b] += moved
	}

	return quotas
}

// symmetricEnergy fills the upper triangle with round(N(mean, sd)) and
// mirrors it.
func symmetricEnergy(k int, cfg config) [][]int64 {
	energy := make([][]int64, k)
	for i := range energy {
		energy[i] = make([]int64, k)
	}

	var i, j int
	for i = 0; i < k; i++ {
		for j = i; j < k; j++ {
			energy[i][j] = int64(math.Round(cfg.rng.NormFloat64()*cfg.sd + cfg.mean))
			energy[j][i] = energy[i][j]
		}
	}

	return energy
}

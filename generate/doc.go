// SPDX-License-Identifier: MIT
// Package: atomsolve/generate
//
// Package generate produces random problem instances in the shape used by
// the course benchmarks:
//   - target graph: each unordered pair {i, j}, i < j, is an edge with
//     probability p (default 0.2), then every node left unreached from node 0
//     is linked to a uniformly chosen reached node, so the graph is connected;
//   - quotas: each node draws a uniform type, then 0..10 exchanges move half
//     of one type's count to another type;
//   - energies: symmetric, H[i][j] = H[j][i] = round(N(mean, sd)), default
//     mean 2 and sd 5.
//
// Edges are emitted once per unordered pair as (i, j) with i < j, ascending.
//
// Determinism: a fixed WithSeed reproduces the instance exactly.
package generate

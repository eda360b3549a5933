// Package construct builds an initial, complete and quota-respecting
// Assignment with a greedy, energy-ordered strategy.
//
// Strategy (Greedy):
//
//  1. Rank every ordered pair of atom types (i, j), i == j included, by
//     ascending Energy(i, j); ties by (i, j). The ranking encodes "these two
//     types are cheapest to place next to each other".
//  2. Visit nodes by connectivity: the next node is the open node with the
//     most already placed neighbors (ties: lowest index). When no open node
//     touches a placed one, a new component seed is taken in index order
//     (or in a random permutation when Options.Rand is set).
//  3. A seed with neighbors receives type i of the best ranked pair (i, j)
//     the remaining quotas can still host; its neighbors then gravitate to j.
//  4. Any other node receives the type with the lowest marginal energy w.r.t.
//     its placed neighbors among the types with remaining quota; ties go to
//     the lowest type index.
//  5. A node whose every available type would add strictly positive energy
//     (worse than leaving it empty for now) is deferred once. A final pass
//     force-assigns deferred nodes with the same greedy rule. Because quotas
//     sum to the node count, the pass always completes.
//
// Determinism: with Options.Rand == nil the result depends on the instance
// only. ErrInfeasibleInstance is an internal invariant violation that a
// validated problem.Instance never triggers.
//
// Complexity: O(k² log k + (t + |E|)·log|E| + t·k·deg) time, O(t + |E|) space.
package construct

// Package search refines a complete Assignment in place with swap moves under
// a simulated-annealing acceptance rule.
//
// Move: exchange the types of two nodes u, v with different types. A swap
// never changes per-type counts, so every move keeps the quotas exact and no
// feasibility check is needed.
//
// Step:
//  1. Pick a candidate (u, v) with the configured Neighborhood.
//  2. Δ = assign.SwapDelta, O(deg(u) + deg(v)).
//  3. Accept if Δ < 0; otherwise, at temperature T > 0, accept with
//     probability exp(−Δ/T). T = 0 is pure descent.
//  4. On a new best energy, snapshot the type vector.
//
// Temperature cools geometrically from InitialTemp to FinalTemp across
// MaxIterations: T(i) = T0·(T1/T0)^(i/(MaxIterations−1)). InitialTemp == 0
// calibrates T0 from sampled uphill deltas so that the mean uphill move is
// accepted with probability ½.
//
// Termination (both terminal):
//   - Converged: Patience consecutive steps without a new best, no candidate
//     pair exists at all, or (descent + Exhaustive) a full sweep found no
//     improving swap.
//   - Stopped: ctx cancelled (polled every step), TimeLimit exceeded (checked
//     every 256 steps) or MaxIterations reached.
//
// At termination the Assignment is restored to the best snapshot, so its
// energy is the lowest one observed during the run.
//
// Concurrency: Run is synchronous and owns its Assignment; parallelism lives
// in the solver package. The Instance is only read.
package search

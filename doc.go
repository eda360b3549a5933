// Package atomsolve assigns atom types to the nodes of a fixed target graph so
// that the summed pairwise interaction energy over the graph's edges is as
// low as possible, with an exact count (quota) of atoms per type. This is a
// graph-constrained quadratic assignment problem.
//
// Pipeline:
//
//	problem.New ─► construct.Greedy ─► search.Run ─► solver.Solve (best of N trials)
//
// Packages:
//
//	problem/    immutable, validated Instance (quotas, energy matrix, edges)
//	assign/     mutable Assignment with O(deg) swap deltas, solution checker
//	construct/  energy-ordered, connectivity-driven greedy construction
//	search/     swap-based simulated annealing with best-so-far snapshot
//	solver/     parallel independent trials, deterministic min reduction
//	codec/      course text formats for instances and solutions
//	generate/   random connected instances in the course's distribution
//	config/     YAML + environment configuration
//	telemetry/  Prometheus metrics, OpenTelemetry tracing, slog helpers
//	cmd/atomsolve  solve, check and generate from the command line
//
// Quick example (4-cycle, two self-attracting types):
//
//	  0───1
//	  │   │
//	  3───2
//
//	inst, _ := problem.New(4, []int{2, 2}, [][]int64{{-1, 0}, {0, -1}},
//		[]problem.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0}})
//	res, _ := solver.Solve(ctx, inst, solver.DefaultOptions())
//	// res.Types == [0 0 1 1], res.Energy == -2
//
// Energy convention: every listed edge entry u → v contributes
// Energy(type[u], type[v]) once. Undirected graphs list each edge once, as
// the course files do; listing both directions counts both.
package atomsolve

// Package solver is the entry point of atomsolve: it runs independent
// construct+search trials over one read-only problem.Instance and returns the
// lowest-energy assignment found.
//
// Trial i:
//   - seed_i = search.DeriveSeed(Options.Seed, i);
//   - trial 0 builds with the deterministic greedy, trials i > 0 permute the
//     order of component seeds with a generator derived from seed_i;
//   - search.Run refines the trial's private Assignment with seed_i.
//
// Trials run on goroutines, at most Options.Parallelism at a time. Nothing is
// shared between trials except the Instance and the serialized OnImprove
// hook. The reduction takes the lowest energy, ties to the lowest trial
// index, so a fixed Seed reproduces the result regardless of scheduling as
// long as no wall-clock budget cuts a trial short.
//
// A TimeBudget (or a cancelled ctx) stops all trials within one step; each
// still returns its best assignment and the overall Status is Stopped. A
// bookkeeping drift in any trial is fatal: siblings are cancelled and Solve
// returns an error wrapping assign.ErrBookkeeping.
package solver

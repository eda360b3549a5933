// Package assign holds the mutable candidate solution of an atom configuration
// problem and the objective evaluator that scores it.
//
// An Assignment maps every node to an atom type (or Unassigned) and keeps two
// pieces of bookkeeping up to date on every mutation:
//
//   - Remaining(i) == Quota(i) − (number of nodes currently of type i),
//   - Energy()     == Σ Energy(type[u], type[v]) over edge entries u → v whose
//     endpoints are both assigned (the full objective once Complete()).
//
// The evaluator side offers a one-pass TotalEnergy over all edges and an
// incremental SwapDelta whose cost depends only on the degrees of the two
// swapped nodes. Verify recomputes the objective from scratch and reports
// drift as ErrBookkeeping, which always indicates a programming error.
//
// Check validates an externally produced solution (length, type range and
// per-type counts) and returns its energy.
//
// An Assignment is owned by exactly one goroutine; Clone before handing a
// copy to another run.
package assign

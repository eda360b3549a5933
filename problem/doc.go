// Package problem defines the immutable in-memory model of an atom
// configuration instance.
//
// An Instance describes:
//
//   - t nodes of a fixed target graph (NodeCount),
//   - k atom types with a quota per type (Quotas); quotas sum to t,
//   - a k×k energy matrix, Energy(i, j) being the contribution of one node of
//     type i adjacent (via an outgoing edge entry) to one node of type j,
//   - a list of ordered edges (u, v), both endpoints in [0, t).
//
// Edges are directed entries exactly as listed: an undirected input that lists
// every pair once is counted once, an input listing both directions is counted
// twice. Self-loops are legal and contribute Energy(type, type).
//
// New validates every invariant once; afterwards the Instance is read-only and
// safe to share between goroutines without locking.
//
// Errors:
//   - every validation failure matches ErrInvalidInstance via errors.Is,
//   - and additionally one reason sentinel (ErrQuotaSum, ErrEnergyShape, …),
//   - *ValidationError carries the offending index and value.
package problem

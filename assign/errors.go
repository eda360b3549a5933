package assign

import "errors"

var (
	// ErrNodeOutOfRange is returned when a node index is outside [0, t).
	ErrNodeOutOfRange = errors.New("assign: node out of range")

	// ErrTypeOutOfRange is returned when an atom type is outside [0, k).
	ErrTypeOutOfRange = errors.New("assign: atom type out of range")

	// ErrAlreadyPlaced is returned by Place for a node that already has a type.
	ErrAlreadyPlaced = errors.New("assign: node already placed")

	// ErrNotPlaced is returned by Unplace/Swap for a node without a type.
	ErrNotPlaced = errors.New("assign: node not placed")

	// ErrQuotaExhausted is returned by Place when the type has no remaining quota.
	ErrQuotaExhausted = errors.New("assign: quota exhausted")

	// ErrLengthMismatch is returned when a type vector does not have t entries.
	ErrLengthMismatch = errors.New("assign: length does not match node count")

	// ErrQuotaViolation is returned when a type vector's per-type counts differ
	// from the instance quotas.
	ErrQuotaViolation = errors.New("assign: per-type count differs from quota")

	// ErrBookkeeping signals that incrementally maintained state drifted from a
	// from-scratch recomputation. It is never caused by user input.
	ErrBookkeeping = errors.New("assign: bookkeeping drift")
)

// SPDX-License-Identifier: MIT
// Package: atomsolve/problem
//
// errors.go — sentinel errors and the structured validation error.
//
// Error policy:
//   • ErrInvalidInstance is the umbrella class; it is never returned bare.
//   • Every failure also matches exactly one reason sentinel below.
//   • Callers branch with errors.Is; *ValidationError exposes the details.

package problem

import (
	"errors"
	"fmt"
)

// ErrInvalidInstance is matched by every construction-time validation failure.
var ErrInvalidInstance = errors.New("problem: invalid instance")

var (
	// ErrNegativeNodeCount indicates node_count < 0.
	ErrNegativeNodeCount = errors.New("problem: negative node count")

	// ErrNegativeQuota indicates that some atom quota is below zero.
	ErrNegativeQuota = errors.New("problem: negative quota")

	// ErrQuotaSum indicates that the quotas do not sum to node_count.
	ErrQuotaSum = errors.New("problem: quotas do not sum to node count")

	// ErrEnergyShape indicates that the energy matrix is not exactly k×k.
	ErrEnergyShape = errors.New("problem: energy matrix is not k×k")

	// ErrEdgeOutOfRange indicates an edge endpoint outside [0, node_count).
	ErrEdgeOutOfRange = errors.New("problem: edge endpoint out of range")
)

// ValidationError reports which invariant failed and where.
// It unwraps to both ErrInvalidInstance and Reason.
type ValidationError struct {
	// Reason is one of the reason sentinels of this package.
	Reason error
	// Index locates the offending row, quota or edge (-1 when not applicable).
	Index int
	// Detail is a human-readable description of the offending value(s).
	Detail string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s (index %d): %s", ErrInvalidInstance, e.Reason, e.Index, e.Detail)
	}

	return fmt.Sprintf("%s: %s: %s", ErrInvalidInstance, e.Reason, e.Detail)
}

// Unwrap exposes both the umbrella class and the specific reason.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidInstance, e.Reason}
}

// invalidf builds a *ValidationError with a formatted detail.
func invalidf(reason error, index int, format string, args ...any) error {
	return &ValidationError{
		Reason: reason,
		Index:  index,
		Detail: fmt.Sprintf(format, args...),
	}
}

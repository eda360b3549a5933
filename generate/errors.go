// SPDX-License-Identifier: MIT
// Package: atomsolve/generate
//
// errors.go - sentinel errors. Option constructors panic on meaningless
// values; Instance itself only returns these sentinels (wrapped with %w).

package generate

import "errors"

// ErrTooFewNodes indicates t < 1.
var ErrTooFewNodes = errors.New("generate: too few nodes")

// ErrTooFewTypes indicates k < 2; quota exchanges need two distinct types.
var ErrTooFewTypes = errors.New("generate: too few atom types")

// ErrInvalidDensity indicates an edge probability outside [0, 1].
var ErrInvalidDensity = errors.New("generate: density out of range")

// ErrNeedRandSource indicates that neither WithSeed nor WithRand was given.
var ErrNeedRandSource = errors.New("generate: rng is required")

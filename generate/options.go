// SPDX-License-Identifier: MIT
// Package: atomsolve/generate
//
// options.go - functional options.
//
// Contract:
//   - Options are functional (type Option func(*config)), applied in order.
//   - WithRand and WithEnergy panic on meaningless inputs; Instance never
//     panics.
//   - Randomness is explicit: WithSeed or WithRand is required.

package generate

import (
	"math"
	"math/rand"
)

// Defaults of the course generator.
const (
	DefaultDensity    = 0.2
	DefaultEnergyMean = 2.0
	DefaultEnergySD   = 5.0
	maxExchanges      = 10
)

// Option customizes Instance.
type Option func(*config)

// config aggregates all generator knobs.
type config struct {
	rng     *rand.Rand
	density float64
	mean    float64
	sd      float64
}

func newConfig(opts ...Option) config {
	cfg := config{
		density: DefaultDensity,
		mean:    DefaultEnergyMean,
		sd:      DefaultEnergySD,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed uses a fresh generator seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r for every draw. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("generate: WithRand(nil)")
	}

	return func(c *config) {
		c.rng = r
	}
}

// WithDensity sets the edge probability p; Instance rejects p outside [0, 1]
// with ErrInvalidDensity.
func WithDensity(p float64) Option {
	return func(c *config) {
		c.density = p
	}
}

// WithEnergy sets the normal distribution of the energy entries.
// Panics if sd is negative or either value is not finite.
func WithEnergy(mean, sd float64) Option {
	if sd < 0 || math.IsNaN(mean) || math.IsInf(mean, 0) || math.IsNaN(sd) || math.IsInf(sd, 0) {
		panic("generate: WithEnergy(invalid mean/sd)")
	}

	return func(c *config) {
		c.mean, c.sd = mean, sd
	}
}

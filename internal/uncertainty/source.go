// Package uncertainty provides the pluggable scalar noise source an Agent
// adds to its state of charge and payload on every read (ObservedSOC,
// ObservedPayload). A fresh sample is drawn on every call, matching the
// observed_soc formula literally rather than caching one draw per tick.
// Writes to the state of charge are not perturbed: the simulator applies
// its SoC deltas to the true value.
package uncertainty

import (
	"math"
	"math/rand/v2"
)

// Source samples a scalar noise value. Sample must be safe to call once per
// SoC read and once per SoC write; Last returns the most recent sample
// without drawing a new one.
type Source interface {
	Sample() float64
	Last() float64
}

// Zero is the deterministic, always-0 source — the default for agents that
// don't opt into noise.
type Zero struct{}

// Sample always returns 0.
func (Zero) Sample() float64 { return 0 }

// Last always returns 0.
func (Zero) Last() float64 { return 0 }

// Gaussian samples N(mean, std) using a seeded PRNG, so runs that use it are
// reproducible given the same seed.
type Gaussian struct {
	mean float64
	std  float64
	rng  *rand.Rand
	last float64
}

// NewGaussian builds a seeded Gaussian noise source.
func NewGaussian(mean, std float64, seed uint64) *Gaussian {
	return &Gaussian{
		mean: mean,
		std:  std,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Sample draws and remembers a new N(mean, std) value via a Box-Muller
// transform over the PRNG's uniform output (math/rand/v2 has no NormFloat64
// method on Rand).
func (g *Gaussian) Sample() float64 {
	u1, u2 := g.rng.Float64(), g.rng.Float64()
	for u1 == 0 {
		u1 = g.rng.Float64()
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	g.last = g.mean + g.std*z
	return g.last
}

// Last returns the most recently drawn value without sampling again.
func (g *Gaussian) Last() float64 { return g.last }

package ga

import (
	"math/rand/v2"
)

// Rand is the randomness source threaded through every stochastic operation.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
	NormFloat64() float64
}

// NewRand returns a PCG-backed generator seeded deterministically
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

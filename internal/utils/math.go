package utils

import (
	"math"
	"math/rand/v2"
)

// RandomFloat returns a random float64 in [0.0, 1.0)
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// NewSeededSource returns a reproducible [0, 1) source backed by PCG.
// It is not safe for concurrent use.
func NewSeededSource(seed uint64) func() float64 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // Deterministic by design for tests and replays
	return r.Float64
}

// Clamp bounds v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// NonNegative maps negative, NaN and infinite values to zero
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

package ballbreaker

import (
	"math"
	"math/rand/v2"
)

// Random is the uniform random source consumed by the simulation.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a deterministic PCG-backed source for the given seed.
func NewRandom(seed int64) *rand.Rand {
	s := uint64(seed) //#nosec G115 -- seed bits are reinterpreted, not range-checked
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// between returns a uniform value in [lo, hi).
func between(rng Random, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// chance returns true with probability p.
func chance(rng Random, p float64) bool {
	if p <= 0 {
		return false
	}
	return rng.Float64() < p
}

// pickColor draws a uniformly random play color.
func pickColor(rng Random) Color {
	return PlayColors[rng.IntN(len(PlayColors))]
}

// ColorWeights gives the relative frequency of each play color in a level.
type ColorWeights map[Color]float64

// pick performs a weighted roll over the play colors. Missing or
// non-positive weights exclude a color; an empty table is uniform.
func (w ColorWeights) pick(rng Random) Color {
	total := 0.0
	for _, c := range PlayColors {
		total += math.Max(0, w[c])
	}
	if total <= 0 {
		return pickColor(rng)
	}

	roll := rng.Float64() * total
	for _, c := range PlayColors {
		weight := math.Max(0, w[c])
		if roll < weight {
			return c
		}
		roll -= weight
	}
	return PlayColors[len(PlayColors)-1]
}

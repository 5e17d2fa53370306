// Package rng provides the randomness used by the game: an injectable
// uniform source for problem parameters and a deterministic seeded function
// for the daily challenge.
package rng

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source is the randomness provider for problem generation.
type Source interface {
	// IntN returns a uniform int in [0, n). n must be > 0.
	IntN(n int) int
}

// New returns an unseeded source. Reproducibility across runs is not
// guaranteed.
func New() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeeded returns a deterministic source for tests and previews.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// IntRange returns a uniform int in [lo, hi]. If hi < lo, lo is returned.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// SeededRandom returns frac(sin(seed) * 10000), a value in [0, 1) that
// depends on seed only.
func SeededRandom(seed int) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}

// DateSeed returns year*10000 + month*100 + day for the calendar date of t.
func DateSeed(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// Shuffle permutes s in place with Fisher–Yates, drawing the swap index for
// position i from SeededRandom(i). The permutation is the same for every call
// with a slice of the same length.
func Shuffle[T any](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := int(math.Floor(SeededRandom(i) * float64(i+1)))
		s[i], s[j] = s[j], s[i]
	}
}

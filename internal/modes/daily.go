package modes

import (
	"math"
	"time"

	"github.com/abhisek/mathrush/internal/rng"
)

// dailyPool lists the modes a daily challenge can land on. Untimed modes are
// excluded because a daily run needs a finish line.
var dailyPool = []Mode{Basic, Advanced, Speed, Sequence, Equation, Puzzle}

// Daily returns the challenge mode for the calendar date of t. Every player
// sees the same mode on the same date.
func Daily(t time.Time) Mode {
	r := rng.SeededRandom(rng.DateSeed(t))
	idx := int(math.Floor(r * float64(len(dailyPool))))
	if idx >= len(dailyPool) {
		idx = len(dailyPool) - 1
	}
	return dailyPool[idx]
}

// DailyPool returns a copy of the modes eligible for the daily challenge.
func DailyPool() []Mode {
	out := make([]Mode, len(dailyPool))
	copy(out, dailyPool)
	return out
}

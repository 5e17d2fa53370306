package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/rng"
)

const (
	minTarget = 10
	maxTarget = 59

	defaultNumbersCount = 4
)

// generateEquation draws operands and a target. It does not check that the
// target is reachable.
func generateEquation(src rng.Source, count, maxNumber int) *Problem {
	if count < 1 {
		count = defaultNumbersCount
	}
	if maxNumber < 1 {
		maxNumber = 1
	}

	numbers := make([]int, count)
	labels := make([]string, count)
	for i := range numbers {
		numbers[i] = rng.IntRange(src, 1, maxNumber)
		labels[i] = strconv.Itoa(numbers[i])
	}
	target := float64(rng.IntRange(src, minTarget, maxTarget))

	return &Problem{
		Text:            fmt.Sprintf("Make %g using %s", target, strings.Join(labels, ", ")),
		Answer:          target,
		Operation:       modes.OpEquation,
		EquationNumbers: numbers,
		TargetValue:     &target,
	}
}

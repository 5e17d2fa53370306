package problemgen

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/abhisek/mathrush/internal/modes"
)

// ErrNotEquation is returned when a solution is checked against a problem
// that is not an equation problem.
var ErrNotEquation = errors.New("not an equation problem")

// Reasons a parsed solution is rejected.
const (
	ReasonDivisionByZero = "division by zero"
	ReasonWrongNumbers   = "must use each given number exactly once"
	ReasonMissesTarget   = "does not reach the target"
)

// SolutionResult describes a checked equation solution.
type SolutionResult struct {
	Valid bool

	// Value is the evaluated result. Zero when evaluation failed.
	Value float64

	// Canonical identifies the solution for duplicate detection.
	Canonical string

	// Reason is set when Valid is false.
	Reason string
}

// ValidateSolution checks a submitted expression against an equation
// problem. A malformed expression returns an error wrapping
// ErrInvalidExpression; a well-formed but wrong expression returns a result
// with Valid false.
func ValidateSolution(input string, p *Problem) (SolutionResult, error) {
	if p == nil || p.Operation != modes.OpEquation || p.TargetValue == nil {
		return SolutionResult{}, ErrNotEquation
	}
	e, err := ParseExpression(input)
	if err != nil {
		return SolutionResult{}, err
	}

	res := SolutionResult{Canonical: e.Canonical()}

	if !sameNumbers(e.Literals(nil), p.EquationNumbers) {
		res.Reason = ReasonWrongNumbers
		return res, nil
	}

	v, err := e.Eval()
	if err != nil {
		if errors.Is(err, ErrDivisionByZero) {
			res.Reason = ReasonDivisionByZero
			return res, nil
		}
		return SolutionResult{}, fmt.Errorf("evaluate: %w", err)
	}
	res.Value = v

	if math.Abs(v-*p.TargetValue) >= answerTolerance {
		res.Reason = ReasonMissesTarget
		return res, nil
	}
	res.Valid = true
	return res, nil
}

// sameNumbers reports whether literals and numbers are equal as multisets.
func sameNumbers(literals []float64, numbers []int) bool {
	if len(literals) != len(numbers) {
		return false
	}
	want := make([]float64, len(numbers))
	for i, n := range numbers {
		want[i] = float64(n)
	}
	got := slices.Clone(literals)
	slices.Sort(got)
	slices.Sort(want)
	return slices.Equal(got, want)
}

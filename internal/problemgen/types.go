package problemgen

import (
	"slices"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/store"
)

// Problem is one generated question. Problems are immutable once returned
// by the generator; use Clone before keeping one past the current turn.
type Problem struct {
	// Text is the prompt shown to the player, e.g. "7 + 5" or "√49".
	Text string

	// Answer is the expected numeric answer. For equation problems it is
	// the target value.
	Answer float64

	Operation modes.Operation

	// Num1 and Num2 are the operands of arithmetic problems. Num2 is nil for
	// square roots; both are nil for sequence and equation problems.
	Num1 *int
	Num2 *int

	// SequenceType and SequenceValues are set for sequence problems. The
	// answer is the term following the last value.
	SequenceType   modes.SequenceType
	SequenceValues []int

	// EquationNumbers and TargetValue are set for equation problems.
	EquationNumbers []int
	TargetValue     *float64
}

// GenerateInput holds the context for generating one problem.
type GenerateInput struct {
	Mode modes.Mode

	// Config overrides the mode table entry when non-nil.
	Config *modes.Config
}

// Fallback returns the fixed problem served when generation fails.
func Fallback() *Problem {
	return &Problem{
		Text:      "2 + 2",
		Answer:    4,
		Operation: modes.OpAdd,
		Num1:      intPtr(2),
		Num2:      intPtr(2),
	}
}

// IsFallback reports whether p is the fixed fallback problem.
func (p *Problem) IsFallback() bool {
	return p != nil && p.Text == "2 + 2" && p.Answer == 4 && p.Operation == modes.OpAdd
}

// Clone returns a deep copy of p.
func (p *Problem) Clone() *Problem {
	if p == nil {
		return nil
	}
	c := *p
	c.Num1 = clonePtr(p.Num1)
	c.Num2 = clonePtr(p.Num2)
	c.TargetValue = clonePtr(p.TargetValue)
	c.SequenceValues = slices.Clone(p.SequenceValues)
	c.EquationNumbers = slices.Clone(p.EquationNumbers)
	return &c
}

// Data converts p to its persisted shape.
func (p *Problem) Data() store.ProblemData {
	return store.ProblemData{
		Num1:            clonePtr(p.Num1),
		Num2:            clonePtr(p.Num2),
		Operation:       string(p.Operation),
		Answer:          p.Answer,
		Display:         p.Text,
		SequenceType:    string(p.SequenceType),
		SequenceValues:  slices.Clone(p.SequenceValues),
		EquationNumbers: slices.Clone(p.EquationNumbers),
		TargetValue:     clonePtr(p.TargetValue),
	}
}

// FromData rebuilds a Problem from its persisted shape.
func FromData(d store.ProblemData) *Problem {
	return &Problem{
		Text:            d.Display,
		Answer:          d.Answer,
		Operation:       modes.Operation(d.Operation),
		Num1:            clonePtr(d.Num1),
		Num2:            clonePtr(d.Num2),
		SequenceType:    modes.SequenceType(d.SequenceType),
		SequenceValues:  slices.Clone(d.SequenceValues),
		EquationNumbers: slices.Clone(d.EquationNumbers),
		TargetValue:     clonePtr(d.TargetValue),
	}
}

func intPtr(v int) *int { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

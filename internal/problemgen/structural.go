package problemgen

import (
	"fmt"
	"math"

	"github.com/abhisek/mathrush/internal/modes"
)

// StructuralValidator checks that the text and operands are present and the
// answer is a finite number. Square roots legitimately have no second
// operand.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem, _ GenerateInput) *ValidationError {
	if p.Text == "" {
		return &ValidationError{Validator: v.Name(), Message: "display text is empty"}
	}
	if math.IsNaN(p.Answer) || math.IsInf(p.Answer, 0) {
		return &ValidationError{Validator: v.Name(), Message: "answer is not a finite number"}
	}
	if p.Num1 == nil {
		return &ValidationError{Validator: v.Name(), Message: "first operand is unset"}
	}
	if p.Num2 == nil && p.Operation != modes.OpSqrt {
		return &ValidationError{Validator: v.Name(), Message: "second operand is unset"}
	}
	return nil
}

// RangeValidator rejects answers whose magnitude exceeds Max.
type RangeValidator struct {
	Max float64
}

func (v *RangeValidator) Name() string { return "range" }

func (v *RangeValidator) Validate(p *Problem, _ GenerateInput) *ValidationError {
	if math.Abs(p.Answer) > v.Max {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %g exceeds ±%g", p.Answer, v.Max),
		}
	}
	return nil
}

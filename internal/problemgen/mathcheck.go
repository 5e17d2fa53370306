package problemgen

import (
	"fmt"

	"github.com/abhisek/mathrush/internal/modes"
)

// MathCheckValidator recomputes the answer from the operands and checks the
// construction guarantees: subtraction is non-negative and division is
// exact.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Problem, _ GenerateInput) *ValidationError {
	computed, err := Compute(p.Operation, p.Num1, p.Num2)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if computed != p.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %g but problem claims %g", computed, p.Answer),
		}
	}

	switch p.Operation {
	case modes.OpSubtract:
		if p.Answer < 0 {
			return &ValidationError{Validator: v.Name(), Message: "subtraction result is negative"}
		}
	case modes.OpDivide:
		if *p.Num2 == 0 || *p.Num1%*p.Num2 != 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%d is not divisible by %d", *p.Num1, *p.Num2),
			}
		}
	}
	return nil
}

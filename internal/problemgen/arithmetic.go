package problemgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/rng"
)

// ErrUnsupportedOperation is returned for operations the arithmetic
// generator does not know.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Arithmetic builds a problem from explicit operands. num2 is ignored for
// square roots. The answer is computed, not trusted.
func Arithmetic(op modes.Operation, num1, num2 int) (*Problem, error) {
	p := &Problem{Operation: op, Num1: intPtr(num1)}
	if op != modes.OpSqrt {
		p.Num2 = intPtr(num2)
	}
	answer, err := Compute(op, p.Num1, p.Num2)
	if err != nil {
		return nil, err
	}
	p.Answer = answer
	p.Text = displayText(op, num1, num2)
	return p, nil
}

// Compute evaluates op over the given operands.
func Compute(op modes.Operation, num1, num2 *int) (float64, error) {
	if num1 == nil {
		return 0, fmt.Errorf("%s: missing first operand", op)
	}
	a := float64(*num1)
	if op == modes.OpSqrt {
		if a < 0 {
			return 0, fmt.Errorf("√: negative radicand %d", *num1)
		}
		return math.Sqrt(a), nil
	}
	if num2 == nil {
		return 0, fmt.Errorf("%s: missing second operand", op)
	}
	b := float64(*num2)

	switch op {
	case modes.OpAdd:
		return a + b, nil
	case modes.OpSubtract:
		return a - b, nil
	case modes.OpMultiply:
		return a * b, nil
	case modes.OpDivide:
		if b == 0 {
			return 0, fmt.Errorf("/: division by zero")
		}
		return a / b, nil
	case modes.OpPower:
		return math.Pow(a, b), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperation, string(op))
	}
}

func displayText(op modes.Operation, num1, num2 int) string {
	switch op {
	case modes.OpSqrt:
		return fmt.Sprintf("√%d", num1)
	case modes.OpPower:
		return fmt.Sprintf("%d^%d", num1, num2)
	case modes.OpMultiply:
		return fmt.Sprintf("%d × %d", num1, num2)
	case modes.OpDivide:
		return fmt.Sprintf("%d ÷ %d", num1, num2)
	default:
		return fmt.Sprintf("%d %s %d", num1, op, num2)
	}
}

// generateArithmetic draws operands for op with maxNumber m.
func generateArithmetic(src rng.Source, op modes.Operation, m int) (*Problem, error) {
	if m < 1 {
		m = 1
	}
	root := int(math.Floor(math.Sqrt(float64(m))))
	if root < 1 {
		root = 1
	}

	var num1, num2 int
	switch op {
	case modes.OpAdd:
		num1 = rng.IntRange(src, 1, m)
		num2 = rng.IntRange(src, 1, m)
	case modes.OpSubtract:
		num1 = rng.IntRange(src, 1, m)
		num2 = rng.IntRange(src, 1, num1)
	case modes.OpMultiply:
		num1 = rng.IntRange(src, 1, root)
		num2 = rng.IntRange(src, 1, root)
	case modes.OpDivide:
		num2 = rng.IntRange(src, 1, root)
		num1 = num2 * rng.IntRange(src, 1, 10)
	case modes.OpPower:
		num1 = rng.IntRange(src, 1, 10)
		num2 = rng.IntRange(src, 1, 3)
	case modes.OpSqrt:
		answer := rng.IntRange(src, 1, 10)
		num1 = answer * answer
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, string(op))
	}
	return Arithmetic(op, num1, num2)
}

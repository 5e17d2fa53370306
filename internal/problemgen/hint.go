package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathrush/internal/modes"
)

// Hint returns a nudge for p. It is a pure function of the problem and does
// not touch any hint budget.
func Hint(p *Problem) string {
	if p == nil {
		return ""
	}
	switch p.Operation {
	case modes.OpSequence:
		return sequenceHint(p.SequenceType)
	case modes.OpEquation:
		return equationHint(p)
	}
	if p.Num1 == nil {
		return "Take it one step at a time."
	}
	a := *p.Num1
	b := 0
	if p.Num2 != nil {
		b = *p.Num2
	}

	switch p.Operation {
	case modes.OpAdd:
		lo, hi := a/2, a-a/2
		return fmt.Sprintf("Split %d into %d + %d, then add %d.", a, lo, hi, b)
	case modes.OpSubtract:
		return fmt.Sprintf("Count up from %d to %d.", b, a)
	case modes.OpMultiply:
		return fmt.Sprintf("Think of %d groups of %d.", a, b)
	case modes.OpDivide:
		return fmt.Sprintf("How many times does %d fit into %d?", b, a)
	case modes.OpPower:
		if b == 1 {
			return "Any number to the power of 1 is itself."
		}
		return fmt.Sprintf("Multiply %d by itself, using %d copies of %d.", a, b, a)
	case modes.OpSqrt:
		return fmt.Sprintf("What number times itself equals %d?", a)
	}
	return "Take it one step at a time."
}

func sequenceHint(t modes.SequenceType) string {
	switch t {
	case modes.SeqArithmetic:
		return "Look at the difference between neighbouring numbers."
	case modes.SeqGeometric:
		return "Each number is the previous one multiplied by the same amount."
	case modes.SeqFibonacci:
		return "Each number is the sum of the two before it."
	case modes.SeqSkipCounting:
		return "Count on by the same step each time."
	}
	return "Look for what changes from one number to the next."
}

func equationHint(p *Problem) string {
	labels := make([]string, len(p.EquationNumbers))
	for i, n := range p.EquationNumbers {
		labels[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("Combine %s with + - * / and parentheses to make %g. Use every number exactly once.",
		strings.Join(labels, ", "), p.Answer)
}

package problemgen

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// answerTolerance absorbs floating-point and display rounding.
const answerTolerance = 0.1

// ErrInvalidAnswer is returned by ParseAnswer for non-numeric input.
var ErrInvalidAnswer = errors.New("please enter a valid number")

// ParseAnswer parses the player's input as a number. Surrounding whitespace
// is ignored. Trailing garbage ("12abc") is rejected, as are NaN and
// infinities.
func ParseAnswer(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrInvalidAnswer
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAnswer
	}
	return v, nil
}

// CheckAnswer reports whether value is within tolerance of p's answer.
func CheckAnswer(value float64, p *Problem) bool {
	if p == nil {
		return false
	}
	return math.Abs(value-p.Answer) < answerTolerance
}

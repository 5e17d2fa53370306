// Package modes holds the static game-mode table.
package modes

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownMode is returned when a mode has no entry in the table.
var ErrUnknownMode = errors.New("unknown mode")

// Mode names a ruleset.
type Mode string

const (
	Basic    Mode = "basic"
	Advanced Mode = "advanced"
	Speed    Mode = "speed"
	Practice Mode = "practice"
	Sequence Mode = "sequence"
	Equation Mode = "equation"
	Puzzle   Mode = "puzzle"
	Marathon Mode = "marathon"
)

// Operation is an arithmetic operation symbol.
type Operation string

const (
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "*"
	OpDivide   Operation = "/"
	OpPower    Operation = "^"
	OpSqrt     Operation = "√"

	// OpSequence and OpEquation tag problems from the non-arithmetic
	// generators. They are never listed in a Config's Operations.
	OpSequence Operation = "sequence"
	OpEquation Operation = "equation"
)

// SequenceType is a number-pattern family used in sequence mode.
type SequenceType string

const (
	SeqArithmetic   SequenceType = "arithmetic"
	SeqGeometric    SequenceType = "geometric"
	SeqFibonacci    SequenceType = "fibonacci"
	SeqSkipCounting SequenceType = "skipCounting"
)

// Unbounded marks a mode that never arms a countdown.
const Unbounded = -1

// Config is the static configuration of one mode.
type Config struct {
	Name        string
	Description string

	// Operations the generator picks from uniformly. Empty for sequence mode.
	Operations []Operation

	// SequenceTypes is set for sequence mode only.
	SequenceTypes []SequenceType

	MaxNumber int

	// TimeLimit in seconds, or Unbounded.
	TimeLimit int

	PointsPerQuestion int
	LevelThreshold    int

	// NumbersCount is the number of operands offered in equation mode.
	NumbersCount int
}

// Untimed reports whether the mode runs without a countdown.
func (c Config) Untimed() bool {
	return c.TimeLimit == Unbounded
}

var table = map[Mode]Config{
	Basic: {
		Name:              "Basic",
		Description:       "Addition, subtraction, multiplication and division up to 20",
		Operations:        []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide},
		MaxNumber:         20,
		TimeLimit:         60,
		PointsPerQuestion: 100,
		LevelThreshold:    500,
	},
	Advanced: {
		Name:              "Advanced",
		Description:       "Powers, square roots and bigger products",
		Operations:        []Operation{OpPower, OpSqrt, OpMultiply, OpDivide},
		MaxNumber:         100,
		TimeLimit:         90,
		PointsPerQuestion: 150,
		LevelThreshold:    750,
	},
	Speed: {
		Name:              "Speed",
		Description:       "30 seconds, wrong answers cost 5 seconds",
		Operations:        []Operation{OpAdd, OpSubtract, OpMultiply},
		MaxNumber:         50,
		TimeLimit:         30,
		PointsPerQuestion: 100,
		LevelThreshold:    500,
	},
	Practice: {
		Name:              "Practice",
		Description:       "No clock, just practice",
		Operations:        []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide},
		MaxNumber:         50,
		TimeLimit:         Unbounded,
		PointsPerQuestion: 50,
		LevelThreshold:    500,
	},
	Sequence: {
		Name:              "Sequence",
		Description:       "Find the next number in the pattern",
		SequenceTypes:     []SequenceType{SeqArithmetic, SeqGeometric, SeqFibonacci, SeqSkipCounting},
		TimeLimit:         90,
		PointsPerQuestion: 150,
		LevelThreshold:    600,
	},
	Equation: {
		Name:              "Equation",
		Description:       "Reach the target using every number once",
		Operations:        []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide},
		MaxNumber:         10,
		TimeLimit:         120,
		PointsPerQuestion: 200,
		LevelThreshold:    800,
		NumbersCount:      4,
	},
	Puzzle: {
		Name:              "Puzzle",
		Description:       "Every operation mixed together",
		Operations:        []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpSqrt},
		MaxNumber:         100,
		TimeLimit:         120,
		PointsPerQuestion: 200,
		LevelThreshold:    1000,
	},
	Marathon: {
		Name:              "Marathon",
		Description:       "Endless mixed problems, no clock",
		Operations:        []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpSqrt},
		MaxNumber:         100,
		TimeLimit:         Unbounded,
		PointsPerQuestion: 100,
		LevelThreshold:    1000,
	},
}

// All returns every mode in menu order.
func All() []Mode {
	return []Mode{Basic, Advanced, Speed, Practice, Sequence, Equation, Puzzle, Marathon}
}

// Lookup returns a copy of the configuration for m.
func Lookup(m Mode) (Config, error) {
	cfg, ok := table[m]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownMode, string(m))
	}
	cfg.Operations = slices.Clone(cfg.Operations)
	cfg.SequenceTypes = slices.Clone(cfg.SequenceTypes)
	return cfg, nil
}

// Parse converts a user-supplied name into a Mode.
func Parse(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := table[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// DisplayName returns the human-readable label for the mode.
func (m Mode) DisplayName() string {
	if cfg, ok := table[m]; ok {
		return cfg.Name
	}
	return string(m)
}

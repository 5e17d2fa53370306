package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/rng"
)

// sequenceLength is the number of terms shown; the answer is the next one.
const sequenceLength = 4

// generateSequence picks a type from types and builds a sequence problem.
func generateSequence(src rng.Source, types []modes.SequenceType) (*Problem, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("sequence: no sequence types configured")
	}
	seqType := types[src.IntN(len(types))]

	terms := make([]int, sequenceLength+1)
	switch seqType {
	case modes.SeqArithmetic:
		start := rng.IntRange(src, 0, 19)
		diff := rng.IntRange(src, 1, 10)
		for i := range terms {
			terms[i] = start + diff*i
		}
	case modes.SeqGeometric:
		start := rng.IntRange(src, 1, 5)
		ratio := rng.IntRange(src, 2, 4)
		v := start
		for i := range terms {
			terms[i] = v
			v *= ratio
		}
	case modes.SeqFibonacci:
		terms[0], terms[1] = 1, 1
		for i := 2; i < len(terms); i++ {
			terms[i] = terms[i-1] + terms[i-2]
		}
	case modes.SeqSkipCounting:
		start := rng.IntRange(src, 0, 9)
		skip := rng.IntRange(src, 2, 6)
		for i := range terms {
			terms[i] = start + skip*i
		}
	default:
		return nil, fmt.Errorf("%w: sequence type %q", ErrUnsupportedOperation, string(seqType))
	}

	shown := terms[:sequenceLength]
	parts := make([]string, 0, sequenceLength+1)
	for _, v := range shown {
		parts = append(parts, strconv.Itoa(v))
	}
	parts = append(parts, "?")

	return &Problem{
		Text:           strings.Join(parts, ", "),
		Answer:         float64(terms[sequenceLength]),
		Operation:      modes.OpSequence,
		SequenceType:   seqType,
		SequenceValues: append([]int(nil), shown...),
	}, nil
}

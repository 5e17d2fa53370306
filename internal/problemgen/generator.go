package problemgen

import (
	"context"
	"fmt"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/rng"
	"github.com/abhisek/mathrush/internal/store"
)

// diagnosticSource tags events recorded by the generator.
const diagnosticSource = "problemgen"

// Generator produces problems for a mode. It is not safe for concurrent
// use; callers serialize access.
type Generator struct {
	src    rng.Source
	config Config
	events store.EventRepo
}

// New creates a Generator drawing from src. events may be nil, in which
// case fallbacks are served silently.
func New(src rng.Source, cfg Config, events store.EventRepo) *Generator {
	if src == nil {
		src = rng.New()
	}
	return &Generator{src: src, config: cfg, events: events}
}

// Generate produces one problem. It never fails: on an unknown mode, an
// unsupported operation or a rejected problem it records a diagnostic and
// returns Fallback().
func (g *Generator) Generate(ctx context.Context, input GenerateInput) *Problem {
	p, err := g.generate(input)
	if err != nil {
		store.RecordDiagnostic(ctx, g.events, diagnosticSource,
			fmt.Sprintf("served fallback problem for mode %q", input.Mode), err)
		return Fallback()
	}
	return p
}

func (g *Generator) generate(input GenerateInput) (*Problem, error) {
	var cfg modes.Config
	if input.Config != nil {
		cfg = *input.Config
	} else {
		var err error
		if cfg, err = modes.Lookup(input.Mode); err != nil {
			return nil, err
		}
	}

	switch input.Mode {
	case modes.Sequence:
		return generateSequence(g.src, cfg.SequenceTypes)
	case modes.Equation:
		return generateEquation(g.src, cfg.NumbersCount, cfg.MaxNumber), nil
	}

	if len(cfg.Operations) == 0 {
		return nil, fmt.Errorf("%w: mode %q has no operations", ErrUnsupportedOperation, input.Mode)
	}
	op := cfg.Operations[g.src.IntN(len(cfg.Operations))]
	p, err := generateArithmetic(g.src, op, cfg.MaxNumber)
	if err != nil {
		return nil, err
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(p, input); verr != nil {
			return nil, verr
		}
	}
	return p, nil
}

package problemgen

import "fmt"

// Validator checks a generated arithmetic problem for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in diagnostics, e.g.
	// "structural", "range", "math-check".
	Name() string

	// Validate returns nil if the problem passes.
	Validate(p *Problem, input GenerateInput) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

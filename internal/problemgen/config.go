package problemgen

// MaxAnswer bounds the magnitude of any generated answer.
const MaxAnswer = 1e6

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// arithmetic problem. The first failure stops the pipeline and the
	// fallback problem is served.
	Validators []Validator
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&RangeValidator{Max: MaxAnswer},
			&MathCheckValidator{},
		},
	}
}

package problemgen

import (
	"errors"
	"testing"

	"github.com/abhisek/mathrush/internal/modes"
)

func TestParseExpression_Eval(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1 + 2", 3},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"8 / 4 / 2", 1},
		{"10 - 3 - 2", 5},
		{"((7))", 7},
		{"3 × 4 ÷ 2", 6},
		{"6x7", 42},
		{"1.5 * 2", 3},
	}
	for _, tt := range tests {
		e, err := ParseExpression(tt.input)
		if err != nil {
			t.Errorf("ParseExpression(%q): %v", tt.input, err)
			continue
		}
		got, err := e.Eval()
		if err != nil {
			t.Errorf("Eval(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Eval(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseExpression_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"-3 + 4",
		"3 +",
		"(3 + 4",
		"3 + 4)",
		"3 4",
		"alert(1)",
		"3 ** 4",
		"2 ^ 3",
		"1..2",
	}
	for _, in := range inputs {
		if _, err := ParseExpression(in); !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("ParseExpression(%q) err = %v, want ErrInvalidExpression", in, err)
		}
	}
}

func TestExpr_Canonical(t *testing.T) {
	a, _ := ParseExpression("( 3 + 4 ) * 2")
	b, _ := ParseExpression("(3+4)*2")
	if a.Canonical() != b.Canonical() {
		t.Errorf("whitespace changed canonical form: %q vs %q", a.Canonical(), b.Canonical())
	}
	if a.Canonical() != "((3+4)*2)" {
		t.Errorf("canonical = %q", a.Canonical())
	}

	c, _ := ParseExpression("(3+(4*2))")
	d, _ := ParseExpression("3+4*2")
	if c.Canonical() != d.Canonical() {
		t.Errorf("redundant parentheses changed canonical form: %q vs %q", c.Canonical(), d.Canonical())
	}
}

func TestExpr_CanonicalIgnoresOrder(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"1+2+3+4", "4+3+2+1", true},
		{"1+2+3+4", "(3+4)+(1+2)", true},
		{"2*3*4*1", "4*1*(3*2)", true},
		{"(2+3+1)*4", "4*(1+3+2)", true},
		{"10-3+1", "1+10-3", true},
		{"10-(3-1)", "10+1-3", true},
		{"8/(4/2)", "8*2/4", true},
		{"4-2", "2-4", false},
		{"8/2", "2/8", false},
		{"1+2*3", "(1+2)*3", false},
	}
	for _, tt := range tests {
		a, err := ParseExpression(tt.a)
		if err != nil {
			t.Fatal(err)
		}
		b, err := ParseExpression(tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.Canonical() == b.Canonical(); got != tt.same {
			t.Errorf("%q (%s) vs %q (%s): same = %v, want %v",
				tt.a, a.Canonical(), tt.b, b.Canonical(), got, tt.same)
		}
	}
}

func TestExpr_DivisionByZero(t *testing.T) {
	e, err := ParseExpression("4 / (2 - 2)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func equationProblem(target float64, numbers ...int) *Problem {
	return &Problem{
		Text:            "equation",
		Answer:          target,
		Operation:       modes.OpEquation,
		EquationNumbers: numbers,
		TargetValue:     &target,
	}
}

func TestValidateSolution(t *testing.T) {
	p := equationProblem(24, 2, 3, 4, 1)

	tests := []struct {
		name       string
		input      string
		wantValid  bool
		wantReason string
	}{
		{"valid", "(2 + 3 + 1) * 4", true, ""},
		{"valid reordered", "4 * (1 + 3 + 2)", true, ""},
		{"misses target", "2 + 3 + 4 + 1", false, ReasonMissesTarget},
		{"missing a number", "(3 + 1) * 4", false, ReasonWrongNumbers},
		{"number used twice", "(3 + 3) * 4 * 1", false, ReasonWrongNumbers},
		{"foreign number", "(2 + 3 + 1) * 4 + 0", false, ReasonWrongNumbers},
		{"division by zero", "2 / (4 - 3 - 1)", false, ReasonDivisionByZero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ValidateSolution(tt.input, p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (reason %q)", res.Valid, tt.wantValid, res.Reason)
			}
			if res.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", res.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateSolution_Tolerance(t *testing.T) {
	// 10 / 3 * 3 evaluates to 10 within floating-point error.
	p := equationProblem(10, 10, 3, 3)
	res, err := ValidateSolution("10 / 3 * 3", p)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Errorf("expected valid within tolerance, got %+v", res)
	}
}

func TestValidateSolution_InputErrors(t *testing.T) {
	p := equationProblem(24, 3, 4, 6, 1)
	if _, err := ValidateSolution("3 +", p); !errors.Is(err, ErrInvalidExpression) {
		t.Errorf("expected ErrInvalidExpression, got %v", err)
	}
	if _, err := ValidateSolution("1 + 1", validProblem()); !errors.Is(err, ErrNotEquation) {
		t.Errorf("expected ErrNotEquation, got %v", err)
	}
}

package problemgen

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrInvalidExpression is returned when submitted text is not a
	// well-formed arithmetic expression.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrDivisionByZero is returned when evaluation divides by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Expr is a parsed arithmetic expression over numeric literals with
// + - * / and parentheses.
type Expr interface {
	// Eval computes the value of the expression.
	Eval() (float64, error)

	// Canonical renders the expression without spaces. Chains of + and -
	// (and of * and /) are flattened and their operands sorted, so
	// reorderings of the same terms render equal strings.
	Canonical() string

	// Literals appends every numeric literal in left-to-right order.
	Literals(dst []float64) []float64
}

type numberExpr struct {
	value float64
}

func (n numberExpr) Eval() (float64, error) { return n.value, nil }

func (n numberExpr) Canonical() string {
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

func (n numberExpr) Literals(dst []float64) []float64 { return append(dst, n.value) }

type binaryExpr struct {
	op          byte
	left, right Expr
}

func (b binaryExpr) Eval() (float64, error) {
	l, err := b.left.Eval()
	if err != nil {
		return 0, err
	}
	r, err := b.right.Eval()
	if err != nil {
		return 0, err
	}
	switch b.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("unknown operator %q", b.op)
}

func (b binaryExpr) Canonical() string {
	pos, neg := byte('+'), byte('-')
	if b.op == '*' || b.op == '/' {
		pos, neg = '*', '/'
	}
	var kept, inverted []string
	collectChain(b, pos, neg, false, &kept, &inverted)
	slices.Sort(kept)
	slices.Sort(inverted)

	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(strings.Join(kept, string(pos)))
	for _, c := range inverted {
		sb.WriteByte(neg)
		sb.WriteString(c)
	}
	sb.WriteString(")")
	return sb.String()
}

// collectChain splits the operands of a chain of pos/neg operators into
// those applied with pos and those applied with neg. a-(b-c) yields kept
// {a, c} and inverted {b}.
func collectChain(e Expr, pos, neg byte, invert bool, kept, inverted *[]string) {
	if b, ok := e.(binaryExpr); ok && (b.op == pos || b.op == neg) {
		collectChain(b.left, pos, neg, invert, kept, inverted)
		collectChain(b.right, pos, neg, invert != (b.op == neg), kept, inverted)
		return
	}
	if invert {
		*inverted = append(*inverted, e.Canonical())
		return
	}
	*kept = append(*kept, e.Canonical())
}

func (b binaryExpr) Literals(dst []float64) []float64 {
	return b.right.Literals(b.left.Literals(dst))
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind  tokenKind
	op    byte
	value float64
	pos   int
}

func tokenize(s string) ([]token, error) {
	var toks []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			lit := string(runes[start:i])
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q at %d", ErrInvalidExpression, lit, start+1)
			}
			toks = append(toks, token{kind: tokNumber, value: v, pos: start})
		case r == '+' || r == '-' || r == '*' || r == '/':
			toks = append(toks, token{kind: tokOp, op: byte(r), pos: i})
			i++
		case r == '×' || r == 'x' || r == 'X':
			toks = append(toks, token{kind: tokOp, op: '*', pos: i})
			i++
		case r == '÷':
			toks = append(toks, token{kind: tokOp, op: '/', pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrInvalidExpression, r, i+1)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(runes)})
	return toks, nil
}

// parser is a recursive-descent parser for
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | "(" expr ")"
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for t := p.peek(); t.kind == tokOp && (t.op == '+' || t.op == '-'); t = p.peek() {
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: t.op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) term() (Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for t := p.peek(); t.kind == tokOp && (t.op == '*' || t.op == '/'); t = p.peek() {
		p.next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: t.op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) factor() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberExpr{value: t.value}, nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing ')' at %d", ErrInvalidExpression, closing.pos+1)
		}
		return inner, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of input", ErrInvalidExpression)
	default:
		return nil, fmt.Errorf("%w: unexpected token at %d", ErrInvalidExpression, t.pos+1)
	}
}

// ParseExpression parses s. Only numeric literals, + - * / and parentheses
// are accepted; unary minus is rejected.
func ParseExpression(s string) (Expr, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidExpression)
	}
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected token at %d", ErrInvalidExpression, t.pos+1)
	}
	return e, nil
}

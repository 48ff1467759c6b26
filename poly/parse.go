package poly

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultMaxDepth bounds the nesting of parenthesised terms accepted by Parse.
const DefaultMaxDepth = 256

// Parser reads polynomials in the grammar
//
//	poly        := coefficient | term ('+' term)*
//	term        := '(' poly ',' exponent ')'
//	coefficient := ['-'] digits          (an int64)
//	exponent    := digits                (0..MaxExp)
//
// No whitespace is allowed anywhere.
type Parser struct {
	// MaxDepth is the largest accepted term nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Parse parses s with a default Parser.
func Parse(s string) (Poly, error) {
	return (&Parser{}).Parse(s)
}

// Parse returns the normalized polynomial written in s, or a *ParseError.
func (ps *Parser) Parse(s string) (Poly, error) {
	maxDepth := ps.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	sc := &scanner{src: s, maxDepth: maxDepth}

	p, err := sc.poly(0)
	if err != nil {
		return Poly{}, err
	}

	if !sc.eof() {
		return Poly{}, sc.errorf(ErrSyntax, "unexpected %q after polynomial", sc.peek())
	}

	return p, nil
}

type scanner struct {
	src      string
	pos      int
	maxDepth int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.src)
}

func (sc *scanner) peek() byte {
	return sc.src[sc.pos]
}

func (sc *scanner) accept(c byte) bool {
	if sc.eof() || sc.peek() != c {
		return false
	}

	sc.pos++

	return true
}

func (sc *scanner) expect(c byte) error {
	if sc.eof() {
		return sc.errorf(ErrSyntax, "expected %q, got end of input", c)
	}

	if !sc.accept(c) {
		return sc.errorf(ErrSyntax, "expected %q, got %q", c, sc.peek())
	}

	return nil
}

func (sc *scanner) errorf(kind error, format string, args ...any) *ParseError {
	return &ParseError{Offset: sc.pos, Msg: fmt.Sprintf(format, args...), Err: kind}
}

func (sc *scanner) poly(depth int) (Poly, error) {
	if depth > sc.maxDepth {
		return Poly{}, sc.errorf(ErrTooDeep, "more than %d nested terms", sc.maxDepth)
	}

	if sc.eof() {
		return Poly{}, sc.errorf(ErrSyntax, "expected polynomial, got end of input")
	}

	if sc.peek() != '(' {
		c, err := sc.coefficient()
		if err != nil {
			return Poly{}, err
		}

		return FromCoeff(c), nil
	}

	start := sc.pos

	var terms []Term
	for {
		t, err := sc.term(depth)
		if err != nil {
			return Poly{}, err
		}

		terms = append(terms, t)

		if !sc.accept('+') {
			break
		}
	}

	p, err := fromOwnedTerms(terms)
	if err != nil {
		if errors.Is(err, ErrOverflow) {
			return Poly{}, &ParseError{Offset: start, Msg: err.Error(), Err: ErrRange}
		}

		return Poly{}, err
	}

	return p, nil
}

func (sc *scanner) term(depth int) (Term, error) {
	if err := sc.expect('('); err != nil {
		return Term{}, err
	}

	coeff, err := sc.poly(depth + 1)
	if err != nil {
		return Term{}, err
	}

	if err := sc.expect(','); err != nil {
		return Term{}, err
	}

	exp, err := sc.exponent()
	if err != nil {
		return Term{}, err
	}

	if err := sc.expect(')'); err != nil {
		return Term{}, err
	}

	return NewTerm(coeff, exp), nil
}

func (sc *scanner) digits() string {
	start := sc.pos
	for !sc.eof() && sc.peek() >= '0' && sc.peek() <= '9' {
		sc.pos++
	}

	return sc.src[start:sc.pos]
}

func (sc *scanner) coefficient() (int64, error) {
	start := sc.pos
	sc.accept('-')

	if sc.digits() == "" {
		sc.pos = start
		if sc.eof() {
			return 0, sc.errorf(ErrSyntax, "expected coefficient, got end of input")
		}

		return 0, sc.errorf(ErrSyntax, "expected coefficient, got %q", sc.peek())
	}

	lit := sc.src[start:sc.pos]

	c, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, &ParseError{Offset: start, Msg: fmt.Sprintf("coefficient %s does not fit in 64 bits", lit), Err: ErrRange}
	}

	return c, nil
}

func (sc *scanner) exponent() (int32, error) {
	start := sc.pos

	lit := sc.digits()
	if lit == "" {
		if sc.eof() {
			return 0, sc.errorf(ErrSyntax, "expected exponent, got end of input")
		}

		return 0, sc.errorf(ErrSyntax, "expected exponent, got %q", sc.peek())
	}

	e, err := strconv.ParseInt(lit, 10, 32)
	if err != nil {
		return 0, &ParseError{Offset: start, Msg: fmt.Sprintf("exponent %s exceeds %d", lit, MaxExp), Err: ErrRange}
	}

	return int32(e), nil
}

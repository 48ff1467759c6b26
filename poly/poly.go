/*
Package poly implements sparse polynomials in an unbounded number of variables
with int64 coefficients.

A Poly is either a scalar or a sum of terms c_i * x_0^e_i, where every c_i is
itself a Poly in the variables x_1, x_2, ... (the variable k of a coefficient is
the variable k+1 of its parent). Values are kept normalized after every
operation:
  - terms are sorted by strictly increasing exponent,
  - no term has a zero coefficient,
  - a single term with exponent 0 and a scalar coefficient is stored as that scalar.

Thus two polynomials are equal iff their representations are equal, and the zero
polynomial is always the scalar 0.

Poly values are immutable. Operations never modify their operands and never
return values sharing term storage with them.
*/
package poly

import "math"

// MaxExp is the largest exponent a term may carry.
const MaxExp = math.MaxInt32

type Poly struct {
	coeff int64
	// nil for scalars, non-empty otherwise.
	terms []Term
}

// Term is the monomial Coeff * x^Exp, where x is the leading variable of the
// polynomial holding the term.
type Term struct {
	Exp   int32
	Coeff Poly
}

// Zero returns the zero polynomial.
func Zero() Poly {
	return Poly{}
}

// FromCoeff returns the scalar polynomial c.
func FromCoeff(c int64) Poly {
	return Poly{coeff: c}
}

// NewTerm is a shorthand for Term{Exp: exp, Coeff: coeff}.
func NewTerm(coeff Poly, exp int32) Term {
	return Term{Exp: exp, Coeff: coeff}
}

func (p Poly) IsCoeff() bool {
	return p.terms == nil
}

func (p Poly) IsZero() bool {
	return p.IsCoeff() && p.coeff == 0
}

// Coeff returns the value of a scalar polynomial, and 0 for sums.
func (p Poly) Coeff() int64 {
	if !p.IsCoeff() {
		return 0
	}

	return p.coeff
}

// Terms returns a deep copy of the terms of p in increasing exponent order,
// or nil when p is a scalar.
func (p Poly) Terms() []Term {
	if p.IsCoeff() {
		return nil
	}

	return cloneTerms(p.terms)
}

// TermAt returns the i-th term of p in increasing exponent order without
// copying it. It panics if i is out of range.
func (p Poly) TermAt(i int) Term {
	return p.terms[i]
}

// NumTerms returns the number of terms of p, 0 for scalars.
func (p Poly) NumTerms() int {
	return len(p.terms)
}

// Clone returns a deep copy of p.
func (p Poly) Clone() Poly {
	if p.IsCoeff() {
		return FromCoeff(p.coeff)
	}

	return Poly{terms: cloneTerms(p.terms)}
}

func (t Term) Clone() Term {
	return Term{Exp: t.Exp, Coeff: t.Coeff.Clone()}
}

func cloneTerms(terms []Term) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = t.Clone()
	}

	return out
}

// reduce builds a polynomial from terms that are already sorted, merged and
// free of zero coefficients. It owns terms.
func reduce(terms []Term) Poly {
	if len(terms) == 0 {
		return Zero()
	}

	if len(terms) == 1 && terms[0].Exp == 0 && terms[0].Coeff.IsCoeff() {
		return FromCoeff(terms[0].Coeff.coeff)
	}

	return Poly{terms: terms}
}

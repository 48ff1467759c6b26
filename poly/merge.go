package poly

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// FromTerms returns the normalized sum of terms, given in any order and
// possibly with repeated exponents. terms itself is left untouched.
func FromTerms(terms []Term) (Poly, error) {
	for _, t := range terms {
		if t.Exp < 0 {
			return Poly{}, fmt.Errorf("%w: %d", ErrNegativeExponent, t.Exp)
		}
	}

	sorted := make([]Term, len(terms))
	copy(sorted, terms)

	return mergeTerms(sorted, true)
}

// fromOwnedTerms is FromTerms for term slices built by this package, which
// may be reordered in place.
func fromOwnedTerms(terms []Term) (Poly, error) {
	return mergeTerms(terms, false)
}

// mergeTerms sorts terms in place and merges equal exponents. Surviving terms
// are cloned when they may be shared with the caller.
func mergeTerms(terms []Term, shared bool) (Poly, error) {
	if len(terms) == 0 {
		return Zero(), nil
	}

	slices.SortStableFunc(terms, func(a, b Term) bool {
		return a.Exp < b.Exp
	})

	merged := make([]Term, 0, len(terms))

	// fresh is set when t's coefficient was produced by merging.
	emit := func(t Term, fresh bool) {
		if t.Coeff.IsZero() {
			return
		}

		if shared && !fresh {
			t = t.Clone()
		}

		merged = append(merged, t)
	}

	acc, fresh := terms[0], false
	for _, t := range terms[1:] {
		if t.Exp == acc.Exp {
			sum, err := acc.Coeff.Add(t.Coeff)
			if err != nil {
				return Poly{}, err
			}

			acc.Coeff, fresh = sum, true

			continue
		}

		emit(acc, fresh)
		acc, fresh = t, false
	}

	emit(acc, fresh)

	return reduce(merged), nil
}

package poly

// At substitutes x for the leading variable of p. The result is a
// polynomial in the remaining variables, renumbered down by one.
func (p Poly) At(x int64) (Poly, error) {
	if p.IsCoeff() {
		return p.Clone(), nil
	}

	// Every term contributes either one scalar at exponent 0 or the terms of
	// its coefficient, scaled by x^e. Contributions from different terms may
	// share exponents, hence the final merge.
	parts := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		if t.Exp == 0 && t.Coeff.IsCoeff() {
			parts = append(parts, t.Clone())

			continue
		}

		pow, err := powCoeff(x, t.Exp)
		if err != nil {
			return Poly{}, err
		}

		if pow == 0 {
			continue
		}

		if t.Coeff.IsCoeff() {
			c, err := mulCoeff(t.Coeff.coeff, pow)
			if err != nil {
				return Poly{}, err
			}

			parts = append(parts, NewTerm(FromCoeff(c), 0))

			continue
		}

		for _, inner := range t.Coeff.terms {
			scaled, err := inner.Coeff.Mul(FromCoeff(pow))
			if err != nil {
				return Poly{}, err
			}

			parts = append(parts, NewTerm(scaled, inner.Exp))
		}
	}

	return fromOwnedTerms(parts)
}

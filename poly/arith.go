package poly

// Add returns p + q.
func (p Poly) Add(q Poly) (Poly, error) {
	switch {
	case p.IsCoeff() && q.IsCoeff():
		c, err := addCoeff(p.coeff, q.coeff)
		if err != nil {
			return Poly{}, err
		}

		return FromCoeff(c), nil
	case p.IsCoeff():
		return q.addScalar(p.coeff)
	case q.IsCoeff():
		return p.addScalar(q.coeff)
	}

	return p.addSum(q)
}

// addScalar adds c to the sum p. Only the exponent 0 term changes.
func (p Poly) addScalar(c int64) (Poly, error) {
	if c == 0 {
		return p.Clone(), nil
	}

	if p.terms[0].Exp != 0 {
		terms := make([]Term, 0, len(p.terms)+1)
		terms = append(terms, NewTerm(FromCoeff(c), 0))

		for _, t := range p.terms {
			terms = append(terms, t.Clone())
		}

		return reduce(terms), nil
	}

	head, err := p.terms[0].Coeff.Add(FromCoeff(c))
	if err != nil {
		return Poly{}, err
	}

	terms := make([]Term, 0, len(p.terms))
	if !head.IsZero() {
		terms = append(terms, NewTerm(head, 0))
	}

	for _, t := range p.terms[1:] {
		terms = append(terms, t.Clone())
	}

	return reduce(terms), nil
}

// addSum merges two sums the way merge sort merges sorted runs.
func (p Poly) addSum(q Poly) (Poly, error) {
	terms := make([]Term, 0, len(p.terms)+len(q.terms))

	i, j := 0, 0
	for i < len(p.terms) && j < len(q.terms) {
		a, b := p.terms[i], q.terms[j]

		switch {
		case a.Exp < b.Exp:
			terms = append(terms, a.Clone())
			i++
		case a.Exp > b.Exp:
			terms = append(terms, b.Clone())
			j++
		default:
			sum, err := a.Coeff.Add(b.Coeff)
			if err != nil {
				return Poly{}, err
			}

			if !sum.IsZero() {
				terms = append(terms, NewTerm(sum, a.Exp))
			}

			i++
			j++
		}
	}

	for ; i < len(p.terms); i++ {
		terms = append(terms, p.terms[i].Clone())
	}

	for ; j < len(q.terms); j++ {
		terms = append(terms, q.terms[j].Clone())
	}

	return reduce(terms), nil
}

// Neg returns -p. It fails only when p has the coefficient math.MinInt64.
func (p Poly) Neg() (Poly, error) {
	if p.IsCoeff() {
		c, err := negCoeff(p.coeff)
		if err != nil {
			return Poly{}, err
		}

		return FromCoeff(c), nil
	}

	terms := make([]Term, len(p.terms))
	for i, t := range p.terms {
		neg, err := t.Coeff.Neg()
		if err != nil {
			return Poly{}, err
		}

		terms[i] = NewTerm(neg, t.Exp)
	}

	return Poly{terms: terms}, nil
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) (Poly, error) {
	negQ, err := q.Neg()
	if err != nil {
		return Poly{}, err
	}

	return p.Add(negQ)
}

// Mul returns p * q.
func (p Poly) Mul(q Poly) (Poly, error) {
	switch {
	case p.IsCoeff() && q.IsCoeff():
		c, err := mulCoeff(p.coeff, q.coeff)
		if err != nil {
			return Poly{}, err
		}

		return FromCoeff(c), nil
	case p.IsCoeff():
		return q.mulScalar(p.coeff)
	case q.IsCoeff():
		return p.mulScalar(q.coeff)
	}

	// O(n*m) products per level, merged by FromTerms.
	terms := make([]Term, 0, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			exp, err := addExp(a.Exp, b.Exp)
			if err != nil {
				return Poly{}, err
			}

			prod, err := a.Coeff.Mul(b.Coeff)
			if err != nil {
				return Poly{}, err
			}

			terms = append(terms, NewTerm(prod, exp))
		}
	}

	return fromOwnedTerms(terms)
}

// mulScalar multiplies every coefficient of the sum p by c.
func (p Poly) mulScalar(c int64) (Poly, error) {
	if c == 0 {
		return Zero(), nil
	}

	terms := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		prod, err := t.Coeff.Mul(FromCoeff(c))
		if err != nil {
			return Poly{}, err
		}

		if !prod.IsZero() {
			terms = append(terms, NewTerm(prod, t.Exp))
		}
	}

	return reduce(terms), nil
}

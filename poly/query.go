package poly

// Equals reports whether p and q are the same polynomial. Since both are
// normalized this is a structural comparison.
func (p Poly) Equals(q Poly) bool {
	if p.IsCoeff() || q.IsCoeff() {
		return p.IsCoeff() && q.IsCoeff() && p.coeff == q.coeff
	}

	if len(p.terms) != len(q.terms) {
		return false
	}

	for i := range p.terms {
		if p.terms[i].Exp != q.terms[i].Exp {
			return false
		}

		if !p.terms[i].Coeff.Equals(q.terms[i].Coeff) {
			return false
		}
	}

	return true
}

// Degree returns the total degree of p, or -1 when p is zero.
func (p Poly) Degree() int {
	if p.IsCoeff() {
		return scalarDegree(p.coeff)
	}

	deg := 0
	for _, t := range p.terms {
		deg = max(deg, t.Coeff.Degree()+int(t.Exp))
	}

	return deg
}

// DegreeBy returns the degree of p in the variable varIdx, or -1 when p is
// zero. Variable 0 is the leading variable of p.
func (p Poly) DegreeBy(varIdx uint64) int {
	if p.IsCoeff() {
		return scalarDegree(p.coeff)
	}

	if varIdx == 0 {
		return int(p.terms[len(p.terms)-1].Exp)
	}

	deg := 0
	for _, t := range p.terms {
		deg = max(deg, t.Coeff.DegreeBy(varIdx-1))
	}

	return deg
}

func scalarDegree(c int64) int {
	if c == 0 {
		return -1
	}

	return 0
}

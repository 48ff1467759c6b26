package field

import "github.com/jonathanmweiss/go-polycalc/poly"

// Fingerprint evaluates p modulo the field prime, with the variable k of p
// set to points.Point(k). Equal polynomials have equal fingerprints, and the
// map commutes with Add, Sub and Mul, so comparing fingerprints is a cheap
// probabilistic check of polynomial arithmetic.
func Fingerprint(f Field, p poly.Poly, points Points) uint64 {
	return fingerprint(f, p, points, 0)
}

func fingerprint(f Field, p poly.Poly, points Points, variable int) uint64 {
	if p.IsCoeff() {
		return f.ReduceSigned(p.Coeff())
	}

	x := points.Point(variable)

	acc := uint64(0)
	for i := 0; i < p.NumTerms(); i++ {
		t := p.TermAt(i)
		c := fingerprint(f, t.Coeff, points, variable+1)
		acc = f.Add(acc, f.Mul(c, f.Pow(x, uint64(t.Exp))))
	}

	return acc
}

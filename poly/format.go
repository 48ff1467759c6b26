package poly

import (
	"strconv"
	"strings"
)

// String renders p in the text grammar accepted by Parse: a scalar is its
// integer, a sum is "(coeff,exp)+(coeff,exp)+..." in increasing exponent
// order.
func (p Poly) String() string {
	bldr := strings.Builder{}
	p.render(&bldr)

	return bldr.String()
}

func (p Poly) render(bldr *strings.Builder) {
	if p.IsCoeff() {
		bldr.WriteString(strconv.FormatInt(p.coeff, 10))

		return
	}

	for i, t := range p.terms {
		if i != 0 {
			bldr.WriteByte('+')
		}

		t.render(bldr)
	}
}

func (t Term) String() string {
	bldr := strings.Builder{}
	t.render(&bldr)

	return bldr.String()
}

func (t Term) render(bldr *strings.Builder) {
	bldr.WriteByte('(')
	t.Coeff.render(bldr)
	bldr.WriteByte(',')
	bldr.WriteString(strconv.FormatInt(int64(t.Exp), 10))
	bldr.WriteByte(')')
}

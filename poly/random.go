package poly

import (
	"errors"
	"io"

	"github.com/tuneinsight/lattigo/v6/utils/buffer"
)

// RandomParams bounds the shape of generated polynomials.
type RandomParams struct {
	// Depth is the number of variables; 0 yields scalars only.
	Depth int
	// MaxTerms is the largest number of terms drawn per sum.
	MaxTerms int
	// Exponents are drawn from [0, MaxExp].
	MaxExp int32
	// Coefficients are drawn from [-MaxCoeff, MaxCoeff].
	MaxCoeff int64
}

var errBadRandomParams = errors.New("invalid random polynomial parameters")

func (rp RandomParams) validate() error {
	if rp.Depth < 0 || rp.Depth > DefaultMaxDepth || rp.MaxTerms < 1 || rp.MaxExp < 0 || rp.MaxCoeff < 0 {
		return errBadRandomParams
	}

	return nil
}

// Generator draws random normalized polynomials from a byte stream, typically
// a keyed PRNG, so a given stream always yields the same polynomials.
type Generator struct {
	r      buffer.Reader
	params RandomParams
}

// NewGenerator reads randomness from r through a buffered reader.
func NewGenerator(r io.Reader, params RandomParams) (*Generator, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &Generator{r: newFullReader(r), params: params}, nil
}

// Next returns a fresh random polynomial.
func (g *Generator) Next() (Poly, error) {
	return g.poly(g.params.Depth)
}

func (g *Generator) poly(depth int) (Poly, error) {
	scalar, err := g.intn(4)
	if err != nil {
		return Poly{}, err
	}

	if depth == 0 || scalar == 0 {
		c, err := g.coeff()
		if err != nil {
			return Poly{}, err
		}

		return FromCoeff(c), nil
	}

	k, err := g.intn(uint64(g.params.MaxTerms))
	if err != nil {
		return Poly{}, err
	}

	terms := make([]Term, 0, k+1)
	for i := uint64(0); i <= k; i++ {
		exp, err := g.intn(uint64(g.params.MaxExp) + 1)
		if err != nil {
			return Poly{}, err
		}

		coeff, err := g.poly(depth - 1)
		if err != nil {
			return Poly{}, err
		}

		terms = append(terms, NewTerm(coeff, int32(exp)))
	}

	return fromOwnedTerms(terms)
}

func (g *Generator) coeff() (int64, error) {
	span := uint64(g.params.MaxCoeff)*2 + 1

	v, err := g.intn(span)
	if err != nil {
		return 0, err
	}

	return int64(v - uint64(g.params.MaxCoeff)), nil
}

// intn returns a value in [0, n). The modulo bias is irrelevant for the small
// ranges used here.
func (g *Generator) intn(n uint64) (uint64, error) {
	var v uint64

	var read int64
	if err := readUint64(g.r, &v, &read); err != nil {
		return 0, err
	}

	if n == 0 {
		return v, nil
	}

	return v % n, nil
}

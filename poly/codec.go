package poly

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo/v6/utils/buffer"
)

// Binary layout, little endian:
//
//	scalar: tagScalar(uint8) coeff(uint64)
//	sum:    tagSum(uint8) count(uint64) count*(exp(uint32) coeff(poly))
const (
	tagScalar uint8 = 0
	tagSum    uint8 = 1
)

// BinarySize returns the number of bytes WriteTo writes for p.
func (p Poly) BinarySize() int {
	if p.IsCoeff() {
		return 1 + 8
	}

	size := 1 + 8
	for _, t := range p.terms {
		size += 4 + t.Coeff.BinarySize()
	}

	return size
}

// WriteTo writes the binary encoding of p on w. Unless w implements
// buffer.Writer it is wrapped in a bufio.Writer.
func (p Poly) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		if n, err = p.encode(w); err != nil {
			return n, err
		}

		return n, w.Flush()
	default:
		return p.WriteTo(bufio.NewWriter(w))
	}
}

func (p Poly) encode(w buffer.Writer) (n int64, err error) {
	var inc int64

	if p.IsCoeff() {
		if inc, err = buffer.WriteUint8(w, tagScalar); err != nil {
			return n + inc, err
		}
		n += inc

		inc, err = buffer.WriteUint64(w, uint64(p.coeff))

		return n + inc, err
	}

	if inc, err = buffer.WriteUint8(w, tagSum); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = buffer.WriteUint64(w, uint64(len(p.terms))); err != nil {
		return n + inc, err
	}
	n += inc

	for _, t := range p.terms {
		if inc, err = buffer.WriteUint32(w, uint32(t.Exp)); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = t.Coeff.encode(w); err != nil {
			return n + inc, err
		}
		n += inc
	}

	return n, nil
}

// ReadFrom decodes a polynomial written by WriteTo. Encodings that are not
// normalized, or nested deeper than DefaultMaxDepth, are rejected. Other
// readers than *bufio.Reader and *buffer.Buffer are buffered, so reading
// several polynomials in a row from them requires a *bufio.Reader.
func (p *Poly) ReadFrom(r io.Reader) (n int64, err error) {
	return p.decode(newFullReader(r), 0)
}

// fullReader fills the whole slice on every Read, where a bare bufio.Reader
// may return short reads that the buffer.Read* helpers do not retry.
type fullReader struct {
	*bufio.Reader
}

func (r fullReader) Read(p []byte) (int, error) {
	return io.ReadFull(r.Reader, p)
}

func newFullReader(r io.Reader) buffer.Reader {
	switch r := r.(type) {
	case *buffer.Buffer, fullReader:
		return r.(buffer.Reader)
	case *bufio.Reader:
		return fullReader{r}
	default:
		return fullReader{bufio.NewReader(r)}
	}
}

func (p *Poly) decode(r buffer.Reader, depth int) (n int64, err error) {
	if depth > DefaultMaxDepth {
		return n, fmt.Errorf("%w: nested more than %d levels", errInvalidEncoding, DefaultMaxDepth)
	}

	var tag uint8
	if err = readUint8(r, &tag, &n); err != nil {
		return n, err
	}

	switch tag {
	case tagScalar:
		var c uint64
		if err = readUint64(r, &c, &n); err != nil {
			return n, err
		}

		*p = FromCoeff(int64(c))

		return n, nil
	case tagSum:
	default:
		return n, fmt.Errorf("%w: unknown tag %d", errInvalidEncoding, tag)
	}

	var count uint64
	if err = readUint64(r, &count, &n); err != nil {
		return n, err
	}

	if count == 0 {
		return n, fmt.Errorf("%w: empty sum", errInvalidEncoding)
	}

	terms := make([]Term, 0, min(count, 1024))
	for i := uint64(0); i < count; i++ {
		var exp uint32
		if err = readUint32(r, &exp, &n); err != nil {
			return n, err
		}

		if exp > MaxExp {
			return n, fmt.Errorf("%w: exponent %d", errInvalidEncoding, exp)
		}

		if len(terms) > 0 && int32(exp) <= terms[len(terms)-1].Exp {
			return n, fmt.Errorf("%w: exponents not increasing", errInvalidEncoding)
		}

		var coeff Poly

		var inc int64
		if inc, err = coeff.decode(r, depth+1); err != nil {
			return n + inc, err
		}
		n += inc

		if coeff.IsZero() {
			return n, fmt.Errorf("%w: zero coefficient", errInvalidEncoding)
		}

		terms = append(terms, NewTerm(coeff, int32(exp)))
	}

	if len(terms) == 1 && terms[0].Exp == 0 && terms[0].Coeff.IsCoeff() {
		return n, fmt.Errorf("%w: scalar stored as a sum", errInvalidEncoding)
	}

	*p = Poly{terms: terms}

	return n, nil
}

func readUint8(r buffer.Reader, c *uint8, n *int64) error {
	inc, err := buffer.ReadUint8(r, c)
	*n += int64(inc)

	return err
}

func readUint32(r buffer.Reader, c *uint32, n *int64) error {
	inc, err := buffer.ReadUint32(r, c)
	*n += int64(inc)

	return err
}

func readUint64(r buffer.Reader, c *uint64, n *int64) error {
	inc, err := buffer.ReadUint64(r, c)
	*n += int64(inc)

	return err
}

// MarshalBinary encodes p into a new slice.
func (p Poly) MarshalBinary() ([]byte, error) {
	buf := buffer.NewBufferSize(p.BinarySize())
	if _, err := p.WriteTo(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes data, which must hold exactly one polynomial.
func (p *Poly) UnmarshalBinary(data []byte) error {
	n, err := p.ReadFrom(buffer.NewBuffer(data))
	if err != nil {
		return err
	}

	if int(n) != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", errInvalidEncoding, len(data)-int(n))
	}

	return nil
}

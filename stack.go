package polycalc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/jonathanmweiss/go-polycalc/poly"
	"github.com/tuneinsight/lattigo/v6/utils/buffer"
	"github.com/zeebo/blake3"
)

// Stack holds the calculator's polynomials, the most recent on top.
type Stack struct {
	polys []poly.Poly
}

func (s *Stack) Len() int {
	return len(s.polys)
}

func (s *Stack) Push(p poly.Poly) {
	s.polys = append(s.polys, p)
}

// Peek returns the i-th polynomial from the top, 0 being the top itself.
func (s *Stack) Peek(i int) (poly.Poly, bool) {
	if i < 0 || i >= len(s.polys) {
		return poly.Poly{}, false
	}

	return s.polys[len(s.polys)-1-i], true
}

func (s *Stack) Pop() (poly.Poly, bool) {
	p, ok := s.Peek(0)
	if !ok {
		return p, false
	}

	s.polys[len(s.polys)-1] = poly.Poly{}
	s.polys = s.polys[:len(s.polys)-1]

	return p, true
}

// Values returns the polynomials from bottom to top.
func (s *Stack) Values() []poly.Poly {
	out := make([]poly.Poly, len(s.polys))
	copy(out, s.polys)

	return out
}

// Snapshot layout:
//
//	magic "PCS1" | count(uint64) | count*poly | blake3-256 of all preceding bytes
var snapshotMagic = [4]byte{'P', 'C', 'S', '1'}

const checksumSize = 32

// WriteTo writes a snapshot of s on w.
func (s *Stack) WriteTo(w io.Writer) (n int64, err error) {
	h := blake3.New()
	bw := bufio.NewWriter(io.MultiWriter(w, h))

	var inc int64
	if inc, err = buffer.Write(bw, snapshotMagic[:]); err != nil {
		return n + inc, err
	}
	n += inc

	if inc, err = buffer.WriteUint64(bw, uint64(len(s.polys))); err != nil {
		return n + inc, err
	}
	n += inc

	for _, p := range s.polys {
		if inc, err = p.WriteTo(bw); err != nil {
			return n + inc, err
		}
		n += inc
	}

	if err = bw.Flush(); err != nil {
		return n, err
	}

	m, err := w.Write(h.Sum(nil))

	return n + int64(m), err
}

// ReadFrom replaces the content of s with the snapshot read from r, which
// must end right after it. s is left untouched when the snapshot is invalid.
func (s *Stack) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(r)
	n = int64(len(data))
	if err != nil {
		return n, err
	}

	if len(data) < len(snapshotMagic)+8+checksumSize {
		return n, fmt.Errorf("%w: %d bytes", ErrBadSnapshot, len(data))
	}

	body, sum := data[:len(data)-checksumSize], data[len(data)-checksumSize:]
	if want := blake3.Sum256(body); !bytes.Equal(want[:], sum) {
		return n, fmt.Errorf("%w: checksum mismatch", ErrBadSnapshot)
	}

	if !bytes.Equal(body[:len(snapshotMagic)], snapshotMagic[:]) {
		return n, fmt.Errorf("%w: bad magic %q", ErrBadSnapshot, body[:len(snapshotMagic)])
	}

	buf := buffer.NewBuffer(body[len(snapshotMagic):])

	var count uint64
	if _, err = buffer.ReadUint64(buf, &count); err != nil {
		return n, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}

	polys := make([]poly.Poly, 0, min(count, 1024))
	for i := uint64(0); i < count; i++ {
		var p poly.Poly
		if _, err = p.ReadFrom(buf); err != nil {
			return n, fmt.Errorf("%w: polynomial %d: %v", ErrBadSnapshot, i, err)
		}

		polys = append(polys, p)
	}

	if buf.Size() != 0 {
		return n, fmt.Errorf("%w: %d trailing bytes", ErrBadSnapshot, buf.Size())
	}

	s.polys = polys

	return n, nil
}

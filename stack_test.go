package polycalc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/jonathanmweiss/go-polycalc/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v6/utils/sampling"
	"github.com/zeebo/blake3"
)

func TestStackOps(t *testing.T) {
	a := assert.New(t)

	var s Stack

	_, ok := s.Pop()
	a.False(ok)

	s.Push(poly.FromCoeff(1))
	s.Push(poly.FromCoeff(2))

	p, ok := s.Peek(1)
	a.True(ok)
	a.Equal(int64(1), p.Coeff())

	_, ok = s.Peek(2)
	a.False(ok)

	p, ok = s.Pop()
	a.True(ok)
	a.Equal(int64(2), p.Coeff())
	a.Equal(1, s.Len())

	vals := s.Values()
	vals[0] = poly.FromCoeff(9)
	p, _ = s.Peek(0)
	a.Equal(int64(1), p.Coeff())
}

func randomStack(t *testing.T, n int) *Stack {
	t.Helper()

	prng, err := sampling.NewKeyedPRNG([]byte("stack"))
	require.NoError(t, err)

	gen, err := poly.NewGenerator(prng, poly.RandomParams{Depth: 3, MaxTerms: 4, MaxExp: 1000, MaxCoeff: 1 << 40})
	require.NoError(t, err)

	s := &Stack{}
	for i := 0; i < n; i++ {
		p, err := gen.Next()
		require.NoError(t, err)
		s.Push(p)
	}

	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 25} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a := assert.New(t)

			s := randomStack(t, n)

			var buf bytes.Buffer
			written, err := s.WriteTo(&buf)
			a.NoError(err)
			a.Equal(int64(buf.Len()), written)

			var r Stack
			read, err := r.ReadFrom(&buf)
			a.NoError(err)
			a.Equal(written, read)

			want, got := s.Values(), r.Values()
			a.Len(got, len(want))
			for i := range want {
				a.True(want[i].Equals(got[i]), "polynomial %d", i)
			}
		})
	}
}

// sealed appends a valid checksum to body.
func sealed(body []byte) []byte {
	sum := blake3.Sum256(body)
	return append(body, sum[:]...)
}

func TestSnapshotInvalid(t *testing.T) {
	var buf bytes.Buffer
	_, err := randomStack(t, 3).WriteTo(&buf)
	require.NoError(t, err)

	valid := buf.Bytes()

	flipped := bytes.Clone(valid)
	flipped[len(flipped)/2] ^= 1

	header := func(magic string, count uint64) []byte {
		return binary.LittleEndian.AppendUint64([]byte(magic), count)
	}

	zero, err := poly.Zero().MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", valid[:len(valid)-1]},
		{"flipped bit", flipped},
		{"bad magic", sealed(header("PCS0", 0))},
		{"missing polynomial", sealed(header("PCS1", 1))},
		{"trailing bytes", sealed(append(header("PCS1", 1), append(zero, 0)...))},
		{"bad polynomial", sealed(append(header("PCS1", 1), 9))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := assert.New(t)

			var s Stack
			s.Push(poly.FromCoeff(42))

			_, err := s.ReadFrom(bytes.NewReader(tt.data))
			a.ErrorIs(err, ErrBadSnapshot)
			a.Equal(1, s.Len())
		})
	}

	var s Stack
	_, err = s.ReadFrom(bytes.NewReader(sealed(append(header("PCS1", 1), zero...))))
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

package field

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jonathanmweiss/go-polycalc/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v6/utils/sampling"
)

type fixedPoints []uint64

func (fp fixedPoints) Point(variable int) uint64 {
	return fp[variable]
}

func mustParse(t testing.TB, s string) poly.Poly {
	t.Helper()

	p, err := poly.Parse(s)
	require.NoError(t, err)

	return p
}

func TestPointSet(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(65537)
	a.NoError(err)

	ps := NewPointSet(f)
	g := f.Generator()

	a.Equal(g, ps.Point(0))
	a.Equal(f.Mul(g, g), ps.Point(1))
	a.Equal(f.Pow(g, 10), ps.Point(9))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := 0; v < 64; v++ {
				ps.Point(v)
			}
		}()
	}
	wg.Wait()

	a.Len(ps.points, 64)
	a.Equal(f.Pow(g, 64), ps.Point(63))
}

func TestPrepend(t *testing.T) {
	a := assert.New(t)

	pts := Prepend(7, fixedPoints{1, 2, 3})
	a.Equal(uint64(7), pts.Point(0))
	a.Equal(uint64(1), pts.Point(1))
	a.Equal(uint64(3), pts.Point(3))
}

func TestFingerprint(t *testing.T) {
	a := assert.New(t)

	f, err := NewPrimeField(65537)
	a.NoError(err)

	tests := []struct {
		p      string
		points fixedPoints
		want   uint64
	}{
		{"0", nil, 0},
		{"-1", nil, 65536},
		{"(1,2)+(3,0)", fixedPoints{5}, 28},
		{"((1,1),2)+(3,0)", fixedPoints{2, 10}, 43},
		{"((-1,3),1)", fixedPoints{2, 3}, 65537 - 54},
		{"(1,16)", fixedPoints{2}, 65536},
	}

	for _, tt := range tests {
		a.Equal(tt.want, Fingerprint(f, mustParse(t, tt.p), tt.points), tt.p)
	}
}

func TestFingerprintHomomorphism(t *testing.T) {
	f, err := NewPrimeField(DefaultPrime)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG([]byte("fingerprint"))
	require.NoError(t, err)

	gen, err := poly.NewGenerator(prng, poly.RandomParams{Depth: 3, MaxTerms: 5, MaxExp: 20, MaxCoeff: 1 << 20})
	require.NoError(t, err)

	pts := NewPointSet(f)

	for i := 0; i < 30; i++ {
		p, err := gen.Next()
		require.NoError(t, err)

		q, err := gen.Next()
		require.NoError(t, err)

		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a := assert.New(t)

			fp, fq := Fingerprint(f, p, pts), Fingerprint(f, q, pts)

			sum, err := p.Add(q)
			a.NoError(err)
			a.Equal(f.Add(fp, fq), Fingerprint(f, sum, pts))

			diff, err := p.Sub(q)
			a.NoError(err)
			a.Equal(f.Sub(fp, fq), Fingerprint(f, diff, pts))

			prod, err := p.Mul(q)
			a.NoError(err)
			a.Equal(f.Mul(fp, fq), Fingerprint(f, prod, pts))

			for _, x := range []int64{-3, 0, 2} {
				at, err := p.At(x)
				a.NoError(err)
				a.Equal(Fingerprint(f, p, Prepend(f.ReduceSigned(x), pts)), Fingerprint(f, at, pts))
			}
		})
	}
}

func BenchmarkFingerprint(b *testing.B) {
	f, err := NewPrimeField(DefaultPrime)
	if err != nil {
		b.FailNow()
	}

	prng, err := sampling.NewKeyedPRNG([]byte("bench"))
	if err != nil {
		b.FailNow()
	}

	gen, err := poly.NewGenerator(prng, poly.RandomParams{Depth: 3, MaxTerms: 32, MaxExp: 1 << 16, MaxCoeff: 1 << 32})
	if err != nil {
		b.FailNow()
	}

	p, err := gen.Next()
	if err != nil {
		b.FailNow()
	}

	pts := NewPointSet(f)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Fingerprint(f, p, pts)
	}
}

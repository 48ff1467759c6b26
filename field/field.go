package field

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/tuneinsight/lattigo/v6/ring"
)

type Field interface {
	Equals(a, b uint64) bool
	Add(a, b uint64) uint64
	Sub(a, b uint64) uint64
	Mul(a, b uint64) uint64
	Pow(base, exp uint64) uint64

	Neg(a uint64) uint64
	Reduce(a uint64) uint64
	ReduceSigned(a int64) uint64

	Modulus() uint64
	Generator() uint64
}

// DefaultPrime is a 63-bit prime, large enough that fingerprints of distinct
// small polynomials collide with negligible probability.
const DefaultPrime = 9191248642791733759

type PrimeField struct {
	prime     uint64
	generator uint64
}

var (
	errPrimeTooLarge = errors.New("supporting up to 63-bit prime")
	errNotPrime      = errors.New("this package only support prime fields. please use a prime order")
)

const maxBitUsage = 63

func NewPrimeField(prime uint64) (Field, error) {
	if prime >= (1 << maxBitUsage) {
		return nil, errPrimeTooLarge
	}

	b := (&big.Int{}).SetUint64(prime)
	// Probably prime is 100% accurate for 64-bit numbers. Thus, we can use one base check.
	if !b.ProbablyPrime(1) {
		return nil, errNotPrime
	}

	g, _, err := ring.PrimitiveRoot(prime, nil)
	if err != nil {
		return nil, err
	}

	return &PrimeField{
		prime:     prime,
		generator: g,
	}, nil
}

// Modulus implements Field.
func (f *PrimeField) Modulus() uint64 {
	return f.prime
}

// Generator returns a generator of the multiplicative group of the field.
func (f *PrimeField) Generator() uint64 {
	return f.generator
}

func (f *PrimeField) Reduce(val uint64) uint64 {
	return val % f.prime
}

// ReduceSigned maps an integer to its residue, so that negative values land
// on prime - |val| mod prime.
func (f *PrimeField) ReduceSigned(val int64) uint64 {
	if val >= 0 {
		return uint64(val) % f.prime
	}

	// -uint64 handles math.MinInt64.
	return f.Neg((-uint64(val)) % f.prime)
}

func (f *PrimeField) Add(a, b uint64) uint64 {
	if a == 0 {
		return b
	}

	tmp := a + b // can't overflow since adding two integers smaller than 2^63.
	if tmp >= f.prime {
		tmp -= f.prime
	}

	return tmp
}

// Mul returns a * b (mod field prime).
func (f *PrimeField) Mul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}

	return fieldMul(a, b, f.prime)
}

func fieldMul(a, b uint64, mod uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, mod)

	return rem
}

// https://en.wikipedia.org/wiki/Exponentiation_by_squaring
func (f *PrimeField) Pow(base, exp uint64) uint64 {
	mod := f.prime

	x := uint64(1)
	for exp > 0 {
		if exp%2 == 1 {
			x = fieldMul(x, base, mod)
		}

		base = fieldMul(base, base, mod)
		exp /= 2
	}

	return x % mod
}

func (f *PrimeField) Neg(e uint64) uint64 {
	if e == 0 {
		return 0
	}

	return (f.prime - e)
}

func (f *PrimeField) Sub(a, b uint64) uint64 {
	if a < b {
		return f.prime - (b - a)
	}

	return a - b
}

func (f *PrimeField) Equals(a, b uint64) bool {
	mod := f.prime
	return (a % mod) == (b % mod)
}

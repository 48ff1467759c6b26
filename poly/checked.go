package poly

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"lukechampine.com/uint128"
)

// checkedAdd returns a+b and false when the sum does not fit in T.
func checkedAdd[T constraints.Signed](a, b T) (T, bool) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return s, false
	}

	return s, true
}

func addCoeff(a, b int64) (int64, error) {
	s, ok := checkedAdd(a, b)
	if !ok {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}

	return s, nil
}

func negCoeff(a int64) (int64, error) {
	if a == math.MinInt64 {
		return 0, fmt.Errorf("%w: -(%d)", ErrOverflow, a)
	}

	return -a, nil
}

func absUint(a int64) uint64 {
	if a < 0 {
		return -uint64(a)
	}

	return uint64(a)
}

// mulCoeff multiplies in 128 bits and checks the magnitude against the
// int64 bound for the sign of the product.
func mulCoeff(a, b int64) (int64, error) {
	prod := uint128.From64(absUint(a)).Mul64(absUint(b))
	neg := (a < 0) != (b < 0)

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}

	if prod.Hi != 0 || prod.Lo > limit {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}

	if neg {
		return int64(-prod.Lo), nil
	}

	return int64(prod.Lo), nil
}

func addExp(a, b int32) (int32, error) {
	s, ok := checkedAdd(a, b)
	if !ok || s < 0 {
		return 0, fmt.Errorf("%w: %d + %d", ErrExponentOverflow, a, b)
	}

	return s, nil
}

// powCoeff computes base^exp by repeated squaring. The base is squared only
// while at least two factors remain, so the last step never squares.
func powCoeff(base int64, exp int32) (int64, error) {
	switch {
	case exp < 0:
		return 0, ErrNegativeExponent
	case exp == 0:
		return 1, nil
	case base == 0 || base == 1:
		return base, nil
	case base == -1:
		if exp%2 == 0 {
			return 1, nil
		}

		return -1, nil
	}

	var err error

	acc := int64(1)
	for exp >= 2 {
		if exp%2 == 1 {
			if acc, err = mulCoeff(acc, base); err != nil {
				return 0, err
			}
		}

		if base, err = mulCoeff(base, base); err != nil {
			return 0, err
		}

		exp /= 2
	}

	return mulCoeff(acc, base)
}

package curve

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// FrOrder is the scalar field modulus r, the prime order of G1, G2, and GT.
func FrOrder() *big.Int {
	return new(big.Int).Set(n)
}

// Scalar is an element of F_r, the scalar field the accumulator's secret
// exponents (s, r, beta) and the bivariate polynomial coefficients live in.
type Scalar struct {
	v *big.Int
}

// NewScalar reduces v mod r and wraps it as a Scalar.
func NewScalar(v *big.Int) Scalar {
	return Scalar{v: new(big.Int).Mod(v, n)}
}

// ScalarFromUint64 wraps a small non-negative integer as a Scalar.
func ScalarFromUint64(v uint64) Scalar {
	return NewScalar(new(big.Int).SetUint64(v))
}

// RandomScalar draws a uniformly random element of F_r.
func RandomScalar() (Scalar, error) {
	v, err := rand.Int(rand.Reader, n)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{v: v}, nil
}

// Int returns the underlying big.Int representation, in [0, r).
func (s Scalar) Int() *big.Int {
	return new(big.Int).Set(s.v)
}

func (s Scalar) IsZero() bool { return s.v.Sign() == 0 }

func (s Scalar) Equal(t Scalar) bool { return s.v.Cmp(t.v) == 0 }

func (s Scalar) Add(t Scalar) Scalar {
	return Scalar{v: new(big.Int).Mod(new(big.Int).Add(s.v, t.v), n)}
}

func (s Scalar) Sub(t Scalar) Scalar {
	return Scalar{v: new(big.Int).Mod(new(big.Int).Sub(s.v, t.v), n)}
}

func (s Scalar) Mul(t Scalar) Scalar {
	return Scalar{v: new(big.Int).Mod(new(big.Int).Mul(s.v, t.v), n)}
}

func (s Scalar) Neg() Scalar {
	if s.v.Sign() == 0 {
		return s
	}
	return Scalar{v: new(big.Int).Sub(n, s.v)}
}

// Exp returns s^e for a non-negative exponent e.
func (s Scalar) Exp(e uint64) Scalar {
	return Scalar{v: new(big.Int).Exp(s.v, new(big.Int).SetUint64(e), n)}
}

// Inv returns s^-1. It panics if s is zero, since the accumulator's key
// material is generated to avoid zero exponents.
func (s Scalar) Inv() Scalar {
	if s.v.Sign() == 0 {
		panic("curve: inverse of zero scalar")
	}
	return Scalar{v: new(big.Int).ModInverse(s.v, n)}
}

// Bytes encodes s as a 32-byte big-endian value.
func (s Scalar) Bytes() []byte {
	out := make([]byte, 32)
	s.v.FillBytes(out)
	return out
}

// ScalarFromBytes decodes a 32-byte big-endian value produced by Bytes.
func ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return Scalar{}, errors.New("curve: scalar encoding must be 32 bytes")
	}
	return NewScalar(new(big.Int).SetBytes(b)), nil
}

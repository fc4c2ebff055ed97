package curve

import (
	"errors"
	"math/big"
)

// ErrPointNotOnCurve is returned when decoding a point that fails the curve
// equation check.
var ErrPointNotOnCurve = errors.New("curve: point is not on the curve")

// G1 is a point on the base curve y^2 = x^3 + 3 over F_p, held in Jacobian
// coordinates (x, y, z) representing the affine point (x/z^2, y/z^3).
type G1 struct {
	x, y, z *big.Int
}

// G1Generator returns the standard BN254 G1 generator (1, 2).
func G1Generator() G1 {
	return G1{x: big.NewInt(1), y: big.NewInt(2), z: big.NewInt(1)}
}

// G1Identity returns the point at infinity.
func G1Identity() G1 {
	return G1{x: big.NewInt(1), y: big.NewInt(1), z: new(big.Int)}
}

// IsIdentity reports whether p is the point at infinity.
func (p G1) IsIdentity() bool {
	return p.z.Sign() == 0
}

func g1FromAffine(x, y *big.Int) G1 {
	return G1{x: new(big.Int).Set(x), y: new(big.Int).Set(y), z: big.NewInt(1)}
}

// Affine returns the affine (x, y) coordinates of p.
func (p G1) Affine() (x, y *big.Int) {
	if p.IsIdentity() {
		return new(big.Int), new(big.Int)
	}
	zInv := fpInv(p.z)
	zInv2 := fpSqr(zInv)
	zInv3 := fpMul(zInv2, zInv)
	return fpMul(p.x, zInv2), fpMul(p.y, zInv3)
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + 3 in affine form.
func (p G1) IsOnCurve() bool {
	if p.IsIdentity() {
		return true
	}
	x, y := p.Affine()
	if x.Sign() == 0 && y.Sign() == 0 {
		return false
	}
	lhs := fpSqr(y)
	rhs := fpAdd(fpMul(fpSqr(x), x), curveB)
	return lhs.Cmp(rhs) == 0
}

// Equal reports whether p and q represent the same affine point.
func (p G1) Equal(q G1) bool {
	if p.IsIdentity() || q.IsIdentity() {
		return p.IsIdentity() == q.IsIdentity()
	}
	px, py := p.Affine()
	qx, qy := q.Affine()
	return px.Cmp(qx) == 0 && py.Cmp(qy) == 0
}

// Add returns p + q using the standard Jacobian addition formulas, falling
// back to doubling when p == q.
func (p G1) Add(q G1) G1 {
	if p.IsIdentity() {
		return q
	}
	if q.IsIdentity() {
		return p
	}

	z1z1 := fpSqr(p.z)
	z2z2 := fpSqr(q.z)
	u1 := fpMul(p.x, z2z2)
	u2 := fpMul(q.x, z1z1)
	s1 := fpMul(fpMul(p.y, q.z), z2z2)
	s2 := fpMul(fpMul(q.y, p.z), z1z1)

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) != 0 {
			return G1Identity()
		}
		return p.Double()
	}

	h := fpSub(u2, u1)
	i := fpSqr(fpAdd(h, h))
	j := fpMul(h, i)
	r := fpAdd(fpSub(s2, s1), fpSub(s2, s1))
	v := fpMul(u1, i)

	x3 := fpSub(fpSub(fpSqr(r), j), fpAdd(v, v))
	y3 := fpSub(fpMul(r, fpSub(v, x3)), fpAdd(fpMul(s1, j), fpMul(s1, j)))
	z3 := fpMul(fpSub(fpSqr(fpAdd(p.z, q.z)), fpAdd(z1z1, z2z2)), h)

	return G1{x: x3, y: y3, z: z3}
}

// Double returns p + p.
func (p G1) Double() G1 {
	if p.IsIdentity() || p.y.Sign() == 0 {
		return G1Identity()
	}
	a := fpSqr(p.x)
	b := fpSqr(p.y)
	c := fpSqr(b)
	d := fpMul(big.NewInt(2), fpSub(fpSub(fpSqr(fpAdd(p.x, b)), a), c))
	e := fpMul(big.NewInt(3), a)
	f := fpSqr(e)

	x3 := fpSub(f, fpAdd(d, d))
	y3 := fpSub(fpMul(e, fpSub(d, x3)), fpMul(big.NewInt(8), c))
	z3 := fpMul(big.NewInt(2), fpMul(p.y, p.z))

	return G1{x: x3, y: y3, z: z3}
}

// Neg returns -p.
func (p G1) Neg() G1 {
	if p.IsIdentity() {
		return p
	}
	return G1{x: new(big.Int).Set(p.x), y: fpNeg(p.y), z: new(big.Int).Set(p.z)}
}

// Sub returns p - q.
func (p G1) Sub(q G1) G1 {
	return p.Add(q.Neg())
}

// ScalarMul returns k*p using double-and-add. k is reduced mod the group
// order before use.
func (p G1) ScalarMul(k *big.Int) G1 {
	kk := new(big.Int).Mod(k, n)
	result := G1Identity()
	base := p
	for i := kk.BitLen() - 1; i >= 0; i-- {
		result = result.Double()
		if kk.Bit(i) == 1 {
			result = result.Add(base)
		}
	}
	return result
}

// Marshal encodes p as 64 bytes: 32-byte big-endian X followed by 32-byte
// big-endian Y, both in affine form.
func (p G1) Marshal() []byte {
	out := make([]byte, 64)
	x, y := p.Affine()
	x.FillBytes(out[0:32])
	y.FillBytes(out[32:64])
	return out
}

// UnmarshalG1 decodes a 64-byte encoding produced by Marshal.
func UnmarshalG1(b []byte) (G1, error) {
	if len(b) != 64 {
		return G1{}, errors.New("curve: G1 encoding must be 64 bytes")
	}
	x := new(big.Int).SetBytes(b[0:32])
	y := new(big.Int).SetBytes(b[32:64])
	if x.Sign() == 0 && y.Sign() == 0 {
		return G1Identity(), nil
	}
	pt := g1FromAffine(x, y)
	if !pt.IsOnCurve() {
		return G1{}, ErrPointNotOnCurve
	}
	return pt, nil
}

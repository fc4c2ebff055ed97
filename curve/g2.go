package curve

import (
	"errors"
	"math/big"
)

// twistB is the twisted curve's b coefficient, b' = 3/(9+i).
var twistB = &fp2{
	a0: bigFromStr("19485874751759354771024239261021720505790618469301721065564631296452457478373"),
	a1: bigFromStr("266929791119991161246907387137283842545076965332900288569378510910307636690"),
}

// G2 is a point on the sextic twist over F_p^2, held in Jacobian coordinates.
type G2 struct {
	x, y, z *fp2
}

// G2Generator returns the standard BN254 G2 generator.
func G2Generator() G2 {
	x := &fp2{
		a0: bigFromStr("10857046999023057135944570762232829481370756359578518086990519993285655852781"),
		a1: bigFromStr("11559732032986387107991004021392285783925812861821192530917403151452391805634"),
	}
	y := &fp2{
		a0: bigFromStr("8495653923123431417604973247489272438418190587263600148770280649306958101930"),
		a1: bigFromStr("4082367875863433681332203403145435568316851327593401208105741076214120093531"),
	}
	return G2{x: x, y: y, z: fp2One()}
}

// G2Identity returns the point at infinity.
func G2Identity() G2 {
	return G2{x: fp2One(), y: fp2One(), z: fp2Zero()}
}

// IsIdentity reports whether p is the point at infinity.
func (p G2) IsIdentity() bool {
	return p.z.isZero()
}

func g2FromAffine(x, y *fp2) G2 {
	return G2{x: x.clone(), y: y.clone(), z: fp2One()}
}

// Affine returns the affine (x, y) coordinates of p.
func (p G2) Affine() (x, y *fp2) {
	if p.IsIdentity() {
		return fp2Zero(), fp2Zero()
	}
	zInv := fp2Inv(p.z)
	zInv2 := fp2Sqr(zInv)
	zInv3 := fp2Mul(zInv2, zInv)
	return fp2Mul(p.x, zInv2), fp2Mul(p.y, zInv3)
}

// IsOnCurve reports whether p satisfies y^2 = x^3 + b' in affine form.
func (p G2) IsOnCurve() bool {
	if p.IsIdentity() {
		return true
	}
	x, y := p.Affine()
	lhs := fp2Sqr(y)
	rhs := fp2Add(fp2Mul(fp2Sqr(x), x), twistB)
	return lhs.equal(rhs)
}

// Equal reports whether p and q represent the same affine point.
func (p G2) Equal(q G2) bool {
	if p.IsIdentity() || q.IsIdentity() {
		return p.IsIdentity() == q.IsIdentity()
	}
	px, py := p.Affine()
	qx, qy := q.Affine()
	return px.equal(qx) && py.equal(qy)
}

// Add returns p + q.
func (p G2) Add(q G2) G2 {
	if p.IsIdentity() {
		return q
	}
	if q.IsIdentity() {
		return p
	}

	z1z1 := fp2Sqr(p.z)
	z2z2 := fp2Sqr(q.z)
	u1 := fp2Mul(p.x, z2z2)
	u2 := fp2Mul(q.x, z1z1)
	s1 := fp2Mul(fp2Mul(p.y, q.z), z2z2)
	s2 := fp2Mul(fp2Mul(q.y, p.z), z1z1)

	if u1.equal(u2) {
		if !s1.equal(s2) {
			return G2Identity()
		}
		return p.Double()
	}

	h := fp2Sub(u2, u1)
	i := fp2Sqr(fp2Add(h, h))
	j := fp2Mul(h, i)
	r := fp2Add(fp2Sub(s2, s1), fp2Sub(s2, s1))
	v := fp2Mul(u1, i)

	x3 := fp2Sub(fp2Sub(fp2Sqr(r), j), fp2Add(v, v))
	y3 := fp2Sub(fp2Mul(r, fp2Sub(v, x3)), fp2Add(fp2Mul(s1, j), fp2Mul(s1, j)))
	z3 := fp2Mul(fp2Sub(fp2Sqr(fp2Add(p.z, q.z)), fp2Add(z1z1, z2z2)), h)

	return G2{x: x3, y: y3, z: z3}
}

// Double returns p + p.
func (p G2) Double() G2 {
	if p.IsIdentity() || p.y.isZero() {
		return G2Identity()
	}
	a := fp2Sqr(p.x)
	b := fp2Sqr(p.y)
	c := fp2Sqr(b)
	d := fp2MulScalar(fp2Sub(fp2Sub(fp2Sqr(fp2Add(p.x, b)), a), c), big.NewInt(2))
	e := fp2MulScalar(a, big.NewInt(3))
	f := fp2Sqr(e)

	x3 := fp2Sub(f, fp2Add(d, d))
	y3 := fp2Sub(fp2Mul(e, fp2Sub(d, x3)), fp2MulScalar(c, big.NewInt(8)))
	z3 := fp2MulScalar(fp2Mul(p.y, p.z), big.NewInt(2))

	return G2{x: x3, y: y3, z: z3}
}

// Neg returns -p.
func (p G2) Neg() G2 {
	if p.IsIdentity() {
		return p
	}
	return G2{x: p.x.clone(), y: fp2Neg(p.y), z: p.z.clone()}
}

// Sub returns p - q.
func (p G2) Sub(q G2) G2 {
	return p.Add(q.Neg())
}

// ScalarMul returns k*p using double-and-add. k is reduced mod the group
// order before use.
func (p G2) ScalarMul(k *big.Int) G2 {
	kk := new(big.Int).Mod(k, n)
	result := G2Identity()
	base := p
	for i := kk.BitLen() - 1; i >= 0; i-- {
		result = result.Double()
		if kk.Bit(i) == 1 {
			result = result.Add(base)
		}
	}
	return result
}

// Marshal encodes p as 128 bytes: X.a0 || X.a1 || Y.a0 || Y.a1, each a
// 32-byte big-endian field element, in affine form.
func (p G2) Marshal() []byte {
	out := make([]byte, 128)
	x, y := p.Affine()
	x.a0.FillBytes(out[0:32])
	x.a1.FillBytes(out[32:64])
	y.a0.FillBytes(out[64:96])
	y.a1.FillBytes(out[96:128])
	return out
}

// UnmarshalG2 decodes a 128-byte encoding produced by Marshal.
func UnmarshalG2(b []byte) (G2, error) {
	if len(b) != 128 {
		return G2{}, errors.New("curve: G2 encoding must be 128 bytes")
	}
	x := &fp2{a0: new(big.Int).SetBytes(b[0:32]), a1: new(big.Int).SetBytes(b[32:64])}
	y := &fp2{a0: new(big.Int).SetBytes(b[64:96]), a1: new(big.Int).SetBytes(b[96:128])}
	if x.isZero() && y.isZero() {
		return G2Identity(), nil
	}
	pt := g2FromAffine(x, y)
	if !pt.IsOnCurve() {
		return G2{}, ErrPointNotOnCurve
	}
	return pt, nil
}

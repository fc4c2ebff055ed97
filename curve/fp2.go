package curve

import "math/big"

// fp2 represents an element of F_p^2 = F_p[i] / (i^2 + 1): a0 + a1*i.
type fp2 struct {
	a0, a1 *big.Int
}

func newFp2(a0, a1 *big.Int) *fp2 {
	return &fp2{a0: new(big.Int).Mod(a0, p), a1: new(big.Int).Mod(a1, p)}
}

func fp2Zero() *fp2 { return &fp2{a0: new(big.Int), a1: new(big.Int)} }
func fp2One() *fp2  { return &fp2{a0: big.NewInt(1), a1: new(big.Int)} }

func (z *fp2) isZero() bool {
	return z.a0.Sign() == 0 && z.a1.Sign() == 0
}

func (z *fp2) equal(o *fp2) bool {
	return z.a0.Cmp(o.a0) == 0 && z.a1.Cmp(o.a1) == 0
}

func (z *fp2) clone() *fp2 {
	return &fp2{a0: new(big.Int).Set(z.a0), a1: new(big.Int).Set(z.a1)}
}

func fp2Add(x, y *fp2) *fp2 {
	return &fp2{a0: fpAdd(x.a0, y.a0), a1: fpAdd(x.a1, y.a1)}
}

func fp2Sub(x, y *fp2) *fp2 {
	return &fp2{a0: fpSub(x.a0, y.a0), a1: fpSub(x.a1, y.a1)}
}

// fp2Mul uses the Karatsuba trick: (a0+a1 i)(b0+b1 i) = (a0b0 - a1b1) + ((a0+a1)(b0+b1) - a0b0 - a1b1) i.
func fp2Mul(x, y *fp2) *fp2 {
	a0b0 := fpMul(x.a0, y.a0)
	a1b1 := fpMul(x.a1, y.a1)
	mid := fpMul(fpAdd(x.a0, x.a1), fpAdd(y.a0, y.a1))
	return &fp2{
		a0: fpSub(a0b0, a1b1),
		a1: fpSub(fpSub(mid, a0b0), a1b1),
	}
}

func fp2Sqr(x *fp2) *fp2 {
	return fp2Mul(x, x)
}

func fp2Neg(x *fp2) *fp2 {
	return &fp2{a0: fpNeg(x.a0), a1: fpNeg(x.a1)}
}

func fp2Conj(x *fp2) *fp2 {
	return &fp2{a0: new(big.Int).Set(x.a0), a1: fpNeg(x.a1)}
}

// fp2Inv computes 1/(a0+a1 i) = (a0-a1 i) / (a0^2+a1^2).
func fp2Inv(x *fp2) *fp2 {
	norm := fpAdd(fpSqr(x.a0), fpSqr(x.a1))
	normInv := fpInv(norm)
	return &fp2{a0: fpMul(x.a0, normInv), a1: fpMul(fpNeg(x.a1), normInv)}
}

func fp2MulScalar(x *fp2, s *big.Int) *fp2 {
	return &fp2{a0: fpMul(x.a0, s), a1: fpMul(x.a1, s)}
}

// nonResidue is xi = 9 + i, the sextic non-residue used to build F_p^6.
var nonResidue = &fp2{a0: big.NewInt(9), a1: big.NewInt(1)}

func fp2MulByNonResidue(x *fp2) *fp2 {
	return fp2Mul(x, nonResidue)
}

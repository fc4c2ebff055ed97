package curve

import "math/big"

// fp12 represents an element of F_p^12 = F_p^6[w] / (w^2 - v): c0 + c1*w.
type fp12 struct {
	c0, c1 *fp6
}

func fp12Zero() *fp12 { return &fp12{c0: fp6Zero(), c1: fp6Zero()} }
func fp12One() *fp12  { return &fp12{c0: fp6One(), c1: fp6Zero()} }

func (z *fp12) isOne() bool {
	return z.c0.c0.equal(fp2One()) && z.c0.c1.isZero() && z.c0.c2.isZero() && z.c1.isZero()
}

func (z *fp12) clone() *fp12 {
	return &fp12{c0: z.c0.clone(), c1: z.c1.clone()}
}

// fp6MulByV multiplies an fp6 element by v, shifting it up one tower level:
// (c0 + c1 v + c2 v^2) * v = c2*xi + c0 v + c1 v^2.
func fp6MulByV(x *fp6) *fp6 {
	return &fp6{c0: fp2MulByNonResidue(x.c2), c1: x.c0, c2: x.c1}
}

func fp12Add(x, y *fp12) *fp12 {
	return &fp12{c0: fp6Add(x.c0, y.c0), c1: fp6Add(x.c1, y.c1)}
}

func fp12Sub(x, y *fp12) *fp12 {
	return &fp12{c0: fp6Sub(x.c0, y.c0), c1: fp6Sub(x.c1, y.c1)}
}

func fp12Mul(x, y *fp12) *fp12 {
	t0 := fp6Mul(x.c0, y.c0)
	t1 := fp6Mul(x.c1, y.c1)
	c0 := fp6Add(t0, fp6MulByV(t1))
	c1 := fp6Sub(fp6Mul(fp6Add(x.c0, x.c1), fp6Add(y.c0, y.c1)), fp6Add(t0, t1))
	return &fp12{c0: c0, c1: c1}
}

func fp12Sqr(x *fp12) *fp12 {
	t0 := fp6Sub(x.c0, x.c1)
	t1 := x.c1
	t2 := fp6Mul(x.c0, x.c1)
	t0 = fp6Mul(t0, fp6Add(x.c0, fp6MulByV(t1)))
	c0 := fp6Add(t0, fp6Add(t2, fp6MulByV(t2)))
	c1 := fp6Add(t2, t2)
	return &fp12{c0: c0, c1: c1}
}

func fp12Conj(x *fp12) *fp12 {
	return &fp12{c0: x.c0.clone(), c1: fp6Neg(x.c1)}
}

func fp12Inv(x *fp12) *fp12 {
	t := fp6Sub(fp6Sqr(x.c0), fp6MulByV(fp6Sqr(x.c1)))
	tInv := fp6Inv(t)
	return &fp12{c0: fp6Mul(x.c0, tInv), c1: fp6Neg(fp6Mul(x.c1, tInv))}
}

// fp12Exp computes x^e by square-and-multiply. e is assumed non-negative.
func fp12Exp(x *fp12, e *big.Int) *fp12 {
	base := x.clone()
	result := fp12One()
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = fp12Sqr(result)
		if e.Bit(i) == 1 {
			result = fp12Mul(result, base)
		}
	}
	return result
}

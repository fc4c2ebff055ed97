package curve

// fp6 represents an element of F_p^6 = F_p^2[v] / (v^3 - xi): c0 + c1*v + c2*v^2.
type fp6 struct {
	c0, c1, c2 *fp2
}

func fp6Zero() *fp6 { return &fp6{c0: fp2Zero(), c1: fp2Zero(), c2: fp2Zero()} }
func fp6One() *fp6  { return &fp6{c0: fp2One(), c1: fp2Zero(), c2: fp2Zero()} }

func (z *fp6) isZero() bool {
	return z.c0.isZero() && z.c1.isZero() && z.c2.isZero()
}

func (z *fp6) clone() *fp6 {
	return &fp6{c0: z.c0.clone(), c1: z.c1.clone(), c2: z.c2.clone()}
}

func fp6Add(x, y *fp6) *fp6 {
	return &fp6{c0: fp2Add(x.c0, y.c0), c1: fp2Add(x.c1, y.c1), c2: fp2Add(x.c2, y.c2)}
}

func fp6Sub(x, y *fp6) *fp6 {
	return &fp6{c0: fp2Sub(x.c0, y.c0), c1: fp2Sub(x.c1, y.c1), c2: fp2Sub(x.c2, y.c2)}
}

func fp6Neg(x *fp6) *fp6 {
	return &fp6{c0: fp2Neg(x.c0), c1: fp2Neg(x.c1), c2: fp2Neg(x.c2)}
}

// fp6Mul implements the Toom-Cook-style product used for degree-3 towers.
func fp6Mul(x, y *fp6) *fp6 {
	t0 := fp2Mul(x.c0, y.c0)
	t1 := fp2Mul(x.c1, y.c1)
	t2 := fp2Mul(x.c2, y.c2)

	c0 := fp2Add(t0, fp2MulByNonResidue(fp2Sub(fp2Mul(fp2Add(x.c1, x.c2), fp2Add(y.c1, y.c2)), fp2Add(t1, t2))))
	c1 := fp2Add(fp2Sub(fp2Mul(fp2Add(x.c0, x.c1), fp2Add(y.c0, y.c1)), fp2Add(t0, t1)), fp2MulByNonResidue(t2))
	c2 := fp2Add(fp2Sub(fp2Mul(fp2Add(x.c0, x.c2), fp2Add(y.c0, y.c2)), fp2Add(t0, t2)), t1)

	return &fp6{c0: c0, c1: c1, c2: c2}
}

func fp6Sqr(x *fp6) *fp6 {
	return fp6Mul(x, x)
}

func fp6MulByFp2(x *fp6, y *fp2) *fp6 {
	return &fp6{c0: fp2Mul(x.c0, y), c1: fp2Mul(x.c1, y), c2: fp2Mul(x.c2, y)}
}

func fp6Inv(x *fp6) *fp6 {
	t0 := fp2Sub(fp2Sqr(x.c0), fp2MulByNonResidue(fp2Mul(x.c1, x.c2)))
	t1 := fp2Sub(fp2MulByNonResidue(fp2Sqr(x.c2)), fp2Mul(x.c0, x.c1))
	t2 := fp2Sub(fp2Sqr(x.c1), fp2Mul(x.c0, x.c2))

	t4 := fp2MulByNonResidue(fp2Mul(x.c2, t1))
	t4 = fp2Add(t4, fp2Mul(x.c1, t2))
	t4 = fp2Add(fp2Mul(x.c0, t0), t4)
	t4 = fp2Inv(t4)

	return &fp6{c0: fp2Mul(t0, t4), c1: fp2Mul(t1, t4), c2: fp2Mul(t2, t4)}
}

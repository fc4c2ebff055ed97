package curve

import "math/big"

// GT is an element of the target group F_p^12, produced by the pairing.
type GT struct {
	v *fp12
}

// IsOne reports whether e is the multiplicative identity of GT.
func (e GT) IsOne() bool {
	return e.v.isOne()
}

// Equal reports whether e and f are the same element of GT.
func (e GT) Equal(f GT) bool {
	return e.v.c0.c0.equal(f.v.c0.c0) && e.v.c0.c1.equal(f.v.c0.c1) && e.v.c0.c2.equal(f.v.c0.c2) &&
		e.v.c1.c0.equal(f.v.c1.c0) && e.v.c1.c1.equal(f.v.c1.c1) && e.v.c1.c2.equal(f.v.c1.c2)
}

// Mul returns e*f in GT.
func (e GT) Mul(f GT) GT {
	return GT{v: fp12Mul(e.v, f.v)}
}

// bn254U is the BN curve parameter u such that p = 36u^4+36u^3+24u^2+6u+1
// and the ate loop count is |6u+2|.
var bn254U = big.NewInt(4965661367192848881)

// sixuPlus2NAF is the non-adjacent form of 6u+2, low bit first, used to
// drive the Miller loop.
var sixuPlus2NAF = []int8{
	0, 0, 0, 1, 0, 1, 0, -1, 0, 0, 1, -1, 0, 0, 1, 0,
	0, 1, 1, 0, -1, 0, 0, 1, 0, -1, 0, 0, 0, 0, 1, 1,
	1, 0, 0, -1, 0, 0, 1, 0, 0, 0, 0, 0, -1, 0, 0, 1,
	1, 0, 0, -1, 0, 0, 0, 1, 1, 0, -1, 0, 0, 1, 0, 1, 1,
}

// twistPointJ is a Jacobian point over F_p^2 used internally by the Miller
// loop, with an extra t = z^2 coordinate cached for line evaluation.
type twistPointJ struct {
	x, y, z, t *fp2
}

func newTwistPointJ(x, y *fp2) *twistPointJ {
	return &twistPointJ{x: x.clone(), y: y.clone(), z: fp2One(), t: fp2One()}
}

// lineFunctionDouble doubles r and returns the sparse line coefficients
// (a, b, c) of the tangent line at r evaluated at the G1 point (pAffX,
// pAffY), following the mixed Jacobian doubling formulas for a=0 curves
// from "Faster Computation of the Tate Pairing".
func lineFunctionDouble(r *twistPointJ, pAffX, pAffY *big.Int) (a, b, c *fp2, rOut *twistPointJ) {
	A := fp2Sqr(r.x)
	B := fp2Sqr(r.y)
	C := fp2Sqr(B)

	D := fp2Add(r.x, B)
	D = fp2Sqr(D)
	D = fp2Sub(D, A)
	D = fp2Sub(D, C)
	D = fp2Add(D, D)

	E := fp2Add(fp2Add(A, A), A) // 3A
	G := fp2Sqr(E)

	rOut = &twistPointJ{}
	rOut.x = fp2Sub(fp2Sub(G, D), D)

	rOut.z = fp2Add(r.y, r.z)
	rOut.z = fp2Sqr(rOut.z)
	rOut.z = fp2Sub(rOut.z, B)
	rOut.z = fp2Sub(rOut.z, r.t)

	rOut.y = fp2Sub(D, rOut.x)
	rOut.y = fp2Mul(rOut.y, E)
	t := fp2Add(C, C)
	t = fp2Add(t, t)
	t = fp2Add(t, t)
	rOut.y = fp2Sub(rOut.y, t)

	rOut.t = fp2Sqr(rOut.z)

	t = fp2Mul(E, r.t)
	t = fp2Add(t, t)
	b = fp2Neg(t)
	b = fp2MulScalar(b, pAffX)

	a = fp2Add(r.x, E)
	a = fp2Sqr(a)
	a = fp2Sub(a, A)
	a = fp2Sub(a, G)
	t = fp2Add(B, B)
	t = fp2Add(t, t)
	a = fp2Sub(a, t)

	c = fp2Mul(rOut.z, r.t)
	c = fp2Add(c, c)
	c = fp2MulScalar(c, pAffY)

	return a, b, c, rOut
}

// lineFunctionAdd adds the affine twist point (addX, addY) into r and
// returns the sparse line coefficients of the line through r and it,
// evaluated at the G1 point (pAffX, pAffY). addYSq must equal addY^2,
// precomputed once by the caller since it is reused across the two extra
// Frobenius-twist steps at the end of the Miller loop.
func lineFunctionAdd(r *twistPointJ, addX, addY *fp2, pAffX, pAffY *big.Int, addYSq *fp2) (a, b, c *fp2, rOut *twistPointJ) {
	B := fp2Mul(addX, r.t)

	D := fp2Add(addY, r.z)
	D = fp2Sqr(D)
	D = fp2Sub(D, addYSq)
	D = fp2Sub(D, r.t)
	D = fp2Mul(D, r.t)

	H := fp2Sub(B, r.x)
	I := fp2Sqr(H)

	E := fp2Add(I, I)
	E = fp2Add(E, E) // 4*I

	J := fp2Mul(H, E)

	L1 := fp2Sub(D, r.y)
	L1 = fp2Sub(L1, r.y)

	V := fp2Mul(r.x, E)

	rOut = &twistPointJ{}
	rOut.x = fp2Sub(fp2Sub(fp2Sqr(L1), J), fp2Add(V, V))

	rOut.z = fp2Add(r.z, H)
	rOut.z = fp2Sqr(rOut.z)
	rOut.z = fp2Sub(rOut.z, r.t)
	rOut.z = fp2Sub(rOut.z, I)

	t := fp2Sub(V, rOut.x)
	t = fp2Mul(t, L1)
	t2 := fp2Mul(r.y, J)
	t2 = fp2Add(t2, t2)
	rOut.y = fp2Sub(t, t2)

	rOut.t = fp2Sqr(rOut.z)

	t = fp2Add(addY, rOut.z)
	t = fp2Sqr(t)
	t = fp2Sub(t, addYSq)
	t = fp2Sub(t, rOut.t)

	t2 = fp2Mul(L1, addX)
	t2 = fp2Add(t2, t2)
	a = fp2Sub(t2, t)

	c = fp2MulScalar(rOut.z, pAffY)
	c = fp2Add(c, c)

	b = fp2Neg(L1)
	b = fp2MulScalar(b, pAffX)
	b = fp2Add(b, b)

	return a, b, c, rOut
}

// mulLine multiplies f by the sparse line element (a, b, c) in the (2,3,4)
// coefficient slots of the F_p^12 tower, as produced by lineFunctionAdd and
// lineFunctionDouble.
func mulLine(f *fp12, a, b, c *fp2) *fp12 {
	line := &fp12{
		c0: &fp6{c0: c, c1: fp2Zero(), c2: fp2Zero()},
		c1: &fp6{c0: b, c1: a, c2: fp2Zero()},
	}
	return fp12Mul(f, line)
}

// frobeniusEndomorphism maps the affine twist point (qx, qy) to its image
// under the p-power Frobenius composed with the twist isomorphism, using
// the same F_p^2 coefficients that drive fp12FrobeniusEfficient.
func frobeniusEndomorphism(qx, qy *fp2) (*fp2, *fp2) {
	x := fp2Mul(fp2Conj(qx), frobC1_1)
	y := fp2Mul(fp2Conj(qy), frobC1_2)
	return x, y
}

// millerLoop computes the Miller loop f_{6u+2,Q}(P) for the optimal Ate
// pairing e(P, Q), P in G1 and Q in G2, including the two extra
// Frobenius-twist addition steps the optimal ate pairing needs beyond the
// plain 6u+2 loop.
func millerLoop(pAffX, pAffY *big.Int, q G2) *fp12 {
	qx, qy := q.Affine()

	ret := fp12One()
	r := newTwistPointJ(qx, qy)
	minusQy := fp2Neg(qy)
	qySq := fp2Sqr(qy)

	for i := len(sixuPlus2NAF) - 1; i > 0; i-- {
		a, b, c, newR := lineFunctionDouble(r, pAffX, pAffY)
		if i != len(sixuPlus2NAF)-1 {
			ret = fp12Sqr(ret)
		}
		ret = mulLine(ret, a, b, c)
		r = newR

		switch sixuPlus2NAF[i-1] {
		case 1:
			a, b, c, newR = lineFunctionAdd(r, qx, qy, pAffX, pAffY, qySq)
			ret = mulLine(ret, a, b, c)
			r = newR
		case -1:
			a, b, c, newR = lineFunctionAdd(r, qx, minusQy, pAffX, pAffY, qySq)
			ret = mulLine(ret, a, b, c)
			r = newR
		}
	}

	q1x, q1y := frobeniusEndomorphism(qx, qy)
	q1ySq := fp2Sqr(q1y)
	a, b, c, newR := lineFunctionAdd(r, q1x, q1y, pAffX, pAffY, q1ySq)
	ret = mulLine(ret, a, b, c)
	r = newR

	// -Q2 = (qx * frobC2_1, qy): the p^2-Frobenius twist point,
	// negated because squaring the y-Frobenius coefficient flips its sign.
	minusQ2x := fp2MulScalar(qx, frobC2_1.a0)
	minusQ2y := qy.clone()
	minusQ2ySq := fp2Sqr(minusQ2y)
	a, b, c, _ = lineFunctionAdd(r, minusQ2x, minusQ2y, pAffX, pAffY, minusQ2ySq)
	ret = mulLine(ret, a, b, c)

	return ret
}

// finalExp raises f to the (p^12-1)/n power, split into the cheap "easy"
// part and the BN-parameter-driven "hard" part.
func finalExp(f *fp12) *fp12 {
	fInv := fp12Inv(f)
	f1 := fp12Mul(fp12Conj(f), fInv) // f^(p^6-1)
	f2 := fp12Mul(fp12FrobeniusSqEfficient(f1), f1)
	return finalExpHard(f2)
}

func fp12Frob(x *fp12) *fp12   { return fp12FrobeniusEfficient(x) }
func fp12FrobSq(x *fp12) *fp12 { return fp12FrobeniusSqEfficient(x) }
func fp12Frob3(x *fp12) *fp12  { return fp12FrobeniusCubeEfficient(x) }

// finalExpHard implements the standard BN hard-part exponentiation using
// the curve parameter u via repeated u-th powering and Frobenius maps.
func finalExpHard(f *fp12) *fp12 {
	fu := fp12Exp(f, bn254U)
	fu2 := fp12Exp(fu, bn254U)
	fu3 := fp12Exp(fu2, bn254U)

	fp1 := fp12Frob(f)
	fp2v := fp12FrobSq(f)
	fp3 := fp12Frob3(f)

	fup := fp12Frob(fu)
	fu2p := fp12Frob(fu2)
	fu3p := fp12Frob(fu3)
	fu2p2 := fp12FrobSq(fu2)

	y0 := fp12Mul(fp12Mul(fp1, fp2v), fp3)
	y1 := fp12Conj(f)
	y2 := fu2p2
	y3 := fp12Conj(fup)
	y4 := fp12Mul(fp12Conj(fu), fp12Conj(fu2p))
	y5 := fp12Conj(fu2)
	y6 := fp12Conj(fp12Mul(fu3, fu3p))

	t0 := fp12Mul(fp12Mul(fp12Sqr(y6), y4), y5)
	t1 := fp12Mul(fp12Mul(y3, y5), t0)
	t0 = fp12Mul(t0, y2)
	t1 = fp12Mul(fp12Sqr(t1), t0)
	t1 = fp12Sqr(t1)
	t0 = fp12Mul(t1, y1)
	t1 = fp12Mul(t1, y0)
	t0 = fp12Mul(fp12Sqr(t0), t1)

	return t0
}

// Pair computes the optimal Ate pairing e(p, q) in GT.
func Pair(p G1, q G2) GT {
	if p.IsIdentity() || q.IsIdentity() {
		return GT{v: fp12One()}
	}
	px, py := p.Affine()
	f := millerLoop(px, py, q)
	return GT{v: finalExp(f)}
}

// PairingCheck reports whether the product of e(g1[i], g2[i]) over all i
// equals 1 in GT -- the multi-pairing form used by set-operation and
// well-formedness verification equations.
func PairingCheck(g1 []G1, g2 []G2) bool {
	if len(g1) != len(g2) || len(g1) == 0 {
		return false
	}
	acc := fp12One()
	for i := range g1 {
		if g1[i].IsIdentity() || g2[i].IsIdentity() {
			continue
		}
		px, py := g1[i].Affine()
		f := millerLoop(px, py, g2[i])
		acc = fp12Mul(acc, f)
	}
	return finalExp(acc).isOne()
}

// Package setop implements the algebraic set-operation proofs (C7): given
// two accumulated sets L and R, prove_op computes Y = L op R together with a
// proof that a verifier can check against the public key alone, and
// verify_op runs that check.
package setop

import (
	"fmt"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/poly"
	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/accum/value"
	"github.com/vchainplus/vchain/curve"
	"github.com/vchainplus/vchain/errs"
	"github.com/vchainplus/vchain/log"
)

// Op identifies which set operation a proof attests to.
type Op int

const (
	Intersect Op = iota
	Union
	Diff
)

func (op Op) String() string {
	switch op {
	case Intersect:
		return "intersect"
	case Union:
		return "union"
	case Diff:
		return "diff"
	default:
		return "unknown"
	}
}

// Proof is the algebraic record a prover emits for one set operation: the
// witness commitment in G1 and its beta-shifted twin, the G2 commitment to
// R's bivariate polynomial and its twin, the r-evaluated commitment to the
// intersection set and its twin (all three pairs feed the
// knowledge-of-exponent checks), and the intersection accumulator every
// operation's identity is expressed in terms of.
type Proof struct {
	Op Op

	WG     curve.G1 // commitment to the witness polynomial W' = poly_a(L)*poly_b(R) - Delta(I)
	WGBeta curve.G1 // beta-shifted commitment, for the KoE check

	BR     curve.G2 // commitment to poly_b(R) evaluated at (S,R)=(s,r)
	BRBeta curve.G2 // beta-shifted commitment, for the KoE check

	// InterR = g^{poly_a(I)(r)}, the r-evaluated half of the intersection
	// commitment: together with H_s^QMax it reintroduces the intersection's
	// S^QMax coefficient into the product-identity check.
	InterR     curve.G1
	InterRBeta curve.G1

	AInter value.Value // accumulator of L ∩ R

	// Trivial is set when either input set was empty, or L == R, in which
	// case the operation short-circuits to a documented trivial proof
	// (see the error-handling design's empty-set tie-breaks).
	Trivial bool
}

// ProveOp implements prove_op: it computes Y = L op R and a proof that AY
// is correct relative to AL and AR.
func ProveOp(op Op, pk *keys.PublicKey, l, r *set.Set) (*set.Set, value.Value, *Proof, error) {
	logger := log.Default().Module("setop").With("op", op.String())

	if l.Len() == 0 || r.Len() == 0 || setsEqual(l, r) {
		return proveTrivial(op, pk, l, r)
	}

	inter := set.Intersect(l, r)
	aInter, err := value.Accumulate(pk, inter)
	if err != nil {
		return nil, value.Value{}, nil, err
	}

	wg, wgBeta, err := commitWitness(pk, l, r)
	if err != nil {
		return nil, value.Value{}, nil, err
	}

	br, brBeta, err := commitPolyB(pk, r)
	if err != nil {
		return nil, value.Value{}, nil, err
	}

	interR, interRBeta, err := commitInterR(pk, inter)
	if err != nil {
		return nil, value.Value{}, nil, err
	}

	var y *set.Set
	switch op {
	case Intersect:
		y = inter
	case Union:
		y = set.Union(l, r)
	case Diff:
		y = set.Diff(l, r)
	default:
		return nil, value.Value{}, nil, fmt.Errorf("%w: unknown op %d", errs.ErrMalformedInput, op)
	}

	ay, err := value.Accumulate(pk, y)
	if err != nil {
		return nil, value.Value{}, nil, err
	}

	logger.Debug("proof constructed", "l_size", l.Len(), "r_size", r.Len(), "y_size", y.Len())

	proof := &Proof{
		Op:         op,
		WG:         wg,
		WGBeta:     wgBeta,
		BR:         br,
		BRBeta:     brBeta,
		InterR:     interR,
		InterRBeta: interRBeta,
		AInter:     aInter,
	}
	return y, ay, proof, nil
}

// grsTableIndex maps a bivariate term's (S-exponent, R-exponent) pair onto
// the (i, j) coordinates of the G_rs / H_rs tables, which are indexed as
// [r-power][s-power]: the R-exponent always selects the row (r-power) and
// the S-exponent always selects the column (s-power), regardless of which
// one is numerically larger.
func grsTableIndex(t poly.Term) (i, j uint64) {
	return t.J, t.I
}

// commitWitness builds W'(S,R) = poly_a(L)*poly_b(R) - Delta(I) and commits
// it (and its beta-shifted twin) via multi-scalar multiplication against
// the sparse G_rs / G_rs^beta tables.
func commitWitness(pk *keys.PublicKey, l, r *set.Set) (curve.G1, curve.G1, error) {
	inter := set.Intersect(l, r)
	pa := poly.PolyA(l)
	pb := poly.PolyB(r, pk.QMax)
	w := poly.Mul(pa, pb)
	w = poly.RemoveIntersectedTerm(w, inter, pk.QMax)

	terms := w.CoeffIterWithIndex()
	scalars := make([]curve.Scalar, 0, len(terms))
	points := make([]curve.G1, 0, len(terms))
	pointsBeta := make([]curve.G1, 0, len(terms))

	for _, t := range terms {
		i, j := grsTableIndex(t.Term)
		g, err := pk.Grs.At(i, j)
		if err != nil {
			return curve.G1{}, curve.G1{}, err
		}
		gBeta, err := pk.GrsBeta.At(i, j)
		if err != nil {
			return curve.G1{}, curve.G1{}, err
		}
		scalars = append(scalars, t.Coef)
		points = append(points, g)
		pointsBeta = append(pointsBeta, gBeta)
	}

	if len(scalars) == 0 {
		return curve.G1Identity(), curve.G1Identity(), nil
	}

	wg, err := curve.MSMG1(scalars, points)
	if err != nil {
		return curve.G1{}, curve.G1{}, err
	}
	wgBeta, err := curve.MSMG1(scalars, pointsBeta)
	if err != nil {
		return curve.G1{}, curve.G1{}, err
	}
	return wg, wgBeta, nil
}

// commitPolyB commits poly_b(R) = sum_{y in R} R^y * S^{qMax-y} on the G2
// side, against H_rs / H_rs^beta, using the same term-to-index convention
// as commitWitness. Pairing A_L1 against this commitment reconstructs
// e(g,h)^{poly_a(L)(s) * poly_b(R)(s,r)} on the verifier's side of the
// product-identity check.
func commitPolyB(pk *keys.PublicKey, r *set.Set) (curve.G2, curve.G2, error) {
	pb := poly.PolyB(r, pk.QMax)
	terms := pb.CoeffIterWithIndex()
	scalars := make([]curve.Scalar, 0, len(terms))
	points := make([]curve.G2, 0, len(terms))
	pointsBeta := make([]curve.G2, 0, len(terms))

	for _, t := range terms {
		i, j := grsTableIndex(t.Term)
		h, err := pk.Hrs.At(i, j)
		if err != nil {
			return curve.G2{}, curve.G2{}, err
		}
		hBeta, err := pk.HrsBeta.At(i, j)
		if err != nil {
			return curve.G2{}, curve.G2{}, err
		}
		scalars = append(scalars, t.Coef)
		points = append(points, h)
		pointsBeta = append(pointsBeta, hBeta)
	}

	if len(scalars) == 0 {
		return curve.G2Identity(), curve.G2Identity(), nil
	}

	br, err := curve.MSMG2(scalars, points)
	if err != nil {
		return curve.G2{}, curve.G2{}, err
	}
	brBeta, err := curve.MSMG2(scalars, pointsBeta)
	if err != nil {
		return curve.G2{}, curve.G2{}, err
	}
	return br, brBeta, nil
}

// commitInterR builds InterR = g^{poly_a(inter)(r)} = sum_{x in inter}
// G_rs[x][0] (and its beta-shifted twin), the r-evaluated half of the
// intersection commitment the product-identity check pairs against
// H_s^QMax to reintroduce Delta(I) = S^QMax * poly_a(I)(R).
func commitInterR(pk *keys.PublicKey, inter *set.Set) (curve.G1, curve.G1, error) {
	elems := inter.Elements()
	if len(elems) == 0 {
		return curve.G1Identity(), curve.G1Identity(), nil
	}

	acc := curve.G1Identity()
	accBeta := curve.G1Identity()
	for _, x := range elems {
		g, err := pk.Grs.At(x, 0)
		if err != nil {
			return curve.G1{}, curve.G1{}, err
		}
		gBeta, err := pk.GrsBeta.At(x, 0)
		if err != nil {
			return curve.G1{}, curve.G1{}, err
		}
		acc = acc.Add(g)
		accBeta = accBeta.Add(gBeta)
	}
	return acc, accBeta, nil
}

// VerifyOp implements verify_op: it checks the proof's algebraic equations
// against AL, AR, AY, and the public key alone.
func VerifyOp(op Op, pk *keys.PublicKey, al, ar, ay value.Value, proof *Proof) error {
	if proof == nil {
		return fmt.Errorf("%w: nil proof", errs.ErrMalformedInput)
	}
	if proof.Op != op {
		return fmt.Errorf("%w: proof is for op %s, expected %s", errs.ErrProofInvalid, proof.Op, op)
	}

	if !ay.WellFormed() {
		return fmt.Errorf("%w: A_Y fails well-formedness", errs.ErrProofInvalid)
	}

	if proof.Trivial {
		return verifyTrivial(op, al, ar, ay)
	}

	if !proof.AInter.WellFormed() {
		return fmt.Errorf("%w: A_{L intersect R} fails well-formedness", errs.ErrProofInvalid)
	}

	if !knowledgeOfExponentHolds(pk, proof.WG, proof.WGBeta) {
		return fmt.Errorf("%w: beta knowledge-of-exponent check failed on W_G", errs.ErrProofInvalid)
	}
	if !knowledgeOfExponentG2Holds(pk, proof.BR, proof.BRBeta) {
		return fmt.Errorf("%w: beta knowledge-of-exponent check failed on B_R", errs.ErrProofInvalid)
	}
	if !knowledgeOfExponentHolds(pk, proof.InterR, proof.InterRBeta) {
		return fmt.Errorf("%w: beta knowledge-of-exponent check failed on Inter_R", errs.ErrProofInvalid)
	}

	// The product identity poly_a(L)(S)*poly_b(R)(S,R), evaluated at
	// (S,R)=(s,r), splits as W'(s,r) + Delta(I)(s,r) where W' is the
	// witness committed in W_G and Delta(I)(s,r) = s^QMax*poly_a(I)(r).
	// A_L1 paired against B_R reconstructs the same product from the L/R
	// side; W_G paired against h, times Inter_R paired against H_s^QMax,
	// reconstructs it from the witness/intersection side.
	lhs := curve.Pair(al.A1, proof.BR)
	rhs := curve.Pair(proof.WG, curve.G2Generator()).Mul(curve.Pair(proof.InterR, pk.HsExt))
	if !lhs.Equal(rhs) {
		return fmt.Errorf("%w: product identity pairing check failed", errs.ErrProofInvalid)
	}

	switch op {
	case Intersect:
		if !ay.A1.Equal(proof.AInter.A1) || !ay.A2.Equal(proof.AInter.A2) {
			return fmt.Errorf("%w: A_Y does not match the attested intersection", errs.ErrProofInvalid)
		}
	case Union:
		expected := value.Sub(value.Add(al, ar), proof.AInter)
		if !value.Equal(ay, expected) {
			return fmt.Errorf("%w: A_Y != A_L + A_R - A_{L intersect R}", errs.ErrProofInvalid)
		}
	case Diff:
		expected := value.Add(ay, proof.AInter)
		if !value.Equal(al, expected) {
			return fmt.Errorf("%w: A_L != A_Y + A_{L intersect R}", errs.ErrProofInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown op %d", errs.ErrMalformedInput, op)
	}

	return nil
}

// knowledgeOfExponentHolds runs e(X, h_b) == e(X^beta, h) for a G1
// commitment X and its claimed beta-shifted twin.
func knowledgeOfExponentHolds(pk *keys.PublicKey, x, xBeta curve.G1) bool {
	if x.IsIdentity() && xBeta.IsIdentity() {
		return true
	}
	lhs := curve.Pair(x, pk.Hb)
	rhs := curve.Pair(xBeta, curve.G2Generator())
	return lhs.Equal(rhs)
}

// knowledgeOfExponentG2Holds is the G2 analogue of knowledgeOfExponentHolds,
// run as e(g_b, X) == e(g, X^beta) since the shifted exponent now lives on
// the G2 side.
func knowledgeOfExponentG2Holds(pk *keys.PublicKey, x, xBeta curve.G2) bool {
	if x.IsIdentity() && xBeta.IsIdentity() {
		return true
	}
	lhs := curve.Pair(pk.Gb, x)
	rhs := curve.Pair(curve.G1Generator(), xBeta)
	return lhs.Equal(rhs)
}

func setsEqual(l, r *set.Set) bool {
	return set.Equal(l, r)
}

// proveTrivial handles the documented edge cases: an empty input side, or
// L == R, both of which admit a proof with an identity witness.
func proveTrivial(op Op, pk *keys.PublicKey, l, r *set.Set) (*set.Set, value.Value, *Proof, error) {
	var y *set.Set
	switch op {
	case Intersect:
		y = set.Intersect(l, r)
	case Union:
		y = set.Union(l, r)
	case Diff:
		y = set.Diff(l, r)
	default:
		return nil, value.Value{}, nil, fmt.Errorf("%w: unknown op %d", errs.ErrMalformedInput, op)
	}
	ay, err := value.Accumulate(pk, y)
	if err != nil {
		return nil, value.Value{}, nil, err
	}
	inter := set.Intersect(l, r)
	aInter, err := value.Accumulate(pk, inter)
	if err != nil {
		return nil, value.Value{}, nil, err
	}
	proof := &Proof{
		Op:         op,
		WG:         curve.G1Identity(),
		WGBeta:     curve.G1Identity(),
		BR:         curve.G2Identity(),
		BRBeta:     curve.G2Identity(),
		InterR:     curve.G1Identity(),
		InterRBeta: curve.G1Identity(),
		AInter:     aInter,
		Trivial:    true,
	}
	return y, ay, proof, nil
}

func verifyTrivial(op Op, al, ar, ay value.Value) error {
	switch op {
	case Intersect:
		if al.A1.IsIdentity() || ar.A1.IsIdentity() {
			if !ay.A1.IsIdentity() {
				return fmt.Errorf("%w: expected identity A_Y for intersection with an empty side", errs.ErrProofInvalid)
			}
			return nil
		}
		// L == R.
		if !value.Equal(ay, al) {
			return fmt.Errorf("%w: expected A_Y == A_L for intersection of equal sets", errs.ErrProofInvalid)
		}
		return nil
	case Union:
		switch {
		case al.A1.IsIdentity():
			if !value.Equal(ay, ar) {
				return fmt.Errorf("%w: expected A_Y == A_R for union with empty L", errs.ErrProofInvalid)
			}
		case ar.A1.IsIdentity():
			if !value.Equal(ay, al) {
				return fmt.Errorf("%w: expected A_Y == A_L for union with empty R", errs.ErrProofInvalid)
			}
		default:
			if !value.Equal(ay, al) {
				return fmt.Errorf("%w: expected A_Y == A_L for union of equal sets", errs.ErrProofInvalid)
			}
		}
		return nil
	case Diff:
		switch {
		case al.A1.IsIdentity():
			if !ay.A1.IsIdentity() {
				return fmt.Errorf("%w: expected identity A_Y for difference of an empty L", errs.ErrProofInvalid)
			}
		case ar.A1.IsIdentity():
			if !value.Equal(ay, al) {
				return fmt.Errorf("%w: expected A_Y == A_L for difference with empty R", errs.ErrProofInvalid)
			}
		default:
			if !ay.A1.IsIdentity() {
				return fmt.Errorf("%w: expected identity A_Y for difference of equal sets", errs.ErrProofInvalid)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown op %d", errs.ErrMalformedInput, op)
	}
}

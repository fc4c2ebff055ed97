// Package poly implements the sparse bivariate polynomial engine over the
// scalar field F_r used to build set-operation witness polynomials. A
// polynomial is a finite sum of monomials c_{i,j} * S^i * R^j.
package poly

import (
	"sort"

	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/curve"
)

// Term is a single (i, j) exponent pair, used to key the sparse coefficient
// map and as the deterministic iteration order for MSM input.
type Term struct {
	I, J uint64
}

// Poly is a sparse bivariate polynomial: a map from exponent pair to
// non-zero coefficient in F_r. A missing entry is implicitly zero.
type Poly struct {
	coeffs map[Term]curve.Scalar
}

// New returns the zero polynomial.
func New() *Poly {
	return &Poly{coeffs: make(map[Term]curve.Scalar)}
}

// Coeff returns c_{i,j}, or the zero scalar if the term is absent.
func (p *Poly) Coeff(i, j uint64) curve.Scalar {
	if c, ok := p.coeffs[Term{i, j}]; ok {
		return c
	}
	return curve.ScalarFromUint64(0)
}

// addTerm adds c to the existing coefficient at (i, j), removing the entry
// entirely if the result is zero so len(coeffs) always reflects the true
// number of non-zero terms.
func (p *Poly) addTerm(i, j uint64, c curve.Scalar) {
	t := Term{i, j}
	sum := p.Coeff(i, j).Add(c)
	if sum.IsZero() {
		delete(p.coeffs, t)
		return
	}
	p.coeffs[t] = sum
}

// NumTerms reports the number of non-zero monomials.
func (p *Poly) NumTerms() int { return len(p.coeffs) }

// PolyA builds poly_a(X) = sum_{x in X} S^x, the univariate-in-S encoding
// of a set used on the left-hand side of the union/intersection identity.
func PolyA(x *set.Set) *Poly {
	p := New()
	for _, e := range x.Elements() {
		p.addTerm(e, 0, curve.ScalarFromUint64(1))
	}
	return p
}

// PolyB builds poly_b(X) = sum_{x in X} R^x * S^(qMax - x), the bivariate
// encoding used on the right-hand side of the union/intersection identity.
func PolyB(x *set.Set, qMax uint64) *Poly {
	p := New()
	for _, e := range x.Elements() {
		p.addTerm(qMax-e, e, curve.ScalarFromUint64(1))
	}
	return p
}

// Add returns p + q.
func Add(p, q *Poly) *Poly {
	r := New()
	for t, c := range p.coeffs {
		r.addTerm(t.I, t.J, c)
	}
	for t, c := range q.coeffs {
		r.addTerm(t.I, t.J, c)
	}
	return r
}

// Sub returns p - q.
func Sub(p, q *Poly) *Poly {
	r := New()
	for t, c := range p.coeffs {
		r.addTerm(t.I, t.J, c)
	}
	for t, c := range q.coeffs {
		r.addTerm(t.I, t.J, c.Neg())
	}
	return r
}

// ScalarMul returns c * p.
func ScalarMul(c curve.Scalar, p *Poly) *Poly {
	r := New()
	for t, coeff := range p.coeffs {
		r.addTerm(t.I, t.J, coeff.Mul(c))
	}
	return r
}

// Mul returns the Cauchy product p * q: every pair of terms (i1,j1) in p
// and (i2,j2) in q contributes c1*c2 to term (i1+i2, j1+j2).
func Mul(p, q *Poly) *Poly {
	r := New()
	for t1, c1 := range p.coeffs {
		for t2, c2 := range q.coeffs {
			r.addTerm(t1.I+t2.I, t1.J+t2.J, c1.Mul(c2))
		}
	}
	return r
}

// RemoveIntersectedTerm subtracts, from p, the monomials at (qMax, x) for
// every x in the intersection set i -- the Delta(I) term the set-operation
// proofs cancel out of poly_a(L)*poly_b(R) before committing the witness.
// In that product, a pair (x in L, y in R) contributes to S^{x+qMax-y}R^y;
// it lands on the pure-S^{qMax} monomial exactly when x = y, i.e. for every
// element the two sets share.
func RemoveIntersectedTerm(p *Poly, i *set.Set, qMax uint64) *Poly {
	r := New()
	for t, c := range p.coeffs {
		r.addTerm(t.I, t.J, c)
	}
	for _, x := range i.Elements() {
		t := Term{I: qMax, J: x}
		if c, ok := r.coeffs[t]; ok {
			r.addTerm(t.I, t.J, c.Neg())
		}
	}
	return r
}

// CoeffIterWithIndex yields ((i,j), c_{i,j}) for every non-zero term, in a
// deterministic order (ascending i, then j) so callers building MSM input
// vectors get reproducible results.
func (p *Poly) CoeffIterWithIndex() []struct {
	Term Term
	Coef curve.Scalar
} {
	out := make([]struct {
		Term Term
		Coef curve.Scalar
	}, 0, len(p.coeffs))
	for t, c := range p.coeffs {
		out = append(out, struct {
			Term Term
			Coef curve.Scalar
		}{Term: t, Coef: c})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Term.I != out[b].Term.I {
			return out[a].Term.I < out[b].Term.I
		}
		return out[a].Term.J < out[b].Term.J
	})
	return out
}

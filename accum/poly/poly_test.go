package poly

import (
	"testing"

	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/curve"
)

func TestPolyAHasOneTermPerElement(t *testing.T) {
	x, _ := set.New(16, 1, 3, 5)
	p := PolyA(x)
	if p.NumTerms() != 3 {
		t.Fatalf("NumTerms = %d, want 3", p.NumTerms())
	}
	if !p.Coeff(3, 0).Equal(curve.ScalarFromUint64(1)) {
		t.Fatal("poly_a missing S^3 term")
	}
}

func TestPolyBExponentShift(t *testing.T) {
	x, _ := set.New(16, 5)
	p := PolyB(x, 16)
	if !p.Coeff(11, 5).Equal(curve.ScalarFromUint64(1)) {
		t.Fatal("poly_b(X) missing R^5 S^11 term for qMax=16, x=5")
	}
}

func TestAddSubInverse(t *testing.T) {
	x, _ := set.New(16, 1, 2, 3)
	p := PolyA(x)
	sum := Add(p, p)
	diff := Sub(sum, p)
	if diff.NumTerms() != p.NumTerms() {
		t.Fatal("(p+p)-p should equal p")
	}
	for _, e := range x.Elements() {
		if !diff.Coeff(e, 0).Equal(p.Coeff(e, 0)) {
			t.Fatalf("(p+p)-p diverges at term %d", e)
		}
	}
}

func TestScalarMulZeroClearsAllTerms(t *testing.T) {
	x, _ := set.New(16, 1, 2, 3)
	p := PolyA(x)
	zeroed := ScalarMul(curve.ScalarFromUint64(0), p)
	if zeroed.NumTerms() != 0 {
		t.Fatalf("scalar_mul by zero left %d terms", zeroed.NumTerms())
	}
}

func TestMulExponentsAdd(t *testing.T) {
	p := New()
	q := New()
	p.addTerm(2, 3, curve.ScalarFromUint64(2))
	q.addTerm(1, 1, curve.ScalarFromUint64(5))

	prod := Mul(p, q)
	if !prod.Coeff(3, 4).Equal(curve.ScalarFromUint64(10)) {
		t.Fatal("Mul should place 2*5=10 at exponent (3,4)")
	}
}

func TestRemoveIntersectedTermCancelsSharedMonomial(t *testing.T) {
	l, _ := set.New(16, 1, 3, 5)
	r, _ := set.New(16, 3, 5, 7)
	i := setIntersect(l, r)

	pa := PolyA(l)
	pb := PolyB(r, 16)
	w := Mul(pa, pb)

	before := w.NumTerms()
	cleared := RemoveIntersectedTerm(w, i, 16)
	if cleared.NumTerms() >= before {
		t.Fatal("RemoveIntersectedTerm should cancel at least one shared monomial")
	}
}

func setIntersect(a, b *set.Set) *set.Set {
	return set.Intersect(a, b)
}

func TestCoeffIterWithIndexIsSortedAndComplete(t *testing.T) {
	x, _ := set.New(16, 5, 2, 9)
	p := PolyA(x)
	entries := p.CoeffIterWithIndex()
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Term.I > entries[i].Term.I {
			t.Fatal("CoeffIterWithIndex is not sorted ascending by I")
		}
	}
}

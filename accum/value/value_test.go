package value

import (
	"testing"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/set"
)

func TestAccumulateEmptySetIsIdentity(t *testing.T) {
	_, pk, err := keys.GenKeys(8)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	empty := set.Empty()
	v, err := Accumulate(pk, empty)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	if !Equal(v, Identity()) {
		t.Fatal("accumulator of empty set should be the identity")
	}
	if !v.WellFormed() {
		t.Fatal("identity accumulator must satisfy the well-formedness invariant")
	}
}

func TestAccumulateWellFormed(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	x, _ := set.New(16, 1, 3, 5, 9)
	v, err := Accumulate(pk, x)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	if !v.WellFormed() {
		t.Fatal("accumulator of a non-empty set must satisfy e(A1,h) == e(g,A2)")
	}
}

func TestHomomorphismOfDisjointUnion(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	l, _ := set.New(16, 1, 2)
	r, _ := set.New(16, 3, 4)
	u := set.Union(l, r)

	al, err := Accumulate(pk, l)
	if err != nil {
		t.Fatalf("Accumulate(l): %v", err)
	}
	ar, err := Accumulate(pk, r)
	if err != nil {
		t.Fatalf("Accumulate(r): %v", err)
	}
	au, err := Accumulate(pk, u)
	if err != nil {
		t.Fatalf("Accumulate(union): %v", err)
	}

	if !Equal(au, Add(al, ar)) {
		t.Fatal("A_{L union R} should equal A_L + A_R when L and R are disjoint")
	}
}

func TestAccumulateRejectsOutOfUniverse(t *testing.T) {
	_, pk, err := keys.GenKeys(4)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	// Build the set against a larger universe than the key supports so the
	// out-of-range id survives set construction and is caught by Accumulate.
	x, _ := set.New(100, 50)
	if _, err := Accumulate(pk, x); err == nil {
		t.Fatal("expected out-of-universe error")
	}
}

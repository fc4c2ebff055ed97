package setop

import (
	"testing"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/accum/value"
	"github.com/vchainplus/vchain/curve"
)

// TestScenarioS1Intersection matches the S1 scenario: q=16, L={1,3,5},
// R={3,5,7}, op=intersect, expecting Y={3,5} and an accepted proof.
func TestScenarioS1Intersection(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	l, _ := set.New(16, 1, 3, 5)
	r, _ := set.New(16, 3, 5, 7)

	y, ay, proof, err := ProveOp(Intersect, pk, l, r)
	if err != nil {
		t.Fatalf("ProveOp: %v", err)
	}
	want, _ := set.New(16, 3, 5)
	if !set.Equal(y, want) {
		t.Fatalf("Y = %v, want {3,5}", y.Elements())
	}

	al, err := value.Accumulate(pk, l)
	if err != nil {
		t.Fatalf("Accumulate(l): %v", err)
	}
	ar, err := value.Accumulate(pk, r)
	if err != nil {
		t.Fatalf("Accumulate(r): %v", err)
	}

	if err := VerifyOp(Intersect, pk, al, ar, ay, proof); err != nil {
		t.Fatalf("VerifyOp rejected a valid S1 proof: %v", err)
	}
}

// TestScenarioS2UnionWithEmptyRight matches S2: q=16, L={1,2,3}, R={}, and
// expects Y=L, A_Y=A_L, verify accepts.
func TestScenarioS2UnionWithEmptyRight(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	l, _ := set.New(16, 1, 2, 3)
	r := set.Empty()

	y, ay, proof, err := ProveOp(Union, pk, l, r)
	if err != nil {
		t.Fatalf("ProveOp: %v", err)
	}
	if !set.Equal(y, l) {
		t.Fatalf("Y = %v, want %v", y.Elements(), l.Elements())
	}

	al, err := value.Accumulate(pk, l)
	if err != nil {
		t.Fatalf("Accumulate(l): %v", err)
	}
	if !value.Equal(ay, al) {
		t.Fatal("A_Y should equal A_L when unioning with the empty set")
	}
	ar, err := value.Accumulate(pk, r)
	if err != nil {
		t.Fatalf("Accumulate(r): %v", err)
	}
	if err := VerifyOp(Union, pk, al, ar, ay, proof); err != nil {
		t.Fatalf("VerifyOp rejected a valid S2 proof: %v", err)
	}
}

// TestScenarioS3DiffOfEqualSets matches S3: q=16, L=R={1,2,3}, op=diff,
// expecting Y=empty, A_Y=identity, verify accepts.
func TestScenarioS3DiffOfEqualSets(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	l, _ := set.New(16, 1, 2, 3)
	r, _ := set.New(16, 1, 2, 3)

	y, ay, proof, err := ProveOp(Diff, pk, l, r)
	if err != nil {
		t.Fatalf("ProveOp: %v", err)
	}
	if y.Len() != 0 {
		t.Fatalf("Y = %v, want empty", y.Elements())
	}
	if !value.Equal(ay, value.Identity()) {
		t.Fatal("A_Y should be the identity for the difference of equal sets")
	}

	al, err := value.Accumulate(pk, l)
	if err != nil {
		t.Fatalf("Accumulate(l): %v", err)
	}
	ar, err := value.Accumulate(pk, r)
	if err != nil {
		t.Fatalf("Accumulate(r): %v", err)
	}
	if err := VerifyOp(Diff, pk, al, ar, ay, proof); err != nil {
		t.Fatalf("VerifyOp rejected a valid S3 proof: %v", err)
	}
}

// TestScenarioS4TamperedProofRejected matches S4: flipping the tampered
// A_Y (standing in for a corrupted proof byte, since Proof carries no raw
// byte buffer pre-serialization) must cause VerifyOp to reject.
func TestScenarioS4TamperedProofRejected(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	l, _ := set.New(16, 1, 3, 5)
	r, _ := set.New(16, 3, 5, 7)

	_, ay, proof, err := ProveOp(Intersect, pk, l, r)
	if err != nil {
		t.Fatalf("ProveOp: %v", err)
	}
	al, _ := value.Accumulate(pk, l)
	ar, _ := value.Accumulate(pk, r)

	tampered := value.Value{A1: ay.A1.Add(curve.G1Generator()), A2: ay.A2}
	if err := VerifyOp(Intersect, pk, al, ar, tampered, proof); err == nil {
		t.Fatal("expected VerifyOp to reject a tampered A_Y")
	}
}

func TestVerifyOpRejectsWrongOpTag(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	l, _ := set.New(16, 1, 3)
	r, _ := set.New(16, 3, 7)

	_, ay, proof, err := ProveOp(Intersect, pk, l, r)
	if err != nil {
		t.Fatalf("ProveOp: %v", err)
	}
	al, _ := value.Accumulate(pk, l)
	ar, _ := value.Accumulate(pk, r)

	if err := VerifyOp(Union, pk, al, ar, ay, proof); err == nil {
		t.Fatal("expected VerifyOp to reject a proof tagged for the wrong op")
	}
}

package index

import (
	"context"
	"testing"

	"github.com/vchainplus/vchain/accum/keys"
)

func TestMemIndexKeywordLookup(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	idx := NewMemIndex(pk)
	idx.Put(1, "a", 1, 3, 5)

	res, err := idx.Lookup(context.Background(), 1, Predicate{Keyword: "a"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res.Set.Len() != 3 || !res.Set.Contains(3) {
		t.Fatalf("unexpected result set: %v", res.Set.Elements())
	}
	if len(res.Digest) == 0 {
		t.Fatal("expected non-empty digest")
	}
}

func TestMemIndexRangeLookup(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	idx := NewMemIndex(pk)
	idx.Put(1, "a", 1, 3, 5, 9)

	res, err := idx.Lookup(context.Background(), 1, Predicate{IsRange: true, Range: [2]uint64{2, 6}})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res.Set.Len() != 2 || !res.Set.Contains(3) || !res.Set.Contains(5) {
		t.Fatalf("unexpected range result: %v", res.Set.Elements())
	}
}

func TestMemIndexUniverseLookup(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	idx := NewMemIndex(pk)
	idx.Put(1, "a", 1, 3)
	idx.Put(1, "b", 3, 5)

	res, err := idx.Lookup(context.Background(), 1, Predicate{Universe: true})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if res.Set.Len() != 3 {
		t.Fatalf("universe len = %d, want 3", res.Set.Len())
	}
}

func TestLeafDigestDeterministicAndSensitiveToInputs(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	idx := NewMemIndex(pk)
	idx.Put(1, "a", 1, 3, 5)
	idx.Put(2, "a", 1, 3, 5)

	r1, err := idx.Lookup(context.Background(), 1, Predicate{Keyword: "a"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	r1Again, err := idx.Lookup(context.Background(), 1, Predicate{Keyword: "a"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	r2, err := idx.Lookup(context.Background(), 2, Predicate{Keyword: "a"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if string(r1.Digest) != string(r1Again.Digest) {
		t.Fatal("digest not deterministic for identical lookups")
	}
	if string(r1.Digest) == string(r2.Digest) {
		t.Fatal("digest should differ across blocks despite identical object ids")
	}
}

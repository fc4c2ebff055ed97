package lightclient

import (
	"context"
	"testing"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/index"
	"github.com/vchainplus/vchain/query"
)

func TestVerifyOneAcceptsValidVO(t *testing.T) {
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	idx := index.NewMemIndex(pk)
	idx.Put(1, "a", 1, 3, 5)
	idx.Put(1, "b", 3, 5, 7)

	spec := query.QuerySpec{
		StartBlk: 1,
		EndBlk:   1,
		Keyword:  query.And{Children: []query.Expr{query.Input{Word: "a"}, query.Input{Word: "b"}}},
	}
	root, err := query.Build(spec, query.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vo, err := query.Evaluate(context.Background(), root, idx, pk)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	v := New(pk, 2)
	result, err := v.VerifyOne(vo)
	if err != nil {
		t.Fatalf("VerifyOne rejected a valid VO: %v", err)
	}
	if result.Len() != 2 {
		t.Fatalf("result len = %d, want 2", result.Len())
	}
}

func TestVerifyOneRejectsNilVO(t *testing.T) {
	_, pk, err := keys.GenKeys(8)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	v := New(pk, 1)
	if _, err := v.VerifyOne(nil); err == nil {
		t.Fatal("expected error for nil VO")
	}
}

package query

import (
	"context"
	"testing"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/index"
)

func buildTestIndex(t *testing.T) (*keys.PublicKey, *index.MemIndex) {
	t.Helper()
	_, pk, err := keys.GenKeys(16)
	if err != nil {
		t.Fatalf("GenKeys: %v", err)
	}
	idx := index.NewMemIndex(pk)
	// Matches the S5/S6 scenarios: object 1 at block 1 with keywords a,b;
	// object 6 at block 1 with keyword a; object 4 at block 2 with a,e.
	idx.Put(1, "a", 1, 6)
	idx.Put(1, "b", 1)
	idx.Put(2, "a", 4)
	idx.Put(2, "e", 4)
	return pk, idx
}

func groundTruth() map[uint64]map[string][]uint64 {
	return map[uint64]map[string][]uint64{
		1: {"a": {1, 6}, "b": {1}},
		2: {"a": {4}, "e": {4}},
	}
}

// TestScenarioS5KeywordAAndB matches S5: keyword "a AND b" over blocks
// [1,2] should return the object at block 1 with id 1.
func TestScenarioS5KeywordAAndB(t *testing.T) {
	pk, idx := buildTestIndex(t)
	spec := QuerySpec{
		StartBlk: 1,
		EndBlk:   2,
		Keyword:  And{Children: []Expr{Input{Word: "a"}, Input{Word: "b"}}},
	}

	root, err := Build(spec, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vo, err := Evaluate(context.Background(), root, idx, pk)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	got := vo.Results[root.Key()].Set

	want, _ := set.New(16, 1)
	if !set.Equal(got, want) {
		t.Fatalf("result = %v, want {1}", got.Elements())
	}
	if err := Verify(vo, pk); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// TestScenarioS6KeywordAAndNotE matches S6: "a AND NOT e" over blocks
// [1,2], with no range filter, should return objects 1 and 6 (both have
// keyword a, neither has e).
func TestScenarioS6KeywordAAndNotE(t *testing.T) {
	pk, idx := buildTestIndex(t)
	spec := QuerySpec{
		StartBlk: 1,
		EndBlk:   2,
		Keyword:  And{Children: []Expr{Input{Word: "a"}, Not{Child: Input{Word: "e"}}}},
	}

	root, err := Build(spec, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vo, err := Evaluate(context.Background(), root, idx, pk)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	got := vo.Results[root.Key()].Set

	want, _ := set.New(16, 1, 6)
	if !set.Equal(got, want) {
		t.Fatalf("result = %v, want {1,6}", got.Elements())
	}
	if err := Verify(vo, pk); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestPlannerEquivalenceToReferenceInterpreter(t *testing.T) {
	pk, idx := buildTestIndex(t)
	spec := QuerySpec{
		StartBlk: 1,
		EndBlk:   2,
		Keyword:  Or{Children: []Expr{Input{Word: "b"}, Input{Word: "e"}}},
	}

	for _, opts := range []Options{{}, {Rewrite: true}, {PruneEmpties: true}, {Rewrite: true, PruneEmpties: true}} {
		root, err := Build(spec, opts)
		if err != nil {
			t.Fatalf("Build(%+v): %v", opts, err)
		}
		vo, err := Evaluate(context.Background(), root, idx, pk)
		if err != nil {
			t.Fatalf("Evaluate(%+v): %v", opts, err)
		}
		planned := vo.Results[root.Key()].Set

		reference, err := ReferenceEval(spec, groundTruth(), 16)
		if err != nil {
			t.Fatalf("ReferenceEval: %v", err)
		}

		if !set.Equal(planned, reference) {
			t.Fatalf("opts=%+v: planned=%v reference=%v", opts, planned.Elements(), reference.Elements())
		}
	}
}

func TestPushNegationOnlyWrapsLiterals(t *testing.T) {
	e := Not{Child: And{Children: []Expr{Input{Word: "a"}, Input{Word: "b"}}}}
	got := PushNegation(e)
	or, ok := got.(Or)
	if !ok {
		t.Fatalf("expected top-level Or after De Morgan, got %T", got)
	}
	for _, c := range or.Children {
		if _, ok := c.(Not); !ok {
			t.Fatalf("expected every child to be a Not-of-literal, got %T", c)
		}
	}
}

func TestBuildRejectsInvertedBlockRange(t *testing.T) {
	spec := QuerySpec{StartBlk: 5, EndBlk: 1, Keyword: Input{Word: "a"}}
	if _, err := Build(spec, Options{}); err == nil {
		t.Fatal("expected error for start_blk > end_blk")
	}
}

func TestCommonSubexpressionFolding(t *testing.T) {
	spec := QuerySpec{
		StartBlk: 1,
		EndBlk:   1,
		Keyword: Or{Children: []Expr{
			And{Children: []Expr{Input{Word: "a"}, Input{Word: "b"}}},
			And{Children: []Expr{Input{Word: "a"}, Input{Word: "b"}}},
		}},
	}
	root, err := Build(spec, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	op := root.(*OpNode)
	if op.Left != op.Right {
		t.Fatal("identical AND subtrees should be folded onto the same node")
	}
}

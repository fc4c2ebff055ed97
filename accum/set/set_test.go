package set

import "testing"

func TestNewRejectsOutOfUniverse(t *testing.T) {
	if _, err := New(4, 0, 1, 4); err == nil {
		t.Fatal("expected out-of-universe error for id == q_max")
	}
}

func TestUnionIntersectDiff(t *testing.T) {
	l, _ := New(16, 1, 3, 5)
	r, _ := New(16, 3, 5, 7)

	i := Intersect(l, r)
	if !Equal(mustSet(t, 16, 3, 5), i) {
		t.Fatalf("intersection = %v, want {3,5}", i.Elements())
	}

	u := Union(l, r)
	if !Equal(mustSet(t, 16, 1, 3, 5, 7), u) {
		t.Fatalf("union = %v, want {1,3,5,7}", u.Elements())
	}

	d := Diff(l, r)
	if !Equal(mustSet(t, 16, 1), d) {
		t.Fatalf("diff = %v, want {1}", d.Elements())
	}
}

func TestDisjointIntersectionIsEmpty(t *testing.T) {
	l, _ := New(16, 1, 2)
	r, _ := New(16, 3, 4)
	if Intersect(l, r).Len() != 0 {
		t.Fatal("expected empty intersection for disjoint sets")
	}
}

func mustSet(t *testing.T, qMax uint64, ids ...uint64) *Set {
	t.Helper()
	s, err := New(qMax, ids...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

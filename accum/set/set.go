// Package set implements the finite sets of non-negative integer element
// ids that the accumulator commits to.
package set

import (
	"fmt"
	"sort"

	"github.com/vchainplus/vchain/errs"
)

// Set is an immutable-once-built collection of distinct element ids, each
// less than the universe size q_max it was validated against.
type Set struct {
	m map[uint64]struct{}
}

// New builds a Set from a list of ids, validating each against qMax.
func New(qMax uint64, ids ...uint64) (*Set, error) {
	s := &Set{m: make(map[uint64]struct{}, len(ids))}
	for _, id := range ids {
		if id >= qMax {
			return nil, fmt.Errorf("%w: id %d >= q_max %d", errs.ErrOutOfUniverse, id, qMax)
		}
		s.m[id] = struct{}{}
	}
	return s, nil
}

// Empty returns the empty set.
func Empty() *Set {
	return &Set{m: make(map[uint64]struct{})}
}

// Len returns the cardinality of s.
func (s *Set) Len() int { return len(s.m) }

// Contains reports whether x is a member of s.
func (s *Set) Contains(x uint64) bool {
	_, ok := s.m[x]
	return ok
}

// Elements returns the members of s in ascending order.
func (s *Set) Elements() []uint64 {
	out := make([]uint64, 0, len(s.m))
	for x := range s.m {
		out = append(out, x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union returns a set-theoretic union.
func Union(a, b *Set) *Set {
	out := &Set{m: make(map[uint64]struct{}, len(a.m)+len(b.m))}
	for x := range a.m {
		out.m[x] = struct{}{}
	}
	for x := range b.m {
		out.m[x] = struct{}{}
	}
	return out
}

// Intersect returns a set-theoretic intersection.
func Intersect(a, b *Set) *Set {
	small, big := a, b
	if len(b.m) < len(a.m) {
		small, big = b, a
	}
	out := &Set{m: make(map[uint64]struct{})}
	for x := range small.m {
		if _, ok := big.m[x]; ok {
			out.m[x] = struct{}{}
		}
	}
	return out
}

// Diff returns a set-theoretic difference a \ b.
func Diff(a, b *Set) *Set {
	out := &Set{m: make(map[uint64]struct{}, len(a.m))}
	for x := range a.m {
		if _, ok := b.m[x]; !ok {
			out.m[x] = struct{}{}
		}
	}
	return out
}

// Equal reports whether a and b contain exactly the same elements.
func Equal(a, b *Set) bool {
	if len(a.m) != len(b.m) {
		return false
	}
	for x := range a.m {
		if _, ok := b.m[x]; !ok {
			return false
		}
	}
	return true
}

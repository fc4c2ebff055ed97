// Package value implements the accumulator value: a constant-size
// commitment pair (A1 in G1, A2 in G2) to a set, additively homomorphic in
// the set-symmetric-difference sense.
package value

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/curve"
	"github.com/vchainplus/vchain/errs"
)

func outOfUniverse(x, qMax uint64) error {
	return fmt.Errorf("%w: id %d >= q_max %d", errs.ErrOutOfUniverse, x, qMax)
}

// Value is the accumulator commitment A = (A1, A2). A1 = prod g^{s^x} over
// x in the committed set; A2 is the matching G2 commitment. The pair
// satisfies e(A1, h) = e(g, A2) whenever it was built by Accumulate or by
// Add/Sub of well-formed values.
type Value struct {
	A1 curve.G1
	A2 curve.G2
}

// Identity returns the accumulator of the empty set: the identity element
// in both groups.
func Identity() Value {
	return Value{A1: curve.G1Identity(), A2: curve.G2Identity()}
}

// Accumulate implements cal_acc_pk: it computes A1 = prod_{x in X} G_s[x]
// and A2 = prod_{x in X} H_s[x] via a parallel reduction over the set's
// elements, since group addition is associative and commutative.
func Accumulate(pk *keys.PublicKey, x *set.Set) (Value, error) {
	elems := x.Elements()
	if len(elems) == 0 {
		return Identity(), nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(elems) {
		workers = len(elems)
	}
	chunk := (len(elems) + workers - 1) / workers

	a1Parts := make([]curve.G1, workers)
	a2Parts := make([]curve.G2, workers)
	for i := range a1Parts {
		a1Parts[i] = curve.G1Identity()
		a2Parts[i] = curve.G2Identity()
	}

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > len(elems) {
			end = len(elems)
		}
		if start >= end {
			continue
		}
		eg.Go(func() error {
			a1 := curve.G1Identity()
			a2 := curve.G2Identity()
			for _, x := range elems[start:end] {
				if x >= pk.QMax {
					return outOfUniverse(x, pk.QMax)
				}
				a1 = a1.Add(pk.Gs[x])
				a2 = a2.Add(pk.Hs[x])
			}
			a1Parts[w] = a1
			a2Parts[w] = a2
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Value{}, err
	}

	a1 := curve.G1Identity()
	a2 := curve.G2Identity()
	for i := range a1Parts {
		a1 = a1.Add(a1Parts[i])
		a2 = a2.Add(a2Parts[i])
	}
	return Value{A1: a1, A2: a2}, nil
}

// WellFormed checks the pairing invariant e(A1, h) == e(g, A2).
func (v Value) WellFormed() bool {
	g := curve.G1Generator()
	h := curve.G2Generator()
	return curve.Pair(v.A1, h).Equal(curve.Pair(g, v.A2))
}

// Add returns the accumulator of the (disjoint) union of the two committed
// sets, computed homomorphically without re-accumulating either set.
func Add(a, b Value) Value {
	return Value{A1: a.A1.Add(b.A1), A2: a.A2.Add(b.A2)}
}

// Sub returns the accumulator of the committed-set difference, computed
// homomorphically.
func Sub(a, b Value) Value {
	return Value{A1: a.A1.Sub(b.A1), A2: a.A2.Sub(b.A2)}
}

// Equal reports whether a and b are the same commitment.
func Equal(a, b Value) bool {
	return a.A1.Equal(b.A1) && a.A2.Equal(b.A2)
}

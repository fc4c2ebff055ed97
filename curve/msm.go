package curve

import (
	"errors"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrMSMLengthMismatch is returned when the scalar and point slices passed
// to a multi-scalar multiplication have different lengths.
var ErrMSMLengthMismatch = errors.New("curve: scalar and point slices must have equal length")

// msmWindowBits picks a bucket window width for Pippenger's algorithm based
// on the number of terms, trading bucket-accumulation cost against the
// number of passes.
func msmWindowBits(n int) int {
	switch {
	case n < 32:
		return 4
	case n < 1024:
		return 8
	case n < 1<<16:
		return 12
	default:
		return 16
	}
}

// MSMG1 computes sum_i scalars[i]*points[i] using Pippenger-style bucketed
// accumulation, with buckets for independent windows processed in
// parallel.
func MSMG1(scalars []Scalar, points []G1) (G1, error) {
	if len(scalars) != len(points) {
		return G1{}, ErrMSMLengthMismatch
	}
	if len(scalars) == 0 {
		return G1Identity(), nil
	}

	c := msmWindowBits(len(scalars))
	numWindows := (n.BitLen() + c - 1) / c
	windowSums := make([]G1, numWindows)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for w := 0; w < numWindows; w++ {
		w := w
		g.Go(func() error {
			numBuckets := 1 << uint(c)
			buckets := make([]G1, numBuckets)
			for i := range buckets {
				buckets[i] = G1Identity()
			}
			shift := uint(w * c)
			mask := (uint64(1) << uint(c)) - 1
			for i, s := range scalars {
				idx := new(big.Int).Rsh(s.Int(), shift)
				b := idx.Uint64() & mask
				if b == 0 {
					continue
				}
				buckets[b] = buckets[b].Add(points[i])
			}
			// Running sum: sum_{k=1}^{numBuckets-1} k*buckets[k], computed
			// with the standard prefix-sum trick in O(numBuckets).
			acc := G1Identity()
			sum := G1Identity()
			for k := numBuckets - 1; k > 0; k-- {
				acc = acc.Add(buckets[k])
				sum = sum.Add(acc)
			}
			windowSums[w] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return G1{}, err
	}

	result := G1Identity()
	for w := numWindows - 1; w >= 0; w-- {
		for i := 0; i < c; i++ {
			result = result.Double()
		}
		result = result.Add(windowSums[w])
	}
	return result, nil
}

// MSMG2 is the G2 analogue of MSMG1.
func MSMG2(scalars []Scalar, points []G2) (G2, error) {
	if len(scalars) != len(points) {
		return G2{}, ErrMSMLengthMismatch
	}
	if len(scalars) == 0 {
		return G2Identity(), nil
	}

	c := msmWindowBits(len(scalars))
	numWindows := (n.BitLen() + c - 1) / c
	windowSums := make([]G2, numWindows)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for w := 0; w < numWindows; w++ {
		w := w
		g.Go(func() error {
			numBuckets := 1 << uint(c)
			buckets := make([]G2, numBuckets)
			for i := range buckets {
				buckets[i] = G2Identity()
			}
			shift := uint(w * c)
			mask := (uint64(1) << uint(c)) - 1
			for i, s := range scalars {
				idx := new(big.Int).Rsh(s.Int(), shift)
				b := idx.Uint64() & mask
				if b == 0 {
					continue
				}
				buckets[b] = buckets[b].Add(points[i])
			}
			acc := G2Identity()
			sum := G2Identity()
			for k := numBuckets - 1; k > 0; k-- {
				acc = acc.Add(buckets[k])
				sum = sum.Add(acc)
			}
			windowSums[w] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return G2{}, err
	}

	result := G2Identity()
	for w := numWindows - 1; w >= 0; w-- {
		for i := 0; i < c; i++ {
			result = result.Double()
		}
		result = result.Add(windowSums[w])
	}
	return result, nil
}

package curve

import (
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultWindowSize is the default fixed-base window width, in bits, used by
// G1Table and G2Table when none is specified.
const DefaultWindowSize = 6

// G1Table is a fixed-base precompute table for repeated scalar
// multiplication of a single G1 base, built once and reused across many
// exponentiations (e.g. evaluating g^s for many different s against the
// same generator during key generation).
type G1Table struct {
	window int
	rows   [][]G1 // rows[i] holds the 2^window multiples of base*2^(window*i)
}

// NewG1Table builds a fixed-base table for base with the given window size
// in bits. window must be in [1, 16].
func NewG1Table(base G1, window int) *G1Table {
	if window <= 0 {
		window = DefaultWindowSize
	}
	bits := n.BitLen()
	rowCount := (bits + window - 1) / window
	rows := make([][]G1, rowCount)

	cur := base
	step := G1{}
	for i := range rows {
		size := 1 << uint(window)
		row := make([]G1, size)
		row[0] = G1Identity()
		row[1] = cur
		for j := 2; j < size; j++ {
			row[j] = row[j-1].Add(cur)
		}
		rows[i] = row
		step = row[size-1].Add(cur)
		cur = step
	}
	return &G1Table{window: window, rows: rows}
}

// ScalarMul evaluates k*base using the precomputed table.
func (t *G1Table) ScalarMul(k *big.Int) G1 {
	kk := new(big.Int).Mod(k, n)
	result := G1Identity()
	mask := (uint64(1) << uint(t.window)) - 1
	for i, row := range t.rows {
		shift := uint(i * t.window)
		shifted := new(big.Int).Rsh(kk, shift)
		idx := shifted.Uint64() & mask
		if idx != 0 {
			result = result.Add(row[idx])
		}
	}
	return result
}

// G2Table is the G2 analogue of G1Table.
type G2Table struct {
	window int
	rows   [][]G2
}

// NewG2Table builds a fixed-base table for base with the given window size
// in bits.
func NewG2Table(base G2, window int) *G2Table {
	if window <= 0 {
		window = DefaultWindowSize
	}
	bits := n.BitLen()
	rowCount := (bits + window - 1) / window
	rows := make([][]G2, rowCount)

	cur := base
	for i := range rows {
		size := 1 << uint(window)
		row := make([]G2, size)
		row[0] = G2Identity()
		row[1] = cur
		for j := 2; j < size; j++ {
			row[j] = row[j-1].Add(cur)
		}
		rows[i] = row
		cur = row[size-1].Add(cur)
	}
	return &G2Table{window: window, rows: rows}
}

// ScalarMul evaluates k*base using the precomputed table.
func (t *G2Table) ScalarMul(k *big.Int) G2 {
	kk := new(big.Int).Mod(k, n)
	result := G2Identity()
	mask := (uint64(1) << uint(t.window)) - 1
	for i, row := range t.rows {
		shift := uint(i * t.window)
		shifted := new(big.Int).Rsh(kk, shift)
		idx := shifted.Uint64() & mask
		if idx != 0 {
			result = result.Add(row[idx])
		}
	}
	return result
}

// PowerCache holds x^0, x^1, ..., x^max for a fixed base scalar x, built
// once up front so the accumulator and polynomial engine can look up
// x^i without repeated modular exponentiation.
type PowerCache struct {
	powers []Scalar
}

// NewPowerCache computes x^0..x^max sequentially.
func NewPowerCache(x Scalar, max uint64) *PowerCache {
	powers := make([]Scalar, max+1)
	powers[0] = ScalarFromUint64(1)
	for i := uint64(1); i <= max; i++ {
		powers[i] = powers[i-1].Mul(x)
	}
	return &PowerCache{powers: powers}
}

// NewPowerCacheParallel computes x^0..x^max by splitting the range across
// GOMAXPROCS workers, each seeding its segment with a single big
// exponentiation and then chaining multiplications forward.
func NewPowerCacheParallel(x Scalar, max uint64) (*PowerCache, error) {
	total := max + 1
	workers := uint64(runtime.GOMAXPROCS(0))
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		return NewPowerCache(x, max), nil
	}

	powers := make([]Scalar, total)
	chunk := (total + workers - 1) / workers

	var g errgroup.Group
	for w := uint64(0); w < workers; w++ {
		start := w * chunk
		if start >= total {
			continue
		}
		end := start + chunk
		if end > total {
			end = total
		}
		w := w
		gStart, gEnd := start, end
		g.Go(func() error {
			cur := x.Exp(gStart)
			powers[gStart] = cur
			for i := gStart + 1; i < gEnd; i++ {
				cur = cur.Mul(x)
				powers[i] = cur
			}
			_ = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &PowerCache{powers: powers}, nil
}

// At returns x^i. It panics if i exceeds the cache's precomputed range.
func (c *PowerCache) At(i uint64) Scalar {
	return c.powers[i]
}

// Len returns the number of cached powers (max+1).
func (c *PowerCache) Len() int {
	return len(c.powers)
}

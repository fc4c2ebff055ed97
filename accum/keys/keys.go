// Package keys implements vChain+ key material: the confidential secret key
// held only by the offline gen_key tool, and the public key vectors shared
// by every prover and verifier.
package keys

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vchainplus/vchain/curve"
	"github.com/vchainplus/vchain/errs"
	"github.com/vchainplus/vchain/log"
)

// SecretKey holds the three confidential exponents and the derived
// scalar-power caches built from them. It is generated once by gen_key and
// never enters the prover or verifier process.
type SecretKey struct {
	S, R, Beta curve.Scalar

	sPow *curve.PowerCache
	rPow *curve.PowerCache
}

// SPow returns s^i. The cache covers i in [0, 2*QMax), the full range the
// bivariate witness commitment's S-exponent can reach (see sSpan).
func (sk *SecretKey) SPow(i uint64) curve.Scalar { return sk.sPow.At(i) }

// RPow returns r^i for i in [0, QMax).
func (sk *SecretKey) RPow(i uint64) curve.Scalar { return sk.rPow.At(i) }

// sSpan returns the exclusive upper bound on the S-exponent index the G_rs
// / H_rs cross tables must cover. poly_a(L)'s S-exponent reaches qMax-1 and
// poly_b(R)'s reaches qMax, so their Cauchy product's S-exponent reaches
// 2*qMax-1; sSpan rounds that up to 2*qMax.
func sSpan(qMax uint64) uint64 { return 2 * qMax }

// gRsKey indexes the sparse G_rs / H_rs tables by (i, j).
type gRsKey struct{ i, j uint64 }

// PublicKey holds the vectors of group elements every prover and verifier
// consults. It is read-only and freely shareable once GenKeys returns.
type PublicKey struct {
	QMax uint64

	Gs  []curve.G1 // Gs[i]  = g^{s^i}
	Hs  []curve.G2 // Hs[i]  = h^{s^i}
	Hbs []curve.G2 // Hbs[i] = h^{beta*s^i}

	// Grs[i][j] = g^{r^i * s^j} for i in [0, QMax) and j in [0, sSpan),
	// stored sparsely (see SparseG1Table). The witness commitment's
	// S-exponent (j) can exceed QMax and can also fall below its
	// R-exponent (i), so unlike a KZG-style triangular SRS this is filled
	// as a full rectangle, not a triangle — see the open question this
	// resolves in the design notes. Grs.At looks up an entry; a missing
	// entry surfaces errs.ErrIncompleteKey rather than a zero value.
	Grs *SparseG1Table

	// GrsBeta[i][j] = Grs[i][j]^beta, the beta-shifted copy that lets a
	// verifier run the knowledge-of-exponent check without learning beta.
	GrsBeta *SparseG1Table

	// Hrs[i][j] = h^{r^i * s^j}, the G2 analogue of Grs used to commit
	// poly_b(R)'s bivariate polynomial on the verifier's side of the
	// product-identity check.
	Hrs     *SparseG2Table
	HrsBeta *SparseG2Table

	// HsExt = h^{s^QMax}, the one extra S-power beyond Hs's [0, QMax)
	// range needed to reintroduce the intersection's S^QMax coefficient
	// in the product-identity check without a second r-evaluated
	// accumulator half.
	HsExt curve.G2

	Hb curve.G2 // h^beta
	Gb curve.G1 // g^beta
}

// SparseG1Table is a read-only-after-construction map from (i, j) to a G1
// element, used for the G_rs and G_rs^beta tables over the q_max x 2*q_max
// (r-power, s-power) rectangle (the dense form is memory-prohibitive for
// realistic q_max).
type SparseG1Table struct {
	m map[gRsKey]curve.G1
}

func newSparseG1Table(capacity int) *SparseG1Table {
	return &SparseG1Table{m: make(map[gRsKey]curve.G1, capacity)}
}

// NewSparseG1Table builds an empty table, exported so decoders (see
// package wire) can reconstruct one from a serialized entry list.
func NewSparseG1Table(capacity int) *SparseG1Table {
	return newSparseG1Table(capacity)
}

func (t *SparseG1Table) set(i, j uint64, v curve.G1) {
	t.m[gRsKey{i, j}] = v
}

// Set records G_rs[i][j] = v. Exported for decoders reconstructing a table
// from serialized (i, j, point) entries.
func (t *SparseG1Table) Set(i, j uint64, v curve.G1) {
	t.set(i, j, v)
}

// At returns G_rs[i][j], or errs.ErrIncompleteKey if that index was never
// populated.
func (t *SparseG1Table) At(i, j uint64) (curve.G1, error) {
	v, ok := t.m[gRsKey{i, j}]
	if !ok {
		return curve.G1{}, fmt.Errorf("%w: G_rs[%d][%d]", errs.ErrIncompleteKey, i, j)
	}
	return v, nil
}

// Len reports the number of populated (i, j) entries.
func (t *SparseG1Table) Len() int { return len(t.m) }

// Entry is a single populated (i, j, point) record, used by package wire to
// serialize a sparse table without assuming a dense index range.
type Entry struct {
	I, J uint64
	V    curve.G1
}

// Entries returns every populated entry, in ascending (i, j) order.
func (t *SparseG1Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.m))
	for k, v := range t.m {
		out = append(out, Entry{I: k.i, J: k.j, V: v})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}

// SparseG2Table is the G2 analogue of SparseG1Table, used for the H_rs /
// H_rs^beta tables.
type SparseG2Table struct {
	m map[gRsKey]curve.G2
}

func newSparseG2Table(capacity int) *SparseG2Table {
	return &SparseG2Table{m: make(map[gRsKey]curve.G2, capacity)}
}

// NewSparseG2Table builds an empty table, exported so decoders (see
// package wire) can reconstruct one from a serialized entry list.
func NewSparseG2Table(capacity int) *SparseG2Table {
	return newSparseG2Table(capacity)
}

func (t *SparseG2Table) set(i, j uint64, v curve.G2) {
	t.m[gRsKey{i, j}] = v
}

// Set records H_rs[i][j] = v.
func (t *SparseG2Table) Set(i, j uint64, v curve.G2) {
	t.set(i, j, v)
}

// At returns H_rs[i][j], or errs.ErrIncompleteKey if that index was never
// populated.
func (t *SparseG2Table) At(i, j uint64) (curve.G2, error) {
	v, ok := t.m[gRsKey{i, j}]
	if !ok {
		return curve.G2{}, fmt.Errorf("%w: H_rs[%d][%d]", errs.ErrIncompleteKey, i, j)
	}
	return v, nil
}

// Len reports the number of populated (i, j) entries.
func (t *SparseG2Table) Len() int { return len(t.m) }

// EntryG2 is the G2 analogue of Entry.
type EntryG2 struct {
	I, J uint64
	V    curve.G2
}

// Entries returns every populated entry, in ascending (i, j) order.
func (t *SparseG2Table) Entries() []EntryG2 {
	out := make([]EntryG2, 0, len(t.m))
	for k, v := range t.m {
		out = append(out, EntryG2{I: k.i, J: k.j, V: v})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}

// GenKeys implements gen_key: it samples (s, r, beta), builds the scalar
// power caches, and fills every public-key vector in parallel across
// available cores. q_max == 0 is a configuration error.
func GenKeys(qMax uint64) (*SecretKey, *PublicKey, error) {
	if qMax == 0 {
		return nil, nil, fmt.Errorf("%w: q_max must be > 0", errs.ErrMalformedInput)
	}
	l := log.Default().Module("keys")

	s, err := nonZeroScalar()
	if err != nil {
		return nil, nil, err
	}
	r, err := nonZeroScalar()
	if err != nil {
		return nil, nil, err
	}
	beta, err := nonZeroScalar()
	if err != nil {
		return nil, nil, err
	}

	sPow, err := curve.NewPowerCacheParallel(s, sSpan(qMax)-1)
	if err != nil {
		return nil, nil, err
	}
	rPow, err := curve.NewPowerCacheParallel(r, qMax-1)
	if err != nil {
		return nil, nil, err
	}

	sk := &SecretKey{S: s, R: r, Beta: beta, sPow: sPow, rPow: rPow}

	g := curve.G1Generator()
	h := curve.G2Generator()
	gTable := curve.NewG1Table(g, curve.DefaultWindowSize)
	hTable := curve.NewG2Table(h, curve.DefaultWindowSize)

	pk := &PublicKey{
		QMax: qMax,
		Gs:   make([]curve.G1, qMax),
		Hs:   make([]curve.G2, qMax),
		Hbs:  make([]curve.G2, qMax),
		Hb:   hTable.ScalarMul(beta.Int()),
		Gb:   gTable.ScalarMul(beta.Int()),
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := uint64(0); i < qMax; i++ {
		i := i
		eg.Go(func() error {
			si := sPow.At(i)
			pk.Gs[i] = gTable.ScalarMul(si.Int())
			pk.Hs[i] = hTable.ScalarMul(si.Int())
			pk.Hbs[i] = hTable.ScalarMul(si.Mul(beta).Int())
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	grs, grsBeta, err := fillGrsTables(qMax, sPow, rPow, gTable, beta)
	if err != nil {
		return nil, nil, err
	}
	pk.Grs = grs
	pk.GrsBeta = grsBeta

	hrs, hrsBeta, err := fillHrsTables(qMax, sPow, rPow, hTable, beta)
	if err != nil {
		return nil, nil, err
	}
	pk.Hrs = hrs
	pk.HrsBeta = hrsBeta

	pk.HsExt = hTable.ScalarMul(sPow.At(qMax).Int())

	l.Info("generated key material", "q_max", qMax, "grs_entries", grs.Len(), "hrs_entries", hrs.Len())
	return sk, pk, nil
}

// fillGrsTables fills the full (i, j) rectangle of G_rs and its
// beta-shifted copy in parallel over rows: i (the R-exponent slot) ranges
// over [0, qMax), j (the S-exponent slot) over [0, sSpan(qMax)). Unlike a
// triangular SRS, both i > j and i < j entries are genuinely needed here —
// the witness's S-exponent and R-exponent don't stay ordered relative to
// each other (see setop.grsTableIndex).
func fillGrsTables(qMax uint64, sPow, rPow *curve.PowerCache, gTable *curve.G1Table, beta curve.Scalar) (*SparseG1Table, *SparseG1Table, error) {
	span := sSpan(qMax)
	grs := newSparseG1Table(int(qMax * span))
	grsBeta := newSparseG1Table(int(qMax * span))

	rows := make([]map[uint64]curve.G1, qMax)
	rowsBeta := make([]map[uint64]curve.G1, qMax)

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := uint64(0); i < qMax; i++ {
		i := i
		eg.Go(func() error {
			ri := rPow.At(i)
			row := make(map[uint64]curve.G1, span)
			rowBeta := make(map[uint64]curve.G1, span)
			for j := uint64(0); j < span; j++ {
				exp := ri.Mul(sPow.At(j))
				v := gTable.ScalarMul(exp.Int())
				row[j] = v
				rowBeta[j] = v.ScalarMul(beta.Int())
			}
			rows[i] = row
			rowsBeta[i] = rowBeta
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	for i := uint64(0); i < qMax; i++ {
		for j, v := range rows[i] {
			grs.set(i, j, v)
		}
		for j, v := range rowsBeta[i] {
			grsBeta.set(i, j, v)
		}
	}
	return grs, grsBeta, nil
}

// fillHrsTables is the G2 analogue of fillGrsTables, building H_rs[i][j] =
// h^{r^i * s^j} over the same (i, j) rectangle.
func fillHrsTables(qMax uint64, sPow, rPow *curve.PowerCache, hTable *curve.G2Table, beta curve.Scalar) (*SparseG2Table, *SparseG2Table, error) {
	span := sSpan(qMax)
	hrs := newSparseG2Table(int(qMax * span))
	hrsBeta := newSparseG2Table(int(qMax * span))

	rows := make([]map[uint64]curve.G2, qMax)
	rowsBeta := make([]map[uint64]curve.G2, qMax)

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := uint64(0); i < qMax; i++ {
		i := i
		eg.Go(func() error {
			ri := rPow.At(i)
			row := make(map[uint64]curve.G2, span)
			rowBeta := make(map[uint64]curve.G2, span)
			for j := uint64(0); j < span; j++ {
				exp := ri.Mul(sPow.At(j))
				v := hTable.ScalarMul(exp.Int())
				row[j] = v
				rowBeta[j] = v.ScalarMul(beta.Int())
			}
			rows[i] = row
			rowsBeta[i] = rowBeta
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	for i := uint64(0); i < qMax; i++ {
		for j, v := range rows[i] {
			hrs.set(i, j, v)
		}
		for j, v := range rowsBeta[i] {
			hrsBeta.set(i, j, v)
		}
	}
	return hrs, hrsBeta, nil
}

// RebuildSecretKey reconstructs a SecretKey from its three exponents,
// rebuilding the derived power caches rather than deserializing them: they
// are pure functions of (s, r, q_max) and are never stored on disk.
func RebuildSecretKey(s, r, beta curve.Scalar, qMax uint64) *SecretKey {
	sPow, err := curve.NewPowerCacheParallel(s, sSpan(qMax)-1)
	if err != nil {
		panic(fmt.Sprintf("keys: rebuilding s power cache: %v", err))
	}
	rPow, err := curve.NewPowerCacheParallel(r, qMax-1)
	if err != nil {
		panic(fmt.Sprintf("keys: rebuilding r power cache: %v", err))
	}
	return &SecretKey{S: s, R: r, Beta: beta, sPow: sPow, rPow: rPow}
}

func nonZeroScalar() (curve.Scalar, error) {
	for {
		s, err := curve.RandomScalar()
		if err != nil {
			return curve.Scalar{}, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

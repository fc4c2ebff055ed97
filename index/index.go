// Package index defines the contract the query planner uses to reach the
// external authenticated data structures (B+-tree, ID-tree, trie-tree) that
// locate candidate objects per block. Those structures, and on-disk
// storage generally, are out of scope for this module; this package is
// only the interface boundary plus a minimal in-memory reference
// implementation used for end-to-end testing.
package index

import (
	"context"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/accum/value"
)

// Digest is an opaque Merkle-style digest chaining a leaf lookup to its
// block header. The core never interprets its contents, only forwards it
// into the verification object.
type Digest []byte

// Predicate identifies what a leaf lookup is asking an index for: either a
// keyword membership test or a numeric range test, within one block.
type Predicate struct {
	Keyword  string
	IsRange  bool
	Range    [2]uint64
	Universe bool // true selects "every object in the block" (used by NOT)
}

func (p Predicate) String() string {
	switch {
	case p.Universe:
		return "*"
	case p.IsRange:
		return fmt.Sprintf("range[%d,%d]", p.Range[0], p.Range[1])
	default:
		return "kw:" + p.Keyword
	}
}

// LeafResult is what an index lookup returns: the resolved object-id set,
// its accumulator, and the digest chain proving it belongs to the block.
type LeafResult struct {
	Set    *set.Set
	Acc    value.Value
	Digest Digest
}

// Index is the interface to indices consumed: for each (block, predicate)
// lookup it returns (Set, Accumulator, Digest).
type Index interface {
	Lookup(ctx context.Context, blockID uint64, pred Predicate) (LeafResult, error)
}

// MemIndex is a minimal in-memory Index used to exercise the planner and
// set-operation proofs end to end without a real trie-tree/B+-tree/ID-tree
// stack behind it.
type MemIndex struct {
	pk      *keys.PublicKey
	byBlock map[uint64]map[string][]uint64
}

// NewMemIndex builds an index over qMax-bounded object ids, backed by pk
// for accumulation.
func NewMemIndex(pk *keys.PublicKey) *MemIndex {
	return &MemIndex{pk: pk, byBlock: make(map[uint64]map[string][]uint64)}
}

// Put registers that block blockID contains the given object ids under
// keyword kw. Call it repeatedly to build up a test dataset.
func (m *MemIndex) Put(blockID uint64, kw string, ids ...uint64) {
	if m.byBlock[blockID] == nil {
		m.byBlock[blockID] = make(map[string][]uint64)
	}
	m.byBlock[blockID][kw] = append(m.byBlock[blockID][kw], ids...)
}

// Lookup implements Index.
func (m *MemIndex) Lookup(_ context.Context, blockID uint64, pred Predicate) (LeafResult, error) {
	block := m.byBlock[blockID]

	var ids []uint64
	switch {
	case pred.Universe:
		seen := make(map[uint64]struct{})
		for _, list := range block {
			for _, id := range list {
				seen[id] = struct{}{}
			}
		}
		for id := range seen {
			ids = append(ids, id)
		}
	case pred.IsRange:
		seen := make(map[uint64]struct{})
		for _, list := range block {
			for _, id := range list {
				if id >= pred.Range[0] && id <= pred.Range[1] {
					seen[id] = struct{}{}
				}
			}
		}
		for id := range seen {
			ids = append(ids, id)
		}
	default:
		ids = block[pred.Keyword]
	}

	s, err := set.New(m.pk.QMax, ids...)
	if err != nil {
		return LeafResult{}, err
	}
	acc, err := value.Accumulate(m.pk, s)
	if err != nil {
		return LeafResult{}, err
	}
	return LeafResult{Set: s, Acc: acc, Digest: leafDigest(blockID, pred, s)}, nil
}

// leafDigest computes a Merkle-style leaf digest chaining the block id, the
// predicate that selected it, and the resolved object ids: a SHA3-256 hash
// over their canonical encoding, standing in for the real header-to-leaf
// digest chain a production trie-tree/B+-tree/ID-tree index would supply.
func leafDigest(blockID uint64, pred Predicate, s *set.Set) Digest {
	h := sha3.New256()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], blockID)
	h.Write(buf[:])
	h.Write([]byte(pred.String()))
	for _, id := range s.Elements() {
		binary.LittleEndian.PutUint64(buf[:], id)
		h.Write(buf[:])
	}
	return h.Sum(nil)
}

package main

import (
	"encoding/json"
	"os"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/index"
)

// db mirrors the shape vchain-build writes: a per-block keyword-to-object-id
// table. Loading it here rebuilds the in-memory index the planner queries
// against; the real trie-tree/B+-tree/ID-tree storage stack behind a
// production light client is out of scope for this module.
type db struct {
	QMax   uint64                         `json:"q_max"`
	Blocks map[uint64]map[string][]uint64 `json:"blocks"`
}

func loadIndex(path string, pk *keys.PublicKey) (*index.MemIndex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d db
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	idx := index.NewMemIndex(pk)
	for blockID, kws := range d.Blocks {
		for kw, ids := range kws {
			idx.Put(blockID, kw, ids...)
		}
	}
	return idx, nil
}

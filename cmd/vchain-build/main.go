// Command vchain-build assembles a light client's index structure from a
// flat object dataset. The B+-tree/ID-tree/trie-tree index formats and
// on-disk block storage themselves are out of scope for this module (see
// the external-interfaces contract); this tool produces the minimal
// "database" this repository's own query tool can consume: a per-block
// keyword-to-object-id map, keyed against a fixed public key's universe
// size.
//
// Usage:
//
//	vchain-build -k <pk> -i <dataset> -m <max-id> -b <n> -o <db> \
//	    [-t <window> ...] [--id-fanout <n>] [-d <dims>] [-r <time-json>]
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vchainplus/vchain/errs"
	"github.com/vchainplus/vchain/log"
	"github.com/vchainplus/vchain/wire"
)

// datasetObject is one record of the input dataset (-i): an object with a
// numeric id (subject to the public key's universe bound), the block it
// belongs to, and the keywords it is indexed under.
type datasetObject struct {
	ID       uint64   `json:"id"`
	Block    uint64   `json:"block"`
	Keywords []string `json:"keywords"`
}

// db is the on-disk shape vchain-query loads back via loadDB. Blocks maps a
// block id to a keyword-to-object-ids table, mirroring the shape
// index.MemIndex builds in memory.
type db struct {
	QMax   uint64                         `json:"q_max"`
	Blocks map[uint64]map[string][]uint64 `json:"blocks"`
}

// buildStats is written to -r's time-json path: how long assembly took, for
// benchmarking harnesses that scrape it.
type buildStats struct {
	Objects   int    `json:"objects"`
	Blocks    int    `json:"blocks"`
	ElapsedMS int64  `json:"elapsed_ms"`
	MaxID     uint64 `json:"max_id"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := newFlagSet("vchain-build")
	pkPath := fs.String("k", "", "path to a public key or key-pair file")
	datasetPath := fs.String("i", "", "path to the input dataset JSON")
	outPath := fs.String("o", "", "path to write the assembled database")
	timePath := fs.String("r", "", "optional path to write build timing JSON")
	maxID := fs.Uint64("m", 0, "maximum object id expected in the dataset")
	numBlocks := fs.Uint64("b", 0, "expected number of blocks (validation only)")
	dims := fs.Uint64("d", 1, "number of indexed dimensions (accepted for CLI compatibility)")
	fanout := fs.Uint64("id-fanout", 0, "id-tree fanout (accepted for CLI compatibility; indices are out of scope)")
	var windows stringList
	fs.Var(&windows, "t", "time window (repeatable)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *pkPath == "" || *datasetPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -k, -i, and -o are required")
		return 1
	}

	l := log.Default().Module("build")
	l.Info("assembling database", "dataset", *datasetPath, "dims", *dims, "id_fanout", *fanout, "windows", len(windows))

	start := time.Now()

	pk, err := loadPublicKey(*pkPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading public key: %v\n", err)
		return 1
	}

	raw, err := os.ReadFile(*datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading dataset: %v\n", err)
		return 1
	}
	var objects []datasetObject
	if err := json.Unmarshal(raw, &objects); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v: parsing dataset: %v\n", errs.ErrMalformedInput, err)
		return 1
	}

	out := db{QMax: pk.QMax, Blocks: make(map[uint64]map[string][]uint64)}
	var observedMax uint64
	for _, obj := range objects {
		if obj.ID >= pk.QMax {
			fmt.Fprintf(os.Stderr, "Error: %v: object id %d >= q_max %d\n", errs.ErrOutOfUniverse, obj.ID, pk.QMax)
			return 1
		}
		if *maxID != 0 && obj.ID > *maxID {
			fmt.Fprintf(os.Stderr, "Error: object id %d exceeds -m %d\n", obj.ID, *maxID)
			return 1
		}
		if obj.ID > observedMax {
			observedMax = obj.ID
		}
		if out.Blocks[obj.Block] == nil {
			out.Blocks[obj.Block] = make(map[string][]uint64)
		}
		for _, kw := range obj.Keywords {
			out.Blocks[obj.Block][kw] = append(out.Blocks[obj.Block][kw], obj.ID)
		}
	}

	if *numBlocks != 0 && uint64(len(out.Blocks)) > *numBlocks {
		l.Warn("dataset spans more blocks than -b declared", "declared", *numBlocks, "actual", len(out.Blocks))
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding database: %v\n", err)
		return 1
	}
	if err := os.WriteFile(*outPath, encoded, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing database: %v\n", err)
		return 1
	}

	elapsed := time.Since(start)
	if *timePath != "" {
		stats := buildStats{Objects: len(objects), Blocks: len(out.Blocks), ElapsedMS: elapsed.Milliseconds(), MaxID: observedMax}
		statsBytes, err := json.Marshal(stats)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: encoding timing report: %v\n", err)
			return 1
		}
		if err := os.WriteFile(*timePath, statsBytes, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: writing timing report: %v\n", err)
			return 1
		}
	}

	l.Info("wrote database", "path", *outPath, "objects", len(objects), "blocks", len(out.Blocks), "elapsed", elapsed)
	return 0
}

func loadPublicKey(path string) (*publicKeyShape, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pk, err := wire.DecodePublicKey(raw)
	if err == nil {
		return &publicKeyShape{QMax: pk.QMax}, nil
	}
	_, fullPK, err2 := wire.DecodeKeyPair(raw)
	if err2 != nil {
		return nil, fmt.Errorf("not a public key or key-pair file: %v / %v", err, err2)
	}
	return &publicKeyShape{QMax: fullPK.QMax}, nil
}

// publicKeyShape is the only part of the public key vchain-build needs: the
// universe bound used to validate object ids.
type publicKeyShape struct {
	QMax uint64
}

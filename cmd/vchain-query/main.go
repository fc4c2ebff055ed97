// Command vchain-query builds and evaluates queries against a previously
// assembled database, then verifies the resulting verification objects
// against the public key before printing results.
//
// Usage:
//
//	vchain-query [-e] [-n] -k <pk> -i <db> -q <queries.json> -r <time-json> -v <verifier-threads>
//
// Exit codes: 0 success, 1 usage error, 2 verification rejected.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/lightclient"
	"github.com/vchainplus/vchain/log"
	"github.com/vchainplus/vchain/query"
	"github.com/vchainplus/vchain/wire"
)

// queryOutcome is one query's reported result, printed as JSON to stdout.
type queryOutcome struct {
	Index   int      `json:"index"`
	Objects []uint64 `json:"objects"`
}

// runStats mirrors vchain-build's timing report shape for the -r flag.
type runStats struct {
	Queries   int   `json:"queries"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := newFlagSet("vchain-query")
	rewrite := fs.Bool("e", false, "enable cost-based DAG rewrite")
	pruneEmpties := fs.Bool("n", false, "enable empty-set pruning")
	pkPath := fs.String("k", "", "path to a public key or key-pair file")
	dbPath := fs.String("i", "", "path to the database produced by vchain-build")
	queriesPath := fs.String("q", "", "path to the queries JSON file")
	timePath := fs.String("r", "", "optional path to write timing JSON")
	verifierThreads := fs.Int("v", 4, "number of verifier worker threads")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *pkPath == "" || *dbPath == "" || *queriesPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -k, -i, and -q are required")
		return 1
	}

	l := log.Default().Module("query")
	pk, err := loadPublicKey(*pkPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading public key: %v\n", err)
		return 1
	}

	idx, err := loadIndex(*dbPath, pk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading database: %v\n", err)
		return 1
	}

	raw, err := os.ReadFile(*queriesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading queries: %v\n", err)
		return 1
	}
	specs, err := parseQueries(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing queries: %v\n", err)
		return 1
	}

	opts := query.Options{Rewrite: *rewrite, PruneEmpties: *pruneEmpties}
	verifier := lightclient.New(pk, *verifierThreads)

	start := time.Now()
	outcomes := make([]queryOutcome, 0, len(specs))
	rejected := false

	for i, spec := range specs {
		root, err := query.Build(spec, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: query %d: building DAG: %v\n", i, err)
			return 1
		}
		vo, err := query.Evaluate(context.Background(), root, idx, pk)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: query %d: evaluating: %v\n", i, err)
			return 1
		}
		resultSet, err := verifier.VerifyOne(vo)
		if err != nil {
			l.Warn("query rejected", "index", i, "err", err)
			fmt.Fprintf(os.Stderr, "Rejected: query %d: %v\n", i, err)
			rejected = true
			continue
		}
		outcomes = append(outcomes, queryOutcome{Index: i, Objects: resultSet.Elements()})
	}

	encoded, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding results: %v\n", err)
		return 1
	}
	fmt.Println(string(encoded))

	elapsed := time.Since(start)
	if *timePath != "" {
		stats := runStats{Queries: len(specs), ElapsedMS: elapsed.Milliseconds()}
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

	if rejected {
		return 2
	}
	return 0
}

func loadPublicKey(path string) (*keys.PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if pk, err := wire.DecodePublicKey(raw); err == nil {
		return pk, nil
	}
	_, pk, err := wire.DecodeKeyPair(raw)
	if err != nil {
		return nil, err
	}
	return pk, nil
}

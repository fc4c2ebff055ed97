// Command vchain-genkey is the offline key-generation tool: it samples the
// confidential (s, r, beta) exponents, builds the public key vectors, and
// writes both to a single key-pair file. The secret key never leaves this
// process once the file is written.
//
// Usage:
//
//	vchain-genkey -q <universe-size> -o <out>
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/log"
	"github.com/vchainplus/vchain/wire"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the testable entry point: it returns the process exit code rather
// than calling os.Exit directly. Exit codes follow the CLI contract: 0
// success, 1 usage or generation error.
func run(args []string) int {
	fs := newFlagSet("vchain-genkey")
	qMax := fs.Uint64("q", 0, "universe size (q_max), every element id must be < q_max")
	out := fs.String("o", "", "output path for the key-pair file")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *qMax == 0 {
		fmt.Fprintln(os.Stderr, "Error: -q must be a positive universe size")
		return 1
	}
	if *out == "" {
		fmt.Fprintln(os.Stderr, "Error: -o output path is required")
		return 1
	}

	l := log.Default().Module("genkey")
	l.Info("generating key material", "q_max", *qMax)

	sk, pk, err := keys.GenKeys(*qMax)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: key generation failed: %v\n", err)
		return 1
	}

	blob := wire.EncodeKeyPair(sk, pk)
	if err := os.WriteFile(*out, blob, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing key file: %v\n", err)
		return 1
	}

	l.Info("wrote key pair", "path", *out, "bytes", len(blob), "grs_entries", pk.Grs.Len())
	return 0
}

// uint64Value implements flag.Value for uint64 flags, since the standard
// flag package has no native uint64 constructor that returns a *uint64.
type uint64Value uint64

func (v *uint64Value) String() string {
	if v == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func (v *uint64Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid uint64 value %q", s)
	}
	*v = uint64Value(n)
	return nil
}

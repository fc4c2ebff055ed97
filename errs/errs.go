// Package errs defines the typed error kinds shared across the accumulator,
// set-operation, and query-planning packages. Every public operation that
// can fail returns one of these sentinels, wrapped with fmt.Errorf("%w: ...")
// for context, so callers can classify failures with errors.Is.
package errs

import "errors"

var (
	// ErrOutOfUniverse is returned when a set element id is >= q_max.
	ErrOutOfUniverse = errors.New("vchain: element id out of universe")

	// ErrIncompleteKey is returned when a prover needs a public-key index
	// that is absent from the loaded key material.
	ErrIncompleteKey = errors.New("vchain: incomplete public key")

	// ErrMalformedInput is returned on deserialization failure, an unknown
	// version byte, or a length mismatch in encoded data.
	ErrMalformedInput = errors.New("vchain: malformed input")

	// ErrProofInvalid is returned when any pairing equation in a proof
	// fails to verify.
	ErrProofInvalid = errors.New("vchain: proof invalid")

	// ErrInternalArithmetic marks an arithmetic invariant violation (such
	// as inverting a zero scalar) that indicates a bug rather than bad
	// input.
	ErrInternalArithmetic = errors.New("vchain: internal arithmetic error")
)

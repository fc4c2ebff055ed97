// Package lightclient is the thin top-level verifier driver: it holds the
// public key and a per-query verifier worker pool, and turns an incoming
// verification object into an accept/reject decision plus the (validated)
// result set.
package lightclient

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/errs"
	"github.com/vchainplus/vchain/log"
	"github.com/vchainplus/vchain/query"
)

// Verifier holds the long-lived, effectively-immutable public key and
// bounds how many queries it verifies concurrently, per the fixed small
// worker pool the concurrency model calls for on the verifier side.
type Verifier struct {
	pk      *keys.PublicKey
	workers int
	logger  *log.Logger
}

// New builds a Verifier over pk with the given number of verifier worker
// threads. workers <= 0 defaults to 4, matching the suggested fixed pool
// size for verifier operations.
func New(pk *keys.PublicKey, workers int) *Verifier {
	if workers <= 0 {
		workers = 4
	}
	return &Verifier{pk: pk, workers: workers, logger: log.Default().Module("lightclient")}
}

// VerifyOne checks a single verification object and returns its validated
// result set on acceptance.
func (v *Verifier) VerifyOne(vo *query.VO) (*set.Set, error) {
	if vo == nil || vo.Root == nil {
		return nil, fmt.Errorf("%w: nil verification object", errs.ErrMalformedInput)
	}
	if err := query.Verify(vo, v.pk); err != nil {
		v.logger.Warn("verification rejected", "err", err)
		return nil, err
	}
	res, ok := vo.Results[vo.Root.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: VO missing root result", errs.ErrMalformedInput)
	}
	return res.Set, nil
}

// VerifyBatch verifies a batch of verification objects concurrently across
// the verifier's worker pool. It returns one result per input VO in order;
// a rejected or malformed VO in the batch does not stop the others, per the
// error-handling design's rule that MalformedInput/ProofInvalid are
// recoverable at the local (per-query) call site.
func (v *Verifier) VerifyBatch(ctx context.Context, vos []*query.VO) ([]*set.Set, []error) {
	results := make([]*set.Set, len(vos))
	errsOut := make([]error, len(vos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i, vo := range vos {
		i, vo := i, vo
		g.Go(func() error {
			select {
			case <-ctx.Done():
				errsOut[i] = ctx.Err()
				return nil
			default:
			}
			s, err := v.VerifyOne(vo)
			results[i] = s
			errsOut[i] = err
			return nil
		})
	}
	_ = g.Wait()
	return results, errsOut
}

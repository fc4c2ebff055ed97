package query

import (
	"context"
	"fmt"

	"github.com/vchainplus/vchain/accum/keys"
	"github.com/vchainplus/vchain/accum/set"
	"github.com/vchainplus/vchain/accum/value"
	"github.com/vchainplus/vchain/index"
	"github.com/vchainplus/vchain/setop"
)

// Result is one DAG node's evaluated output plus the proof (if any) that
// links it to its children -- the unit the verification object is built
// from.
type Result struct {
	Set    *set.Set
	Acc    value.Value
	Digest index.Digest // only set on leaves
	Proof  *setop.Proof // only set on inner nodes
}

// VO is the verification object shipped to a light verifier: the DAG shape
// plus every node's Result, keyed by structural Key so the verifier can
// walk the same DAG it is handed and re-check every proof.
type VO struct {
	Root    Node
	Results map[string]Result
}

// Evaluate runs the DAG bottom-up, resolving leaves through idx and
// producing a proof for every inner node via setop.ProveOp.
func Evaluate(ctx context.Context, root Node, idx index.Index, pk *keys.PublicKey) (*VO, error) {
	vo := &VO{Root: root, Results: make(map[string]Result)}
	if _, err := evalNode(ctx, root, idx, pk, vo); err != nil {
		return nil, err
	}
	return vo, nil
}

func evalNode(ctx context.Context, n Node, idx index.Index, pk *keys.PublicKey, vo *VO) (Result, error) {
	if r, ok := vo.Results[n.Key()]; ok {
		return r, nil
	}

	switch t := n.(type) {
	case *LeafNode:
		lr, err := idx.Lookup(ctx, t.BlockID, t.Pred)
		if err != nil {
			return Result{}, err
		}
		res := Result{Set: lr.Set, Acc: lr.Acc, Digest: lr.Digest}
		vo.Results[n.Key()] = res
		return res, nil

	case *OpNode:
		left, err := evalNode(ctx, t.Left, idx, pk, vo)
		if err != nil {
			return Result{}, err
		}
		right, err := evalNode(ctx, t.Right, idx, pk, vo)
		if err != nil {
			return Result{}, err
		}
		y, ay, proof, err := setop.ProveOp(t.Op, pk, left.Set, right.Set)
		if err != nil {
			return Result{}, err
		}
		res := Result{Set: y, Acc: ay, Proof: proof}
		vo.Results[n.Key()] = res
		return res, nil

	default:
		return Result{}, fmt.Errorf("query: unsupported DAG node %T", n)
	}
}

// Verify walks the same DAG the VO claims to be for and re-runs every
// inner node's pairing checks using only pk, rejecting on the first
// failure.
func Verify(vo *VO, pk *keys.PublicKey) error {
	return verifyNode(vo.Root, vo, pk)
}

func verifyNode(n Node, vo *VO, pk *keys.PublicKey) error {
	switch t := n.(type) {
	case *LeafNode:
		res, ok := vo.Results[n.Key()]
		if !ok {
			return fmt.Errorf("query: VO missing result for leaf %s", n.Key())
		}
		if !res.Acc.WellFormed() {
			return fmt.Errorf("query: leaf %s accumulator fails well-formedness", n.Key())
		}
		return nil

	case *OpNode:
		if err := verifyNode(t.Left, vo, pk); err != nil {
			return err
		}
		if err := verifyNode(t.Right, vo, pk); err != nil {
			return err
		}
		left := vo.Results[t.Left.Key()]
		right := vo.Results[t.Right.Key()]
		res, ok := vo.Results[n.Key()]
		if !ok {
			return fmt.Errorf("query: VO missing result for node %s", n.Key())
		}
		return setop.VerifyOp(t.Op, pk, left.Acc, right.Acc, res.Acc, res.Proof)

	default:
		return fmt.Errorf("query: unsupported DAG node %T", n)
	}
}

// ReferenceEval evaluates the boolean-range query directly against a
// ground-truth per-block keyword map, bypassing the DAG and accumulators
// entirely. It exists so the planner's output can be checked for semantic
// equivalence against a trusted-by-construction interpreter (the property
// the specification calls "planner equivalence").
func ReferenceEval(spec QuerySpec, ground map[uint64]map[string][]uint64, qMax uint64) (*set.Set, error) {
	normalized := PushNegation(spec.Keyword)

	result := set.Empty()
	for blk := spec.StartBlk; blk <= spec.EndBlk; blk++ {
		blockSet, err := referenceEvalExpr(normalized, ground[blk], qMax)
		if err != nil {
			return nil, err
		}
		for _, rg := range spec.Ranges {
			rangeSet := rangeSetOf(ground[blk], rg, qMax)
			blockSet = set.Intersect(blockSet, rangeSet)
		}
		result = set.Union(result, blockSet)
	}
	return result, nil
}

func referenceEvalExpr(e Expr, block map[string][]uint64, qMax uint64) (*set.Set, error) {
	switch n := e.(type) {
	case Input:
		s, err := set.New(qMax, block[n.Word]...)
		return s, err
	case Not:
		lit, ok := n.Child.(Input)
		if !ok {
			return nil, fmt.Errorf("query: reference eval expects normalized negation, got %T", n.Child)
		}
		universe := universeOf(block, qMax)
		literal, err := set.New(qMax, block[lit.Word]...)
		if err != nil {
			return nil, err
		}
		return set.Diff(universe, literal), nil
	case And:
		acc, err := referenceEvalExpr(n.Children[0], block, qMax)
		if err != nil {
			return nil, err
		}
		for _, c := range n.Children[1:] {
			next, err := referenceEvalExpr(c, block, qMax)
			if err != nil {
				return nil, err
			}
			acc = set.Intersect(acc, next)
		}
		return acc, nil
	case Or:
		acc := set.Empty()
		for _, c := range n.Children {
			next, err := referenceEvalExpr(c, block, qMax)
			if err != nil {
				return nil, err
			}
			acc = set.Union(acc, next)
		}
		return acc, nil
	default:
		return nil, fmt.Errorf("query: unsupported expression node %T", e)
	}
}

func universeOf(block map[string][]uint64, qMax uint64) *set.Set {
	seen := make(map[uint64]struct{})
	for _, ids := range block {
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}
	all := make([]uint64, 0, len(seen))
	for id := range seen {
		all = append(all, id)
	}
	s, _ := set.New(qMax, all...)
	return s
}

func rangeSetOf(block map[string][]uint64, rg [2]uint64, qMax uint64) *set.Set {
	seen := make(map[uint64]struct{})
	for _, ids := range block {
		for _, id := range ids {
			if id >= rg[0] && id <= rg[1] {
				seen[id] = struct{}{}
			}
		}
	}
	all := make([]uint64, 0, len(seen))
	for id := range seen {
		all = append(all, id)
	}
	s, _ := set.New(qMax, all...)
	return s
}

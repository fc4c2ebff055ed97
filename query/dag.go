package query

import (
	"fmt"

	"github.com/vchainplus/vchain/index"
	"github.com/vchainplus/vchain/setop"
)

// Node is one vertex of the query DAG: either a leaf resolved by an
// external index, or a binary set operation over two child nodes.
type Node interface {
	// Key returns a canonical string identifying this node's structure,
	// used both for common-subexpression folding and cycle detection.
	Key() string
}

// LeafNode asks the external index for the objects in one block matching
// one predicate.
type LeafNode struct {
	BlockID uint64
	Pred    index.Predicate
}

// Key implements Node.
func (l *LeafNode) Key() string {
	return fmt.Sprintf("leaf(%d,%s)", l.BlockID, l.Pred)
}

// OpNode is a binary set operation over two child DAG nodes.
type OpNode struct {
	Op          setop.Op
	Left, Right Node
}

// Key implements Node.
func (o *OpNode) Key() string {
	return fmt.Sprintf("%s(%s,%s)", o.Op, o.Left.Key(), o.Right.Key())
}

// builder folds structurally identical subtrees onto the same *Node,
// implementing the "common-subexpression folding" rewrite rule via a
// key->node memo table.
type builder struct {
	memo map[string]Node
}

func newBuilder() *builder {
	return &builder{memo: make(map[string]Node)}
}

func (b *builder) intern(n Node) Node {
	if existing, ok := b.memo[n.Key()]; ok {
		return existing
	}
	b.memo[n.Key()] = n
	return n
}

func (b *builder) leaf(blockID uint64, pred index.Predicate) Node {
	return b.intern(&LeafNode{BlockID: blockID, Pred: pred})
}

func (b *builder) op(op setop.Op, l, r Node) Node {
	return b.intern(&OpNode{Op: op, Left: l, Right: r})
}

// QuerySpec is one query specification: a block window, a set of numeric
// ranges (ANDed together with the keyword expression), and a boolean
// keyword expression.
type QuerySpec struct {
	StartBlk uint64
	EndBlk   uint64
	Ranges   [][2]uint64
	Keyword  Expr
}

// Options gates the two optional rewrite passes.
type Options struct {
	Rewrite      bool // "-e": cost-based equality-saturation-style rewrite
	PruneEmpties bool // "-n": empty-set pruning of range intersections (see isKnownEmptyLeaf)
}

// Build implements the DAG-construction algorithm of the planner: it
// normalizes the keyword expression, emits per-block leaves for every
// literal and range, composes them per the block's boolean structure, and
// unions the per-block results across the query's block window.
func Build(spec QuerySpec, opts Options) (Node, error) {
	if spec.StartBlk > spec.EndBlk {
		return nil, fmt.Errorf("query: start_blk %d > end_blk %d", spec.StartBlk, spec.EndBlk)
	}

	normalized := PushNegation(spec.Keyword)
	b := newBuilder()

	var blockNodes []Node
	for blk := spec.StartBlk; blk <= spec.EndBlk; blk++ {
		n, err := b.buildBlock(normalized, spec.Ranges, blk, opts)
		if err != nil {
			return nil, err
		}
		blockNodes = append(blockNodes, n)
	}

	root := foldBinary(b, setop.Union, blockNodes)
	if opts.Rewrite {
		root = rewriteForCost(b, root)
	}
	if err := checkAcyclic(root); err != nil {
		return nil, err
	}
	return root, nil
}

// buildBlock composes one block's keyword expression and range predicates
// into a subtree: AND -> intersect, OR -> union, NOT(literal) -> difference
// from the block's universe.
func (b *builder) buildBlock(e Expr, ranges [][2]uint64, blockID uint64, opts Options) (Node, error) {
	kwNode, err := b.buildExpr(e, blockID)
	if err != nil {
		return nil, err
	}

	result := kwNode
	for _, rg := range ranges {
		rangeLeaf := b.leaf(blockID, index.Predicate{IsRange: true, Range: rg})
		result = b.combine(setop.Intersect, result, rangeLeaf, opts)
	}
	return result, nil
}

func (b *builder) buildExpr(e Expr, blockID uint64) (Node, error) {
	switch n := e.(type) {
	case Input:
		return b.leaf(blockID, index.Predicate{Keyword: n.Word}), nil
	case Not:
		lit, ok := n.Child.(Input)
		if !ok {
			return nil, fmt.Errorf("query: negation must wrap a literal after normalization, got %T", n.Child)
		}
		universe := b.leaf(blockID, index.Predicate{Universe: true})
		literal := b.leaf(blockID, index.Predicate{Keyword: lit.Word})
		return b.op(setop.Diff, universe, literal), nil
	case And:
		nodes := make([]Node, len(n.Children))
		for i, c := range n.Children {
			node, err := b.buildExpr(c, blockID)
			if err != nil {
				return nil, err
			}
			nodes[i] = node
		}
		return foldBinary(b, setop.Intersect, nodes), nil
	case Or:
		nodes := make([]Node, len(n.Children))
		for i, c := range n.Children {
			node, err := b.buildExpr(c, blockID)
			if err != nil {
				return nil, err
			}
			nodes[i] = node
		}
		return foldBinary(b, setop.Union, nodes), nil
	default:
		return nil, fmt.Errorf("query: unsupported expression node %T", e)
	}
}

// combine applies op to l and r through the builder's memo, honoring the
// empty-set pruning switch: AND annihilates on an empty side, OR treats an
// empty side as identity. Pruning here is a planning-time shortcut; a
// pruned node is simply never introduced into the DAG.
func (b *builder) combine(op setop.Op, l, r Node, opts Options) Node {
	if !opts.PruneEmpties {
		return b.op(op, l, r)
	}
	if isKnownEmptyLeaf(l) {
		if op == setop.Intersect {
			return l
		}
		return r
	}
	if isKnownEmptyLeaf(r) {
		if op == setop.Intersect {
			return r
		}
		return l
	}
	return b.op(op, l, r)
}

// isKnownEmptyLeaf reports whether a node is statically known to be empty.
// No leaf can be known empty without an index probe, so it always returns
// false: combine introduces every node even with PruneEmpties set, and
// Evaluate resolves and proves every node without pruning. The DAG and its
// evaluation are therefore the same with or without PruneEmpties. This hook
// exists so a planner extended with cheap cardinality probes has a single
// place to plug that signal in.
func isKnownEmptyLeaf(Node) bool {
	return false
}

// foldBinary combines nodes into a left-deep fold, ((n0 op n1) op n2) ....
// A single node is returned unchanged; an empty slice is not a valid input.
func foldBinary(b *builder, op setop.Op, nodes []Node) Node {
	if len(nodes) == 0 {
		return nil
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = b.op(op, acc, n)
	}
	return acc
}

// checkAcyclic walks the DAG guarding against cycles that a buggy rewrite
// rule might introduce; the construction above is acyclic by recursion, so
// this only matters after rewriteForCost runs.
func checkAcyclic(root Node) error {
	visiting := make(map[Node]bool)
	var visit func(Node) error
	visit = func(n Node) error {
		if n == nil {
			return nil
		}
		op, ok := n.(*OpNode)
		if !ok {
			return nil
		}
		if visiting[n] {
			return fmt.Errorf("query: cycle detected at node %s", n.Key())
		}
		visiting[n] = true
		if err := visit(op.Left); err != nil {
			return err
		}
		if err := visit(op.Right); err != nil {
			return err
		}
		visiting[n] = false
		return nil
	}
	return visit(root)
}

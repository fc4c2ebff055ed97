package query

import "github.com/vchainplus/vchain/setop"

// rewriteForCost implements the "-e" query-plan rewrite: it walks the DAG
// bottom-up and, for every commutative operator (union and intersection,
// both associative and commutative over sets), reorders operands so the
// cheaper subtree evaluates first. The estimator is the number of leaf
// occurrences under a subtree (a leaf reached along several paths counts
// once per path), a monotone proxy for MSM cost -- the
// specification requires only semantic equivalence and monotone
// tie-breaking, not an exact cost model.
func rewriteForCost(b *builder, root Node) Node {
	cost := make(map[Node]int)
	memo := make(map[Node]Node)

	var rewrite func(Node) Node
	rewrite = func(n Node) Node {
		if n == nil {
			return nil
		}
		if r, ok := memo[n]; ok {
			return r
		}
		op, ok := n.(*OpNode)
		if !ok {
			cost[n] = 1
			memo[n] = n
			return n
		}

		left := rewrite(op.Left)
		right := rewrite(op.Right)

		if isCommutative(op.Op) && cost[left] > cost[right] {
			left, right = right, left
		}

		out := b.op(op.Op, left, right)
		cost[out] = leafCount(out, cost)
		memo[n] = out
		return out
	}

	return rewrite(root)
}

func isCommutative(op setop.Op) bool {
	return op == setop.Intersect || op == setop.Union
}

// leafCount returns a subtree's total leaf-cost, summing children whose
// costs are already known from the bottom-up rewrite pass.
func leafCount(n Node, known map[Node]int) int {
	op, ok := n.(*OpNode)
	if !ok {
		return 1
	}
	l, lok := known[op.Left]
	r, rok := known[op.Right]
	if !lok {
		l = 1
	}
	if !rok {
		r = 1
	}
	return l + r
}

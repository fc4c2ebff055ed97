package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vchainplus/vchain/query"
)

// rawQuery mirrors the query JSON schema: one query per array element, a
// block window, a list of numeric ranges ANDed with the keyword expression,
// and the keyword expression tree itself.
type rawQuery struct {
	StartBlk   uint64      `json:"start_blk"`
	EndBlk     uint64      `json:"end_blk"`
	Range      [][2]uint64 `json:"range"`
	KeywordExp rawExpr     `json:"keyword_exp"`
}

// rawExpr mirrors the recursive keyword expression tree: exactly one of
// And, Or, Not, Input should be set.
type rawExpr struct {
	And   []rawExpr `json:"and,omitempty"`
	Or    []rawExpr `json:"or,omitempty"`
	Not   *rawExpr  `json:"not,omitempty"`
	Input string    `json:"input,omitempty"`
}

func (r rawExpr) toExpr() (query.Expr, error) {
	switch {
	case len(r.And) > 0:
		children := make([]query.Expr, len(r.And))
		for i, c := range r.And {
			e, err := c.toExpr()
			if err != nil {
				return nil, err
			}
			children[i] = e
		}
		return query.And{Children: children}, nil

	case len(r.Or) > 0:
		children := make([]query.Expr, len(r.Or))
		for i, c := range r.Or {
			e, err := c.toExpr()
			if err != nil {
				return nil, err
			}
			children[i] = e
		}
		return query.Or{Children: children}, nil

	case r.Not != nil:
		child, err := r.Not.toExpr()
		if err != nil {
			return nil, err
		}
		return query.Not{Child: child}, nil

	case r.Input != "":
		return query.Input{Word: strings.Trim(r.Input, "'")}, nil

	default:
		return nil, fmt.Errorf("query: keyword expression node has no and/or/not/input")
	}
}

func (r rawQuery) toSpec() (query.QuerySpec, error) {
	kw, err := r.KeywordExp.toExpr()
	if err != nil {
		return query.QuerySpec{}, err
	}
	ranges := make([][2]uint64, len(r.Range))
	copy(ranges, r.Range)
	return query.QuerySpec{
		StartBlk: r.StartBlk,
		EndBlk:   r.EndBlk,
		Ranges:   ranges,
		Keyword:  kw,
	}, nil
}

func parseQueries(raw []byte) ([]query.QuerySpec, error) {
	var rawQueries []rawQuery
	if err := json.Unmarshal(raw, &rawQueries); err != nil {
		return nil, err
	}
	specs := make([]query.QuerySpec, len(rawQueries))
	for i, rq := range rawQueries {
		spec, err := rq.toSpec()
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		specs[i] = spec
	}
	return specs, nil
}

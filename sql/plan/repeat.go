// Copyright 2023 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plan

import (
	"fmt"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
)

// Repeat groups the rows of its child once per grouping set, as in
// GROUP BY GROUPING SETS, ROLLUP and CUBE.
type Repeat struct {
	UnaryNode
	GroupingSets  [][]sql.Expression
	SelectedExprs []sql.Expression
}

var _ Aggregate = (*Repeat)(nil)

func NewRepeat(groupingSets [][]sql.Expression, selectedExprs []sql.Expression, child sql.Node) *Repeat {
	return &Repeat{
		UnaryNode:     UnaryNode{Child: child},
		GroupingSets:  groupingSets,
		SelectedExprs: selectedExprs,
	}
}

func (r *Repeat) Resolved() bool {
	if !r.Child.Resolved() || !expressionsResolved(r.SelectedExprs...) {
		return false
	}
	for _, set := range r.GroupingSets {
		if !expressionsResolved(set...) {
			return false
		}
	}
	return true
}

func (r *Repeat) Schema() sql.Schema {
	return exprsSchema(r.SelectedExprs)
}

func (r *Repeat) OutputExpressions() []sql.Expression {
	return r.SelectedExprs
}

// GroupByExpressions returns the union of the grouping sets keys, in order
// of first appearance.
func (r *Repeat) GroupByExpressions() []sql.Expression {
	var exprs []sql.Expression
	seen := make(map[string]bool)
	for _, set := range r.GroupingSets {
		for _, e := range set {
			key := sql.DebugString(e)
			if !seen[key] {
				seen[key] = true
				exprs = append(exprs, e)
			}
		}
	}
	return exprs
}

func (r *Repeat) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(r, len(children), 1)
	}

	nr := *r
	nr.Child = children[0]
	return &nr, nil
}

// Expressions implements the Expressioner interface. The keys of every
// grouping set come first, followed by the selected expressions.
func (r *Repeat) Expressions() []sql.Expression {
	var exprs []sql.Expression
	for _, set := range r.GroupingSets {
		exprs = append(exprs, set...)
	}
	return append(exprs, r.SelectedExprs...)
}

func (r *Repeat) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	expected := len(r.SelectedExprs)
	for _, set := range r.GroupingSets {
		expected += len(set)
	}
	if len(exprs) != expected {
		return nil, sql.ErrInvalidChildrenNumber.New(r, len(exprs), expected)
	}

	sets := make([][]sql.Expression, len(r.GroupingSets))
	i := 0
	for j, set := range r.GroupingSets {
		sets[j] = exprs[i : i+len(set)]
		i += len(set)
	}
	return NewRepeat(sets, exprs[i:], r.Child), nil
}

func (r *Repeat) String() string {
	pr := sql.NewTreePrinter()
	sets := make([]string, len(r.GroupingSets))
	for i, set := range r.GroupingSets {
		sets[i] = "(" + exprsString(set) + ")"
	}
	_ = pr.WriteNode("Repeat")
	_ = pr.WriteChildren(
		fmt.Sprintf("select: [%s]", exprsString(r.SelectedExprs)),
		fmt.Sprintf("grouping sets: [%s]", strings.Join(sets, ", ")),
		r.Child.String(),
	)
	return pr.String()
}

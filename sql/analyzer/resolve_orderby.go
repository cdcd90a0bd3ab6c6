// Copyright 2020-2021 Dolthub, Inc.
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

package analyzer

import (
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// bindSort binds the keys of an ORDER BY. Keys may be output ordinals.
// Keys are bound against the rows the sort is applied to: a DISTINCT
// projection over an aggregation and a HAVING are looked through.
func bindSort(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	s := n.(*plan.Sort)
	input := sortInput(s.Child)
	inputScope := nodeOutputScope(ctx, input, scope)
	inputChildren := func() *Scope {
		return childrenOutputScope(ctx, input, scope)
	}

	plain := newExprAnalyzer(ctx, a, s, inputScope, true, false).
		withBinder(func(ea *exprAnalyzer, col *expression.UnresolvedColumn) ([]sql.Expression, error) {
			candidates, err := ea.bindExact(col, inputScope)
			if err != nil {
				return nil, err
			}
			if len(candidates) > 0 {
				return candidates[:1], nil
			}
			return ea.bindExact(col, inputChildren())
		})
	withAggregate := newExprAnalyzer(ctx, a, s, inputScope, true, false).
		withBinder(sortAggregateBinder(ctx, input, scope, inputChildren))

	outputs := expression.SchemaToFields(s.Child.Schema())
	fields := make([]plan.SortField, len(s.SortFields))
	same := true
	for i, f := range s.SortFields {
		var err error
		if a.hasAggregateFunction(f.Column) {
			f.Column, err = withAggregate.analyze(f.Column)
		} else {
			f.Column, err = bindWithOrdinal(plain, f.Column, outputs)
		}
		if err != nil {
			return nil, transform.SameTree, err
		}
		same = same && sameExpr(s.SortFields[i].Column, f.Column)
		fields[i] = f
	}
	if same {
		return s, transform.SameTree, nil
	}
	return plan.NewSort(fields, s.Child), transform.NewTree, nil
}

func sortInput(input sql.Node) sql.Node {
	if p, ok := input.(*plan.Project); ok && p.Distinct {
		switch p.Child.(type) {
		case *plan.Having, *plan.GroupBy, *plan.Repeat:
			input = p.Child
		}
	}
	if h, ok := input.(*plan.Having); ok {
		input = h.Child
	}
	return input
}

// sortAggregateBinder binds the columns of keys with aggregate functions.
// Over a GROUP BY the outputs computed without aggregates are tried first.
func sortAggregateBinder(ctx *sql.Context, input sql.Node, scope *Scope, inputChildren func() *Scope) slotBinder {
	gb, isGroupBy := input.(*plan.GroupBy)
	nonAgg := func() *Scope {
		return lazyScope(ctx, gb, sortAggregateScope, scope, func() *Scope {
			var slots []*expression.GetField
			for _, out := range gb.SelectedExprs {
				if containsAggregate(out) {
					continue
				}
				if slot, ok := expression.ToSlot(out); ok {
					slots = append(slots, slot)
				}
			}
			return NewScope(scope, slots)
		})()
	}

	return func(ea *exprAnalyzer, col *expression.UnresolvedColumn) ([]sql.Expression, error) {
		if isGroupBy {
			candidates, err := ea.bindByScope(col, nonAgg())
			if err != nil {
				return nil, err
			}
			if len(candidates) > 0 {
				return candidates[:1], nil
			}
		}
		return ea.bindExact(col, inputChildren())
	}
}

// bindSortWithSetOperation binds the keys of an ORDER BY over a set
// operation against the output of the operation.
func bindSortWithSetOperation(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	s := n.(*plan.Sort)
	ea := simpleAnalyzer(ctx, a, s, scope)
	outputs := expression.SchemaToFields(s.Child.Schema())
	fields := make([]plan.SortField, len(s.SortFields))
	same := true
	for i, f := range s.SortFields {
		var err error
		f.Column, err = bindWithOrdinal(ea, f.Column, outputs)
		if err != nil {
			return nil, transform.SameTree, err
		}
		same = same && sameExpr(s.SortFields[i].Column, f.Column)
		fields[i] = f
	}
	if same {
		return s, transform.SameTree, nil
	}
	return plan.NewSort(fields, s.Child), transform.NewTree, nil
}

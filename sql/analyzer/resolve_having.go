// Copyright 2021 Dolthub, Inc.
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

// bindHavingAggregate binds the conditions of a HAVING over an aggregation.
// Columns inside an aggregate function refer to the input of the
// aggregation. Other columns are looked up in the grouping keys, then in the
// output of the aggregation and finally in its input, as MySQL does.
func bindHavingAggregate(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	h := n.(*plan.Having)
	agg := h.Child.(plan.Aggregate)

	aggOutput := nodeOutputScope(ctx, agg, scope)
	ea := newExprAnalyzer(ctx, a, h, aggOutput, false, true).
		withBinder(aggregateSlotBinder(ctx, agg, scope, true))

	conds, same, err := bindConjuncts(ea, h.Conditions)
	if err != nil || same {
		return h, transform.SameTree, err
	}
	return plan.NewHaving(conds, h.Child), transform.NewTree, nil
}

// aggregateSlotBinder returns the binder used by the clauses evaluated over
// the result of an aggregation. At every step only the first candidate is
// kept. If argsOnInput is set, columns within aggregate functions are only
// looked up in the input of the aggregation.
func aggregateSlotBinder(ctx *sql.Context, agg plan.Aggregate, scope *Scope, argsOnInput bool) slotBinder {
	aggOutput := nodeOutputScope(ctx, agg, scope)
	aggChild := func() *Scope {
		return childrenOutputScope(ctx, agg, scope)
	}
	groupBy := lazyScope(ctx, agg, groupByScope, scope, func() *Scope {
		var slots []*expression.GetField
		for _, key := range agg.GroupByExpressions() {
			if slot, ok := key.(*expression.GetField); ok {
				slots = append(slots, slot)
			}
		}
		return NewScope(scope, slots)
	})

	return func(ea *exprAnalyzer, col *expression.UnresolvedColumn) ([]sql.Expression, error) {
		if argsOnInput && ea.inAggregate {
			return ea.bindByScope(col, aggChild())
		}
		for _, s := range []*Scope{groupBy(), aggOutput, aggChild()} {
			candidates, err := ea.bindByScope(col, s)
			if err != nil {
				return nil, err
			}
			if len(candidates) > 0 {
				return candidates[:1], nil
			}
		}
		return nil, nil
	}
}

// bindHaving binds the conditions of a HAVING with no aggregation below,
// first against the output of its child and then against the input of it.
func bindHaving(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	h := n.(*plan.Having)
	childOutput := nodeOutputScope(ctx, h.Child, scope)
	childInput := func() *Scope {
		return childrenOutputScope(ctx, h.Child, scope)
	}

	ea := newExprAnalyzer(ctx, a, h, childOutput, false, true).
		withBinder(func(ea *exprAnalyzer, col *expression.UnresolvedColumn) ([]sql.Expression, error) {
			candidates, err := ea.bindByScope(col, childOutput)
			if err != nil || len(candidates) > 0 {
				return candidates, err
			}
			return ea.bindByScope(col, childInput())
		})

	conds, same, err := bindConjuncts(ea, h.Conditions)
	if err != nil {
		return nil, transform.SameTree, err
	}

	if !ctx.SqlMode().OnlyFullGroupBy() {
		if p, ok := h.Child.(*plan.Project); ok {
			np, nconds, err := aggregateProjectForHaving(ctx, p, conds)
			if err != nil {
				return nil, transform.SameTree, err
			}
			if np != nil {
				return plan.NewHaving(nconds, np), transform.NewTree, nil
			}
		}
	}

	if same {
		return h, transform.SameTree, nil
	}
	return plan.NewHaving(conds, h.Child), transform.NewTree, nil
}

// aggregateProjectForHaving handles a HAVING with aggregate functions over a
// projection with none when ONLY_FULL_GROUP_BY is disabled. The projection
// becomes an aggregation by wrapping its plain columns in ANY_VALUE, and the
// conditions are rewritten to reference the wrapped columns. Arguments of
// the aggregate functions in the conditions keep referencing the input of
// the projection. It returns a nil node if there is nothing to rewrite.
func aggregateProjectForHaving(ctx *sql.Context, p *plan.Project, conds []sql.Expression) (sql.Node, []sql.Expression, error) {
	hasAggregate := false
	for _, c := range conds {
		if containsAggregate(c) {
			hasAggregate = true
			break
		}
	}
	if !hasAggregate {
		return nil, nil, nil
	}

	replaced := make(map[sql.ColumnId]*expression.Alias)
	projections := make([]sql.Expression, len(p.Projections))
	for i, e := range p.Projections {
		gf, ok := e.(*expression.GetField)
		if !ok {
			projections[i] = e
			continue
		}
		projections[i] = anyValueAlias(ctx, gf)
	}
	if sameExprs(projections, p.Projections) {
		return nil, nil, nil
	}

	projections, err := adjustProjectionAggNullable(ctx, projections)
	if err != nil {
		return nil, nil, err
	}
	for i, e := range p.Projections {
		if gf, ok := e.(*expression.GetField); ok {
			replaced[gf.Id()] = projections[i].(*expression.Alias)
		}
	}

	newConds := make([]sql.Expression, len(conds))
	for i, c := range conds {
		nc, _, err := transform.ExprDown(c, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			switch e := e.(type) {
			case sql.Aggregation:
				// Stop here: aggregate arguments are evaluated over the input.
				return e, transform.NewTree, nil
			case *expression.GetField:
				if alias, ok := replaced[e.Id()]; ok {
					return alias.ToSlot(), transform.NewTree, nil
				}
			}
			return e, transform.SameTree, nil
		})
		if err != nil {
			return nil, nil, err
		}
		newConds[i] = nc
	}

	np, err := p.WithExpressions(projections...)
	if err != nil {
		return nil, nil, err
	}
	return np, newConds, nil
}

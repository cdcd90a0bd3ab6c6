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

package analyzer

import (
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// bindQualifyProject binds a QUALIFY over the projection of a query. If the
// projection is computed over an aggregation, possibly filtered by HAVING,
// columns are bound the way they are for the aggregation.
func bindQualifyProject(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	q := n.(*plan.Qualify)
	p := q.Child.(*plan.Project)

	switch child := p.Child.(type) {
	case plan.Aggregate:
		return bindQualifyByAggregate(ctx, a, q, child, scope)
	case *plan.Having:
		agg, ok := child.Child.(plan.Aggregate)
		if !ok {
			return nil, transform.SameTree, sql.ErrUnknownQueryStructure.New()
		}
		return bindQualifyByAggregate(ctx, a, q, agg, scope)
	default:
		return bindQualifyByProject(ctx, a, q, p, scope)
	}
}

func bindQualifyHaving(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	q := n.(*plan.Qualify)
	h := q.Child.(*plan.Having)

	switch child := h.Child.(type) {
	case plan.Aggregate:
		return bindQualifyByAggregate(ctx, a, q, child, scope)
	case *plan.Project:
		return bindQualifyByProject(ctx, a, q, child, scope)
	default:
		return nil, transform.SameTree, sql.ErrUnknownQueryStructure.New()
	}
}

func bindQualifyAggregate(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	q := n.(*plan.Qualify)
	return bindQualifyByAggregate(ctx, a, q, q.Child.(plan.Aggregate), scope)
}

func unknownQueryStructure(*sql.Context, *Analyzer, sql.Node, *Scope) (sql.Node, transform.TreeIdentity, error) {
	return nil, transform.SameTree, sql.ErrUnknownQueryStructure.New()
}

// bindQualifyByProject binds columns against the input of the projection
// first, so a column renamed by the projection still refers to the
// original one, and then against the projection output.
func bindQualifyByProject(ctx *sql.Context, a *Analyzer, q *plan.Qualify, p *plan.Project, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	input := childrenOutputScope(ctx, p, scope)
	output := nodeOutputScope(ctx, p, scope)

	ea := newExprAnalyzer(ctx, a, q, input, true, true).
		withBinder(func(ea *exprAnalyzer, col *expression.UnresolvedColumn) ([]sql.Expression, error) {
			candidates, err := ea.bindByThisScope(col, input)
			if err != nil || len(candidates) > 0 {
				return candidates, err
			}
			return ea.bindByThisScope(col, output)
		})
	return bindQualifyConditions(ea, q)
}

func bindQualifyByAggregate(ctx *sql.Context, a *Analyzer, q *plan.Qualify, agg plan.Aggregate, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	ea := newExprAnalyzer(ctx, a, q, nodeOutputScope(ctx, agg, scope), true, true).
		withBinder(aggregateSlotBinder(ctx, agg, scope, false))
	return bindQualifyConditions(ea, q)
}

// bindQualifyConditions binds and casts the conditions, and splits the
// result into its conjuncts.
func bindQualifyConditions(ea *exprAnalyzer, q *plan.Qualify) (sql.Node, transform.TreeIdentity, error) {
	conds, same, err := bindConjuncts(ea, q.Conditions)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if same {
		return q, transform.SameTree, nil
	}

	var split []sql.Expression
	for _, c := range conds {
		split = append(split, expression.SplitConjunction(c)...)
	}
	return plan.NewQualify(split, q.Child), transform.NewTree, nil
}

// Copyright 2024 Dolthub, Inc.
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
	"github.com/dolthub/go-sql-binder/sql/expression/function/aggregation"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// bindProject binds the projections of a Project against the output of its
// child, expanding stars.
func bindProject(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	p := n.(*plan.Project)
	ea := simpleAnalyzer(ctx, a, p, scope)
	projections, err := expandProjections(ea, p.Projections, true)
	if err != nil {
		return nil, transform.SameTree, err
	}
	projections, err = adjustProjectionAggNullable(ctx, projections)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if sameExprs(p.Projections, projections) {
		return p, transform.SameTree, nil
	}
	// star expansion changes the projection count
	return plan.NewProject(projections, p.Child).WithDistinct(p.Distinct), transform.NewTree, nil
}

// bindLoadProject binds a LoadProject like a Project, leaving aggregates
// untouched.
func bindLoadProject(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	p := n.(*plan.LoadProject)
	ea := simpleAnalyzer(ctx, a, p, scope)
	projections, err := expandProjections(ea, p.Projections, true)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if sameExprs(p.Projections, projections) {
		return p, transform.SameTree, nil
	}
	return plan.NewLoadProject(projections, p.Child), transform.NewTree, nil
}

func bindOneRowRelation(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	r := n.(*plan.UnresolvedOneRowRelation)
	ea := simpleAnalyzer(ctx, a, r, scope)
	projections, err := expandProjections(ea, r.Projections, true)
	if err != nil {
		return nil, transform.SameTree, err
	}
	projections, err = adjustProjectionAggNullable(ctx, projections)
	if err != nil {
		return nil, transform.SameTree, err
	}
	return plan.NewOneRowRelation(r.Id, projections), transform.NewTree, nil
}

// adjustProjectionAggNullable forces the aggregates of a projection list to
// be nullable when the list has an aggregate, since an aggregate over no rows
// is NULL. Unless ONLY_FULL_GROUP_BY is enabled, plain columns next to an
// aggregate become ANY_VALUE picks.
func adjustProjectionAggNullable(ctx *sql.Context, exprs []sql.Expression) ([]sql.Expression, error) {
	hasAggregate := false
	for _, e := range exprs {
		if containsAggregate(e) {
			hasAggregate = true
			break
		}
	}
	if !hasAggregate {
		return exprs, nil
	}

	strict := ctx.SqlMode().OnlyFullGroupBy()
	result := make([]sql.Expression, len(exprs))
	for i, e := range exprs {
		ne, _, err := transform.ExprDown(e, forceAggNullable)
		if err != nil {
			return nil, err
		}
		if gf, ok := ne.(*expression.GetField); ok && !strict {
			ne = anyValueAlias(ctx, gf)
		}
		result[i] = ne
	}
	return result, nil
}

func forceAggNullable(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
	agg, ok := e.(sql.NullableAggregation)
	if !ok || agg.AlwaysNullable() {
		return e, transform.SameTree, nil
	}
	return agg.WithAlwaysNullable(true), transform.NewTree, nil
}

// anyValueAlias returns a new output column for ANY_VALUE(slot), named
// after the slot.
func anyValueAlias(ctx *sql.Context, slot *expression.GetField) *expression.Alias {
	return expression.NewAlias(slot.Name(), aggregation.NewAnyValue(slot)).
		WithId(ctx.Statement.NextColumnId())
}

// Copyright 2022 Dolthub, Inc.
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
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/expression/function/aggregation"
	"github.com/dolthub/go-sql-binder/sql/plan"
)

func TestBindHavingAggregate(t *testing.T) {
	testCases := []struct {
		name    string
		outputs []sql.Expression
		cond    sql.Expression
		// expected returns the id the column of the condition is bound to.
		expected func(tbl *plan.ResolvedTable, gb *plan.GroupBy) sql.ColumnId
	}{
		{
			name:    "aggregate output",
			outputs: exprs(uc("a"), alias("s", uf("sum", uc("b")))),
			cond:    gt(uc("s"), lit(1)),
			expected: func(_ *plan.ResolvedTable, gb *plan.GroupBy) sql.ColumnId {
				return gb.SelectedExprs[1].(*expression.Alias).Id()
			},
		},
		{
			name:    "grouping keys before outputs",
			outputs: exprs(alias("a", plus(uc("b"), lit(1)))),
			cond:    gt(uc("a"), lit(1)),
			expected: func(tbl *plan.ResolvedTable, _ *plan.GroupBy) sql.ColumnId {
				return tbl.Schema()[0].Id
			},
		},
		{
			name:    "input of the aggregate",
			outputs: exprs(uc("a")),
			cond:    gt(uc("b"), lit(1)),
			expected: func(tbl *plan.ResolvedTable, _ *plan.GroupBy) sql.ColumnId {
				return tbl.Schema()[1].Id
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := strictContext()
			tbl := table(ctx, "t", "a", "b")
			gb := plan.NewGroupBy(tt.outputs, exprs(uc("a")), tbl)

			result := analyze(t, ctx, plan.NewHaving(exprs(tt.cond), gb))
			h := result.(*plan.Having)
			require.Len(t, h.Conditions, 1)
			require.Equal(t, tt.expected(tbl, h.Child.(*plan.GroupBy)), slotOf(t, leftOf(t, h.Conditions[0])).Id())
		})
	}
}

func TestBindHavingAggregateArguments(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b")

	// b is also the name of an output, but aggregate arguments read the input.
	gb := plan.NewGroupBy(exprs(uc("a"), alias("b", uf("count", expression.NewStar()))), exprs(uc("a")), tbl)
	result := analyze(t, ctx, plan.NewHaving(exprs(gt(uf("max", uc("b")), lit(1))), gb))

	maxB := leftOf(t, result.(*plan.Having).Conditions[0]).(*aggregation.Max)
	require.Equal(tbl.Schema()[1].Id, slotOf(t, maxB.Child).Id())
}

func TestBindHaving(t *testing.T) {
	testCases := []struct {
		name  string
		cond  sql.Expression
		index int
	}{
		{"projection output", gt(uc("a"), lit(1)), 0},
		{"projection input", gt(uc("b"), lit(1)), 1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := strictContext()
			tbl := table(ctx, "t", "a", "b")
			p := plan.NewProject(exprs(uc("a")), tbl)

			result := analyze(t, ctx, plan.NewHaving(exprs(tt.cond), p))
			cond := result.(*plan.Having).Conditions[0]
			require.Equal(t, tbl.Schema()[tt.index].Id, slotOf(t, leftOf(t, cond)).Id())
		})
	}
}

func TestBindHavingOverProjectWithAggregate(t *testing.T) {
	testCases := []struct {
		name      string
		ctx       *sql.Context
		rewritten bool
	}{
		{"only full group by", strictContext(), false},
		{"projection becomes an aggregate", lenientContext(), true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			tbl := table(tt.ctx, "t", "a", "b")
			p := plan.NewProject(exprs(uc("a")), tbl)
			having := plan.NewHaving(exprs(gt(uf("sum", uc("b")), lit(1)), gt(uc("a"), lit(0))), p)

			h := analyze(t, tt.ctx, having).(*plan.Having)
			sum := leftOf(t, h.Conditions[0]).(*aggregation.Sum)
			require.Equal(tbl.Schema()[1].Id, slotOf(t, sum.Child).Id())

			projections := h.Child.(*plan.Project).Projections
			a := slotOf(t, leftOf(t, h.Conditions[1]))
			if !tt.rewritten {
				require.IsType(&expression.GetField{}, projections[0])
				require.Equal(tbl.Schema()[0].Id, a.Id())
				return
			}

			av := projections[0].(*expression.Alias)
			require.Equal("a", av.Name())
			anyValue := av.Child.(*aggregation.AnyValue)
			require.True(anyValue.AlwaysNullable())
			require.Equal(av.Id(), a.Id())
		})
	}
}

func TestBindQualify(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b")
	p := plan.NewProject(exprs(alias("b", uc("a")), alias("x", uc("b"))), tbl)

	result := analyze(t, ctx, plan.NewQualify(exprs(and(gt(uc("b"), lit(1)), lt(uc("x"), lit(5)))), p))

	q := result.(*plan.Qualify)
	require.Len(q.Conditions, 2)
	// b is looked up in the input of the projection first.
	require.Equal(tbl.Schema()[1].Id, slotOf(t, leftOf(t, q.Conditions[0])).Id())
	x := q.Child.(*plan.Project).Projections[1].(*expression.Alias)
	require.Equal(x.Id(), slotOf(t, leftOf(t, q.Conditions[1])).Id())
}

func TestBindQualifyAggregate(t *testing.T) {
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b")
	gb := func() *plan.GroupBy {
		return plan.NewGroupBy(exprs(uc("a"), alias("s", uf("sum", uc("b")))), exprs(uc("a")), tbl)
	}

	testCases := []struct {
		name string
		node func() sql.Node
	}{
		{
			name: "over aggregate",
			node: func() sql.Node {
				return plan.NewQualify(exprs(gt(uc("s"), lit(1))), gb())
			},
		},
		{
			name: "over projection of aggregate",
			node: func() sql.Node {
				return plan.NewQualify(exprs(gt(uc("s"), lit(1))), plan.NewProject(exprs(uc("a"), uc("s")), gb()))
			},
		},
		{
			name: "over projection of having",
			node: func() sql.Node {
				having := plan.NewHaving(exprs(gt(uc("a"), lit(0))), gb())
				return plan.NewQualify(exprs(gt(uc("s"), lit(1))), plan.NewProject(exprs(uc("a"), uc("s")), having))
			},
		},
		{
			name: "over having",
			node: func() sql.Node {
				return plan.NewQualify(exprs(gt(uc("s"), lit(1))), plan.NewHaving(exprs(gt(uc("a"), lit(0))), gb()))
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			result := analyze(t, ctx, tt.node())
			bound := findNode[*plan.GroupBy](t, result)
			s := bound.SelectedExprs[1].(*expression.Alias)
			cond := result.(*plan.Qualify).Conditions[0]
			require.Equal(t, s.Id(), slotOf(t, leftOf(t, cond)).Id())
		})
	}
}

func TestBindQualifyUnknownStructure(t *testing.T) {
	testCases := []struct {
		name string
		node func(tbl sql.Node) sql.Node
		err  *errors.Kind
	}{
		{
			name: "projection of having without aggregate",
			node: func(tbl sql.Node) sql.Node {
				having := plan.NewHaving(exprs(gt(uc("a"), lit(0))), tbl)
				return plan.NewQualify(exprs(gt(uc("a"), lit(1))), plan.NewProject(exprs(uc("a")), having))
			},
			err: sql.ErrUnknownQueryStructure,
		},
		{
			name: "filter",
			node: func(tbl sql.Node) sql.Node {
				return plan.NewQualify(exprs(gt(uc("a"), lit(1))), plan.NewFilter(exprs(gt(uc("a"), lit(0))), tbl))
			},
			err: sql.ErrUnknownQueryStructure,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := strictContext()
			_, err := newTestAnalyzer().Analyze(ctx, tt.node(table(ctx, "t", "a")))
			require.Error(t, err)
			require.True(t, tt.err.Is(err), "unexpected error %v", err)
		})
	}
}

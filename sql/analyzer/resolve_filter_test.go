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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/plan"
)

func TestBindFilter(t *testing.T) {
	ctx := strictContext()
	tbl := typedTable(ctx, "t",
		column(ctx, "a", sql.Int64, false),
		column(ctx, "flag", sql.Boolean, true),
		column(ctx, "arr", sql.CreateArray(sql.Int64), false),
	)
	a, flag := tbl.Schema()[0].Id, tbl.Schema()[1].Id

	testCases := []struct {
		name  string
		cond  sql.Expression
		check func(t *testing.T, cond sql.Expression)
		err   bool
	}{
		{
			name: "comparison",
			cond: gt(uc("a"), lit(1)),
			check: func(t *testing.T, cond sql.Expression) {
				require.IsType(t, &expression.GreaterThan{}, cond)
				require.Equal(t, a, slotOf(t, leftOf(t, cond)).Id())
			},
		},
		{
			name: "boolean column",
			cond: uc("flag"),
			check: func(t *testing.T, cond sql.Expression) {
				require.Equal(t, flag, slotOf(t, cond).Id())
			},
		},
		{
			name: "number column is cast",
			cond: uc("a"),
			check: func(t *testing.T, cond sql.Expression) {
				cast, ok := cond.(*expression.Cast)
				require.True(t, ok, "expected a cast, got %s", sql.DebugString(cond))
				require.True(t, sql.IsBoolean(cast.Type()))
				require.Equal(t, a, slotOf(t, cast.Child).Id())
			},
		},
		{
			name: "constant operand folded",
			cond: and(gt(uc("a"), lit(1)), eq(lit(1), lit(1))),
			check: func(t *testing.T, cond sql.Expression) {
				conj, ok := cond.(*expression.And)
				require.True(t, ok, "unexpected condition %s", sql.DebugString(cond))
				require.Equal(t, expression.NewLiteral(true, sql.Boolean), conj.Right)
			},
		},
		{
			name: "array is not a predicate",
			cond: uc("arr"),
			err:  true,
		},
	}

	filters := map[string]func(conds []sql.Expression, child sql.Node) sql.Node{
		"filter": func(conds []sql.Expression, child sql.Node) sql.Node {
			return plan.NewFilter(conds, child)
		},
		"pre filter": func(conds []sql.Expression, child sql.Node) sql.Node {
			return plan.NewPreFilter(conds, child)
		},
	}

	for kind, newFilter := range filters {
		for _, tt := range testCases {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				n := plan.NewProject(exprs(uc("a")), newFilter(exprs(tt.cond), tbl))
				result, err := newTestAnalyzer().Analyze(ctx, n)
				if tt.err {
					require.Error(t, err)
					require.True(t, sql.ErrInvalidBooleanCast.Is(err), "unexpected error %v", err)
					return
				}
				require.NoError(t, err)

				conds := result.(*plan.Project).Child.(sql.Expressioner).Expressions()
				require.Len(t, conds, 1)
				tt.check(t, conds[0])
			})
		}
	}
}

func TestBindCorrelatedExists(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	outer := table(ctx, "t", "a")
	inner := table(ctx, "u", "b")

	query := plan.NewProject(exprs(uc("b")), plan.NewFilter(exprs(eq(uc("b"), uc("t", "a"))), inner))
	exists := expression.NewExists(expression.NewSubquery(query))
	result := analyze(t, ctx, plan.NewFilter(exprs(exists), outer))

	bound := result.(*plan.Filter).Conditions[0].(*expression.Exists)
	require.Len(bound.Query.Correlated, 1)
	require.Equal(outer.Schema()[0].Id, bound.Query.Correlated[0].Id())

	innerFilter := findNode[*plan.Filter](t, bound.Query.Query)
	cond := innerFilter.Conditions[0]
	require.Equal(inner.Schema()[0].Id, slotOf(t, leftOf(t, cond)).Id())
	require.Equal(outer.Schema()[0].Id, slotOf(t, cond.Children()[1]).Id())
}

func TestBindScalarSubquery(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	outer := table(ctx, "t", "a")
	inner := table(ctx, "u", "b")

	sq := expression.NewSubquery(plan.NewProject(exprs(uf("max", uc("b"))), inner))
	result := analyze(t, ctx, plan.NewProject(exprs(uc("a"), alias("m", sq)), outer))

	m := result.(*plan.Project).Projections[1].(*expression.Alias)
	bound := m.Child.(*expression.Subquery)
	require.Empty(bound.Correlated)
	require.True(bound.Query.Resolved())
}

func TestBindSubqueryUnknownOuterColumn(t *testing.T) {
	ctx := strictContext()
	query := plan.NewProject(exprs(uc("b")), plan.NewFilter(exprs(eq(uc("b"), uc("z"))), table(ctx, "u", "b")))
	n := plan.NewFilter(exprs(expression.NewExists(expression.NewSubquery(query))), table(ctx, "t", "a"))

	_, err := newTestAnalyzer().Analyze(ctx, n)
	require.Error(t, err)
	require.True(t, sql.ErrColumnNotFound.Is(err))
}

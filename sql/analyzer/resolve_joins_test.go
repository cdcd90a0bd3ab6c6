// Copyright 2021-2022 Dolthub, Inc.
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

func TestBindJoin(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	left := table(ctx, "t", "a", "x")
	right := table(ctx, "u", "b", "x")

	result := analyze(t, ctx, plan.NewInnerJoin(left, right, eq(uc("a"), uc("u", "x"))))

	j := result.(*plan.JoinNode)
	require.Equal(plan.JoinTypeInner, j.Op)
	require.Empty(j.HashConditions)
	require.Equal(
		expression.NewEquals(expression.NewGetFieldFromColumn(left.Schema()[0]), expression.NewGetFieldFromColumn(right.Schema()[1])),
		j.OtherConditions[0],
	)
}

func TestBindJoinErrors(t *testing.T) {
	ctx := strictContext()
	left := table(ctx, "t", "a", "x")
	right := table(ctx, "u", "b", "x")

	testCases := []struct {
		name string
		cond sql.Expression
		err  string
	}{
		{"unknown column", eq(uc("a"), uc("z")), "Unknown column 'z' in 'JOINNODE'"},
		{"ambiguous column", eq(uc("a"), uc("x")), "ambiguous"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestAnalyzer().Analyze(ctx, plan.NewInnerJoin(left, right, tt.cond))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestBindJoinDuplicateAlias(t *testing.T) {
	ctx := strictContext()
	sq := func(name string) sql.Node {
		return plan.NewSubqueryAlias(name, plan.NewProject(exprs(uc("a")), table(ctx, "base", "a")))
	}
	otherDb := plan.NewResolvedTable(ctx.Statement.NextRelationId(), []string{"internal", "other"}, "t",
		sql.Schema{column(ctx, "a", sql.Int64, false)})

	testCases := []struct {
		name string
		node sql.Node
		dup  string
	}{
		{
			name: "same table twice",
			node: plan.NewCrossJoin(table(ctx, "t", "a"), table(ctx, "t", "a")),
			dup:  "t",
		},
		{
			name: "nested join",
			node: plan.NewCrossJoin(plan.NewCrossJoin(table(ctx, "t", "a"), table(ctx, "u", "a")), table(ctx, "u", "b")),
			dup:  "u",
		},
		{
			name: "same subquery alias",
			node: plan.NewCrossJoin(sq("s"), sq("s")),
			dup:  "s",
		},
		{
			name: "tables of different databases",
			node: plan.NewCrossJoin(table(ctx, "t", "a"), otherDb),
		},
		{
			name: "different subquery aliases",
			node: plan.NewCrossJoin(sq("s"), sq("r")),
		},
		{
			name: "subquery alias named like a table of its database",
			node: plan.NewCrossJoin(plan.NewSubqueryAlias("t", table(ctx, "x", "a")), table(ctx, "t", "b")),
		},
		{
			name: "same subquery alias over tables",
			node: plan.NewCrossJoin(plan.NewSubqueryAlias("s", table(ctx, "x", "a")), plan.NewSubqueryAlias("s", table(ctx, "y", "a"))),
			dup:  "s",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			// The join is resolved already, a projection makes it go through binding.
			_, err := newTestAnalyzer().Analyze(ctx, plan.NewProject(exprs(expression.NewStar()), tt.node))
			if tt.dup == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, sql.ErrDuplicateAliasOrTable.Is(err), "unexpected error %v", err)
			require.Equal(t, sql.ErrDuplicateAliasOrTable.New(tt.dup).Error(), err.Error())
		})
	}
}

func TestBindUsingJoin(t *testing.T) {
	testCases := []struct {
		name string
		op   plan.JoinType
		want plan.JoinType
	}{
		{"inner", plan.JoinTypeInner, plan.JoinTypeInner},
		{"cross becomes inner", plan.JoinTypeCross, plan.JoinTypeInner},
		{"left outer", plan.JoinTypeLeftOuter, plan.JoinTypeLeftOuter},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := strictContext()
			left := table(ctx, "t", "a", "b")
			right := table(ctx, "u", "a", "c")

			using := plan.NewUsingJoin(left, right, tt.op, uc("a"))
			result := analyze(t, ctx, plan.NewProject(exprs(expression.NewStar()), using))

			j := findNode[*plan.JoinNode](t, result)
			require.Equal(tt.want, j.Op)
			require.Len(j.HashConditions, 1)
			cond := j.HashConditions[0].(*expression.Equals)
			require.Equal(left.Schema()[0].Id, slotOf(t, cond.Left).Id())
			require.Equal(right.Schema()[0].Id, slotOf(t, cond.Right).Id())
			require.Equal([]sql.ColumnId{right.Schema()[0].Id}, j.ExceptAsteriskOutputs)

			// * skips the using column of the right side.
			require.Equal(
				[]sql.ColumnId{left.Schema()[0].Id, left.Schema()[1].Id, right.Schema()[1].Id},
				schemaIds(result.Schema()),
			)
		})
	}
}

func TestBindUsingJoinMissingColumn(t *testing.T) {
	ctx := strictContext()
	using := plan.NewUsingJoin(table(ctx, "t", "a", "b"), table(ctx, "u", "c"), plan.JoinTypeInner, uc("b"))

	_, err := newTestAnalyzer().Analyze(ctx, using)
	require.Error(t, err)
	require.True(t, sql.ErrColumnNotFound.Is(err))
}

func TestBindSubqueryAlias(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b")

	sq := plan.NewSubqueryAlias("s", plan.NewProject(exprs(uc("a"), alias("c", plus(uc("b"), lit(1)))), tbl)).
		WithQualifier([]string{"db"})
	result := analyze(t, ctx, plan.NewProject(exprs(uc("s", "a"), uc("db", "s", "c")), sq))

	p := result.(*plan.Project)
	bound := p.Child.(*plan.SubqueryAlias)
	inner := bound.Child.(*plan.Project)
	// Ids are preserved through the alias.
	require.Equal(tbl.Schema()[0].Id, slotOf(t, p.Projections[0]).Id())
	require.Equal(slotOf(t, inner.Projections[1]).Id(), slotOf(t, p.Projections[1]).Id())
	require.Equal([]string{"db", "s"}, bound.Schema()[0].Qualifier)

	_, err := newTestAnalyzer().Analyze(ctx, plan.NewProject(exprs(uc("t", "a")), sq))
	require.Error(err)
	require.True(sql.ErrColumnNotFound.Is(err))
}

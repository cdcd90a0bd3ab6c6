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
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/expression/function/aggregation"
	"github.com/dolthub/go-sql-binder/sql/plan"
)

func TestBindProject(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b")

	result := analyze(t, ctx, plan.NewProject(exprs(
		uc("a"),
		uc("t", "b"),
		plus(uc("a"), lit(1)),
		alias("c", uc("db", "t", "a")),
	), tbl))

	p := result.(*plan.Project)
	require.Len(p.Projections, 4)
	require.Equal(tbl.Schema()[0].Id, slotOf(t, p.Projections[0]).Id())
	require.Equal(tbl.Schema()[1].Id, slotOf(t, p.Projections[1]).Id())

	anon, ok := p.Projections[2].(*expression.Alias)
	require.True(ok)
	require.True(anon.Anonymous())
	require.NotZero(anon.Id())

	named := p.Projections[3].(*expression.Alias)
	require.Equal("c", named.Name())
	require.Equal(tbl.Schema()[0].Id, slotOf(t, named.Child).Id())
	require.NotEqual(anon.Id(), named.Id())

	schema := p.Schema()
	require.Equal([]string{"a", "b", anon.Name(), "c"}, schema.Names())
}

func TestBindProjectErrors(t *testing.T) {
	ctx := strictContext()
	tbl := table(ctx, "t", "a")
	other := table(ctx, "u", "a")

	testCases := []struct {
		name string
		node sql.Node
		err  *errors.Kind
	}{
		{
			name: "unknown column",
			node: plan.NewProject(exprs(uc("z")), tbl),
			err:  sql.ErrColumnNotFound,
		},
		{
			name: "unknown qualifier",
			node: plan.NewProject(exprs(uc("x", "a")), tbl),
			err:  sql.ErrColumnNotFound,
		},
		{
			name: "ambiguous column",
			node: plan.NewProject(exprs(uc("a")), plan.NewCrossJoin(tbl, other)),
			err:  sql.ErrAmbiguousColumnName,
		},
		{
			name: "unknown function",
			node: plan.NewProject(exprs(uf("nope", uc("a"))), tbl),
			err:  sql.ErrFunctionNotFound,
		},
		{
			name: "too many name parts",
			node: plan.NewProject(exprs(uc("c", "d", "t", "a", "x")), tbl),
			err:  sql.ErrUnsupportedColumnName,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestAnalyzer().Analyze(ctx, tt.node)
			require.Error(t, err)
			require.True(t, tt.err.Is(err), "unexpected error %v", err)
			require.True(t, sql.IsAnalysisError(err))
		})
	}
}

func TestBindProjectUnknownColumnNamesNode(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	_, err := newTestAnalyzer().Analyze(ctx, plan.NewProject(exprs(uc("z")), table(ctx, "t", "a")))
	require.Error(err)
	require.Equal("Unknown column 'z' in 'PROJECT'", err.Error())
}

func TestBindProjectAggregates(t *testing.T) {
	testCases := []struct {
		name     string
		ctx      *sql.Context
		anyValue bool
	}{
		{
			name:     "strict mode keeps plain columns",
			ctx:      strictContext(),
			anyValue: false,
		},
		{
			name:     "plain columns become any_value",
			ctx:      lenientContext(),
			anyValue: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			tbl := table(tt.ctx, "t", "a", "b")
			result := analyze(t, tt.ctx, plan.NewProject(exprs(uc("a"), uf("sum", uc("b"))), tbl))

			p := result.(*plan.Project)
			if tt.anyValue {
				av, ok := p.Projections[0].(*expression.Alias)
				require.True(ok)
				require.Equal("a", av.Name())
				require.IsType(&aggregation.AnyValue{}, av.Child)
			} else {
				require.Equal(tbl.Schema()[0].Id, p.Projections[0].(*expression.GetField).Id())
			}

			sum := p.Projections[1].(*expression.Alias).Child.(*aggregation.Sum)
			require.True(sum.AlwaysNullable())
			require.True(sum.IsNullable())
		})
	}
}

func TestBindCountStar(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	result := analyze(t, ctx, plan.NewProject(exprs(uf("COUNT", expression.NewStar())), table(ctx, "t", "a")))
	count := result.(*plan.Project).Projections[0].(*expression.Alias).Child.(*aggregation.Count)
	require.True(count.IsStar())
}

func TestBindWindowFunction(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b")

	window := sql.NewWindow(exprs(uc("a")), exprs(uc("b")))
	result := analyze(t, ctx, plan.NewProject(
		exprs(expression.NewUnresolvedFunction("row_number", window)),
		tbl,
	))

	we := result.(*plan.Project).Projections[0].(*expression.Alias).Child.(*expression.WindowExpression)
	require.Equal(
		[]sql.ColumnId{tbl.Schema()[0].Id, tbl.Schema()[1].Id},
		[]sql.ColumnId{slotOf(t, we.Window.PartitionBy[0]).Id(), slotOf(t, we.Window.OrderBy[0]).Id()},
	)
}

func TestBindProjectFoldsConstants(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	result := analyze(t, ctx, plan.NewProject(exprs(alias("x", plus(lit(1), lit(2)))), table(ctx, "t", "a")))
	x := result.(*plan.Project).Projections[0].(*expression.Alias)
	require.Equal(expression.NewLiteral(int64(3), sql.Int64), x.Child)
}

func TestBindStar(t *testing.T) {
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b")
	other := table(ctx, "u", "c")
	a, b, c := tbl.Schema()[0].Id, tbl.Schema()[1].Id, other.Schema()[0].Id
	join := plan.NewCrossJoin(tbl, other)

	testCases := []struct {
		name     string
		child    sql.Node
		star     *expression.Star
		expected []sql.ColumnId
		err      *errors.Kind
	}{
		{
			name:     "star",
			child:    join,
			star:     expression.NewStar(),
			expected: []sql.ColumnId{a, b, c},
		},
		{
			name:     "qualified star",
			child:    join,
			star:     expression.NewQualifiedStar("u"),
			expected: []sql.ColumnId{c},
		},
		{
			name:     "fully qualified star",
			child:    join,
			star:     expression.NewQualifiedStar("internal", "db", "t"),
			expected: []sql.ColumnId{a, b},
		},
		{
			name:     "except",
			child:    join,
			star:     expression.NewStar().WithExcept(uc("b"), uc("u", "c")),
			expected: []sql.ColumnId{a},
		},
		{
			name:  "unknown qualifier",
			child: join,
			star:  expression.NewQualifiedStar("x"),
			err:   sql.ErrUnknownStarQualifier,
		},
		{
			name:  "qualifier too long",
			child: join,
			star:  expression.NewQualifiedStar("c", "internal", "db", "t"),
			err:   sql.ErrUnsupportedStarQualifier,
		},
		{
			name:  "everything excepted",
			child: tbl,
			star:  expression.NewStar().WithExcept(uc("a"), uc("b")),
			err:   sql.ErrAllSlotsExcepted,
		},
		{
			name:  "unknown except column",
			child: tbl,
			star:  expression.NewStar().WithExcept(uc("z")),
			err:   sql.ErrColumnNotFound,
		},
		{
			name:  "replace excepted column",
			child: tbl,
			star:  expression.NewStar().WithExcept(uc("a")).WithReplace(alias("a", lit(1))),
			err:   sql.ErrReplaceColumnExcepted,
		},
		{
			name:  "duplicate replace",
			child: tbl,
			star:  expression.NewStar().WithReplace(alias("a", lit(1)), alias("a", lit(2))),
			err:   sql.ErrDuplicateReplaceColumn,
		},
		{
			name:  "replace column outside the star",
			child: join,
			star:  expression.NewQualifiedStar("t").WithReplace(alias("c", lit(1))),
			err:   sql.ErrInvalidReplaceColumn,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			result, err := newTestAnalyzer().Analyze(ctx, plan.NewProject(exprs(tt.star), tt.child))
			if tt.err != nil {
				require.Error(err)
				require.True(tt.err.Is(err), "unexpected error %v", err)
				return
			}
			require.NoError(err)
			require.Equal(tt.expected, schemaIds(result.Schema()))
		})
	}
}

func TestBindStarChangesProjectionCount(t *testing.T) {
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b", "c")
	a, b, c := tbl.Schema()[0].Id, tbl.Schema()[1].Id, tbl.Schema()[2].Id

	testCases := []struct {
		name     string
		project  *plan.Project
		expected []sql.ColumnId
		distinct bool
	}{
		{
			name:     "star",
			project:  plan.NewProject(exprs(expression.NewStar()), tbl),
			expected: []sql.ColumnId{a, b, c},
		},
		{
			name:     "distinct star",
			project:  plan.NewProject(exprs(expression.NewStar()), tbl).WithDistinct(true),
			expected: []sql.ColumnId{a, b, c},
			distinct: true,
		},
		{
			name:     "star except",
			project:  plan.NewProject(exprs(expression.NewStar().WithExcept(uc("b"))), tbl),
			expected: []sql.ColumnId{a, c},
		},
		{
			name:     "star next to a column",
			project:  plan.NewProject(exprs(uc("b"), expression.NewStar()), tbl).WithDistinct(true),
			expected: []sql.ColumnId{b, a, b, c},
			distinct: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			result := analyze(t, ctx, tt.project)
			p := result.(*plan.Project)
			require.Equal(tt.expected, schemaIds(p.Schema()))
			require.Len(p.Projections, len(tt.expected))
			require.Equal(tt.distinct, p.Distinct)
		})
	}
}

func TestBindStarReplace(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	tbl := table(ctx, "t", "a", "b")

	star := expression.NewStar().WithReplace(alias("a", plus(uc("a"), lit(10))))
	result := analyze(t, ctx, plan.NewProject(exprs(star), tbl))

	p := result.(*plan.Project)
	require.Len(p.Projections, 2)
	replaced := p.Projections[0].(*expression.Alias)
	require.Equal("a", replaced.Name())
	require.NotEqual(tbl.Schema()[0].Id, replaced.Id())
	require.IsType(&expression.Arithmetic{}, replaced.Child)
	require.Equal(tbl.Schema()[1].Id, slotOf(t, p.Projections[1]).Id())
}

func TestBindStarRecordsExpansion(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	star := expression.NewStar().WithSpan(7, 8)
	analyze(t, ctx, plan.NewProject(exprs(star), table(ctx, "t", "a", "b")))

	require.Equal(
		map[sql.SqlSpan]string{
			{Start: 7, End: 8}: "`internal`.`db`.`t`.`a`, `internal`.`db`.`t`.`b`",
		},
		ctx.Statement.IndexInSqlToString(),
	)
}

func TestBindLoadProject(t *testing.T) {
	require := require.New(t)
	ctx := lenientContext()
	tbl := table(ctx, "t", "a", "b")

	result := analyze(t, ctx, plan.NewLoadProject(exprs(expression.NewStar(), uf("max", uc("b"))), tbl))

	p := result.(*plan.LoadProject)
	require.Len(p.Projections, 3)
	// Plain columns are left alone and aggregates keep their nullability.
	require.IsType(&expression.GetField{}, p.Projections[0])
	require.False(p.Projections[2].(*expression.Alias).Child.(*aggregation.Max).AlwaysNullable())
}

func TestBindOneRowRelation(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	result := analyze(t, ctx, plan.NewUnresolvedOneRowRelation(5, lit(1), alias("x", plus(lit(1), lit(2)))))

	r := result.(*plan.OneRowRelation)
	require.Equal(sql.RelationId(5), r.Id)
	require.Len(r.Projections, 2)
	require.True(r.Projections[0].(*expression.Alias).Anonymous())
	require.Equal([]string{"1", "x"}, r.Schema().Names())
}

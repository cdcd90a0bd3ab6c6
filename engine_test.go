// Copyright 2020-2023 Dolthub, Inc.
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

package binder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	binder "github.com/dolthub/go-sql-binder"
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/plan"
)

func newTable(stmtCtx *sql.StatementContext, name string, columns ...string) *plan.ResolvedTable {
	schema := make(sql.Schema, len(columns))
	for i, c := range columns {
		schema[i] = &sql.Column{Id: stmtCtx.NextColumnId(), Name: c, Type: sql.Int64}
	}
	return plan.NewResolvedTable(stmtCtx.NextRelationId(), []string{"internal", "mydb"}, name, schema)
}

func selectFrom(query string, name string, projections ...sql.Expression) binder.Statement {
	stmtCtx := sql.NewStatementContext(query)
	stmt := binder.NewQuery(query, plan.NewProject(projections, newTable(stmtCtx, name, "a", "b")))
	stmt.Context = stmtCtx
	return stmt
}

func TestBind(t *testing.T) {
	require := require.New(t)
	e := binder.New()
	ctx := e.NewContext(context.Background(), "mydb")

	stmt := selectFrom("SELECT a, b + 1 AS c FROM t", "t",
		expression.NewUnresolvedColumn("a"),
		expression.NewAlias("c", expression.NewPlus(expression.NewUnresolvedColumn("b"), expression.NewLiteral(int64(1), sql.Int64))),
	)
	n, err := e.Bind(ctx, stmt)
	require.NoError(err)
	require.True(n.Resolved())

	schema := n.Schema()
	require.Equal("a", schema[0].Name)
	require.Equal("c", schema[1].Name)

	tableIds := map[sql.ColumnId]bool{}
	for _, c := range n.Children()[0].Schema() {
		tableIds[c.Id] = true
	}
	require.True(tableIds[schema[0].Id])
	require.False(tableIds[schema[1].Id], "alias id %d collides with a table column", schema[1].Id)
}

func TestBindCache(t *testing.T) {
	require := require.New(t)
	e := binder.New()
	ctx := e.NewContext(context.Background(), "mydb")

	stmt := selectFrom("SELECT a FROM t", "t", expression.NewUnresolvedColumn("a"))
	first, err := e.Bind(ctx, stmt)
	require.NoError(err)
	require.Equal(1, e.Plans.Len())

	second, err := e.Bind(ctx, selectFrom("SELECT a FROM t", "t", expression.NewUnresolvedColumn("a")))
	require.NoError(err)
	require.Same(first, second)

	other, err := e.Bind(e.NewContext(context.Background(), "otherdb"), selectFrom("SELECT a FROM t", "t", expression.NewUnresolvedColumn("a")))
	require.NoError(err)
	require.NotSame(first, other)
	require.Equal(2, e.Plans.Len())

	_, err = e.Bind(ctx, selectFrom("", "t", expression.NewUnresolvedColumn("a")))
	require.NoError(err)
	require.Equal(2, e.Plans.Len())
}

func TestBindCacheSeparatesQueries(t *testing.T) {
	require := require.New(t)
	e := binder.New()
	ctx := e.NewContext(context.Background(), "mydb")

	query := "SELECT 1 FROM t"
	statement := func(isQuery bool) binder.Statement {
		stmtCtx := sql.NewStatementContext(query)
		p := plan.NewProject([]sql.Expression{expression.NewLiteral(int64(1), sql.Int64)}, newTable(stmtCtx, "t", "a"))
		return binder.Statement{
			Query:   query,
			Plan:    plan.NewUnresolvedResultSink(p),
			IsQuery: isQuery,
			Context: stmtCtx,
		}
	}

	asQuery, err := e.Bind(ctx, statement(true))
	require.NoError(err)
	require.Equal([]string{"1"}, asQuery.Schema().Names())

	asInsert, err := e.Bind(ctx, statement(false))
	require.NoError(err)
	require.NotSame(asQuery, asInsert)
	require.Equal([]string{"__literal_0"}, asInsert.Schema().Names())
	require.Equal(2, e.Plans.Len())
}

func TestBindNoCache(t *testing.T) {
	require := require.New(t)
	e := binder.New()
	e.Plans = nil
	ctx := e.NewContext(context.Background(), "mydb")

	stmt := selectFrom("SELECT a FROM t", "t", expression.NewUnresolvedColumn("a"))
	first, err := e.Bind(ctx, stmt)
	require.NoError(err)
	second, err := e.Bind(ctx, selectFrom("SELECT a FROM t", "t", expression.NewUnresolvedColumn("a")))
	require.NoError(err)
	require.NotSame(first, second)
}

func TestBindTableFunctionIsNotCached(t *testing.T) {
	require := require.New(t)
	e := binder.New()
	ctx := e.NewContext(context.Background(), "mydb")

	query := "SELECT number FROM numbers('number' = '3')"
	tvf := plan.NewUnresolvedTableFunction(0, "numbers", map[string]string{"number": "3"})
	stmt := binder.NewQuery(query, plan.NewProject([]sql.Expression{expression.NewUnresolvedColumn("number")}, tvf))

	n, err := e.Bind(ctx, stmt)
	require.NoError(err)
	require.True(n.Resolved())
	require.Zero(e.Plans.Len())
}

func TestBindError(t *testing.T) {
	require := require.New(t)
	e := binder.New()
	ctx := e.NewContext(context.Background(), "mydb")

	_, err := e.Bind(ctx, selectFrom("SELECT z FROM t", "t", expression.NewUnresolvedColumn("z")))
	require.Error(err)
	require.True(sql.ErrColumnNotFound.Is(err))
	require.True(sql.IsAnalysisError(err))
	require.Zero(e.Plans.Len())
}

func TestBindAll(t *testing.T) {
	require := require.New(t)
	e := binder.New()
	ctx := e.NewContext(context.Background(), "mydb")

	stmts := []binder.Statement{
		selectFrom("SELECT a FROM t", "t", expression.NewUnresolvedColumn("a")),
		selectFrom("SELECT b FROM u", "u", expression.NewUnresolvedColumn("b")),
		selectFrom("SELECT u.a AS x FROM u", "u", expression.NewAlias("x", expression.NewUnresolvedColumnFromParts("u", "a"))),
	}
	plans, err := e.BindAll(ctx, stmts)
	require.NoError(err)
	require.Len(plans, 3)

	var names []string
	for _, n := range plans {
		require.True(n.Resolved())
		names = append(names, n.Schema()[0].Name)
	}
	require.Equal([]string{"a", "b", "x"}, names)
	require.Equal(3, e.Plans.Len())
}

func TestBindAllError(t *testing.T) {
	require := require.New(t)
	e := binder.New()
	ctx := e.NewContext(context.Background(), "mydb")

	stmts := []binder.Statement{
		selectFrom("SELECT a FROM t", "t", expression.NewUnresolvedColumn("a")),
		selectFrom("SELECT t.a FROM u", "u", expression.NewUnresolvedColumnFromParts("t", "a")),
	}
	plans, err := e.BindAll(ctx, stmts)
	require.Error(err)
	require.True(sql.ErrColumnNotFound.Is(err))
	require.Nil(plans)
}

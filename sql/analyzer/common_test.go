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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/expression/function"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

var testDb = []string{"internal", "db"}

func newContext(sqlMode string) *sql.Context {
	return sql.NewContext(context.Background(), sql.WithSession(sql.NewSession("db", sqlMode)))
}

func strictContext() *sql.Context {
	return newContext(sql.DefaultSqlMode)
}

func lenientContext() *sql.Context {
	return newContext("")
}

func newTestAnalyzer() *Analyzer {
	return NewDefault(function.NewRegistry())
}

func column(ctx *sql.Context, name string, typ sql.Type, nullable bool) *sql.Column {
	return &sql.Column{Id: ctx.Statement.NextColumnId(), Name: name, Type: typ, Nullable: nullable}
}

// table returns a table of the test database with non nullable BIGINT
// columns.
func table(ctx *sql.Context, name string, columns ...string) *plan.ResolvedTable {
	schema := make(sql.Schema, len(columns))
	for i, c := range columns {
		schema[i] = column(ctx, c, sql.Int64, false)
	}
	return typedTable(ctx, name, schema...)
}

func typedTable(ctx *sql.Context, name string, schema ...*sql.Column) *plan.ResolvedTable {
	return plan.NewResolvedTable(ctx.Statement.NextRelationId(), testDb, name, schema)
}

func uc(parts ...string) *expression.UnresolvedColumn {
	return expression.NewUnresolvedColumnFromParts(parts...)
}

func uf(name string, args ...sql.Expression) *expression.UnresolvedFunction {
	return expression.NewUnresolvedFunction(name, nil, args...)
}

func lit(n int64) *expression.Literal {
	return expression.NewLiteral(n, sql.Int64)
}

func eq(left, right sql.Expression) sql.Expression {
	return expression.NewEquals(left, right)
}

func gt(left, right sql.Expression) sql.Expression {
	return expression.NewGreaterThan(left, right)
}

func lt(left, right sql.Expression) sql.Expression {
	return expression.NewLessThan(left, right)
}

func and(left, right sql.Expression) sql.Expression {
	return expression.NewAnd(left, right)
}

func plus(left, right sql.Expression) sql.Expression {
	return expression.NewPlus(left, right)
}

func alias(name string, e sql.Expression) *expression.Alias {
	return expression.NewAlias(name, e)
}

func exprs(e ...sql.Expression) []sql.Expression {
	return e
}

// slotOf returns the column an output expression defines.
func slotOf(t *testing.T, e sql.Expression) *expression.GetField {
	t.Helper()
	slot, ok := expression.ToSlot(e)
	require.True(t, ok, "%s does not define a column", sql.DebugString(e))
	return slot
}

func schemaIds(schema sql.Schema) []sql.ColumnId {
	ids := make([]sql.ColumnId, len(schema))
	for i, c := range schema {
		ids[i] = c.Id
	}
	return ids
}

func analyze(t *testing.T, ctx *sql.Context, n sql.Node) sql.Node {
	t.Helper()
	result, err := newTestAnalyzer().Analyze(ctx, n)
	require.NoError(t, err)
	require.True(t, result.Resolved(), "plan is not resolved:\n%s", result)
	return result
}

// findNode returns the first node of the plan, in pre-order, of type T.
func findNode[T sql.Node](t *testing.T, n sql.Node) T {
	t.Helper()
	var (
		found T
		ok    bool
	)
	transform.Inspect(n, func(n sql.Node) bool {
		found, ok = n.(T)
		return !ok
	})
	require.True(t, ok, "no %T in plan:\n%s", found, n)
	return found
}

// leftOf returns the first operand of a binary predicate.
func leftOf(t *testing.T, e sql.Expression) sql.Expression {
	t.Helper()
	children := e.Children()
	require.Len(t, children, 2, "%s is not a binary expression", sql.DebugString(e))
	return children[0]
}

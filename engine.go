// Copyright 2020-2024 Dolthub, Inc.
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

package binder

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/analyzer"
	"github.com/dolthub/go-sql-binder/sql/expression/function"
)

// Statement is a parsed statement waiting to be bound.
type Statement struct {
	// Query is the text of the statement. Statements with no text are never
	// cached.
	Query string
	// Plan is the unbound logical plan of the statement.
	Plan sql.Node
	// IsQuery is false for statements storing their result, such as
	// INSERT ... SELECT.
	IsQuery bool
	// Context is the statement context the column and relation ids of the
	// plan were allocated from. If nil, a new one is created.
	Context *sql.StatementContext
}

// NewQuery returns a query statement.
func NewQuery(query string, plan sql.Node) Statement {
	return Statement{Query: query, Plan: plan, IsQuery: true}
}

// Engine binds the logical plans of SQL statements.
type Engine struct {
	Analyzer *analyzer.Analyzer
	Registry sql.FunctionRegistry
	// Plans caches bound plans by statement. Nil disables caching.
	Plans *sql.PlanCache
}

// New creates a new Engine with the default functions and a plan cache.
func New() *Engine {
	registry := function.NewRegistry()
	return NewWithAnalyzer(analyzer.NewDefault(registry), registry)
}

// NewWithAnalyzer creates a new Engine using the given analyzer, which must
// have been built over the given registry.
func NewWithAnalyzer(a *analyzer.Analyzer, registry sql.FunctionRegistry) *Engine {
	return &Engine{
		Analyzer: a,
		Registry: registry,
		Plans:    sql.NewPlanCache(),
	}
}

// NewContext returns a context with a session on the given database, using
// the SQL mode of the analyzer.
func (e *Engine) NewContext(ctx context.Context, db string, opts ...sql.ContextOption) *sql.Context {
	opts = append([]sql.ContextOption{sql.WithSession(sql.NewSession(db, e.Analyzer.SqlMode))}, opts...)
	return sql.NewContext(ctx, opts...)
}

// Bind binds the plan of a single statement.
func (e *Engine) Bind(ctx *sql.Context, stmt Statement) (sql.Node, error) {
	return e.bind(ctx, e.Analyzer, stmt)
}

func (e *Engine) bind(ctx *sql.Context, a *analyzer.Analyzer, stmt Statement) (sql.Node, error) {
	stmtCtx := stmt.Context
	if stmtCtx == nil {
		stmtCtx = sql.NewStatementContext(stmt.Query)
	}
	stmtCtx.Query = stmt.Query
	stmtCtx.IsQuery = stmt.IsQuery
	stmtCtx.SqlCache = sql.NewSqlCacheContext(stmt.Query, stmt.IsQuery, ctx.Session)

	span, ctx := ctx.Span("bind", opentracing.Tags{"query": stmt.Query})
	defer span.Finish()
	ctx = ctx.WithStatementContext(stmtCtx)

	cache := e.Plans != nil && stmt.Query != ""
	if cache {
		if n, ok := e.Plans.Get(stmtCtx.SqlCache); ok {
			span.SetTag("cached", true)
			return n, nil
		}
	}

	bound, err := a.Analyze(ctx, stmt.Plan)
	if err != nil {
		return nil, err
	}
	if cache {
		e.Plans.Put(stmtCtx.SqlCache, bound)
	}
	return bound, nil
}

// BindAll binds independent statements concurrently. Each statement gets its
// own statement context. The plans are returned in the order of the
// statements; the first error aborts the bind.
func (e *Engine) BindAll(ctx *sql.Context, stmts []Statement) ([]sql.Node, error) {
	eg, egCtx := ctx.NewErrgroup()
	plans := make([]sql.Node, len(stmts))
	for i := range stmts {
		i := i
		eg.Go(func() error {
			n, err := e.bind(egCtx, e.Analyzer.Fork(), stmts[i])
			if err != nil {
				return err
			}
			plans[i] = n
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

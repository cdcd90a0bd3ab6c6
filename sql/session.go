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

package sql

import (
	"context"
	"sync/atomic"

	"github.com/opentracing/opentracing-go"
	"golang.org/x/sync/errgroup"
)

// Session holds the state of a client connection the binder depends on.
type Session struct {
	id        uint32
	currentDB string
	sqlMode   *SqlMode
}

var autoSessionIDs uint32 = 1

// NewSession creates a new session with the given current database and SQL mode string.
func NewSession(currentDB, sqlMode string) *Session {
	return &Session{
		id:        atomic.AddUint32(&autoSessionIDs, 1),
		currentDB: currentDB,
		sqlMode:   NewSqlModeFromString(sqlMode),
	}
}

// NewBaseSession creates a new session with no current database and the default SQL mode.
func NewBaseSession() *Session {
	return NewSession("", DefaultSqlMode)
}

// ID returns the unique id of the session.
func (s *Session) ID() uint32 { return s.id }

// CurrentDatabase returns the database unqualified names refer to.
func (s *Session) CurrentDatabase() string { return s.currentDB }

// SqlMode returns the SQL mode of the session.
func (s *Session) SqlMode() *SqlMode { return s.sqlMode }

// Context of the statement being bound.
type Context struct {
	context.Context
	*Session
	Statement *StatementContext
	tracer    opentracing.Tracer
	rootSpan  opentracing.Span
}

// ContextOption is a function to configure the context.
type ContextOption func(*Context)

// WithSession adds the given session to the context.
func WithSession(s *Session) ContextOption {
	return func(ctx *Context) {
		ctx.Session = s
	}
}

// WithTracer adds the given tracer to the context.
func WithTracer(t opentracing.Tracer) ContextOption {
	return func(ctx *Context) {
		ctx.tracer = t
	}
}

// WithStatement sets the statement context of the context.
func WithStatement(s *StatementContext) ContextOption {
	return func(ctx *Context) {
		ctx.Statement = s
	}
}

// WithRootSpan sets the root span of the context.
func WithRootSpan(s opentracing.Span) ContextOption {
	return func(ctx *Context) {
		ctx.rootSpan = s
	}
}

// NewContext creates a new query context. Options can be passed to configure
// the context. If some aspect of the context is not configure, the default
// value will be used.
// By default, the context will have an empty base session, a noop tracer and
// a fresh statement context for a query statement.
func NewContext(
	ctx context.Context,
	opts ...ContextOption,
) *Context {
	c := &Context{
		Context: ctx,
		Session: NewBaseSession(),
		tracer:  opentracing.NoopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.Statement == nil {
		c.Statement = NewStatementContext("")
	}

	return c
}

// NewEmptyContext returns a default context with default values.
func NewEmptyContext() *Context { return NewContext(context.TODO()) }

// Span creates a new tracing span with the given context.
// It will return the span and a new context that should be passed to all
// children of this span.
func (c *Context) Span(
	opName string,
	opts ...opentracing.StartSpanOption,
) (opentracing.Span, *Context) {
	parentSpan := opentracing.SpanFromContext(c.Context)
	if parentSpan != nil {
		opts = append(opts, opentracing.ChildOf(parentSpan.Context()))
	}
	span := c.tracer.StartSpan(opName, opts...)
	ctx := opentracing.ContextWithSpan(c.Context, span)

	return span, c.WithContext(ctx)
}

// WithContext returns a new context with the given underlying context.
func (c *Context) WithContext(ctx context.Context) *Context {
	nc := *c
	nc.Context = ctx
	return &nc
}

// WithStatementContext returns a copy of the context for the statement given.
func (c *Context) WithStatementContext(s *StatementContext) *Context {
	nc := *c
	nc.Statement = s
	return &nc
}

// RootSpan returns the root span, if any.
func (c *Context) RootSpan() opentracing.Span {
	return c.rootSpan
}

// NewErrgroup returns an errgroup bound to the context, together with a
// context to be used by the goroutines of the group.
func (c *Context) NewErrgroup() (*errgroup.Group, *Context) {
	eg, egCtx := errgroup.WithContext(c.Context)
	return eg, c.WithContext(egCtx)
}

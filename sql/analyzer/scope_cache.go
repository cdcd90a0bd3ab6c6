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
	"github.com/dolthub/go-sql-binder/sql/plan"
)

type scopeKind byte

const (
	childrenScope scopeKind = iota
	outputScope
	nonAggregateOutputScope
	groupByScope
	sortAggregateScope
)

type scopeKey struct {
	node  sql.Node
	kind  scopeKind
	outer *Scope
}

// lazyScope returns the scope of the given kind for a node, building it the
// first time it is requested within the statement.
func lazyScope(ctx *sql.Context, n sql.Node, kind scopeKind, outer *Scope, build func() *Scope) func() *Scope {
	return func() *Scope {
		return ctx.Statement.Memo(scopeKey{n, kind, outer}, func() interface{} {
			return build()
		}).(*Scope)
	}
}

// childrenOutputScope returns the scope formed by the combined output of the
// children of n, exposing their asterisk columns for *.
func childrenOutputScope(ctx *sql.Context, n sql.Node, outer *Scope) *Scope {
	return lazyScope(ctx, n, childrenScope, outer, func() *Scope {
		var schema, asterisk sql.Schema
		for _, c := range n.Children() {
			schema = append(schema, c.Schema()...)
			asterisk = append(asterisk, plan.AsteriskSchema(c)...)
		}
		return scopeFromSchemas(outer, schema, asterisk)
	})()
}

// nodeOutputScope returns the scope formed by the output of n.
func nodeOutputScope(ctx *sql.Context, n sql.Node, outer *Scope) *Scope {
	return lazyScope(ctx, n, outputScope, outer, func() *Scope {
		return scopeFromSchema(outer, n.Schema())
	})()
}

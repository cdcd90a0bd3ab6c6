// Copyright 2023 Dolthub, Inc.
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
	"fmt"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// bindSubqueryAlias has nothing to bind: the alias exposes the columns of its
// child with their ids unchanged.
func bindSubqueryAlias(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	return n, transform.SameTree, nil
}

// bindResultSink defines the columns returned by the statement. Queries
// return the output of their plan. Other statements store their result, so
// output columns computed by an unnamed expression get a generated name
// derived from their position.
func bindResultSink(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	sink := n.(*plan.UnresolvedResultSink)
	outputs := expression.SchemaToFields(sink.Child.Schema())
	if ctx.Statement.IsQuery {
		return plan.NewResultSink(outputs, sink.Child), transform.NewTree, nil
	}

	index := make(map[sql.ColumnId]int, len(outputs))
	for i, out := range outputs {
		id := out.(*expression.GetField).Id()
		if _, ok := index[id]; !ok {
			index[id] = i
		}
	}

	names := make(map[sql.ColumnId]string)
	transform.InspectExpressions(sink.Child, func(e sql.Expression) bool {
		alias, ok := e.(*expression.Alias)
		if !ok || !alias.Anonymous() {
			return false
		}
		if i, ok := index[alias.Id()]; ok {
			if _, seen := names[alias.Id()]; !seen {
				names[alias.Id()] = inferredName(alias.Child, i)
			}
		}
		return false
	})

	for i, out := range outputs {
		gf := out.(*expression.GetField)
		if name, ok := names[gf.Id()]; ok {
			outputs[i] = gf.WithName(name)
		}
	}
	return plan.NewResultSink(outputs, sink.Child), transform.NewTree, nil
}

func inferredName(e sql.Expression, i int) string {
	switch e := e.(type) {
	case sql.FunctionExpression:
		return fmt.Sprintf("__%s_%d", strings.ToLower(e.FunctionName()), i)
	case *expression.Literal:
		return fmt.Sprintf("__literal_%d", i)
	default:
		return fmt.Sprintf("__expr_%d", i)
	}
}

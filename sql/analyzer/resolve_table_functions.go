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
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// bindTableFunction builds a table valued function through the registry and
// gives an id to every column it returns. Statements reading from a table
// function are never served from the plan cache.
func bindTableFunction(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	t := n.(*plan.UnresolvedTableFunction)
	fn, err := a.Registry.TableFunction(ctx, t.Name(), t.Properties)
	if err != nil {
		return nil, transform.SameTree, err
	}
	tf, ok := fn.(sql.TableFunction)
	if !ok {
		return nil, transform.SameTree, sql.ErrNotTableValuedFunction.New(fn)
	}

	if ctx.Statement.SqlCache != nil {
		ctx.Statement.SqlCache.SetCannotProcessExpression(true)
	}

	id := t.Id
	if id == 0 {
		id = ctx.Statement.NextRelationId()
	}
	ids := make([]sql.ColumnId, len(tf.ReturnSchema()))
	for i := range ids {
		ids[i] = ctx.Statement.NextColumnId()
	}
	return plan.NewTableFunctionRelation(id, tf, ids), transform.NewTree, nil
}

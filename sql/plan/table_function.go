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

package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
)

// UnresolvedTableFunction is a table valued function in a FROM clause that
// has not been looked up yet.
type UnresolvedTableFunction struct {
	Id         sql.RelationId
	name       string
	Properties map[string]string
}

var _ sql.Node = (*UnresolvedTableFunction)(nil)
var _ sql.Nameable = (*UnresolvedTableFunction)(nil)

func NewUnresolvedTableFunction(id sql.RelationId, name string, properties map[string]string) *UnresolvedTableFunction {
	return &UnresolvedTableFunction{Id: id, name: name, Properties: properties}
}

func (t *UnresolvedTableFunction) Name() string { return t.name }

func (*UnresolvedTableFunction) Resolved() bool { return false }

func (*UnresolvedTableFunction) Schema() sql.Schema { return nil }

func (*UnresolvedTableFunction) Children() []sql.Node { return nil }

func (t *UnresolvedTableFunction) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), 0)
	}
	return t, nil
}

func (t *UnresolvedTableFunction) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("UnresolvedTableFunction(%s(%s))", t.name, propertiesString(t.Properties))
	return pr.String()
}

func propertiesString(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%q = %q", k, props[k])
	}
	return strings.Join(parts, ", ")
}

// TableFunctionRelation is a bound table valued function. Its columns are
// exposed under the name of the function.
type TableFunctionRelation struct {
	Id       sql.RelationId
	Function sql.TableFunction
	schema   sql.Schema
}

var _ sql.Node = (*TableFunctionRelation)(nil)

// NewTableFunctionRelation creates a relation over the function. The columns
// of the function return schema get the given ids.
func NewTableFunctionRelation(id sql.RelationId, fn sql.TableFunction, ids []sql.ColumnId) *TableFunctionRelation {
	ret := fn.ReturnSchema()
	schema := make(sql.Schema, len(ret))
	for i, c := range ret {
		col := c.WithQualifier([]string{fn.FunctionName()})
		if i < len(ids) {
			col.Id = ids[i]
		}
		schema[i] = col
	}
	return &TableFunctionRelation{Id: id, Function: fn, schema: schema}
}

func (t *TableFunctionRelation) Name() string { return t.Function.FunctionName() }

func (t *TableFunctionRelation) Resolved() bool { return t.Function.Resolved() }

func (t *TableFunctionRelation) Schema() sql.Schema { return t.schema }

func (*TableFunctionRelation) Children() []sql.Node { return nil }

func (t *TableFunctionRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), 0)
	}
	return t, nil
}

func (t *TableFunctionRelation) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("TableFunction(%s)", t.Function)
	return pr.String()
}

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

package plan

import (
	"github.com/dolthub/go-sql-binder/sql"
)

// ResolvedTable represents a table of the catalog.
type ResolvedTable struct {
	id        sql.RelationId
	qualifier []string
	name      string
	schema    sql.Schema
}

var _ sql.Node = (*ResolvedTable)(nil)

// NewResolvedTable creates a new instance of ResolvedTable. The qualifier is
// the path of the table, such as {"catalog", "db"}. The columns of the
// schema are exposed under the qualifier followed by the table name.
func NewResolvedTable(id sql.RelationId, qualifier []string, name string, schema sql.Schema) *ResolvedTable {
	path := append(append([]string{}, qualifier...), name)
	qualified := make(sql.Schema, len(schema))
	for i, c := range schema {
		qualified[i] = c.WithQualifier(path)
	}
	return &ResolvedTable{id: id, qualifier: qualifier, name: name, schema: qualified}
}

// Id returns the relation id of the table.
func (t *ResolvedTable) Id() sql.RelationId { return t.id }

// Name returns the name of the table.
func (t *ResolvedTable) Name() string { return t.name }

// Qualifier returns the path of the table, without its name.
func (t *ResolvedTable) Qualifier() []string { return t.qualifier }

// QualifiedName returns the dotted path and name of the table.
func (t *ResolvedTable) QualifiedName() string {
	return qualifiedName(t.qualifier, t.name)
}

// Schema implements the Node interface.
func (t *ResolvedTable) Schema() sql.Schema { return t.schema }

// Resolved implements the Resolvable interface.
func (*ResolvedTable) Resolved() bool {
	return true
}

// Children implements the Node interface.
func (*ResolvedTable) Children() []sql.Node {
	return nil
}

func (t *ResolvedTable) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("ResolvedTable(%s)", t.QualifiedName())
	return pr.String()
}

// WithChildren implements the Node interface.
func (t *ResolvedTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), 0)
	}

	return t, nil
}

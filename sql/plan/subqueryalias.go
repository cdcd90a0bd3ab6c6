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
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
)

// SubqueryAlias is a node that gives a subquery a name.
type SubqueryAlias struct {
	UnaryNode
	name          string
	qualifier     []string
	ColumnAliases []string
}

var _ sql.Node = (*SubqueryAlias)(nil)

// NewSubqueryAlias creates a new SubqueryAlias node.
func NewSubqueryAlias(name string, node sql.Node) *SubqueryAlias {
	return &SubqueryAlias{UnaryNode: UnaryNode{Child: node}, name: name}
}

// WithQualifier returns a copy of the node whose alias lives under the given
// path, such as the database of a view.
func (sq *SubqueryAlias) WithQualifier(qualifier []string) *SubqueryAlias {
	nsq := *sq
	nsq.qualifier = qualifier
	return &nsq
}

// WithColumnAliases returns a copy of the node renaming its columns.
func (sq *SubqueryAlias) WithColumnAliases(aliases []string) *SubqueryAlias {
	nsq := *sq
	nsq.ColumnAliases = aliases
	return &nsq
}

// Name implements the Nameable interface.
func (sq *SubqueryAlias) Name() string { return sq.name }

// Qualifier returns the path of the alias, without the alias itself.
func (sq *SubqueryAlias) Qualifier() []string { return sq.qualifier }

// QualifiedName returns the dotted path and name of the alias.
func (sq *SubqueryAlias) QualifiedName() string {
	return qualifiedName(sq.qualifier, sq.name)
}

// Schema implements the Node interface. The columns of the child are
// exposed under the alias with their ids unchanged.
func (sq *SubqueryAlias) Schema() sql.Schema {
	path := append(append([]string{}, sq.qualifier...), sq.name)
	childSchema := sq.Child.Schema()
	schema := make(sql.Schema, len(childSchema))
	for i, c := range childSchema {
		col := c.WithQualifier(path)
		if i < len(sq.ColumnAliases) {
			col.Name = sq.ColumnAliases[i]
		}
		schema[i] = col
	}
	return schema
}

// WithChildren implements the Node interface.
func (sq *SubqueryAlias) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(sq, len(children), 1)
	}

	nn := *sq
	nn.Child = children[0]
	return &nn, nil
}

func (sq *SubqueryAlias) String() string {
	pr := sql.NewTreePrinter()
	if len(sq.ColumnAliases) > 0 {
		_ = pr.WriteNode("SubqueryAlias(%s(%s))", sq.name, strings.Join(sq.ColumnAliases, ", "))
	} else {
		_ = pr.WriteNode("SubqueryAlias(%s)", sq.name)
	}
	_ = pr.WriteChildren(sq.Child.String())
	return pr.String()
}

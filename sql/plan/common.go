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
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// UnaryNode is a node that has only one child.
type UnaryNode struct {
	Child sql.Node
}

// Schema implements the Node interface.
func (n *UnaryNode) Schema() sql.Schema {
	return n.Child.Schema()
}

// Resolved implements the Resolvable interface.
func (n UnaryNode) Resolved() bool {
	return n.Child.Resolved()
}

// Children implements the Node interface.
func (n UnaryNode) Children() []sql.Node {
	return []sql.Node{n.Child}
}

// BinaryNode is a node with two children.
type BinaryNode struct {
	left  sql.Node
	right sql.Node
}

// Left returns the left child of the node.
func (n BinaryNode) Left() sql.Node {
	return n.left
}

// Right returns the right child of the node.
func (n BinaryNode) Right() sql.Node {
	return n.right
}

// Children implements the Node interface.
func (n BinaryNode) Children() []sql.Node {
	return []sql.Node{n.left, n.right}
}

// Resolved implements the Resolvable interface.
func (n BinaryNode) Resolved() bool {
	return n.left.Resolved() && n.right.Resolved()
}

func expressionsResolved(exprs ...sql.Expression) bool {
	return expression.ExpressionsResolved(exprs...)
}

// exprsSchema returns the columns defined by a list of output expressions.
func exprsSchema(exprs []sql.Expression) sql.Schema {
	schema := make(sql.Schema, len(exprs))
	for i, e := range exprs {
		schema[i] = expression.ToColumn(e)
	}
	return schema
}

func exprsString(exprs []sql.Expression) string {
	return expression.JoinStrings(exprs, ", ")
}

func exprsDebugString(exprs []sql.Expression) string {
	return expression.JoinDebugStrings(exprs, ", ")
}

func childrenStrings(children []sql.Node) []string {
	strs := make([]string, len(children))
	for i, c := range children {
		strs[i] = c.String()
	}
	return strs
}

func qualifiedName(parts []string, name string) string {
	if len(parts) == 0 {
		return name
	}
	return strings.Join(parts, ".") + "." + name
}

// asteriskSchemaer is implemented by nodes whose columns for * differ from
// their output.
type asteriskSchemaer interface {
	AsteriskSchema() sql.Schema
}

// AsteriskSchema returns the columns a * over the node expands to. Nodes
// that only filter or reorder rows expose the asterisk columns of their
// child.
func AsteriskSchema(n sql.Node) sql.Schema {
	switch n := n.(type) {
	case asteriskSchemaer:
		return n.AsteriskSchema()
	case *Filter:
		return AsteriskSchema(n.Child)
	case *PreFilter:
		return AsteriskSchema(n.Child)
	case *Having:
		return AsteriskSchema(n.Child)
	case *Qualify:
		return AsteriskSchema(n.Child)
	case *Sort:
		return AsteriskSchema(n.Child)
	default:
		return n.Schema()
	}
}

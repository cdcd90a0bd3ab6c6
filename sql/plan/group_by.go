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
	"fmt"

	"github.com/dolthub/go-sql-binder/sql"
)

// Aggregate is implemented by the nodes that group the rows of their child.
type Aggregate interface {
	sql.Expressioner
	// OutputExpressions returns the expressions computed per group.
	OutputExpressions() []sql.Expression
	// GroupByExpressions returns the distinct grouping keys.
	GroupByExpressions() []sql.Expression
}

// GroupBy groups the rows by some expressions.
type GroupBy struct {
	UnaryNode
	SelectedExprs []sql.Expression
	GroupByExprs  []sql.Expression
}

var _ Aggregate = (*GroupBy)(nil)

// NewGroupBy creates a new GroupBy node. Like Project, GroupBy is a top-level node, and contains all the fields that
// will appear in the output of the query. Some of these fields may be aggregate functions, some may be columns or
// other expressions. Unlike a project, the GroupBy also has a list of group-by expressions, which usually also appear
// in the list of selected expressions.
func NewGroupBy(selectedExprs, groupByExprs []sql.Expression, child sql.Node) *GroupBy {
	return &GroupBy{
		UnaryNode:     UnaryNode{Child: child},
		SelectedExprs: selectedExprs,
		GroupByExprs:  groupByExprs,
	}
}

// Resolved implements the Resolvable interface.
func (g *GroupBy) Resolved() bool {
	return g.UnaryNode.Child.Resolved() &&
		expressionsResolved(g.SelectedExprs...) &&
		expressionsResolved(g.GroupByExprs...)
}

// Schema implements the Node interface.
func (g *GroupBy) Schema() sql.Schema {
	return exprsSchema(g.SelectedExprs)
}

// OutputExpressions implements the Aggregate interface.
func (g *GroupBy) OutputExpressions() []sql.Expression {
	return g.SelectedExprs
}

// GroupByExpressions implements the Aggregate interface.
func (g *GroupBy) GroupByExpressions() []sql.Expression {
	return g.GroupByExprs
}

// WithChildren implements the Node interface.
func (g *GroupBy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(children), 1)
	}

	return NewGroupBy(g.SelectedExprs, g.GroupByExprs, children[0]), nil
}

// WithExpressions implements the Expressioner interface.
func (g *GroupBy) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	expected := len(g.SelectedExprs) + len(g.GroupByExprs)
	if len(exprs) != expected {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(exprs), expected)
	}

	head := len(g.SelectedExprs)
	return NewGroupBy(exprs[:head], exprs[head:], g.Child), nil
}

func (g *GroupBy) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("GroupBy")
	_ = pr.WriteChildren(
		fmt.Sprintf("select: [%s]", exprsString(g.SelectedExprs)),
		fmt.Sprintf("group: [%s]", exprsString(g.GroupByExprs)),
		g.Child.String(),
	)
	return pr.String()
}

func (g *GroupBy) DebugString() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("GroupBy")
	_ = pr.WriteChildren(
		fmt.Sprintf("select: [%s]", exprsDebugString(g.SelectedExprs)),
		fmt.Sprintf("group: [%s]", exprsDebugString(g.GroupByExprs)),
		sql.DebugString(g.Child),
	)
	return pr.String()
}

// Expressions implements the Expressioner interface.
func (g *GroupBy) Expressions() []sql.Expression {
	var exprs []sql.Expression
	exprs = append(exprs, g.SelectedExprs...)
	exprs = append(exprs, g.GroupByExprs...)
	return exprs
}

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
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// Filter skips rows that don't match a certain condition. Conditions holds
// the conjuncts of the predicate.
type Filter struct {
	UnaryNode
	Conditions []sql.Expression
}

var _ sql.Expressioner = (*Filter)(nil)

// NewFilter creates a new filter node.
func NewFilter(conditions []sql.Expression, child sql.Node) *Filter {
	return &Filter{
		UnaryNode:  UnaryNode{Child: child},
		Conditions: conditions,
	}
}

// Resolved implements the Resolvable interface.
func (f *Filter) Resolved() bool {
	return f.UnaryNode.Child.Resolved() && expressionsResolved(f.Conditions...)
}

// WithChildren implements the Node interface.
func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}

	nf := *f
	nf.Child = children[0]
	return &nf, nil
}

// WithExpressions implements the Expressioner interface.
func (f *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(f.Conditions) {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(exprs), len(f.Conditions))
	}

	nf := *f
	nf.Conditions = exprs
	return &nf, nil
}

func (f *Filter) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Filter(%s)", expression.JoinStrings(f.Conditions, " AND "))
	_ = pr.WriteChildren(f.Child.String())
	return pr.String()
}

func (f *Filter) DebugString() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Filter(%s)", expression.JoinDebugStrings(f.Conditions, " AND "))
	_ = pr.WriteChildren(sql.DebugString(f.Child))
	return pr.String()
}

// Expressions implements the Expressioner interface.
func (f *Filter) Expressions() []sql.Expression {
	return f.Conditions
}

// PreFilter is a filter applied to the rows of a data source before they are
// loaded.
type PreFilter struct {
	UnaryNode
	Conditions []sql.Expression
}

var _ sql.Expressioner = (*PreFilter)(nil)

func NewPreFilter(conditions []sql.Expression, child sql.Node) *PreFilter {
	return &PreFilter{UnaryNode: UnaryNode{Child: child}, Conditions: conditions}
}

func (f *PreFilter) Resolved() bool {
	return f.Child.Resolved() && expressionsResolved(f.Conditions...)
}

func (f *PreFilter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}

	nf := *f
	nf.Child = children[0]
	return &nf, nil
}

func (f *PreFilter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(f.Conditions) {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(exprs), len(f.Conditions))
	}

	nf := *f
	nf.Conditions = exprs
	return &nf, nil
}

func (f *PreFilter) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("PreFilter(%s)", expression.JoinStrings(f.Conditions, " AND "))
	_ = pr.WriteChildren(f.Child.String())
	return pr.String()
}

func (f *PreFilter) Expressions() []sql.Expression {
	return f.Conditions
}

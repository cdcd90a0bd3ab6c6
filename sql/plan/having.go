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

// Having node is a filter that supports aggregate expressions. A having node
// is identical to a filter node in behaviour. The difference is that some
// analyzer rules work specifically on having clauses and not filters. For
// that reason, Having is a completely new node instead of using just filter.
type Having struct {
	UnaryNode
	Conditions []sql.Expression
}

var _ sql.Expressioner = (*Having)(nil)

// NewHaving creates a new having node.
func NewHaving(conditions []sql.Expression, child sql.Node) *Having {
	return &Having{UnaryNode{Child: child}, conditions}
}

// Resolved implements the sql.Node interface.
func (h *Having) Resolved() bool {
	return expressionsResolved(h.Conditions...) && h.Child.Resolved()
}

// Expressions implements the sql.Expressioner interface.
func (h *Having) Expressions() []sql.Expression { return h.Conditions }

// WithChildren implements the Node interface.
func (h *Having) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(h, len(children), 1)
	}

	return NewHaving(h.Conditions, children[0]), nil
}

// WithExpressions implements the Expressioner interface.
func (h *Having) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(h.Conditions) {
		return nil, sql.ErrInvalidChildrenNumber.New(h, len(exprs), len(h.Conditions))
	}

	return NewHaving(exprs, h.Child), nil
}

func (h *Having) String() string {
	p := sql.NewTreePrinter()
	_ = p.WriteNode("Having(%s)", expression.JoinStrings(h.Conditions, " AND "))
	_ = p.WriteChildren(h.Child.String())
	return p.String()
}

func (h *Having) DebugString() string {
	p := sql.NewTreePrinter()
	_ = p.WriteNode("Having(%s)", expression.JoinDebugStrings(h.Conditions, " AND "))
	_ = p.WriteChildren(sql.DebugString(h.Child))
	return p.String()
}

// Qualify filters the rows of its child on conditions over window functions.
type Qualify struct {
	UnaryNode
	Conditions []sql.Expression
}

var _ sql.Expressioner = (*Qualify)(nil)

func NewQualify(conditions []sql.Expression, child sql.Node) *Qualify {
	return &Qualify{UnaryNode{Child: child}, conditions}
}

func (q *Qualify) Resolved() bool {
	return expressionsResolved(q.Conditions...) && q.Child.Resolved()
}

func (q *Qualify) Expressions() []sql.Expression { return q.Conditions }

func (q *Qualify) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(q, len(children), 1)
	}

	return NewQualify(q.Conditions, children[0]), nil
}

func (q *Qualify) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(q.Conditions) {
		return nil, sql.ErrInvalidChildrenNumber.New(q, len(exprs), len(q.Conditions))
	}

	return NewQualify(exprs, q.Child), nil
}

func (q *Qualify) String() string {
	p := sql.NewTreePrinter()
	_ = p.WriteNode("Qualify(%s)", expression.JoinStrings(q.Conditions, " AND "))
	_ = p.WriteChildren(q.Child.String())
	return p.String()
}

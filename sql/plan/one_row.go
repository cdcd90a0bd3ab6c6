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
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
)

// UnresolvedOneRowRelation is a SELECT without a FROM clause whose
// projections have not been bound.
type UnresolvedOneRowRelation struct {
	Id          sql.RelationId
	Projections []sql.Expression
}

var _ sql.Node = (*UnresolvedOneRowRelation)(nil)

func NewUnresolvedOneRowRelation(id sql.RelationId, projections ...sql.Expression) *UnresolvedOneRowRelation {
	return &UnresolvedOneRowRelation{Id: id, Projections: projections}
}

func (*UnresolvedOneRowRelation) Resolved() bool { return false }

func (r *UnresolvedOneRowRelation) Schema() sql.Schema { return nil }

func (*UnresolvedOneRowRelation) Children() []sql.Node { return nil }

func (r *UnresolvedOneRowRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(r, len(children), 0)
	}
	return r, nil
}

func (r *UnresolvedOneRowRelation) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("UnresolvedOneRowRelation(%s)", exprsString(r.Projections))
	return pr.String()
}

// OneRowRelation produces a single row made of its projections.
type OneRowRelation struct {
	Id          sql.RelationId
	Projections []sql.Expression
}

var _ sql.Expressioner = (*OneRowRelation)(nil)

func NewOneRowRelation(id sql.RelationId, projections []sql.Expression) *OneRowRelation {
	return &OneRowRelation{Id: id, Projections: projections}
}

func (r *OneRowRelation) Resolved() bool { return expressionsResolved(r.Projections...) }

func (r *OneRowRelation) Schema() sql.Schema { return exprsSchema(r.Projections) }

func (*OneRowRelation) Children() []sql.Node { return nil }

func (r *OneRowRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(r, len(children), 0)
	}
	return r, nil
}

func (r *OneRowRelation) Expressions() []sql.Expression { return r.Projections }

func (r *OneRowRelation) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(r.Projections) {
		return nil, sql.ErrInvalidChildrenNumber.New(r, len(exprs), len(r.Projections))
	}
	nr := *r
	nr.Projections = exprs
	return &nr, nil
}

func (r *OneRowRelation) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("OneRowRelation(%s)", exprsString(r.Projections))
	return pr.String()
}

// InlineTable is a VALUES list. Every row is a list of constant
// expressions.
type InlineTable struct {
	Rows [][]sql.Expression
}

var _ sql.Node = (*InlineTable)(nil)

func NewInlineTable(rows [][]sql.Expression) *InlineTable {
	return &InlineTable{Rows: rows}
}

func (*InlineTable) Resolved() bool { return false }

func (t *InlineTable) Schema() sql.Schema { return nil }

func (*InlineTable) Children() []sql.Node { return nil }

func (t *InlineTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), 0)
	}
	return t, nil
}

func (t *InlineTable) String() string {
	rows := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = fmt.Sprintf("(%s)", exprsString(r))
	}
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("InlineTable(%s)", strings.Join(rows, ", "))
	return pr.String()
}

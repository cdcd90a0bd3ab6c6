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

package analyzer

import (
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// bindSetOperation checks that the operands of a set operation are
// compatible and computes the output of the operation. Operand columns are
// cast to the common type of their position, adding a projection over the
// operands that need it.
func bindSetOperation(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	s := n.(*plan.SetOperation)
	if s.Outputs != nil {
		return s, transform.SameTree, nil
	}

	children := s.Children()
	first := children[0].Schema()
	for _, c := range children[1:] {
		if schema := c.Schema(); len(schema) != len(first) {
			return nil, transform.SameTree, sql.ErrSetOperationColumnCount.New(
				schemaString(first), len(first), schemaString(schema), len(schema))
		}
	}
	if s.Qualifier == plan.All && (s.Kind == plan.IntersectKind || s.Kind == plan.ExceptKind) {
		return nil, transform.SameTree, sql.ErrSetOperationAllNotSupported.New()
	}

	types := make([]sql.Type, len(first))
	nullable := make([]bool, len(first))
	for i, col := range first {
		types[i] = col.Type
		for _, c := range children {
			other := c.Schema()[i]
			t, ok := sql.WiderType(types[i], other.Type)
			if !ok {
				return nil, transform.SameTree, sql.ErrSetOperationIncompatibleTypes.New(i+1, types[i], other.Type)
			}
			types[i] = t
			nullable[i] = nullable[i] || other.Nullable
		}
	}

	newChildren := make([]sql.Node, len(children))
	childrenOutputs := make([]sql.Schema, len(children))
	for i, c := range children {
		newChildren[i] = castSetOperationChild(ctx, c, types)
		childrenOutputs[i] = newChildren[i].Schema()
	}

	outputs := make(sql.Schema, len(first))
	for i, col := range first {
		outputs[i] = &sql.Column{
			Id:       ctx.Statement.NextColumnId(),
			Name:     col.Name,
			Type:     types[i],
			Nullable: nullable[i],
		}
	}

	ns, err := s.WithChildren(newChildren...)
	if err != nil {
		return nil, transform.SameTree, err
	}
	return ns.(*plan.SetOperation).WithOutputs(outputs, childrenOutputs), transform.NewTree, nil
}

// castSetOperationChild returns the operand with a projection casting its
// columns to the types given, or the operand itself if no cast is needed.
func castSetOperationChild(ctx *sql.Context, child sql.Node, types []sql.Type) sql.Node {
	schema := child.Schema()
	projections := make([]sql.Expression, len(schema))
	needsCast := false
	for i, col := range schema {
		field := expression.NewGetFieldFromColumn(col)
		if col.Type.Equals(types[i]) {
			projections[i] = field
			continue
		}
		needsCast = true
		projections[i] = expression.NewAlias(col.Name, expression.NewCast(field, types[i])).
			WithId(ctx.Statement.NextColumnId())
	}
	if !needsCast {
		return child
	}
	return plan.NewProject(projections, child)
}

func schemaString(schema sql.Schema) string {
	return "[" + strings.Join(schema.Names(), ", ") + "]"
}

// bindInlineTable turns the rows of a VALUES list into a tree of UNION ALL
// over one row relations.
func bindInlineTable(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	t := n.(*plan.InlineTable)
	if len(t.Rows) == 0 {
		return nil, transform.SameTree, sql.ErrEmptyInlineTable.New()
	}

	relations := make([]sql.Node, len(t.Rows))
	for i, row := range t.Rows {
		for _, e := range row {
			if _, ok := e.(*expression.DefaultColumn); ok {
				return nil, transform.SameTree, sql.ErrDefaultInSelect.New(i + 1)
			}
		}
		relations[i] = plan.NewUnresolvedOneRowRelation(ctx.Statement.NextRelationId(), row...)
	}
	return unionAll(relations, 0, len(relations)-1), transform.NewTree, nil
}

func unionAll(relations []sql.Node, low, high int) sql.Node {
	if low == high {
		return relations[low]
	}
	mid := low + (high-low)/2
	return plan.NewUnion(plan.All, unionAll(relations, low, mid), unionAll(relations, mid+1, high))
}

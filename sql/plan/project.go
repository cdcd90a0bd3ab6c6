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

// Project is a projection of certain expression from the children node.
type Project struct {
	UnaryNode
	Projections []sql.Expression
	Distinct    bool
}

var _ sql.Expressioner = (*Project)(nil)

// NewProject creates a new projection.
func NewProject(expressions []sql.Expression, child sql.Node) *Project {
	return &Project{
		UnaryNode:   UnaryNode{child},
		Projections: expressions,
	}
}

// WithDistinct returns a copy of the projection that removes duplicate rows.
func (p *Project) WithDistinct(distinct bool) *Project {
	np := *p
	np.Distinct = distinct
	return &np
}

// Schema implements the Node interface.
func (p *Project) Schema() sql.Schema {
	return exprsSchema(p.Projections)
}

// Resolved implements the Resolvable interface.
func (p *Project) Resolved() bool {
	return p.UnaryNode.Child.Resolved() && expressionsResolved(p.Projections...)
}

func (p *Project) String() string {
	pr := sql.NewTreePrinter()
	name := "Project"
	if p.Distinct {
		name = "Project(distinct)"
	}
	_ = pr.WriteNode("%s", name)
	_ = pr.WriteChildren(
		fmt.Sprintf("columns: [%s]", exprsString(p.Projections)),
		p.Child.String(),
	)
	return pr.String()
}

func (p *Project) DebugString() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Project")
	_ = pr.WriteChildren(
		fmt.Sprintf("columns: [%s]", exprsDebugString(p.Projections)),
		sql.DebugString(p.Child),
	)
	return pr.String()
}

// Expressions implements the Expressioner interface.
func (p *Project) Expressions() []sql.Expression {
	return p.Projections
}

// WithChildren implements the Node interface.
func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 1)
	}

	np := *p
	np.Child = children[0]
	return &np, nil
}

// WithExpressions implements the Expressioner interface.
func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(p.Projections) {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(exprs), len(p.Projections))
	}

	np := *p
	np.Projections = exprs
	return &np, nil
}

// LoadProject is the projection of a data loading statement. It maps the
// columns of its source to the columns being loaded.
type LoadProject struct {
	UnaryNode
	Projections []sql.Expression
}

var _ sql.Expressioner = (*LoadProject)(nil)

func NewLoadProject(expressions []sql.Expression, child sql.Node) *LoadProject {
	return &LoadProject{UnaryNode: UnaryNode{child}, Projections: expressions}
}

func (p *LoadProject) Schema() sql.Schema {
	return exprsSchema(p.Projections)
}

func (p *LoadProject) Resolved() bool {
	return p.Child.Resolved() && expressionsResolved(p.Projections...)
}

func (p *LoadProject) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("LoadProject")
	_ = pr.WriteChildren(
		fmt.Sprintf("columns: [%s]", exprsString(p.Projections)),
		p.Child.String(),
	)
	return pr.String()
}

func (p *LoadProject) Expressions() []sql.Expression {
	return p.Projections
}

func (p *LoadProject) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 1)
	}

	np := *p
	np.Child = children[0]
	return &np, nil
}

func (p *LoadProject) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(p.Projections) {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(exprs), len(p.Projections))
	}

	np := *p
	np.Projections = exprs
	return &np, nil
}

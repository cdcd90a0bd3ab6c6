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
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
)

// Generate is a lateral view: every row of the child is joined with the
// rows its generator functions produce. Outputs names the generated columns;
// while unbound they are unresolved columns of the form table.column.
// ExpandColumnAliases optionally names the fields a struct-typed output is
// expanded into, per output.
type Generate struct {
	UnaryNode
	Generators          []sql.Expression
	Outputs             []sql.Expression
	ExpandColumnAliases [][]string
}

var _ sql.Expressioner = (*Generate)(nil)

// NewGenerate creates a new Generate node.
func NewGenerate(generators, outputs []sql.Expression, expandAliases [][]string, child sql.Node) *Generate {
	return &Generate{
		UnaryNode:           UnaryNode{child},
		Generators:          generators,
		Outputs:             outputs,
		ExpandColumnAliases: expandAliases,
	}
}

// Schema implements the sql.Node interface. The columns of the child
// come first.
func (g *Generate) Schema() sql.Schema {
	schema := append(sql.Schema{}, g.Child.Schema()...)
	return append(schema, exprsSchema(g.Outputs)...)
}

// Resolved implements the sql.Resolvable interface.
func (g *Generate) Resolved() bool {
	return g.Child.Resolved() &&
		expressionsResolved(g.Generators...) &&
		expressionsResolved(g.Outputs...)
}

func (g *Generate) String() string {
	p := sql.NewTreePrinter()
	outputs := exprsString(g.Outputs)
	if len(g.ExpandColumnAliases) > 0 {
		var aliases []string
		for _, a := range g.ExpandColumnAliases {
			aliases = append(aliases, "("+strings.Join(a, ", ")+")")
		}
		outputs += " as " + strings.Join(aliases, ", ")
	}
	_ = p.WriteNode("Generate")
	_ = p.WriteChildren(
		fmt.Sprintf("generators: [%s]", exprsString(g.Generators)),
		fmt.Sprintf("outputs: [%s]", outputs),
		g.Child.String(),
	)
	return p.String()
}

// Expressions implements the sql.Expressioner interface.
func (g *Generate) Expressions() []sql.Expression {
	exprs := append([]sql.Expression{}, g.Generators...)
	return append(exprs, g.Outputs...)
}

// WithChildren implements the Node interface.
func (g *Generate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(children), 1)
	}

	ng := *g
	ng.Child = children[0]
	return &ng, nil
}

// WithExpressions implements the Expressioner interface.
func (g *Generate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	expected := len(g.Generators) + len(g.Outputs)
	if len(exprs) != expected {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(exprs), expected)
	}

	ng := *g
	ng.Generators = exprs[:len(g.Generators)]
	ng.Outputs = exprs[len(g.Generators):]
	return &ng, nil
}

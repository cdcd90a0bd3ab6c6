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
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/expression/function"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// bindGenerate binds the generators of a LATERAL VIEW and defines the
// columns they produce, each named as table.column. When column aliases are
// given for a generator producing structs, a projection over the generate
// exposes every field of the struct under its alias.
func bindGenerate(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	g := n.(*plan.Generate)
	for _, out := range g.Outputs {
		if _, ok := out.(*expression.UnresolvedColumn); !ok {
			return g, transform.SameTree, nil
		}
	}

	ea := simpleAnalyzer(ctx, a, g, scope)
	generators := make([]sql.Expression, len(g.Generators))
	outputs := make([]sql.Expression, len(g.Outputs))
	var expanded []sql.Expression
	for i, out := range g.Outputs {
		col := out.(*expression.UnresolvedColumn)
		parts := col.NameParts()
		if len(parts) != 2 {
			return nil, transform.SameTree, sql.ErrInvalidGeneratorOutput.New(col.String())
		}

		bound, err := ea.analyze(g.Generators[i])
		if err != nil {
			return nil, transform.SameTree, err
		}
		if _, ok := bound.(sql.Generator); !ok {
			return nil, transform.SameTree, sql.ErrNotTableGenerating.New(bound)
		}
		generators[i] = bound

		qualifier := []string{parts[0]}
		slot := expression.NewGetFieldWithQualifier(
			ctx.Statement.NextColumnId(), bound.Type(), parts[1], bound.IsNullable(), qualifier)
		outputs[i] = slot

		if i < len(g.ExpandColumnAliases) && len(g.ExpandColumnAliases[i]) > 0 {
			aliases, err := expandStructFields(ctx, slot, g.ExpandColumnAliases[i], qualifier)
			if err != nil {
				return nil, transform.SameTree, err
			}
			expanded = append(expanded, aliases...)
		}
	}

	var result sql.Node = plan.NewGenerate(generators, outputs, g.ExpandColumnAliases, g.Child)
	if len(expanded) > 0 {
		projections := expression.SchemaToFields(g.Child.Schema())
		result = plan.NewProject(append(projections, expanded...), result)
	}
	return result, transform.NewTree, nil
}

func expandStructFields(ctx *sql.Context, slot *expression.GetField, aliases, qualifier []string) ([]sql.Expression, error) {
	st, ok := slot.Type().(sql.StructType)
	if !ok {
		return nil, sql.ErrExpandNonStruct.New(slot.Type())
	}
	if len(st.Fields) != len(aliases) {
		return nil, sql.ErrExpandAliasCount.New(slot.Name(), len(st.Fields), len(aliases))
	}

	result := make([]sql.Expression, len(st.Fields))
	for i, f := range st.Fields {
		elem, err := function.NewStructElement(slot, expression.NewLiteral(f.Name, sql.Text))
		if err != nil {
			return nil, err
		}
		result[i] = expression.NewAlias(aliases[i], elem).
			WithId(ctx.Statement.NextColumnId()).
			WithQualifier(qualifier)
	}
	return result, nil
}

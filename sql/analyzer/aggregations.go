// Copyright 2020-2024 Dolthub, Inc.
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
	"github.com/spf13/cast"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/expression/function"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// bindAggregate binds the outputs of a GroupBy against its child, then its
// grouping keys.
func bindAggregate(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	gb := n.(*plan.GroupBy)
	outputs, err := expandProjections(simpleAnalyzer(ctx, a, gb, scope), gb.SelectedExprs, false)
	if err != nil {
		return nil, transform.SameTree, err
	}

	nonAgg := lazyNonAggregateScope(ctx, gb, outputs, scope)
	keys, err := bindGroupBy(ctx, a, gb, gb.GroupByExprs, outputs, nonAgg, scope)
	if err != nil {
		return nil, transform.SameTree, err
	}

	outputs = processNonStandardAggregate(ctx, outputs, keys)
	if sameExprs(gb.SelectedExprs, outputs) && sameExprs(gb.GroupByExprs, keys) {
		return gb, transform.SameTree, nil
	}
	return plan.NewGroupBy(outputs, keys, gb.Child), transform.NewTree, nil
}

// bindRepeat binds a GroupBy over grouping sets. Columns grouped in some
// set are NULL in the rows of the other sets, so they become nullable in
// the outputs.
func bindRepeat(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	r := n.(*plan.Repeat)
	outputs, err := expandProjections(simpleAnalyzer(ctx, a, r, scope), r.SelectedExprs, false)
	if err != nil {
		return nil, transform.SameTree, err
	}

	nonAgg := lazyNonAggregateScope(ctx, r, outputs, scope)
	sets := make([][]sql.Expression, len(r.GroupingSets))
	var flat []sql.Expression
	for i, set := range r.GroupingSets {
		sets[i], err = bindGroupBy(ctx, a, r, set, outputs, nonAgg, scope)
		if err != nil {
			return nil, transform.SameTree, err
		}
		flat = append(flat, sets[i]...)
	}

	grouped := make(map[sql.ColumnId]bool)
	for _, key := range flat {
		for _, slot := range inputSlots(key) {
			grouped[slot.Id()] = true
		}
	}

	outputs, err = adjustNullableForRepeat(outputs, grouped)
	if err != nil {
		return nil, transform.SameTree, err
	}

	for _, out := range outputs {
		var err error
		transform.InspectExprDown(out, func(e sql.Expression) bool {
			if err != nil {
				return false
			}
			if gf, ok := e.(sql.GroupingFunction); ok {
				for _, slot := range function.InputSlots(gf) {
					if !grouped[slot.Id()] {
						err = sql.ErrGroupingColumnNotInGroupBy.New(gf.FunctionName())
						return false
					}
				}
			}
			return true
		})
		if err != nil {
			return nil, transform.SameTree, err
		}
	}

	outputs = processNonStandardAggregate(ctx, outputs, flat)
	if sameExprs(r.SelectedExprs, outputs) && sameGroupingSets(r.GroupingSets, sets) {
		return r, transform.SameTree, nil
	}
	return plan.NewRepeat(sets, outputs, r.Child), transform.NewTree, nil
}

func sameGroupingSets(a, b [][]sql.Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameExprs(a[i], b[i]) {
			return false
		}
	}
	return true
}

// inputSlots returns the columns an expression reads.
func inputSlots(e sql.Expression) []expression.Slot {
	if slot, ok := e.(expression.Slot); ok {
		return []expression.Slot{slot}
	}
	return function.InputSlots(e)
}

func adjustNullableForRepeat(outputs []sql.Expression, grouped map[sql.ColumnId]bool) ([]sql.Expression, error) {
	result := make([]sql.Expression, len(outputs))
	for i, out := range outputs {
		ne, _, err := transform.Expr(out, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
			gf, ok := e.(*expression.GetField)
			if !ok || !grouped[gf.Id()] || gf.IsNullable() {
				return e, transform.SameTree, nil
			}
			return gf.WithNullable(true), transform.NewTree, nil
		})
		if err != nil {
			return nil, err
		}
		result[i] = ne
	}
	return result, nil
}

// nonAggregateScope exposes the outputs of an aggregate that have no
// aggregate function, each remembering the expression it stands for.
type nonAggregateScope struct {
	scope    *Scope
	mappings map[sql.ColumnId]*expression.MappingSlot
}

func lazyNonAggregateScope(ctx *sql.Context, n sql.Node, outputs []sql.Expression, outer *Scope) func() *nonAggregateScope {
	return func() *nonAggregateScope {
		return ctx.Statement.Memo(scopeKey{n, nonAggregateOutputScope, outer}, func() interface{} {
			s := &nonAggregateScope{mappings: make(map[sql.ColumnId]*expression.MappingSlot)}
			var slots []*expression.GetField
			for _, out := range outputs {
				if containsAggregate(out) {
					continue
				}
				slot, ok := expression.ToSlot(out)
				if !ok {
					continue
				}
				mapping := out
				if alias, ok := out.(*expression.Alias); ok {
					mapping = alias.Child
				}
				s.mappings[slot.Id()] = expression.NewMappingSlot(slot, mapping)
				slots = append(slots, slot)
			}
			s.scope = NewScope(outer, slots)
			return s
		}).(*nonAggregateScope)
	}
}

// bindGroupBy binds grouping keys. A key is looked up in the output of the
// aggregate child first. When that lookup finds no single column, keys
// naming an output without aggregates are replaced by the expression of
// that output, as keys are computed before the outputs.
func bindGroupBy(
	ctx *sql.Context,
	a *Analyzer,
	agg plan.Aggregate,
	keys []sql.Expression,
	outputs []sql.Expression,
	nonAgg func() *nonAggregateScope,
	scope *Scope,
) ([]sql.Expression, error) {
	child := unaryChild(agg)
	childScope := nodeOutputScope(ctx, child, scope)

	binder := func(ea *exprAnalyzer, col *expression.UnresolvedColumn) ([]sql.Expression, error) {
		inChild, err := ea.bindExact(col, childScope)
		if err != nil || len(inChild) == 1 {
			return inChild, err
		}

		s := nonAgg()
		inOutput, err := ea.bindExact(col, s.scope)
		if err != nil {
			return nil, err
		}
		if len(inOutput) == 0 {
			return inChild, nil
		}

		mapped := make([]sql.Expression, len(inOutput))
		for i, e := range inOutput {
			mapped[i] = s.mappings[e.(*expression.GetField).Id()].Mapping()
		}
		return mapped, nil
	}

	ea := newExprAnalyzer(ctx, a, agg, childScope, true, true).withBinder(binder)
	result := make([]sql.Expression, len(keys))
	for i, key := range keys {
		var err error
		result[i], err = bindWithOrdinal(ea, key, outputs)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// bindWithOrdinal binds an expression, reading integer literals as the
// 1-based position of one of the outputs given. Out of range positions are
// left as literals.
func bindWithOrdinal(ea *exprAnalyzer, e sql.Expression, outputs []sql.Expression) (sql.Expression, error) {
	lit, ok := e.(*expression.Literal)
	if !ok || !sql.IsInteger(lit.Type()) {
		return ea.analyze(e)
	}

	ordinal, err := cast.ToIntE(lit.Value())
	if err != nil || ordinal < 1 || ordinal > len(outputs) {
		return lit, nil
	}
	out := outputs[ordinal-1]
	if alias, ok := out.(*expression.Alias); ok {
		return alias.Child, nil
	}
	return out, nil
}

// processNonStandardAggregate wraps the plain column outputs of an
// aggregate that are not grouping keys in ANY_VALUE, unless
// ONLY_FULL_GROUP_BY is enabled.
func processNonStandardAggregate(ctx *sql.Context, outputs, keys []sql.Expression) []sql.Expression {
	if ctx.SqlMode().OnlyFullGroupBy() {
		return outputs
	}

	keyIds := make(map[sql.ColumnId]bool)
	for _, k := range keys {
		if slot, ok := k.(expression.Slot); ok {
			keyIds[slot.Id()] = true
		}
	}

	result := make([]sql.Expression, len(outputs))
	for i, out := range outputs {
		if gf, ok := out.(*expression.GetField); ok && !keyIds[gf.Id()] {
			result[i] = anyValueAlias(ctx, gf)
		} else {
			result[i] = out
		}
	}
	return result
}

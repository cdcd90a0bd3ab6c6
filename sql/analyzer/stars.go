// Copyright 2024 Dolthub, Inc.
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
)

// expandProjections binds a list of output expressions, expanding stars to
// the columns they stand for. Every returned expression defines an output
// column: expressions that are not a column or an alias are wrapped in an
// anonymous alias.
func expandProjections(ea *exprAnalyzer, exprs []sql.Expression, allowReplace bool) ([]sql.Expression, error) {
	result := make([]sql.Expression, 0, len(exprs))
	for _, e := range exprs {
		bound, err := ea.analyze(e)
		if err != nil {
			return nil, err
		}

		boundStar, ok := bound.(*expression.BoundStar)
		if !ok {
			result = append(result, ea.named(bound))
			continue
		}

		star := e.(*expression.Star)
		if len(star.Replace) > 0 && !allowReplace {
			return nil, sql.ErrStarReplaceInAggregate.New()
		}
		expanded, err := expandStar(ea, star, boundStar)
		if err != nil {
			return nil, err
		}
		result = append(result, expanded...)
	}
	return result, nil
}

// named wraps an expression that does not define a column in an anonymous
// alias with a fresh id.
func (ea *exprAnalyzer) named(e sql.Expression) sql.Expression {
	if _, ok := expression.ToSlot(e); ok {
		return e
	}
	alias := expression.NewAnonymousAlias(e)
	return alias.WithId(ea.ctx.Statement.NextColumnId())
}

func expandStar(ea *exprAnalyzer, star *expression.Star, bound *expression.BoundStar) ([]sql.Expression, error) {
	excepted := make(map[sql.ColumnId]bool)
	for _, e := range star.Except {
		ex, err := ea.analyze(e)
		if err != nil {
			return nil, err
		}
		if slot, ok := expression.ToSlot(ex); ok {
			excepted[slot.Id()] = true
		}
	}

	var slots []*expression.GetField
	for _, slot := range bound.Slots {
		if !excepted[slot.Id()] {
			slots = append(slots, slot)
		}
	}
	if len(bound.Slots) == 0 && len(star.Except) == 0 && len(star.Replace) == 0 {
		return nil, nil
	}
	if len(slots) == 0 {
		return nil, sql.ErrAllSlotsExcepted.New()
	}

	result := make([]sql.Expression, len(slots))
	for i, slot := range slots {
		result[i] = slot
	}

	if len(star.Replace) > 0 {
		var err error
		result, err = replaceStarSlots(ea, star, slots, excepted)
		if err != nil {
			return nil, err
		}
	}

	if star.Span != nil {
		ea.ctx.Statement.AddIndexInSqlToString(*star.Span, slotsSqlWithBackquote(slots))
	}
	return result, nil
}

func replaceStarSlots(
	ea *exprAnalyzer,
	star *expression.Star,
	slots []*expression.GetField,
	excepted map[sql.ColumnId]bool,
) ([]sql.Expression, error) {
	replacements := make(map[sql.ColumnId]sql.Expression, len(star.Replace))
	var order []sql.ColumnId
	names := make(map[sql.ColumnId]string)
	for _, r := range star.Replace {
		bound, err := ea.analyze(r)
		if err != nil {
			return nil, err
		}
		target, err := ea.analyze(expression.NewUnresolvedColumn(r.Name()))
		if err != nil {
			return nil, err
		}
		slot, ok := expression.ToSlot(target)
		if !ok {
			return nil, sql.ErrInvalidReplaceColumn.New(r.Name())
		}
		if _, ok := replacements[slot.Id()]; ok {
			return nil, sql.ErrDuplicateReplaceColumn.New(r.Name())
		}
		replacements[slot.Id()] = bound
		names[slot.Id()] = r.Name()
		order = append(order, slot.Id())
	}

	var inExcept []string
	for _, id := range order {
		if excepted[id] {
			inExcept = append(inExcept, names[id])
		}
	}
	if len(inExcept) > 0 {
		return nil, sql.ErrReplaceColumnExcepted.New(inExcept)
	}

	result := make([]sql.Expression, len(slots))
	replaced := make(map[sql.ColumnId]bool)
	for i, slot := range slots {
		if r, ok := replacements[slot.Id()]; ok {
			result[i] = r
			replaced[slot.Id()] = true
		} else {
			result[i] = slot
		}
	}

	if len(replaced) != len(replacements) {
		var invalid []string
		for _, id := range order {
			if !replaced[id] {
				invalid = append(invalid, names[id])
			}
		}
		return nil, sql.ErrInvalidReplaceColumn.New(invalid)
	}
	return result, nil
}

func slotsSqlWithBackquote(slots []*expression.GetField) string {
	strs := make([]string, len(slots))
	for i, s := range slots {
		strs[i] = s.SqlWithBackquote()
	}
	return strings.Join(strs, ", ")
}

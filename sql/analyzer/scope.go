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

// Scope is the set of columns visible to the expressions of a plan node.
// The asterisk slots are the columns a * expands to, which may differ from
// the columns that can be referenced by name. A scope may point to the scope
// of an enclosing query; columns found there are recorded as correlated.
type Scope struct {
	outer      *Scope
	slots      []*expression.GetField
	asterisk   []*expression.GetField
	correlated *correlatedSlots
}

type correlatedSlots struct {
	slots []*expression.GetField
}

func (c *correlatedSlots) add(slot *expression.GetField) {
	for _, s := range c.slots {
		if s.Id() == slot.Id() {
			return
		}
	}
	c.slots = append(c.slots, slot)
}

// NewScope returns a scope over the given columns. Columns with the same id
// are only kept once.
func NewScope(outer *Scope, slots []*expression.GetField) *Scope {
	return NewScopeWithAsterisk(outer, slots, nil)
}

// NewScopeWithAsterisk returns a scope over the given columns that expands
// * to the asterisk columns. Nil asterisk columns expand * to every column
// of the scope.
func NewScopeWithAsterisk(outer *Scope, slots, asterisk []*expression.GetField) *Scope {
	s := &Scope{
		outer:      outer,
		slots:      dedupSlots(slots),
		correlated: &correlatedSlots{},
	}
	if asterisk != nil {
		s.asterisk = dedupSlots(asterisk)
	}
	return s
}

func scopeFromSchema(outer *Scope, schema sql.Schema) *Scope {
	return NewScope(outer, schemaSlots(schema))
}

func scopeFromSchemas(outer *Scope, schema, asterisk sql.Schema) *Scope {
	return NewScopeWithAsterisk(outer, schemaSlots(schema), schemaSlots(asterisk))
}

func schemaSlots(schema sql.Schema) []*expression.GetField {
	slots := make([]*expression.GetField, len(schema))
	for i, c := range schema {
		slots[i] = expression.NewGetFieldFromColumn(c)
	}
	return slots
}

func dedupSlots(slots []*expression.GetField) []*expression.GetField {
	seen := make(map[sql.ColumnId]bool, len(slots))
	result := make([]*expression.GetField, 0, len(slots))
	for _, s := range slots {
		if seen[s.Id()] {
			continue
		}
		seen[s.Id()] = true
		result = append(result, s)
	}
	return result
}

// Outer returns the scope of the enclosing query, or nil.
func (s *Scope) Outer() *Scope {
	if s == nil {
		return nil
	}
	return s.outer
}

// Slots returns the columns that can be referenced by name.
func (s *Scope) Slots() []*expression.GetField {
	if s == nil {
		return nil
	}
	return s.slots
}

// AsteriskSlots returns the columns * expands to.
func (s *Scope) AsteriskSlots() []*expression.GetField {
	if s == nil {
		return nil
	}
	if s.asterisk != nil {
		return s.asterisk
	}
	return s.slots
}

// CorrelatedSlots returns the columns of this scope referenced from an
// inner query, in order of first reference.
func (s *Scope) CorrelatedSlots() []*expression.GetField {
	if s == nil {
		return nil
	}
	return s.correlated.slots
}

// forSubquery returns a copy of the scope with its own correlated column
// recorder, to be used as the outer scope of a subquery.
func (s *Scope) forSubquery() *Scope {
	if s == nil {
		return &Scope{correlated: &correlatedSlots{}}
	}
	ns := *s
	ns.correlated = &correlatedSlots{}
	return &ns
}

const maxNameParts = 4

// resolve returns the columns of the scope matching the name parts given,
// which are one of column, table.column, db.table.column or
// catalog.db.table.column. Names compare case insensitively.
func (s *Scope) resolve(nameParts []string) ([]*expression.GetField, error) {
	if len(nameParts) == 0 || len(nameParts) > maxNameParts {
		return nil, sql.ErrUnsupportedColumnName.New(strings.Join(nameParts, "."), len(nameParts))
	}

	name := nameParts[len(nameParts)-1]
	qualifier := nameParts[:len(nameParts)-1]
	var result []*expression.GetField
	for _, slot := range s.Slots() {
		if strings.EqualFold(slot.Name(), name) && qualifierMatches(slot.Qualifier(), qualifier) {
			result = append(result, slot)
		}
	}
	return result, nil
}

// resolveExact is like resolve, but when several columns match it prefers
// the ones whose qualifier is exactly the one given. If none is, every match
// is returned so the caller reports the ambiguity.
func (s *Scope) resolveExact(nameParts []string) ([]*expression.GetField, error) {
	candidates, err := s.resolve(nameParts)
	if err != nil || len(candidates) <= 1 {
		return candidates, err
	}
	exact := filterExact(candidates, nameParts)
	if len(exact) == 0 {
		return candidates, nil
	}
	return exact, nil
}

func filterExact(candidates []*expression.GetField, nameParts []string) []*expression.GetField {
	var exact []*expression.GetField
	for _, c := range candidates {
		if len(c.Qualifier())+1 == len(nameParts) {
			exact = append(exact, c)
		}
	}
	return exact
}

// qualifierMatches returns whether the requested qualifier is a suffix of
// the qualifier of a column.
func qualifierMatches(slotQualifier, qualifier []string) bool {
	if len(qualifier) > len(slotQualifier) {
		return false
	}
	offset := len(slotQualifier) - len(qualifier)
	for i, q := range qualifier {
		if !strings.EqualFold(slotQualifier[offset+i], q) {
			return false
		}
	}
	return true
}

func slotsToExprs(slots []*expression.GetField) []sql.Expression {
	exprs := make([]sql.Expression, len(slots))
	for i, s := range slots {
		exprs[i] = s
	}
	return exprs
}

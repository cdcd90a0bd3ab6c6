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

package expression

import (
	"fmt"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
)

// Star represents the selection of all available fields.
// This is just a placeholder node, it will not actually be evaluated
// but converted to a series of GetFields when the query is analyzed.
type Star struct {
	// Qualifier restricts the star to the columns of one relation, such as
	// {"t"} for t.* or {"db", "t"} for db.t.*.
	Qualifier []string
	// Except lists the columns removed from the expansion.
	Except []sql.Expression
	// Replace lists the columns whose value is replaced in the expansion.
	// The name of each alias is the column it replaces.
	Replace []*Alias
	// Span is the position of the star in the statement text, if known.
	Span *sql.SqlSpan
}

var _ sql.Expression = (*Star)(nil)

// NewStar returns a new Star expression.
func NewStar() *Star {
	return new(Star)
}

// NewQualifiedStar returns a new star expression only for a specific table.
func NewQualifiedStar(qualifier ...string) *Star {
	return &Star{Qualifier: qualifier}
}

// WithExcept returns a copy of the star excluding the given columns.
func (s *Star) WithExcept(except ...sql.Expression) *Star {
	ns := *s
	ns.Except = except
	return &ns
}

// WithReplace returns a copy of the star replacing the given columns.
func (s *Star) WithReplace(replace ...*Alias) *Star {
	ns := *s
	ns.Replace = replace
	return &ns
}

// WithSpan returns a copy of the star located at the given span.
func (s *Star) WithSpan(start, end int) *Star {
	ns := *s
	ns.Span = &sql.SqlSpan{Start: start, End: end}
	return &ns
}

// Resolved implements the Expression interface.
func (*Star) Resolved() bool {
	return false
}

// Children implements the Expression interface.
func (*Star) Children() []sql.Expression {
	return nil
}

// IsNullable implements the Expression interface.
func (*Star) IsNullable() bool {
	panic("star is just a placeholder node, but IsNullable was called")
}

// Type implements the Expression interface.
func (*Star) Type() sql.Type {
	panic("star is just a placeholder node, but Type was called")
}

func (s *Star) String() string {
	var sb strings.Builder
	if len(s.Qualifier) > 0 {
		sb.WriteString(strings.Join(s.Qualifier, "."))
		sb.WriteString(".")
	}
	sb.WriteString("*")
	if len(s.Except) > 0 {
		fmt.Fprintf(&sb, " EXCEPT(%s)", JoinStrings(s.Except, ", "))
	}
	if len(s.Replace) > 0 {
		replace := make([]sql.Expression, len(s.Replace))
		for i, r := range s.Replace {
			replace[i] = r
		}
		fmt.Fprintf(&sb, " REPLACE(%s)", JoinStrings(replace, ", "))
	}
	return sb.String()
}

// WithChildren implements the Expression interface.
func (s *Star) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 0)
	}
	return s, nil
}

// BoundStar is a star whose columns have been looked up but not yet
// filtered by its EXCEPT and REPLACE clauses.
type BoundStar struct {
	Slots []*GetField
}

var _ sql.Expression = (*BoundStar)(nil)

// NewBoundStar returns a new BoundStar over the given columns.
func NewBoundStar(slots []*GetField) *BoundStar {
	return &BoundStar{Slots: slots}
}

// Resolved implements the Expression interface. A bound star still has to
// be expanded into its columns.
func (*BoundStar) Resolved() bool {
	return false
}

// Children implements the Expression interface.
func (*BoundStar) Children() []sql.Expression {
	return nil
}

// IsNullable implements the Expression interface.
func (*BoundStar) IsNullable() bool {
	panic("bound star is a placeholder node, but IsNullable was called")
}

// Type implements the Expression interface.
func (*BoundStar) Type() sql.Type {
	panic("bound star is a placeholder node, but Type was called")
}

func (b *BoundStar) String() string {
	fields := make([]sql.Expression, len(b.Slots))
	for i, s := range b.Slots {
		fields[i] = s
	}
	return JoinStrings(fields, ", ")
}

// WithChildren implements the Expression interface.
func (b *BoundStar) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(b, len(children), 0)
	}
	return b, nil
}

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

	"github.com/dolthub/go-sql-binder/sql"
)

// Literal represents a literal expression (string, number, bool, ...).
type Literal struct {
	value     interface{}
	fieldType sql.Type
}

var _ sql.Expression = (*Literal)(nil)

// NewLiteral creates a new Literal expression.
func NewLiteral(value interface{}, fieldType sql.Type) *Literal {
	return &Literal{
		value:     value,
		fieldType: fieldType,
	}
}

// NewNullLiteral creates a NULL literal.
func NewNullLiteral() *Literal {
	return NewLiteral(nil, sql.Null)
}

// Resolved implements the Expression interface.
func (lit *Literal) Resolved() bool {
	return true
}

// IsNullable implements the Expression interface.
func (lit *Literal) IsNullable() bool {
	return lit.value == nil
}

// Type implements the Expression interface.
func (lit *Literal) Type() sql.Type {
	return lit.fieldType
}

// Value returns the literal value.
func (lit *Literal) Value() interface{} {
	return lit.value
}

func (lit *Literal) String() string {
	switch v := lit.value.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(v)
	}
}

func (lit *Literal) DebugString() string {
	return fmt.Sprintf("%s (%s)", lit.String(), lit.fieldType)
}

// WithChildren implements the Expression interface.
func (lit *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(lit, len(children), 0)
	}
	return lit, nil
}

// Children implements the Expression interface.
func (*Literal) Children() []sql.Expression {
	return nil
}

// DefaultColumn is the DEFAULT keyword used as a value. It is only valid in
// the VALUES list of an INSERT.
type DefaultColumn struct{}

var _ sql.Expression = (*DefaultColumn)(nil)

// NewDefaultColumn creates a new DefaultColumn expression.
func NewDefaultColumn() *DefaultColumn {
	return &DefaultColumn{}
}

// Resolved implements the Expression interface.
func (*DefaultColumn) Resolved() bool { return false }

// Children implements the Expression interface.
func (*DefaultColumn) Children() []sql.Expression { return nil }

// IsNullable implements the Expression interface.
func (*DefaultColumn) IsNullable() bool {
	panic("default column is a placeholder node, but IsNullable was called")
}

// Type implements the Expression interface.
func (*DefaultColumn) Type() sql.Type {
	panic("default column is a placeholder node, but Type was called")
}

func (*DefaultColumn) String() string { return "DEFAULT" }

// WithChildren implements the Expression interface.
func (d *DefaultColumn) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(d, len(children), 0)
	}
	return d, nil
}

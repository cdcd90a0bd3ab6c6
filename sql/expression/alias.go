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

// Alias is a node that gives a name to an expression and defines a new
// column with its own id.
type Alias struct {
	UnaryExpression
	name      string
	id        sql.ColumnId
	qualifier []string
	anonymous bool
}

var _ sql.Expression = (*Alias)(nil)
var _ sql.Nameable = (*Alias)(nil)

// NewAlias returns a new Alias node. The alias has no id until the binder
// assigns one.
func NewAlias(name string, expr sql.Expression) *Alias {
	return &Alias{UnaryExpression: UnaryExpression{expr}, name: name}
}

// NewAnonymousAlias returns an alias for a projection written without AS.
// The name is the text of the expression.
func NewAnonymousAlias(expr sql.Expression) *Alias {
	return &Alias{UnaryExpression: UnaryExpression{expr}, name: expr.String(), anonymous: true}
}

// Type returns the type of the expression.
func (e *Alias) Type() sql.Type {
	return e.Child.Type()
}

// Resolved implements the Expression interface.
func (e *Alias) Resolved() bool {
	return e.id != 0 && e.Child.Resolved()
}

func (e *Alias) String() string {
	return fmt.Sprintf("%s as %s", e.Child, e.name)
}

func (e *Alias) DebugString() string {
	return fmt.Sprintf("%s as %s#%d", sql.DebugString(e.Child), e.name, e.id)
}

// WithChildren implements the Expression interface.
func (e *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 1)
	}
	ne := *e
	ne.Child = children[0]
	return &ne, nil
}

// Name implements the Nameable interface.
func (e *Alias) Name() string { return e.name }

// Id returns the id of the column the alias defines, or zero if it has not
// been assigned one yet.
func (e *Alias) Id() sql.ColumnId { return e.id }

// WithId returns a copy of the alias with the given id.
func (e *Alias) WithId(id sql.ColumnId) *Alias {
	ne := *e
	ne.id = id
	return &ne
}

// WithName returns a copy of the alias with the given name.
func (e *Alias) WithName(name string) *Alias {
	ne := *e
	ne.name = name
	ne.anonymous = false
	return &ne
}

// Qualifier returns the qualifier of the column the alias defines.
func (e *Alias) Qualifier() []string { return e.qualifier }

// WithQualifier returns a copy of the alias with the given qualifier.
func (e *Alias) WithQualifier(qualifier []string) *Alias {
	ne := *e
	ne.qualifier = qualifier
	return &ne
}

// Anonymous returns whether the alias was generated for an expression
// written without a name.
func (e *Alias) Anonymous() bool { return e.anonymous }

// ToSlot returns a reference to the column the alias defines.
func (e *Alias) ToSlot() *GetField {
	return NewGetFieldWithQualifier(e.id, e.Child.Type(), e.name, e.Child.IsNullable(), e.qualifier)
}

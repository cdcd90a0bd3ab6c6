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

// UnresolvedColumn is an expression of a column that is not yet resolved.
// This is a placeholder node, so its methods Type and IsNullable are not
// supposed to be called.
type UnresolvedColumn struct {
	nameParts []string
}

// NewUnresolvedColumn creates a new UnresolvedColumn expression.
func NewUnresolvedColumn(name string) *UnresolvedColumn {
	return &UnresolvedColumn{nameParts: []string{name}}
}

// NewUnresolvedQualifiedColumn creates a new UnresolvedColumn expression
// with a table qualifier.
func NewUnresolvedQualifiedColumn(table, name string) *UnresolvedColumn {
	return &UnresolvedColumn{nameParts: []string{table, name}}
}

// NewUnresolvedColumnFromParts creates a new UnresolvedColumn from the
// dotted parts of its name, such as {"db", "t", "c"}.
func NewUnresolvedColumnFromParts(parts ...string) *UnresolvedColumn {
	return &UnresolvedColumn{nameParts: parts}
}

// Children implements the Expression interface.
func (*UnresolvedColumn) Children() []sql.Expression {
	return nil
}

// Resolved implements the Expression interface.
func (*UnresolvedColumn) Resolved() bool {
	return false
}

// IsNullable implements the Expression interface.
func (*UnresolvedColumn) IsNullable() bool {
	panic("unresolved column is a placeholder node, but IsNullable was called")
}

// Type implements the Expression interface.
func (*UnresolvedColumn) Type() sql.Type {
	panic("unresolved column is a placeholder node, but Type was called")
}

// Name implements the Nameable interface.
func (uc *UnresolvedColumn) Name() string {
	if len(uc.nameParts) == 0 {
		return ""
	}
	return uc.nameParts[len(uc.nameParts)-1]
}

// Table returns the table name.
func (uc *UnresolvedColumn) Table() string {
	if len(uc.nameParts) < 2 {
		return ""
	}
	return uc.nameParts[len(uc.nameParts)-2]
}

// NameParts returns all the parts of the name, qualifier first.
func (uc *UnresolvedColumn) NameParts() []string { return uc.nameParts }

func (uc *UnresolvedColumn) String() string {
	return strings.Join(uc.nameParts, ".")
}

// WithChildren implements the Expression interface.
func (uc *UnresolvedColumn) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(uc, len(children), 0)
	}
	return uc, nil
}

// UnresolvedFunction represents a function that is not yet resolved.
// This is a placeholder node, so its methods Type and IsNullable are not
// supposed to be called.
type UnresolvedFunction struct {
	db   string
	name string
	// Window is the window for this function, if present
	Window *sql.Window
	// Arguments of the function.
	Arguments []sql.Expression
}

// NewUnresolvedFunction creates a new UnresolvedFunction expression.
func NewUnresolvedFunction(
	name string,
	window *sql.Window,
	arguments ...sql.Expression,
) *UnresolvedFunction {
	return &UnresolvedFunction{
		name:      name,
		Window:    window,
		Arguments: arguments,
	}
}

// NewUnresolvedQualifiedFunction creates a new UnresolvedFunction of a
// function defined in the given database.
func NewUnresolvedQualifiedFunction(db, name string, window *sql.Window, arguments ...sql.Expression) *UnresolvedFunction {
	uf := NewUnresolvedFunction(name, window, arguments...)
	uf.db = db
	return uf
}

// Children implements the Expression interface.
func (uf *UnresolvedFunction) Children() []sql.Expression {
	children := make([]sql.Expression, 0, len(uf.Arguments))
	children = append(children, uf.Arguments...)
	return append(children, uf.Window.ToExpressions()...)
}

// Resolved implements the Expression interface.
func (*UnresolvedFunction) Resolved() bool {
	return false
}

// IsNullable implements the Expression interface.
func (*UnresolvedFunction) IsNullable() bool {
	panic("unresolved function is a placeholder node, but IsNullable was called")
}

// Type implements the Expression interface.
func (*UnresolvedFunction) Type() sql.Type {
	panic("unresolved function is a placeholder node, but Type was called")
}

// Name implements the Nameable interface.
func (uf *UnresolvedFunction) Name() string { return uf.name }

// Database returns the database the function is qualified with, if any.
func (uf *UnresolvedFunction) Database() string { return uf.db }

func (uf *UnresolvedFunction) String() string {
	over := ""
	if uf.Window != nil {
		over = fmt.Sprintf(" %s", uf.Window)
	}

	name := uf.name
	if uf.db != "" {
		name = uf.db + "." + name
	}
	return fmt.Sprintf("%s(%s)%s", name, JoinStrings(uf.Arguments, ", "), over)
}

func (uf *UnresolvedFunction) DebugString() string {
	return fmt.Sprintf("unresolved %s", uf.String())
}

// WithChildren implements the Expression interface.
func (uf *UnresolvedFunction) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(uf.Arguments)+len(uf.Window.ToExpressions()) {
		return nil, sql.ErrInvalidChildrenNumber.New(uf, len(children), len(uf.Arguments)+len(uf.Window.ToExpressions()))
	}

	window, err := uf.Window.FromExpressions(children[len(uf.Arguments):])
	if err != nil {
		return nil, err
	}

	return NewUnresolvedQualifiedFunction(uf.db, uf.name, window, children[:len(uf.Arguments)]...), nil
}

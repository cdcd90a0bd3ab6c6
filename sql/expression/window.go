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

// WindowExpression is a function evaluated over a window of rows: a window
// function, or an aggregate used with an OVER clause.
type WindowExpression struct {
	Function sql.Expression
	Window   *sql.Window
}

var _ sql.Expression = (*WindowExpression)(nil)

// NewWindowExpression creates a new WindowExpression.
func NewWindowExpression(fn sql.Expression, window *sql.Window) *WindowExpression {
	return &WindowExpression{Function: fn, Window: window}
}

// Resolved implements the Expression interface.
func (w *WindowExpression) Resolved() bool {
	return w.Function.Resolved() && ExpressionsResolved(w.Window.ToExpressions()...)
}

// Type implements the Expression interface.
func (w *WindowExpression) Type() sql.Type {
	return w.Function.Type()
}

// IsNullable implements the Expression interface.
func (w *WindowExpression) IsNullable() bool {
	return w.Function.IsNullable()
}

// Children implements the Expression interface. The function comes first,
// followed by the partition and order expressions.
func (w *WindowExpression) Children() []sql.Expression {
	return append([]sql.Expression{w.Function}, w.Window.ToExpressions()...)
}

// WithChildren implements the Expression interface.
func (w *WindowExpression) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	expected := 1 + len(w.Window.ToExpressions())
	if len(children) != expected {
		return nil, sql.ErrInvalidChildrenNumber.New(w, len(children), expected)
	}
	window, err := w.Window.FromExpressions(children[1:])
	if err != nil {
		return nil, err
	}
	return NewWindowExpression(children[0], window), nil
}

func (w *WindowExpression) String() string {
	return fmt.Sprintf("%s %s", w.Function, w.Window)
}

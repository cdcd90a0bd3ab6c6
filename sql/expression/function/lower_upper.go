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

package function

import (
	"github.com/dolthub/go-sql-binder/sql"
)

// Lower is a function that returns the lowercase of the text provided.
type Lower struct {
	*UnaryFunc
}

var _ sql.FunctionExpression = (*Lower)(nil)

// NewLower creates a new Lower expression.
func NewLower(e sql.Expression) sql.Expression {
	return &Lower{NewUnaryFunc(e, "LOWER", sql.Text)}
}

// WithChildren implements the Expression interface.
func (l *Lower) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(l, len(children), 1)
	}
	return NewLower(children[0]), nil
}

// Upper is a function that returns the UPPERCASE of the text provided.
type Upper struct {
	*UnaryFunc
}

var _ sql.FunctionExpression = (*Upper)(nil)

// NewUpper creates a new Upper expression.
func NewUpper(e sql.Expression) sql.Expression {
	return &Upper{NewUnaryFunc(e, "UPPER", sql.Text)}
}

// WithChildren implements the Expression interface.
func (u *Upper) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(u, len(children), 1)
	}
	return NewUpper(children[0]), nil
}

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
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// Concat joins several strings together.
type Concat struct {
	NaryFunc
}

var _ sql.FunctionExpression = (*Concat)(nil)

// NewConcat creates a new Concat UDF.
func NewConcat(args ...sql.Expression) (sql.Expression, error) {
	if len(args) == 0 {
		return nil, sql.ErrInvalidArgumentNumber.New("concat", "1 or more", 0)
	}

	for _, arg := range args {
		if sql.IsArray(arg.Type()) || sql.IsMap(arg.Type()) || sql.IsStruct(arg.Type()) {
			return nil, sql.ErrInvalidArgumentType.New("concat", arg.Type())
		}
	}

	return &Concat{NaryFunc{Args: args, Name: "concat"}}, nil
}

// Type implements the Expression interface.
func (f *Concat) Type() sql.Type { return sql.Text }

// IsNullable implements the Expression interface.
func (f *Concat) IsNullable() bool {
	return expression.ExpressionsNullable(f.Args...)
}

// WithChildren implements the Expression interface.
func (f *Concat) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewConcat(children...)
}

// Coalesce returns the first non-NULL value of its arguments.
type Coalesce struct {
	NaryFunc
}

var _ sql.FunctionExpression = (*Coalesce)(nil)

// NewCoalesce creates a new Coalesce sql.Expression.
func NewCoalesce(args ...sql.Expression) (sql.Expression, error) {
	if len(args) == 0 {
		return nil, sql.ErrInvalidArgumentNumber.New("coalesce", "1 or more", 0)
	}

	return &Coalesce{NaryFunc{Args: args, Name: "coalesce"}}, nil
}

// Type implements the sql.Expression interface. The return type is the
// widest type of the arguments.
func (c *Coalesce) Type() sql.Type {
	typ := sql.Null
	for _, arg := range c.Args {
		wider, ok := sql.WiderType(typ, arg.Type())
		if !ok {
			return arg.Type()
		}
		typ = wider
	}
	return typ
}

// IsNullable implements the sql.Expression interface. The result is nullable
// only if every argument is.
func (c *Coalesce) IsNullable() bool {
	for _, arg := range c.Args {
		if !arg.IsNullable() {
			return false
		}
	}
	return true
}

// WithChildren implements the Expression interface.
func (c *Coalesce) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewCoalesce(children...)
}

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
	"fmt"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// Explode is a function that generates a row for each value of its child.
// It is a placeholder expression node.
type Explode struct {
	expression.UnaryExpression
}

var _ sql.Generator = (*Explode)(nil)

// NewExplode creates a new Explode function.
func NewExplode(args ...sql.Expression) (sql.Expression, error) {
	if len(args) != 1 {
		return nil, sql.ErrInvalidArgumentNumber.New("explode", 1, len(args))
	}
	if !sql.IsArray(args[0].Type()) && !sql.IsNull(args[0].Type()) {
		return nil, sql.ErrInvalidArgumentType.New("explode", args[0].Type())
	}
	return &Explode{expression.UnaryExpression{Child: args[0]}}, nil
}

// FunctionName implements sql.FunctionExpression
func (e *Explode) FunctionName() string {
	return "explode"
}

// IsGenerator implements the sql.Generator interface.
func (e *Explode) IsGenerator() {}

// IsNullable implements the sql.Expression interface. Arrays may contain NULLs.
func (e *Explode) IsNullable() bool { return true }

// Type implements the sql.Expression interface.
func (e *Explode) Type() sql.Type {
	if arr, ok := e.Child.Type().(sql.ArrayType); ok {
		return arr.Elem
	}
	return sql.Null
}

func (e *Explode) String() string {
	return fmt.Sprintf("EXPLODE(%s)", e.Child)
}

// WithChildren implements the Expression interface.
func (e *Explode) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewExplode(children...)
}

// ExplodeMap generates a row for each entry of a map. Each row is a struct
// with the fields key and value.
type ExplodeMap struct {
	expression.UnaryExpression
}

var _ sql.Generator = (*ExplodeMap)(nil)

// NewExplodeMap creates a new ExplodeMap function.
func NewExplodeMap(args ...sql.Expression) (sql.Expression, error) {
	if len(args) != 1 {
		return nil, sql.ErrInvalidArgumentNumber.New("explode_map", 1, len(args))
	}
	if !sql.IsMap(args[0].Type()) {
		return nil, sql.ErrInvalidArgumentType.New("explode_map", args[0].Type())
	}
	return &ExplodeMap{expression.UnaryExpression{Child: args[0]}}, nil
}

// FunctionName implements sql.FunctionExpression
func (e *ExplodeMap) FunctionName() string {
	return "explode_map"
}

// IsGenerator implements the sql.Generator interface.
func (e *ExplodeMap) IsGenerator() {}

// Type implements the sql.Expression interface.
func (e *ExplodeMap) Type() sql.Type {
	m := e.Child.Type().(sql.MapType)
	return sql.CreateStruct(
		sql.StructField{Name: "key", Type: m.Key, Nullable: false},
		sql.StructField{Name: "value", Type: m.Value, Nullable: true},
	)
}

func (e *ExplodeMap) String() string {
	return fmt.Sprintf("EXPLODE_MAP(%s)", e.Child)
}

// WithChildren implements the Expression interface.
func (e *ExplodeMap) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewExplodeMap(children...)
}

// ExplodeNumbers generates the integers from zero up to its argument.
type ExplodeNumbers struct {
	expression.UnaryExpression
}

var _ sql.Generator = (*ExplodeNumbers)(nil)

// NewExplodeNumbers creates a new ExplodeNumbers function.
func NewExplodeNumbers(e sql.Expression) sql.Expression {
	return &ExplodeNumbers{expression.UnaryExpression{Child: e}}
}

// FunctionName implements sql.FunctionExpression
func (e *ExplodeNumbers) FunctionName() string {
	return "explode_numbers"
}

// IsGenerator implements the sql.Generator interface.
func (e *ExplodeNumbers) IsGenerator() {}

// Type implements the sql.Expression interface.
func (e *ExplodeNumbers) Type() sql.Type { return sql.Int32 }

// IsNullable implements the sql.Expression interface.
func (e *ExplodeNumbers) IsNullable() bool { return false }

func (e *ExplodeNumbers) String() string {
	return fmt.Sprintf("EXPLODE_NUMBERS(%s)", e.Child)
}

// WithChildren implements the Expression interface.
func (e *ExplodeNumbers) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 1)
	}
	return NewExplodeNumbers(children[0]), nil
}

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

package function

import (
	"fmt"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// StructElement extracts a field of a struct value by name.
type StructElement struct {
	expression.BinaryExpression
	field sql.StructField
}

var _ sql.FunctionExpression = (*StructElement)(nil)

// NewStructElement creates a new StructElement. The second argument must be
// a text literal naming a field of the first.
func NewStructElement(args ...sql.Expression) (sql.Expression, error) {
	if len(args) != 2 {
		return nil, sql.ErrInvalidArgumentNumber.New("struct_element", 2, len(args))
	}
	st, ok := args[0].Type().(sql.StructType)
	if !ok {
		return nil, sql.ErrInvalidArgumentType.New("struct_element", args[0].Type())
	}
	lit, ok := args[1].(*expression.Literal)
	if !ok {
		return nil, sql.ErrInvalidArgumentType.New("struct_element", "field name must be a literal")
	}
	name, ok := lit.Value().(string)
	if !ok {
		return nil, sql.ErrInvalidArgumentType.New("struct_element", lit.Type())
	}
	field, ok := st.Field(name)
	if !ok {
		return nil, sql.ErrInvalidArgumentType.New("struct_element", fmt.Sprintf("no field %s in %s", name, st))
	}
	return &StructElement{
		BinaryExpression: expression.BinaryExpression{Left: args[0], Right: args[1]},
		field:            field,
	}, nil
}

// FunctionName implements sql.FunctionExpression
func (s *StructElement) FunctionName() string { return "struct_element" }

// Type implements the sql.Expression interface.
func (s *StructElement) Type() sql.Type { return s.field.Type }

// IsNullable implements the sql.Expression interface.
func (s *StructElement) IsNullable() bool {
	return s.field.Nullable || s.Left.IsNullable()
}

func (s *StructElement) String() string {
	return fmt.Sprintf("STRUCT_ELEMENT(%s, %s)", s.Left, s.Right)
}

// WithChildren implements the Expression interface.
func (s *StructElement) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewStructElement(children...)
}

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

// Cast represents a conversion of its child to a given type.
type Cast struct {
	UnaryExpression
	castToType sql.Type
}

var _ sql.Expression = (*Cast)(nil)

// NewCast creates a new Cast expression.
func NewCast(expr sql.Expression, castToType sql.Type) *Cast {
	return &Cast{
		UnaryExpression: UnaryExpression{Child: expr},
		castToType:      castToType,
	}
}

// Type implements the Expression interface.
func (c *Cast) Type() sql.Type {
	return c.castToType
}

// IsNullable implements the Expression interface. Text that does not parse
// as the target type converts to NULL.
func (c *Cast) IsNullable() bool {
	if sql.IsText(c.Child.Type()) && !sql.IsText(c.castToType) {
		return true
	}
	return c.Child.IsNullable()
}

func (c *Cast) String() string {
	return fmt.Sprintf("CAST(%s AS %s)", c.Child, c.castToType)
}

func (c *Cast) DebugString() string {
	return fmt.Sprintf("CAST(%s AS %s)", sql.DebugString(c.Child), c.castToType)
}

// WithChildren implements the Expression interface.
func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), 1)
	}
	return NewCast(children[0], c.castToType), nil
}

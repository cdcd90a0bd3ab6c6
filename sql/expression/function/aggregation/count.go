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

package aggregation

import (
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// Count node to count how many rows are in the result set.
type Count struct {
	expression.UnaryExpression
	star bool
}

var _ sql.Aggregation = (*Count)(nil)

// NewCount creates a new Count node.
func NewCount(e sql.Expression) *Count {
	return &Count{UnaryExpression: expression.UnaryExpression{Child: e}}
}

// NewCountStar creates a new Count node counting every row.
func NewCountStar() *Count {
	return &Count{UnaryExpression: expression.UnaryExpression{Child: expression.NewLiteral(int64(1), sql.Int64)}, star: true}
}

// FunctionName implements sql.FunctionExpression
func (c *Count) FunctionName() string {
	return "count"
}

// IsAggregate implements the sql.Aggregation interface.
func (c *Count) IsAggregate() {}

// IsStar returns whether the node is COUNT(*).
func (c *Count) IsStar() bool { return c.star }

// Type returns the type of the result.
func (c *Count) Type() sql.Type {
	return sql.Int64
}

// IsNullable returns whether the return value can be null.
func (c *Count) IsNullable() bool {
	return false
}

func (c *Count) String() string {
	if c.star {
		return "COUNT(*)"
	}
	return "COUNT(" + c.Child.String() + ")"
}

// WithChildren implements the Expression interface.
func (c *Count) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), 1)
	}
	nc := *c
	nc.Child = children[0]
	return &nc, nil
}

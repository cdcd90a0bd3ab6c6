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

// Sum aggregates the sum of a numeric expression.
type Sum struct {
	*unaryAggBase
}

var _ sql.NullableAggregation = (*Sum)(nil)

// NewSum returns a new Sum node.
func NewSum(e sql.Expression) *Sum {
	return &Sum{&unaryAggBase{UnaryExpression: expression.UnaryExpression{Child: e}, functionName: "sum"}}
}

// Type returns the resultant type of the aggregation.
func (a *Sum) Type() sql.Type {
	if sql.IsInteger(a.Child.Type()) || sql.IsBoolean(a.Child.Type()) {
		return sql.Int64
	}
	return sql.Float64
}

// WithAlwaysNullable implements the sql.NullableAggregation interface.
func (a *Sum) WithAlwaysNullable(nullable bool) sql.NullableAggregation {
	return &Sum{a.withAlwaysNullable(nullable)}
}

// WithChildren implements the Expression interface.
func (a *Sum) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	base, err := a.withChild(children, a)
	if err != nil {
		return nil, err
	}
	return &Sum{base}, nil
}

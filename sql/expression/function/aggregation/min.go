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

// Min aggregation returns the smallest value of the selected column.
type Min struct {
	*unaryAggBase
}

var _ sql.NullableAggregation = (*Min)(nil)

// NewMin returns a new Min node.
func NewMin(e sql.Expression) *Min {
	return &Min{&unaryAggBase{UnaryExpression: expression.UnaryExpression{Child: e}, functionName: "min"}}
}

// Type returns the resultant type of the aggregation.
func (a *Min) Type() sql.Type {
	return a.Child.Type()
}

// WithAlwaysNullable implements the sql.NullableAggregation interface.
func (a *Min) WithAlwaysNullable(nullable bool) sql.NullableAggregation {
	return &Min{a.withAlwaysNullable(nullable)}
}

// WithChildren implements the Expression interface.
func (a *Min) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	base, err := a.withChild(children, a)
	if err != nil {
		return nil, err
	}
	return &Min{base}, nil
}

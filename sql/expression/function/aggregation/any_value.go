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

// AnyValue returns an arbitrary value of its argument within each group. It is also used to
// wrap columns that are neither grouped nor aggregated when ONLY_FULL_GROUP_BY is disabled.
type AnyValue struct {
	*unaryAggBase
}

var _ sql.NullableAggregation = (*AnyValue)(nil)

// NewAnyValue returns a new AnyValue node.
func NewAnyValue(e sql.Expression) *AnyValue {
	return &AnyValue{&unaryAggBase{UnaryExpression: expression.UnaryExpression{Child: e}, functionName: "any_value"}}
}

// Type returns the resultant type of the aggregation.
func (a *AnyValue) Type() sql.Type {
	return a.Child.Type()
}

// WithAlwaysNullable implements the sql.NullableAggregation interface.
func (a *AnyValue) WithAlwaysNullable(nullable bool) sql.NullableAggregation {
	return &AnyValue{a.withAlwaysNullable(nullable)}
}

// WithChildren implements the Expression interface.
func (a *AnyValue) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	base, err := a.withChild(children, a)
	if err != nil {
		return nil, err
	}
	return &AnyValue{base}, nil
}

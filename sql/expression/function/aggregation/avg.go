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

// Avg node to calculate the average of a numeric expression.
type Avg struct {
	*unaryAggBase
}

var _ sql.NullableAggregation = (*Avg)(nil)

// NewAvg returns a new Avg node.
func NewAvg(e sql.Expression) *Avg {
	return &Avg{&unaryAggBase{UnaryExpression: expression.UnaryExpression{Child: e}, functionName: "avg"}}
}

// Type returns the resultant type of the aggregation.
func (a *Avg) Type() sql.Type {
	return sql.Float64
}

// WithAlwaysNullable implements the sql.NullableAggregation interface.
func (a *Avg) WithAlwaysNullable(nullable bool) sql.NullableAggregation {
	return &Avg{a.withAlwaysNullable(nullable)}
}

// WithChildren implements the Expression interface.
func (a *Avg) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	base, err := a.withChild(children, a)
	if err != nil {
		return nil, err
	}
	return &Avg{base}, nil
}

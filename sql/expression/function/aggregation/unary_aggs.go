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
	"fmt"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// unaryAggBase is the common base of aggregates with a single argument.
type unaryAggBase struct {
	expression.UnaryExpression
	functionName   string
	alwaysNullable bool
}

// FunctionName implements sql.FunctionExpression
func (a *unaryAggBase) FunctionName() string {
	return a.functionName
}

// IsAggregate implements the sql.Aggregation interface.
func (a *unaryAggBase) IsAggregate() {}

// AlwaysNullable implements the sql.NullableAggregation interface.
func (a *unaryAggBase) AlwaysNullable() bool {
	return a.alwaysNullable
}

// IsNullable implements the sql.Expression interface. Aggregates over no
// rows produce NULL, which only matters once the result was forced nullable.
func (a *unaryAggBase) IsNullable() bool {
	return a.alwaysNullable || a.Child.IsNullable()
}

func (a *unaryAggBase) String() string {
	return fmt.Sprintf("%s(%s)", strings.ToUpper(a.functionName), a.Child)
}

func (a *unaryAggBase) DebugString() string {
	if a.alwaysNullable {
		return fmt.Sprintf("%s(%s) nullable", strings.ToUpper(a.functionName), sql.DebugString(a.Child))
	}
	return fmt.Sprintf("%s(%s)", strings.ToUpper(a.functionName), sql.DebugString(a.Child))
}

func (a *unaryAggBase) withChild(children []sql.Expression, e sql.Expression) (*unaryAggBase, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 1)
	}
	na := *a
	na.Child = children[0]
	return &na, nil
}

func (a *unaryAggBase) withAlwaysNullable(nullable bool) *unaryAggBase {
	na := *a
	na.alwaysNullable = nullable
	return &na
}

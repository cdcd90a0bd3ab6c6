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
	"github.com/dolthub/go-sql-binder/sql"
)

// RowNumber numbers the rows of its window partition starting from one.
type RowNumber struct{}

var _ sql.WindowFunction = (*RowNumber)(nil)

// NewRowNumber creates a new RowNumber function.
func NewRowNumber() sql.Expression {
	return &RowNumber{}
}

// FunctionName implements sql.FunctionExpression
func (*RowNumber) FunctionName() string { return "row_number" }

// IsWindowFunction implements the sql.WindowFunction interface.
func (*RowNumber) IsWindowFunction() {}

// Resolved implements the sql.Expression interface.
func (*RowNumber) Resolved() bool { return true }

// Type implements the sql.Expression interface.
func (*RowNumber) Type() sql.Type { return sql.Int64 }

// IsNullable implements the sql.Expression interface.
func (*RowNumber) IsNullable() bool { return false }

// Children implements the sql.Expression interface.
func (*RowNumber) Children() []sql.Expression { return nil }

func (*RowNumber) String() string { return "ROW_NUMBER()" }

// WithChildren implements the Expression interface.
func (r *RowNumber) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(r, len(children), 0)
	}
	return r, nil
}

// Rank returns the rank of the row in its window partition, with gaps.
type Rank struct{}

var _ sql.WindowFunction = (*Rank)(nil)

// NewRank creates a new Rank function.
func NewRank() sql.Expression {
	return &Rank{}
}

// FunctionName implements sql.FunctionExpression
func (*Rank) FunctionName() string { return "rank" }

// IsWindowFunction implements the sql.WindowFunction interface.
func (*Rank) IsWindowFunction() {}

// Resolved implements the sql.Expression interface.
func (*Rank) Resolved() bool { return true }

// Type implements the sql.Expression interface.
func (*Rank) Type() sql.Type { return sql.Int64 }

// IsNullable implements the sql.Expression interface.
func (*Rank) IsNullable() bool { return false }

// Children implements the sql.Expression interface.
func (*Rank) Children() []sql.Expression { return nil }

func (*Rank) String() string { return "RANK()" }

// WithChildren implements the Expression interface.
func (r *Rank) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(r, len(children), 0)
	}
	return r, nil
}

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
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// Grouping reports whether its argument is aggregated in the grouping set
// of the current row.
type Grouping struct {
	NaryFunc
}

var _ sql.GroupingFunction = (*Grouping)(nil)

// NewGrouping creates a new Grouping function.
func NewGrouping(args ...sql.Expression) (sql.Expression, error) {
	if len(args) != 1 {
		return nil, sql.ErrInvalidArgumentNumber.New("grouping", 1, len(args))
	}
	return &Grouping{NaryFunc{Args: args, Name: "grouping"}}, nil
}

// IsGroupingFunction implements the sql.GroupingFunction interface.
func (*Grouping) IsGroupingFunction() {}

// Type implements the sql.Expression interface.
func (*Grouping) Type() sql.Type { return sql.Int64 }

// IsNullable implements the sql.Expression interface.
func (*Grouping) IsNullable() bool { return false }

// WithChildren implements the Expression interface.
func (g *Grouping) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewGrouping(children...)
}

// GroupingId returns a bit vector of the GROUPING value of each argument.
type GroupingId struct {
	NaryFunc
}

var _ sql.GroupingFunction = (*GroupingId)(nil)

// NewGroupingId creates a new GroupingId function.
func NewGroupingId(args ...sql.Expression) (sql.Expression, error) {
	if len(args) == 0 {
		return nil, sql.ErrInvalidArgumentNumber.New("grouping_id", "1 or more", 0)
	}
	return &GroupingId{NaryFunc{Args: args, Name: "grouping_id"}}, nil
}

// IsGroupingFunction implements the sql.GroupingFunction interface.
func (*GroupingId) IsGroupingFunction() {}

// Type implements the sql.Expression interface.
func (*GroupingId) Type() sql.Type { return sql.Int64 }

// IsNullable implements the sql.Expression interface.
func (*GroupingId) IsNullable() bool { return false }

// WithChildren implements the Expression interface.
func (g *GroupingId) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewGroupingId(children...)
}

// InputSlots returns the columns referenced by the arguments of a function.
func InputSlots(e sql.Expression) []expression.Slot {
	var slots []expression.Slot
	for _, child := range e.Children() {
		if slot, ok := child.(expression.Slot); ok {
			slots = append(slots, slot)
			continue
		}
		slots = append(slots, InputSlots(child)...)
	}
	return slots
}

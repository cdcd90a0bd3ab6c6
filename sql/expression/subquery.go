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

// Subquery is as an expression whose value is derived by executing a
// subquery. It must be executed for every row in the outer result set.
type Subquery struct {
	// The subquery to execute for each row in the outer result set
	Query sql.Node
	// Correlated are the columns of the outer query the subquery references.
	Correlated []*GetField
}

var _ sql.Expression = (*Subquery)(nil)

// NewSubquery returns a new subquery expression.
func NewSubquery(node sql.Node) *Subquery {
	return &Subquery{Query: node}
}

// Resolved implements the Expression interface.
func (s *Subquery) Resolved() bool {
	return s.Query.Resolved()
}

// Type implements the Expression interface. A scalar subquery has the type
// of its single output column.
func (s *Subquery) Type() sql.Type {
	schema := s.Query.Schema()
	if len(schema) == 0 {
		return sql.Null
	}
	return schema[0].Type
}

// IsNullable implements the Expression interface. A scalar subquery
// returning no rows evaluates to NULL.
func (s *Subquery) IsNullable() bool {
	return true
}

// Children implements the Expression interface.
func (s *Subquery) Children() []sql.Expression {
	return nil
}

// WithChildren implements the Expression interface.
func (s *Subquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 0)
	}
	return s, nil
}

// WithQuery returns the subquery with the query node changed.
func (s *Subquery) WithQuery(node sql.Node) *Subquery {
	ns := *s
	ns.Query = node
	return &ns
}

// WithCorrelated returns the subquery with the correlated columns changed.
func (s *Subquery) WithCorrelated(correlated []*GetField) *Subquery {
	ns := *s
	ns.Correlated = correlated
	return &ns
}

func (s *Subquery) String() string {
	return fmt.Sprintf("(%s)", s.Query)
}

func (s *Subquery) DebugString() string {
	return fmt.Sprintf("(%s)", sql.DebugString(s.Query))
}

// Exists checks whether a subquery returns at least one row.
type Exists struct {
	Query *Subquery
}

var _ sql.Expression = (*Exists)(nil)

// NewExists returns a new Exists expression.
func NewExists(query *Subquery) *Exists {
	return &Exists{Query: query}
}

// Resolved implements the Expression interface.
func (e *Exists) Resolved() bool {
	return e.Query.Resolved()
}

// Type implements the Expression interface.
func (*Exists) Type() sql.Type {
	return sql.Boolean
}

// IsNullable implements the Expression interface.
func (*Exists) IsNullable() bool {
	return false
}

// Children implements the Expression interface.
func (e *Exists) Children() []sql.Expression {
	return nil
}

// WithChildren implements the Expression interface.
func (e *Exists) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 0)
	}
	return e, nil
}

// WithQuery returns the expression over the subquery given.
func (e *Exists) WithQuery(query *Subquery) *Exists {
	return &Exists{Query: query}
}

func (e *Exists) String() string {
	return fmt.Sprintf("EXISTS %s", e.Query)
}

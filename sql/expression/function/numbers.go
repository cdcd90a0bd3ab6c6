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
	"fmt"

	"github.com/spf13/cast"

	"github.com/dolthub/go-sql-binder/sql"
)

// Numbers is a table valued function producing the integers from zero up to
// the "number" property, in a column named number.
type Numbers struct {
	properties map[string]string
	count      int64
}

var _ sql.TableFunction = (*Numbers)(nil)

// NewNumbers creates a new Numbers table function.
func NewNumbers(properties map[string]string) (sql.TableFunction, error) {
	raw, ok := properties["number"]
	if !ok {
		return nil, sql.ErrInvalidTableFunctionProperty.New("numbers", "number is required")
	}
	n, err := cast.ToInt64E(raw)
	if err != nil || n < 0 {
		return nil, sql.ErrInvalidTableFunctionProperty.New("numbers", fmt.Sprintf("number=%q", raw))
	}
	return &Numbers{properties: properties, count: n}, nil
}

// FunctionName implements sql.FunctionExpression
func (n *Numbers) FunctionName() string { return "numbers" }

// Properties implements the sql.TableFunction interface.
func (n *Numbers) Properties() map[string]string { return n.properties }

// Count returns the number of rows the function produces.
func (n *Numbers) Count() int64 { return n.count }

// ReturnSchema implements the sql.TableFunction interface.
func (n *Numbers) ReturnSchema() sql.Schema {
	return sql.Schema{{Name: "number", Type: sql.Int64, Nullable: false}}
}

// Resolved implements the sql.Expression interface.
func (n *Numbers) Resolved() bool { return true }

// Type implements the sql.Expression interface.
func (n *Numbers) Type() sql.Type { return sql.Int64 }

// IsNullable implements the sql.Expression interface.
func (n *Numbers) IsNullable() bool { return false }

// Children implements the sql.Expression interface.
func (n *Numbers) Children() []sql.Expression { return nil }

func (n *Numbers) String() string {
	return fmt.Sprintf("numbers(\"number\" = \"%d\")", n.count)
}

// WithChildren implements the Expression interface.
func (n *Numbers) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(n, len(children), 0)
	}
	return n, nil
}

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

package sql

import (
	"fmt"
	"strings"
)

// ColumnId uniquely identifies a column produced while binding a statement.
// Ids are handed out by the StatementContext and never reused within it.
type ColumnId uint64

// RelationId identifies a relation (table, table function, one row
// relation) within a statement.
type RelationId uint64

// Column is the definition of a column produced by a plan node.
type Column struct {
	// Id is the identity of the column. Anything that merely re-exposes the
	// column keeps the id.
	Id ColumnId
	// Name is the name of the column.
	Name string
	// Qualifier is the path the column is exposed under, for example
	// {"catalog", "db", "table"} or {"alias"}.
	Qualifier []string
	// Type is the data type of the column.
	Type Type
	// Nullable is true if the column can contain NULL values.
	Nullable bool
}

// QualifiedName returns the dotted name of the column including its qualifier.
func (c *Column) QualifiedName() string {
	if len(c.Qualifier) == 0 {
		return c.Name
	}
	return strings.Join(c.Qualifier, ".") + "." + c.Name
}

// WithQualifier returns a copy of the column exposed under a new qualifier.
func (c *Column) WithQualifier(qualifier []string) *Column {
	nc := *c
	nc.Qualifier = qualifier
	return &nc
}

// WithNullable returns a copy of the column with the given nullability.
func (c *Column) WithNullable(nullable bool) *Column {
	nc := *c
	nc.Nullable = nullable
	return &nc
}

// Equals checks whether two columns are equal.
func (c *Column) Equals(c2 *Column) bool {
	if c.Id != c2.Id || c.Name != c2.Name || c.Nullable != c2.Nullable || len(c.Qualifier) != len(c2.Qualifier) {
		return false
	}
	for i := range c.Qualifier {
		if c.Qualifier[i] != c2.Qualifier[i] {
			return false
		}
	}
	if c.Type == nil || c2.Type == nil {
		return c.Type == c2.Type
	}
	return c.Type.Equals(c2.Type)
}

func (c *Column) String() string {
	return fmt.Sprintf("%s#%d", c.QualifiedName(), c.Id)
}

// Schema is the definition of a table or plan node output.
type Schema []*Column

// IndexOfId returns the index of the column with the given id, or -1.
func (s Schema) IndexOfId(id ColumnId) int {
	for i, c := range s {
		if c.Id == id {
			return i
		}
	}
	return -1
}

// Contains returns whether the schema contains a column with the given id.
func (s Schema) Contains(id ColumnId) bool {
	return s.IndexOfId(id) >= 0
}

// Names returns the names of the columns in the schema.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Equals checks whether the given schema is equal to this one.
func (s Schema) Equals(s2 Schema) bool {
	if len(s) != len(s2) {
		return false
	}
	for i := range s {
		if !s[i].Equals(s2[i]) {
			return false
		}
	}
	return true
}

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
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
)

// Slot is a bound reference to a column produced by some plan node.
type Slot interface {
	sql.Expression
	sql.Nameable
	// Id returns the identity of the column.
	Id() sql.ColumnId
	// Qualifier returns the path the column is exposed under.
	Qualifier() []string
	// Column returns the definition of the column.
	Column() *sql.Column
}

// GetField is an expression to get the field of a relation.
type GetField struct {
	col sql.Column
}

var _ Slot = (*GetField)(nil)

// NewGetField creates a GetField expression.
func NewGetField(id sql.ColumnId, fieldType sql.Type, fieldName string, nullable bool) *GetField {
	return NewGetFieldWithQualifier(id, fieldType, fieldName, nullable, nil)
}

// NewGetFieldWithQualifier creates a GetField expression exposed under the
// given qualifier, such as {"db", "table"}. The last part of the qualifier
// may be an alias.
func NewGetFieldWithQualifier(id sql.ColumnId, fieldType sql.Type, fieldName string, nullable bool, qualifier []string) *GetField {
	return &GetField{col: sql.Column{
		Id:        id,
		Name:      fieldName,
		Qualifier: qualifier,
		Type:      fieldType,
		Nullable:  nullable,
	}}
}

// NewGetFieldFromColumn creates a GetField referencing the given column.
func NewGetFieldFromColumn(col *sql.Column) *GetField {
	return &GetField{col: *col}
}

// Id implements the Slot interface.
func (p *GetField) Id() sql.ColumnId { return p.col.Id }

// Qualifier implements the Slot interface.
func (p *GetField) Qualifier() []string { return p.col.Qualifier }

// Column implements the Slot interface.
func (p *GetField) Column() *sql.Column {
	c := p.col
	return &c
}

// Children implements the Expression interface.
func (*GetField) Children() []sql.Expression {
	return nil
}

// Table returns the name of the relation the field belongs to.
func (p *GetField) Table() string {
	if len(p.col.Qualifier) == 0 {
		return ""
	}
	return p.col.Qualifier[len(p.col.Qualifier)-1]
}

// Resolved implements the Expression interface.
func (p *GetField) Resolved() bool {
	return true
}

// Name implements the Nameable interface.
func (p *GetField) Name() string { return p.col.Name }

// IsNullable returns whether the field is nullable or not.
func (p *GetField) IsNullable() bool {
	return p.col.Nullable
}

// Type returns the type of the field.
func (p *GetField) Type() sql.Type {
	return p.col.Type
}

// WithChildren implements the Expression interface.
func (p *GetField) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 0)
	}
	return p, nil
}

// WithQualifier returns a copy of the field exposed under a new qualifier.
func (p *GetField) WithQualifier(qualifier []string) *GetField {
	p2 := *p
	p2.col.Qualifier = qualifier
	return &p2
}

// WithNullable returns a copy of the field with the given nullability.
func (p *GetField) WithNullable(nullable bool) *GetField {
	p2 := *p
	p2.col.Nullable = nullable
	return &p2
}

// WithName returns a copy of the field with the given name.
func (p *GetField) WithName(name string) *GetField {
	p2 := *p
	p2.col.Name = name
	return &p2
}

func (p *GetField) String() string {
	if len(p.col.Qualifier) == 0 {
		return p.col.Name
	}
	return fmt.Sprintf("%s.%s", p.Table(), p.col.Name)
}

func (p *GetField) DebugString() string {
	return fmt.Sprintf("%s#%d", p.col.QualifiedName(), p.col.Id)
}

// SqlWithBackquote returns the fully qualified name of the field with every
// part quoted, as it would be written back into a view definition.
func (p *GetField) SqlWithBackquote() string {
	parts := make([]string, 0, len(p.col.Qualifier)+1)
	for _, q := range p.col.Qualifier {
		parts = append(parts, "`"+strings.ReplaceAll(q, "`", "``")+"`")
	}
	parts = append(parts, "`"+strings.ReplaceAll(p.col.Name, "`", "``")+"`")
	return strings.Join(parts, ".")
}

// MappingSlot is an output column of an aggregate that remembers the
// expression defining it. Grouping keys that refer to an output alias are
// replaced by that expression.
type MappingSlot struct {
	*GetField
	mapping sql.Expression
}

var _ Slot = (*MappingSlot)(nil)

// NewMappingSlot creates a new MappingSlot.
func NewMappingSlot(slot *GetField, mapping sql.Expression) *MappingSlot {
	return &MappingSlot{GetField: slot, mapping: mapping}
}

// Mapping returns the expression defining the slot.
func (m *MappingSlot) Mapping() sql.Expression { return m.mapping }

// WithChildren implements the Expression interface.
func (m *MappingSlot) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(m, len(children), 0)
	}
	return m, nil
}

func (m *MappingSlot) DebugString() string {
	return fmt.Sprintf("%s -> %s", m.GetField.DebugString(), sql.DebugString(m.mapping))
}

// ToSlot returns the slot an expression defines when used as an output:
// slots define themselves and aliases define a new column with their id.
// It returns false for any other expression.
func ToSlot(e sql.Expression) (*GetField, bool) {
	switch e := e.(type) {
	case *GetField:
		return e, true
	case *MappingSlot:
		return e.GetField, true
	case *Alias:
		if !e.Resolved() {
			return nil, false
		}
		return e.ToSlot(), true
	default:
		return nil, false
	}
}

// ToColumn returns the column an output expression defines. Unresolved
// expressions produce a column with no id or type.
func ToColumn(e sql.Expression) *sql.Column {
	if slot, ok := ToSlot(e); ok {
		return slot.Column()
	}
	var name string
	if n, ok := e.(sql.Nameable); ok {
		name = n.Name()
	} else {
		name = e.String()
	}
	col := &sql.Column{Name: name}
	if e.Resolved() {
		col.Type = e.Type()
		col.Nullable = e.IsNullable()
	}
	return col
}

// SchemaToFields returns a GetField over every column of the schema given.
func SchemaToFields(schema sql.Schema) []sql.Expression {
	fields := make([]sql.Expression, len(schema))
	for i, c := range schema {
		fields[i] = NewGetFieldFromColumn(c)
	}
	return fields
}

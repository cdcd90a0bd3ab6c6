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

	"gopkg.in/src-d/go-vitess.v0/vt/proto/query"
)

// Type represents a SQL type.
type Type interface {
	// Type returns the query.Type for the given Type.
	Type() query.Type
	// Equals returns whether the given type is the same as this one.
	Equals(Type) bool
	fmt.Stringer
}

var (
	// Null represents the type of the NULL literal.
	Null Type = nullT{}
	// Boolean is a boolean type.
	Boolean Type = booleanT{}
	// Int32 is an integer of 32 bits.
	Int32 Type = numberT{t: query.Type_INT32}
	// Int64 is an integer of 64 bits.
	Int64 Type = numberT{t: query.Type_INT64}
	// Float64 is a floating point number of 64 bits.
	Float64 Type = numberT{t: query.Type_FLOAT64}
	// Text is a string type.
	Text Type = textT{}
)

type nullT struct{}

func (nullT) Type() query.Type { return query.Type_NULL_TYPE }
func (nullT) String() string   { return "NULL" }
func (t nullT) Equals(o Type) bool {
	_, ok := o.(nullT)
	return ok
}

type booleanT struct{}

// Type implements the Type interface. Booleans travel as TINYINT on the wire.
func (booleanT) Type() query.Type { return query.Type_INT8 }
func (booleanT) String() string   { return "BOOLEAN" }
func (t booleanT) Equals(o Type) bool {
	_, ok := o.(booleanT)
	return ok
}

type numberT struct {
	t query.Type
}

func (t numberT) Type() query.Type { return t.t }

func (t numberT) String() string {
	switch t.t {
	case query.Type_INT32:
		return "INT"
	case query.Type_INT64:
		return "BIGINT"
	default:
		return "DOUBLE"
	}
}

func (t numberT) Equals(o Type) bool {
	n, ok := o.(numberT)
	return ok && n.t == t.t
}

type textT struct{}

func (textT) Type() query.Type { return query.Type_TEXT }
func (textT) String() string   { return "TEXT" }
func (t textT) Equals(o Type) bool {
	_, ok := o.(textT)
	return ok
}

// ArrayType is the type of an array of values of the same type.
type ArrayType struct {
	Elem Type
}

// CreateArray returns a new ArrayType of the given element type.
func CreateArray(elem Type) ArrayType {
	return ArrayType{Elem: elem}
}

func (t ArrayType) Type() query.Type { return query.Type_JSON }
func (t ArrayType) String() string   { return fmt.Sprintf("ARRAY<%s>", t.Elem) }
func (t ArrayType) Equals(o Type) bool {
	a, ok := o.(ArrayType)
	return ok && a.Elem.Equals(t.Elem)
}

// MapType is the type of a map from keys to values.
type MapType struct {
	Key   Type
	Value Type
}

// CreateMap returns a new MapType.
func CreateMap(key, value Type) MapType {
	return MapType{Key: key, Value: value}
}

func (t MapType) Type() query.Type { return query.Type_JSON }
func (t MapType) String() string   { return fmt.Sprintf("MAP<%s,%s>", t.Key, t.Value) }
func (t MapType) Equals(o Type) bool {
	m, ok := o.(MapType)
	return ok && m.Key.Equals(t.Key) && m.Value.Equals(t.Value)
}

// StructField is a named field of a StructType.
type StructField struct {
	Name     string
	Type     Type
	Nullable bool
}

// StructType is the type of a record with named fields.
type StructType struct {
	Fields []StructField
}

// CreateStruct returns a new StructType with the given fields.
func CreateStruct(fields ...StructField) StructType {
	return StructType{Fields: fields}
}

func (t StructType) Type() query.Type { return query.Type_TUPLE }

func (t StructType) String() string {
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = fmt.Sprintf("%s:%s", f.Name, f.Type)
	}
	return fmt.Sprintf("STRUCT<%s>", strings.Join(fields, ","))
}

func (t StructType) Equals(o Type) bool {
	s, ok := o.(StructType)
	if !ok || len(s.Fields) != len(t.Fields) {
		return false
	}
	for i := range t.Fields {
		if !strings.EqualFold(s.Fields[i].Name, t.Fields[i].Name) || !s.Fields[i].Type.Equals(t.Fields[i].Type) {
			return false
		}
	}
	return true
}

// Field returns the field with the given name, matched case-insensitively.
func (t StructType) Field(name string) (StructField, bool) {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return StructField{}, false
}

// IsNull returns true if the type is the NULL type.
func IsNull(t Type) bool {
	_, ok := t.(nullT)
	return ok
}

// IsBoolean returns true if the type is boolean.
func IsBoolean(t Type) bool {
	_, ok := t.(booleanT)
	return ok
}

// IsNumber returns true if the type is a number.
func IsNumber(t Type) bool {
	_, ok := t.(numberT)
	return ok
}

// IsInteger returns true if the type is an integer.
func IsInteger(t Type) bool {
	n, ok := t.(numberT)
	return ok && (n.t == query.Type_INT32 || n.t == query.Type_INT64)
}

// IsText returns true if the type is a string.
func IsText(t Type) bool {
	_, ok := t.(textT)
	return ok
}

// IsArray returns true if the type is an array.
func IsArray(t Type) bool {
	_, ok := t.(ArrayType)
	return ok
}

// IsMap returns true if the type is a map.
func IsMap(t Type) bool {
	_, ok := t.(MapType)
	return ok
}

// IsStruct returns true if the type is a struct.
func IsStruct(t Type) bool {
	_, ok := t.(StructType)
	return ok
}

func isComplex(t Type) bool {
	return IsArray(t) || IsMap(t) || IsStruct(t)
}

// CanCastToBoolean returns whether a value of the given type has an implicit
// conversion to boolean.
func CanCastToBoolean(t Type) bool {
	return !isComplex(t)
}

var numberRank = map[query.Type]int{
	query.Type_INT32:   1,
	query.Type_INT64:   2,
	query.Type_FLOAT64: 3,
}

// WiderType returns the narrowest type both given types can be widened to.
// Scalar types that are not both numbers widen to text. Complex types must
// be equal or one of the sides must be NULL.
func WiderType(a, b Type) (Type, bool) {
	switch {
	case a.Equals(b):
		return a, true
	case IsNull(a):
		return b, true
	case IsNull(b):
		return a, true
	case isComplex(a) || isComplex(b):
		return nil, false
	}

	if IsBoolean(a) && IsNumber(b) {
		return b, true
	}
	if IsBoolean(b) && IsNumber(a) {
		return a, true
	}

	na, okA := a.(numberT)
	nb, okB := b.(numberT)
	if okA && okB {
		if numberRank[na.t] >= numberRank[nb.t] {
			return a, true
		}
		return b, true
	}

	return Text, true
}

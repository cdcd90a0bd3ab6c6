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

package function

import (
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression/function/aggregation"
)

// Defaults is the function map with all the default scalar, window,
// generator and grouping functions.
var Defaults = map[string]Function{
	"abs":             Function1(NewAbsVal),
	"lower":           Function1(NewLower),
	"upper":           Function1(NewUpper),
	"concat":          FunctionN(NewConcat),
	"coalesce":        FunctionN(NewCoalesce),
	"struct_element":  FunctionN(NewStructElement),
	"explode":         FunctionN(NewExplode),
	"explode_map":     FunctionN(NewExplodeMap),
	"explode_numbers": Function1(NewExplodeNumbers),
	"grouping":        FunctionN(NewGrouping),
	"grouping_id":     FunctionN(NewGroupingId),
	"row_number":      Function0(NewRowNumber),
	"rank":            Function0(NewRank),
}

// Aggregates is the function map with all the default aggregate functions.
var Aggregates = map[string]Function{
	"count": FunctionN(func(args ...sql.Expression) (sql.Expression, error) {
		switch len(args) {
		case 0:
			return aggregation.NewCountStar(), nil
		case 1:
			return aggregation.NewCount(args[0]), nil
		default:
			return nil, sql.ErrInvalidArgumentNumber.New("count", "0 or 1", len(args))
		}
	}),
	"sum": Function1(func(e sql.Expression) sql.Expression {
		return aggregation.NewSum(e)
	}),
	"min": Function1(func(e sql.Expression) sql.Expression {
		return aggregation.NewMin(e)
	}),
	"max": Function1(func(e sql.Expression) sql.Expression {
		return aggregation.NewMax(e)
	}),
	"avg": Function1(func(e sql.Expression) sql.Expression {
		return aggregation.NewAvg(e)
	}),
	"any_value": Function1(func(e sql.Expression) sql.Expression {
		return aggregation.NewAnyValue(e)
	}),
}

// TableFunctionBuilder builds a table valued function from its properties.
type TableFunctionBuilder func(properties map[string]string) (sql.TableFunction, error)

// TableFunctions is the map with all the default table valued functions.
var TableFunctions = map[string]TableFunctionBuilder{
	"numbers": NewNumbers,
}

// Registry is the sql.FunctionRegistry of builtin and user defined functions.
type Registry struct {
	functions      map[string]Function
	aggregates     map[string]struct{}
	tableFunctions map[string]TableFunctionBuilder
}

var _ sql.FunctionRegistry = (*Registry)(nil)

// NewRegistry returns a registry with the default functions.
func NewRegistry() *Registry {
	r := &Registry{
		functions:      make(map[string]Function),
		aggregates:     make(map[string]struct{}),
		tableFunctions: make(map[string]TableFunctionBuilder),
	}
	for name, fn := range Defaults {
		r.Register("", name, fn)
	}
	for name, fn := range Aggregates {
		r.RegisterAggregate("", name, fn)
	}
	for name, b := range TableFunctions {
		r.RegisterTableFunction(name, b)
	}
	return r
}

func functionKey(db, name string) string {
	if db == "" {
		return strings.ToLower(name)
	}
	return strings.ToLower(db + "." + name)
}

// Register adds a scalar function. An empty database registers a builtin.
func (r *Registry) Register(db, name string, fn Function) {
	r.functions[functionKey(db, name)] = fn
}

// RegisterAggregate adds an aggregate function.
func (r *Registry) RegisterAggregate(db, name string, fn Function) {
	key := functionKey(db, name)
	r.functions[key] = fn
	r.aggregates[key] = struct{}{}
}

// RegisterTableFunction adds a table valued function.
func (r *Registry) RegisterTableFunction(name string, b TableFunctionBuilder) {
	r.tableFunctions[strings.ToLower(name)] = b
}

// IsAggregateFunction implements the sql.FunctionRegistry interface.
func (r *Registry) IsAggregateFunction(db, name string) bool {
	_, ok := r.aggregates[functionKey(db, name)]
	return ok
}

// Function implements the sql.FunctionRegistry interface.
func (r *Registry) Function(ctx *sql.Context, db, name string, args ...sql.Expression) (sql.Expression, error) {
	fn, ok := r.functions[functionKey(db, name)]
	if !ok {
		return nil, sql.ErrFunctionNotFound.New(functionKey(db, name))
	}
	return fn.NewInstance(strings.ToLower(name), args)
}

// TableFunction implements the sql.FunctionRegistry interface. Names that
// are not table valued but denote a function without arguments build that
// function, so callers can report what was found.
func (r *Registry) TableFunction(ctx *sql.Context, name string, properties map[string]string) (sql.Expression, error) {
	if b, ok := r.tableFunctions[strings.ToLower(name)]; ok {
		return b(properties)
	}
	fn, ok := r.functions[strings.ToLower(name)]
	if !ok {
		return nil, sql.ErrFunctionNotFound.New(name)
	}
	return fn.NewInstance(strings.ToLower(name), nil)
}

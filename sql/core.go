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
)

// Resolvable is something that can be resolved or not.
type Resolvable interface {
	// Resolved returns whether the node is resolved.
	Resolved() bool
}

// Expression is a combination of one or more SQL expressions.
type Expression interface {
	Resolvable
	fmt.Stringer
	// Type returns the expression type. Only valid on resolved expressions.
	Type() Type
	// IsNullable returns whether the expression can be null.
	IsNullable() bool
	// Children returns the children expressions of this expression.
	Children() []Expression
	// WithChildren returns a copy of the expression with children replaced.
	// It will return an error if the number of children is different than
	// the current number of children. They must be given in the same order
	// as they are returned by Children.
	WithChildren(children ...Expression) (Expression, error)
}

// Nameable is something that has a name.
type Nameable interface {
	// Name returns the name.
	Name() string
}

// Tableable is something that has a table.
type Tableable interface {
	// Table returns the table name.
	Table() string
}

// FunctionExpression is an expression that represents a function call.
type FunctionExpression interface {
	Expression
	// FunctionName returns the name of the function.
	FunctionName() string
}

// Aggregation is an aggregate function.
type Aggregation interface {
	FunctionExpression
	// IsAggregate is a marker method for aggregate functions.
	IsAggregate()
}

// NullableAggregation is an aggregate function whose result can be forced to
// be nullable. Aggregates over an empty input produce NULL, so projections
// mixing aggregates and plain columns force them nullable.
type NullableAggregation interface {
	Aggregation
	// AlwaysNullable returns whether the aggregate was forced nullable.
	AlwaysNullable() bool
	// WithAlwaysNullable returns a copy of the aggregate with the flag set.
	WithAlwaysNullable(bool) NullableAggregation
}

// WindowFunction is a function that can only be evaluated over a window.
type WindowFunction interface {
	FunctionExpression
	// IsWindowFunction is a marker method for window functions.
	IsWindowFunction()
}

// Generator is a table generating function: every input row produces zero
// or more output rows.
type Generator interface {
	FunctionExpression
	// IsGenerator is a marker method for table generating functions.
	IsGenerator()
}

// GroupingFunction is a function that reports on grouping sets, such as
// GROUPING and GROUPING_ID.
type GroupingFunction interface {
	FunctionExpression
	// IsGroupingFunction is a marker method for grouping functions.
	IsGroupingFunction()
}

// TableFunction is a function used as a relation in a FROM clause.
type TableFunction interface {
	FunctionExpression
	// Properties returns the properties the function was created with.
	Properties() map[string]string
	// ReturnSchema returns the columns the function produces. The columns
	// carry no ids; the binder assigns them.
	ReturnSchema() Schema
}

// Window is the OVER clause of a window function call.
type Window struct {
	PartitionBy []Expression
	OrderBy     []Expression
}

// NewWindow creates a new Window.
func NewWindow(partitionBy, orderBy []Expression) *Window {
	return &Window{PartitionBy: partitionBy, OrderBy: orderBy}
}

// ToExpressions returns the partition and order expressions of the window,
// in that order.
func (w *Window) ToExpressions() []Expression {
	if w == nil {
		return nil
	}
	exprs := make([]Expression, 0, len(w.PartitionBy)+len(w.OrderBy))
	exprs = append(exprs, w.PartitionBy...)
	return append(exprs, w.OrderBy...)
}

// FromExpressions returns a copy of the window with the expressions given
// replaced, in the order returned by ToExpressions.
func (w *Window) FromExpressions(exprs []Expression) (*Window, error) {
	if w == nil {
		return nil, nil
	}
	if len(exprs) != len(w.PartitionBy)+len(w.OrderBy) {
		return nil, ErrInvalidChildrenNumber.New(w, len(exprs), len(w.PartitionBy)+len(w.OrderBy))
	}
	nw := *w
	nw.PartitionBy = exprs[:len(w.PartitionBy)]
	nw.OrderBy = exprs[len(w.PartitionBy):]
	return &nw, nil
}

func (w *Window) String() string {
	if w == nil {
		return ""
	}
	var s string
	if len(w.PartitionBy) > 0 {
		s = "PARTITION BY " + exprsString(w.PartitionBy)
	}
	if len(w.OrderBy) > 0 {
		if s != "" {
			s += " "
		}
		s += "ORDER BY " + exprsString(w.OrderBy)
	}
	return "OVER (" + s + ")"
}

func exprsString(exprs []Expression) string {
	var s string
	for i, e := range exprs {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s
}

// Node is a node in the logical plan.
type Node interface {
	Resolvable
	fmt.Stringer
	// Schema of the node.
	Schema() Schema
	// Children nodes.
	Children() []Node
	// WithChildren returns a copy of the node with children replaced.
	// It will return an error if the number of children is different than
	// the current number of children. They must be given in the same order
	// as they are returned by Children.
	WithChildren(children ...Node) (Node, error)
}

// Expressioner is a node that contains expressions.
type Expressioner interface {
	Node
	// Expressions returns the list of expressions contained by the node.
	Expressions() []Expression
	// WithExpressions returns a copy of the node with expressions replaced.
	// It will return an error if the number of expressions is different
	// than the current number of expressions. They must be given in the
	// same order as they are returned by Expressions.
	WithExpressions(...Expression) (Node, error)
}

// BinaryNode is a node with two children.
type BinaryNode interface {
	Node
	Left() Node
	Right() Node
}

// DebugStringer is shared by implementors of Node and Expression, and is
// used for debugging the analyzer. It allows a node or expression to be
// printed in greater detail than its default String() representation.
type DebugStringer interface {
	// DebugString prints a debug string of the node in question.
	DebugString() string
}

// DebugString returns a debug string for the Node or Expression given.
func DebugString(nodeOrExpression interface{}) string {
	if ds, ok := nodeOrExpression.(DebugStringer); ok {
		return ds.DebugString()
	}
	if s, ok := nodeOrExpression.(fmt.Stringer); ok {
		return s.String()
	}
	panic(fmt.Sprintf("Expected sql.DebugString or fmt.Stringer for %T", nodeOrExpression))
}

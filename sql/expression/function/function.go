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
	"fmt"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
)

// Function is a function builder registered under a name.
type Function interface {
	// NewInstance returns the function called with the given arguments.
	NewInstance(name string, args []sql.Expression) (sql.Expression, error)
}

// Function0 is a function with no arguments.
type Function0 func() sql.Expression

// Function1 is a function with one argument.
type Function1 func(e sql.Expression) sql.Expression

// Function2 is a function with two arguments.
type Function2 func(e1, e2 sql.Expression) sql.Expression

// FunctionN is a function with a variable number of arguments. It may
// reject the arguments it is given.
type FunctionN func(args ...sql.Expression) (sql.Expression, error)

// NewInstance implements the Function interface.
func (fn Function0) NewInstance(name string, args []sql.Expression) (sql.Expression, error) {
	if len(args) != 0 {
		return nil, sql.ErrInvalidArgumentNumber.New(name, 0, len(args))
	}
	return fn(), nil
}

// NewInstance implements the Function interface.
func (fn Function1) NewInstance(name string, args []sql.Expression) (sql.Expression, error) {
	if len(args) != 1 {
		return nil, sql.ErrInvalidArgumentNumber.New(name, 1, len(args))
	}
	return fn(args[0]), nil
}

// NewInstance implements the Function interface.
func (fn Function2) NewInstance(name string, args []sql.Expression) (sql.Expression, error) {
	if len(args) != 2 {
		return nil, sql.ErrInvalidArgumentNumber.New(name, 2, len(args))
	}
	return fn(args[0], args[1]), nil
}

// NewInstance implements the Function interface.
func (fn FunctionN) NewInstance(name string, args []sql.Expression) (sql.Expression, error) {
	return fn(args...)
}

// UnaryFunc is the base of functions with a single argument.
type UnaryFunc struct {
	expression.UnaryExpression
	// Name is the name of the function
	Name string
	// The type returned by the function
	RetType sql.Type
}

// NewUnaryFunc returns a function which is called with a unary argument.
func NewUnaryFunc(arg sql.Expression, name string, returnType sql.Type) *UnaryFunc {
	return &UnaryFunc{
		UnaryExpression: expression.UnaryExpression{Child: arg},
		Name:            name,
		RetType:         returnType,
	}
}

// FunctionName implements sql.FunctionExpression
func (uf *UnaryFunc) FunctionName() string {
	return uf.Name
}

// String implements the fmt.Stringer interface.
func (uf *UnaryFunc) String() string {
	return fmt.Sprintf("%s(%s)", strings.ToUpper(uf.Name), uf.Child.String())
}

// Type implements the Expression interface.
func (uf *UnaryFunc) Type() sql.Type {
	return uf.RetType
}

// NaryFunc is the base of functions with any number of arguments.
type NaryFunc struct {
	Args []sql.Expression
	// Name is the name of the function
	Name string
}

// FunctionName implements sql.FunctionExpression
func (nf *NaryFunc) FunctionName() string {
	return nf.Name
}

// Children implements the Expression interface.
func (nf *NaryFunc) Children() []sql.Expression {
	return nf.Args
}

// Resolved implements the Expression interface.
func (nf *NaryFunc) Resolved() bool {
	return expression.ExpressionsResolved(nf.Args...)
}

// String implements the fmt.Stringer interface.
func (nf *NaryFunc) String() string {
	return fmt.Sprintf("%s(%s)", strings.ToUpper(nf.Name), expression.JoinStrings(nf.Args, ", "))
}

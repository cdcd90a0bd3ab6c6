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

// FunctionRegistry resolves function names to function expressions.
type FunctionRegistry interface {
	// IsAggregateFunction returns whether the function with the given name
	// is an aggregate function. The database is empty for builtins.
	IsAggregateFunction(db, name string) bool
	// Function builds the function with the given name over the bound
	// arguments given.
	Function(ctx *Context, db, name string, args ...Expression) (Expression, error)
	// TableFunction builds the function with the given name used as a
	// relation. The result need not be a TableFunction; callers check.
	TableFunction(ctx *Context, name string, properties map[string]string) (Expression, error)
}

// ConstantFolder evaluates constant subtrees of bound expressions.
type ConstantFolder interface {
	// Fold returns the expression with constant subtrees replaced by their
	// values. It returns the same expression if nothing could be folded.
	Fold(ctx *Context, e Expression) (Expression, error)
}

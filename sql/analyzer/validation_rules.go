// Copyright 2020-2024 Dolthub, Inc.
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

package analyzer

import (
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// DefaultValidationRules to apply once a plan is bound.
var DefaultValidationRules = []Rule{
	{validateResolvedId, nil, validateIsResolved},
	{validateBooleanPredicatesId, hasPredicates, validateBooleanPredicates},
}

// validateIsResolved fails on the deepest node of the plan that could not be
// bound.
func validateIsResolved(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	if !n.Resolved() {
		return nil, transform.SameTree, sql.ErrUnresolvedPlan.New(nodeKind(n))
	}
	return n, transform.SameTree, nil
}

func hasPredicates(n sql.Node) bool {
	return predicates(n) != nil
}

func predicates(n sql.Node) []sql.Expression {
	switch n := n.(type) {
	case *plan.Filter:
		return n.Conditions
	case *plan.PreFilter:
		return n.Conditions
	case *plan.Having:
		return n.Conditions
	case *plan.Qualify:
		return n.Conditions
	case *plan.JoinNode:
		return append(append([]sql.Expression{}, n.HashConditions...), n.OtherConditions...)
	default:
		return nil
	}
}

func validateBooleanPredicates(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	for _, e := range predicates(n) {
		if !sql.IsBoolean(e.Type()) {
			return nil, transform.SameTree, sql.ErrInvalidBooleanCast.New(e.Type(), e)
		}
	}
	return n, transform.SameTree, nil
}

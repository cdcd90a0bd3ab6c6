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

package analyzer

import (
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

func bindFilter(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	f := n.(*plan.Filter)
	conds, same, err := bindConjuncts(simpleAnalyzer(ctx, a, f, scope), f.Conditions)
	if err != nil || same {
		return f, transform.SameTree, err
	}
	return plan.NewFilter(conds, f.Child), transform.NewTree, nil
}

func bindPreFilter(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	f := n.(*plan.PreFilter)
	conds, same, err := bindConjuncts(simpleAnalyzer(ctx, a, f, scope), f.Conditions)
	if err != nil || same {
		return f, transform.SameTree, err
	}
	return plan.NewPreFilter(conds, f.Child), transform.NewTree, nil
}

// bindConjuncts binds a list of predicates and casts each of them to
// boolean. It reports whether the result is the list given.
func bindConjuncts(ea *exprAnalyzer, conds []sql.Expression) ([]sql.Expression, transform.TreeIdentity, error) {
	result := make([]sql.Expression, len(conds))
	for i, c := range conds {
		var err error
		result[i], err = ea.analyzeBoolean(c)
		if err != nil {
			return nil, transform.SameTree, err
		}
	}
	if sameExprs(conds, result) {
		return conds, transform.SameTree, nil
	}
	return result, transform.NewTree, nil
}

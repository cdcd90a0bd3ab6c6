// Copyright 2021 Dolthub, Inc.
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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/plan"
)

func validationBatch() *Batch {
	return &Batch{Desc: "validation", Iterations: 1, Rules: DefaultValidationRules}
}

func TestValidateIsResolved(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	a := &Analyzer{Batches: []*Batch{validationBatch()}}
	n := plan.NewProject(exprs(uc("z")), table(ctx, "t", "a"))

	_, err := a.Analyze(ctx, n)
	require.Error(err)
	require.True(sql.ErrUnresolvedPlan.Is(err), "unexpected error %v", err)
	require.Contains(err.Error(), "PROJECT")
}

func TestValidateBooleanPredicates(t *testing.T) {
	ctx := strictContext()
	t1 := table(ctx, "t", "a")
	t2 := table(ctx, "u", "b")
	a := expression.NewGetFieldFromColumn(t1.Schema()[0])
	b := expression.NewGetFieldFromColumn(t2.Schema()[0])

	testCases := []struct {
		name string
		node sql.Node
		ok   bool
	}{
		{"boolean filter", plan.NewFilter(exprs(gt(a, lit(1))), t1), true},
		{"number filter", plan.NewFilter(exprs(a), t1), false},
		{"number pre-filter", plan.NewPreFilter(exprs(gt(a, lit(1)), a), t1), false},
		{"number having", plan.NewHaving(exprs(a), t1), false},
		{"number join condition", plan.NewInnerJoin(t1, t2, b), false},
		{"boolean join condition", plan.NewInnerJoin(t1, t2, eq(a, b)), true},
		{"no predicates", plan.NewProject(exprs(a), t1), true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			_, _, err := validationBatch().Eval(ctx, newTestAnalyzer(), tt.node, nil)
			if tt.ok {
				require.NoError(err)
				return
			}
			require.Error(err)
			require.True(sql.ErrInvalidBooleanCast.Is(err), "unexpected error %v", err)
		})
	}
}

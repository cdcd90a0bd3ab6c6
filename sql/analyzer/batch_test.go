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

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// copyTable returns a rule that replaces every table with a new instance of
// itself.
func copyTable(id RuleId, applications *int) Rule {
	return Rule{
		Id:    id,
		Match: is[*plan.ResolvedTable],
		Apply: func(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
			*applications++
			t := n.(*plan.ResolvedTable)
			return plan.NewResolvedTable(t.Id(), t.Qualifier(), t.Name(), t.Schema()), transform.NewTree, nil
		},
	}
}

func TestBatchAppliesRuleOncePerNode(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	a := newTestAnalyzer()

	var applications int
	batch := &Batch{Desc: "test", Iterations: 10, Rules: []Rule{copyTable(customRuleId, &applications)}}

	n := table(ctx, "t", "a")
	result, same, err := batch.Eval(ctx, a, n, nil)
	require.NoError(err)
	require.Equal(transform.NewTree, same)
	require.NotSame(n, result)
	require.Equal(1, applications)
}

func TestBatchMaxIterations(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	a := newTestAnalyzer()

	var first, second int
	batch := &Batch{
		Desc:       "test",
		Iterations: 3,
		Rules:      []Rule{copyTable(RuleId(100), &first), copyTable(RuleId(101), &second)},
	}

	_, _, err := batch.Eval(ctx, a, table(ctx, "t", "a"), nil)
	require.Error(err)
	require.True(ErrMaxAnalysisIters.Is(err), "unexpected error %v", err)
	require.Equal(3, first)
	require.Equal(3, second)
}

func TestBatchIterations(t *testing.T) {
	ctx := strictContext()
	a := newTestAnalyzer()

	testCases := []struct {
		name         string
		iterations   int
		applications int
	}{
		{"disabled", 0, 0},
		{"single pass", 1, 2},
		{"fixpoint", 5, 2},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			var applications int
			batch := &Batch{
				Desc:       "test",
				Iterations: tt.iterations,
				Rules:      []Rule{copyTable(customRuleId, &applications)},
			}
			n := plan.NewCrossJoin(table(ctx, "t", "a"), table(ctx, "u", "b"))
			_, _, err := batch.Eval(ctx, a, n, nil)
			require.NoError(err)
			require.Equal(tt.applications, applications)
		})
	}
}

func TestBatchStopsAtFirstError(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	a := newTestAnalyzer()

	var after int
	failing := Rule{
		Id: customRuleId,
		Apply: func(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
			return nil, transform.SameTree, sql.ErrUnresolvedPlan.New("TEST")
		},
	}
	batch := &Batch{Desc: "test", Iterations: 5, Rules: []Rule{failing, copyTable(RuleId(100), &after)}}

	_, _, err := batch.Eval(ctx, a, table(ctx, "t", "a"), nil)
	require.Error(err)
	require.True(sql.ErrUnresolvedPlan.Is(err))
	require.Zero(after)
}

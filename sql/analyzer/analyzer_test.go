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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/expression/function"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

func TestAnalyzeResolvedPlan(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	n := table(ctx, "t", "a")
	result, err := newTestAnalyzer().Analyze(ctx, n)
	require.NoError(err)
	require.Same(n, result)
}

func TestDescribe(t *testing.T) {
	require := require.New(t)

	lines := strings.Split(strings.TrimSuffix(newTestAnalyzer().Describe(), "\n"), "\n")
	require.Len(lines, 4)
	require.True(strings.HasPrefix(lines[0], "bind (1000): bindProject bindLoadProject bindFilter"), lines[0])
	require.True(strings.HasSuffix(lines[0], " bindSubqueryAlias bindResultSink"), lines[0])
	require.Equal("post-analyzer (1000):", lines[1])
	require.Equal("validation (1): validateResolved validateBooleanPredicates", lines[2])
	require.Equal("post-validation (1):", lines[3])
}

func TestCustomRules(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	var analyzed, validated []sql.Node
	a := NewBuilder(function.NewRegistry()).
		AddPostAnalyzeRule(is[*plan.Project], func(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
			analyzed = append(analyzed, n)
			return n, transform.SameTree, nil
		}).
		AddPostValidationRule(nil, func(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
			validated = append(validated, n)
			return n, transform.SameTree, nil
		}).
		Build()
	require.Contains(a.Describe(), "post-analyzer (1000): customRule\n")

	result, err := a.Analyze(ctx, plan.NewProject(exprs(uc("a")), table(ctx, "t", "a")))
	require.NoError(err)

	require.Len(analyzed, 1)
	require.True(analyzed[0].Resolved())
	require.Len(validated, 2)
	require.Same(result, validated[1])
}

func TestCustomRuleError(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	a := NewBuilder(function.NewRegistry()).
		AddPostValidationRule(is[*plan.Project], func(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
			return nil, transform.SameTree, ErrInvalidNodeType.New("test", n)
		}).
		Build()

	_, err := a.Analyze(ctx, plan.NewProject(exprs(uc("a")), table(ctx, "t", "a")))
	require.Error(err)
	require.True(ErrInvalidNodeType.Is(err))
}

func TestWithFolder(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()

	a := NewBuilder(function.NewRegistry()).WithFolder(nil).Build()
	result, err := a.Analyze(ctx, plan.NewProject(exprs(alias("x", plus(lit(1), lit(2)))), table(ctx, "t", "a")))
	require.NoError(err)

	x := result.(*plan.Project).Projections[0].(*expression.Alias)
	_, folded := x.Child.(*expression.Literal)
	require.False(folded)
}

func TestDebugContext(t *testing.T) {
	require := require.New(t)

	a := newTestAnalyzer()
	a.Debug = true
	a.PushDebugContext("bind")

	forked := a.Fork()
	forked.PushDebugContext("subquery")
	require.Equal([]string{"bind"}, a.debugCtx)
	require.Equal([]string{"subquery"}, forked.debugCtx)

	a.PopDebugContext()
	a.PopDebugContext()
	require.Empty(a.debugCtx)
}

// Copyright 2023 Dolthub, Inc.
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
)

func TestBindResultSink(t *testing.T) {
	projections := func() []sql.Expression {
		return exprs(
			uf("abs", uc("a")),
			lit(1),
			plus(uc("a"), uc("b")),
			uc("a"),
			alias("x", plus(uc("b"), lit(1))),
		)
	}

	testCases := []struct {
		name     string
		isQuery  bool
		expected []string
	}{
		{
			name:     "query",
			isQuery:  true,
			expected: []string{"ABS(t.a)", "1", "(t.a + t.b)", "a", "x"},
		},
		{
			name:     "insert",
			isQuery:  false,
			expected: []string{"__abs_0", "__literal_1", "__expr_2", "a", "x"},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := strictContext()
			ctx.Statement.IsQuery = tt.isQuery
			p := plan.NewProject(projections(), table(ctx, "t", "a", "b"))

			result := analyze(t, ctx, plan.NewUnresolvedResultSink(p))

			sink := result.(*plan.ResultSink)
			require.Equal(tt.expected, sink.Schema().Names())
			require.Equal(schemaIds(sink.Child.Schema()), schemaIds(sink.Schema()))
		})
	}
}

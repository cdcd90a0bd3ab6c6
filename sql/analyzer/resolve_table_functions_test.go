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
	"gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression/function"
	"github.com/dolthub/go-sql-binder/sql/plan"
)

func TestBindTableFunction(t *testing.T) {
	require := require.New(t)
	ctx := strictContext()
	require.False(ctx.Statement.SqlCache.CannotProcessExpression())

	tvf := plan.NewUnresolvedTableFunction(0, "NUMBERS", map[string]string{"number": "10"})
	result := analyze(t, ctx, plan.NewProject(exprs(uc("numbers", "number")), tvf))

	rel := findNode[*plan.TableFunctionRelation](t, result)
	require.NotZero(rel.Id)
	require.Equal("numbers", rel.Name())
	require.Equal(int64(10), rel.Function.(*function.Numbers).Count())

	schema := rel.Schema()
	require.Len(schema, 1)
	require.Equal("number", schema[0].Name)
	require.Equal([]string{"numbers"}, schema[0].Qualifier)
	require.NotZero(schema[0].Id)
	require.Equal(schema[0].Id, slotOf(t, result.(*plan.Project).Projections[0]).Id())

	require.True(ctx.Statement.SqlCache.CannotProcessExpression())
	require.False(ctx.Statement.SqlCache.Cacheable())
}

func TestBindTableFunctionKeepsRelationId(t *testing.T) {
	ctx := strictContext()
	result := analyze(t, ctx, plan.NewUnresolvedTableFunction(7, "numbers", map[string]string{"number": "1"}))
	require.Equal(t, sql.RelationId(7), result.(*plan.TableFunctionRelation).Id)
}

func TestBindTableFunctionErrors(t *testing.T) {
	testCases := []struct {
		name  string
		fn    string
		props map[string]string
		err   *errors.Kind
	}{
		{"missing property", "numbers", nil, sql.ErrInvalidTableFunctionProperty},
		{"invalid property", "numbers", map[string]string{"number": "many"}, sql.ErrInvalidTableFunctionProperty},
		{"scalar function", "row_number", nil, sql.ErrNotTableValuedFunction},
		{"unknown function", "nope", nil, sql.ErrFunctionNotFound},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ctx := strictContext()
			_, err := newTestAnalyzer().Analyze(ctx, plan.NewUnresolvedTableFunction(0, tt.fn, tt.props))
			require.Error(t, err)
			require.True(t, tt.err.Is(err), "unexpected error %v", err)
			require.False(t, ctx.Statement.SqlCache.CannotProcessExpression())
		})
	}
}

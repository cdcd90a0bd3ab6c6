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

package function

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/expression/function/aggregation"
)

func TestRegistryFunction(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()
	r := NewRegistry()
	arg := expression.NewGetField(1, sql.Int64, "a", false)

	fn, err := r.Function(ctx, "", "ABS", arg)
	require.NoError(err)
	require.IsType(&AbsVal{}, fn)

	_, err = r.Function(ctx, "", "abs")
	require.True(sql.ErrInvalidArgumentNumber.Is(err), "unexpected error %v", err)

	_, err = r.Function(ctx, "", "nope", arg)
	require.True(sql.ErrFunctionNotFound.Is(err))

	count, err := r.Function(ctx, "", "count")
	require.NoError(err)
	require.IsType(&aggregation.Count{}, count)
	_, err = r.Function(ctx, "", "count", arg, arg)
	require.True(sql.ErrInvalidArgumentNumber.Is(err))
}

func TestRegistryDatabaseFunctions(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()
	r := NewRegistry()
	r.RegisterAggregate("mydb", "my_sum", Function1(func(e sql.Expression) sql.Expression {
		return aggregation.NewSum(e)
	}))

	require.True(r.IsAggregateFunction("MYDB", "My_Sum"))
	require.False(r.IsAggregateFunction("", "my_sum"))
	require.True(r.IsAggregateFunction("", "max"))
	require.False(r.IsAggregateFunction("", "abs"))

	_, err := r.Function(ctx, "", "my_sum", expression.NewLiteral(int64(1), sql.Int64))
	require.True(sql.ErrFunctionNotFound.Is(err))
	_, err = r.Function(ctx, "mydb", "my_sum", expression.NewLiteral(int64(1), sql.Int64))
	require.NoError(err)
}

func TestRegistryTableFunction(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()
	r := NewRegistry()

	fn, err := r.TableFunction(ctx, "Numbers", map[string]string{"number": "4"})
	require.NoError(err)
	numbers, ok := fn.(*Numbers)
	require.True(ok)
	require.Equal(int64(4), numbers.Count())
	require.Equal("number", numbers.ReturnSchema()[0].Name)

	_, err = r.TableFunction(ctx, "numbers", map[string]string{"number": "-1"})
	require.True(sql.ErrInvalidTableFunctionProperty.Is(err))

	fn, err = r.TableFunction(ctx, "row_number", nil)
	require.NoError(err)
	_, ok = fn.(sql.TableFunction)
	require.False(ok)

	_, err = r.TableFunction(ctx, "nope", nil)
	require.True(sql.ErrFunctionNotFound.Is(err))
}

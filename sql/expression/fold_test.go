// Copyright 2022 Dolthub, Inc.
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

package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-sql-binder/sql"
)

func TestLiteralFolder(t *testing.T) {
	i64 := func(n int64) *Literal { return NewLiteral(n, sql.Int64) }
	str := func(s string) *Literal { return NewLiteral(s, sql.Text) }
	boolean := func(v interface{}) *Literal { return NewLiteral(v, sql.Boolean) }
	null := NewLiteral(nil, sql.Null)
	field := NewGetField(1, sql.Int64, "a", false)

	testCases := []struct {
		name     string
		expr     sql.Expression
		expected sql.Expression
	}{
		{"plus", NewPlus(i64(1), i64(2)), i64(3)},
		{"nested", NewMult(NewPlus(i64(1), i64(2)), i64(3)), i64(9)},
		{"division", NewDiv(i64(7), i64(2)), NewLiteral(3.5, sql.Float64)},
		{"division by zero", NewDiv(i64(7), i64(0)), NewLiteral(nil, sql.Float64)},
		{"modulo by zero", NewMod(i64(7), i64(0)), NewLiteral(nil, sql.Int64)},
		{"null operand", NewPlus(i64(1), null), NewLiteral(nil, sql.Int64)},
		{"equals", NewEquals(i64(1), i64(1)), boolean(true)},
		{"greater than", NewGreaterThan(i64(1), i64(2)), boolean(false)},
		{"text comparison", NewLessThan(str("a"), str("b")), boolean(true)},
		{"null comparison", NewEquals(i64(1), null), boolean(nil)},
		{"null safe equals", NewNullSafeEquals(null, null), boolean(true)},
		{"and with null", NewAnd(boolean(true), null), boolean(nil)},
		{"and decided", NewAnd(boolean(false), null), boolean(false)},
		{"or decided", NewOr(null, boolean(true)), boolean(true)},
		{"not", NewNot(boolean(true)), boolean(false)},
		{"is null", NewIsNull(null), boolean(true)},
		{"cast", NewCast(str("12"), sql.Int64), i64(12)},
		{"partially constant", NewPlus(field, NewPlus(i64(1), i64(1))), NewPlus(field, i64(2))},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			folded, err := LiteralFolder{}.Fold(sql.NewEmptyContext(), tt.expr)
			require.NoError(err)
			require.Equal(tt.expected, folded)
		})
	}
}

func TestLiteralFolderKeepsUnfoldable(t *testing.T) {
	require := require.New(t)
	field := NewGetField(1, sql.Int64, "a", false)

	for _, e := range []sql.Expression{
		NewPlus(field, NewLiteral(int64(1), sql.Int64)),
		NewCast(NewLiteral("many", sql.Text), sql.Int64),
		NewLessThan(NewLiteral("a", sql.Text), NewLiteral(int64(1), sql.Int64)),
	} {
		folded, err := LiteralFolder{}.Fold(sql.NewEmptyContext(), e)
		require.NoError(err)
		require.Same(e, folded)
	}
}

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

package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWiderType(t *testing.T) {
	testCases := []struct {
		a, b     Type
		expected Type
		ok       bool
	}{
		{Int32, Int32, Int32, true},
		{Int32, Int64, Int64, true},
		{Float64, Int64, Float64, true},
		{Null, Text, Text, true},
		{CreateArray(Int64), Null, CreateArray(Int64), true},
		{Boolean, Int32, Int32, true},
		{Int64, Text, Text, true},
		{CreateArray(Int64), CreateArray(Text), nil, false},
		{CreateMap(Text, Int64), Int64, nil, false},
	}

	for _, tt := range testCases {
		t.Run(tt.a.String()+"_"+tt.b.String(), func(t *testing.T) {
			require := require.New(t)
			typ, ok := WiderType(tt.a, tt.b)
			require.Equal(tt.ok, ok)
			if tt.ok {
				require.True(tt.expected.Equals(typ), "expected %s, got %s", tt.expected, typ)
			}
		})
	}
}

func TestCanCastToBoolean(t *testing.T) {
	require := require.New(t)
	require.True(CanCastToBoolean(Int64))
	require.True(CanCastToBoolean(Text))
	require.True(CanCastToBoolean(Null))
	require.False(CanCastToBoolean(CreateArray(Int64)))
	require.False(CanCastToBoolean(CreateStruct(StructField{Name: "a", Type: Int64})))
}

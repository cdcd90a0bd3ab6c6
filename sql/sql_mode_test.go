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

package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSqlMode(t *testing.T) {
	sqlMode := NewSqlModeFromString(DefaultSqlMode)
	assert.True(t, sqlMode.OnlyFullGroupBy())
	assert.True(t, sqlMode.ModeEnabled("only_full_group_by"))
	assert.Equal(t, "ONLY_FULL_GROUP_BY", sqlMode.String())

	// Mixed case and blanks around the modes
	sqlMode = NewSqlModeFromString(" strict_trans_tables, Only_Full_Group_By ,")
	assert.True(t, sqlMode.OnlyFullGroupBy())
	assert.True(t, sqlMode.ModeEnabled("STRICT_TRANS_TABLES"))
	assert.False(t, sqlMode.ModeEnabled("fake_mode"))
	assert.Equal(t, "ONLY_FULL_GROUP_BY,STRICT_TRANS_TABLES", sqlMode.String())

	sqlMode = NewSqlModeFromString("")
	assert.False(t, sqlMode.OnlyFullGroupBy())
	assert.Equal(t, "", sqlMode.String())
}

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

package sql

import (
	"sort"
	"strings"
)

// DefaultSqlMode is the SQL mode of sessions that do not set one.
const DefaultSqlMode = "ONLY_FULL_GROUP_BY"

// SqlMode encodes the SQL mode string and provides methods for querying the enabled modes.
type SqlMode struct {
	modes map[string]struct{}
}

// NewSqlModeFromString returns a new SqlMode instance, constructed from the specified |sqlModeString| that
// has a comma delimited list of SQL modes (e.g. "ONLY_FULL_GROUP_BY,ANSI_QUOTES").
func NewSqlModeFromString(sqlModeString string) *SqlMode {
	sqlModeString = strings.ToLower(sqlModeString)
	elements := strings.Split(sqlModeString, ",")
	modes := map[string]struct{}{}
	for _, element := range elements {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}
		modes[element] = struct{}{}
	}

	return &SqlMode{modes: modes}
}

// OnlyFullGroupBy returns true if the ONLY_FULL_GROUP_BY SQL mode is enabled. When it is disabled, projections may
// reference columns that are neither grouped nor aggregated, and the binder wraps them in ANY_VALUE.
func (s *SqlMode) OnlyFullGroupBy() bool {
	return s.ModeEnabled("only_full_group_by")
}

// ModeEnabled returns true if |mode| was explicitly specified in the SQL_MODE string that was used to
// create this SqlMode instance. Compound modes are not expanded into the individual modes they contain.
func (s *SqlMode) ModeEnabled(mode string) bool {
	_, ok := s.modes[strings.ToLower(mode)]
	return ok
}

// String returns the enabled modes as a sorted, comma delimited, upper case list.
func (s *SqlMode) String() string {
	modes := make([]string, 0, len(s.modes))
	for m := range s.modes {
		modes = append(modes, strings.ToUpper(m))
	}
	sort.Strings(modes)
	return strings.Join(modes, ",")
}

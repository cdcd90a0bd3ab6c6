// Copyright 2024 Dolthub, Inc.
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
	"github.com/google/uuid"
)

// SqlSpan is a half-open range of byte offsets in the statement text.
type SqlSpan struct {
	Start int
	End   int
}

// StatementContext holds the state shared by every rule binding a single
// statement: id generators, memoized derived scopes and cache bookkeeping.
// A StatementContext must not be shared between goroutines.
type StatementContext struct {
	// Id uniquely identifies the statement.
	Id uuid.UUID
	// Query is the text of the statement, if known.
	Query string
	// IsQuery is true for SELECT statements. Other statements (INSERT ...
	// SELECT, CREATE TABLE ... AS SELECT) get inferred names for their
	// anonymous output columns.
	IsQuery bool
	// SqlCache collects whether the statement can be served from the plan cache.
	SqlCache *SqlCacheContext

	columnId   ColumnId
	relationId RelationId
	memo       map[interface{}]interface{}
	starText   map[SqlSpan]string
}

// NewStatementContext returns the context of a new query statement.
func NewStatementContext(query string) *StatementContext {
	return &StatementContext{
		Id:       uuid.New(),
		Query:    query,
		IsQuery:  true,
		SqlCache: NewSqlCacheContext(query, true, nil),
		memo:     make(map[interface{}]interface{}),
		starText: make(map[SqlSpan]string),
	}
}

// NextColumnId returns a new column id, unique within the statement.
func (s *StatementContext) NextColumnId() ColumnId {
	s.columnId++
	return s.columnId
}

// NextRelationId returns a new relation id, unique within the statement.
func (s *StatementContext) NextRelationId() RelationId {
	s.relationId++
	return s.relationId
}

// Memo returns the value memoized under key, calling build to compute it the
// first time. Keys must be comparable.
func (s *StatementContext) Memo(key interface{}, build func() interface{}) interface{} {
	if v, ok := s.memo[key]; ok {
		return v
	}
	v := build()
	s.memo[key] = v
	return v
}

// AddIndexInSqlToString records the text a star at the given span of the
// statement expands to.
func (s *StatementContext) AddIndexInSqlToString(span SqlSpan, text string) {
	s.starText[span] = text
}

// IndexInSqlToString returns the recorded star expansions, keyed by their
// span in the statement text.
func (s *StatementContext) IndexInSqlToString() map[SqlSpan]string {
	return s.starText
}

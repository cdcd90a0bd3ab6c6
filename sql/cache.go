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
	"sync"

	"github.com/mitchellh/hashstructure"
)

// SqlCacheContext tracks whether the bound plan of a statement may be reused
// for later executions of the same statement text.
type SqlCacheContext struct {
	fingerprint             uint64
	hashErr                 error
	cannotProcessExpression bool
}

type statementKey struct {
	Query    string
	IsQuery  bool
	Database string
	SqlMode  string
}

// NewSqlCacheContext returns the cache context of the statement text given.
// The session, if any, is part of the fingerprint since the bound plan
// depends on its current database and SQL mode. Whether the statement is a
// query is too, as it changes how the result sink names its columns.
func NewSqlCacheContext(query string, isQuery bool, session *Session) *SqlCacheContext {
	key := statementKey{Query: query, IsQuery: isQuery}
	if session != nil {
		key.Database = session.CurrentDatabase()
		key.SqlMode = session.SqlMode().String()
	}
	fp, err := hashstructure.Hash(key, nil)
	return &SqlCacheContext{fingerprint: fp, hashErr: err}
}

// Fingerprint returns the hash of the statement text.
func (c *SqlCacheContext) Fingerprint() uint64 {
	return c.fingerprint
}

// SetCannotProcessExpression marks the statement as depending on something
// other than its text, such as a table valued function.
func (c *SqlCacheContext) SetCannotProcessExpression(v bool) {
	c.cannotProcessExpression = v
}

// CannotProcessExpression returns whether the statement was marked as not cacheable.
func (c *SqlCacheContext) CannotProcessExpression() bool {
	return c.cannotProcessExpression
}

// Cacheable returns whether the bound plan of the statement can be cached.
func (c *SqlCacheContext) Cacheable() bool {
	return c.hashErr == nil && !c.cannotProcessExpression
}

// PlanCache holds bound plans keyed by statement fingerprint. It is safe for
// concurrent use.
type PlanCache struct {
	mu    sync.RWMutex
	plans map[uint64]Node
}

// NewPlanCache creates an empty plan cache.
func NewPlanCache() *PlanCache {
	return &PlanCache{plans: make(map[uint64]Node)}
}

// Get returns the plan cached for the statement, if any.
func (c *PlanCache) Get(cacheCtx *SqlCacheContext) (Node, bool) {
	if cacheCtx == nil || cacheCtx.hashErr != nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.plans[cacheCtx.fingerprint]
	return n, ok
}

// Put caches the plan of the statement if the statement is cacheable,
// reporting whether it did.
func (c *PlanCache) Put(cacheCtx *SqlCacheContext, n Node) bool {
	if cacheCtx == nil || !cacheCtx.Cacheable() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[cacheCtx.fingerprint] = n
	return true
}

// Len returns the number of cached plans.
func (c *PlanCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}

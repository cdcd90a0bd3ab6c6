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
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// RuleFunc is the function to be applied in a rule. It receives the node
// matched by the rule and the scope of the enclosing query, nil for the
// outermost one.
type RuleFunc func(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error)

// Rule to transform nodes.
type Rule struct {
	// Id to identify the rule.
	Id RuleId
	// Match returns whether the rule applies to a node. A nil Match
	// matches every node.
	Match func(sql.Node) bool
	// Apply transforms a node.
	Apply RuleFunc
}

func (r Rule) matches(n sql.Node) bool {
	return r.Match == nil || r.Match(n)
}

// Batch executes a set of rules a specific number of times.
// When this number of times is reached, the actual node
// and ErrMaxAnalysisIters is returned.
type Batch struct {
	Desc       string
	Iterations int
	Rules      []Rule
}

type appliedKey struct {
	node sql.Node
	rule RuleId
}

// appliedRules records the rules already applied to each node, so that a
// rule is applied at most once to the same node.
type appliedRules map[appliedKey]bool

func (ar appliedRules) isApplied(n sql.Node, r Rule) bool {
	return ar[appliedKey{n, r.Id}]
}

func (ar appliedRules) markApplied(n sql.Node, r Rule) {
	ar[appliedKey{n, r.Id}] = true
}

// Eval executes the rules of the batch over the tree until no rule changes
// it, or the specified number of times. If max number of iterations is
// reached, this method will return the actual processed Node and
// ErrMaxAnalysisIters error.
func (b *Batch) Eval(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	if b.Iterations == 0 {
		return n, transform.SameTree, nil
	}

	applied := make(appliedRules)
	cur, same, err := b.evalOnce(ctx, a, n, scope, applied)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if same || b.Iterations == 1 {
		return cur, same, nil
	}

	allSame := transform.NewTree
	for i := 1; ; {
		var s transform.TreeIdentity
		cur, s, err = b.evalOnce(ctx, a, cur, scope, applied)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if s {
			return cur, allSame, nil
		}

		i++
		if i >= b.Iterations {
			return cur, allSame, ErrMaxAnalysisIters.New(b.Iterations)
		}
	}
}

// evalOnce walks the tree bottom up, applying to every node the rules that
// match it and were not applied to it yet.
func (b *Batch) evalOnce(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope, applied appliedRules) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		result, same := n, transform.SameTree
		for _, rule := range b.Rules {
			if !rule.matches(result) || applied.isApplied(result, rule) {
				continue
			}

			next, s, err := a.applyRule(ctx, rule, result, scope)
			if err != nil {
				return nil, transform.SameTree, err
			}
			applied.markApplied(result, rule)
			applied.markApplied(next, rule)
			if !s {
				same = transform.NewTree
				result = next
			}
		}
		return result, same, nil
	})
}

func (a *Analyzer) applyRule(ctx *sql.Context, rule Rule, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	span, ctx := ctx.Span(rule.Id.String())
	defer span.Finish()

	a.PushDebugContext(rule.Id.String())
	defer a.PopDebugContext()

	result, same, err := rule.Apply(ctx, a, n, scope)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if !same {
		a.Log("applied rule to node of type %T", n)
		a.LogNode(result)
	}
	return result, same, nil
}

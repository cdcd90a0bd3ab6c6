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

package analyzer

import (
	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/plan"
)

// DefaultRules to apply when analyzing nodes.
var DefaultRules = []Rule{
	bindRule(bindProjectId, is[*plan.Project], bindProject),
	bindRule(bindLoadProjectId, is[*plan.LoadProject], bindLoadProject),
	bindRule(bindFilterId, is[*plan.Filter], bindFilter),
	bindRule(bindPreFilterId, is[*plan.PreFilter], bindPreFilter),
	bindRule(bindUsingJoinId, is[*plan.UsingJoin], bindUsingJoin),
	bindRule(bindJoinId, is[*plan.JoinNode], bindJoin),
	bindRule(bindAggregateId, is[*plan.GroupBy], bindAggregate),
	bindRule(bindRepeatId, is[*plan.Repeat], bindRepeat),
	bindRule(bindSortId, sortOverNonSetOperation, bindSort),
	bindRule(bindSortSetOperationId, sortOverSetOperation, bindSortWithSetOperation),
	bindRule(bindHavingAggregateId, havingOverAggregate, bindHavingAggregate),
	bindRule(bindHavingId, havingOverNonAggregate, bindHaving),
	bindRule(bindQualifyProjectId, qualifyOver[*plan.Project], bindQualifyProject),
	bindRule(bindQualifyAggregateId, qualifyOverAggregate, bindQualifyAggregate),
	bindRule(bindQualifyHavingId, qualifyOver[*plan.Having], bindQualifyHaving),
	bindRule(bindQualifyUnsupportedId, qualifyOverOther, unknownQueryStructure),
	bindRule(bindInlineTableId, is[*plan.InlineTable], bindInlineTable),
	bindRule(bindOneRowRelationId, is[*plan.UnresolvedOneRowRelation], bindOneRowRelation),
	bindRule(bindSetOperationId, is[*plan.SetOperation], bindSetOperation),
	bindRule(bindGenerateId, is[*plan.Generate], bindGenerate),
	bindRule(bindTableFunctionId, is[*plan.UnresolvedTableFunction], bindTableFunction),
	bindRule(bindSubqueryAliasId, is[*plan.SubqueryAlias], bindSubqueryAlias),
	bindRule(bindResultSinkId, is[*plan.UnresolvedResultSink], bindResultSink),
}

// bindRule returns a rule that applies to the nodes matched once all of
// their children are bound.
func bindRule(id RuleId, match func(sql.Node) bool, apply RuleFunc) Rule {
	return Rule{
		Id: id,
		Match: func(n sql.Node) bool {
			return match(n) && childrenResolved(n)
		},
		Apply: apply,
	}
}

func childrenResolved(n sql.Node) bool {
	for _, c := range n.Children() {
		if !c.Resolved() {
			return false
		}
	}
	return true
}

func is[T sql.Node](n sql.Node) bool {
	_, ok := n.(T)
	return ok
}

func unaryChild(n sql.Node) sql.Node {
	children := n.Children()
	if len(children) != 1 {
		return nil
	}
	return children[0]
}

func isAggregate(n sql.Node) bool {
	_, ok := n.(plan.Aggregate)
	return ok
}

func sortOverSetOperation(n sql.Node) bool {
	if _, ok := n.(*plan.Sort); !ok {
		return false
	}
	_, ok := unaryChild(n).(*plan.SetOperation)
	return ok
}

func sortOverNonSetOperation(n sql.Node) bool {
	_, ok := n.(*plan.Sort)
	return ok && !sortOverSetOperation(n)
}

func havingOverAggregate(n sql.Node) bool {
	_, ok := n.(*plan.Having)
	return ok && isAggregate(unaryChild(n))
}

func havingOverNonAggregate(n sql.Node) bool {
	_, ok := n.(*plan.Having)
	return ok && !isAggregate(unaryChild(n))
}

func qualifyOver[T sql.Node](n sql.Node) bool {
	if _, ok := n.(*plan.Qualify); !ok {
		return false
	}
	_, ok := unaryChild(n).(T)
	return ok
}

func qualifyOverAggregate(n sql.Node) bool {
	_, ok := n.(*plan.Qualify)
	return ok && isAggregate(unaryChild(n))
}

func qualifyOverOther(n sql.Node) bool {
	return is[*plan.Qualify](n) &&
		!qualifyOver[*plan.Project](n) &&
		!qualifyOver[*plan.Having](n) &&
		!qualifyOverAggregate(n)
}

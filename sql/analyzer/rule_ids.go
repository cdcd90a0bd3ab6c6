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

import "strconv"

// RuleId identifies a rule of the analyzer.
type RuleId int

const (
	// binding
	bindProjectId            RuleId = iota // bindProject
	bindLoadProjectId                      // bindLoadProject
	bindFilterId                           // bindFilter
	bindPreFilterId                        // bindPreFilter
	bindUsingJoinId                        // bindUsingJoin
	bindJoinId                             // bindJoin
	bindAggregateId                        // bindAggregate
	bindRepeatId                           // bindRepeat
	bindSortId                             // bindSort
	bindSortSetOperationId                 // bindSortSetOperation
	bindHavingAggregateId                  // bindHavingAggregate
	bindHavingId                           // bindHaving
	bindQualifyProjectId                   // bindQualifyProject
	bindQualifyAggregateId                 // bindQualifyAggregate
	bindQualifyHavingId                    // bindQualifyHaving
	bindQualifyUnsupportedId               // bindQualifyUnsupported
	bindInlineTableId                      // bindInlineTable
	bindOneRowRelationId                   // bindOneRowRelation
	bindSetOperationId                     // bindSetOperation
	bindGenerateId                         // bindGenerate
	bindTableFunctionId                    // bindTableFunction
	bindSubqueryAliasId                    // bindSubqueryAlias
	bindResultSinkId                       // bindResultSink

	// validation
	validateResolvedId          // validateResolved
	validateBooleanPredicatesId // validateBooleanPredicates

	// custom rules added through the Builder
	customRuleId // customRule
)

var ruleNames = [...]string{
	bindProjectId:               "bindProject",
	bindLoadProjectId:           "bindLoadProject",
	bindFilterId:                "bindFilter",
	bindPreFilterId:             "bindPreFilter",
	bindUsingJoinId:             "bindUsingJoin",
	bindJoinId:                  "bindJoin",
	bindAggregateId:             "bindAggregate",
	bindRepeatId:                "bindRepeat",
	bindSortId:                  "bindSort",
	bindSortSetOperationId:      "bindSortSetOperation",
	bindHavingAggregateId:       "bindHavingAggregate",
	bindHavingId:                "bindHaving",
	bindQualifyProjectId:        "bindQualifyProject",
	bindQualifyAggregateId:      "bindQualifyAggregate",
	bindQualifyHavingId:         "bindQualifyHaving",
	bindQualifyUnsupportedId:    "bindQualifyUnsupported",
	bindInlineTableId:           "bindInlineTable",
	bindOneRowRelationId:        "bindOneRowRelation",
	bindSetOperationId:          "bindSetOperation",
	bindGenerateId:              "bindGenerate",
	bindTableFunctionId:         "bindTableFunction",
	bindSubqueryAliasId:         "bindSubqueryAlias",
	bindResultSinkId:            "bindResultSink",
	validateResolvedId:          "validateResolved",
	validateBooleanPredicatesId: "validateBooleanPredicates",
	customRuleId:                "customRule",
}

func (i RuleId) String() string {
	if i < 0 || int(i) >= len(ruleNames) {
		return "RuleId(" + strconv.Itoa(int(i)) + ")"
	}
	return ruleNames[i]
}

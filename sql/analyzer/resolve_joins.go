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
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/plan"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

const defaultDbName = "default-catalogdefault-db"

func bindJoin(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	j := n.(*plan.JoinNode)
	if err := checkConflictAlias(j); err != nil {
		return nil, transform.SameTree, err
	}

	ea := simpleAnalyzer(ctx, a, j, scope)
	hash, sameHash, err := bindConjuncts(ea, j.HashConditions)
	if err != nil {
		return nil, transform.SameTree, err
	}
	other, sameOther, err := bindConjuncts(ea, j.OtherConditions)
	if err != nil {
		return nil, transform.SameTree, err
	}
	if sameHash && sameOther {
		return j, transform.SameTree, nil
	}

	nj := plan.NewJoin(j.Left(), j.Right(), j.Op, hash, other).
		WithExceptAsteriskOutputs(j.ExceptAsteriskOutputs)
	return nj, transform.NewTree, nil
}

// checkConflictAlias fails if two relations of a join, looked up until the
// first relation of every branch, are exposed under the same name.
func checkConflictAlias(j sql.Node) error {
	seen := make(map[string]bool)
	var err error
	check := func(name string) {
		if err != nil {
			return
		}
		if seen[name] {
			err = sql.ErrDuplicateAliasOrTable.New(name[strings.LastIndex(name, ".")+1:])
			return
		}
		seen[name] = true
	}

	transform.InspectPruned(j, func(n sql.Node) bool {
		switch n := n.(type) {
		case *plan.SubqueryAlias:
			check(relationDbName(n.Child) + "." + n.Name())
			return false
		case *plan.ResolvedTable:
			check(n.QualifiedName())
			return false
		default:
			return err == nil
		}
	})
	return err
}

// relationDbName returns the database a relation belongs to, or the name of
// the default database if it has none. The segments are joined without a
// separator, so the key of a subquery alias never equals the dotted name of
// a table.
func relationDbName(n sql.Node) string {
	switch n := n.(type) {
	case *plan.ResolvedTable:
		if len(n.Qualifier()) > 0 {
			return strings.Join(n.Qualifier(), "")
		}
	case *plan.SubqueryAlias:
		if len(n.Qualifier()) > 0 {
			return strings.Join(n.Qualifier(), "")
		}
	}
	return defaultDbName
}

// bindUsingJoin turns a USING join into an equi join over the columns named,
// keeping the right side columns out of the expansion of *.
func bindUsingJoin(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope) (sql.Node, transform.TreeIdentity, error) {
	j := n.(*plan.UsingJoin)
	leftScope := scopeFromSchemas(scope, j.Left().Schema(), plan.AsteriskSchema(j.Left()))
	rightScope := scopeFromSchemas(scope, j.Right().Schema(), plan.AsteriskSchema(j.Right()))

	conds := make([]sql.Expression, len(j.Using))
	rightIds := make([]sql.ColumnId, len(j.Using))
	for i, col := range j.Using {
		left, err := newExprAnalyzer(ctx, a, j, leftScope, true, false).analyze(col)
		if err != nil {
			return nil, transform.SameTree, err
		}
		right, err := newExprAnalyzer(ctx, a, j, rightScope, true, false).analyze(col)
		if err != nil {
			return nil, transform.SameTree, err
		}
		slot, ok := expression.ToSlot(right)
		if !ok {
			return nil, transform.SameTree, ErrInvalidNodeType.New("using join", right)
		}
		rightIds[i] = slot.Id()
		conds[i] = expression.NewEquals(left, right)
	}

	op := j.Op
	if op == plan.JoinTypeCross {
		op = plan.JoinTypeInner
	}
	nj := plan.NewJoin(j.Left(), j.Right(), op, conds, nil).WithExceptAsteriskOutputs(rightIds)
	return nj, transform.NewTree, nil
}

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
	"reflect"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
	"github.com/dolthub/go-sql-binder/sql/expression/function/aggregation"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// slotBinder returns the candidates an unresolved column may be bound to.
// Candidates are usually columns, but a binder may return the expression a
// column stands for.
type slotBinder func(ea *exprAnalyzer, col *expression.UnresolvedColumn) ([]sql.Expression, error)

// exprAnalyzer binds the expressions of a single plan node.
type exprAnalyzer struct {
	ctx  *sql.Context
	a    *Analyzer
	node sql.Node
	// scope is the default scope. Stars expand from it and its outer scope
	// is consulted for columns no binder could resolve.
	scope *Scope
	// exact prefers candidates whose qualifier is exactly the one written.
	exact bool
	// outer enables the lookup of columns in the enclosing queries.
	outer  bool
	binder slotBinder
	// inAggregate is true while binding the arguments of an aggregation.
	inAggregate bool
}

func newExprAnalyzer(ctx *sql.Context, a *Analyzer, n sql.Node, scope *Scope, exact, outer bool) *exprAnalyzer {
	return &exprAnalyzer{
		ctx:   ctx,
		a:     a,
		node:  n,
		scope: scope,
		exact: exact,
		outer: outer,
	}
}

// simpleAnalyzer returns the analyzer for expressions that see the combined
// output of the children of n.
func simpleAnalyzer(ctx *sql.Context, a *Analyzer, n sql.Node, outer *Scope) *exprAnalyzer {
	return newExprAnalyzer(ctx, a, n, childrenOutputScope(ctx, n, outer), true, true)
}

func (ea *exprAnalyzer) withBinder(b slotBinder) *exprAnalyzer {
	ea.binder = b
	return ea
}

// analyze binds the expression given. Expressions that are not a column
// once bound are constant folded.
func (ea *exprAnalyzer) analyze(e sql.Expression) (sql.Expression, error) {
	if e.Resolved() {
		return e, nil
	}
	bound, err := ea.bind(e)
	if err != nil {
		return nil, err
	}
	if _, ok := bound.(expression.Slot); ok {
		return bound, nil
	}
	if _, ok := bound.(*expression.BoundStar); ok || ea.a.Folder == nil {
		return bound, nil
	}
	return ea.a.Folder.Fold(ea.ctx, bound)
}

func (ea *exprAnalyzer) analyzeAll(exprs []sql.Expression) ([]sql.Expression, error) {
	result := make([]sql.Expression, len(exprs))
	for i, e := range exprs {
		var err error
		result[i], err = ea.analyze(e)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// analyzeBoolean binds a predicate and casts it to boolean.
func (ea *exprAnalyzer) analyzeBoolean(e sql.Expression) (sql.Expression, error) {
	bound, err := ea.analyze(e)
	if err != nil {
		return nil, err
	}
	return castToBoolean(bound)
}

func castToBoolean(e sql.Expression) (sql.Expression, error) {
	if sql.IsBoolean(e.Type()) {
		return e, nil
	}
	if !sql.CanCastToBoolean(e.Type()) {
		return nil, sql.ErrInvalidBooleanCast.New(e.Type(), e)
	}
	return expression.NewCast(e, sql.Boolean), nil
}

func (ea *exprAnalyzer) bind(e sql.Expression) (sql.Expression, error) {
	if e.Resolved() {
		return e, nil
	}

	switch e := e.(type) {
	case *expression.UnresolvedColumn:
		return ea.bindSlot(e)
	case *expression.Star:
		return ea.bindStar(e)
	case *expression.UnresolvedFunction:
		return ea.bindFunction(e)
	case *expression.Alias:
		child, err := ea.bind(e.Child)
		if err != nil {
			return nil, err
		}
		ne, err := e.WithChildren(child)
		if err != nil {
			return nil, err
		}
		alias := ne.(*expression.Alias)
		if alias.Id() == 0 {
			alias = alias.WithId(ea.ctx.Statement.NextColumnId())
		}
		return alias, nil
	case *expression.Subquery:
		return ea.bindSubquery(e)
	case *expression.Exists:
		sq, err := ea.bindSubquery(e.Query)
		if err != nil {
			return nil, err
		}
		return e.WithQuery(sq), nil
	case sql.Aggregation:
		return ea.bindInAggregate(func() (sql.Expression, error) {
			return ea.bindChildren(e)
		})
	default:
		return ea.bindChildren(e)
	}
}

func (ea *exprAnalyzer) bindChildren(e sql.Expression) (sql.Expression, error) {
	children := e.Children()
	if len(children) == 0 {
		return e, nil
	}
	newChildren := make([]sql.Expression, len(children))
	for i, c := range children {
		var err error
		newChildren[i], err = ea.bind(c)
		if err != nil {
			return nil, err
		}
	}
	return e.WithChildren(newChildren...)
}

func (ea *exprAnalyzer) bindInAggregate(f func() (sql.Expression, error)) (sql.Expression, error) {
	if ea.inAggregate {
		return f()
	}
	ea.inAggregate = true
	defer func() {
		ea.inAggregate = false
	}()
	return f()
}

// bindSlot binds a column reference. The binder of the analyzer, or the
// default scope when there is none, is tried first; then the enclosing
// queries, recording a hit as a correlated column.
func (ea *exprAnalyzer) bindSlot(col *expression.UnresolvedColumn) (sql.Expression, error) {
	var (
		candidates []sql.Expression
		err        error
	)
	if ea.binder != nil {
		candidates, err = ea.binder(ea, col)
	} else {
		candidates, err = ea.bindByThisScope(col, ea.scope)
	}
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 && ea.outer {
		for outer := ea.scope.Outer(); outer != nil && len(candidates) == 0; outer = outer.Outer() {
			slots, err := outer.resolve(col.NameParts())
			if err != nil {
				return nil, err
			}
			if len(slots) == 1 {
				outer.correlated.add(slots[0])
			}
			candidates = slotsToExprs(slots)
		}
	}

	candidates = dedupCandidates(candidates)
	switch len(candidates) {
	case 0:
		return nil, sql.ErrColumnNotFound.New(col.String(), nodeKind(ea.node))
	case 1:
		return candidates[0], nil
	}

	if ea.exact {
		var exact []sql.Expression
		for _, c := range candidates {
			if slot, ok := c.(expression.Slot); ok && len(slot.Qualifier())+1 == len(col.NameParts()) {
				exact = append(exact, c)
			}
		}
		if len(exact) == 1 {
			return exact[0], nil
		}
	}
	return nil, sql.ErrAmbiguousColumnName.New(col.String(), candidatesString(candidates))
}

func dedupCandidates(candidates []sql.Expression) []sql.Expression {
	if len(candidates) < 2 {
		return candidates
	}
	seen := make(map[sql.ColumnId]bool)
	result := candidates[:0:0]
	for _, c := range candidates {
		if slot, ok := c.(expression.Slot); ok {
			if seen[slot.Id()] {
				continue
			}
			seen[slot.Id()] = true
		}
		result = append(result, c)
	}
	return result
}

func candidatesString(candidates []sql.Expression) string {
	strs := make([]string, len(candidates))
	for i, c := range candidates {
		strs[i] = sql.DebugString(c)
	}
	return strings.Join(strs, ", ")
}

// bindByThisScope resolves a column in the given scope, honoring the exact
// mode of the analyzer.
func (ea *exprAnalyzer) bindByThisScope(col *expression.UnresolvedColumn, scope *Scope) ([]sql.Expression, error) {
	if ea.exact {
		return ea.bindExact(col, scope)
	}
	return ea.bindByScope(col, scope)
}

func (ea *exprAnalyzer) bindByScope(col *expression.UnresolvedColumn, scope *Scope) ([]sql.Expression, error) {
	slots, err := scope.resolve(col.NameParts())
	if err != nil {
		return nil, err
	}
	return slotsToExprs(slots), nil
}

func (ea *exprAnalyzer) bindExact(col *expression.UnresolvedColumn, scope *Scope) ([]sql.Expression, error) {
	slots, err := scope.resolveExact(col.NameParts())
	if err != nil {
		return nil, err
	}
	return slotsToExprs(slots), nil
}

// bindStar expands a star to the asterisk columns of the default scope whose
// qualifier ends with the qualifier of the star.
func (ea *exprAnalyzer) bindStar(star *expression.Star) (sql.Expression, error) {
	if len(star.Qualifier) >= maxNameParts {
		return nil, sql.ErrUnsupportedStarQualifier.New(strings.Join(star.Qualifier, "."))
	}

	var slots []*expression.GetField
	for _, slot := range ea.scope.AsteriskSlots() {
		if qualifierMatches(slot.Qualifier(), star.Qualifier) {
			slots = append(slots, slot)
		}
	}
	if len(star.Qualifier) > 0 && len(slots) == 0 {
		return nil, sql.ErrUnknownStarQualifier.New(strings.Join(star.Qualifier, "."))
	}
	return expression.NewBoundStar(slots), nil
}

func (ea *exprAnalyzer) bindFunction(uf *expression.UnresolvedFunction) (sql.Expression, error) {
	if isCountStar(uf) {
		return aggregation.NewCountStar(), nil
	}

	var window *sql.Window
	if uf.Window != nil {
		exprs := uf.Window.ToExpressions()
		bound := make([]sql.Expression, len(exprs))
		for i, e := range exprs {
			var err error
			bound[i], err = ea.bind(e)
			if err != nil {
				return nil, err
			}
		}
		var err error
		window, err = uf.Window.FromExpressions(bound)
		if err != nil {
			return nil, err
		}
	}

	bindArgs := func() (sql.Expression, error) {
		args := make([]sql.Expression, len(uf.Arguments))
		for i, arg := range uf.Arguments {
			var err error
			args[i], err = ea.bind(arg)
			if err != nil {
				return nil, err
			}
		}
		return ea.a.Registry.Function(ea.ctx, uf.Database(), uf.Name(), args...)
	}

	var (
		fn  sql.Expression
		err error
	)
	if ea.a.Registry.IsAggregateFunction(uf.Database(), uf.Name()) {
		fn, err = ea.bindInAggregate(bindArgs)
	} else {
		fn, err = bindArgs()
	}
	if err != nil {
		return nil, err
	}

	if window != nil {
		return expression.NewWindowExpression(fn, window), nil
	}
	return fn, nil
}

func isCountStar(uf *expression.UnresolvedFunction) bool {
	if !strings.EqualFold(uf.Name(), "count") || uf.Database() != "" || len(uf.Arguments) != 1 {
		return false
	}
	star, ok := uf.Arguments[0].(*expression.Star)
	return ok && len(star.Qualifier) == 0 && len(star.Except) == 0 && len(star.Replace) == 0
}

// bindSubquery analyzes the plan of a subquery with the default scope as its
// outer scope, and records the columns it references from it.
func (ea *exprAnalyzer) bindSubquery(sq *expression.Subquery) (*expression.Subquery, error) {
	outer := ea.scope.forSubquery()
	query, err := ea.a.analyzeWithScope(ea.ctx, sq.Query, outer)
	if err != nil {
		return nil, err
	}
	return sq.WithQuery(query).WithCorrelated(outer.CorrelatedSlots()), nil
}

// nodeKind returns the name of the kind of a plan node as printed in errors.
func nodeKind(n sql.Node) string {
	if n == nil {
		return "expression"
	}
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return strings.ToUpper(t.Name())
}

// containsAggregate returns whether the expression has an aggregation that
// is not part of a window expression.
func containsAggregate(e sql.Expression) bool {
	return len(collectAggregates(e)) > 0
}

// hasAggregateFunction is like containsAggregate but also looks at calls not
// bound yet, asking the registry whether they are aggregations.
func (a *Analyzer) hasAggregateFunction(e sql.Expression) bool {
	return transform.InspectExpr(e, func(e sql.Expression) bool {
		switch e := e.(type) {
		case sql.Aggregation:
			return true
		case *expression.UnresolvedFunction:
			return isCountStar(e) || a.Registry.IsAggregateFunction(e.Database(), e.Name())
		}
		return false
	})
}

// collectAggregates returns the aggregations of an expression that are not
// part of a window expression, outermost first.
func collectAggregates(e sql.Expression) []sql.Aggregation {
	var aggs []sql.Aggregation
	transform.InspectExprDown(e, func(e sql.Expression) bool {
		switch e := e.(type) {
		case *expression.WindowExpression:
			return false
		case sql.Aggregation:
			aggs = append(aggs, e)
			return false
		}
		return true
	})
	return aggs
}

// sameExprs returns whether both lists hold the very same expressions.
func sameExprs(a, b []sql.Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameExpr(a, b sql.Expression) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Ptr || vb.Kind() != reflect.Ptr {
		return false
	}
	return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
}

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

package expression

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/transform"
)

// LiteralFolder is a sql.ConstantFolder that evaluates operators whose
// operands are all literals. Functions, aggregates and subqueries are never
// folded.
type LiteralFolder struct{}

var _ sql.ConstantFolder = LiteralFolder{}

// Fold implements the sql.ConstantFolder interface.
func (LiteralFolder) Fold(ctx *sql.Context, e sql.Expression) (sql.Expression, error) {
	folded, _, err := transform.Expr(e, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		lits, ok := literalChildren(e)
		if !ok {
			return e, transform.SameTree, nil
		}
		if v, ok := foldLiterals(e, lits); ok {
			return v, transform.NewTree, nil
		}
		return e, transform.SameTree, nil
	})
	return folded, err
}

func literalChildren(e sql.Expression) ([]*Literal, bool) {
	switch e.(type) {
	case *Arithmetic, *Equals, *NullSafeEquals, *GreaterThan, *LessThan, *GreaterThanOrEqual, *LessThanOrEqual,
		*And, *Or, *Not, *IsNull, *Cast:
	default:
		return nil, false
	}

	children := e.Children()
	lits := make([]*Literal, len(children))
	for i, c := range children {
		lit, ok := c.(*Literal)
		if !ok {
			return nil, false
		}
		lits[i] = lit
	}
	return lits, true
}

func foldLiterals(e sql.Expression, lits []*Literal) (*Literal, bool) {
	switch e := e.(type) {
	case *Arithmetic:
		return foldArithmetic(e, lits[0], lits[1])
	case *NullSafeEquals:
		if lits[0].value == nil || lits[1].value == nil {
			return NewLiteral(lits[0].value == nil && lits[1].value == nil, sql.Boolean), true
		}
		cmp, ok := compareLiterals(lits[0], lits[1])
		return NewLiteral(cmp == 0, sql.Boolean), ok
	case Comparer:
		if lits[0].value == nil || lits[1].value == nil {
			return NewLiteral(nil, sql.Boolean), true
		}
		cmp, ok := compareLiterals(lits[0], lits[1])
		if !ok {
			return nil, false
		}
		var res bool
		switch e.Operator() {
		case "=":
			res = cmp == 0
		case ">":
			res = cmp > 0
		case "<":
			res = cmp < 0
		case ">=":
			res = cmp >= 0
		case "<=":
			res = cmp <= 0
		default:
			return nil, false
		}
		return NewLiteral(res, sql.Boolean), true
	case *And:
		return foldLogic(lits[0], lits[1], false)
	case *Or:
		return foldLogic(lits[0], lits[1], true)
	case *Not:
		if lits[0].value == nil {
			return NewLiteral(nil, sql.Boolean), true
		}
		b, err := cast.ToBoolE(lits[0].value)
		if err != nil {
			return nil, false
		}
		return NewLiteral(!b, sql.Boolean), true
	case *IsNull:
		return NewLiteral(lits[0].value == nil, sql.Boolean), true
	case *Cast:
		return foldCast(lits[0], e.Type())
	}
	return nil, false
}

func foldArithmetic(a *Arithmetic, l, r *Literal) (*Literal, bool) {
	typ := a.Type()
	if l.value == nil || r.value == nil {
		return NewLiteral(nil, typ), true
	}

	if sql.IsInteger(typ) {
		lv, err := cast.ToInt64E(l.value)
		if err != nil {
			return nil, false
		}
		rv, err := cast.ToInt64E(r.value)
		if err != nil {
			return nil, false
		}
		switch a.Op {
		case PlusOp:
			return NewLiteral(lv+rv, typ), true
		case MinusOp:
			return NewLiteral(lv-rv, typ), true
		case MultOp:
			return NewLiteral(lv*rv, typ), true
		case ModOp:
			if rv == 0 {
				return NewLiteral(nil, typ), true
			}
			return NewLiteral(lv%rv, typ), true
		}
		return nil, false
	}

	lv, err := cast.ToFloat64E(l.value)
	if err != nil {
		return nil, false
	}
	rv, err := cast.ToFloat64E(r.value)
	if err != nil {
		return nil, false
	}
	switch a.Op {
	case PlusOp:
		return NewLiteral(lv+rv, typ), true
	case MinusOp:
		return NewLiteral(lv-rv, typ), true
	case MultOp:
		return NewLiteral(lv*rv, typ), true
	case DivOp:
		if rv == 0 {
			return NewLiteral(nil, typ), true
		}
		return NewLiteral(lv/rv, typ), true
	}
	return nil, false
}

func compareLiterals(l, r *Literal) (int, bool) {
	if sql.IsText(l.fieldType) && sql.IsText(r.fieldType) {
		return strings.Compare(l.value.(string), r.value.(string)), true
	}

	lv, err := cast.ToFloat64E(l.value)
	if err != nil {
		return 0, false
	}
	rv, err := cast.ToFloat64E(r.value)
	if err != nil {
		return 0, false
	}
	switch {
	case lv < rv:
		return -1, true
	case lv > rv:
		return 1, true
	default:
		return 0, true
	}
}

// foldLogic evaluates AND (or OR when isOr) with three-valued logic.
func foldLogic(l, r *Literal, isOr bool) (*Literal, bool) {
	var lv, rv *bool
	for i, lit := range []*Literal{l, r} {
		if lit.value == nil {
			continue
		}
		b, err := cast.ToBoolE(lit.value)
		if err != nil {
			return nil, false
		}
		if i == 0 {
			lv = &b
		} else {
			rv = &b
		}
	}

	// An operand other than the identity decides the result regardless of NULLs.
	identity := !isOr
	if (lv != nil && *lv != identity) || (rv != nil && *rv != identity) {
		return NewLiteral(!identity, sql.Boolean), true
	}
	if lv == nil || rv == nil {
		return NewLiteral(nil, sql.Boolean), true
	}
	return NewLiteral(identity, sql.Boolean), true
}

func foldCast(lit *Literal, to sql.Type) (*Literal, bool) {
	if lit.value == nil {
		return NewLiteral(nil, to), true
	}

	var (
		v   interface{}
		err error
	)
	switch {
	case sql.IsBoolean(to):
		v, err = cast.ToBoolE(lit.value)
	case sql.IsInteger(to):
		v, err = cast.ToInt64E(lit.value)
	case sql.IsNumber(to):
		v, err = cast.ToFloat64E(lit.value)
	case sql.IsText(to):
		v, err = cast.ToStringE(lit.value)
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return NewLiteral(v, to), true
}

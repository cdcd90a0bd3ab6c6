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

package plan

import (
	"fmt"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
	"github.com/dolthub/go-sql-binder/sql/expression"
)

type JoinType uint16

const (
	JoinTypeUnknown    JoinType = iota // UnknownJoin
	JoinTypeCross                      // CrossJoin
	JoinTypeInner                      // InnerJoin
	JoinTypeLeftOuter                  // LeftOuterJoin
	JoinTypeRightOuter                 // RightOuterJoin
	JoinTypeFullOuter                  // FullOuterJoin
	JoinTypeLeftSemi                   // LeftSemiJoin
	JoinTypeLeftAnti                   // LeftAntiJoin
	JoinTypeRightSemi                  // RightSemiJoin
	JoinTypeRightAnti                  // RightAntiJoin
)

var joinTypeNames = [...]string{
	JoinTypeUnknown:    "UnknownJoin",
	JoinTypeCross:      "CrossJoin",
	JoinTypeInner:      "InnerJoin",
	JoinTypeLeftOuter:  "LeftOuterJoin",
	JoinTypeRightOuter: "RightOuterJoin",
	JoinTypeFullOuter:  "FullOuterJoin",
	JoinTypeLeftSemi:   "LeftSemiJoin",
	JoinTypeLeftAnti:   "LeftAntiJoin",
	JoinTypeRightSemi:  "RightSemiJoin",
	JoinTypeRightAnti:  "RightAntiJoin",
}

func (i JoinType) String() string {
	if int(i) < len(joinTypeNames) {
		return joinTypeNames[i]
	}
	return fmt.Sprintf("JoinType(%d)", i)
}

// IsLeftOuter returns whether the right side of the join can produce nulls.
func (i JoinType) IsLeftOuter() bool {
	return i == JoinTypeLeftOuter || i == JoinTypeFullOuter
}

// IsRightOuter returns whether the left side of the join can produce nulls.
func (i JoinType) IsRightOuter() bool {
	return i == JoinTypeRightOuter || i == JoinTypeFullOuter
}

// IsLeftOnly returns whether only the left side is part of the output.
func (i JoinType) IsLeftOnly() bool {
	return i == JoinTypeLeftSemi || i == JoinTypeLeftAnti
}

// IsRightOnly returns whether only the right side is part of the output.
func (i JoinType) IsRightOnly() bool {
	return i == JoinTypeRightSemi || i == JoinTypeRightAnti
}

// JoinNode joins two relations. HashConditions are the equi-join conjuncts,
// OtherConditions the rest of the join predicate.
type JoinNode struct {
	BinaryNode
	Op              JoinType
	HashConditions  []sql.Expression
	OtherConditions []sql.Expression
	// ExceptAsteriskOutputs are columns of the join hidden from *, such as
	// the right side columns of a USING join.
	ExceptAsteriskOutputs []sql.ColumnId
}

var _ sql.Expressioner = (*JoinNode)(nil)
var _ sql.BinaryNode = (*JoinNode)(nil)

func NewJoin(left, right sql.Node, op JoinType, hashConds, otherConds []sql.Expression) *JoinNode {
	return &JoinNode{
		BinaryNode:      BinaryNode{left: left, right: right},
		Op:              op,
		HashConditions:  hashConds,
		OtherConditions: otherConds,
	}
}

func NewInnerJoin(left, right sql.Node, conds ...sql.Expression) *JoinNode {
	return NewJoin(left, right, JoinTypeInner, nil, conds)
}

func NewCrossJoin(left, right sql.Node) *JoinNode {
	return NewJoin(left, right, JoinTypeCross, nil, nil)
}

func NewLeftOuterJoin(left, right sql.Node, conds ...sql.Expression) *JoinNode {
	return NewJoin(left, right, JoinTypeLeftOuter, nil, conds)
}

func (j *JoinNode) JoinType() JoinType {
	return j.Op
}

// WithExceptAsteriskOutputs returns a copy of the join hiding the given
// columns from *.
func (j *JoinNode) WithExceptAsteriskOutputs(ids []sql.ColumnId) *JoinNode {
	nj := *j
	nj.ExceptAsteriskOutputs = ids
	return &nj
}

// Schema implements the Node interface. Columns of a side that can be
// missing from a match become nullable.
func (j *JoinNode) Schema() sql.Schema {
	var left, right sql.Schema
	if !j.Op.IsRightOnly() {
		left = j.left.Schema()
		if j.Op.IsRightOuter() {
			left = makeNullable(left)
		}
	}
	if !j.Op.IsLeftOnly() {
		right = j.right.Schema()
		if j.Op.IsLeftOuter() {
			right = makeNullable(right)
		}
	}
	return append(append(sql.Schema{}, left...), right...)
}

// AsteriskSchema returns the columns * expands to over the join.
func (j *JoinNode) AsteriskSchema() sql.Schema {
	var left, right sql.Schema
	if !j.Op.IsRightOnly() {
		left = AsteriskSchema(j.left)
		if j.Op.IsRightOuter() {
			left = makeNullable(left)
		}
	}
	if !j.Op.IsLeftOnly() {
		right = AsteriskSchema(j.right)
		if j.Op.IsLeftOuter() {
			right = makeNullable(right)
		}
	}
	schema := make(sql.Schema, 0, len(left)+len(right))
	for _, c := range append(append(sql.Schema{}, left...), right...) {
		if !containsId(j.ExceptAsteriskOutputs, c.Id) {
			schema = append(schema, c)
		}
	}
	return schema
}

func containsId(ids []sql.ColumnId, id sql.ColumnId) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

func makeNullable(s sql.Schema) sql.Schema {
	ns := make(sql.Schema, len(s))
	for i := range s {
		ns[i] = s[i].WithNullable(true)
	}
	return ns
}

// Resolved implements the Resolvable interface.
func (j *JoinNode) Resolved() bool {
	return j.BinaryNode.Resolved() && expressionsResolved(j.Expressions()...)
}

// Expressions implements the Expressioner interface.
func (j *JoinNode) Expressions() []sql.Expression {
	exprs := make([]sql.Expression, 0, len(j.HashConditions)+len(j.OtherConditions))
	exprs = append(exprs, j.HashConditions...)
	return append(exprs, j.OtherConditions...)
}

// WithExpressions implements the Expressioner interface.
func (j *JoinNode) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	expected := len(j.HashConditions) + len(j.OtherConditions)
	if len(exprs) != expected {
		return nil, sql.ErrInvalidChildrenNumber.New(j, len(exprs), expected)
	}

	nj := *j
	nj.HashConditions = exprs[:len(j.HashConditions)]
	nj.OtherConditions = exprs[len(j.HashConditions):]
	return &nj, nil
}

// WithChildren implements the Node interface.
func (j *JoinNode) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(j, len(children), 2)
	}

	nj := *j
	nj.left = children[0]
	nj.right = children[1]
	return &nj, nil
}

func (j *JoinNode) String() string {
	pr := sql.NewTreePrinter()
	var conds []string
	if len(j.HashConditions) > 0 {
		conds = append(conds, "hash: "+expression.JoinStrings(j.HashConditions, " AND "))
	}
	if len(j.OtherConditions) > 0 {
		conds = append(conds, "other: "+expression.JoinStrings(j.OtherConditions, " AND "))
	}
	if len(conds) > 0 {
		_ = pr.WriteNode("%s(%s)", j.Op, strings.Join(conds, "; "))
	} else {
		_ = pr.WriteNode("%s", j.Op)
	}
	_ = pr.WriteChildren(j.left.String(), j.right.String())
	return pr.String()
}

// UsingJoin is a join on the columns named in a USING clause. It is replaced
// by a JoinNode when bound.
type UsingJoin struct {
	BinaryNode
	Op    JoinType
	Using []sql.Expression
}

var _ sql.Node = (*UsingJoin)(nil)

func NewUsingJoin(left, right sql.Node, op JoinType, using ...sql.Expression) *UsingJoin {
	return &UsingJoin{
		BinaryNode: BinaryNode{left: left, right: right},
		Op:         op,
		Using:      using,
	}
}

// Resolved implements the Resolvable interface.
func (*UsingJoin) Resolved() bool {
	return false
}

// Schema implements the Node interface.
func (j *UsingJoin) Schema() sql.Schema {
	return append(append(sql.Schema{}, j.left.Schema()...), j.right.Schema()...)
}

// WithChildren implements the Node interface.
func (j *UsingJoin) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(j, len(children), 2)
	}

	nj := *j
	nj.left = children[0]
	nj.right = children[1]
	return &nj, nil
}

func (j *UsingJoin) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("%s(using: %s)", j.Op, expression.JoinStrings(j.Using, ", "))
	_ = pr.WriteChildren(j.left.String(), j.right.String())
	return pr.String()
}

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

package plan

import (
	"fmt"

	"github.com/dolthub/go-sql-binder/sql"
)

// UnresolvedResultSink is the root of a statement whose output columns have
// not been named yet.
type UnresolvedResultSink struct {
	UnaryNode
}

var _ sql.Node = (*UnresolvedResultSink)(nil)

func NewUnresolvedResultSink(child sql.Node) *UnresolvedResultSink {
	return &UnresolvedResultSink{UnaryNode{Child: child}}
}

func (*UnresolvedResultSink) Resolved() bool { return false }

func (s *UnresolvedResultSink) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 1)
	}
	return NewUnresolvedResultSink(children[0]), nil
}

func (s *UnresolvedResultSink) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("UnresolvedResultSink")
	_ = pr.WriteChildren(s.Child.String())
	return pr.String()
}

// ResultSink is the root of a bound statement. Outputs are the columns
// returned to the client, in order.
type ResultSink struct {
	UnaryNode
	Outputs []sql.Expression
}

var _ sql.Expressioner = (*ResultSink)(nil)

func NewResultSink(outputs []sql.Expression, child sql.Node) *ResultSink {
	return &ResultSink{UnaryNode: UnaryNode{Child: child}, Outputs: outputs}
}

func (s *ResultSink) Schema() sql.Schema {
	return exprsSchema(s.Outputs)
}

func (s *ResultSink) Resolved() bool {
	return s.Child.Resolved() && expressionsResolved(s.Outputs...)
}

func (s *ResultSink) Expressions() []sql.Expression { return s.Outputs }

func (s *ResultSink) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(s.Outputs) {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(exprs), len(s.Outputs))
	}
	return NewResultSink(exprs, s.Child), nil
}

func (s *ResultSink) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 1)
	}
	return NewResultSink(s.Outputs, children[0]), nil
}

func (s *ResultSink) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("ResultSink")
	_ = pr.WriteChildren(fmt.Sprintf("outputs: [%s]", exprsString(s.Outputs)), s.Child.String())
	return pr.String()
}

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

package plan

import (
	"fmt"
	"strings"

	"github.com/dolthub/go-sql-binder/sql"
)

// SetOpKind is the kind of a set operation.
type SetOpKind byte

const (
	UnionKind SetOpKind = iota
	IntersectKind
	ExceptKind
)

func (k SetOpKind) String() string {
	switch k {
	case UnionKind:
		return "Union"
	case IntersectKind:
		return "Intersect"
	case ExceptKind:
		return "Except"
	default:
		return fmt.Sprintf("SetOpKind(%d)", k)
	}
}

// SetOpQualifier tells whether a set operation keeps duplicate rows.
type SetOpQualifier byte

const (
	Distinct SetOpQualifier = iota
	All
)

func (q SetOpQualifier) String() string {
	if q == All {
		return "all"
	}
	return "distinct"
}

// SetOperation is a UNION, INTERSECT or EXCEPT of its children. Outputs is
// nil until the operation is bound; ChildrenOutputs then holds the columns
// each child contributes per position.
type SetOperation struct {
	Kind            SetOpKind
	Qualifier       SetOpQualifier
	children        []sql.Node
	Outputs         sql.Schema
	ChildrenOutputs []sql.Schema
}

var _ sql.Node = (*SetOperation)(nil)

func NewSetOperation(kind SetOpKind, qualifier SetOpQualifier, children ...sql.Node) *SetOperation {
	return &SetOperation{Kind: kind, Qualifier: qualifier, children: children}
}

func NewUnion(qualifier SetOpQualifier, left, right sql.Node) *SetOperation {
	return NewSetOperation(UnionKind, qualifier, left, right)
}

func NewIntersect(qualifier SetOpQualifier, left, right sql.Node) *SetOperation {
	return NewSetOperation(IntersectKind, qualifier, left, right)
}

func NewExcept(qualifier SetOpQualifier, left, right sql.Node) *SetOperation {
	return NewSetOperation(ExceptKind, qualifier, left, right)
}

// WithOutputs returns a copy of the operation with the given outputs.
func (s *SetOperation) WithOutputs(outputs sql.Schema, childrenOutputs []sql.Schema) *SetOperation {
	ns := *s
	ns.Outputs = outputs
	ns.ChildrenOutputs = childrenOutputs
	return &ns
}

// Schema implements the Node interface. An operation not bound yet exposes
// the columns of its first child.
func (s *SetOperation) Schema() sql.Schema {
	if s.Outputs != nil {
		return s.Outputs
	}
	if len(s.children) == 0 {
		return nil
	}
	return s.children[0].Schema()
}

// Resolved implements the Resolvable interface.
func (s *SetOperation) Resolved() bool {
	if s.Outputs == nil {
		return false
	}
	for _, c := range s.children {
		if !c.Resolved() {
			return false
		}
	}
	return true
}

// Children implements the Node interface.
func (s *SetOperation) Children() []sql.Node {
	return s.children
}

// WithChildren implements the Node interface.
func (s *SetOperation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != len(s.children) {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), len(s.children))
	}

	ns := *s
	ns.children = children
	return &ns, nil
}

func (s *SetOperation) String() string {
	pr := sql.NewTreePrinter()
	if s.Outputs != nil {
		_ = pr.WriteNode("%s %s(%s)", s.Kind, s.Qualifier, strings.Join(s.Outputs.Names(), ", "))
	} else {
		_ = pr.WriteNode("%s %s", s.Kind, s.Qualifier)
	}
	_ = pr.WriteChildren(childrenStrings(s.children)...)
	return pr.String()
}

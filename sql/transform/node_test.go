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

package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-sql-binder/sql"
)

// planNode is a node identified by a kind, used to assert tree shapes.
type planNode struct {
	kind     string
	children []sql.Node
}

var _ sql.Node = (*planNode)(nil)

func node(kind string, children ...sql.Node) *planNode {
	return &planNode{kind: kind, children: children}
}

func (*planNode) Resolved() bool         { return true }
func (*planNode) Schema() sql.Schema     { return nil }
func (n *planNode) Children() []sql.Node { return n.children }

func (n *planNode) String() string {
	if len(n.children) == 0 {
		return n.kind
	}
	children := make([]string, len(n.children))
	for i, c := range n.children {
		children[i] = c.String()
	}
	return n.kind + "(" + strings.Join(children, ",") + ")"
}

func (n *planNode) WithChildren(children ...sql.Node) (sql.Node, error) {
	nn := *n
	nn.children = children
	return &nn, nil
}

// rename returns a NodeFunc replacing the nodes of the kinds given, keeping
// their children.
func rename(kinds map[string]string) NodeFunc {
	return func(n sql.Node) (sql.Node, TreeIdentity, error) {
		pn := n.(*planNode)
		if to, ok := kinds[pn.kind]; ok {
			return node(to, pn.children...), NewTree, nil
		}
		return n, SameTree, nil
	}
}

func TestNode(t *testing.T) {
	testCases := []struct {
		name     string
		input    sql.Node
		kinds    map[string]string
		expected string
		same     TreeIdentity
	}{
		{
			name:     "every level",
			input:    node("project", node("filter", node("table"), node("table")), node("table")),
			kinds:    map[string]string{"project": "sort", "filter": "having", "table": "alias"},
			expected: "sort(having(alias,alias),alias)",
			same:     NewTree,
		},
		{
			name:     "leaves only",
			input:    node("join", node("table"), node("project", node("table"))),
			kinds:    map[string]string{"table": "alias"},
			expected: "join(alias,project(alias))",
			same:     NewTree,
		},
		{
			name:     "root only",
			input:    node("project", node("filter", node("table"))),
			kinds:    map[string]string{"project": "sort"},
			expected: "sort(filter(table))",
			same:     NewTree,
		},
		{
			name:     "replacement is not revisited",
			input:    node("table"),
			kinds:    map[string]string{"table": "project", "project": "filter"},
			expected: "project",
			same:     NewTree,
		},
		{
			name:     "nothing to replace",
			input:    node("project", node("filter", node("table"))),
			kinds:    map[string]string{"sort": "project"},
			expected: "project(filter(table))",
			same:     SameTree,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			result, same, err := Node(tt.input, rename(tt.kinds))
			require.NoError(err)
			require.Equal(tt.expected, result.String())
			require.Equal(tt.same, same)
			if same {
				require.Same(tt.input, result)
			}
		})
	}
}

func TestNodeKeepsUnchangedSubtrees(t *testing.T) {
	require := require.New(t)

	unchanged := node("filter", node("table"))
	tree := node("join", unchanged, node("project"))
	result, same, err := Node(tree, rename(map[string]string{"project": "sort"}))
	require.NoError(err)
	require.Equal(NewTree, same)
	require.Same(unchanged, result.Children()[0])
	require.Equal("join(filter(table),sort)", result.String())
	require.Equal("join(filter(table),project)", tree.String())
}

func TestNodeError(t *testing.T) {
	require := require.New(t)

	boom := errors.New("boom")
	var visited []string
	_, _, err := Node(node("project", node("table"), node("filter")), func(n sql.Node) (sql.Node, TreeIdentity, error) {
		visited = append(visited, n.(*planNode).kind)
		if n.(*planNode).kind == "table" {
			return nil, SameTree, boom
		}
		return n, SameTree, nil
	})
	require.ErrorIs(err, boom)
	require.Equal([]string{"table"}, visited)
}

func TestInspect(t *testing.T) {
	tree := node("project", node("join", node("table"), node("alias")), node("table", node("filter")))

	var visited []string
	require.True(t, Inspect(tree, func(n sql.Node) bool {
		visited = append(visited, n.(*planNode).kind)
		return true
	}))
	require.Equal(t, []string{"project", "join", "table", "alias", "table", "filter"}, visited)

	visited = nil
	cont := Inspect(tree, func(n sql.Node) bool {
		visited = append(visited, n.(*planNode).kind)
		return n.(*planNode).kind != "table"
	})
	require.False(t, cont)
	require.Equal(t, []string{"project", "join", "table"}, visited)
}

func TestInspectPruned(t *testing.T) {
	tree := node("project", node("join", node("table"), node("alias")), node("table", node("filter")))

	var visited []string
	InspectPruned(tree, func(n sql.Node) bool {
		visited = append(visited, n.(*planNode).kind)
		return n.(*planNode).kind != "join"
	})
	require.Equal(t, []string{"project", "join", "table", "filter"}, visited)
}

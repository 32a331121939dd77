package dag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, conds ...func() bool) *Node {
	return &Node{
		ID:         id,
		Label:      id,
		Conditions: conds,
		Run:        func(ctx context.Context) error { return nil },
	}
}

func mustAdd(t *testing.T, g *Graph, nodes ...*Node) {
	t.Helper()
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n))
	}
}

func TestAddNode(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a"))
	assert.Equal(t, 1, g.Len())
	assert.NotNil(t, g.Node("a"))

	err := g.AddNode(node("a"))
	assert.ErrorContains(t, err, "duplicate node")
}

func TestAddDep(t *testing.T) {
	g := New()
	mustAdd(t, g, node("a"), node("b"))

	require.NoError(t, g.AddDep("a", "b"))
	require.Len(t, g.Node("a").Deps(), 1)
	assert.Equal(t, "b", g.Node("a").Deps()[0].ID)

	assert.ErrorContains(t, g.AddDep("dne", "a"), "node not found")
	assert.ErrorContains(t, g.AddDep("a", "dne"), "dependency node not found")
}

func TestFindCycle(t *testing.T) {
	t.Run("acyclic diamond", func(t *testing.T) {
		g := New()
		mustAdd(t, g, node("a"), node("b"), node("c"), node("d"))
		require.NoError(t, g.AddDep("a", "b"))
		require.NoError(t, g.AddDep("a", "c"))
		require.NoError(t, g.AddDep("b", "d"))
		require.NoError(t, g.AddDep("c", "d"))
		assert.Nil(t, g.FindCycle("a"))
	})

	t.Run("self cycle", func(t *testing.T) {
		g := New()
		mustAdd(t, g, node("a"))
		require.NoError(t, g.AddDep("a", "a"))
		assert.Equal(t, []string{"a", "a"}, g.FindCycle("a"))
	})

	t.Run("cycle through intermediate nodes names the full path", func(t *testing.T) {
		g := New()
		mustAdd(t, g, node("a"), node("b"), node("c"), node("d"))
		require.NoError(t, g.AddDep("a", "b"))
		require.NoError(t, g.AddDep("b", "c"))
		require.NoError(t, g.AddDep("c", "d"))
		require.NoError(t, g.AddDep("d", "b"))

		path := g.FindCycle("a")
		assert.Equal(t, []string{"b", "c", "d", "b"}, path)
	})

	t.Run("cycle not reachable from root is not reported", func(t *testing.T) {
		g := New()
		mustAdd(t, g, node("a"), node("x"), node("y"))
		require.NoError(t, g.AddDep("x", "y"))
		require.NoError(t, g.AddDep("y", "x"))
		assert.Nil(t, g.FindCycle("a"))
	})

	t.Run("unknown root", func(t *testing.T) {
		assert.Nil(t, New().FindCycle("dne"))
	})
}

package taskgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgraphgo/internal/task"
)

func TestTopologicalSort(t *testing.T) {
	t.Run("respects the partial order", func(t *testing.T) {
		g := diamond(t)

		order, err := g.TopologicalSort()
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"a", "b", "c", "d"}, order)

		// Only "a" has zero in-degree, so it must come first. Among the
		// rest, assert the edge precedences rather than one exact sequence.
		assert.Equal(t, "a", order[0])
		assertBefore(t, order, "a", "b")
		assertBefore(t, order, "a", "d")
		assertBefore(t, order, "b", "c")
	})

	t.Run("every edge keeps source before target", func(t *testing.T) {
		g := diamond(t)
		require.NoError(t, g.AddNode(task.New("e", "")))
		require.NoError(t, g.AddEdge("d", "e"))
		require.NoError(t, g.AddEdge("c", "e"))

		order, err := g.TopologicalSort()
		require.NoError(t, err)
		for _, e := range g.Edges() {
			assertBefore(t, order, e.From, e.To)
		}
	})

	t.Run("empty graph sorts to nothing", func(t *testing.T) {
		order, err := New().TopologicalSort()
		require.NoError(t, err)
		assert.Empty(t, order)
	})
}

func TestValidate(t *testing.T) {
	g := diamond(t)
	assert.True(t, g.Validate())
}

func TestAllDownstreams(t *testing.T) {
	t.Run("returns the reachable set in a valid partial order", func(t *testing.T) {
		g := diamond(t)

		down, err := g.AllDownstreams("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, down)

		down, err = g.AllDownstreams("a")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"a", "b", "c", "d"}, down)
		assert.Equal(t, "a", down[0])
		assertBefore(t, down, "b", "c")
	})

	t.Run("terminal node reaches only itself", func(t *testing.T) {
		g := diamond(t)
		down, err := g.AllDownstreams("c")
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, down)
	})

	t.Run("unknown task fails", func(t *testing.T) {
		g := diamond(t)
		_, err := g.AllDownstreams("ghost")
		var unknown *UnknownNodeError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "ghost", unknown.Name)
	})
}

// assertBefore fails unless before appears earlier than after in order.
func assertBefore(t *testing.T, order []string, before, after string) {
	t.Helper()
	bi, ai := -1, -1
	for i, name := range order {
		switch name {
		case before:
			bi = i
		case after:
			ai = i
		}
	}
	require.GreaterOrEqual(t, bi, 0, "%q missing from order %v", before, order)
	require.GreaterOrEqual(t, ai, 0, "%q missing from order %v", after, order)
	assert.Less(t, bi, ai, "expected %q before %q in %v", before, after, order)
}

package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/surfrecon/core"
)

func buildChain(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i := 0; i < n-1; i++ {
		from := itoa(i)
		to := itoa(i + 1)
		_, err := g.AddEdge(from, to)
		require.NoError(t, err)
	}

	return g
}

func itoa(i int) string {
	digits := []byte{}
	if i == 0 {
		return "0"
	}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}

	return string(digits)
}

func TestBFS_VisitsAllReachable(t *testing.T) {
	g := buildChain(t, 5)
	res, err := BFS(g, "0", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, res.Order)
	assert.Equal(t, 4, res.Depth["4"])
}

func TestBFS_StartVertexNotFound(t *testing.T) {
	g := core.NewGraph()
	_, err := BFS(g, "missing", nil)
	require.ErrorIs(t, err, ErrStartVertexNotFound)
}

func TestBFS_DisconnectedComponentsNotVisited(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("0", "1")
	require.NoError(t, err)
	require.NoError(t, g.AddVertex("2"))

	res, err := BFS(g, "0", nil)
	require.NoError(t, err)
	assert.NotContains(t, res.Order, "2")
}

func TestBFS_OnVisitAbort(t *testing.T) {
	g := buildChain(t, 3)
	sentinel := assertError
	_, err := BFS(g, "0", &BFSOptions{
		OnVisit: func(id string, depth int) error {
			if id == "1" {
				return sentinel
			}
			return nil
		},
	})
	require.ErrorIs(t, err, sentinel)
}

var assertError = assert.AnError

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVertex_Idempotent(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddVertex("0"))
	require.NoError(t, g.AddVertex("0"))
	assert.Equal(t, 1, g.VertexCount())
}

func TestAddVertex_EmptyID(t *testing.T) {
	g := NewGraph()
	require.ErrorIs(t, g.AddVertex(""), ErrEmptyVertexID)
}

func TestAddEdge_MirrorsAdjacency(t *testing.T) {
	g := NewGraph()
	_, err := g.AddEdge("0", "1")
	require.NoError(t, err)

	assert.True(t, g.HasEdge("0", "1"))
	assert.True(t, g.HasEdge("1", "0"))
}

func TestAddEdge_IdempotentNoParallelEdge(t *testing.T) {
	g := NewGraph()
	eid1, err := g.AddEdge("0", "1")
	require.NoError(t, err)
	eid2, err := g.AddEdge("0", "1")
	require.NoError(t, err)

	assert.Equal(t, eid1, eid2)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestAddEdge_LoopRejectedByDefault(t *testing.T) {
	g := NewGraph()
	_, err := g.AddEdge("0", "0")
	require.ErrorIs(t, err, ErrLoopNotAllowed)
}

func TestAddEdge_LoopAllowedWithOption(t *testing.T) {
	g := NewGraph(WithLoops())
	_, err := g.AddEdge("0", "0")
	require.NoError(t, err)

	deg, err := g.Degree("0")
	require.NoError(t, err)
	assert.Equal(t, 2, deg)
}

func TestRemoveVertex_RemovesIncidentEdges(t *testing.T) {
	g := NewGraph()
	_, err := g.AddEdge("0", "1")
	require.NoError(t, err)
	_, err = g.AddEdge("1", "2")
	require.NoError(t, err)

	require.NoError(t, g.RemoveVertex("1"))
	assert.False(t, g.HasEdge("0", "1"))
	assert.False(t, g.HasEdge("1", "2"))
	assert.Equal(t, 0, g.EdgeCount())
}

func TestRemoveVertex_NotFound(t *testing.T) {
	g := NewGraph()
	require.ErrorIs(t, g.RemoveVertex("missing"), ErrVertexNotFound)
}

func TestVertices_SortedOrder(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddVertex("2"))
	require.NoError(t, g.AddVertex("0"))
	require.NoError(t, g.AddVertex("1"))

	assert.Equal(t, []string{"0", "1", "2"}, g.Vertices())
}

func TestNeighbors_SortedByEdgeID(t *testing.T) {
	g := NewGraph()
	_, err := g.AddEdge("0", "1")
	require.NoError(t, err)
	_, err = g.AddEdge("0", "2")
	require.NoError(t, err)

	edges, err := g.Neighbors("0")
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.True(t, edges[0].ID < edges[1].ID)
}

func TestNeighborIDs_Unique(t *testing.T) {
	g := NewGraph()
	_, err := g.AddEdge("0", "1")
	require.NoError(t, err)

	ids, err := g.NeighborIDs("0")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids)
}

func TestClone_IndependentOfSource(t *testing.T) {
	g := NewGraph()
	_, err := g.AddEdge("0", "1")
	require.NoError(t, err)

	clone := g.Clone()
	require.NoError(t, g.RemoveVertex("1"))

	assert.True(t, clone.HasEdge("0", "1"))
	assert.False(t, g.HasEdge("0", "1"))
}

func TestClear_PreservesLoopFlag(t *testing.T) {
	g := NewGraph(WithLoops())
	_, err := g.AddEdge("0", "0")
	require.NoError(t, err)

	g.Clear()
	assert.Equal(t, 0, g.VertexCount())
	_, err = g.AddEdge("1", "1")
	require.NoError(t, err)
}

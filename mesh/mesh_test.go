package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/surfrecon/pointcloud"
)

func TestCreateFace_NextCycleHasLengthThree(t *testing.T) {
	m := New()
	v0 := m.CreateVertex(pointcloud.Point{X: 0})
	v1 := m.CreateVertex(pointcloud.Point{X: 1})
	v2 := m.CreateVertex(pointcloud.Point{X: 2})

	f := m.CreateFace(v0, v1, v2)
	h0 := m.faces[f].Edge
	h1 := m.edges[h0].Next
	h2 := m.edges[h1].Next
	h3 := m.edges[h2].Next
	assert.Equal(t, h0, h3)
}

func TestCreateFace_VerticesRoundTrip(t *testing.T) {
	m := New()
	v0 := m.CreateVertex(pointcloud.Point{X: 0})
	v1 := m.CreateVertex(pointcloud.Point{X: 1})
	v2 := m.CreateVertex(pointcloud.Point{X: 2})

	f := m.CreateFace(v0, v1, v2)
	a, b, c := m.FaceVertices(f)
	assert.Equal(t, [3]VID{v0, v1, v2}, [3]VID{a, b, c})
}

func TestCreateFace_SharedEdgeLinksTwins(t *testing.T) {
	m := New()
	v0 := m.CreateVertex(pointcloud.Point{X: 0})
	v1 := m.CreateVertex(pointcloud.Point{X: 1})
	v2 := m.CreateVertex(pointcloud.Point{X: 2})
	v3 := m.CreateVertex(pointcloud.Point{X: 3})

	f0 := m.CreateFace(v0, v1, v2)
	m.CreateFace(v1, v0, v3) // shares edge v0-v1 in reverse

	h0 := m.faces[f0].Edge // v0 -> v1
	require.NotEqual(t, HID(0), m.edges[h0].Twin)
	twin := m.edges[h0].Twin
	assert.Equal(t, v1, m.edges[twin].Origin)
}

func TestVertexPosition_OutOfRange(t *testing.T) {
	m := New()
	_, err := m.VertexPosition(VID(99))
	require.ErrorIs(t, err, ErrVertexNotFound)
}

func TestTriangles_MaterializesAllFaces(t *testing.T) {
	m := New()
	v0 := m.CreateVertex(pointcloud.Point{X: 0})
	v1 := m.CreateVertex(pointcloud.Point{Y: 1})
	v2 := m.CreateVertex(pointcloud.Point{Z: 1})
	m.CreateFace(v0, v1, v2)

	tris := m.Triangles()
	require.Len(t, tris, 1)
	assert.Equal(t, pointcloud.Point{X: 0}, tris[0][0])
}

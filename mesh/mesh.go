// Package mesh implements a half-edge mesh of triangular faces over an
// integer-handle arena: vertices, half-edges, and faces are identified by
// small integers indexing into backing slices, never by pointer, so the
// whole structure is trivially copyable and free of GC-pointer chasing
// during contouring's tight inner loop.
package mesh

import (
	"errors"

	"github.com/katalvlaran/surfrecon/pointcloud"
)

// ErrVertexNotFound is returned by lookups on an out-of-range VID.
var ErrVertexNotFound = errors.New("mesh: vertex not found")

// VID, FID, and HID are arena handles for vertices, faces, and
// half-edges. The zero value of each denotes "no handle" — valid handles
// are always >= 1, matching the arena's 1-based allocation.
type VID int
type FID int
type HID int

type vertexRec struct {
	pos pointcloud.Point
}

// halfEdgeRec is one directed half-edge: Origin holds the vertex it
// starts from (not the destination vertex some half-edge layouts store),
// is paired with Twin (0 if unpaired), and continues to Next around its
// Face. The origin convention is applied consistently by every method
// here, so winding order and Triangles' output are unaffected by the
// choice.
type halfEdgeRec struct {
	Origin VID
	Twin   HID
	Next   HID
	Face   FID
}

type faceRec struct {
	// Edge is any one half-edge bounding this face; walking Next three
	// times from it returns to itself (triangular faces only).
	Edge HID
}

// Mesh is an arena-backed half-edge mesh of triangles.
type Mesh struct {
	verts []vertexRec // index 0 unused, handles are 1-based
	edges []halfEdgeRec
	faces []faceRec
	twins map[[2]VID]HID // directed (from,to) -> half-edge, for twin linking
}

// New returns an empty Mesh.
func New() *Mesh {
	return &Mesh{
		verts: make([]vertexRec, 1),
		edges: make([]halfEdgeRec, 1),
		faces: make([]faceRec, 1),
		twins: make(map[[2]VID]HID),
	}
}

// CreateVertex appends a new vertex at p and returns its handle.
func (m *Mesh) CreateVertex(p pointcloud.Point) VID {
	m.verts = append(m.verts, vertexRec{pos: p})

	return VID(len(m.verts) - 1)
}

// VertexPosition returns the position of v, or ErrVertexNotFound if v is
// out of range.
func (m *Mesh) VertexPosition(v VID) (pointcloud.Point, error) {
	if int(v) <= 0 || int(v) >= len(m.verts) {
		return pointcloud.Point{}, ErrVertexNotFound
	}

	return m.verts[v].pos, nil
}

// VertexCount returns the number of vertices created so far.
func (m *Mesh) VertexCount() int {
	return len(m.verts) - 1
}

// CreateFace adds a triangular face over (v0, v1, v2) in the given
// winding order, allocating three half-edges that form a Next-cycle of
// length 3 and linking each to its reverse-direction Twin if one already
// exists from an adjacent face.
func (m *Mesh) CreateFace(v0, v1, v2 VID) FID {
	h0 := m.allocEdge(v0)
	h1 := m.allocEdge(v1)
	h2 := m.allocEdge(v2)

	m.edges[h0].Next = h1
	m.edges[h1].Next = h2
	m.edges[h2].Next = h0

	m.faces = append(m.faces, faceRec{Edge: h0})
	f := FID(len(m.faces) - 1)
	m.edges[h0].Face = f
	m.edges[h1].Face = f
	m.edges[h2].Face = f

	m.linkTwin(h0, v0, v1)
	m.linkTwin(h1, v1, v2)
	m.linkTwin(h2, v2, v0)

	return f
}

func (m *Mesh) allocEdge(origin VID) HID {
	m.edges = append(m.edges, halfEdgeRec{Origin: origin})

	return HID(len(m.edges) - 1)
}

func (m *Mesh) linkTwin(h HID, from, to VID) {
	m.twins[[2]VID{from, to}] = h
	if rev, ok := m.twins[[2]VID{to, from}]; ok {
		m.edges[h].Twin = rev
		m.edges[rev].Twin = h
	}
}

// FaceCount returns the number of faces created so far.
func (m *Mesh) FaceCount() int {
	return len(m.faces) - 1
}

// Faces returns every face handle in creation order.
func (m *Mesh) Faces() []FID {
	out := make([]FID, 0, len(m.faces)-1)
	for i := 1; i < len(m.faces); i++ {
		out = append(out, FID(i))
	}

	return out
}

// FaceVertices returns the three vertices bounding face f, in winding
// order. Each returned vertex is the Origin of its respective half-edge
// (h0, h0.Next, h0.Next.Next), not the half-edge's destination.
func (m *Mesh) FaceVertices(f FID) (VID, VID, VID) {
	h0 := m.faces[f].Edge
	h1 := m.edges[h0].Next
	h2 := m.edges[h1].Next

	return m.edges[h0].Origin, m.edges[h1].Origin, m.edges[h2].Origin
}

// Triangles materializes every face as its three vertex positions, for
// export.
func (m *Mesh) Triangles() [][3]pointcloud.Point {
	out := make([][3]pointcloud.Point, 0, len(m.faces)-1)
	for _, f := range m.Faces() {
		a, b, c := m.FaceVertices(f)
		pa, _ := m.VertexPosition(a)
		pb, _ := m.VertexPosition(b)
		pc, _ := m.VertexPosition(c)
		out = append(out, [3]pointcloud.Point{pa, pb, pc})
	}

	return out
}

// Package core implements the neighborhood graph (NG): a thread-safe,
// undirected, unweighted graph over sample indices, built incrementally as
// the tangent-plane estimator gathers each sample's neighbors.
//
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - Collision-free atomic Edge.ID generation ("e1", "e2", ...)
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj) to minimize lock contention under concurrency
//   - Deterministic iteration: Vertices(), Edges(), NeighborIDs() all
//     return sorted results
//
// Core methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error
//	HasVertex(id string) bool
//	RemoveVertex(id string) error
//
//	// Edge lifecycle
//	AddEdge(from, to string) (edgeID string, err error)
//	RemoveEdge(edgeID string) error
//	HasEdge(from, to string) bool
//
//	// Query
//	Neighbors(id string) ([]*Edge, error)
//	NeighborIDs(id string) ([]string, error)
//	Vertices() []string
//	Edges() []*Edge
//	Degree(id string) (int, error)
//
//	// Maintenance
//	Clear()
//	CloneEmpty() *Graph
//	Clone() *Graph
//
// The orient package builds a separate per-component MST graph that holds
// one exterior pseudo-node (ID "N") for its orientation propagation; NG
// itself never contains that pseudo-node.
package core

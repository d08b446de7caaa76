// Package orient implements the orientation propagator (OP): per connected
// component of the neighborhood graph, it attaches an exterior pseudo-node
// to the component's highest sample, builds a minimum spanning tree under
// the normal-agreement weighting corr(i,j) = 2 - |ni . nj|, and walks that
// tree outward from the pseudo-node flipping any normal that disagrees
// with its already-oriented parent.
package orient

import (
	"errors"
	"strconv"

	"github.com/katalvlaran/surfrecon/algorithms"
	"github.com/katalvlaran/surfrecon/core"
	"github.com/katalvlaran/surfrecon/tangent"
)

// ErrDisconnectedAssertion signals an internal invariant failure: a vertex
// reachable during component discovery turned out not to be visitable
// during MST propagation. This should never happen for a component built
// directly from BFS's own reachable set.
var ErrDisconnectedAssertion = errors.New("orient: disconnected assertion failed")

// ErrUnorientedAfterPropagation signals that propagation finished without
// orienting every sample in a component — an internal invariant failure,
// since the MST spans every component vertex by construction.
var ErrUnorientedAfterPropagation = errors.New("orient: sample left unoriented after propagation")

// Report summarizes one Orient call for logging.
type Report struct {
	// Components is the number of connected components processed.
	Components int
	// ExteriorLinksUsed is the number of pseudo-node edges created, one
	// per component.
	ExteriorLinksUsed int
}

// Orient consistently orients every frame's normal in place. ng must be
// the neighborhood graph built by tangent.Estimate, keyed by decimal
// sample index "0".."len(frames)-1"; frames is mutated in place.
// Complexity: O(N log N + E log E) dominated by per-component MST sorting.
func Orient(ng *core.Graph, frames []tangent.Frame) (Report, error) {
	var report Report

	remaining := make(map[string]bool, len(frames))
	for i := range frames {
		remaining[strconv.Itoa(i)] = true
	}

	for len(remaining) > 0 {
		var seed string
		for id := range remaining {
			seed = id
			break
		}

		component, err := algorithms.BFS(ng, seed, nil)
		if err != nil {
			return report, err
		}
		for _, id := range component.Order {
			delete(remaining, id)
		}

		if err := orientComponent(ng, frames, component.Order); err != nil {
			return report, err
		}
		report.Components++
		report.ExteriorLinksUsed++
	}

	return report, nil
}

// maxZMember returns the member sample id (by decimal index) with the
// greatest Z coordinate, used to anchor the exterior pseudo-node.
func maxZMember(frames []tangent.Frame, members []string) string {
	best := members[0]
	bestZ := frameAt(frames, best).Origin.Z
	for _, id := range members[1:] {
		z := frameAt(frames, id).Origin.Z
		if z > bestZ {
			bestZ = z
			best = id
		}
	}

	return best
}

func frameAt(frames []tangent.Frame, id string) tangent.Frame {
	i, _ := strconv.Atoi(id)

	return frames[i]
}

// orientComponent builds the pseudo-node-augmented MST for one component
// and propagates orientation outward from the pseudo-node.
func orientComponent(ng *core.Graph, frames []tangent.Frame, members []string) error {
	pseudoID := "N" // never collides with a decimal sample index

	edges := make([]wEdge, 0, len(members))
	memberSet := make(map[string]bool, len(members))
	for _, id := range members {
		memberSet[id] = true
	}
	for _, m := range members {
		nbrs, err := ng.NeighborIDs(m)
		if err != nil {
			return err
		}
		for _, n := range nbrs {
			if !memberSet[n] || m >= n {
				continue // undirected edges appear from both endpoints; keep one copy
			}
			edges = append(edges, wEdge{From: m, To: n, Weight: corrWeight(m, n, pseudoID, frames)})
		}
	}

	anchor := maxZMember(frames, members)
	edges = append(edges, wEdge{From: pseudoID, To: anchor, Weight: corrWeight(pseudoID, anchor, pseudoID, frames)})

	mst := kruskalMST(edges)

	mstGraph := core.NewGraph()
	if err := mstGraph.AddVertex(pseudoID); err != nil {
		return err
	}
	for _, m := range members {
		if err := mstGraph.AddVertex(m); err != nil {
			return err
		}
	}
	for _, e := range mst {
		if _, err := mstGraph.AddEdge(e.From, e.To); err != nil {
			return err
		}
	}

	orientedCount, err := propagate(mstGraph, frames, pseudoID)
	if err != nil {
		return err
	}
	if orientedCount != len(members) {
		return ErrUnorientedAfterPropagation
	}

	return nil
}

// walkFrame is one explicit-stack entry for propagate, mirroring
// algorithms.DFS's frame pattern: components here can be as deep as the
// sample count, so propagation avoids recursion.
type walkFrame struct {
	id     string
	parent string
}

// propagate walks mstGraph outward from pseudoID, orienting the anchor
// sample to point toward +Z (the exterior convention) and every other
// sample to agree in sign with its MST parent's normal. Returns the count
// of real (non-pseudo) samples oriented.
func propagate(mstGraph *core.Graph, frames []tangent.Frame, pseudoID string) (int, error) {
	stack := []walkFrame{{id: pseudoID, parent: ""}}
	visited := make(map[string]bool)
	orientedCount := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[top.id] {
			continue
		}
		visited[top.id] = true

		if top.id != pseudoID {
			i, _ := strconv.Atoi(top.id)
			if top.parent == pseudoID {
				if frames[i].Normal().Z < 0 {
					frames[i].Flip()
				}
			} else {
				j, _ := strconv.Atoi(top.parent)
				if frames[i].Normal().Dot(frames[j].Normal()) < 0 {
					frames[i].Flip()
				}
			}
			orientedCount++
		}

		nbrs, err := mstGraph.NeighborIDs(top.id)
		if err != nil {
			return orientedCount, err
		}
		for _, n := range nbrs {
			if visited[n] {
				continue
			}
			stack = append(stack, walkFrame{id: n, parent: top.id})
		}
	}

	return orientedCount, nil
}

// # DFS — iterative Depth-First Search
//
// Orientation propagation walks the per-component MST from the exterior
// pseudo-node outward, flipping a sample's normal whenever it disagrees
// with its already-oriented parent. Components built from dense point
// clouds can be tens of thousands of nodes deep along a single branch, so
// this walks with an explicit stack rather than the call stack — recursion
// here would risk stack exhaustion on exactly the inputs this pipeline is
// meant to handle.
//
// Steps:
//  1. Validate start vertex.
//  2. Push (start, depth=0, parent=""); mark unvisited.
//  3. Pop; if already visited, skip (handles the same neighbor being
//     pushed more than once before being popped).
//  4. Mark visited, record depth/parent, append to Order, invoke OnVisit.
//  5. Push unvisited neighbors (children visited in reverse NeighborIDs
//     order, since a stack pops last-pushed-first — overall component
//     coverage is identical to recursive DFS, sibling order is reversed).
//  6. OnExit fires for a node once all of its neighbors have been
//     considered, i.e. right before it would be popped in a recursive
//     formulation — tracked via a second "departure" pass over the stack.
//
// Time complexity: O(V + E). Memory: O(V) for the explicit stack.
package algorithms

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/surfrecon/core"
)

// ErrDFSVertexNotFound is returned when the start vertex is absent.
var ErrDFSVertexNotFound = errors.New("algorithms: start vertex not found")

// DFSOptions configures the DFS traversal.
type DFSOptions struct {
	// Ctx allows cancellation; if nil, background context is used.
	Ctx context.Context
	// OnVisit(id, depth) is called when id is first visited.
	// Returning an error aborts traversal (id is in Order).
	OnVisit func(id string, depth int) error
	// OnExit(id, depth) is called after all descendants of id are processed.
	OnExit func(id string, depth int)
}

// DFSResult holds the outcome of a DFS traversal.
type DFSResult struct {
	// Order is the sequence of visited vertex IDs, pre-order.
	Order []string
	// Depth[id] = depth from start along the traversal tree.
	Depth map[string]int
	// Parent[id] = predecessor in the DFS tree.
	Parent map[string]string
	// Visited tracks reached vertices.
	Visited map[string]bool
}

// frame is one explicit-stack entry: either a node still to be visited, or
// (when departure is true) a marker that fires OnExit once the node's
// subtree has been fully processed.
type frame struct {
	id        string
	parent    string
	depth     int
	departure bool
}

// DFS performs an iterative depth-first search on g from startID.
// Returns ErrDFSVertexNotFound, a context cancellation error, or a wrapped
// OnVisit error.
// Complexity: O(V + E). Memory: O(V).
func DFS(g *core.Graph, startID string, opts *DFSOptions) (*DFSResult, error) {
	ctx := context.Background()
	if opts != nil && opts.Ctx != nil {
		ctx = opts.Ctx
	}

	res := &DFSResult{
		Order:   make([]string, 0),
		Depth:   make(map[string]int),
		Parent:  make(map[string]string),
		Visited: make(map[string]bool),
	}

	if !g.HasVertex(startID) {
		return res, ErrDFSVertexNotFound
	}

	stack := []frame{{id: startID, depth: 0}}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.departure {
			if opts != nil && opts.OnExit != nil {
				opts.OnExit(top.id, top.depth)
			}
			continue
		}
		if res.Visited[top.id] {
			continue
		}

		res.Visited[top.id] = true
		res.Depth[top.id] = top.depth
		if top.id != startID {
			res.Parent[top.id] = top.parent
		}
		res.Order = append(res.Order, top.id)
		if opts != nil && opts.OnVisit != nil {
			if err := opts.OnVisit(top.id, top.depth); err != nil {
				return res, fmt.Errorf("OnVisit error at %q: %w", top.id, err)
			}
		}

		// Push this node's departure marker first so it fires after all
		// of its (soon to be pushed) children have been fully processed.
		stack = append(stack, frame{id: top.id, depth: top.depth, departure: true})

		nbrIDs, err := g.NeighborIDs(top.id)
		if err != nil {
			return res, err
		}
		for _, nbr := range nbrIDs {
			if res.Visited[nbr] {
				continue
			}
			stack = append(stack, frame{id: nbr, parent: top.id, depth: top.depth + 1})
		}
	}

	return res, nil
}

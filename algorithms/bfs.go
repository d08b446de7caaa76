// Package algorithms implements traversals over core.Graph (the
// neighborhood graph): BFS for connected-component discovery ahead of
// per-component orientation, and an iterative DFS that walks a graph
// without recursion depth limits.
//
// # BFS — Breadth-First Search
//
// Steps:
//  1. Mark start visited, depth=0, enqueue; invoke OnEnqueue.
//  2. Loop until queue empty:
//     - dequeue (vertex, depth); invoke OnDequeue.
//     - append to Order; invoke OnVisit (abort on error).
//     - enqueue unvisited neighbors, recording Parent and depth+1.
//  3. Check context cancellation before each dequeue.
//
// Time complexity: O(V + E). Memory: O(V).
package algorithms

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/surfrecon/core"
)

// ErrStartVertexNotFound is returned when the start vertex does not exist.
var ErrStartVertexNotFound = errors.New("algorithms: start vertex not found")

// BFSOptions configures traversal behavior.
type BFSOptions struct {
	// Ctx allows cancellation; if nil, context.Background() is used.
	Ctx context.Context

	// OnEnqueue(id, depth) is called immediately after id is enqueued.
	OnEnqueue func(id string, depth int)
	// OnDequeue(id, depth) is called right after id is dequeued, before it
	// is visited.
	OnDequeue func(id string, depth int)
	// OnVisit(id, depth) is called when id is visited.
	// If it returns an error, traversal aborts (id is already in Order).
	OnVisit func(id string, depth int) error
}

// BFSResult holds the outcome of a BFS traversal.
type BFSResult struct {
	// Order is the sequence of visited vertex IDs.
	Order []string
	// Depth maps vertex ID -> distance (#edges) from start.
	Depth map[string]int
	// Parent maps vertex ID -> predecessor ID in the BFS tree.
	Parent map[string]string
	// Visited tracks which vertices have been reached.
	Visited map[string]bool
}

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// BFS performs a breadth-first search on g from startID using opts (nil
// for defaults). Returns ErrStartVertexNotFound, a context cancellation
// error, or a wrapped OnVisit error.
// Complexity: O(V + E). Memory: O(V).
func BFS(g *core.Graph, startID string, opts *BFSOptions) (*BFSResult, error) {
	ctx := context.Background()
	if opts != nil && opts.Ctx != nil {
		ctx = opts.Ctx
	}

	res := &BFSResult{
		Order:   make([]string, 0),
		Depth:   make(map[string]int),
		Parent:  make(map[string]string),
		Visited: make(map[string]bool),
	}

	if !g.HasVertex(startID) {
		return res, ErrStartVertexNotFound
	}

	res.Visited[startID] = true
	res.Depth[startID] = 0
	queue := []queueItem{{id: startID, depth: 0}}
	if opts != nil && opts.OnEnqueue != nil {
		opts.OnEnqueue(startID, 0)
	}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		item := queue[0]
		queue = queue[1:]
		if opts != nil && opts.OnDequeue != nil {
			opts.OnDequeue(item.id, item.depth)
		}

		res.Order = append(res.Order, item.id)
		if opts != nil && opts.OnVisit != nil {
			if err := opts.OnVisit(item.id, item.depth); err != nil {
				return res, fmt.Errorf("OnVisit error at %q: %w", item.id, err)
			}
		}

		nbrIDs, err := g.NeighborIDs(item.id)
		if err != nil {
			return res, err
		}
		for _, nbr := range nbrIDs {
			if res.Visited[nbr] {
				continue
			}
			res.Visited[nbr] = true
			res.Parent[nbr] = item.id
			d := item.depth + 1
			res.Depth[nbr] = d
			if opts != nil && opts.OnEnqueue != nil {
				opts.OnEnqueue(nbr, d)
			}
			queue = append(queue, queueItem{id: nbr, depth: d})
		}
	}

	return res, nil
}

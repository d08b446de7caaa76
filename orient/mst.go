package orient

import (
	"math"
	"sort"
	"strconv"

	"github.com/katalvlaran/surfrecon/tangent"
	"github.com/katalvlaran/surfrecon/unionfind"
)

// wEdge is one candidate edge for Kruskal's algorithm, weighted lazily by
// corrWeight rather than a stored field, since tangent-plane normals can
// still change up until the moment this MST is built.
type wEdge struct {
	From, To string
	Weight   float64
}

// corrWeight is the MST edge weight between two NG vertices: 2 -
// |ni . nj| for two real samples (1 for parallel or anti-parallel normals,
// rising to 2 for perpendicular), or the fixed weight 1 for any edge touching the exterior
// pseudo-node, which never carries a tangent frame of its own.
func corrWeight(from, to, pseudoID string, frames []tangent.Frame) float64 {
	if from == pseudoID || to == pseudoID {
		return 1
	}
	i, _ := strconv.Atoi(from)
	j, _ := strconv.Atoi(to)

	return 2 - math.Abs(frames[i].Normal().Dot(frames[j].Normal()))
}

// kruskalMST returns a minimum spanning forest restricted to the vertex
// set of a single connected component (so in practice, given a connected
// edge list, a minimum spanning tree). The sort is stable, so edges tied
// on weight keep their input order; union-find here is path-compression
// only, with no rank balancing.
func kruskalMST(edges []wEdge) []wEdge {
	sorted := make([]wEdge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight < sorted[j].Weight })

	uf := unionfind.New[string]()
	var mst []wEdge
	for _, e := range sorted {
		if uf.Equal(e.From, e.To) {
			continue
		}
		uf.Unify(e.From, e.To)
		mst = append(mst, e)
	}

	return mst
}

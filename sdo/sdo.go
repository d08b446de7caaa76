// Package sdo implements the signed-distance oracle (SDO): given a query
// point, it locates the nearest tangent-plane origin, projects the query
// onto that plane, and reports a signed distance — or reports the query
// as outside the reconstructable region via three ordered gates.
package sdo

import (
	"github.com/katalvlaran/surfrecon/pointcloud"
	"github.com/katalvlaran/surfrecon/spatial"
	"github.com/katalvlaran/surfrecon/tangent"
)

// Options configures the oracle's gating behavior.
type Options struct {
	// AABBMargin expands the sample bounding box before the first gate
	// (default 0.1).
	AABBMargin float64
	// GridDiagonalGate additionally rejects queries farther from their
	// nearest origin than 1.2x the spatial grid's cell diagonal. Off by
	// default: it is a stricter gate than most callers need, and doubles
	// as a way to keep isosurface extraction from reaching past the
	// resolution the grid can actually support.
	GridDiagonalGate bool
}

// DefaultOptions returns AABBMargin=0.1, GridDiagonalGate=false.
func DefaultOptions() Options {
	return Options{AABBMargin: 0.1}
}

// Result is one Eval outcome. A query that fails any gate reports
// Defined=false; Dist is meaningless in that case.
type Result struct {
	Dist    float64
	Defined bool
}

// Oracle evaluates the signed distance function implied by a set of
// oriented tangent frames.
type Oracle struct {
	frames          []tangent.Frame
	idx             *spatial.Index
	box             pointcloud.BoundingBox
	samplingDensity float64
	gridDiagonal    float64
	opts            Options
}

// NewOracle builds an Oracle over frames, indexing their origins for
// nearest-plane lookup. box is the sample bounding box (pre-expansion);
// samplingDensity and gridDiagonal parameterize gates 2 and 3.
func NewOracle(frames []tangent.Frame, box pointcloud.BoundingBox, samplingDensity, gridDiagonal float64, opts Options) *Oracle {
	if opts.AABBMargin == 0 {
		opts.AABBMargin = 0.1
	}
	idx := spatial.NewIndex(box, spatial.CellCount(len(frames)))
	for i, f := range frames {
		idx.Enter(i, f.Origin)
	}

	return &Oracle{
		frames:          frames,
		idx:             idx,
		box:             box,
		samplingDensity: samplingDensity,
		gridDiagonal:    gridDiagonal,
		opts:            opts,
	}
}

// Eval returns the signed distance from p to the nearest tangent plane,
// or Defined=false if p fails any of the three ordered gates:
//  1. p must lie within the sample bounding box expanded by AABBMargin,
//     and so must p's projection onto the nearest tangent plane.
//  2. p's projection onto the nearest tangent plane must lie within
//     samplingDensity of that plane's origin.
//  3. (optional) p itself must lie within 1.2x the grid diagonal of that
//     origin (compared as squared distances, hence the 1.44 factor below).
//
// Complexity: O(log n) amortized via the spatial index's best-first search.
func (o *Oracle) Eval(p pointcloud.Point) Result {
	if !o.box.Expand(o.opts.AABBMargin).Contains(p) {
		return Result{Defined: false}
	}

	cur := o.idx.Search(p)
	if cur.Done() {
		return Result{Defined: false}
	}
	nearest, err := cur.Next()
	if err != nil {
		return Result{Defined: false}
	}

	f := o.frames[nearest.ID]
	n := f.Normal()
	dis := p.Sub(f.Origin).Dot(n)
	proj := p.Sub(n.Scale(dis))

	if !o.box.Expand(o.opts.AABBMargin).Contains(proj) {
		return Result{Defined: false}
	}

	if proj.DistSq(f.Origin) > o.samplingDensity*o.samplingDensity {
		return Result{Defined: false}
	}

	if o.opts.GridDiagonalGate {
		threshold := 1.44 * o.gridDiagonal * o.gridDiagonal
		if p.DistSq(f.Origin) > threshold {
			return Result{Defined: false}
		}
	}

	return Result{Dist: dis, Defined: true}
}

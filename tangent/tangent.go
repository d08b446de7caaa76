// Package tangent implements the tangent-plane estimator (TPE): for each
// sample, gather a local neighborhood via the spatial index, insert
// co-visited pairs into the neighborhood graph, and fit a tangent frame by
// principal component analysis of the neighborhood's covariance.
package tangent

import (
	"math"
	"strconv"

	"github.com/katalvlaran/surfrecon/core"
	"github.com/katalvlaran/surfrecon/matrix"
	"github.com/katalvlaran/surfrecon/matrix/ops"
	"github.com/katalvlaran/surfrecon/pointcloud"
	"github.com/katalvlaran/surfrecon/spatial"
)

// Frame is the tangent-plane estimate at one sample: an orthonormal basis
// (E0, E1, E2) with E2 the surface normal, and Origin the neighborhood
// centroid. Tentative is set when the neighborhood was too small for a
// real PCA and a cardinal-axis substitute was used instead.
type Frame struct {
	E0, E1, E2 pointcloud.Point
	Origin     pointcloud.Point
	Tentative  bool
}

// Normal returns the frame's unit normal (E2).
func (f Frame) Normal() pointcloud.Point { return f.E2 }

// Flip negates the frame's normal in place, used by orientation
// propagation when a neighbor disagrees with its already-oriented parent.
func (f *Frame) Flip() { f.E2 = f.E2.Scale(-1) }

// Options configures neighborhood gathering.
type Options struct {
	// MinK and MaxK bound the neighborhood size (defaults 4 and 20).
	MinK, MaxK int
	// SamplingDensity is the radius past which gathering stops once MinK
	// neighbors have been found; +Inf means "always gather MaxK".
	SamplingDensity float64
}

// DefaultOptions returns MinK=4, MaxK=20, SamplingDensity=+Inf.
func DefaultOptions() Options {
	return Options{MinK: 4, MaxK: 20, SamplingDensity: math.Inf(1)}
}

// Stats reports degenerate-neighborhood occurrences for test assertions
// and warning logs.
type Stats struct {
	DegenerateCount int
}

// Estimate computes one Frame per point in cloud, inserting a neighborhood
// graph edge for every co-gathered pair. ng must be empty or already keyed
// by decimal sample index; idx must already contain every point in cloud
// entered under its integer index.
// Complexity: O(N * maxK log(maxK)) dominated by per-sample gathering and
// a constant-size (3x3) eigendecomposition.
func Estimate(cloud *pointcloud.Cloud, idx *spatial.Index, ng *core.Graph, opts Options) ([]Frame, Stats, error) {
	if opts.MinK <= 0 {
		opts = DefaultOptions()
	}
	densitySq := opts.SamplingDensity * opts.SamplingDensity

	frames := make([]Frame, len(cloud.Points))
	var stats Stats

	for i, p := range cloud.Points {
		if err := ng.AddVertex(strconv.Itoa(i)); err != nil {
			return nil, stats, err
		}

		neighborIDs, neighborPts, err := gather(idx, i, p, opts.MinK, opts.MaxK, densitySq)
		if err != nil {
			return nil, stats, err
		}

		for _, j := range neighborIDs {
			if j == i {
				continue
			}
			if _, err := ng.AddEdge(strconv.Itoa(i), strconv.Itoa(j)); err != nil {
				return nil, stats, err
			}
		}

		f, degenerate, err := fit(neighborPts, p)
		if err != nil {
			return nil, stats, err
		}
		if degenerate {
			stats.DegenerateCount++
		}
		frames[i] = f
	}

	return frames, stats, nil
}

// gather collects neighbor ids/points for sample i at position p, stopping
// at the first index k with k >= minK and dist²[k-1] > densitySq, capped
// at maxK.
func gather(idx *spatial.Index, i int, p pointcloud.Point, minK, maxK int, densitySq float64) ([]int, []pointcloud.Point, error) {
	cur := idx.Search(p)
	var ids []int
	var pts []pointcloud.Point
	for !cur.Done() && len(ids) < maxK {
		r, err := cur.Next()
		if err != nil {
			break
		}
		ids = append(ids, r.ID)
		pts = append(pts, samplePoint(idx, r.ID))
		if len(ids) >= minK && r.DistSq > densitySq {
			break
		}
	}

	return ids, pts, nil
}

// samplePoint recovers the position entered under id; used only to avoid
// a second lookup structure since Index already keeps it internally.
func samplePoint(idx *spatial.Index, id int) pointcloud.Point {
	return idx.PointOf(id)
}

// fit computes a tangent frame from neighborPts. If there are fewer than
// 3 neighbors, PCA is degenerate: a cardinal z-axis frame anchored at p is
// substituted and the tentative flag is set.
func fit(neighborPts []pointcloud.Point, p pointcloud.Point) (Frame, bool, error) {
	if len(neighborPts) < 3 {
		return Frame{
			E0:        pointcloud.Point{X: 1},
			E1:        pointcloud.Point{Y: 1},
			E2:        pointcloud.Point{Z: 1},
			Origin:    p,
			Tentative: true,
		}, true, nil
	}

	centroid := centroidOf(neighborPts)
	cov, err := covarianceOf(neighborPts, centroid)
	if err != nil {
		return Frame{}, false, err
	}

	eigvals, Q, err := ops.Eigen(cov, 1e-9, 100)
	if err != nil {
		return Frame{}, false, err
	}

	smallest := 0
	for k := 1; k < 3; k++ {
		if eigvals[k] < eigvals[smallest] {
			smallest = k
		}
	}
	order := []int{}
	for k := 0; k < 3; k++ {
		if k != smallest {
			order = append(order, k)
		}
	}
	if eigvals[order[0]] < eigvals[order[1]] {
		order[0], order[1] = order[1], order[0]
	}

	e0 := columnOf(Q, order[0])
	e1 := columnOf(Q, order[1])
	e2 := columnOf(Q, smallest)

	return Frame{E0: e0, E1: e1, E2: e2, Origin: centroid}, false, nil
}

func centroidOf(pts []pointcloud.Point) pointcloud.Point {
	var sum pointcloud.Point
	for _, p := range pts {
		sum = sum.Add(p)
	}

	return sum.Scale(1 / float64(len(pts)))
}

func covarianceOf(pts []pointcloud.Point, centroid pointcloud.Point) (matrix.Matrix, error) {
	cov, err := matrix.NewDense(3, 3)
	if err != nil {
		return nil, err
	}
	denom := float64(len(pts) - 1)
	for _, p := range pts {
		d := p.Sub(centroid)
		comps := [3]float64{d.X, d.Y, d.Z}
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				cur, _ := cov.At(a, b)
				_ = cov.Set(a, b, cur+comps[a]*comps[b]/denom)
			}
		}
	}

	return cov, nil
}

func columnOf(m matrix.Matrix, col int) pointcloud.Point {
	x, _ := m.At(0, col)
	y, _ := m.At(1, col)
	z, _ := m.At(2, col)

	return pointcloud.Point{X: x, Y: y, Z: z}
}

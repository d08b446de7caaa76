package tangent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/surfrecon/core"
	"github.com/katalvlaran/surfrecon/pointcloud"
	"github.com/katalvlaran/surfrecon/spatial"
)

func buildIndex(pts []pointcloud.Point) *spatial.Index {
	box := pointcloud.BoundingBox{}
	if len(pts) > 0 {
		box.Min, box.Max = pts[0], pts[0]
		for _, p := range pts {
			box.Min = pointcloud.Point{
				X: math.Min(box.Min.X, p.X),
				Y: math.Min(box.Min.Y, p.Y),
				Z: math.Min(box.Min.Z, p.Z),
			}
			box.Max = pointcloud.Point{
				X: math.Max(box.Max.X, p.X),
				Y: math.Max(box.Max.Y, p.Y),
				Z: math.Max(box.Max.Z, p.Z),
			}
		}
	}
	idx := spatial.NewIndex(box, spatial.CellCount(len(pts)))
	for i, p := range pts {
		idx.Enter(i, p)
	}

	return idx
}

func flatGrid() []pointcloud.Point {
	var pts []pointcloud.Point
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			pts = append(pts, pointcloud.Point{X: float64(x), Y: float64(y), Z: 0})
		}
	}

	return pts
}

func TestEstimate_PlanarNeighborhoodNormalIsVertical(t *testing.T) {
	pts := flatGrid()
	cloud := pointcloud.NewCloud("grid", pts)
	idx := buildIndex(pts)
	ng := core.NewGraph()

	frames, stats, err := Estimate(cloud, idx, ng, Options{MinK: 8, MaxK: 9, SamplingDensity: math.Inf(1)})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DegenerateCount)
	require.Len(t, frames, len(pts))

	center := 12 // the (2,2) grid point, fully surrounded
	n := frames[center].Normal()
	assert.InDelta(t, 1.0, math.Abs(n.Z), 1e-6)
	assert.False(t, frames[center].Tentative)
}

func TestEstimate_InsertsNeighborhoodGraphEdges(t *testing.T) {
	pts := flatGrid()
	cloud := pointcloud.NewCloud("grid", pts)
	idx := buildIndex(pts)
	ng := core.NewGraph()

	_, _, err := Estimate(cloud, idx, ng, Options{MinK: 8, MaxK: 9, SamplingDensity: math.Inf(1)})
	require.NoError(t, err)
	assert.Greater(t, ng.EdgeCount(), 0)
	assert.Equal(t, len(pts), ng.VertexCount())
}

func TestEstimate_DegenerateNeighborhoodBelowMinimum(t *testing.T) {
	pts := []pointcloud.Point{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}
	cloud := pointcloud.NewCloud("pair", pts)
	idx := buildIndex(pts)
	ng := core.NewGraph()

	frames, stats, err := Estimate(cloud, idx, ng, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.DegenerateCount)
	for _, f := range frames {
		assert.True(t, f.Tentative)
		assert.Equal(t, pointcloud.Point{Z: 1}, f.E2)
	}
}

func TestFrame_Flip(t *testing.T) {
	f := Frame{E2: pointcloud.Point{Z: 1}}
	f.Flip()
	assert.Equal(t, pointcloud.Point{Z: -1}, f.E2)
}

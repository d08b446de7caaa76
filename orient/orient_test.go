package orient

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/surfrecon/core"
	"github.com/katalvlaran/surfrecon/pointcloud"
	"github.com/katalvlaran/surfrecon/spatial"
	"github.com/katalvlaran/surfrecon/tangent"
)

func buildIndex(pts []pointcloud.Point) *spatial.Index {
	box := pointcloud.BoundingBox{}
	if len(pts) > 0 {
		box.Min, box.Max = pts[0], pts[0]
		for _, p := range pts {
			box.Min = pointcloud.Point{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y), Z: math.Min(box.Min.Z, p.Z)}
			box.Max = pointcloud.Point{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y), Z: math.Max(box.Max.Z, p.Z)}
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

func TestOrient_FlatGridConvergesToConsistentOrientation(t *testing.T) {
	pts := flatGrid()
	cloud := pointcloud.NewCloud("grid", pts)
	idx := buildIndex(pts)
	ng := core.NewGraph()

	frames, _, err := tangent.Estimate(cloud, idx, ng, tangent.Options{MinK: 8, MaxK: 9, SamplingDensity: math.Inf(1)})
	require.NoError(t, err)

	// Adversarially flip half the normals before orienting; propagation
	// must bring every sample back into sign agreement.
	for i := range frames {
		if i%2 == 0 {
			frames[i].Flip()
		}
	}

	report, err := Orient(ng, frames)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Components)

	sign := 0.0
	for _, f := range frames {
		s := f.Normal().Z
		if sign == 0 {
			sign = s
			continue
		}
		assert.Greater(t, s*sign, 0.0, "all normals in one flat component must end up co-oriented")
	}
}

func TestOrient_TwoDisjointComponents(t *testing.T) {
	pts := []pointcloud.Point{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		{X: 100, Y: 0, Z: 0}, {X: 101, Y: 0, Z: 0}, {X: 100, Y: 1, Z: 0}, {X: 101, Y: 1, Z: 0},
	}
	cloud := pointcloud.NewCloud("pair-of-clusters", pts)
	idx := buildIndex(pts)
	ng := core.NewGraph()

	frames, _, err := tangent.Estimate(cloud, idx, ng, tangent.Options{MinK: 3, MaxK: 4, SamplingDensity: 4})
	require.NoError(t, err)

	report, err := Orient(ng, frames)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Components)
	assert.Equal(t, 2, report.ExteriorLinksUsed)
}

package contour

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/surfrecon/pointcloud"
	"github.com/katalvlaran/surfrecon/sdo"
	"github.com/katalvlaran/surfrecon/tangent"
)

// sphereFrames builds n tangent frames directly on a unit sphere, with
// each normal equal to its own radial direction — the exact tangent
// plane of a sphere at that point, bypassing PCA/orientation entirely so
// the contouring test is isolated from upstream stages.
func sphereFrames(n int, radius float64) []tangent.Frame {
	frames := make([]tangent.Frame, 0, n)
	for i := 0; i < n; i++ {
		theta := math.Pi * (float64(i%10) + 0.5) / 10
		phi := 2 * math.Pi * float64(i) / float64(n)
		p := pointcloud.Point{
			X: radius * math.Sin(theta) * math.Cos(phi),
			Y: radius * math.Sin(theta) * math.Sin(phi),
			Z: radius * math.Cos(theta),
		}
		normal := p.Scale(1 / radius)
		frames = append(frames, tangent.Frame{Origin: p, E2: normal})
	}

	return frames
}

func TestContour3D_SphereProducesClosedishMesh(t *testing.T) {
	frames := sphereFrames(80, 2.0)
	box := pointcloud.BoundingBox{Min: pointcloud.Point{X: -2, Y: -2, Z: -2}, Max: pointcloud.Point{X: 2, Y: 2, Z: 2}}
	oracle := sdo.NewOracle(frames, box, 1.0, 0.3, sdo.Options{AABBMargin: 0.5})

	seeds := make([]pointcloud.Point, len(frames))
	for i, f := range frames {
		seeds[i] = f.Origin
	}

	c3 := NewContour3D(oracle, pointcloud.Point{X: -2.2, Y: -2.2, Z: -2.2}, 0.4)
	m := c3.Run(seeds)

	require.Greater(t, m.FaceCount(), 0)

	for _, tri := range m.Triangles() {
		for _, v := range tri {
			dist := v.Norm()
			assert.InDelta(t, 2.0, dist, 0.6)
		}
	}
}

func TestContour3D_EmptySeedsProducesEmptyMesh(t *testing.T) {
	frames := sphereFrames(20, 1.0)
	box := pointcloud.BoundingBox{Min: pointcloud.Point{X: -1, Y: -1, Z: -1}, Max: pointcloud.Point{X: 1, Y: 1, Z: 1}}
	oracle := sdo.NewOracle(frames, box, 1.0, 0.3, sdo.DefaultOptions())

	c3 := NewContour3D(oracle, pointcloud.Point{X: -1.2, Y: -1.2, Z: -1.2}, 0.3)
	m := c3.Run(nil)
	assert.Equal(t, 0, m.FaceCount())
}

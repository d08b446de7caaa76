package pointcloud

import (
	"math"
	"math/rand"
	"strconv"
)

// SynthSphere generates n points scattered uniformly over the surface of a
// unit sphere, named "sphere<n>". Grounded on the debug point-cloud
// generator that built sphere100k.pcd from random spherical coordinates.
func SynthSphere(n int, seed int64) *Cloud {
	r := rand.New(rand.NewSource(seed))
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		u := r.Float64()*2 - 1 // cos(theta), uniform in [-1,1] for uniform surface area
		theta := math.Acos(u)
		phi := r.Float64() * 2 * math.Pi
		sinTheta := math.Sin(theta)
		pts[i] = Point{
			X: sinTheta * math.Cos(phi),
			Y: sinTheta * math.Sin(phi),
			Z: math.Cos(theta),
		}
	}

	return NewCloud(syntheticName("sphere", n), pts)
}

// SynthCube generates n points scattered uniformly over the six faces of a
// unit cube centered at the origin (half-extent 0.5), named "cube<n>".
// Grounded on the debug point-cloud generator that built cube1m.pcd from
// random points distributed across the cube's six faces.
func SynthCube(n int, seed int64) *Cloud {
	r := rand.New(rand.NewSource(seed))
	const half = 0.5
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		face := r.Intn(6)
		u := r.Float64()*2*half - half
		v := r.Float64()*2*half - half
		switch face {
		case 0:
			pts[i] = Point{half, u, v}
		case 1:
			pts[i] = Point{-half, u, v}
		case 2:
			pts[i] = Point{u, half, v}
		case 3:
			pts[i] = Point{u, -half, v}
		case 4:
			pts[i] = Point{u, v, half}
		default:
			pts[i] = Point{u, v, -half}
		}
	}

	return NewCloud(syntheticName("cube", n), pts)
}

func syntheticName(prefix string, n int) string {
	return prefix + strconv.Itoa(n)
}

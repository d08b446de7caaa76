// Package pointcloud provides the external point-cloud input to the
// reconstruction pipeline: a Point type, a bounding box, a text parser for
// simple "x y z" per-line point-cloud files, and two synthetic generators
// used for smoke-testing the pipeline without a real scan.
package pointcloud

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrIOError wraps a missing or malformed input file.
var ErrIOError = errors.New("pointcloud: IO_ERROR")

// Point is an immutable 3D sample.
type Point struct {
	X, Y, Z float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p x q.
func (p Point) Cross(q Point) Point {
	return Point{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// DistSq returns the squared Euclidean distance between p and q.
func (p Point) DistSq(q Point) float64 {
	d := p.Sub(q)
	return d.Dot(d)
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// BoundingBox is an axis-aligned box covering a point set.
type BoundingBox struct {
	Min, Max Point
}

// Contains reports whether p lies within the box (inclusive bounds).
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Expand returns a copy of b grown by margin on every face.
func (b BoundingBox) Expand(margin float64) BoundingBox {
	m := Point{margin, margin, margin}
	return BoundingBox{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Diagonal returns the Euclidean length of the box's main diagonal.
func (b BoundingBox) Diagonal() float64 {
	return b.Max.Sub(b.Min).Norm()
}

// boundingBoxOf computes the minimal BoundingBox enclosing pts.
// Returns the zero BoundingBox if pts is empty.
func boundingBoxOf(pts []Point) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		bb.Min.X, bb.Max.X = math.Min(bb.Min.X, p.X), math.Max(bb.Max.X, p.X)
		bb.Min.Y, bb.Max.Y = math.Min(bb.Min.Y, p.Y), math.Max(bb.Max.Y, p.Y)
		bb.Min.Z, bb.Max.Z = math.Min(bb.Min.Z, p.Z), math.Max(bb.Max.Z, p.Z)
	}

	return bb
}

// Cloud is the parsed or synthesized input to the reconstruction pipeline.
type Cloud struct {
	Name   string
	Points []Point
	Box    BoundingBox
}

// NewCloud wraps points under name, computing its bounding box.
func NewCloud(name string, points []Point) *Cloud {
	return &Cloud{Name: name, Points: points, Box: boundingBoxOf(points)}
}

// ParsePCD reads a whitespace-delimited "x y z" per line point cloud from
// path. Blank lines and lines starting with '#' are skipped. The file's
// base name (sans extension) becomes the cloud's Name.
func ParsePCD(path string) (*Cloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointcloud.ParsePCD(%s): %w: %v", path, ErrIOError, err)
	}
	defer f.Close()

	var pts []Point
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("pointcloud.ParsePCD(%s): line %d: %w: expected 3 fields, got %d", path, lineNo, ErrIOError, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("pointcloud.ParsePCD(%s): line %d: %w: %v", path, lineNo, ErrIOError, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("pointcloud.ParsePCD(%s): line %d: %w: %v", path, lineNo, ErrIOError, err)
		}
		z, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("pointcloud.ParsePCD(%s): line %d: %w: %v", path, lineNo, ErrIOError, err)
		}
		pts = append(pts, Point{x, y, z})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pointcloud.ParsePCD(%s): %w: %v", path, ErrIOError, err)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("pointcloud.ParsePCD(%s): %w: no points parsed", path, ErrIOError)
	}

	name := strings.TrimSuffix(baseName(path), fileExt(path))

	return NewCloud(name, pts), nil
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func fileExt(path string) string {
	b := baseName(path)
	if i := strings.LastIndex(b, "."); i >= 0 {
		return b[i:]
	}
	return ""
}

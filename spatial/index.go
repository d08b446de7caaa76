// Package spatial implements the uniform-grid spatial index: a bucket grid
// over a bounding box supporting incremental insertion and lazy k-nearest-
// neighbor queries via a best-first search over cells and points, backed by
// container/heap so a caller can stop as soon as it has enough neighbors
// without exhausting the whole cursor.
package spatial

import (
	"container/heap"
	"errors"

	"github.com/katalvlaran/surfrecon/pointcloud"
)

// ErrCursorExhausted is returned by Next after Done reports true.
var ErrCursorExhausted = errors.New("spatial: cursor exhausted")

// CellCount chooses the grid resolution n (cells per axis, n^3 total)
// from the sample count: 20 for N<=5000, 36 for N<=100000, 60 otherwise.
func CellCount(n int) int {
	switch {
	case n <= 5000:
		return 20
	case n <= 100000:
		return 36
	default:
		return 60
	}
}

type cellKey [3]int

// Index is a uniform grid over a bounding box, bucketing inserted ids by
// the cell containing their position.
type Index struct {
	box      pointcloud.BoundingBox
	n        int
	cellSize pointcloud.Point
	cells    map[cellKey][]int
	points   map[int]pointcloud.Point
}

// NewIndex creates an empty Index with n cells per axis over box.
func NewIndex(box pointcloud.BoundingBox, n int) *Index {
	if n < 1 {
		n = 1
	}
	size := box.Max.Sub(box.Min)
	return &Index{
		box: box,
		n:   n,
		cellSize: pointcloud.Point{
			X: safeDiv(size.X, n),
			Y: safeDiv(size.Y, n),
			Z: safeDiv(size.Z, n),
		},
		cells:  make(map[cellKey][]int),
		points: make(map[int]pointcloud.Point),
	}
}

func safeDiv(v float64, n int) float64 {
	if v <= 0 {
		return 1
	}
	return v / float64(n)
}

// Enter inserts id at the cell containing p. No duplicate check: calling
// Enter twice for the same id inserts it twice.
func (idx *Index) Enter(id int, p pointcloud.Point) {
	idx.points[id] = p
	k := idx.cellOf(p)
	idx.cells[k] = append(idx.cells[k], id)
}

// PointOf returns the position entered under id, or the zero Point if id
// was never entered.
func (idx *Index) PointOf(id int) pointcloud.Point {
	return idx.points[id]
}

func (idx *Index) cellOf(p pointcloud.Point) cellKey {
	cx := idx.axisCell(p.X, idx.box.Min.X, idx.cellSize.X)
	cy := idx.axisCell(p.Y, idx.box.Min.Y, idx.cellSize.Y)
	cz := idx.axisCell(p.Z, idx.box.Min.Z, idx.cellSize.Z)
	return cellKey{cx, cy, cz}
}

func (idx *Index) axisCell(v, min, size float64) int {
	c := int((v - min) / size)
	if c < 0 {
		c = 0
	}
	if c >= idx.n {
		c = idx.n - 1
	}
	return c
}

// cellBounds returns the AABB of cell k.
func (idx *Index) cellBounds(k cellKey) pointcloud.BoundingBox {
	lo := pointcloud.Point{
		X: idx.box.Min.X + float64(k[0])*idx.cellSize.X,
		Y: idx.box.Min.Y + float64(k[1])*idx.cellSize.Y,
		Z: idx.box.Min.Z + float64(k[2])*idx.cellSize.Z,
	}
	hi := pointcloud.Point{X: lo.X + idx.cellSize.X, Y: lo.Y + idx.cellSize.Y, Z: lo.Z + idx.cellSize.Z}
	return pointcloud.BoundingBox{Min: lo, Max: hi}
}

// lowerBoundDistSq returns the squared distance from q to the nearest
// point of box b (0 if q is inside b).
func lowerBoundDistSq(q pointcloud.Point, b pointcloud.BoundingBox) float64 {
	dx := axisGap(q.X, b.Min.X, b.Max.X)
	dy := axisGap(q.Y, b.Min.Y, b.Max.Y)
	dz := axisGap(q.Z, b.Min.Z, b.Max.Z)
	return dx*dx + dy*dy + dz*dz
}

func axisGap(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}

func (idx *Index) neighbors(k cellKey) []cellKey {
	var out []cellKey
	deltas := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, d := range deltas {
		nk := cellKey{k[0] + d[0], k[1] + d[1], k[2] + d[2]}
		if nk[0] < 0 || nk[0] >= idx.n || nk[1] < 0 || nk[1] >= idx.n || nk[2] < 0 || nk[2] >= idx.n {
			continue
		}
		out = append(out, nk)
	}

	return out
}

// Result is one (id, squared-distance) pair yielded by a Cursor, in
// strictly non-decreasing dist² order.
type Result struct {
	ID     int
	DistSq float64
}

// entry is a heap item: either a cell (isPoint=false) carrying a lower
// bound on dist², or a concrete point (isPoint=true) carrying its exact
// dist² to the query.
type entry struct {
	key     float64
	isPoint bool
	id      int
	cell    cellKey
}

type entryHeap []entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Cursor is a lazy, incremental k-NN iterator seeded from one query point.
// Calling Next after Done reports true is a programming error and returns
// ErrCursorExhausted.
type Cursor struct {
	idx     *Index
	q       pointcloud.Point
	heap    entryHeap
	visited map[cellKey]bool
	done    bool
}

// Search returns a Cursor yielding ids near q in non-decreasing dist²
// order. The cursor is lazy: no work beyond seeding the starting cell
// happens until Next is called.
func (idx *Index) Search(q pointcloud.Point) *Cursor {
	c := &Cursor{idx: idx, q: q, visited: make(map[cellKey]bool)}
	start := idx.cellOf(q)
	c.pushCell(start)

	return c
}

func (c *Cursor) pushCell(k cellKey) {
	if c.visited[k] {
		return
	}
	c.visited[k] = true
	lb := lowerBoundDistSq(c.q, c.idx.cellBounds(k))
	heap.Push(&c.heap, entry{key: lb, isPoint: false, cell: k})
}

// Done reports whether the cursor has no more points to yield.
func (c *Cursor) Done() bool {
	c.settle()

	return len(c.heap) == 0
}

// Next returns the next-nearest (id, dist²) pair.
func (c *Cursor) Next() (Result, error) {
	c.settle()
	if len(c.heap) == 0 {
		return Result{}, ErrCursorExhausted
	}
	top := heap.Pop(&c.heap).(entry)

	return Result{ID: top.id, DistSq: top.key}, nil
}

// settle expands cells from the top of the heap until the top entry is a
// point or the heap is empty: each expanded cell pushes its points with
// exact dist² and its unvisited neighboring cells with their lower-bound dist².
func (c *Cursor) settle() {
	for len(c.heap) > 0 && !c.heap[0].isPoint {
		top := heap.Pop(&c.heap).(entry)
		for _, id := range c.idx.cells[top.cell] {
			p := c.idx.points[id]
			heap.Push(&c.heap, entry{key: p.DistSq(c.q), isPoint: true, id: id})
		}
		for _, nk := range c.idx.neighbors(top.cell) {
			c.pushCell(nk)
		}
	}
}

// Package reconstruct wires the pipeline stages — spatial index, tangent
// plane estimation, orientation propagation, the signed-distance oracle,
// and marching-tetrahedra contouring — into one synchronous batch run,
// and appends a per-run timing line to a text log in the format the
// original tool produced.
package reconstruct

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/katalvlaran/surfrecon/contour"
	"github.com/katalvlaran/surfrecon/core"
	"github.com/katalvlaran/surfrecon/mesh"
	"github.com/katalvlaran/surfrecon/orient"
	"github.com/katalvlaran/surfrecon/pointcloud"
	"github.com/katalvlaran/surfrecon/sdo"
	"github.com/katalvlaran/surfrecon/spatial"
	"github.com/katalvlaran/surfrecon/tangent"
)

// Options configures one pipeline run. The zero value is invalid; build
// one via DefaultOptions and the With* functions.
type Options struct {
	GridSize         int
	MinK, MaxK       int
	SamplingDensity  float64
	GridDiagonalGate bool
}

// Option mutates an Options in place, a functional-options pattern as
// used by core.GraphOption.
type Option func(*Options)

// DefaultOptions returns GridSize=0 (Run then derives it from N via
// spatial.CellCount unless WithGridSize sets it), MinK=4, MaxK=20,
// SamplingDensity=+Inf, GridDiagonalGate=false.
func DefaultOptions() Options {
	return Options{MinK: 4, MaxK: 20, SamplingDensity: math.Inf(1)}
}

// WithGridSize sets the contouring grid's cell count per axis.
func WithGridSize(n int) Option { return func(o *Options) { o.GridSize = n } }

// WithMinK sets the tangent-plane estimator's minimum neighborhood size.
func WithMinK(k int) Option { return func(o *Options) { o.MinK = k } }

// WithMaxK sets the tangent-plane estimator's maximum neighborhood size.
func WithMaxK(k int) Option { return func(o *Options) { o.MaxK = k } }

// WithSamplingDensity sets the neighborhood-gather termination radius.
func WithSamplingDensity(d float64) Option { return func(o *Options) { o.SamplingDensity = d } }

// WithGridDiagonalGate enables the oracle's optional third gate.
func WithGridDiagonalGate(on bool) Option { return func(o *Options) { o.GridDiagonalGate = on } }

// Result is the outcome of one Run.
type Result struct {
	Mesh         *mesh.Mesh
	OrientReport orient.Report
	Timing       Timing
}

// Timing records wall-clock seconds spent in each of the three
// dominant pipeline stages, for AppendTiming.
type Timing struct {
	TangentSeconds float64
	OrientSeconds  float64
	ContourSeconds float64
}

// Run executes SI -> TPE -> NG -> OP -> SDO -> CE -> HEM over cloud and
// returns the resulting mesh plus diagnostics. opts configure neighborhood
// sizing, grid resolution, and oracle gating.
func Run(cloud *pointcloud.Cloud, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.GridSize <= 0 {
		o.GridSize = spatial.CellCount(len(cloud.Points))
	}

	idx := spatial.NewIndex(cloud.Box, o.GridSize)
	for i, p := range cloud.Points {
		idx.Enter(i, p)
	}

	ng := core.NewGraph()

	tpStart := time.Now()
	frames, _, err := tangent.Estimate(cloud, idx, ng, tangent.Options{
		MinK:            o.MinK,
		MaxK:            o.MaxK,
		SamplingDensity: o.SamplingDensity,
	})
	if err != nil {
		return Result{}, fmt.Errorf("reconstruct.Run: tangent estimation: %w", err)
	}
	tpElapsed := time.Since(tpStart).Seconds()

	orientStart := time.Now()
	report, err := orient.Orient(ng, frames)
	if err != nil {
		return Result{}, fmt.Errorf("reconstruct.Run: orientation propagation: %w", err)
	}
	orientElapsed := time.Since(orientStart).Seconds()

	contourStart := time.Now()
	gridDiagonal := cloud.Box.Diagonal() / float64(o.GridSize)
	oracle := sdo.NewOracle(frames, cloud.Box, o.SamplingDensity, gridDiagonal, sdo.Options{
		GridDiagonalGate: o.GridDiagonalGate,
	})

	extent := cloud.Box.Max.Sub(cloud.Box.Min)
	step := math.Max(extent.X, math.Max(extent.Y, extent.Z)) / float64(o.GridSize)
	if step <= 0 {
		step = 1
	}
	seeds := make([]pointcloud.Point, len(frames))
	for i, f := range frames {
		seeds[i] = f.Origin
	}
	gridOrigin := cloud.Box.Expand(0.1).Min
	c3 := contour.NewContour3D(oracle, gridOrigin, step)
	m := c3.Run(seeds)
	contourElapsed := time.Since(contourStart).Seconds()

	return Result{
		Mesh:         m,
		OrientReport: report,
		Timing: Timing{
			TangentSeconds: tpElapsed,
			OrientSeconds:  orientElapsed,
			ContourSeconds: contourElapsed,
		},
	}, nil
}

// AppendTiming appends one timing line to the text log at path, creating
// it if necessary: "<name> false <N> <gridsize> <tp_sec> <orient_sec> <contour_sec>".
// The literal "false" is the debug-mode column, always false for a
// library-driven run.
func AppendTiming(path, name string, n, gridsize int, t Timing) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("reconstruct.AppendTiming(%s): %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%s false %d %d %f %f %f\n", name, n, gridsize, t.TangentSeconds, t.OrientSeconds, t.ContourSeconds); err != nil {
		return fmt.Errorf("reconstruct.AppendTiming(%s): %w", path, err)
	}

	return w.Flush()
}

// Package surfrecon reconstructs a triangular surface mesh from an
// unorganized 3D point cloud, following the Hoppe et al. pipeline.
//
// 🚀 What is surfrecon?
//
//	A batch reconstruction pipeline that takes a raw point cloud and
//	produces a closed(ish) triangle mesh, with no assumptions about
//	scan order, normals, or connectivity:
//
//	  • Spatial index    — uniform grid + lazy k-NN (spatial)
//	  • Tangent planes   — per-sample PCA normal estimation (tangent)
//	  • Orientation      — MST-based consistent normal flipping (orient)
//	  • Signed distance  — oracle over oriented tangent planes (sdo)
//	  • Contouring       — marching-tetrahedra isosurface extraction (contour)
//	  • Half-edge mesh   — integer-handle arena output (mesh)
//
// ✨ Design
//
//   - Batch, synchronous — one call in, one mesh out
//   - Thread-safe building blocks — core.Graph keeps the split
//     vertex/edge RWMutex discipline so callers may parallelize upstream
//   - Pure Go — no cgo, no GPU, no rendering
//
// Everything is organized under one subpackage per pipeline stage:
//
//	pointcloud/  — Point, BoundingBox, PCD parsing, synthetic generators
//	spatial/     — uniform-grid spatial index
//	tangent/     — tangent-plane estimator (PCA via matrix/ops.Eigen)
//	core/        — neighborhood graph (adapted thread-safe Graph)
//	orient/      — MST-based orientation propagator
//	sdo/         — signed-distance oracle
//	contour/     — marching-tetrahedra contouring engine
//	mesh/        — half-edge mesh arena
//	unionfind/   — disjoint-set forest shared by orient and contour
//	reconstruct/ — pipeline orchestrator + timing log
//	cmd/reconstruct/ — CLI entry point
//
// See reconstruct.Run for the end-to-end entry point.
package surfrecon

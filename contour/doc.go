// See contour.go for Contour3D, the marching-tetrahedra cube
// decomposition, and the flood-fill driven by Run/marchFrom.
package contour

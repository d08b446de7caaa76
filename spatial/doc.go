// See index.go for Index/Cursor and CellCount for the N-dependent grid
// resolution (20/36/60 cells per axis).
package spatial

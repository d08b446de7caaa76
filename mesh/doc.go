// See mesh.go for the VID/FID/HID arena handles and the half-edge
// invariant that Next composed three times returns to the starting edge.
package mesh

// See tangent.go for Frame, Options, and Estimate.
package tangent

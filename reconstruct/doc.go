// See reconstruct.go for Options/Option, Run, and AppendTiming.
package reconstruct

// Package algorithms implements traversals over the neighborhood graph
// (core.Graph):
//
//   - BFS discovers connected components before per-component orientation.
//   - DFS (iterative, explicit-stack) walks a graph without recursion;
//     orient's propagation walk uses the same explicit-stack pattern in
//     its own code rather than calling DFS.
//
// Both accept *core.Graph and return simple Go types; hookable options
// (BFSOptions, DFSOptions) let callers run logic during traversal.
package algorithms

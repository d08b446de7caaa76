// See orient.go for Orient/Report and mst.go for the Kruskal MST step.
package orient

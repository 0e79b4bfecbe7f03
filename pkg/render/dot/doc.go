// Package dot renders dataflow graphs as Graphviz diagrams.
//
// [ToDOT] turns a [flow.Graph] into DOT source where each node is a record
// showing its input ports above its label and its output ports below, and
// each connection is an arrow from an output field to an input field:
//
//	src := dot.ToDOT(g, dot.Options{Values: true, Ranks: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// With Values set, output fields also list the values the last compute
// pass produced. With Ranks set, nodes at the same topological level
// (see [dag.Levels]) share a row.
//
// Rendering runs Graphviz through go-graphviz and needs no external
// binaries.
package dot

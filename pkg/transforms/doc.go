// Package transforms provides ready-made [flow.Transform] implementations.
//
// Builtins are small named transforms backed by go-cty's standard function
// library (add, mul, upper, format, ...). [Lookup] finds one by name and
// [Builtin.Node] turns it into a node with the right ports.
//
// A [Program] is a transform written as HCL expressions, one per output:
//
//	p, err := transforms.Compile(map[string]string{"y": "x * 2 + offset"})
//	n := p.Node(map[string]cty.Value{"offset": cty.NumberIntVal(1)})
//
// Variables referenced by the expressions become the node's inputs; the
// functions in [Functions] are available to every expression.
package transforms

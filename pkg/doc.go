// Package pkg provides the libraries behind Stackflow, a synchronous
// dataflow engine.
//
// # Overview
//
// A dataflow graph is a set of nodes with named, typed input and output
// ports. Outputs are wired to inputs; evaluating the graph runs every node
// once, producers before consumers, and each node's transform once per
// aligned parameter set. The packages are organized as:
//
//  1. [flow] - Graph, Node and ports; evaluation and list-match broadcasting
//  2. [dag] - Topological sorting, cycle detection and levels
//  3. [transforms] - Builtin transforms and HCL expression transforms
//  4. [render/dot] - Graphviz DOT, SVG and PNG output
//  5. [ids], [errors], [observability], [buildinfo] - Supporting packages
//
// # Architecture
//
// The typical data flow through Stackflow:
//
//	Graph file (TOML) or Go code
//	         ↓
//	    [flow] package (nodes, ports, connections)
//	         ↓
//	    [dag] package (evaluation order)
//	         ↓
//	    [flow] package (resolve → broadcast → transform → publish)
//	         ↓
//	    Output values, table/JSON, DOT/SVG
//
// # Quick Start
//
// Build a two-node graph and compute it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/stackflow/pkg/flow"
//	    "github.com/matzehuels/stackflow/pkg/transforms"
//	    "github.com/zclconf/go-cty/cty"
//	)
//
//	c, _ := transforms.Lookup("const")
//	p, _ := transforms.Compile(map[string]string{"y": "x * 2"})
//
//	src := c.Node(map[string]cty.Value{"value": cty.NumberIntVal(5)})
//	double := p.Node(nil)
//
//	g := flow.NewGraph()
//	g.InsertNode(src)
//	g.InsertNode(double)
//	_ = src.Connect("out", double, "x")
//
//	if err := g.Compute(context.Background()); err != nil {
//	    return err
//	}
//	fmt.Println(flow.FormatValues(double.Values("y"))) // [10]
//
// # Error Handling
//
// Engine failures are [errors.Error] values with a machine-readable code
// (CYCLE_DETECTED, UNKNOWN_PORT, EMPTY_INPUT, ...). Use [errors.Is] to test
// the outermost code and [errors.Has] to search the whole chain.
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/flow
// [dag]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/dag
// [transforms]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/transforms
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/render/dot
// [ids]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/ids
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/errors
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/errors#Error
// [errors.Is]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/errors#Is
// [errors.Has]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/errors#Has
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stackflow/pkg/buildinfo
package pkg

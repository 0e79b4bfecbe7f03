// Package flow is a synchronous dataflow engine: a mutable graph of nodes
// whose typed ports are wired output-to-input, evaluated in one pass.
//
// # Building a Graph
//
// A [Node] has named input ports, named output ports and a [Transform].
// Inputs hold a default value used when nothing is connected:
//
//	double := flow.NewNode(
//	    map[string]*flow.InputPort{"x": flow.In(cty.NumberIntVal(5))},
//	    map[string]*flow.OutputPort{"y": flow.Out()},
//	    func(p flow.ParamSet) (flow.Result, error) {
//	        return flow.Result{"y": p["x"].Multiply(cty.NumberIntVal(2))}, nil
//	    },
//	)
//	g := flow.NewGraph()
//	g.InsertNode(double)
//	err := g.Compute(ctx) // double.Values("y") == [10]
//
// [Node.Connect] wires an output to another node's input. Edges are recorded
// on both ends and are never duplicated.
//
// # Evaluation
//
// [Graph.Compute] sorts the nodes topologically (producers first, see
// package dag) and evaluates each node once:
//
//  1. Resolve: every input becomes a sequence of values. A connected input
//     concatenates the values of its upstream outputs in connection order;
//     an unconnected input yields its default.
//  2. Broadcast: with L the longest sequence, L parameter sets are built and
//     set i takes element i mod len from each sequence. See [Broadcast].
//  3. Invoke: the transform runs once per parameter set.
//  4. Publish: each output's values become the per-set results, so every
//     output holds exactly L values.
//
// A pass either succeeds for every node or changes nothing.
//
// # Values
//
// Values are go-cty values. Each port declares a cty.Type; values are
// converted to it with cty's conversion rules, and values that cannot be
// converted fail with TYPE_MISMATCH. cty.DynamicPseudoType (the default for
// [In] and [Out]) accepts anything.
//
// # Errors
//
// Failures are *errors.Error values from package
// github.com/matzehuels/stackflow/pkg/errors carrying one of the codes
// CYCLE_DETECTED, UNKNOWN_NODE, UNKNOWN_PORT, MALFORMED_TRANSFORM_RESULT,
// EMPTY_INPUT, TYPE_MISMATCH or TRANSFORM_FAILED.
//
// # Cross Products
//
// [Node.UseCrossProduct] is reserved. Evaluating L1×L2×… parameter sets
// instead of broadcasting is not implemented and the flag is ignored.
//
// # Concurrency
//
// Graphs and nodes are not safe for concurrent use, and a graph must not be
// mutated during Compute. Only ID generation (package ids) is safe to use
// from several goroutines.
package flow

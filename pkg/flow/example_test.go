package flow_test

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/stackflow/pkg/flow"
	"github.com/matzehuels/stackflow/pkg/ids"
)

func show(vals []cty.Value) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.AsBigFloat().Text('f', -1)
	}
	return out
}

func Example() {
	double := flow.NewNode(
		map[string]*flow.InputPort{"x": flow.In(cty.NumberIntVal(5))},
		map[string]*flow.OutputPort{"y": flow.Out()},
		func(p flow.ParamSet) (flow.Result, error) {
			return flow.Result{"y": p["x"].Multiply(cty.NumberIntVal(2))}, nil
		},
	)

	g := flow.NewGraph()
	g.InsertNode(double)
	if err := g.Compute(context.Background()); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(show(double.Values("y")))
	// Output:
	// [10]
}

func ExampleBroadcast() {
	sets, _ := flow.Broadcast(map[string][]cty.Value{
		"a": {cty.NumberIntVal(1), cty.NumberIntVal(2)},
		"b": {cty.NumberIntVal(10), cty.NumberIntVal(20), cty.NumberIntVal(30)},
	})
	for _, ps := range sets {
		fmt.Println(show([]cty.Value{ps["a"], ps["b"]}))
	}
	// Output:
	// [1 10]
	// [2 20]
	// [1 30]
}

func ExampleNode_Connect() {
	src := ids.NewCounter(1)
	constant := func(v int64) *flow.Node {
		return flow.NewNode(nil,
			map[string]*flow.OutputPort{"out": flow.Out()},
			func(flow.ParamSet) (flow.Result, error) {
				return flow.Result{"out": cty.NumberIntVal(v)}, nil
			},
			flow.WithNodeIDs(src))
	}
	add := flow.NewNode(
		map[string]*flow.InputPort{"a": flow.In(cty.NumberIntVal(0)), "b": flow.In(cty.NumberIntVal(100))},
		map[string]*flow.OutputPort{"sum": flow.Out()},
		func(p flow.ParamSet) (flow.Result, error) {
			return flow.Result{"sum": p["a"].Add(p["b"])}, nil
		},
		flow.WithNodeIDs(src), flow.WithLabel("add"))

	g := flow.NewGraph(flow.WithIDs(src))
	g.InsertNode(add)
	for _, v := range []int64{1, 2, 3} {
		n := constant(v)
		g.InsertNode(n)
		if err := n.Connect("out", add, "a"); err != nil {
			fmt.Println(err)
			return
		}
	}

	order, _ := g.Sort()
	fmt.Println(order[len(order)-1].Label())
	if err := g.Compute(context.Background()); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(show(add.Values("sum")))
	// Output:
	// add
	// [101 102 103]
}

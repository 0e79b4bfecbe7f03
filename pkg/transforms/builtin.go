package transforms

import (
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/matzehuels/stackflow/pkg/errors"
	"github.com/matzehuels/stackflow/pkg/flow"
)

// Builtin is a named transform together with the ports it reads and writes.
type Builtin struct {
	Name    string
	Summary string
	Inputs  []string
	Outputs []string

	Transform flow.Transform
}

// Node builds a node for b. Inputs missing from defaults start out null and
// must be connected (or given a value) before the node computes.
func (b Builtin) Node(defaults map[string]cty.Value, opts ...flow.NodeOption) *flow.Node {
	inputs := make(map[string]*flow.InputPort, len(b.Inputs))
	for _, name := range b.Inputs {
		v, ok := defaults[name]
		if !ok {
			v = cty.NullVal(cty.DynamicPseudoType)
		}
		inputs[name] = flow.In(v)
	}
	outputs := make(map[string]*flow.OutputPort, len(b.Outputs))
	for _, name := range b.Outputs {
		outputs[name] = flow.Out()
	}
	return flow.NewNode(inputs, outputs, b.Transform, opts...)
}

var builtins = map[string]Builtin{
	"identity": {
		Name:    "identity",
		Summary: "forward in unchanged",
		Inputs:  []string{"in"},
		Outputs: []string{"out"},
		Transform: func(p flow.ParamSet) (flow.Result, error) {
			return flow.Result{"out": p["in"]}, nil
		},
	},
	"const": {
		Name:    "const",
		Summary: "emit the value input; set it with a default",
		Inputs:  []string{"value"},
		Outputs: []string{"out"},
		Transform: func(p flow.ParamSet) (flow.Result, error) {
			return flow.Result{"out": p["value"]}, nil
		},
	},
	"add":    call("add", "a + b", stdlib.AddFunc, "a", "b"),
	"sub":    call("sub", "a - b", stdlib.SubtractFunc, "a", "b"),
	"mul":    call("mul", "a * b", stdlib.MultiplyFunc, "a", "b"),
	"div":    call("div", "a / b", stdlib.DivideFunc, "a", "b"),
	"mod":    call("mod", "a % b", stdlib.ModuloFunc, "a", "b"),
	"min":    call("min", "smaller of a and b", stdlib.MinFunc, "a", "b"),
	"max":    call("max", "larger of a and b", stdlib.MaxFunc, "a", "b"),
	"upper":  call("upper", "upper-case in", stdlib.UpperFunc, "in"),
	"lower":  call("lower", "lower-case in", stdlib.LowerFunc, "in"),
	"format": call("format", "printf-style format of value", stdlib.FormatFunc, "format", "value"),
	"concat": {
		Name:    "concat",
		Summary: "a followed by b, as strings",
		Inputs:  []string{"a", "b"},
		Outputs: []string{"out"},
		Transform: func(p flow.ParamSet) (flow.Result, error) {
			v, err := stdlib.FormatFunc.Call([]cty.Value{cty.StringVal("%s%s"), p["a"], p["b"]})
			if err != nil {
				return nil, err
			}
			return flow.Result{"out": v}, nil
		},
	},
}

// call adapts a cty function to a single-output builtin. Inputs are passed
// as positional arguments in the order given.
func call(name, summary string, fn function.Function, inputs ...string) Builtin {
	return Builtin{
		Name:    name,
		Summary: summary,
		Inputs:  inputs,
		Outputs: []string{"out"},
		Transform: func(p flow.ParamSet) (flow.Result, error) {
			args := make([]cty.Value, len(inputs))
			for i, in := range inputs {
				args[i] = p[in]
			}
			v, err := fn.Call(args)
			if err != nil {
				return nil, err
			}
			return flow.Result{"out": v}, nil
		},
	}
}

// Lookup returns the builtin registered under name.
func Lookup(name string) (Builtin, error) {
	b, ok := builtins[name]
	if !ok {
		return Builtin{}, errors.New(errors.ErrCodeInvalidInput, "unknown transform %q (have %v)", name, Names())
	}
	return b, nil
}

// Names returns the registered builtin names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(builtins))
}

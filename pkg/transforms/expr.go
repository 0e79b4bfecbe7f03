package transforms

import (
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/matzehuels/stackflow/pkg/errors"
	"github.com/matzehuels/stackflow/pkg/flow"
)

// Program is a transform written as one HCL expression per output. Every
// variable the expressions reference becomes an input.
type Program struct {
	Inputs  []string
	Outputs []string

	exprs map[string]hcl.Expression
}

// Compile parses one expression per output name. Syntax errors fail with
// INVALID_FORMAT.
func Compile(exprs map[string]string) (*Program, error) {
	if len(exprs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "expression transform has no outputs")
	}

	p := &Program{exprs: make(map[string]hcl.Expression, len(exprs))}
	vars := make(map[string]bool)
	for _, out := range slices.Sorted(maps.Keys(exprs)) {
		if err := errors.ValidateName("output", out); err != nil {
			return nil, err
		}
		expr, diags := hclsyntax.ParseExpression([]byte(exprs[out]), out, hcl.Pos{Line: 1, Column: 1, Byte: 0})
		if diags.HasErrors() {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, diags, "output %q", out)
		}
		for _, trav := range expr.Variables() {
			vars[trav.RootName()] = true
		}
		p.exprs[out] = expr
		p.Outputs = append(p.Outputs, out)
	}
	p.Inputs = slices.Sorted(maps.Keys(vars))
	return p, nil
}

// Eval evaluates every output expression against one parameter set.
func (p *Program) Eval(ps flow.ParamSet) (flow.Result, error) {
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value(ps),
		Functions: Functions(),
	}
	res := make(flow.Result, len(p.exprs))
	for _, out := range p.Outputs {
		v, diags := p.exprs[out].Value(ctx)
		if diags.HasErrors() {
			return nil, diags
		}
		res[out] = v
	}
	return res, nil
}

// Node builds a node running p. Inputs missing from defaults start out
// null and must be connected or given a value.
func (p *Program) Node(defaults map[string]cty.Value, opts ...flow.NodeOption) *flow.Node {
	inputs := make(map[string]*flow.InputPort, len(p.Inputs))
	for _, name := range p.Inputs {
		v, ok := defaults[name]
		if !ok {
			v = cty.NullVal(cty.DynamicPseudoType)
		}
		inputs[name] = flow.In(v)
	}
	outputs := make(map[string]*flow.OutputPort, len(p.Outputs))
	for _, name := range p.Outputs {
		outputs[name] = flow.Out()
	}
	return flow.NewNode(inputs, outputs, p.Eval, opts...)
}

// Functions returns the functions available to expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"abs":       stdlib.AbsoluteFunc,
		"ceil":      stdlib.CeilFunc,
		"coalesce":  stdlib.CoalesceFunc,
		"floor":     stdlib.FloorFunc,
		"format":    stdlib.FormatFunc,
		"join":      stdlib.JoinFunc,
		"length":    stdlib.LengthFunc,
		"lower":     stdlib.LowerFunc,
		"max":       stdlib.MaxFunc,
		"min":       stdlib.MinFunc,
		"strlen":    stdlib.StrlenFunc,
		"substr":    stdlib.SubstrFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"upper":     stdlib.UpperFunc,
	}
}

package flow

import (
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/matzehuels/stackflow/pkg/errors"
)

// ParamSet is one aligned assignment of values to every input port of a
// node, keyed by input name. A transform is invoked once per ParamSet.
type ParamSet map[string]cty.Value

// Result maps output names to the values a transform produced for one
// ParamSet. It must cover every declared output of the node.
type Result map[string]cty.Value

// Transform is the pure function a node applies to each parameter set.
// Returning an error aborts the whole compute pass.
type Transform func(ParamSet) (Result, error)

// Endpoint identifies the port on the other side of a connection.
type Endpoint struct {
	NodeID  string
	ParamID string
}

// InputPort holds a default value and the upstream connections feeding it.
//
// Type is the declared value kind; values arriving through Value or through
// connections are converted to it. The zero Type accepts any value.
// Value is used only when the port has no connections.
type InputPort struct {
	Type        cty.Type
	Value       cty.Value
	Connections []Endpoint
}

// OutputPort holds the values produced by the last compute pass, one per
// parameter set, and the downstream connections reading them.
type OutputPort struct {
	Type        cty.Type
	Values      []cty.Value
	Connections []Endpoint
}

// In returns an input port accepting any value, defaulting to v.
func In(v cty.Value) *InputPort {
	return &InputPort{Type: cty.DynamicPseudoType, Value: v}
}

// TypedIn returns an input port of type t, defaulting to v.
func TypedIn(t cty.Type, v cty.Value) *InputPort {
	return &InputPort{Type: t, Value: v}
}

// Out returns an output port accepting any value.
func Out() *OutputPort {
	return &OutputPort{Type: cty.DynamicPseudoType}
}

// TypedOut returns an output port of type t.
func TypedOut(t cty.Type) *OutputPort {
	return &OutputPort{Type: t}
}

func (p *InputPort) clone() *InputPort {
	c := *p
	c.Connections = slices.Clone(p.Connections)
	return &c
}

func (p *OutputPort) clone() *OutputPort {
	c := *p
	c.Values = slices.Clone(p.Values)
	c.Connections = slices.Clone(p.Connections)
	return &c
}

// normalizeType maps the zero Type to cty.DynamicPseudoType.
func normalizeType(t cty.Type) cty.Type {
	if t == cty.NilType {
		return cty.DynamicPseudoType
	}
	return t
}

// normalizeValue maps the zero Value to a typed null.
func normalizeValue(v cty.Value, t cty.Type) cty.Value {
	if v.Type() == cty.NilType {
		return cty.NullVal(t)
	}
	return v
}

// conform converts v to t, reporting TYPE_MISMATCH on failure.
func conform(v cty.Value, t cty.Type, what string) (cty.Value, error) {
	out, err := convert.Convert(v, t)
	if err != nil {
		return cty.NilVal, errors.Wrap(errors.ErrCodeTypeMismatch, err,
			"%s: cannot use %s as %s", what, v.Type().FriendlyName(), t.FriendlyName())
	}
	return out, nil
}

// compatible reports whether values of type from can ever flow into to.
func compatible(from, to cty.Type) bool {
	return convert.GetConversionUnsafe(from, to) != nil
}

func removeEndpoint(eps []Endpoint, target Endpoint) []Endpoint {
	return slices.DeleteFunc(eps, func(e Endpoint) bool { return e == target })
}

package flow

import (
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/stackflow/pkg/errors"
)

// valuesFunc returns the values currently held by the output an endpoint
// names.
type valuesFunc func(ep Endpoint) ([]cty.Value, error)

// Broadcast aligns resolved input sequences into parameter sets.
//
// Let L be the length of the longest sequence. Broadcast returns L parameter
// sets; set i takes resolved[name][i mod len] for every input, so shorter
// sequences are reused cyclically (a single value is repeated for every set,
// two values alternate, and so on). With no inputs at all it returns exactly
// one empty parameter set.
//
// A zero-length sequence fails with EMPTY_INPUT.
func Broadcast(resolved map[string][]cty.Value) ([]ParamSet, error) {
	width := 0
	for _, name := range slices.Sorted(maps.Keys(resolved)) {
		vals := resolved[name]
		if len(vals) == 0 {
			return nil, errors.New(errors.ErrCodeEmptyInput, "input %q resolved to no values", name)
		}
		width = max(width, len(vals))
	}
	if width == 0 {
		return []ParamSet{{}}, nil
	}

	sets := make([]ParamSet, width)
	for i := range sets {
		set := make(ParamSet, len(resolved))
		for name, vals := range resolved {
			set[name] = vals[i%len(vals)]
		}
		sets[i] = set
	}
	return sets, nil
}

// Resolve returns, for every input, the sequence of values it would receive
// if the node were computed now: the concatenation of the upstream outputs'
// values in connection order, or the single default value when the input
// has no connections.
func (n *Node) Resolve() (map[string][]cty.Value, error) {
	return n.resolve(n.committedValues)
}

// ParamSets returns the aligned parameter sets the next [Node.Compute] would
// feed to the transform.
func (n *Node) ParamSets() ([]ParamSet, error) {
	resolved, err := n.Resolve()
	if err != nil {
		return nil, err
	}
	return Broadcast(resolved)
}

// Compute evaluates this node alone against the values its upstream nodes
// currently hold, then replaces the values of every output. On error the
// outputs are left unchanged.
//
// Graphs should be evaluated with [Graph.Compute], which orders nodes so
// producers run before consumers.
func (n *Node) Compute() error {
	staged, _, err := n.evaluate(n.committedValues)
	if err != nil {
		return err
	}
	n.publish(staged)
	return nil
}

func (n *Node) resolve(values valuesFunc) (map[string][]cty.Value, error) {
	resolved := make(map[string][]cty.Value, len(n.inputs))
	for name, in := range n.inputs {
		what := n.id + "." + name
		if len(in.Connections) == 0 {
			v, err := conform(in.Value, in.Type, what)
			if err != nil {
				return nil, err
			}
			resolved[name] = []cty.Value{v}
			continue
		}

		var seq []cty.Value
		for _, c := range in.Connections {
			upstream, err := values(c)
			if err != nil {
				return nil, err
			}
			for _, v := range upstream {
				cv, err := conform(v, in.Type, what)
				if err != nil {
					return nil, err
				}
				seq = append(seq, cv)
			}
		}
		resolved[name] = seq
	}
	return resolved, nil
}

// evaluate resolves, aligns and invokes the transform, returning the new
// output values without publishing them. The int is the number of
// parameter sets evaluated.
func (n *Node) evaluate(values valuesFunc) (map[string][]cty.Value, int, error) {
	resolved, err := n.resolve(values)
	if err != nil {
		return nil, 0, err
	}
	sets, err := Broadcast(resolved)
	if err != nil {
		return nil, 0, errors.Wrap(errors.GetCode(err), err, "node %s", n.id)
	}
	if n.transform == nil {
		return nil, 0, errors.New(errors.ErrCodeTransformFailed, "node %s has no transform", n.id)
	}

	staged := make(map[string][]cty.Value, len(n.outputs))
	for name := range n.outputs {
		staged[name] = make([]cty.Value, 0, len(sets))
	}
	for i, set := range sets {
		result, err := n.transform(set)
		if err != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeTransformFailed, err, "node %s, parameter set %d", n.id, i)
		}
		for _, name := range n.OutputNames() {
			out := n.outputs[name]
			v, ok := result[name]
			if !ok {
				return nil, 0, errors.New(errors.ErrCodeMalformedTransformResult,
					"node %s: transform result is missing output %q", n.id, name)
			}
			cv, err := conform(normalizeValue(v, out.Type), out.Type, n.id+"."+name)
			if err != nil {
				return nil, 0, err
			}
			staged[name] = append(staged[name], cv)
		}
	}
	return staged, len(sets), nil
}

func (n *Node) publish(staged map[string][]cty.Value) {
	for name, out := range n.outputs {
		out.Values = staged[name]
	}
}

// committedValues reads upstream values as published by the last pass.
func (n *Node) committedValues(ep Endpoint) ([]cty.Value, error) {
	if n.graph == nil {
		return nil, errors.New(errors.ErrCodeUnknownNode, "node %s is not in a graph; cannot resolve %s", n.id, ep.NodeID)
	}
	up, err := n.graph.NodeByID(ep.NodeID)
	if err != nil {
		return nil, err
	}
	out, ok := up.outputs[ep.ParamID]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownPort, "node %s has no output %q", up.id, ep.ParamID)
	}
	return out.Values, nil
}

package flow

import (
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/stackflow/pkg/errors"
	"github.com/matzehuels/stackflow/pkg/ids"
)

// Node is a unit of computation: named input ports, named output ports and
// a transform mapping one parameter set to one result.
//
// Connections are stored on both ends as [Endpoint] values naming the peer
// node by ID; peers are resolved through the owning [Graph] when needed.
// A Node belongs to at most one Graph at a time.
//
// Node is not safe for concurrent use.
type Node struct {
	// UseCrossProduct is reserved for a future alignment mode that would
	// evaluate the cross product of all input sequences instead of
	// broadcasting them. It is currently ignored.
	UseCrossProduct bool

	id        string
	label     string
	graph     *Graph
	inputs    map[string]*InputPort
	outputs   map[string]*OutputPort
	transform Transform
}

// NodeOption configures a Node at construction.
type NodeOption func(*nodeConfig)

type nodeConfig struct {
	ids   ids.Source
	label string
}

// WithNodeIDs mints the node ID from src instead of [ids.Default].
func WithNodeIDs(src ids.Source) NodeOption {
	return func(c *nodeConfig) { c.ids = src }
}

// WithLabel attaches a display name to the node. Labels are not unique and
// play no part in evaluation.
func WithLabel(label string) NodeOption {
	return func(c *nodeConfig) { c.label = label }
}

// NewNode creates a detached node with a freshly minted "node<N>" ID.
//
// The port maps are copied; later changes to the caller's maps or ports do
// not affect the node. Ports with the zero Type accept any value. An input
// with the zero Value defaults to null. Connections listed on the given
// ports are dropped; edges are only made with [Node.Connect].
func NewNode(inputs map[string]*InputPort, outputs map[string]*OutputPort, transform Transform, opts ...NodeOption) *Node {
	cfg := nodeConfig{ids: ids.Default}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := &Node{
		id:        cfg.ids.Next("node"),
		label:     cfg.label,
		inputs:    make(map[string]*InputPort, len(inputs)),
		outputs:   make(map[string]*OutputPort, len(outputs)),
		transform: transform,
	}
	for name, p := range inputs {
		in := p.clone()
		in.Connections = nil
		in.Type = normalizeType(in.Type)
		in.Value = normalizeValue(in.Value, in.Type)
		n.inputs[name] = in
	}
	for name, p := range outputs {
		out := p.clone()
		out.Connections = nil
		out.Type = normalizeType(out.Type)
		n.outputs[name] = out
	}
	return n
}

// ID returns the node's process-unique identifier.
func (n *Node) ID() string { return n.id }

// Label returns the display name, or the ID if no label was set.
func (n *Node) Label() string {
	if n.label == "" {
		return n.id
	}
	return n.label
}

// Graph returns the owning graph, or nil if the node is detached.
func (n *Node) Graph() *Graph { return n.graph }

// InputNames returns the input port names in sorted order.
func (n *Node) InputNames() []string { return slices.Sorted(maps.Keys(n.inputs)) }

// OutputNames returns the output port names in sorted order.
func (n *Node) OutputNames() []string { return slices.Sorted(maps.Keys(n.outputs)) }

// Input returns a copy of the named input port.
func (n *Node) Input(name string) (InputPort, bool) {
	p, ok := n.inputs[name]
	if !ok {
		return InputPort{}, false
	}
	return *p.clone(), true
}

// Output returns a copy of the named output port.
func (n *Node) Output(name string) (OutputPort, bool) {
	p, ok := n.outputs[name]
	if !ok {
		return OutputPort{}, false
	}
	return *p.clone(), true
}

// Values returns a copy of the values the named output produced in the last
// compute pass. It returns nil for unknown outputs and before the first pass.
func (n *Node) Values(name string) []cty.Value {
	p, ok := n.outputs[name]
	if !ok {
		return nil
	}
	return slices.Clone(p.Values)
}

// Connect adds a directed edge from this node's output paramID to target's
// input targetParamID. Both ends record the edge. Connecting an edge that
// already exists is a no-op.
//
// Connect fails with UNKNOWN_PORT if either port does not exist, with
// UNKNOWN_NODE if target is nil, and with TYPE_MISMATCH if the output's
// declared type can never convert to the input's.
func (n *Node) Connect(paramID string, target *Node, targetParamID string) error {
	out, in, err := n.edgePorts(paramID, target, targetParamID)
	if err != nil {
		return err
	}
	if !compatible(out.Type, in.Type) {
		return errors.New(errors.ErrCodeTypeMismatch, "cannot connect %s.%s (%s) to %s.%s (%s)",
			n.id, paramID, out.Type.FriendlyName(), target.id, targetParamID, in.Type.FriendlyName())
	}

	down := Endpoint{NodeID: target.id, ParamID: targetParamID}
	if slices.Contains(out.Connections, down) {
		return nil
	}
	out.Connections = append(out.Connections, down)
	in.Connections = append(in.Connections, Endpoint{NodeID: n.id, ParamID: paramID})
	return nil
}

// Disconnect removes the edge from output paramID to target's input
// targetParamID on both ends. Removing an edge that does not exist is a
// no-op; unknown ports fail with UNKNOWN_PORT.
func (n *Node) Disconnect(paramID string, target *Node, targetParamID string) error {
	out, in, err := n.edgePorts(paramID, target, targetParamID)
	if err != nil {
		return err
	}
	out.Connections = removeEndpoint(out.Connections, Endpoint{NodeID: target.id, ParamID: targetParamID})
	in.Connections = removeEndpoint(in.Connections, Endpoint{NodeID: n.id, ParamID: paramID})
	return nil
}

// IsConnected reports whether any output of this node feeds target's input
// targetParamID.
func (n *Node) IsConnected(target *Node, targetParamID string) bool {
	if target == nil {
		return false
	}
	want := Endpoint{NodeID: target.id, ParamID: targetParamID}
	for _, out := range n.outputs {
		if slices.Contains(out.Connections, want) {
			return true
		}
	}
	return false
}

// Connected returns the immediate downstream consumers of this node, each
// once, resolved through the owning graph. It fails with UNKNOWN_NODE if the
// node is detached while having outgoing connections, or if a consumer is
// not registered in the graph.
func (n *Node) Connected() ([]*Node, error) {
	childIDs := n.childIDs()
	if len(childIDs) == 0 {
		return nil, nil
	}
	if n.graph == nil {
		return nil, errors.New(errors.ErrCodeUnknownNode, "node %s is not in a graph", n.id)
	}
	children := make([]*Node, 0, len(childIDs))
	for _, id := range childIDs {
		c, err := n.graph.NodeByID(id)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, nil
}

// UpdateValue overwrites the default of input paramID. The default is used
// whenever the port has no connections at compute time.
func (n *Node) UpdateValue(paramID string, value cty.Value) error {
	in, ok := n.inputs[paramID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownPort, "node %s has no input %q", n.id, paramID)
	}
	v, err := conform(normalizeValue(value, in.Type), in.Type, n.id+"."+paramID)
	if err != nil {
		return err
	}
	in.Value = v
	return nil
}

// childIDs returns downstream node IDs, de-duplicated, in output-name then
// connection order.
func (n *Node) childIDs() []string {
	var childIDs []string
	seen := make(map[string]bool)
	for _, name := range n.OutputNames() {
		for _, c := range n.outputs[name].Connections {
			if !seen[c.NodeID] {
				seen[c.NodeID] = true
				childIDs = append(childIDs, c.NodeID)
			}
		}
	}
	return childIDs
}

func (n *Node) edgePorts(paramID string, target *Node, targetParamID string) (*OutputPort, *InputPort, error) {
	if target == nil {
		return nil, nil, errors.New(errors.ErrCodeUnknownNode, "connection target of %s.%s is nil", n.id, paramID)
	}
	out, ok := n.outputs[paramID]
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeUnknownPort, "node %s has no output %q", n.id, paramID)
	}
	in, ok := target.inputs[targetParamID]
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeUnknownPort, "node %s has no input %q", target.id, targetParamID)
	}
	return out, in, nil
}

// sever drops every connection between n and peers registered in g, on
// both ends. Edges toward peers g cannot resolve are kept on both ends, so
// connections stay symmetric.
func (n *Node) sever(g *Graph) {
	for name, out := range n.outputs {
		out.Connections = slices.DeleteFunc(out.Connections, func(c Endpoint) bool {
			peer, ok := g.nodes[c.NodeID]
			if !ok {
				return false
			}
			if in, ok := peer.inputs[c.ParamID]; ok {
				in.Connections = removeEndpoint(in.Connections, Endpoint{NodeID: n.id, ParamID: name})
			}
			return true
		})
	}
	for name, in := range n.inputs {
		in.Connections = slices.DeleteFunc(in.Connections, func(c Endpoint) bool {
			peer, ok := g.nodes[c.NodeID]
			if !ok {
				return false
			}
			if out, ok := peer.outputs[c.ParamID]; ok {
				out.Connections = removeEndpoint(out.Connections, Endpoint{NodeID: n.id, ParamID: name})
			}
			return true
		})
	}
}

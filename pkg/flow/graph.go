package flow

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/stackflow/pkg/dag"
	"github.com/matzehuels/stackflow/pkg/errors"
	"github.com/matzehuels/stackflow/pkg/ids"
	"github.com/matzehuels/stackflow/pkg/observability"
)

// Graph owns a registry of nodes and evaluates them in dependency order.
//
// The zero value is not usable - use [NewGraph]. Graph is not safe for
// concurrent use, and the graph must not be mutated while [Graph.Compute]
// is running (for example from inside a transform).
type Graph struct {
	id     string
	nodes  map[string]*Node
	order  []string // insertion order of node IDs
	logger *log.Logger
	hooks  observability.ComputeHooks
}

// GraphOption configures a Graph at construction.
type GraphOption func(*graphConfig)

type graphConfig struct {
	ids    ids.Source
	logger *log.Logger
	hooks  observability.ComputeHooks
}

// WithIDs mints the graph ID from src instead of [ids.Default].
func WithIDs(src ids.Source) GraphOption {
	return func(c *graphConfig) { c.ids = src }
}

// WithLogger sets the logger used for debug output. Defaults to log.Default().
func WithLogger(l *log.Logger) GraphOption {
	return func(c *graphConfig) { c.logger = l }
}

// WithHooks sets compute hooks for this graph, overriding the globally
// registered ones.
func WithHooks(h observability.ComputeHooks) GraphOption {
	return func(c *graphConfig) { c.hooks = h }
}

// NewGraph creates an empty graph with a freshly minted "graph<N>" ID.
func NewGraph(opts ...GraphOption) *Graph {
	cfg := graphConfig{ids: ids.Default}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	return &Graph{
		id:     cfg.ids.Next("graph"),
		nodes:  make(map[string]*Node),
		logger: cfg.logger,
		hooks:  cfg.hooks,
	}
}

// ID returns the graph's process-unique identifier.
func (g *Graph) ID() string { return g.id }

// Len returns the number of registered nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// InsertNode registers n and makes g its owner. Inserting a node that is
// already registered is a no-op. A node owned by another graph is removed
// from it first.
func (g *Graph) InsertNode(n *Node) {
	if n.graph != nil && n.graph != g {
		n.graph.RemoveNode(n)
	}
	if _, ok := g.nodes[n.id]; !ok {
		g.order = append(g.order, n.id)
	}
	g.nodes[n.id] = n
	n.graph = g
}

// RemoveNode unregisters n and detaches it. Every connection between n and
// nodes still registered in g is severed on both ends first, so no
// registered node is left pointing at n. Edges to nodes outside g are left
// intact on both ends. Removing a node that is not registered is a no-op.
func (g *Graph) RemoveNode(n *Node) {
	if cur, ok := g.nodes[n.id]; !ok || cur != n {
		return
	}
	n.sever(g)
	delete(g.nodes, n.id)
	g.order = slices.DeleteFunc(g.order, func(id string) bool { return id == n.id })
	n.graph = nil
}

// NodeByID returns the registered node with the given ID, or an
// UNKNOWN_NODE error.
func (g *Graph) NodeByID(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownNode, "node %s is not registered in graph %s", id, g.id)
	}
	return n, nil
}

// Lookup returns the registered node with the given ID and true, or nil
// and false. Use it for display; evaluation uses [Graph.NodeByID].
func (g *Graph) Lookup(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns the registered nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Sort returns the registered nodes ordered so that every producer comes
// before all of its consumers. It fails with CYCLE_DETECTED (wrapping
// [dag.ErrGraphHasCycle]) if the connections form a cycle, and with
// UNKNOWN_NODE if a connection points at an unregistered node.
func (g *Graph) Sort() ([]*Node, error) {
	order, err := dag.TopoSort(g.order, g.children)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeCycleDetected, err, "graph %s", g.id)
	}
	nodes := make([]*Node, len(order))
	for i, id := range order {
		nodes[i] = g.nodes[id]
	}
	return nodes, nil
}

// Levels sorts the graph and returns each node's level keyed by node ID:
// nodes without producers are level 0 and every consumer sits one level
// below its deepest producer. Nodes on one level do not depend on each
// other. It fails like [Graph.Sort].
func (g *Graph) Levels() (map[string]int, error) {
	order, err := g.Sort()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(order))
	for i, n := range order {
		ids[i] = n.id
	}
	return dag.Levels(ids, func(id string) []string {
		return g.nodes[id].childIDs()
	}), nil
}

// Compute re-evaluates every registered node once, producers before
// consumers.
//
// Compute is all-or-nothing. New output values are staged while the pass
// runs and published only after every node succeeded; a cycle or any node
// failure returns the error and leaves every output exactly as the last
// successful pass left it. The context carries no cancellation; it is
// passed to compute hooks.
func (g *Graph) Compute(ctx context.Context) (err error) {
	hooks := g.computeHooks()
	start := time.Now()
	hooks.OnComputeStart(ctx, g.id, len(g.nodes))
	defer func() {
		hooks.OnComputeComplete(ctx, g.id, len(g.nodes), time.Since(start), err)
	}()

	sortStart := time.Now()
	order, err := g.Sort()
	hooks.OnSortComplete(ctx, g.id, time.Since(sortStart), err)
	if err != nil {
		return err
	}
	g.logger.Debug("sorted graph", "graph", g.id, "nodes", len(order))

	staged := make(map[string]map[string][]cty.Value, len(order))
	values := func(ep Endpoint) ([]cty.Value, error) {
		if outs, ok := staged[ep.NodeID]; ok {
			if vals, ok := outs[ep.ParamID]; ok {
				return vals, nil
			}
			return nil, errors.New(errors.ErrCodeUnknownPort, "node %s has no output %q", ep.NodeID, ep.ParamID)
		}
		if _, ok := g.nodes[ep.NodeID]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "node %s is not registered in graph %s", ep.NodeID, g.id)
		}
		return nil, errors.New(errors.ErrCodeInternal, "node %s read before it was computed", ep.NodeID)
	}

	for _, n := range order {
		nodeStart := time.Now()
		outs, width, err := n.evaluate(values)
		hooks.OnNodeComputed(ctx, n.id, width, time.Since(nodeStart), err)
		if err != nil {
			g.logger.Debug("compute failed", "graph", g.id, "node", n.id, "err", err)
			return fmt.Errorf("compute %s: %w", n.Label(), err)
		}
		g.logger.Debug("computed node", "node", n.id, "label", n.label, "param_sets", width)
		staged[n.id] = outs
	}

	for _, n := range order {
		n.publish(staged[n.id])
	}
	g.logger.Debug("computed graph", "graph", g.id, "nodes", len(order), "duration", time.Since(start))
	return nil
}

func (g *Graph) children(id string) ([]string, error) {
	n, err := g.NodeByID(id)
	if err != nil {
		return nil, err
	}
	childIDs := n.childIDs()
	for _, c := range childIDs {
		if _, ok := g.nodes[c]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownNode, "node %s feeds %s, which is not registered in graph %s", id, c, g.id)
		}
	}
	return childIDs, nil
}

func (g *Graph) computeHooks() observability.ComputeHooks {
	if g.hooks != nil {
		return g.hooks
	}
	return observability.Compute()
}

// Package graphfile loads dataflow graphs described in TOML.
//
// A graph file lists nodes and the edges between their ports:
//
//	[[node]]
//	name = "width"
//	transform = "const"
//	inputs = { value = 3 }
//
//	[[node]]
//	name = "area"
//	expr = { out = "w * h" }
//	inputs = { h = 2 }
//
//	[[edge]]
//	from = "width.out"
//	to = "area.w"
//
// Each node has either a builtin transform (see package transforms) or an
// expr table mapping output names to HCL expressions. inputs sets port
// defaults. Edges name ports as "node.port".
package graphfile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/matzehuels/stackflow/pkg/errors"
	"github.com/matzehuels/stackflow/pkg/flow"
	"github.com/matzehuels/stackflow/pkg/ids"
	"github.com/matzehuels/stackflow/pkg/observability"
	"github.com/matzehuels/stackflow/pkg/transforms"
)

// File is the decoded form of a graph file.
type File struct {
	Nodes []NodeDecl `toml:"node"`
	Edges []EdgeDecl `toml:"edge"`
}

// NodeDecl declares one node.
type NodeDecl struct {
	Name      string            `toml:"name"`
	Transform string            `toml:"transform"`
	Expr      map[string]string `toml:"expr"`
	Inputs    map[string]any    `toml:"inputs"`
}

// EdgeDecl connects output From to input To, both "node.port".
type EdgeDecl struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Options configures how a file is turned into a graph.
type Options struct {
	// IDs mints node and graph IDs. Nil uses ids.Default.
	IDs ids.Source
	// Logger is handed to the graph. Nil uses log.Default().
	Logger *log.Logger
}

// Loaded is a built graph plus the file names of its nodes.
type Loaded struct {
	Graph *flow.Graph
	// Names lists node names in file order.
	Names []string

	nodes map[string]*flow.Node
	edges int
}

// Node returns the node declared as name.
func (l *Loaded) Node(name string) (*flow.Node, bool) {
	n, ok := l.nodes[name]
	return n, ok
}

// Port resolves a "node.port" reference.
func (l *Loaded) Port(ref string) (*flow.Node, string, error) {
	name, port, err := errors.SplitPortRef(ref)
	if err != nil {
		return nil, "", err
	}
	n, ok := l.nodes[name]
	if !ok {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "unknown node %q in %q", name, ref)
	}
	return n, port, nil
}

// Set overrides the default of the input named by ref.
func (l *Loaded) Set(ref string, v cty.Value) error {
	n, port, err := l.Port(ref)
	if err != nil {
		return err
	}
	return n.UpdateValue(port, v)
}

// Edges returns the number of edges the file declared.
func (l *Loaded) Edges() int { return l.edges }

// Decode reads a graph file from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q in graph file", undecoded[0].String())
	}
	return &f, nil
}

// Load reads, decodes and builds the graph file at path.
func Load(ctx context.Context, path string, opts Options) (l *Loaded, err error) {
	hooks := observability.Load()
	start := time.Now()
	hooks.OnLoadStart(ctx, path)
	defer func() {
		nodes, edges := 0, 0
		if l != nil {
			nodes, edges = l.Graph.Len(), l.edges
		}
		hooks.OnLoadComplete(ctx, path, nodes, edges, time.Since(start), err)
	}()

	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return f.Build(opts)
}

// Build turns the declarations into a graph. Node names must be unique and
// every node needs exactly one of transform or expr.
func (f *File) Build(opts Options) (*Loaded, error) {
	src := opts.IDs
	if src == nil {
		src = ids.Default
	}
	gopts := []flow.GraphOption{flow.WithIDs(src)}
	if opts.Logger != nil {
		gopts = append(gopts, flow.WithLogger(opts.Logger))
	}

	l := &Loaded{
		Graph: flow.NewGraph(gopts...),
		nodes: make(map[string]*flow.Node, len(f.Nodes)),
	}
	for i, decl := range f.Nodes {
		if err := errors.ValidateName("node", decl.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidName, err, "node %d", i)
		}
		if _, dup := l.nodes[decl.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node %q", decl.Name)
		}
		n, err := decl.build(flow.WithNodeIDs(src), flow.WithLabel(decl.Name))
		if err != nil {
			return nil, err
		}
		l.Graph.InsertNode(n)
		l.nodes[decl.Name] = n
		l.Names = append(l.Names, decl.Name)
	}

	for _, e := range f.Edges {
		from, out, err := l.Port(e.From)
		if err != nil {
			return nil, err
		}
		to, in, err := l.Port(e.To)
		if err != nil {
			return nil, err
		}
		if err := from.Connect(out, to, in); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "edge %s -> %s", e.From, e.To)
		}
		l.edges++
	}
	return l, nil
}

func (d NodeDecl) build(opts ...flow.NodeOption) (*flow.Node, error) {
	var n *flow.Node
	switch {
	case d.Transform != "" && len(d.Expr) > 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "node %q sets both transform and expr", d.Name)
	case d.Transform != "":
		b, err := transforms.Lookup(d.Transform)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", d.Name)
		}
		n = b.Node(nil, opts...)
	case len(d.Expr) > 0:
		p, err := transforms.Compile(d.Expr)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "node %q", d.Name)
		}
		n = p.Node(nil, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "node %q needs a transform or expr", d.Name)
	}

	for port, raw := range d.Inputs {
		v, err := ToValue(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q input %q", d.Name, port)
		}
		if err := n.UpdateValue(port, v); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "node %q", d.Name)
		}
	}
	return n, nil
}

// ToValue converts a decoded TOML value to a cty value. Tables become
// objects and arrays become tuples.
func ToValue(raw any) (cty.Value, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return cty.NilVal, err
	}
	ty, err := ctyjson.ImpliedType(b)
	if err != nil {
		return cty.NilVal, err
	}
	return ctyjson.Unmarshal(b, ty)
}

package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stackflow/pkg/errors"
	"github.com/matzehuels/stackflow/pkg/flow"
	"github.com/matzehuels/stackflow/pkg/observability"
)

// Options configures diagram generation.
type Options struct {
	// Values shows each output's current values next to its port name.
	Values bool
	// Ranks pins nodes of the same topological level to the same row.
	// Ignored when the graph has a cycle.
	Ranks bool
}

// ToDOT converts a graph to Graphviz DOT. Every node becomes a record with
// its inputs on top and its outputs at the bottom, and every connection
// between registered nodes an edge between the matching ports. The result
// can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *flow.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=Mrecord, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := g.Nodes()
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [label=%s];\n", n.ID(), quote(fmtRecord(n, opts.Values)))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for i, name := range n.OutputNames() {
			out, _ := n.Output(name)
			for _, c := range out.Connections {
				peer, ok := g.Lookup(c.NodeID)
				if !ok {
					continue
				}
				j := slices.Index(peer.InputNames(), c.ParamID)
				if j < 0 {
					continue
				}
				fmt.Fprintf(&buf, "  %q:%q -> %q:%q;\n", n.ID(), outField(i), c.NodeID, inField(j))
			}
		}
	}

	if opts.Ranks {
		writeRanks(&buf, g)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtRecord(n *flow.Node, values bool) string {
	var ins, outs []string
	for i, name := range n.InputNames() {
		ins = append(ins, fmt.Sprintf("<%s> %s", inField(i), escape(name)))
	}
	for i, name := range n.OutputNames() {
		label := escape(name)
		if values {
			label += escape(" = " + flow.FormatValues(n.Values(name)))
		}
		outs = append(outs, fmt.Sprintf("<%s> %s", outField(i), label))
	}

	parts := []string{}
	if len(ins) > 0 {
		parts = append(parts, "{"+strings.Join(ins, "|")+"}")
	}
	parts = append(parts, escape(n.Label()))
	if len(outs) > 0 {
		parts = append(parts, "{"+strings.Join(outs, "|")+"}")
	}
	return "{" + strings.Join(parts, "|") + "}"
}

func writeRanks(buf *bytes.Buffer, g *flow.Graph) {
	levels, err := g.Levels()
	if err != nil {
		return
	}

	rows := map[int][]string{}
	depth := 0
	for _, n := range g.Nodes() {
		l := levels[n.ID()]
		rows[l] = append(rows[l], n.ID())
		depth = max(depth, l)
	}
	buf.WriteString("\n")
	for l := 0; l <= depth; l++ {
		if len(rows[l]) < 2 {
			continue
		}
		quoted := make([]string, len(rows[l]))
		for i, id := range rows[l] {
			quoted[i] = strconv.Quote(id)
		}
		fmt.Fprintf(buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}
}

var recordSpecial = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`)

// escape protects backslashes and record metacharacters in a field label.
func escape(s string) string { return recordSpecial.Replace(s) }

// quote wraps a record label in DOT quotes. Unlike %q it keeps record
// escapes such as \{ intact.
func quote(s string) string { return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"` }

// inField and outField name record fields by port position, so distinct
// port names never share a field.
func inField(i int) string  { return "in" + strconv.Itoa(i) }
func outField(i int) string { return "out" + strconv.Itoa(i) }

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) (out []byte, err error) {
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, string(format))
	defer func() {
		hooks.OnRenderComplete(ctx, string(format), len(out), time.Since(start), err)
	}()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with one sized from
// the viewBox so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/matzehuels/stackflow/internal/graphfile"
	"github.com/matzehuels/stackflow/pkg/errors"
	"github.com/matzehuels/stackflow/pkg/flow"
	"github.com/matzehuels/stackflow/pkg/ids"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// runCommand creates the run command, which computes a graph file.
func (c *CLI) runCommand() *cobra.Command {
	var (
		sets    []string
		format  string
		uuidIDs bool
	)

	cmd := &cobra.Command{
		Use:   "run [graph.toml]",
		Short: "Compute a graph and print every output",
		Long: `Compute a graph and print every output.

The graph file is loaded, input defaults are overridden with --set, and every
node is evaluated once in dependency order. Each output prints the list of
values it produced, one per parameter set.

Values given to --set are read as HCL literals: 3 is a number, true a bool,
[1, 2] a tuple and "x" a string. Anything else is taken as a plain string.`,
		Example: `  stackflow run area.toml
  stackflow run area.toml --set width.value=10 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (use table or json)", format)
			}
			var src ids.Source
			if uuidIDs {
				src = ids.UUID{}
			}
			return c.runRun(cmd.Context(), cmd.OutOrStdout(), args[0], src, sets, format)
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "override an input default: node.port=value (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json")
	cmd.Flags().BoolVar(&uuidIDs, "uuid-ids", false, "mint node IDs as UUIDs instead of sequential numbers")

	return cmd
}

func (c *CLI) runRun(ctx context.Context, w io.Writer, path string, src ids.Source, sets []string, format string) error {
	logger := loggerFromContext(ctx)

	l, err := loadGraph(ctx, path, src)
	if err != nil {
		return err
	}
	for _, arg := range sets {
		ref, v, err := graphfile.ParseOverride(arg)
		if err != nil {
			return err
		}
		if err := l.Set(ref, v); err != nil {
			return fmt.Errorf("--set %s: %w", arg, err)
		}
		logger.Debug("override", "port", ref, "value", flow.FormatValue(v))
	}

	st := startStage(logger, "compute")
	spinner := newSpinner(ctx, os.Stderr, "Computing...")
	spinner.Start()
	err = l.Graph.Compute(ctx)
	spinner.Stop()
	if err != nil {
		st.failed(err)
		return fmt.Errorf("compute %s: %w", path, err)
	}
	st.done("Computed graph", "nodes", l.Graph.Len(), "edges", l.Edges())

	results := collectResults(l)
	if format == formatJSON {
		return writeResultsJSON(w, results)
	}
	writeResultsTable(w, results)
	return nil
}

// loadGraph loads a graph file with the context's logger attached to it.
// A nil src uses the process-wide counter.
func loadGraph(ctx context.Context, path string, src ids.Source) (*graphfile.Loaded, error) {
	logger := loggerFromContext(ctx)
	st := startStage(logger, "load")
	l, err := graphfile.Load(ctx, path, graphfile.Options{IDs: src, Logger: logger})
	if err != nil {
		st.failed(err)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logger.Debug("loaded graph", "path", path, "nodes", l.Graph.Len(), "edges", l.Edges(), "elapsed", st.elapsed())
	return l, nil
}

// nodeResult is one node's outputs after a compute pass.
type nodeResult struct {
	Name    string
	ID      string
	Outputs []outputResult
}

type outputResult struct {
	Name   string
	Values []cty.Value
}

// collectResults lists outputs in file order, then output-name order.
func collectResults(l *graphfile.Loaded) []nodeResult {
	results := make([]nodeResult, 0, len(l.Names))
	for _, name := range l.Names {
		n, _ := l.Node(name)
		r := nodeResult{Name: name, ID: n.ID()}
		for _, out := range n.OutputNames() {
			r.Outputs = append(r.Outputs, outputResult{Name: out, Values: n.Values(out)})
		}
		results = append(results, r)
	}
	return results
}

func writeResultsTable(w io.Writer, results []nodeResult) {
	var rows [][]string
	for _, r := range results {
		for _, out := range r.Outputs {
			rows = append(rows, []string{r.Name, out.Name, flow.FormatValues(out.Values)})
		}
	}
	printTable(w, []string{"Node", "Output", "Values"}, rows)
}

// jsonResult is the --format json shape of one node.
type jsonResult struct {
	Name    string                       `json:"name"`
	ID      string                       `json:"id"`
	Outputs map[string][]json.RawMessage `json:"outputs"`
}

func writeResultsJSON(w io.Writer, results []nodeResult) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		jr := jsonResult{Name: r.Name, ID: r.ID, Outputs: make(map[string][]json.RawMessage, len(r.Outputs))}
		for _, o := range r.Outputs {
			vals := make([]json.RawMessage, len(o.Values))
			for j, v := range o.Values {
				vals[j] = valueJSON(v)
			}
			jr.Outputs[o.Name] = vals
		}
		out[i] = jr
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"nodes": out})
}

// valueJSON encodes v with cty's JSON mapping; unknown values become null.
func valueJSON(v cty.Value) json.RawMessage {
	if v.IsNull() || !v.IsWhollyKnown() {
		return json.RawMessage("null")
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackflow/pkg/errors"
	"github.com/matzehuels/stackflow/pkg/render/dot"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// dotCommand creates the dot command, which draws a graph file.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output string
		format string
		opts   = dot.Options{Ranks: true}
	)

	cmd := &cobra.Command{
		Use:   "dot [graph.toml]",
		Short: "Draw a graph as Graphviz DOT, SVG or PNG",
		Long: `Draw a graph as Graphviz DOT, SVG or PNG.

Every node is drawn as a record with its inputs above and its outputs below.
With --values the graph is computed first and each output shows its values.

The format defaults to the extension of --output, or dot when writing to
stdout.`,
		Example: `  stackflow dot area.toml | dot -Tpdf > area.pdf
  stackflow dot area.toml --values -o area.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exportFormat(format, output)
			if err != nil {
				return err
			}
			return c.runDot(cmd.Context(), cmd.OutOrStdout(), args[0], output, f, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&opts.Values, "values", false, "compute the graph and show output values")
	cmd.Flags().BoolVar(&opts.Ranks, "ranks", opts.Ranks, "align nodes of the same level")

	return cmd
}

// exportFormat picks the format from the flag, else the output extension.
func exportFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" || format == "gv" {
			format = formatDOT
		}
	}
	switch format {
	case formatDOT, formatSVG, formatPNG:
		return format, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (use dot, svg or png)", format)
}

func (c *CLI) runDot(ctx context.Context, w io.Writer, path, output, format string, opts dot.Options) error {
	l, err := loadGraph(ctx, path, nil)
	if err != nil {
		return err
	}
	if opts.Values {
		if err := l.Graph.Compute(ctx); err != nil {
			return fmt.Errorf("compute %s: %w", path, err)
		}
	}

	st := startStage(loggerFromContext(ctx), "render")
	src := dot.ToDOT(l.Graph, opts)
	var data []byte
	switch format {
	case formatSVG:
		data, err = dot.RenderSVG(ctx, src)
	case formatPNG:
		data, err = dot.RenderPNG(ctx, src)
	default:
		data = []byte(src)
	}
	if err != nil {
		st.failed(err)
		return fmt.Errorf("render %s: %w", format, err)
	}
	st.done("Rendered graph", "format", format, "bytes", len(data))

	if output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess(w, "Wrote %s", format)
	printFile(w, output)
	return nil
}

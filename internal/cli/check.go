package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackflow/internal/graphfile"
	"github.com/matzehuels/stackflow/pkg/dag"
)

// checkCommand creates the check command, which validates a graph file
// without computing it.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [graph.toml]",
		Short: "Validate a graph and print its evaluation order",
		Long: `Validate a graph and print its evaluation order.

The graph file is loaded and sorted topologically. Each node is listed with
its level: sources are level 0 and every node sits one level below its
deepest producer. A cycle is reported with the nodes that form it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func (c *CLI) runCheck(ctx context.Context, w io.Writer, path string) error {
	l, err := loadGraph(ctx, path, nil)
	if err != nil {
		return err
	}

	order, err := l.Graph.Sort()
	if err != nil {
		var ce *dag.CycleError
		if errors.As(err, &ce) {
			printError(w, "cycle: %s", strings.Join(labels(l, ce.Path), " "+iconArrow+" "))
		}
		return fmt.Errorf("check %s: %w", path, err)
	}

	levels, err := l.Graph.Levels()
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}

	printSuccess(w, "%s is a valid graph", path)
	printStats(w, l.Graph.Len(), l.Edges())
	for i, n := range order {
		printDetail(w, "%d. %s (level %d)", i+1, n.Label(), levels[n.ID()])
	}
	return nil
}

// labels maps node IDs to the names used in the graph file.
func labels(l *graphfile.Loaded, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id
		if n, ok := l.Graph.Lookup(id); ok {
			out[i] = n.Label()
		}
	}
	return out
}

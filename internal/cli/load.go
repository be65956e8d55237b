package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/store"
)

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load line-oriented statements into the store",
		Long: `Load line-oriented statements into the store.

Each line is "subject predicate object [context] ." in N-Quads style.
Statements sharing a context are inserted together, one transaction per
context, so a failure rolls back that context's batch.

Example:
  quadrant load data.nq`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runLoad(cmd *cobra.Command, rootOpts *RootOptions, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	quads, err := rdf.ReadQuadruples(f)
	if err != nil {
		return err
	}

	return withStore(cmd, rootOpts, func(ctx context.Context, st store.Quadstore) error {
		for _, g := range groupByContext(quads) {
			if err := st.Merge(ctx, g); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %d statements\n", len(quads))
		return nil
	})
}

// groupByContext splits quadruples into per-context graphs, preserving
// first-seen context order.
func groupByContext(quads []*rdf.Quadruple) []*rdf.Graph {
	var order []string
	byCtx := map[string]*rdf.Graph{}
	for _, q := range quads {
		key := q.Context.String()
		g, ok := byCtx[key]
		if !ok {
			g = rdf.NewGraph(q.Context)
			byCtx[key] = g
			order = append(order, key)
		}
		g.Quadruples = append(g.Quadruples, q)
	}

	graphs := make([]*rdf.Graph, 0, len(order))
	for _, key := range order {
		graphs = append(graphs, byCtx[key])
	}
	return graphs
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quadrantdb/quadrant/internal/store"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &PatternFlags{}

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove quadruples matching a pattern",
		Long: `Remove quadruples matching a pattern.

Unset positions are wildcards; with no flags the whole store is cleared.
--object and --literal are mutually exclusive.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.Pattern()
			if err != nil {
				return err
			}
			return withStore(cmd, rootOpts, func(ctx context.Context, st store.Quadstore) error {
				return st.RemoveMatching(ctx, p)
			})
		},
	}
	flags.Register(cmd)
	return cmd
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "count",
		Short:         "Print the number of stored quadruples",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, rootOpts, func(ctx context.Context, st store.Quadstore) error {
				// -1 signals a failed read; surface it as-is, the way the
				// API does.
				fmt.Fprintln(cmd.OutOrStdout(), st.Count(ctx))
				return nil
			})
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Remove every stored quadruple",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, rootOpts, func(ctx context.Context, st store.Quadstore) error {
				return st.Clear(ctx)
			})
		},
	}
}

// NewOptimizeCommand creates the optimize command.
func NewOptimizeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "optimize",
		Short:         "Rebuild the store's secondary indexes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, rootOpts, func(ctx context.Context, st store.Quadstore) error {
				return st.Optimize(ctx)
			})
		},
	}
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/store"
)

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &PatternFlags{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select quadruples matching a pattern",
		Long: `Select quadruples matching a pattern.

Unset positions are wildcards; with no flags every stored quadruple is
returned. --object and --literal are mutually exclusive.

Example:
  quadrant select --subject http://example.org/s --predicate http://example.org/p`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, rootOpts, flags)
		},
	}
	flags.Register(cmd)
	return cmd
}

func runSelect(cmd *cobra.Command, rootOpts *RootOptions, flags *PatternFlags) error {
	p, err := flags.Pattern()
	if err != nil {
		return err
	}

	return withStore(cmd, rootOpts, func(ctx context.Context, st store.Quadstore) error {
		quads, err := st.SelectMatching(ctx, p)
		if err != nil {
			return err
		}

		if rootOpts.Format == "json" {
			return writeJSONQuads(cmd, quads)
		}
		return rdf.WriteQuadruples(cmd.OutOrStdout(), quads)
	})
}

func writeJSONQuads(cmd *cobra.Command, quads []*rdf.Quadruple) error {
	type jsonQuad struct {
		Context   string `json:"context"`
		Subject   string `json:"subject"`
		Predicate string `json:"predicate"`
		Object    string `json:"object"`
		Flavor    string `json:"flavor"`
	}

	out := make([]jsonQuad, 0, len(quads))
	for _, q := range quads {
		out = append(out, jsonQuad{
			Context:   q.Context.String(),
			Subject:   q.Subject.String(),
			Predicate: q.Predicate.String(),
			Object:    q.Object.String(),
			Flavor:    q.Flavor().String(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

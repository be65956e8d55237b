package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/store"
)

// withStore opens the configured backend, runs fn, and always closes the
// store afterwards.
func withStore(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, st store.Quadstore) error) error {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(ctx, st)
}

// PatternFlags collects the five optional pattern positions from command
// line flags. Context, subject, predicate, and object take IRIs; literal
// takes either a canonical literal form or a bare value.
type PatternFlags struct {
	Context   string
	Subject   string
	Predicate string
	Object    string
	Literal   string
}

// Register adds the pattern flags to a command.
func (f *PatternFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Context, "context", "", "context IRI")
	cmd.Flags().StringVar(&f.Subject, "subject", "", "subject IRI")
	cmd.Flags().StringVar(&f.Predicate, "predicate", "", "predicate IRI")
	cmd.Flags().StringVar(&f.Object, "object", "", "object IRI")
	cmd.Flags().StringVar(&f.Literal, "literal", "", `object literal ("value", "value"@lang, "value"^^<iri>, or a bare value)`)
}

// Pattern builds the pattern the flags describe. The object/literal
// conflict is left for the store to reject, so the CLI reports it the
// same way the API does.
func (f *PatternFlags) Pattern() (*pattern.Pattern, error) {
	p := &pattern.Pattern{}
	if f.Context != "" {
		p.Context = rdf.NewResource(f.Context)
	}
	if f.Subject != "" {
		p.Subject = rdf.NewResource(f.Subject)
	}
	if f.Predicate != "" {
		p.Predicate = rdf.NewResource(f.Predicate)
	}
	if f.Object != "" {
		p.Object = rdf.NewResource(f.Object)
	}
	if f.Literal != "" {
		lit, err := parseLiteralFlag(f.Literal)
		if err != nil {
			return nil, err
		}
		p.Literal = lit
	}
	return p, nil
}

func parseLiteralFlag(raw string) (*rdf.Literal, error) {
	if strings.HasPrefix(raw, `"`) {
		lit, err := rdf.ParseLiteral(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --literal: %w", err)
		}
		return lit, nil
	}
	return rdf.NewLiteral(raw), nil
}

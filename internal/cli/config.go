package cli

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/quadrantdb/quadrant/internal/store"
	"github.com/quadrantdb/quadrant/internal/store/neostore"
	"github.com/quadrantdb/quadrant/internal/store/sqlstore"
)

//go:embed schema.cue
var schemaCUE string

// Config selects and parameterizes a backend. Loaded from YAML and
// validated against the embedded CUE schema before any connection is
// attempted, so malformed configs fail with a schema error rather than a
// driver error.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DSN      string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	URI      string `json:"uri,omitempty" yaml:"uri,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
	Timeouts struct {
		Select string `json:"select,omitempty" yaml:"select,omitempty"`
		Insert string `json:"insert,omitempty" yaml:"insert,omitempty"`
		Delete string `json:"delete,omitempty" yaml:"delete,omitempty"`
	} `json:"timeouts,omitempty" yaml:"timeouts,omitempty"`
}

// LoadConfig reads, validates, and decodes a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cctx := cuecontext.New()
	schema := cctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}

	val := schema.Unify(cctx.Encode(raw))
	if err := val.Validate(cue.Concrete(false)); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Options converts the configured timeout strings.
func (c *Config) Options() (store.Options, error) {
	opts := store.DefaultOptions()
	for _, t := range []struct {
		raw  string
		dest *time.Duration
	}{
		{c.Timeouts.Select, &opts.SelectTimeout},
		{c.Timeouts.Insert, &opts.InsertTimeout},
		{c.Timeouts.Delete, &opts.DeleteTimeout},
	} {
		if t.raw == "" {
			continue
		}
		d, err := time.ParseDuration(t.raw)
		if err != nil {
			return opts, fmt.Errorf("invalid timeout %q: %w", t.raw, err)
		}
		*t.dest = d
	}
	return opts, nil
}

// OpenStore constructs the configured backend adapter.
func OpenStore(ctx context.Context, cfg *Config) (store.Quadstore, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case "sqlite":
		return sqlstore.Open(ctx, sqlstore.SQLiteDialect{}, cfg.DSN, opts)
	case "sqlserver":
		return sqlstore.Open(ctx, sqlstore.SQLServerDialect{}, cfg.DSN, opts)
	case "oracle":
		return sqlstore.Open(ctx, sqlstore.OracleDialect{}, cfg.DSN, opts)
	case "neo4j":
		return neostore.Open(ctx, neostore.Config{
			URI:      cfg.URI,
			Username: cfg.Username,
			Password: cfg.Password,
			Database: cfg.Database,
		}, opts)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

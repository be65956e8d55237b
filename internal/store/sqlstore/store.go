// Package sqlstore implements the quadruple store contract on relational
// engines through database/sql. One generic adapter carries the schema
// bootstrap, transaction discipline, and row materialization; the Dialect
// plug-ins supply only syntax.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/querygen"
	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/store"
)

// Store is a relational quadruple store. One instance owns one database
// handle; every write runs as its own committed transaction, every read
// as a plain query, and statements are built fresh per call.
type Store struct {
	db      *sql.DB
	dialect Dialect
	sql     *querygen.SQLCompiler
	opts    store.Options
	log     *slog.Logger
}

var _ store.Quadstore = (*Store)(nil)

// Open connects to the engine, verifies connectivity, and bootstraps the
// Quadruples schema. It fails fast: an empty connection string, an
// unreachable backend, or a failed bootstrap all prevent construction.
func Open(ctx context.Context, d Dialect, connStr string, opts store.Options) (*Store, error) {
	if connStr == "" {
		return nil, store.NewError(store.ErrCodeConfiguration, d.Name(), "",
			fmt.Errorf("connection string is empty"))
	}

	db, err := sql.Open(d.DriverName(), d.DSN(connStr))
	if err != nil {
		return nil, store.NewError(store.ErrCodeConnectivity, d.Name(), "",
			fmt.Errorf("open database: %w", err))
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, store.NewError(store.ErrCodeConnectivity, d.Name(), "",
			fmt.Errorf("connect: %w", err))
	}

	if err := d.Configure(db); err != nil {
		db.Close()
		return nil, store.NewError(store.ErrCodeConnectivity, d.Name(), "",
			fmt.Errorf("configure: %w", err))
	}

	for _, ddl := range d.SchemaDDL() {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			db.Close()
			return nil, store.NewError(store.ErrCodeConnectivity, d.Name(), "",
				fmt.Errorf("bootstrap schema: %w", err))
		}
	}

	return &Store{
		db:      db,
		dialect: d,
		sql:     querygen.NewSQLCompiler(d),
		opts:    opts,
		log:     slog.With("backend", d.Name()),
	}, nil
}

// Add stores one quadruple; re-adding is a silent no-op via the dialect's
// idempotent insert.
func (s *Store) Add(ctx context.Context, q *rdf.Quadruple) error {
	return s.execWrite(ctx, "insert", s.opts.InsertTimeout, s.sql.Insert(q))
}

// Merge inserts every quadruple of the graph inside one transaction, so a
// mid-batch failure rolls back the whole graph.
func (s *Store) Merge(ctx context.Context, g *rdf.Graph) error {
	if g == nil || g.Len() == 0 {
		return nil
	}

	opCtx, cancel := store.OpContext(ctx, s.opts.InsertTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(opCtx, nil)
	if err != nil {
		return store.NewError(store.ErrCodeStore, s.dialect.Name(), "insert",
			fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	for _, q := range g.Quadruples {
		stmt := s.sql.Insert(q)
		if _, err := tx.ExecContext(opCtx, stmt.SQL, stmt.Args...); err != nil {
			return store.NewError(store.ErrCodeStore, s.dialect.Name(), "insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return store.NewError(store.ErrCodeStore, s.dialect.Name(), "insert",
			fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Remove deletes one quadruple by exact match on all four positions.
func (s *Store) Remove(ctx context.Context, q *rdf.Quadruple) error {
	return s.RemoveMatching(ctx, pattern.FromQuadruple(q))
}

// RemoveMatching deletes every quadruple matching the pattern.
func (s *Store) RemoveMatching(ctx context.Context, p *pattern.Pattern) error {
	stmt, err := s.sql.Delete(p)
	if err != nil {
		return store.WrapPatternErr(s.dialect.Name(), "delete", err)
	}
	return s.execWrite(ctx, "delete", s.opts.DeleteTimeout, stmt)
}

// SelectMatching returns the stored quadruples matching the pattern,
// eagerly materialized. Rows whose literal fails to re-parse are skipped
// with a diagnostic, never aborting the scan.
func (s *Store) SelectMatching(ctx context.Context, p *pattern.Pattern) ([]*rdf.Quadruple, error) {
	stmt, err := s.sql.Select(p)
	if err != nil {
		return nil, store.WrapPatternErr(s.dialect.Name(), "select", err)
	}

	opCtx, cancel := store.OpContext(ctx, s.opts.SelectTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(opCtx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, store.NewError(store.ErrCodeStore, s.dialect.Name(), "select", err)
	}
	defer rows.Close()

	quads := []*rdf.Quadruple{}
	for rows.Next() {
		var (
			flavor                            int
			ctxStr, subjStr, predStr, objStr string
		)
		if err := rows.Scan(&flavor, &ctxStr, &subjStr, &predStr, &objStr); err != nil {
			return nil, store.NewError(store.ErrCodeStore, s.dialect.Name(), "select",
				fmt.Errorf("scan row: %w", err))
		}

		q, err := s.materialize(rdf.Flavor(flavor), ctxStr, subjStr, predStr, objStr)
		if err != nil {
			// Unparsable rows are treated as non-matches.
			s.log.Warn("skipping unparsable row", "object", objStr, "error", err)
			continue
		}
		quads = append(quads, q)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewError(store.ErrCodeStore, s.dialect.Name(), "select",
			fmt.Errorf("iterate rows: %w", err))
	}

	return quads, nil
}

// Contains reports whether the exact quadruple is stored, keyed by its
// QuadrupleID.
func (s *Store) Contains(ctx context.Context, q *rdf.Quadruple) (bool, error) {
	opCtx, cancel := store.OpContext(ctx, s.opts.SelectTimeout)
	defer cancel()

	stmt := s.sql.Exists(q)
	var count int64
	if err := s.db.QueryRowContext(opCtx, stmt.SQL, stmt.Args...).Scan(&count); err != nil {
		return false, store.NewError(store.ErrCodeStore, s.dialect.Name(), "contains", err)
	}
	return count > 0, nil
}

// Clear removes every quadruple.
func (s *Store) Clear(ctx context.Context) error {
	return s.RemoveMatching(ctx, nil)
}

// Count returns the number of stored quadruples, or -1 on any failure.
func (s *Store) Count(ctx context.Context) int64 {
	opCtx, cancel := store.OpContext(ctx, s.opts.SelectTimeout)
	defer cancel()

	stmt := s.sql.Count()
	var count int64
	if err := s.db.QueryRowContext(opCtx, stmt.SQL).Scan(&count); err != nil {
		s.log.Warn("count failed", "error", err)
		return -1
	}
	return count
}

// Optimize rebuilds the secondary indexes.
func (s *Store) Optimize(ctx context.Context) error {
	for _, ddl := range s.dialect.OptimizeDDL() {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return store.NewError(store.ErrCodeStore, s.dialect.Name(), "optimize", err)
		}
	}
	return nil
}

// Close releases the database handle. Safe to call multiple times.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// execWrite runs one statement inside its own transaction: begin,
// execute, commit, and on any failure roll back and surface a single
// wrapped error.
func (s *Store) execWrite(ctx context.Context, op string, timeout time.Duration, stmt querygen.Statement) error {
	opCtx, cancel := store.OpContext(ctx, timeout)
	defer cancel()

	tx, err := s.db.BeginTx(opCtx, nil)
	if err != nil {
		return store.NewError(store.ErrCodeStore, s.dialect.Name(), op,
			fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(opCtx, stmt.SQL, stmt.Args...); err != nil {
		return store.NewError(store.ErrCodeStore, s.dialect.Name(), op, err)
	}

	if err := tx.Commit(); err != nil {
		return store.NewError(store.ErrCodeStore, s.dialect.Name(), op,
			fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (s *Store) materialize(flavor rdf.Flavor, ctxStr, subjStr, predStr, objStr string) (*rdf.Quadruple, error) {
	contextTerm, err := rdf.ParseTerm(ctxStr)
	if err != nil {
		return nil, fmt.Errorf("context: %w", err)
	}
	subject, err := rdf.ParseTerm(subjStr)
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	predicate, err := rdf.ParseTerm(predStr)
	if err != nil {
		return nil, fmt.Errorf("predicate: %w", err)
	}

	var object rdf.Term
	if flavor == rdf.FlavorSPL {
		object, err = rdf.ParseLiteral(objStr)
	} else {
		object, err = rdf.ParseTerm(objStr)
	}
	if err != nil {
		return nil, fmt.Errorf("object: %w", err)
	}

	return rdf.NewQuadruple(contextTerm, subject, predicate, object)
}

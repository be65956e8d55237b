// Package neostore implements the quadruple store contract on Neo4j.
//
// Statements map onto a labeled property graph: subjects and resource
// objects are (:Resource {uri}) nodes, literal objects are
// (:Literal {value}) nodes, and each quadruple is one
// [:Property {uri, ctx}] relationship. All properties hold the terms'
// canonical string forms; Neo4j indexes strings, so unlike the relational
// adapters no numeric identifiers are stored.
package neostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/querygen"
	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/store"
)

const backendName = "neo4j"

// indexDDL creates the property indexes the pattern queries rely on.
// All statements are idempotent, so Optimize can re-assert them.
var indexDDL = []string{
	"CREATE INDEX resource_uri IF NOT EXISTS FOR (n:Resource) ON (n.uri)",
	"CREATE INDEX literal_value IF NOT EXISTS FOR (n:Literal) ON (n.value)",
	"CREATE INDEX property_uri IF NOT EXISTS FOR ()-[r:Property]-() ON (r.uri)",
	"CREATE INDEX property_ctx IF NOT EXISTS FOR ()-[r:Property]-() ON (r.ctx)",
}

// Config holds the connection parameters. The URI scheme selects the
// transport: bolt:// for a direct connection, neo4j:// for routing, with
// +s variants for TLS.
type Config struct {
	URI      string
	Username string
	Password string
	// Database selects a named database; empty means the server default.
	Database string
}

// Store is a Neo4j-backed quadruple store. The driver owns a connection
// pool; each operation runs in its own short-lived session.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	cypher   *querygen.CypherCompiler
	opts     store.Options
	log      *slog.Logger
	closed   bool
}

var _ store.Quadstore = (*Store)(nil)

// Open connects to the server, verifies connectivity, and creates the
// property indexes. Construction fails entirely on an empty URI, failed
// authentication, or failed bootstrap.
func Open(ctx context.Context, cfg Config, opts store.Options) (*Store, error) {
	if cfg.URI == "" {
		return nil, store.NewError(store.ErrCodeConfiguration, backendName, "",
			fmt.Errorf("connection URI is empty"))
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, store.NewError(store.ErrCodeConnectivity, backendName, "",
			fmt.Errorf("create driver: %w", err))
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, store.NewError(store.ErrCodeConnectivity, backendName, "",
			fmt.Errorf("connect: %w", err))
	}

	s := &Store{
		driver:   driver,
		database: cfg.Database,
		cypher:   querygen.NewCypherCompiler(),
		opts:     opts,
		log:      slog.With("backend", backendName),
	}

	if err := s.bootstrap(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, store.NewError(store.ErrCodeConnectivity, backendName, "",
			fmt.Errorf("bootstrap indexes: %w", err))
	}
	return s, nil
}

func (s *Store) bootstrap(ctx context.Context) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	for _, ddl := range indexDDL {
		if _, err := session.Run(ctx, ddl, nil); err != nil {
			return err
		}
	}
	return nil
}

// Add stores one quadruple. MERGE matches the whole pattern before
// creating, so duplicates are silently ignored.
func (s *Store) Add(ctx context.Context, q *rdf.Quadruple) error {
	return s.runWrite(ctx, "insert", s.opts.InsertTimeout, []querygen.CypherQuery{s.cypher.Insert(q)})
}

// Merge inserts every quadruple of the graph inside a single write
// transaction.
func (s *Store) Merge(ctx context.Context, g *rdf.Graph) error {
	if g == nil || g.Len() == 0 {
		return nil
	}
	queries := make([]querygen.CypherQuery, 0, g.Len())
	for _, q := range g.Quadruples {
		queries = append(queries, s.cypher.Insert(q))
	}
	return s.runWrite(ctx, "insert", s.opts.InsertTimeout, queries)
}

// Remove deletes one quadruple by exact match.
func (s *Store) Remove(ctx context.Context, q *rdf.Quadruple) error {
	return s.RemoveMatching(ctx, pattern.FromQuadruple(q))
}

// RemoveMatching deletes every Property relationship matching the
// pattern. Subject and object nodes stay; they may carry other
// statements.
func (s *Store) RemoveMatching(ctx context.Context, p *pattern.Pattern) error {
	queries, err := s.cypher.Delete(p)
	if err != nil {
		return store.WrapPatternErr(backendName, "delete", err)
	}
	return s.runWrite(ctx, "delete", s.opts.DeleteTimeout, queries)
}

// SelectMatching returns the stored quadruples matching the pattern. An
// unbound object position compiles to two queries (resource objects,
// literal objects) whose results are unioned here; the label sets are
// disjoint, so the union cannot duplicate.
func (s *Store) SelectMatching(ctx context.Context, p *pattern.Pattern) ([]*rdf.Quadruple, error) {
	queries, err := s.cypher.Select(p)
	if err != nil {
		return nil, store.WrapPatternErr(backendName, "select", err)
	}

	opCtx, cancel := store.OpContext(ctx, s.opts.SelectTimeout)
	defer cancel()

	session := s.session(opCtx)
	defer session.Close(opCtx)

	quads := []*rdf.Quadruple{}
	for _, q := range queries {
		batch, err := s.selectOne(opCtx, session, q)
		if err != nil {
			return nil, store.NewError(store.ErrCodeStore, backendName, "select", err)
		}
		quads = append(quads, batch...)
	}
	return quads, nil
}

func (s *Store) selectOne(ctx context.Context, session neo4j.SessionWithContext, q querygen.CypherQuery) ([]*rdf.Quadruple, error) {
	records, err := neo4j.ExecuteRead(ctx, session,
		func(tx neo4j.ManagedTransaction) ([]*neo4j.Record, error) {
			res, err := tx.Run(ctx, q.Text, q.Params)
			if err != nil {
				return nil, err
			}
			return res.Collect(ctx)
		})
	if err != nil {
		return nil, err
	}

	quads := make([]*rdf.Quadruple, 0, len(records))
	for _, rec := range records {
		quad, err := s.materialize(rec, q.Flavor)
		if err != nil {
			// Unparsable rows are treated as non-matches.
			s.log.Warn("skipping unparsable record", "error", err)
			continue
		}
		quads = append(quads, quad)
	}
	return quads, nil
}

// Contains reports whether the exact quadruple is stored.
func (s *Store) Contains(ctx context.Context, q *rdf.Quadruple) (bool, error) {
	opCtx, cancel := store.OpContext(ctx, s.opts.SelectTimeout)
	defer cancel()

	session := s.session(opCtx)
	defer session.Close(opCtx)

	query := s.cypher.Exists(q)
	present, err := neo4j.ExecuteRead(opCtx, session,
		func(tx neo4j.ManagedTransaction) (bool, error) {
			res, err := tx.Run(opCtx, query.Text, query.Params)
			if err != nil {
				return false, err
			}
			rec, err := res.Single(opCtx)
			if err != nil {
				return false, err
			}
			value, _ := rec.Get("present")
			b, ok := value.(bool)
			if !ok {
				return false, fmt.Errorf("unexpected result %T", value)
			}
			return b, nil
		})
	if err != nil {
		return false, store.NewError(store.ErrCodeStore, backendName, "contains", err)
	}
	return present, nil
}

// Clear removes every stored statement along with the term nodes, so
// repeated load/clear cycles cannot accumulate orphaned nodes.
func (s *Store) Clear(ctx context.Context) error {
	return s.runWrite(ctx, "delete", s.opts.DeleteTimeout, []querygen.CypherQuery{s.cypher.Clear()})
}

// Count returns the number of stored statements, or -1 on any failure.
func (s *Store) Count(ctx context.Context) int64 {
	opCtx, cancel := store.OpContext(ctx, s.opts.SelectTimeout)
	defer cancel()

	session := s.session(opCtx)
	defer session.Close(opCtx)

	query := s.cypher.Count()
	n, err := neo4j.ExecuteRead(opCtx, session,
		func(tx neo4j.ManagedTransaction) (int64, error) {
			res, err := tx.Run(opCtx, query.Text, query.Params)
			if err != nil {
				return 0, err
			}
			rec, err := res.Single(opCtx)
			if err != nil {
				return 0, err
			}
			value, _ := rec.Get("n")
			n, ok := value.(int64)
			if !ok {
				return 0, fmt.Errorf("unexpected result %T", value)
			}
			return n, nil
		})
	if err != nil {
		s.log.Warn("count failed", "error", err)
		return -1
	}
	return n
}

// Optimize re-asserts the property indexes; creation is idempotent and
// the server maintains them from there.
func (s *Store) Optimize(ctx context.Context) error {
	if err := s.bootstrap(ctx); err != nil {
		return store.NewError(store.ErrCodeStore, backendName, "optimize", err)
	}
	return nil
}

// Close releases the driver and its connection pool. Safe to call
// multiple times.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.driver.Close(context.Background())
}

func (s *Store) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
}

// runWrite executes the queries inside one managed write transaction:
// the driver commits on success and rolls back on any error.
func (s *Store) runWrite(ctx context.Context, op string, timeout time.Duration, queries []querygen.CypherQuery) error {
	opCtx, cancel := store.OpContext(ctx, timeout)
	defer cancel()

	session := s.session(opCtx)
	defer session.Close(opCtx)

	_, err := neo4j.ExecuteWrite(opCtx, session,
		func(tx neo4j.ManagedTransaction) (struct{}, error) {
			for _, q := range queries {
				if _, err := tx.Run(opCtx, q.Text, q.Params); err != nil {
					return struct{}{}, err
				}
			}
			return struct{}{}, nil
		})
	if err != nil {
		return store.NewError(store.ErrCodeStore, backendName, op, err)
	}
	return nil
}

func (s *Store) materialize(rec *neo4j.Record, flavor rdf.Flavor) (*rdf.Quadruple, error) {
	ctxStr, err := recordString(rec, "ctx")
	if err != nil {
		return nil, err
	}
	subjStr, err := recordString(rec, "subj")
	if err != nil {
		return nil, err
	}
	predStr, err := recordString(rec, "pred")
	if err != nil {
		return nil, err
	}
	objStr, err := recordString(rec, "obj")
	if err != nil {
		return nil, err
	}

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

func recordString(rec *neo4j.Record, key string) (string, error) {
	value, ok := rec.Get(key)
	if !ok {
		return "", fmt.Errorf("record missing %q", key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("record field %q is %T, want string", key, value)
	}
	return s, nil
}

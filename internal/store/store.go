// Package store defines the backend-independent quadruple store contract,
// its configuration, and the error taxonomy shared by all adapters.
package store

import (
	"context"
	"time"

	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/rdf"
)

// Quadstore is the uniform surface every backend adapter implements.
//
// Every operation is a synchronous unit of work over the adapter's single
// connection (or session factory). Adapters add no locking of their own:
// callers sharing one instance must serialize calls, or use separate
// instances.
type Quadstore interface {
	// Add stores one quadruple. Inserting a quadruple that is already
	// present is a silent no-op: storage is keyed by the deterministic
	// QuadrupleID.
	Add(ctx context.Context, q *rdf.Quadruple) error

	// Merge stores all quadruples of a graph inside a single transaction.
	// A mid-batch failure rolls back the entire graph's insertions.
	Merge(ctx context.Context, g *rdf.Graph) error

	// Remove deletes one quadruple by exact match.
	Remove(ctx context.Context, q *rdf.Quadruple) error

	// RemoveMatching deletes every quadruple matching the pattern. A nil
	// pattern (or one with no bound positions) clears the store.
	RemoveMatching(ctx context.Context, p *pattern.Pattern) error

	// SelectMatching returns every stored quadruple matching the pattern,
	// eagerly materialized. Rows whose literal no longer parses are
	// skipped, not errors.
	SelectMatching(ctx context.Context, p *pattern.Pattern) ([]*rdf.Quadruple, error)

	// Contains reports whether the exact quadruple is stored. Absence is
	// not an error; only connectivity or driver failures are.
	Contains(ctx context.Context, q *rdf.Quadruple) (bool, error)

	// Clear removes every quadruple.
	Clear(ctx context.Context) error

	// Count returns the number of stored quadruples, or -1 on any read
	// failure. This is the one deliberately soft read: it never returns
	// an error.
	Count(ctx context.Context) int64

	// Optimize rebuilds or reorganizes the backend's secondary indexes.
	// Purely a performance hook, no data semantics.
	Optimize(ctx context.Context) error

	// Close releases the connection or driver handle. Idempotent.
	Close() error
}

// Options bounds the per-statement execution time of each operation kind.
// A zero duration means no bound beyond the driver's own.
type Options struct {
	SelectTimeout time.Duration
	InsertTimeout time.Duration
	DeleteTimeout time.Duration
}

// DefaultOptions leaves every operation unbounded, matching the behavior
// of a driver with no statement timeout configured.
func DefaultOptions() Options {
	return Options{}
}

// OpContext applies an operation timeout to ctx if one is configured.
// The returned cancel func must always be called.
func OpContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

package neostore

import (
	"context"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/store"
)

func TestOpenEmptyURI(t *testing.T) {
	_, err := Open(context.Background(), Config{}, store.DefaultOptions())
	require.Error(t, err)
	assert.True(t, store.IsConfiguration(err))
}

// openLiveStore connects to the instance named by NEO4J_URI, or skips.
// Run a throwaway server first, e.g.:
//
//	docker run --rm -p 7687:7687 -e NEO4J_AUTH=neo4j/password neo4j:5
//	NEO4J_URI=neo4j://localhost:7687 NEO4J_PASSWORD=password go test ./internal/store/neostore/
func openLiveStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI not set; skipping live backend test")
	}

	st, err := Open(context.Background(), Config{
		URI:      uri,
		Username: envOr("NEO4J_USERNAME", "neo4j"),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: os.Getenv("NEO4J_DATABASE"),
	}, store.DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, st.Clear(context.Background()))
	t.Cleanup(func() {
		st.Clear(context.Background())
		st.Close()
	})
	return st
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestLiveRoundTrip(t *testing.T) {
	st := openLiveStore(t)
	ctx := context.Background()

	graphCtx := rdf.NewResource("http://example.org/graphs/a")
	alice := rdf.NewResource("http://example.org/alice")
	bob := rdf.NewResource("http://example.org/bob")
	knows := rdf.NewResource("http://xmlns.com/foaf/0.1/knows")
	name := rdf.NewResource("http://xmlns.com/foaf/0.1/name")
	lit := rdf.NewLiteralWithLanguage("Alice", "en")

	q1, err := rdf.NewQuadruple(graphCtx, alice, knows, bob)
	require.NoError(t, err)
	q2, err := rdf.NewQuadruple(graphCtx, alice, name, lit)
	require.NoError(t, err)

	require.NoError(t, st.Add(ctx, q1))
	require.NoError(t, st.Add(ctx, q1))
	require.NoError(t, st.Add(ctx, q2))
	assert.Equal(t, int64(2), st.Count(ctx))

	present, err := st.Contains(ctx, q1)
	require.NoError(t, err)
	assert.True(t, present)

	// Unbound object position: both the resource and the literal
	// statement come back.
	got, err := st.SelectMatching(ctx, &pattern.Pattern{Subject: alice})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = st.SelectMatching(ctx, &pattern.Pattern{Literal: lit})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Object.Equals(lit))

	require.NoError(t, st.RemoveMatching(ctx, &pattern.Pattern{Object: bob}))
	assert.Equal(t, int64(1), st.Count(ctx))

	present, err = st.Contains(ctx, q1)
	require.NoError(t, err)
	assert.False(t, present)

	_, err = st.SelectMatching(ctx, &pattern.Pattern{Object: bob, Literal: lit})
	require.Error(t, err)
	assert.True(t, store.IsInvalidPattern(err))

	require.NoError(t, st.Optimize(ctx))
	require.NoError(t, st.Clear(ctx))
	assert.Equal(t, int64(0), st.Count(ctx))

	// Clear wipes the term nodes too, not just the relationships.
	session := st.session(ctx)
	defer session.Close(ctx)
	nodes, err := neo4j.ExecuteRead(ctx, session,
		func(tx neo4j.ManagedTransaction) (int64, error) {
			res, err := tx.Run(ctx, "MATCH (n) RETURN count(n) AS n", nil)
			if err != nil {
				return 0, err
			}
			rec, err := res.Single(ctx)
			if err != nil {
				return 0, err
			}
			value, _ := rec.Get("n")
			return value.(int64), nil
		})
	require.NoError(t, err)
	assert.Equal(t, int64(0), nodes)
}

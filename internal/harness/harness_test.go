package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantdb/quadrant/internal/store"
	"github.com/quadrantdb/quadrant/internal/store/sqlstore"
)

// TestScenarios runs every scripted scenario against a fresh SQLite
// store. The same fixtures exercise the other backends in their own
// suites.
func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		s, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(s.Name, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "quadrant.db")
			st, err := sqlstore.Open(context.Background(), sqlstore.SQLiteDialect{}, dbPath, store.DefaultOptions())
			require.NoError(t, err)
			defer st.Close()

			Run(t, st, s)
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "scenarios", "nope.yaml"))
	assert.Error(t, err)
}

func TestStepQuadruple(t *testing.T) {
	step := &Step{
		Op:        "add",
		Context:   "http://example.org/g",
		Subject:   "http://example.org/s",
		Predicate: "http://example.org/p",
		Literal:   `"Alice"@en`,
	}
	q, err := step.Quadruple()
	require.NoError(t, err)
	assert.Equal(t, `"Alice"@en`, q.Object.String())

	// Bare literal values are wrapped as plain literals.
	step.Literal = "Alice"
	q, err = step.Quadruple()
	require.NoError(t, err)
	assert.Equal(t, `"Alice"`, q.Object.String())

	step.Literal = ""
	_, err = step.Quadruple()
	assert.Error(t, err)

	step.Object = "http://example.org/o"
	step.Literal = "Alice"
	_, err = step.Quadruple()
	assert.Error(t, err)
}

func TestStepPatternKeepsConflict(t *testing.T) {
	step := &Step{
		Op:      "select",
		Object:  "http://example.org/o",
		Literal: "Alice",
	}
	p, err := step.Pattern()
	require.NoError(t, err)
	assert.NotNil(t, p.Object)
	assert.NotNil(t, p.Literal)
}

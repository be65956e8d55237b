package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quadrantdb/quadrant/internal/store"
)

// Run executes a scenario against a store and fails the test on the
// first unmet expectation. The store is expected to start empty.
func Run(t *testing.T, st store.Quadstore, s *Scenario) {
	t.Helper()
	ctx := context.Background()

	for i, step := range s.Steps {
		step := step
		runStep(t, ctx, st, i, &step)
	}
}

func runStep(t *testing.T, ctx context.Context, st store.Quadstore, i int, step *Step) {
	t.Helper()

	switch step.Op {
	case "add":
		q, err := step.Quadruple()
		require.NoError(t, err, "step %d", i)
		require.NoError(t, st.Add(ctx, q), "step %d: add", i)

	case "remove":
		q, err := step.Quadruple()
		require.NoError(t, err, "step %d", i)
		require.NoError(t, st.Remove(ctx, q), "step %d: remove", i)

	case "remove-matching":
		p, err := step.Pattern()
		require.NoError(t, err, "step %d", i)
		err = st.RemoveMatching(ctx, p)
		if step.ExpectError == "invalid-pattern" {
			require.True(t, store.IsInvalidPattern(err), "step %d: want invalid-pattern, got %v", i, err)
			return
		}
		require.NoError(t, err, "step %d: remove-matching", i)

	case "select":
		p, err := step.Pattern()
		require.NoError(t, err, "step %d", i)
		quads, err := st.SelectMatching(ctx, p)
		if step.ExpectError == "invalid-pattern" {
			require.True(t, store.IsInvalidPattern(err), "step %d: want invalid-pattern, got %v", i, err)
			return
		}
		require.NoError(t, err, "step %d: select", i)
		if step.ExpectCount != nil {
			require.Len(t, quads, *step.ExpectCount, "step %d: select result size", i)
		}

	case "contains":
		q, err := step.Quadruple()
		require.NoError(t, err, "step %d", i)
		present, err := st.Contains(ctx, q)
		require.NoError(t, err, "step %d: contains", i)
		require.NotNil(t, step.Expect, "step %d: contains needs expect", i)
		require.Equal(t, *step.Expect, present, "step %d: contains", i)

	case "clear":
		require.NoError(t, st.Clear(ctx), "step %d: clear", i)

	case "count":
		n := st.Count(ctx)
		require.NotNil(t, step.ExpectCount, "step %d: count needs expect_count", i)
		require.Equal(t, int64(*step.ExpectCount), n, "step %d: count", i)

	default:
		t.Fatalf("step %d: unknown op %q", i, step.Op)
	}
}

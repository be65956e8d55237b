package querygen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantdb/quadrant/internal/harness"
	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/rdf"
)

var (
	testCtx  = rdf.NewResource("http://example.org/ctx")
	testSubj = rdf.NewResource("http://example.org/s")
	testPred = rdf.NewResource("http://example.org/p")
	testObj  = rdf.NewResource("http://example.org/o")
	testLit  = rdf.NewLiteral("hello")
)

type corpusCase struct {
	name string
	p    *pattern.Pattern
}

// corpusPatterns enumerates one pattern per signature, empty included,
// in the fixed classification order.
func corpusPatterns() []corpusCase {
	c, s, p, o, l := testCtx, testSubj, testPred, testObj, testLit
	return []corpusCase{
		{"empty", &pattern.Pattern{}},
		{"C", &pattern.Pattern{Context: c}},
		{"S", &pattern.Pattern{Subject: s}},
		{"P", &pattern.Pattern{Predicate: p}},
		{"O", &pattern.Pattern{Object: o}},
		{"L", &pattern.Pattern{Literal: l}},
		{"CS", &pattern.Pattern{Context: c, Subject: s}},
		{"CP", &pattern.Pattern{Context: c, Predicate: p}},
		{"CO", &pattern.Pattern{Context: c, Object: o}},
		{"CL", &pattern.Pattern{Context: c, Literal: l}},
		{"SP", &pattern.Pattern{Subject: s, Predicate: p}},
		{"SO", &pattern.Pattern{Subject: s, Object: o}},
		{"SL", &pattern.Pattern{Subject: s, Literal: l}},
		{"PO", &pattern.Pattern{Predicate: p, Object: o}},
		{"PL", &pattern.Pattern{Predicate: p, Literal: l}},
		{"CSP", &pattern.Pattern{Context: c, Subject: s, Predicate: p}},
		{"CSO", &pattern.Pattern{Context: c, Subject: s, Object: o}},
		{"CSL", &pattern.Pattern{Context: c, Subject: s, Literal: l}},
		{"CPO", &pattern.Pattern{Context: c, Predicate: p, Object: o}},
		{"CPL", &pattern.Pattern{Context: c, Predicate: p, Literal: l}},
		{"SPO", &pattern.Pattern{Subject: s, Predicate: p, Object: o}},
		{"SPL", &pattern.Pattern{Subject: s, Predicate: p, Literal: l}},
		{"CSPO", &pattern.Pattern{Context: c, Subject: s, Predicate: p, Object: o}},
		{"CSPL", &pattern.Pattern{Context: c, Subject: s, Predicate: p, Literal: l}},
	}
}

// sqliteDialect mirrors the sqlite adapter's syntax so the compiler can
// be tested without importing the store packages.
type sqliteDialect struct{}

func (sqliteDialect) Placeholder(int) string { return "?" }
func (sqliteDialect) InsertIfAbsentSQL() string {
	return "INSERT OR IGNORE INTO Quadruples VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
}

type sqlserverDialect struct{}

func (sqlserverDialect) Placeholder(i int) string { return fmt.Sprintf("@p%d", i) }
func (sqlserverDialect) InsertIfAbsentSQL() string {
	return "INSERT ... WHERE NOT EXISTS"
}

type oracleDialect struct{}

func (oracleDialect) Placeholder(i int) string { return fmt.Sprintf(":%d", i) }
func (oracleDialect) InsertIfAbsentSQL() string {
	return "MERGE INTO Quadruples"
}

func corpusSnapshot(t *testing.T, d SQLDialect) []byte {
	t.Helper()
	c := NewSQLCompiler(d)

	var b strings.Builder
	for _, tc := range corpusPatterns() {
		sel, err := c.Select(tc.p)
		require.NoError(t, err, tc.name)
		del, err := c.Delete(tc.p)
		require.NoError(t, err, tc.name)

		fmt.Fprintf(&b, "-- %s --\n", tc.name)
		fmt.Fprintf(&b, "select: %s | args=%d\n", sel.SQL, len(sel.Args))
		fmt.Fprintf(&b, "delete: %s | args=%d\n", del.SQL, len(del.Args))
	}
	return []byte(b.String())
}

func TestCompileCorpusSQLite(t *testing.T) {
	harness.AssertGolden(t, "sqlite", corpusSnapshot(t, sqliteDialect{}))
}

func TestCompileCorpusSQLServer(t *testing.T) {
	harness.AssertGolden(t, "sqlserver", corpusSnapshot(t, sqlserverDialect{}))
}

func TestCompileCorpusOracle(t *testing.T) {
	harness.AssertGolden(t, "oracle", corpusSnapshot(t, oracleDialect{}))
}

func TestSelectFlavorGuard(t *testing.T) {
	c := NewSQLCompiler(sqliteDialect{})

	// A bound object position pins TripleFlavor; anything else must not.
	stmt, err := c.Select(&pattern.Pattern{Object: testObj})
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "TripleFlavor = ?")
	assert.Equal(t, []any{testObj.ID(), int(rdf.FlavorSPO)}, stmt.Args)

	stmt, err = c.Select(&pattern.Pattern{Literal: testLit})
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "TripleFlavor = ?")
	assert.Equal(t, []any{testLit.ID(), int(rdf.FlavorSPL)}, stmt.Args)

	stmt, err = c.Select(&pattern.Pattern{Subject: testSubj, Predicate: testPred})
	require.NoError(t, err)
	assert.NotContains(t, stmt.SQL, "TripleFlavor = ?")
}

func TestSelectNilPattern(t *testing.T) {
	c := NewSQLCompiler(sqliteDialect{})

	stmt, err := c.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT TripleFlavor, Context, Subject, Predicate, Object FROM Quadruples", stmt.SQL)
	assert.Empty(t, stmt.Args)

	stmt, err = c.Delete(nil)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM Quadruples", stmt.SQL)
	assert.Empty(t, stmt.Args)
}

func TestSelectObjectLiteralConflict(t *testing.T) {
	c := NewSQLCompiler(sqliteDialect{})

	_, err := c.Select(&pattern.Pattern{Object: testObj, Literal: testLit})
	assert.ErrorIs(t, err, pattern.ErrObjectAndLiteral)

	_, err = c.Delete(&pattern.Pattern{Object: testObj, Literal: testLit})
	assert.ErrorIs(t, err, pattern.ErrObjectAndLiteral)
}

func TestPlaceholderNumbering(t *testing.T) {
	c := NewSQLCompiler(oracleDialect{})

	stmt, err := c.Select(&pattern.Pattern{
		Context: testCtx, Subject: testSubj, Predicate: testPred, Object: testObj,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT TripleFlavor, Context, Subject, Predicate, Object FROM Quadruples"+
			" WHERE ContextID = :1 AND SubjectID = :2 AND PredicateID = :3"+
			" AND ObjectID = :4 AND TripleFlavor = :5",
		stmt.SQL)
	assert.Len(t, stmt.Args, 5)
}

func TestInsert(t *testing.T) {
	c := NewSQLCompiler(sqliteDialect{})

	q, err := rdf.NewQuadruple(testCtx, testSubj, testPred, testLit)
	require.NoError(t, err)

	stmt := c.Insert(q)
	assert.Equal(t, sqliteDialect{}.InsertIfAbsentSQL(), stmt.SQL)
	require.Len(t, stmt.Args, 10)
	assert.Equal(t, q.ID(), stmt.Args[0])
	assert.Equal(t, int(rdf.FlavorSPL), stmt.Args[1])
	assert.Equal(t, testCtx.ID(), stmt.Args[2])
	assert.Equal(t, testCtx.String(), stmt.Args[3])
	assert.Equal(t, testLit.ID(), stmt.Args[8])
	assert.Equal(t, testLit.String(), stmt.Args[9])
}

func TestExists(t *testing.T) {
	c := NewSQLCompiler(sqlserverDialect{})

	q, err := rdf.NewQuadruple(testCtx, testSubj, testPred, testObj)
	require.NoError(t, err)

	stmt := c.Exists(q)
	assert.Equal(t, "SELECT COUNT(*) FROM Quadruples WHERE QuadrupleID = @p1", stmt.SQL)
	assert.Equal(t, []any{q.ID()}, stmt.Args)
}

func TestCount(t *testing.T) {
	c := NewSQLCompiler(sqliteDialect{})

	stmt := c.Count()
	assert.Equal(t, "SELECT COUNT(*) FROM Quadruples", stmt.SQL)
	assert.Empty(t, stmt.Args)
}

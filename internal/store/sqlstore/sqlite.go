package sqlstore

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect targets SQLite, the adapter used by the test suite and
// for embedded deployments.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) DriverName() string { return "sqlite3" }

func (SQLiteDialect) DSN(connStr string) string { return connStr }

func (SQLiteDialect) Placeholder(int) string { return "?" }

func (SQLiteDialect) InsertIfAbsentSQL() string {
	return `INSERT INTO Quadruples
		(QuadrupleID, TripleFlavor, ContextID, Context, SubjectID, Subject, PredicateID, Predicate, ObjectID, Object)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(QuadrupleID) DO NOTHING`
}

func (SQLiteDialect) SchemaDDL() []string {
	ddl := []string{`CREATE TABLE IF NOT EXISTS Quadruples (
		QuadrupleID INTEGER PRIMARY KEY,
		TripleFlavor INTEGER NOT NULL,
		ContextID INTEGER NOT NULL,
		Context TEXT NOT NULL,
		SubjectID INTEGER NOT NULL,
		Subject TEXT NOT NULL,
		PredicateID INTEGER NOT NULL,
		Predicate TEXT NOT NULL,
		ObjectID INTEGER NOT NULL,
		Object TEXT NOT NULL
	)`}
	for _, idx := range secondaryIndexes {
		ddl = append(ddl, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON Quadruples(%s)", idx.Name, idx.Columns))
	}
	return ddl
}

func (SQLiteDialect) OptimizeDDL() []string {
	return []string{"REINDEX Quadruples", "ANALYZE"}
}

// Configure applies the pragmas a single-writer SQLite database needs:
// WAL for concurrent reads during writes, a busy timeout for lock
// contention, and a single connection since SQLite allows one writer.
func (SQLiteDialect) Configure(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

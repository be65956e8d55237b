package sqlstore

import (
	"database/sql"
	"fmt"

	_ "github.com/sijms/go-ora/v2"
)

// OracleDialect targets Oracle 12c+ through the pure-Go go-ora driver.
type OracleDialect struct{}

func (OracleDialect) Name() string { return "oracle" }

func (OracleDialect) DriverName() string { return "oracle" }

func (OracleDialect) DSN(connStr string) string { return connStr }

func (OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index)
}

func (OracleDialect) InsertIfAbsentSQL() string {
	// MERGE keeps each placeholder used exactly once, which go-ora's
	// positional binding requires.
	return `MERGE INTO Quadruples t
		USING (SELECT :1 AS QuadrupleID, :2 AS TripleFlavor,
			:3 AS ContextID, :4 AS Context,
			:5 AS SubjectID, :6 AS Subject,
			:7 AS PredicateID, :8 AS Predicate,
			:9 AS ObjectID, :10 AS Object FROM dual) s
		ON (t.QuadrupleID = s.QuadrupleID)
		WHEN NOT MATCHED THEN INSERT
			(QuadrupleID, TripleFlavor, ContextID, Context, SubjectID, Subject, PredicateID, Predicate, ObjectID, Object)
			VALUES (s.QuadrupleID, s.TripleFlavor, s.ContextID, s.Context, s.SubjectID, s.Subject, s.PredicateID, s.Predicate, s.ObjectID, s.Object)`
}

func (OracleDialect) SchemaDDL() []string {
	// Oracle has no CREATE ... IF NOT EXISTS; swallow ORA-00955 ("name is
	// already used") so bootstrap stays idempotent.
	ddl := []string{guardExisting(`CREATE TABLE Quadruples (
		QuadrupleID NUMBER(19) NOT NULL PRIMARY KEY,
		TripleFlavor NUMBER(10) NOT NULL,
		ContextID NUMBER(19) NOT NULL,
		Context VARCHAR2(1000) NOT NULL,
		SubjectID NUMBER(19) NOT NULL,
		Subject VARCHAR2(1000) NOT NULL,
		PredicateID NUMBER(19) NOT NULL,
		Predicate VARCHAR2(1000) NOT NULL,
		ObjectID NUMBER(19) NOT NULL,
		Object VARCHAR2(1000) NOT NULL
	)`)}
	for _, idx := range secondaryIndexes {
		ddl = append(ddl, guardExisting(fmt.Sprintf(
			"CREATE INDEX %s ON Quadruples(%s)", idx.Name, idx.Columns)))
	}
	return ddl
}

func (OracleDialect) OptimizeDDL() []string {
	stmts := make([]string, 0, len(secondaryIndexes))
	for _, idx := range secondaryIndexes {
		stmts = append(stmts, fmt.Sprintf("ALTER INDEX %s REBUILD", idx.Name))
	}
	return stmts
}

func (OracleDialect) Configure(*sql.DB) error { return nil }

func guardExisting(stmt string) string {
	return fmt.Sprintf(
		`BEGIN EXECUTE IMMEDIATE '%s'; EXCEPTION WHEN OTHERS THEN IF SQLCODE != -955 THEN RAISE; END IF; END;`,
		escapeQuotes(stmt))
}

func escapeQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'')
		}
		out = append(out, s[i])
	}
	return string(out)
}

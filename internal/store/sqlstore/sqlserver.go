package sqlstore

import (
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"
)

// SQLServerDialect targets Microsoft SQL Server 2012+.
type SQLServerDialect struct{}

func (SQLServerDialect) Name() string { return "sqlserver" }

func (SQLServerDialect) DriverName() string { return "sqlserver" }

func (SQLServerDialect) DSN(connStr string) string { return connStr }

func (SQLServerDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index)
}

func (SQLServerDialect) InsertIfAbsentSQL() string {
	// @p1 is the QuadrupleID; referencing it again in the guard costs no
	// extra argument with named parameters.
	return `INSERT INTO dbo.Quadruples
		(QuadrupleID, TripleFlavor, ContextID, Context, SubjectID, Subject, PredicateID, Predicate, ObjectID, Object)
		SELECT @p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8, @p9, @p10
		WHERE NOT EXISTS (SELECT 1 FROM dbo.Quadruples WHERE QuadrupleID = @p1)`
}

func (SQLServerDialect) SchemaDDL() []string {
	ddl := []string{`IF OBJECT_ID(N'dbo.Quadruples', N'U') IS NULL
		CREATE TABLE dbo.Quadruples (
			QuadrupleID BIGINT NOT NULL PRIMARY KEY,
			TripleFlavor INT NOT NULL,
			ContextID BIGINT NOT NULL,
			Context NVARCHAR(1000) NOT NULL,
			SubjectID BIGINT NOT NULL,
			Subject NVARCHAR(1000) NOT NULL,
			PredicateID BIGINT NOT NULL,
			Predicate NVARCHAR(1000) NOT NULL,
			ObjectID BIGINT NOT NULL,
			Object NVARCHAR(1000) NOT NULL
		)`}
	for _, idx := range secondaryIndexes {
		ddl = append(ddl, fmt.Sprintf(
			`IF NOT EXISTS (SELECT 1 FROM sys.indexes WHERE name = N'%s' AND object_id = OBJECT_ID(N'dbo.Quadruples'))
			CREATE NONCLUSTERED INDEX %s ON dbo.Quadruples(%s)`,
			idx.Name, idx.Name, idx.Columns))
	}
	return ddl
}

func (SQLServerDialect) OptimizeDDL() []string {
	return []string{"ALTER INDEX ALL ON dbo.Quadruples REORGANIZE"}
}

func (SQLServerDialect) Configure(*sql.DB) error { return nil }

package sqlstore

import "database/sql"

// Dialect abstracts the engine-specific parts of the relational adapter.
// The query shapes are shared; only placeholder syntax, DDL, and the
// idempotent-insert form differ per engine.
//
// Placeholder and InsertIfAbsentSQL also satisfy querygen.SQLDialect
// through structural typing, so a Dialect plugs straight into the
// compiler.
type Dialect interface {
	// Name identifies the dialect in errors and logs.
	Name() string

	// DriverName returns the database/sql driver to open.
	DriverName() string

	// DSN maps the caller's connection string to the driver's form.
	DSN(connStr string) string

	// Placeholder returns the parameter placeholder for the given
	// 1-based index.
	Placeholder(index int) string

	// InsertIfAbsentSQL returns the idempotent insert for the ten schema
	// columns in order.
	InsertIfAbsentSQL() string

	// SchemaDDL returns the idempotent bootstrap statements, executed in
	// order at construction: the Quadruples table and its seven
	// secondary indexes.
	SchemaDDL() []string

	// OptimizeDDL returns the statements that rebuild or reorganize the
	// secondary indexes.
	OptimizeDDL() []string

	// Configure applies engine-specific connection settings (pragmas,
	// pool limits) right after the connection is opened.
	Configure(db *sql.DB) error
}

// Index columns shared by every relational dialect, in the order the
// bootstrap creates them. Kept in one place so the three dialects cannot
// drift apart on what is indexed.
var secondaryIndexes = []struct {
	Name    string
	Columns string
}{
	{"IDX_Quadruples_Context", "ContextID"},
	{"IDX_Quadruples_Subject", "SubjectID"},
	{"IDX_Quadruples_Predicate", "PredicateID"},
	{"IDX_Quadruples_Object", "ObjectID, TripleFlavor"},
	{"IDX_Quadruples_SubjectPredicate", "SubjectID, PredicateID"},
	{"IDX_Quadruples_SubjectObject", "SubjectID, ObjectID, TripleFlavor"},
	{"IDX_Quadruples_PredicateObject", "PredicateID, ObjectID, TripleFlavor"},
}

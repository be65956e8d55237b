package querygen

import (
	"strings"

	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/rdf"
)

// Table and column names of the relational schema. Identical across
// dialects; only placeholder syntax and DDL differ.
const (
	TableName = "Quadruples"

	colID        = "QuadrupleID"
	colFlavor    = "TripleFlavor"
	colContextID = "ContextID"
	colContext   = "Context"
	colSubjectID = "SubjectID"
	colSubject   = "Subject"
	colPredID    = "PredicateID"
	colPredicate = "Predicate"
	colObjectID  = "ObjectID"
	colObject    = "Object"
)

// selectColumns is the projection every select statement uses, in the
// order the materializer scans them.
const selectColumns = colFlavor + ", " + colContext + ", " + colSubject + ", " + colPredicate + ", " + colObject

// SQLDialect supplies the engine-specific syntax the compiler cannot
// decide itself. The sqlstore dialects satisfy this interface through
// structural typing alongside their DDL methods.
type SQLDialect interface {
	// Placeholder returns the parameter placeholder for the given 1-based
	// index ("?" for sqlite, "@p1" for sqlserver, ":1" for oracle).
	Placeholder(index int) string

	// InsertIfAbsentSQL returns the full idempotent insert statement for
	// the ten schema columns in order. Engines express "insert iff a row
	// with this QuadrupleID does not exist" differently (ON CONFLICT DO
	// NOTHING vs INSERT ... WHERE NOT EXISTS), so the dialect owns the
	// whole statement.
	InsertIfAbsentSQL() string
}

// Statement is an immutable compiled SQL statement with its ordered
// arguments. A fresh value is built per call; nothing is reused between
// calls.
type Statement struct {
	SQL  string
	Args []any
}

// SQLCompiler compiles patterns and quadruples to parameterized SQL for
// one relational dialect.
type SQLCompiler struct {
	dialect SQLDialect
}

func NewSQLCompiler(d SQLDialect) *SQLCompiler {
	return &SQLCompiler{dialect: d}
}

// Select compiles a pattern to the select statement for its signature.
func (c *SQLCompiler) Select(p *pattern.Pattern) (Statement, error) {
	where, args, err := c.compileWhere(p)
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		SQL:  "SELECT " + selectColumns + " FROM " + TableName + where,
		Args: args,
	}, nil
}

// Delete compiles a pattern to the delete statement for its signature.
// The empty signature compiles to an unconstrained delete (Clear).
func (c *SQLCompiler) Delete(p *pattern.Pattern) (Statement, error) {
	where, args, err := c.compileWhere(p)
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		SQL:  "DELETE FROM " + TableName + where,
		Args: args,
	}, nil
}

// Insert compiles a quadruple to the dialect's idempotent insert. The ten
// arguments follow the schema column order.
func (c *SQLCompiler) Insert(q *rdf.Quadruple) Statement {
	return Statement{
		SQL: c.dialect.InsertIfAbsentSQL(),
		Args: []any{
			q.ID(),
			int(q.Flavor()),
			q.Context.ID(), q.Context.String(),
			q.Subject.ID(), q.Subject.String(),
			q.Predicate.ID(), q.Predicate.String(),
			q.Object.ID(), q.Object.String(),
		},
	}
}

// Exists compiles the scalar containment check for one quadruple, keyed
// by its primary key.
func (c *SQLCompiler) Exists(q *rdf.Quadruple) Statement {
	return Statement{
		SQL:  "SELECT COUNT(*) FROM " + TableName + " WHERE " + colID + " = " + c.dialect.Placeholder(1),
		Args: []any{q.ID()},
	}
}

// Count compiles the full-table row count.
func (c *SQLCompiler) Count() Statement {
	return Statement{SQL: "SELECT COUNT(*) FROM " + TableName}
}

// compileWhere builds the AND-joined equality predicates for the bound
// positions of a pattern, in the fixed C, S, P, O order. A bound object
// position additionally pins TripleFlavor: without that guard a resource
// and a literal hashing to the same ObjectID would be indistinguishable.
func (c *SQLCompiler) compileWhere(p *pattern.Pattern) (string, []any, error) {
	if _, err := pattern.Classify(p); err != nil {
		return "", nil, err
	}
	if p == nil {
		return "", nil, nil
	}

	var (
		conds []string
		args  []any
	)
	bind := func(column string, value any) {
		conds = append(conds, column+" = "+c.dialect.Placeholder(len(args)+1))
		args = append(args, value)
	}

	if p.Context != nil {
		bind(colContextID, p.Context.ID())
	}
	if p.Subject != nil {
		bind(colSubjectID, p.Subject.ID())
	}
	if p.Predicate != nil {
		bind(colPredID, p.Predicate.ID())
	}
	if obj := p.ObjectTerm(); obj != nil {
		bind(colObjectID, obj.ID())
		flavor, _ := p.Flavor()
		bind(colFlavor, int(flavor))
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

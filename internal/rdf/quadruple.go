package rdf

import "fmt"

// Flavor tags whether a quadruple's object is a resource or a literal.
// The numeric values are persisted in the relational TripleFlavor column.
type Flavor int

const (
	// FlavorSPO marks quadruples whose object is a resource.
	FlavorSPO Flavor = 1
	// FlavorSPL marks quadruples whose object is a literal.
	FlavorSPL Flavor = 2
)

func (f Flavor) String() string {
	switch f {
	case FlavorSPO:
		return "SPO"
	case FlavorSPL:
		return "SPL"
	default:
		return fmt.Sprintf("Flavor(%d)", int(f))
	}
}

// Quadruple is the fundamental stored unit: (context, subject, predicate,
// object). The flavor is always consistent with the runtime type of the
// object; NewQuadruple derives it, callers never set it.
//
// The identifier is computed from the four canonical string forms, so the
// same four terms always produce the same QuadrupleID in every process.
// That is what makes "insert if absent" idempotent without an existence
// round-trip, and what lets deletes key on the primary key.
type Quadruple struct {
	Context   Term
	Subject   Term
	Predicate Term
	Object    Term

	flavor Flavor
	id     int64
}

// NewQuadruple builds a quadruple from four terms. The object decides the
// flavor: a *Literal object yields SPL, anything else SPO.
func NewQuadruple(context, subject, predicate, object Term) (*Quadruple, error) {
	if context == nil || subject == nil || predicate == nil || object == nil {
		return nil, fmt.Errorf("quadruple requires all four terms")
	}

	flavor := FlavorSPO
	if object.Kind() == KindLiteral {
		flavor = FlavorSPL
	}

	return &Quadruple{
		Context:   context,
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		flavor:    flavor,
		id:        quadrupleID(context, subject, predicate, object),
	}, nil
}

// Flavor reports whether the object is a resource (SPO) or a literal (SPL).
func (q *Quadruple) Flavor() Flavor { return q.flavor }

// ID returns the stable quadruple identifier.
func (q *Quadruple) ID() int64 { return q.id }

func (q *Quadruple) String() string {
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Context)
}

// Equals compares all four terms. Flavor equality follows from object
// equality.
func (q *Quadruple) Equals(other *Quadruple) bool {
	if other == nil {
		return false
	}
	return q.Context.Equals(other.Context) &&
		q.Subject.Equals(other.Subject) &&
		q.Predicate.Equals(other.Predicate) &&
		q.Object.Equals(other.Object)
}

// Graph is a set of quadruples sharing one context. Merge inserts all of
// a graph's quadruples in a single transaction.
type Graph struct {
	Context    Term
	Quadruples []*Quadruple
}

// NewGraph creates an empty graph with the given context.
func NewGraph(context Term) *Graph {
	return &Graph{Context: context}
}

// Add appends a (subject, predicate, object) statement under the graph's
// context.
func (g *Graph) Add(subject, predicate, object Term) error {
	q, err := NewQuadruple(g.Context, subject, predicate, object)
	if err != nil {
		return err
	}
	g.Quadruples = append(g.Quadruples, q)
	return nil
}

// Len returns the number of quadruples in the graph.
func (g *Graph) Len() int { return len(g.Quadruples) }

// Package pattern defines partially-bound quadruple patterns and the
// classifier that reduces a pattern to its bound-variable signature.
//
// A signature is the subsequence of the letters C, S, P, O, L for which
// the corresponding pattern position is bound, always tested in that fixed
// order. O and L are mutually exclusive (an object is either a resource or
// a literal); the classifier rejects patterns binding both before any
// backend is contacted, so individual adapters never re-check.
//
// With O/L exclusivity there are exactly 24 reachable signatures:
//
//	∅  C  S  P  O  L
//	CS CP CO CL SP SO SL PO PL
//	CSP CSO CSL CPO CPL SPO SPL
//	CSPO CSPL
//
// Each maps to exactly one compiled statement shape per backend dialect.
package pattern

import (
	"errors"
	"fmt"

	"github.com/quadrantdb/quadrant/internal/rdf"
)

// ErrObjectAndLiteral is returned when a pattern binds both the object and
// the literal position. Wrapped errors are matched with errors.Is.
var ErrObjectAndLiteral = errors.New("pattern binds both object and literal")

// Pattern is an ephemeral filter for select and remove operations. Nil
// fields are wildcards. Object holds a resource object, Literal a literal
// object; at most one of the two may be set.
type Pattern struct {
	Context   rdf.Term
	Subject   rdf.Term
	Predicate rdf.Term
	Object    rdf.Term
	Literal   rdf.Term
}

// ObjectTerm returns whichever of the object positions is bound, or nil.
func (p *Pattern) ObjectTerm() rdf.Term {
	if p.Object != nil {
		return p.Object
	}
	return p.Literal
}

// Flavor returns the flavor pinned by the bound object position, and
// whether the object position is bound at all. Whenever it is, the
// relational compiler adds a TripleFlavor guard so resource and literal
// rows sharing the identifier column cannot be confused.
func (p *Pattern) Flavor() (rdf.Flavor, bool) {
	switch {
	case p.Object != nil:
		return rdf.FlavorSPO, true
	case p.Literal != nil:
		return rdf.FlavorSPL, true
	default:
		return 0, false
	}
}

func (p *Pattern) String() string {
	sig, err := Classify(p)
	if err != nil {
		return "pattern(invalid)"
	}
	if sig.Empty() {
		return "pattern(*)"
	}
	return fmt.Sprintf("pattern(%s)", sig)
}

// Signature is the ordered bound-position subsequence of "CSPOL".
type Signature string

// Empty reports the all-wildcards signature.
func (s Signature) Empty() bool { return s == "" }

// Classify computes the signature of a pattern. It is a pure function:
// the only failure mode is the object/literal conflict.
func Classify(p *Pattern) (Signature, error) {
	if p == nil {
		return "", nil
	}
	if p.Object != nil && p.Literal != nil {
		return "", ErrObjectAndLiteral
	}

	var sig []byte
	if p.Context != nil {
		sig = append(sig, 'C')
	}
	if p.Subject != nil {
		sig = append(sig, 'S')
	}
	if p.Predicate != nil {
		sig = append(sig, 'P')
	}
	if p.Object != nil {
		sig = append(sig, 'O')
	}
	if p.Literal != nil {
		sig = append(sig, 'L')
	}
	return Signature(sig), nil
}

// FromQuadruple builds the fully-bound pattern matching exactly one
// quadruple. Used by remove-by-quadruple and containment checks.
func FromQuadruple(q *rdf.Quadruple) *Pattern {
	p := &Pattern{
		Context:   q.Context,
		Subject:   q.Subject,
		Predicate: q.Predicate,
	}
	if q.Flavor() == rdf.FlavorSPL {
		p.Literal = q.Object
	} else {
		p.Object = q.Object
	}
	return p
}

package rdf

import (
	"fmt"

	"github.com/google/uuid"
)

// TermKind discriminates the concrete term types.
type TermKind byte

const (
	KindResource TermKind = iota + 1
	KindBlankNode
	KindLiteral
)

// Term is an RDF term: a resource (IRI), a blank node, or a literal.
//
// String returns the canonical N-Triples-style form ("<iri>", "_:id",
// `"value"@lang` / `"value"^^<datatype>`). ID returns the stable 64-bit
// identifier derived from that form (see hash.go).
type Term interface {
	Kind() TermKind
	String() string
	ID() int64
	Equals(other Term) bool
}

// Resource is an IRI-identified term.
type Resource struct {
	IRI string
}

func NewResource(iri string) *Resource {
	return &Resource{IRI: iri}
}

func (r *Resource) Kind() TermKind { return KindResource }

func (r *Resource) String() string { return fmt.Sprintf("<%s>", r.IRI) }

func (r *Resource) ID() int64 { return TermID(r) }

func (r *Resource) Equals(other Term) bool {
	o, ok := other.(*Resource)
	return ok && r.IRI == o.IRI
}

// BlankNode is an anonymous node with a document-scoped label.
type BlankNode struct {
	Label string
}

func NewBlankNode(label string) *BlankNode {
	return &BlankNode{Label: label}
}

// FreshBlankNode mints a blank node with a unique label. UUIDv7 labels
// sort roughly by creation time, which keeps dumps readable.
func FreshBlankNode() *BlankNode {
	return &BlankNode{Label: uuid.Must(uuid.NewV7()).String()}
}

func (b *BlankNode) Kind() TermKind { return KindBlankNode }

func (b *BlankNode) String() string { return "_:" + b.Label }

func (b *BlankNode) ID() int64 { return TermID(b) }

func (b *BlankNode) Equals(other Term) bool {
	o, ok := other.(*BlankNode)
	return ok && b.Label == o.Label
}

// Literal is a plain, language-tagged, or datatyped literal value.
// Language and Datatype are mutually exclusive; both empty means a plain
// literal.
type Literal struct {
	Value    string
	Language string
	Datatype *Resource
}

func NewLiteral(value string) *Literal {
	return &Literal{Value: value}
}

func NewLiteralWithLanguage(value, language string) *Literal {
	return &Literal{Value: value, Language: language}
}

func NewLiteralWithDatatype(value string, datatype *Resource) *Literal {
	return &Literal{Value: value, Datatype: datatype}
}

func (l *Literal) Kind() TermKind { return KindLiteral }

func (l *Literal) String() string {
	s := fmt.Sprintf("%q", l.Value)
	if l.Language != "" {
		return s + "@" + l.Language
	}
	if l.Datatype != nil {
		return s + "^^" + l.Datatype.String()
	}
	return s
}

func (l *Literal) ID() int64 { return TermID(l) }

func (l *Literal) Equals(other Term) bool {
	o, ok := other.(*Literal)
	if !ok {
		return false
	}
	if l.Value != o.Value || l.Language != o.Language {
		return false
	}
	if l.Datatype == nil || o.Datatype == nil {
		return l.Datatype == nil && o.Datatype == nil
	}
	return l.Datatype.Equals(o.Datatype)
}

// Common XSD datatypes.
var (
	XSDString   = NewResource("http://www.w3.org/2001/XMLSchema#string")
	XSDInteger  = NewResource("http://www.w3.org/2001/XMLSchema#integer")
	XSDDouble   = NewResource("http://www.w3.org/2001/XMLSchema#double")
	XSDBoolean  = NewResource("http://www.w3.org/2001/XMLSchema#boolean")
	XSDDateTime = NewResource("http://www.w3.org/2001/XMLSchema#dateTime")
)

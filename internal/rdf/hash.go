package rdf

import (
	"github.com/zeebo/xxh3"
	"golang.org/x/text/unicode/norm"
)

// Identifier computation.
//
// Term and quadruple identifiers must be stable across processes: the same
// term always hashes to the same 64-bit value, so relational rows written
// by one process can be matched and deleted by another. Strings are NFC
// normalized before hashing so that decomposed and precomposed Unicode
// forms of the same text agree on an identifier.
//
// The null separator between quadruple components prevents boundary
// ambiguity (("<a>", "<bc>") must not collide with ("<ab>", "<c>")).

// TermID returns the stable identifier for a term's canonical string form.
func TermID(t Term) int64 {
	return hashString(t.String())
}

// quadrupleID computes the identifier for the four components of a
// quadruple, in context, subject, predicate, object order.
func quadrupleID(context, subject, predicate, object Term) int64 {
	h := xxh3.New()
	for _, t := range []Term{context, subject, predicate, object} {
		_, _ = h.WriteString(norm.NFC.String(t.String()))
		_, _ = h.Write([]byte{0x00})
	}
	return int64(h.Sum64())
}

func hashString(s string) int64 {
	return int64(xxh3.HashString(norm.NFC.String(s)))
}

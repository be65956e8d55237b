// Package rdf defines the value types the storage adapters persist:
// terms (resources, blank nodes, literals), quadruples, and graphs.
//
// Every term has a canonical string form and a stable 64-bit identifier
// derived from that form. Relational backends index and join on the
// numeric identifiers; the graph backend indexes the string forms.
// Identifiers are computed from NFC-normalized strings so the same term
// always produces the same identifier regardless of the Unicode
// representation it arrived in.
//
// Terms and quadruples are immutable once constructed. The adapters only
// read their string and identifier projections.
package rdf

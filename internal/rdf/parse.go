package rdf

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTerm parses the canonical string form of a term back into a Term.
// Accepted forms: "<iri>", "_:label", and the literal forms handled by
// ParseLiteral.
func ParseTerm(s string) (Term, error) {
	switch {
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") && len(s) > 2:
		return NewResource(s[1 : len(s)-1]), nil
	case strings.HasPrefix(s, "_:") && len(s) > 2:
		return NewBlankNode(s[2:]), nil
	case strings.HasPrefix(s, `"`):
		return ParseLiteral(s)
	default:
		return nil, fmt.Errorf("malformed term %q", s)
	}
}

// ParseLiteral parses the persisted string form of a literal:
//
//	"value"            plain
//	"value"@lang       language-tagged
//	"value"^^<iri>     datatyped
//
// Rows whose literal fails to parse are treated as non-matches by the
// select path, so this function must reject anything it cannot round-trip.
func ParseLiteral(s string) (*Literal, error) {
	if !strings.HasPrefix(s, `"`) {
		return nil, fmt.Errorf("malformed literal %q: missing opening quote", s)
	}

	end := closingQuote(s)
	if end < 0 {
		return nil, fmt.Errorf("malformed literal %q: missing closing quote", s)
	}

	value, err := strconv.Unquote(s[:end+1])
	if err != nil {
		return nil, fmt.Errorf("malformed literal %q: %w", s, err)
	}

	rest := s[end+1:]
	switch {
	case rest == "":
		return NewLiteral(value), nil
	case strings.HasPrefix(rest, "@"):
		lang := rest[1:]
		if lang == "" {
			return nil, fmt.Errorf("malformed literal %q: empty language tag", s)
		}
		return NewLiteralWithLanguage(value, lang), nil
	case strings.HasPrefix(rest, "^^<") && strings.HasSuffix(rest, ">"):
		iri := rest[3 : len(rest)-1]
		if iri == "" {
			return nil, fmt.Errorf("malformed literal %q: empty datatype", s)
		}
		return NewLiteralWithDatatype(value, NewResource(iri)), nil
	default:
		return nil, fmt.Errorf("malformed literal %q: trailing %q", s, rest)
	}
}

// closingQuote returns the index of the unescaped quote terminating the
// value section, or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

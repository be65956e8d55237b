package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// N-Quads-style line codec used by the CLI to move data in and out of a
// store. One statement per line: subject predicate object [context] .
// Lines without a context term land in the default context. An
// anonymous node, written [], is allowed in the subject and object
// positions and mints a fresh blank node per occurrence.

// DefaultContext is the context assigned to statements that carry none.
var DefaultContext = NewResource("urn:quadrant:default")

// ReadQuadruples parses line-oriented statements from r. Blank lines and
// #-comments are skipped. A malformed line aborts the read with its line
// number.
func ReadQuadruples(r io.Reader) ([]*Quadruple, error) {
	var quads []*Quadruple

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		q, err := parseStatement(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		quads = append(quads, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read statements: %w", err)
	}

	return quads, nil
}

// WriteQuadruples writes quadruples back out in the same line format.
func WriteQuadruples(w io.Writer, quads []*Quadruple) error {
	bw := bufio.NewWriter(w)
	for _, q := range quads {
		_, err := fmt.Fprintf(bw, "%s %s %s %s .\n", q.Subject, q.Predicate, q.Object, q.Context)
		if err != nil {
			return fmt.Errorf("write statements: %w", err)
		}
	}
	return bw.Flush()
}

func parseStatement(line string) (*Quadruple, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return nil, err
	}

	// Trailing dot is its own token.
	if len(tokens) > 0 && tokens[len(tokens)-1] == "." {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) != 3 && len(tokens) != 4 {
		return nil, fmt.Errorf("expected 3 or 4 terms, got %d", len(tokens))
	}

	subject, err := parseNodeToken(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	predicate, err := ParseTerm(tokens[1])
	if err != nil {
		return nil, fmt.Errorf("predicate: %w", err)
	}
	object, err := parseNodeToken(tokens[2])
	if err != nil {
		return nil, fmt.Errorf("object: %w", err)
	}

	context := Term(DefaultContext)
	if len(tokens) == 4 {
		context, err = ParseTerm(tokens[3])
		if err != nil {
			return nil, fmt.Errorf("context: %w", err)
		}
	}

	return NewQuadruple(context, subject, predicate, object)
}

// parseNodeToken resolves a subject or object token. [] denotes an
// anonymous node; every occurrence mints its own blank node, so two
// anonymous nodes never alias.
func parseNodeToken(tok string) (Term, error) {
	if tok == "[]" {
		return FreshBlankNode(), nil
	}
	return ParseTerm(tok)
}

// tokenize splits a statement line on whitespace, keeping quoted literal
// values (which may contain spaces) intact.
func tokenize(line string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(line) {
		switch {
		case line[i] == ' ' || line[i] == '\t':
			i++
		case line[i] == '"':
			end := closingQuote(line[i:])
			if end < 0 {
				return nil, fmt.Errorf("unterminated literal")
			}
			end += i
			// Consume any @lang or ^^<datatype> suffix.
			j := end + 1
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			tokens = append(tokens, line[i:j])
			i = j
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			tokens = append(tokens, line[i:j])
			i = j
		}
	}
	return tokens, nil
}

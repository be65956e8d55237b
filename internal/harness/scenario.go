// Package harness runs YAML-scripted conformance scenarios against any
// quadruple store adapter, and snapshots compiler output with golden
// files. The same scenarios run against every backend, which is what
// keeps the adapters' semantics aligned.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/rdf"
)

// Scenario is a scripted sequence of store operations with expected
// outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario (and its golden file, when
	// one is used).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Steps are executed in order; any failed expectation fails the
	// scenario.
	Steps []Step `yaml:"steps"`
}

// Step is one store operation. Op selects the operation; the term fields
// build either a quadruple (add, remove, contains) or a pattern (select,
// remove-matching). Term fields hold IRIs, except Literal which holds a
// canonical literal form or a bare value.
type Step struct {
	Op string `yaml:"op"` // add | remove | remove-matching | select | contains | clear | count

	Context   string `yaml:"context,omitempty"`
	Subject   string `yaml:"subject,omitempty"`
	Predicate string `yaml:"predicate,omitempty"`
	Object    string `yaml:"object,omitempty"`
	Literal   string `yaml:"literal,omitempty"`

	// ExpectCount is asserted on select (result size) and count (value).
	ExpectCount *int `yaml:"expect_count,omitempty"`

	// Expect is asserted on contains.
	Expect *bool `yaml:"expect,omitempty"`

	// ExpectError marks steps that must fail with the invalid-pattern
	// error.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	return &s, nil
}

// Quadruple builds the fully-bound quadruple a step describes.
func (st *Step) Quadruple() (*rdf.Quadruple, error) {
	if st.Context == "" || st.Subject == "" || st.Predicate == "" {
		return nil, fmt.Errorf("step %q: quadruple needs context, subject, predicate", st.Op)
	}

	var object rdf.Term
	switch {
	case st.Object != "" && st.Literal != "":
		return nil, fmt.Errorf("step %q: object and literal are mutually exclusive", st.Op)
	case st.Object != "":
		object = rdf.NewResource(st.Object)
	case st.Literal != "":
		lit, err := parseLiteralField(st.Literal)
		if err != nil {
			return nil, err
		}
		object = lit
	default:
		return nil, fmt.Errorf("step %q: quadruple needs object or literal", st.Op)
	}

	return rdf.NewQuadruple(rdf.NewResource(st.Context), rdf.NewResource(st.Subject), rdf.NewResource(st.Predicate), object)
}

// Pattern builds the partial pattern a step describes. Unlike Quadruple,
// every field is optional, and the object/literal conflict is left in
// place so scenarios can assert the store rejects it.
func (st *Step) Pattern() (*pattern.Pattern, error) {
	p := &pattern.Pattern{}
	if st.Context != "" {
		p.Context = rdf.NewResource(st.Context)
	}
	if st.Subject != "" {
		p.Subject = rdf.NewResource(st.Subject)
	}
	if st.Predicate != "" {
		p.Predicate = rdf.NewResource(st.Predicate)
	}
	if st.Object != "" {
		p.Object = rdf.NewResource(st.Object)
	}
	if st.Literal != "" {
		lit, err := parseLiteralField(st.Literal)
		if err != nil {
			return nil, err
		}
		p.Literal = lit
	}
	return p, nil
}

func parseLiteralField(raw string) (*rdf.Literal, error) {
	if len(raw) > 0 && raw[0] == '"' {
		return rdf.ParseLiteral(raw)
	}
	return rdf.NewLiteral(raw), nil
}

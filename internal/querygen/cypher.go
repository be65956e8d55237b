package querygen

import (
	"strings"

	"github.com/quadrantdb/quadrant/internal/pattern"
	"github.com/quadrantdb/quadrant/internal/rdf"
)

// Graph schema: subjects are (:Resource {uri}) nodes, statements are
// [:Property {uri, ctx}] relationships, objects are (:Resource {uri}) or
// (:Literal {value}) nodes. All properties hold canonical term strings.

// CypherQuery is one compiled Cypher statement with named parameters.
// Flavor records which object label the query matches, so the
// materializer knows how to rebuild the object term without inspecting
// the record.
type CypherQuery struct {
	Text   string
	Params map[string]any
	Flavor rdf.Flavor
}

// CypherCompiler compiles patterns and quadruples to Cypher. Parameters
// carry canonical string forms: the graph backend indexes the string
// properties, not numeric identifiers.
type CypherCompiler struct{}

func NewCypherCompiler() *CypherCompiler {
	return &CypherCompiler{}
}

// Select compiles a pattern into one query when the object position is
// bound, or two (Resource objects, then Literal objects) when it is not.
// A labeled-property-graph pattern cannot match a disjunctive node label,
// so the unconstrained object position needs the union.
func (c *CypherCompiler) Select(p *pattern.Pattern) ([]CypherQuery, error) {
	return c.compilePattern(p, "RETURN p.ctx AS ctx, s.uri AS subj, p.uri AS pred, %OBJ% AS obj")
}

// Delete mirrors Select but removes the matched Property relationships.
// Object and subject nodes are left in place; they may participate in
// other statements.
func (c *CypherCompiler) Delete(p *pattern.Pattern) ([]CypherQuery, error) {
	return c.compilePattern(p, "DELETE p")
}

// Insert compiles the idempotent MERGE for one quadruple. MERGE matches
// the whole pattern first, so inserting the same quadruple twice leaves a
// single relationship.
func (c *CypherCompiler) Insert(q *rdf.Quadruple) CypherQuery {
	var b strings.Builder
	b.WriteString("MERGE (s:Resource {uri: $subj})\n")
	if q.Flavor() == rdf.FlavorSPL {
		b.WriteString("MERGE (o:Literal {value: $obj})\n")
	} else {
		b.WriteString("MERGE (o:Resource {uri: $obj})\n")
	}
	b.WriteString("MERGE (s)-[:Property {uri: $pred, ctx: $ctx}]->(o)")

	return CypherQuery{
		Text:   b.String(),
		Params: quadParams(q),
		Flavor: q.Flavor(),
	}
}

// Clear compiles the full wipe. Unlike Delete it detaches and removes
// the nodes too: a cleared store must not keep orphaned Resource or
// Literal nodes around.
func (c *CypherCompiler) Clear() CypherQuery {
	return CypherQuery{
		Text:   "MATCH (n) DETACH DELETE n",
		Params: map[string]any{},
	}
}

// Exists compiles the scalar containment check for one quadruple.
func (c *CypherCompiler) Exists(q *rdf.Quadruple) CypherQuery {
	objLabel := "Resource {uri: $obj}"
	if q.Flavor() == rdf.FlavorSPL {
		objLabel = "Literal {value: $obj}"
	}
	return CypherQuery{
		Text: "MATCH (s:Resource {uri: $subj})-[p:Property {uri: $pred, ctx: $ctx}]->(o:" + objLabel + ") " +
			"RETURN count(p) > 0 AS present",
		Params: quadParams(q),
		Flavor: q.Flavor(),
	}
}

// Count compiles the full-store statement count.
func (c *CypherCompiler) Count() CypherQuery {
	return CypherQuery{
		Text:   "MATCH ()-[p:Property]->() RETURN count(p) AS n",
		Params: map[string]any{},
	}
}

func (c *CypherCompiler) compilePattern(p *pattern.Pattern, tail string) ([]CypherQuery, error) {
	if _, err := pattern.Classify(p); err != nil {
		return nil, err
	}
	if p == nil {
		p = &pattern.Pattern{}
	}

	if flavor, bound := p.Flavor(); bound {
		return []CypherQuery{c.compileOne(p, flavor, tail)}, nil
	}

	// Unbound object position: union Resource and Literal matches.
	return []CypherQuery{
		c.compileOne(p, rdf.FlavorSPO, tail),
		c.compileOne(p, rdf.FlavorSPL, tail),
	}, nil
}

func (c *CypherCompiler) compileOne(p *pattern.Pattern, flavor rdf.Flavor, tail string) CypherQuery {
	params := map[string]any{}

	subj := "(s:Resource)"
	if p.Subject != nil {
		subj = "(s:Resource {uri: $subj})"
		params["subj"] = p.Subject.String()
	}

	var relProps []string
	if p.Predicate != nil {
		relProps = append(relProps, "uri: $pred")
		params["pred"] = p.Predicate.String()
	}
	if p.Context != nil {
		relProps = append(relProps, "ctx: $ctx")
		params["ctx"] = p.Context.String()
	}
	rel := "[p:Property]"
	if len(relProps) > 0 {
		rel = "[p:Property {" + strings.Join(relProps, ", ") + "}]"
	}

	objLabel, objProp := "Resource", "uri"
	if flavor == rdf.FlavorSPL {
		objLabel, objProp = "Literal", "value"
	}
	obj := "(o:" + objLabel + ")"
	if t := p.ObjectTerm(); t != nil {
		obj = "(o:" + objLabel + " {" + objProp + ": $obj})"
		params["obj"] = t.String()
	}

	text := "MATCH " + subj + "-" + rel + "->" + obj + "\n" +
		strings.ReplaceAll(tail, "%OBJ%", "o."+objProp)

	return CypherQuery{Text: text, Params: params, Flavor: flavor}
}

func quadParams(q *rdf.Quadruple) map[string]any {
	return map[string]any{
		"ctx":  q.Context.String(),
		"subj": q.Subject.String(),
		"pred": q.Predicate.String(),
		"obj":  q.Object.String(),
	}
}

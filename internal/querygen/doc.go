// Package querygen compiles quadruple patterns into backend statements.
//
// The compiler is the single dispatch point for the 16 reachable pattern
// signatures: each (signature, operation) pair maps to exactly one
// statement shape per dialect. Bound positions are always emitted in the
// fixed order context, subject, predicate, object, so two patterns with
// the same signature always compile to the same text.
//
// Two compilers share the classification logic:
//
//   - SQLCompiler emits parameterized SQL over a small dialect interface.
//     Parameters carry the numeric term identifiers, never the string
//     forms, because the relational schema indexes the ID columns.
//     Whenever the object position is bound a TripleFlavor guard is added;
//     resource and literal objects share the ObjectID column and only the
//     flavor distinguishes them.
//
//   - CypherCompiler emits Cypher with inline property constraints.
//     Parameters carry the canonical string forms, which is what the graph
//     schema indexes. A single Cypher pattern cannot match a disjunctive
//     node label, so when the object position is unbound the compiler
//     returns two queries (Resource and Literal objects) for the executor
//     to union.
//
// All values are parameterized, never interpolated into statement text.
package querygen

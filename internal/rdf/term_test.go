package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermStringForms(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"resource", NewResource("http://example.org/s"), "<http://example.org/s>"},
		{"blank node", NewBlankNode("b1"), "_:b1"},
		{"plain literal", NewLiteral("hello"), `"hello"`},
		{"language literal", NewLiteralWithLanguage("hello", "en"), `"hello"@en`},
		{"typed literal", NewLiteralWithDatatype("5", XSDInteger), `"5"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{"literal with quotes", NewLiteral(`say "hi"`), `"say \"hi\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestTermEquals(t *testing.T) {
	assert.True(t, NewResource("http://a").Equals(NewResource("http://a")))
	assert.False(t, NewResource("http://a").Equals(NewResource("http://b")))
	assert.False(t, NewResource("http://a").Equals(NewLiteral("http://a")))

	assert.True(t, NewLiteral("x").Equals(NewLiteral("x")))
	assert.False(t, NewLiteral("x").Equals(NewLiteralWithLanguage("x", "en")))
	assert.True(t, NewLiteralWithDatatype("5", XSDInteger).Equals(NewLiteralWithDatatype("5", XSDInteger)))
	assert.False(t, NewLiteralWithDatatype("5", XSDInteger).Equals(NewLiteralWithDatatype("5", XSDDouble)))
}

func TestTermIDStable(t *testing.T) {
	a := NewResource("http://example.org/s")
	b := NewResource("http://example.org/s")

	// Same string form, same identifier, in any process.
	assert.Equal(t, a.ID(), b.ID())
	assert.NotZero(t, a.ID())

	// Different terms get different identifiers.
	assert.NotEqual(t, a.ID(), NewResource("http://example.org/o").ID())

	// A resource and a literal with lookalike text differ through their
	// canonical forms.
	assert.NotEqual(t, NewResource("x").ID(), NewLiteral("x").ID())
}

func TestTermIDUnicodeNormalization(t *testing.T) {
	// U+00E9 vs "e" + combining acute: same text after NFC.
	composed := NewLiteral("café")
	decomposed := NewLiteral("café")
	assert.Equal(t, composed.ID(), decomposed.ID())
}

func TestFreshBlankNodeUnique(t *testing.T) {
	a := FreshBlankNode()
	b := FreshBlankNode()
	assert.NotEqual(t, a.Label, b.Label)
	assert.NotEmpty(t, a.Label)
}

func TestNewQuadrupleFlavor(t *testing.T) {
	ctx := NewResource("http://example.org/ctx")
	s := NewResource("http://example.org/s")
	p := NewResource("http://example.org/p")

	spo, err := NewQuadruple(ctx, s, p, NewResource("http://example.org/o"))
	require.NoError(t, err)
	assert.Equal(t, FlavorSPO, spo.Flavor())

	spl, err := NewQuadruple(ctx, s, p, NewLiteral("hello"))
	require.NoError(t, err)
	assert.Equal(t, FlavorSPL, spl.Flavor())

	_, err = NewQuadruple(nil, s, p, NewLiteral("hello"))
	assert.Error(t, err)
}

func TestQuadrupleIDStable(t *testing.T) {
	ctx := NewResource("http://example.org/ctx")
	s := NewResource("http://example.org/s")
	p := NewResource("http://example.org/p")
	o := NewResource("http://example.org/o")

	q1, err := NewQuadruple(ctx, s, p, o)
	require.NoError(t, err)
	q2, err := NewQuadruple(NewResource("http://example.org/ctx"), s, p, o)
	require.NoError(t, err)

	assert.Equal(t, q1.ID(), q2.ID())

	// Changing any position changes the identifier.
	q3, err := NewQuadruple(ctx, s, p, NewResource("http://example.org/other"))
	require.NoError(t, err)
	assert.NotEqual(t, q1.ID(), q3.ID())

	// Null separation: component boundaries matter.
	qa, err := NewQuadruple(NewResource("a"), NewResource("bc"), p, o)
	require.NoError(t, err)
	qb, err := NewQuadruple(NewResource("ab"), NewResource("c"), p, o)
	require.NoError(t, err)
	assert.NotEqual(t, qa.ID(), qb.ID())
}

func TestQuadrupleEquals(t *testing.T) {
	ctx := NewResource("http://example.org/ctx")
	s := NewResource("http://example.org/s")
	p := NewResource("http://example.org/p")

	q1, err := NewQuadruple(ctx, s, p, NewLiteral("hello"))
	require.NoError(t, err)
	q2, err := NewQuadruple(ctx, s, p, NewLiteral("hello"))
	require.NoError(t, err)
	q3, err := NewQuadruple(ctx, s, p, NewLiteral("other"))
	require.NoError(t, err)

	assert.True(t, q1.Equals(q2))
	assert.False(t, q1.Equals(q3))
	assert.False(t, q1.Equals(nil))
}

func TestGraphAdd(t *testing.T) {
	g := NewGraph(NewResource("http://example.org/g"))
	require.NoError(t, g.Add(NewResource("http://example.org/s"), NewResource("http://example.org/p"), NewLiteral("v")))
	require.NoError(t, g.Add(NewResource("http://example.org/s"), NewResource("http://example.org/p"), NewResource("http://example.org/o")))

	assert.Equal(t, 2, g.Len())
	for _, q := range g.Quadruples {
		assert.True(t, q.Context.Equals(g.Context))
	}
}

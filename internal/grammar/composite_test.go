package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthling/internal/morph"
)

// literalLayer builds a one-symbol layer mapping symbol to a single literal
// production.
func literalLayer(layerName, symbol, text string) *Layer {
	return &Layer{
		Name: layerName,
		Symbols: map[string]*Rule{
			symbol: {
				Productions: []Production{
					{Weight: 1, Slots: []Slot{{Kind: SlotLiteral, Text: text}}},
				},
			},
		},
	}
}

func TestResolve_OverridePrecedence(t *testing.T) {
	layerA := literalLayer("A", "X", "a")
	layerB := literalLayer("B", "X", "b")

	g, err := NewResolver(nil, nil).Resolve(layerA, layerB)
	require.NoError(t, err)
	rule, ok := g.Rule("X")
	require.True(t, ok)
	assert.Equal(t, "b", rule.Productions[0].Slots[0].Text, "later layer must win")

	// Reverse order flips the winner.
	g, err = NewResolver(nil, nil).Resolve(layerB, layerA)
	require.NoError(t, err)
	rule, ok = g.Rule("X")
	require.True(t, ok)
	assert.Equal(t, "a", rule.Productions[0].Slots[0].Text)
}

func TestResolve_ShadowedDefinitionStaysReachable(t *testing.T) {
	layerA := literalLayer("A", "X", "a")
	layerB := literalLayer("B", "X", "b")

	g, err := NewResolver(nil, nil).Resolve(layerA, layerB)
	require.NoError(t, err)

	shadowed, ok := g.Rule("A.X")
	require.True(t, ok, "shadowed definition must stay reachable by qualified name")
	assert.Equal(t, "a", shadowed.Productions[0].Slots[0].Text)

	latest, ok := g.Rule("B.X")
	require.True(t, ok)
	assert.Equal(t, "b", latest.Productions[0].Slots[0].Text)
}

func TestResolve_QualifiedCrossLayerReference(t *testing.T) {
	layerA := literalLayer("A", "X", "a")
	layerB := &Layer{
		Name: "B",
		Symbols: map[string]*Rule{
			"X": {Productions: []Production{
				{Weight: 1, Slots: []Slot{
					{Kind: SlotSymbol, Text: "A.X"},
					{Kind: SlotLiteral, Text: "!"},
				}},
			}},
		},
	}

	_, err := NewResolver(nil, nil).Resolve(layerA, layerB)
	assert.NoError(t, err, "qualified reference to a shadowed symbol must resolve")
}

func TestResolve_UnresolvedSymbol(t *testing.T) {
	layer := &Layer{
		Name: "broken",
		Symbols: map[string]*Rule{
			"S": {Productions: []Production{
				{Weight: 1, Slots: []Slot{{Kind: SlotSymbol, Text: "Missing"}}},
			}},
		},
	}

	_, err := NewResolver(nil, nil).Resolve(layer)
	var unresolved *UnresolvedSymbolError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Missing", unresolved.Symbol)
	assert.Equal(t, "S", unresolved.Referrer)
	assert.Equal(t, "broken", unresolved.Layer)
}

func TestResolve_CyclicOverrideChain(t *testing.T) {
	layerA := literalLayer("A", "X", "a")
	layerA.Extends = "B"
	layerB := literalLayer("B", "Y", "b")
	layerB.Extends = "A"

	_, err := NewResolver(nil, nil).Resolve(layerA, layerB)
	var cyclic *CyclicOverrideError
	require.ErrorAs(t, err, &cyclic)
}

func TestResolve_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		rule *Rule
	}{
		{"no productions", &Rule{}},
		{"negative weight", &Rule{Productions: []Production{
			{Weight: -1, Slots: []Slot{{Kind: SlotLiteral, Text: "x"}}},
		}}},
		{"zero weight sum", &Rule{Productions: []Production{
			{Weight: 0, Slots: []Slot{{Kind: SlotLiteral, Text: "x"}}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := &Layer{Name: "L", Symbols: map[string]*Rule{"S": tt.rule}}
			_, err := NewResolver(nil, nil).Resolve(layer)
			var invalid *InvalidRuleError
			assert.True(t, errors.As(err, &invalid), "want InvalidRuleError, got %v", err)
		})
	}
}

func TestResolve_UnknownMorpher(t *testing.T) {
	layer := &Layer{
		Name: "L",
		Symbols: map[string]*Rule{
			"VB": {Productions: []Production{
				{Weight: 1, Slots: []Slot{{Kind: SlotLexeme, Text: "sleep", Morpher: "martian-verb"}}},
			}},
		},
	}

	_, err := NewResolver(morph.Builtin(), nil).Resolve(layer)
	var unknown *UnknownMorpherError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "martian-verb", unknown.Morpher)
}

func TestResolve_EmptyCascade(t *testing.T) {
	_, err := NewResolver(nil, nil).Resolve()
	assert.Error(t, err)
}

func TestFingerprint_StableAndDiscriminating(t *testing.T) {
	a1 := literalLayer("sem", "X", "a")
	a2 := literalLayer("sem", "X", "a")
	b := literalLayer("sem", "X", "b")

	g1, err := NewResolver(nil, nil).Resolve(a1)
	require.NoError(t, err)
	g2, err := NewResolver(nil, nil).Resolve(a2)
	require.NoError(t, err)
	g3, err := NewResolver(nil, nil).Resolve(b)
	require.NoError(t, err)

	assert.Equal(t, g1.Stamps()[0].Fingerprint, g2.Stamps()[0].Fingerprint,
		"equal layers must fingerprint equal")
	assert.NotEqual(t, g1.Stamps()[0].Fingerprint, g3.Stamps()[0].Fingerprint,
		"differing productions must fingerprint differently")
}

func TestFingerprint_SensitiveToWeights(t *testing.T) {
	light := &Layer{Name: "L", Symbols: map[string]*Rule{
		"X": {Productions: []Production{
			{Weight: 1, Slots: []Slot{{Kind: SlotLiteral, Text: "a"}}},
			{Weight: 1, Slots: []Slot{{Kind: SlotLiteral, Text: "b"}}},
		}},
	}}
	heavy := &Layer{Name: "L", Symbols: map[string]*Rule{
		"X": {Productions: []Production{
			{Weight: 1, Slots: []Slot{{Kind: SlotLiteral, Text: "a"}}},
			{Weight: 3, Slots: []Slot{{Kind: SlotLiteral, Text: "b"}}},
		}},
	}}

	g1, err := NewResolver(nil, nil).Resolve(light)
	require.NoError(t, err)
	g2, err := NewResolver(nil, nil).Resolve(heavy)
	require.NoError(t, err)
	assert.NotEqual(t, g1.Stamps()[0].Fingerprint, g2.Stamps()[0].Fingerprint)
}

// Package grammar defines the layered grammar model: Layers stack into a
// cascade, the resolver flattens a cascade into an immutable CompositeGrammar,
// and everything downstream (sampling, rendering) reads that composite without
// ever mutating it.
package grammar

// SlotKind discriminates the three right-hand-side slot variants.
type SlotKind int

const (
	// SlotLiteral is a terminal literal string, emitted verbatim.
	SlotLiteral SlotKind = iota
	// SlotSymbol references another grammar symbol, optionally layer-qualified
	// as "layer.Symbol" to reach a shadowed definition.
	SlotSymbol
	// SlotLexeme is a terminal stem inflected through a named morpher using the
	// features that reached the leaf.
	SlotLexeme
)

func (k SlotKind) String() string {
	switch k {
	case SlotLiteral:
		return "literal"
	case SlotSymbol:
		return "symbol"
	case SlotLexeme:
		return "lexeme"
	default:
		return "unknown"
	}
}

// Slot is one position in a production's right-hand side. Text holds the
// literal string, the referenced symbol name, or the lexeme stem depending on
// Kind. Inherit copies the named features from the parent node before the
// child is expanded; Assign sets feature values afterwards, so an assignment
// wins over an inherited value of the same name.
type Slot struct {
	Kind    SlotKind
	Text    string
	Morpher string
	Inherit []string
	Assign  map[string]string
}

// Production is one weighted right-hand side of a rule.
type Production struct {
	Weight float64
	Slots  []Slot
}

// Rule is the production set for one symbol. Template is the render template
// applied to whichever production is chosen; empty means the rendered children
// are joined with single spaces.
type Rule struct {
	Productions []Production
	Template    string
}

// Layer is one configuration stage of a cascade (semantic, syntactic,
// language-specific, ...). A Layer is immutable once loaded; the loader in
// internal/config is the only producer.
type Layer struct {
	// Name must be unique within a cascade position.
	Name string
	// Extends optionally names the layer this one overrides. Chains of
	// Extends references must be acyclic.
	Extends string
	// Symbols maps symbol names to their rules.
	Symbols map[string]*Rule
}

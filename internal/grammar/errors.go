package grammar

import "fmt"

// UnresolvedSymbolError reports a production slot referencing a symbol that no
// layer of the cascade defines. Raised at resolve time, never at generation
// time.
type UnresolvedSymbolError struct {
	Symbol   string // the missing symbol
	Referrer string // the symbol whose production references it
	Layer    string // the layer owning the referring rule
}

func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("grammar: symbol %q referenced by %s.%s does not resolve in any layer", e.Symbol, e.Layer, e.Referrer)
}

// CyclicOverrideError reports a cycle in layer Extends chains.
type CyclicOverrideError struct {
	Chain []string // layer names in visit order, first == last offender
}

func (e *CyclicOverrideError) Error() string {
	return fmt.Sprintf("grammar: cyclic layer override chain %v", e.Chain)
}

// InvalidRuleError reports a rule that violates the weight invariants: no
// productions at all, a negative weight, or weights summing to zero.
type InvalidRuleError struct {
	Layer  string
	Symbol string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("grammar: invalid rule %s.%s: %s", e.Layer, e.Symbol, e.Reason)
}

// UnknownMorpherError reports a lexeme slot naming a morpher that is not
// registered with the resolver.
type UnknownMorpherError struct {
	Layer   string
	Symbol  string
	Morpher string
}

func (e *UnknownMorpherError) Error() string {
	return fmt.Sprintf("grammar: lexeme in %s.%s names unregistered morpher %q", e.Layer, e.Symbol, e.Morpher)
}

package sampler

import "fmt"

// UndefinedFeatureError reports a slot inheriting a feature its parent node
// does not carry.
type UndefinedFeatureError struct {
	Symbol  string // symbol being expanded when the directive failed
	Feature string
}

func (e *UndefinedFeatureError) Error() string {
	return fmt.Sprintf("sampler: expansion of %q inherits undefined feature %q", e.Symbol, e.Feature)
}

// DerivationDepthExceededError reports an expansion that hit the depth
// ceiling. Grammars whose recursive productions have too little escape weight
// trigger this instead of recursing without bound.
type DerivationDepthExceededError struct {
	Symbol   string
	MaxDepth int
}

func (e *DerivationDepthExceededError) Error() string {
	return fmt.Sprintf("sampler: expansion of %q exceeded maximum derivation depth %d", e.Symbol, e.MaxDepth)
}

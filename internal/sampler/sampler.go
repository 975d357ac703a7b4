// Package sampler expands a composite grammar into concrete derivation trees
// under a reproducible seed. Sampling is a pure function of
// (grammar, start symbol, seed): identical inputs produce bit-identical
// trees, and grammars sharing an upstream layer produce identical subtrees
// wherever they follow the same path from the root.
package sampler

import (
	"fmt"

	"go.uber.org/zap"

	"synthling/internal/grammar"
)

// DefaultMaxDepth bounds derivation trees when no explicit limit is set.
// Generous for sentence grammars; weight-starved recursion hits it fast.
const DefaultMaxDepth = 64

// Node is one node of a derivation tree. Internal nodes record the symbol and
// the chosen production index; terminal leaves have an empty Symbol and carry
// the literal text (or lexeme stem plus morpher name) instead. A Node is a
// value: built once by Sample, consumed by the renderer, never mutated.
type Node struct {
	Symbol     string
	Production int
	Literal    string
	Morpher    string
	Features   map[string]string
	Children   []*Node
}

// IsLeaf reports whether the node is a terminal leaf.
func (n *Node) IsLeaf() bool {
	return n.Symbol == ""
}

// Sampler expands grammars into derivation trees.
type Sampler struct {
	// MaxDepth is the derivation depth ceiling; zero means DefaultMaxDepth.
	MaxDepth int

	logger *zap.Logger
}

// New returns a sampler with the default depth ceiling. A nil logger disables
// logging.
func New(logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{logger: logger}
}

// Sample expands start into a derivation tree using the deterministic stream
// rooted at seed. Two calls with the same (grammar, start, seed) produce
// bit-identical trees.
func (s *Sampler) Sample(g *grammar.CompositeGrammar, start string, seed uint64) (*Node, error) {
	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	root, err := s.expand(g, start, map[string]string{}, NewStream(seed), 0, maxDepth)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("sampled derivation",
		zap.String("start", start),
		zap.Uint64("seed", seed))
	return root, nil
}

func (s *Sampler) expand(g *grammar.CompositeGrammar, symbol string, features map[string]string, stream Stream, depth, maxDepth int) (*Node, error) {
	if depth > maxDepth {
		return nil, &DerivationDepthExceededError{Symbol: symbol, MaxDepth: maxDepth}
	}
	rule, ok := g.Rule(symbol)
	if !ok {
		// Unreachable for grammars that came out of Resolve; guards against
		// hand-built composites.
		return nil, fmt.Errorf("sampler: symbol %q not in grammar", symbol)
	}

	chosen := chooseProduction(rule, stream.Uniform())
	prod := rule.Productions[chosen]
	node := &Node{
		Symbol:     symbol,
		Production: chosen,
		Features:   features,
		Children:   make([]*Node, 0, len(prod.Slots)),
	}

	for i, slot := range prod.Slots {
		childFeatures, err := slotFeatures(symbol, slot, features)
		if err != nil {
			return nil, err
		}
		switch slot.Kind {
		case grammar.SlotSymbol:
			child, err := s.expand(g, slot.Text, childFeatures, stream.Child(i), depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case grammar.SlotLiteral, grammar.SlotLexeme:
			node.Children = append(node.Children, &Node{
				Literal:  slot.Text,
				Morpher:  slot.Morpher,
				Features: childFeatures,
			})
		}
	}
	return node, nil
}

// slotFeatures builds a child's feature mapping from the slot's directives:
// inherited features are copied from the parent first, then assignments
// overwrite.
func slotFeatures(symbol string, slot grammar.Slot, parent map[string]string) (map[string]string, error) {
	features := make(map[string]string, len(slot.Inherit)+len(slot.Assign))
	for _, name := range slot.Inherit {
		v, ok := parent[name]
		if !ok {
			return nil, &UndefinedFeatureError{Symbol: symbol, Feature: name}
		}
		features[name] = v
	}
	for k, v := range slot.Assign {
		features[k] = v
	}
	return features, nil
}

// chooseProduction inverts the cumulative weight distribution against a
// uniform draw. The resolver guarantees a positive weight sum.
func chooseProduction(rule *grammar.Rule, u float64) int {
	total := 0.0
	for _, p := range rule.Productions {
		total += p.Weight
	}
	target := u * total
	cum := 0.0
	for i, p := range rule.Productions {
		cum += p.Weight
		if target < cum {
			return i
		}
	}
	// Floating-point slack: u close enough to 1 can land past the last
	// cumulative bound.
	return len(rule.Productions) - 1
}

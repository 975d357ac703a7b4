package grammar

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"synthling/internal/morph"
)

// LayerStamp identifies one resolved layer of a composite: its name plus a
// fingerprint over its resolved symbols, production weights and slot
// encodings. Two layers with equal stamps are byte-for-byte interchangeable,
// which is what the corpus aligner relies on when it checks that cascades
// share an upstream prefix.
type LayerStamp struct {
	Name        string
	Fingerprint [sha256.Size]byte
}

// CompositeGrammar is the flattened, validated union of a cascade's layers.
// Immutable after Resolve returns; safe to share across concurrent samplers
// without synchronization.
type CompositeGrammar struct {
	symbols   map[string]*Rule // plain names, last layer wins
	qualified map[string]*Rule // "layer.symbol", every definition
	stamps    []LayerStamp
	morphers  *morph.Registry
}

// Rule looks up the rule for a symbol. Names containing a dot are treated as
// layer-qualified and resolve against the shadow table, so productions can
// reach definitions overridden by later layers.
func (g *CompositeGrammar) Rule(symbol string) (*Rule, bool) {
	if strings.Contains(symbol, ".") {
		r, ok := g.qualified[symbol]
		return r, ok
	}
	r, ok := g.symbols[symbol]
	return r, ok
}

// Symbols returns the plain (unqualified) symbol names in sorted order.
func (g *CompositeGrammar) Symbols() []string {
	names := make([]string, 0, len(g.symbols))
	for name := range g.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stamps returns the layer stamps in cascade order.
func (g *CompositeGrammar) Stamps() []LayerStamp {
	return g.stamps
}

// Morphers returns the morpher registry the cascade was resolved against.
func (g *CompositeGrammar) Morphers() *morph.Registry {
	return g.morphers
}

// Resolver flattens cascades into composite grammars. The zero value is not
// usable; construct with NewResolver.
type Resolver struct {
	morphers *morph.Registry
	logger   *zap.Logger
}

// NewResolver returns a resolver validating lexeme slots against the given
// morpher registry. A nil registry means no morphers are available, so any
// lexeme slot fails resolution. A nil logger disables logging.
func NewResolver(morphers *morph.Registry, logger *zap.Logger) *Resolver {
	if morphers == nil {
		morphers = morph.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{morphers: morphers, logger: logger}
}

// Resolve merges the layers, in order, into one CompositeGrammar. Later
// layers' definitions shadow earlier ones for identically-named symbols;
// shadowed definitions stay reachable under "layer.symbol". All symbol and
// morpher references are validated here so generation never hits a missing
// name.
func (r *Resolver) Resolve(layers ...*Layer) (*CompositeGrammar, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("grammar: cannot resolve empty cascade")
	}
	if err := checkOverrideChains(layers); err != nil {
		return nil, err
	}

	g := &CompositeGrammar{
		symbols:   make(map[string]*Rule),
		qualified: make(map[string]*Rule),
		stamps:    make([]LayerStamp, 0, len(layers)),
		morphers:  r.morphers,
	}
	for _, layer := range layers {
		for name, rule := range layer.Symbols {
			if err := validateRule(layer.Name, name, rule); err != nil {
				return nil, err
			}
			g.symbols[name] = rule
			g.qualified[layer.Name+"."+name] = rule
		}
		g.stamps = append(g.stamps, LayerStamp{
			Name:        layer.Name,
			Fingerprint: fingerprintLayer(layer),
		})
	}

	// Reference check runs over the merged table so cross-layer references
	// (including qualified ones) resolve against the whole cascade.
	for _, layer := range layers {
		for name, rule := range layer.Symbols {
			for _, prod := range rule.Productions {
				for _, slot := range prod.Slots {
					switch slot.Kind {
					case SlotSymbol:
						if _, ok := g.Rule(slot.Text); !ok {
							return nil, &UnresolvedSymbolError{Symbol: slot.Text, Referrer: name, Layer: layer.Name}
						}
					case SlotLexeme:
						if _, ok := r.morphers.Lookup(slot.Morpher); !ok {
							return nil, &UnknownMorpherError{Layer: layer.Name, Symbol: name, Morpher: slot.Morpher}
						}
					}
				}
			}
		}
	}

	r.logger.Debug("cascade resolved",
		zap.Int("layers", len(layers)),
		zap.Int("symbols", len(g.symbols)))
	return g, nil
}

// checkOverrideChains walks every layer's Extends chain and fails on a cycle.
func checkOverrideChains(layers []*Layer) error {
	byName := make(map[string]*Layer, len(layers))
	for _, l := range layers {
		byName[l.Name] = l
	}
	for _, l := range layers {
		seen := map[string]bool{}
		chain := []string{}
		for cur := l; cur != nil && cur.Extends != ""; cur = byName[cur.Extends] {
			if seen[cur.Name] {
				return &CyclicOverrideError{Chain: append(chain, cur.Name)}
			}
			seen[cur.Name] = true
			chain = append(chain, cur.Name)
		}
	}
	return nil
}

func validateRule(layer, symbol string, rule *Rule) error {
	if len(rule.Productions) == 0 {
		return &InvalidRuleError{Layer: layer, Symbol: symbol, Reason: "no productions"}
	}
	total := 0.0
	for i, prod := range rule.Productions {
		if prod.Weight < 0 {
			return &InvalidRuleError{Layer: layer, Symbol: symbol,
				Reason: fmt.Sprintf("production %d has negative weight %g", i, prod.Weight)}
		}
		total += prod.Weight
	}
	if total <= 0 {
		return &InvalidRuleError{Layer: layer, Symbol: symbol, Reason: "production weights sum to zero"}
	}
	return nil
}

// fingerprintLayer serializes a layer's resolved symbol set canonically
// (sorted symbol names, weights with full precision, slot encodings with
// sorted assignment keys) and hashes it. Equal fingerprints mean the layers
// define byte-for-byte identical grammars.
func fingerprintLayer(layer *Layer) [sha256.Size]byte {
	h := sha256.New()
	names := make([]string, 0, len(layer.Symbols))
	for name := range layer.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rule := layer.Symbols[name]
		fmt.Fprintf(h, "sym %s tmpl %q\n", name, rule.Template)
		for _, prod := range rule.Productions {
			fmt.Fprintf(h, " prod w=%v\n", prod.Weight)
			for _, slot := range prod.Slots {
				fmt.Fprintf(h, "  slot %s %q morph=%q inherit=%v", slot.Kind, slot.Text, slot.Morpher, slot.Inherit)
				keys := make([]string, 0, len(slot.Assign))
				for k := range slot.Assign {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(h, " %s=%q", k, slot.Assign[k])
				}
				fmt.Fprintln(h)
			}
		}
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Package render turns derivation trees into surface strings. Rendering is a
// post-order walk with purely textual template substitution: no grammar
// logic, no tree mutation, and the same tree always renders to the same
// string.
//
// Template syntax: "{0}", "{1}", ... substitute the corresponding child's
// rendering; "{$NAME}" substitutes the node's own feature NAME. A rule with
// an empty template joins its rendered children with single spaces.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"synthling/internal/grammar"
	"synthling/internal/sampler"
)

// TemplateSlotMismatchError reports a template referencing a child slot
// beyond the chosen production's arity, a feature absent from the node's
// feature mapping, or a reference that cannot be parsed at all.
type TemplateSlotMismatchError struct {
	Symbol string
	Ref    string // the offending reference, e.g. "2" or "$TENSE"
	Arity  int    // number of children available
}

func (e *TemplateSlotMismatchError) Error() string {
	return fmt.Sprintf("render: template for %q references {%s} (arity %d)", e.Symbol, e.Ref, e.Arity)
}

// Render renders a derivation tree produced by sampling g. The grammar
// supplies each symbol's render template; the tree supplies everything else.
func Render(g *grammar.CompositeGrammar, node *sampler.Node) (string, error) {
	if node.IsLeaf() {
		return renderLeaf(g, node)
	}

	children := make([]string, len(node.Children))
	for i, child := range node.Children {
		s, err := Render(g, child)
		if err != nil {
			return "", err
		}
		children[i] = s
	}

	rule, ok := g.Rule(node.Symbol)
	if !ok {
		return "", fmt.Errorf("render: symbol %q not in grammar", node.Symbol)
	}
	if rule.Template == "" {
		return strings.Join(children, " "), nil
	}
	return substitute(node, rule.Template, children)
}

// renderLeaf renders a terminal: a plain literal verbatim, a lexeme through
// the grammar's morpher registry. The morpher lookup is part of the rule
// definition; the renderer just applies it.
func renderLeaf(g *grammar.CompositeGrammar, node *sampler.Node) (string, error) {
	if node.Morpher == "" {
		return node.Literal, nil
	}
	m, ok := g.Morphers().Lookup(node.Morpher)
	if !ok {
		// Resolve validates lexeme morphers, so this only fires for
		// hand-built trees.
		return "", fmt.Errorf("render: morpher %q not registered", node.Morpher)
	}
	form, err := m.Morph(node.Literal, node.Features)
	if err != nil {
		return "", fmt.Errorf("render: lexeme %q: %w", node.Literal, err)
	}
	return form, nil
}

func substitute(node *sampler.Node, template string, children []string) (string, error) {
	var out strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:open])
		rest = rest[open+1:]
		closing := strings.IndexByte(rest, '}')
		if closing < 0 {
			return "", &TemplateSlotMismatchError{Symbol: node.Symbol, Ref: rest, Arity: len(children)}
		}
		ref := rest[:closing]
		rest = rest[closing+1:]

		if strings.HasPrefix(ref, "$") {
			v, ok := node.Features[ref[1:]]
			if !ok {
				return "", &TemplateSlotMismatchError{Symbol: node.Symbol, Ref: ref, Arity: len(children)}
			}
			out.WriteString(v)
			continue
		}
		idx, err := strconv.Atoi(ref)
		if err != nil || idx < 0 || idx >= len(children) {
			return "", &TemplateSlotMismatchError{Symbol: node.Symbol, Ref: ref, Arity: len(children)}
		}
		out.WriteString(children[idx])
	}
}

// Package config loads grammar layers from YAML files into validated
// grammar.Layer values. The on-disk schema is a loader contract: the core
// resolver re-validates references and weights regardless of what the loader
// accepted.
//
// Layer file shape:
//
//	name: english
//	extends: syntax
//	symbols:
//	  S:
//	    template: "{0} {1}"
//	    rules:
//	      - weight: 1
//	        slots:
//	          - sym: NP
//	            set: {COUNT: sng}
//	          - sym: VP
//	            inherit: [COUNT]
//	  VB:
//	    rules:
//	      - slots:
//	          - lex: sleep
//	            morpher: english-verb
//	            inherit: [PERSON, COUNT, TENSE, POLARITY]
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"synthling/internal/grammar"
)

type layerFile struct {
	Name    string                `yaml:"name"`
	Extends string                `yaml:"extends"`
	Symbols map[string]symbolFile `yaml:"symbols"`
}

type symbolFile struct {
	Template string     `yaml:"template"`
	Rules    []ruleFile `yaml:"rules"`
}

type ruleFile struct {
	// Weight defaults to 1 when omitted.
	Weight *float64   `yaml:"weight"`
	Slots  []slotFile `yaml:"slots"`
}

type slotFile struct {
	Lit     string            `yaml:"lit"`
	Sym     string            `yaml:"sym"`
	Lex     string            `yaml:"lex"`
	Morpher string            `yaml:"morpher"`
	Inherit []string          `yaml:"inherit"`
	Set     map[string]string `yaml:"set"`
}

// LoadLayer reads and parses one layer file.
func LoadLayer(path string) (*grammar.Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read layer %s: %w", path, err)
	}
	layer, err := ParseLayer(data)
	if err != nil {
		return nil, fmt.Errorf("config: layer %s: %w", path, err)
	}
	return layer, nil
}

// LoadCascade loads an ordered list of layer files, upstream first.
func LoadCascade(paths []string) ([]*grammar.Layer, error) {
	layers := make([]*grammar.Layer, 0, len(paths))
	for _, path := range paths {
		layer, err := LoadLayer(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// ParseLayer parses YAML layer data into an immutable Layer value.
func ParseLayer(data []byte) (*grammar.Layer, error) {
	var lf layerFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if lf.Name == "" {
		return nil, fmt.Errorf("layer has no name")
	}

	layer := &grammar.Layer{
		Name:    lf.Name,
		Extends: lf.Extends,
		Symbols: make(map[string]*grammar.Rule, len(lf.Symbols)),
	}
	for symbol, sf := range lf.Symbols {
		rule := &grammar.Rule{Template: sf.Template}
		for i, rf := range sf.Rules {
			weight := 1.0
			if rf.Weight != nil {
				weight = *rf.Weight
			}
			prod := grammar.Production{Weight: weight}
			for j, slot := range rf.Slots {
				s, err := convertSlot(slot)
				if err != nil {
					return nil, fmt.Errorf("symbol %s rule %d slot %d: %w", symbol, i, j, err)
				}
				prod.Slots = append(prod.Slots, s)
			}
			rule.Productions = append(rule.Productions, prod)
		}
		layer.Symbols[symbol] = rule
	}
	return layer, nil
}

func convertSlot(sf slotFile) (grammar.Slot, error) {
	set := 0
	for _, v := range []string{sf.Lit, sf.Sym, sf.Lex} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return grammar.Slot{}, fmt.Errorf("exactly one of lit, sym, lex must be set")
	}

	slot := grammar.Slot{Inherit: sf.Inherit, Assign: sf.Set}
	switch {
	case sf.Lit != "":
		if sf.Morpher != "" {
			return grammar.Slot{}, fmt.Errorf("lit slot cannot name a morpher")
		}
		slot.Kind = grammar.SlotLiteral
		slot.Text = sf.Lit
	case sf.Sym != "":
		if sf.Morpher != "" {
			return grammar.Slot{}, fmt.Errorf("sym slot cannot name a morpher")
		}
		slot.Kind = grammar.SlotSymbol
		slot.Text = sf.Sym
	case sf.Lex != "":
		if sf.Morpher == "" {
			return grammar.Slot{}, fmt.Errorf("lex slot requires a morpher")
		}
		slot.Kind = grammar.SlotLexeme
		slot.Text = sf.Lex
		slot.Morpher = sf.Morpher
	}
	return slot, nil
}

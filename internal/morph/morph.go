// Package morph inflects word stems to express syntactic properties
// (number, person, tense, ...). Morphers are pure lookup tables: the same
// stem and property values always produce the same form.
package morph

import (
	"fmt"
	"strings"
)

// Morpher turns a word stem into an inflected surface form based on the
// property values that reached the leaf.
type Morpher interface {
	Morph(stem string, props map[string]string) (string, error)
}

// MissingPropertyError reports a property the morpher needs but the leaf's
// feature mapping does not carry.
type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("morph: property %q not present", e.Property)
}

// UnknownFormError reports a property-value combination the morpher's table
// has no entry for.
type UnknownFormError struct {
	Key string
}

func (e *UnknownFormError) Error() string {
	return fmt.Sprintf("morph: no form for property values %q", e.Key)
}

// Key joins property values into a single map key, standing in for the value
// tuples a morpher table is indexed by.
func Key(values ...string) string {
	return strings.Join(values, "|")
}

func lookupKey(propertyNames []string, props map[string]string) (string, error) {
	values := make([]string, len(propertyNames))
	for i, name := range propertyNames {
		v, ok := props[name]
		if !ok {
			return "", &MissingPropertyError{Property: name}
		}
		values[i] = v
	}
	return Key(values...), nil
}

// SuffixMorpher appends a suffix chosen by a tuple of property values.
// For instance, German adjectives take suffixes based on the gender and case
// of the noun they modify:
//
//	m := NewSuffixMorpher([]string{"GENDER", "CASE"}, map[string]string{
//		Key("m", "acc"): "en",
//		Key("f", "acc"): "e",
//	})
//	m.Morph("rot", map[string]string{"GENDER": "m", "CASE": "acc"}) // "roten"
type SuffixMorpher struct {
	propertyNames []string
	suffixes      map[string]string
}

// NewSuffixMorpher builds a suffix morpher keyed by the given property names,
// in order. The suffix map is keyed by Key over the corresponding values.
func NewSuffixMorpher(propertyNames []string, suffixes map[string]string) *SuffixMorpher {
	return &SuffixMorpher{propertyNames: propertyNames, suffixes: suffixes}
}

func (m *SuffixMorpher) Morph(stem string, props map[string]string) (string, error) {
	key, err := lookupKey(m.propertyNames, props)
	if err != nil {
		return "", err
	}
	suffix, ok := m.suffixes[key]
	if !ok {
		return "", &UnknownFormError{Key: key}
	}
	return stem + suffix, nil
}

// PrefixMorpher prepends a prefix chosen by a tuple of property values.
type PrefixMorpher struct {
	propertyNames []string
	prefixes      map[string]string
}

// NewPrefixMorpher builds a prefix morpher keyed by the given property names.
func NewPrefixMorpher(propertyNames []string, prefixes map[string]string) *PrefixMorpher {
	return &PrefixMorpher{propertyNames: propertyNames, prefixes: prefixes}
}

func (m *PrefixMorpher) Morph(stem string, props map[string]string) (string, error) {
	key, err := lookupKey(m.propertyNames, props)
	if err != nil {
		return "", err
	}
	prefix, ok := m.prefixes[key]
	if !ok {
		return "", &UnknownFormError{Key: key}
	}
	return prefix + stem, nil
}

// Registry maps morpher names (as referenced by lexeme slots) to
// implementations. Not safe for concurrent registration; register everything
// before resolving cascades.
type Registry struct {
	morphers map[string]Morpher
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{morphers: make(map[string]Morpher)}
}

// Register adds or replaces a named morpher.
func (r *Registry) Register(name string, m Morpher) {
	r.morphers[name] = m
}

// Lookup returns the named morpher.
func (r *Registry) Lookup(name string) (Morpher, bool) {
	m, ok := r.morphers[name]
	return m, ok
}

// Builtin returns a registry preloaded with the stock morphers:
// "english-noun", "english-verb" and "japanese-verb".
func Builtin() *Registry {
	r := NewRegistry()
	r.Register("english-noun", NewEnglishNounMorpher())
	r.Register("english-verb", NewEnglishVerbMorpher())
	r.Register("japanese-verb", NewJapaneseVerbMorpher())
	return r
}

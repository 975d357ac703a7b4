package morph

// Property names used by the stock English and Japanese morphers.
const (
	PropPerson   = "PERSON"   // "1" or "3"
	PropCount    = "COUNT"    // "sng" or "plu"
	PropTense    = "TENSE"    // "present" or "perfect"
	PropPolarity = "POLARITY" // "pos" or "neg"
)

// EnglishVerbMorpher conjugates an English verb stem: an agreement suffix for
// positive forms, and a do-support prefix ("do not", "does not", "did not")
// for negated forms, which take the bare stem.
type EnglishVerbMorpher struct {
	suffix *SuffixMorpher
	negate *PrefixMorpher
}

// NewEnglishVerbMorpher builds the stock English verb morpher.
func NewEnglishVerbMorpher() *EnglishVerbMorpher {
	props := []string{PropPerson, PropCount, PropTense, PropPolarity}
	return &EnglishVerbMorpher{
		suffix: NewSuffixMorpher(props, map[string]string{
			Key("1", "sng", "present", "pos"): "",
			Key("1", "plu", "present", "pos"): "",
			Key("1", "sng", "perfect", "pos"): "d",
			Key("1", "plu", "perfect", "pos"): "d",
			Key("3", "sng", "present", "pos"): "s",
			Key("3", "plu", "present", "pos"): "",
			Key("3", "sng", "perfect", "pos"): "d",
			Key("3", "plu", "perfect", "pos"): "d",
			Key("1", "sng", "present", "neg"): "",
			Key("1", "plu", "present", "neg"): "",
			Key("1", "sng", "perfect", "neg"): "",
			Key("1", "plu", "perfect", "neg"): "",
			Key("3", "sng", "present", "neg"): "",
			Key("3", "plu", "present", "neg"): "",
			Key("3", "sng", "perfect", "neg"): "",
			Key("3", "plu", "perfect", "neg"): "",
		}),
		negate: NewPrefixMorpher(props, map[string]string{
			Key("1", "sng", "present", "pos"): "",
			Key("1", "plu", "present", "pos"): "",
			Key("1", "sng", "perfect", "pos"): "",
			Key("1", "plu", "perfect", "pos"): "",
			Key("3", "sng", "present", "pos"): "",
			Key("3", "plu", "present", "pos"): "",
			Key("3", "sng", "perfect", "pos"): "",
			Key("3", "plu", "perfect", "pos"): "",
			Key("1", "sng", "present", "neg"): "do not ",
			Key("1", "plu", "present", "neg"): "do not ",
			Key("1", "sng", "perfect", "neg"): "did not ",
			Key("1", "plu", "perfect", "neg"): "did not ",
			Key("3", "sng", "present", "neg"): "does not ",
			Key("3", "plu", "present", "neg"): "do not ",
			Key("3", "sng", "perfect", "neg"): "did not ",
			Key("3", "plu", "perfect", "neg"): "did not ",
		}),
	}
}

func (m *EnglishVerbMorpher) Morph(stem string, props map[string]string) (string, error) {
	suffixed, err := m.suffix.Morph(stem, props)
	if err != nil {
		return "", err
	}
	return m.negate.Morph(suffixed, props)
}

// EnglishNounMorpher pluralizes an English noun stem.
type EnglishNounMorpher struct {
	base *SuffixMorpher
}

// NewEnglishNounMorpher builds the stock English noun morpher.
func NewEnglishNounMorpher() *EnglishNounMorpher {
	return &EnglishNounMorpher{
		base: NewSuffixMorpher([]string{PropCount}, map[string]string{
			Key("sng"): "",
			Key("plu"): "s",
		}),
	}
}

func (m *EnglishNounMorpher) Morph(stem string, props map[string]string) (string, error) {
	return m.base.Morph(stem, props)
}

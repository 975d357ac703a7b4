package morph

// JapaneseVerbMorpher conjugates a Japanese verb stem in the polite register:
// -masu for present, -mashita for perfect. Person and count do not affect the
// form but are part of the key so agreement mistakes fail loudly.
type JapaneseVerbMorpher struct {
	base *SuffixMorpher
}

// NewJapaneseVerbMorpher builds the stock Japanese verb morpher.
func NewJapaneseVerbMorpher() *JapaneseVerbMorpher {
	return &JapaneseVerbMorpher{
		base: NewSuffixMorpher([]string{PropPerson, PropCount, PropTense}, map[string]string{
			Key("1", "sng", "present"): "masu",
			Key("1", "plu", "present"): "masu",
			Key("1", "sng", "perfect"): "mashita",
			Key("1", "plu", "perfect"): "mashita",
			Key("3", "sng", "present"): "masu",
			Key("3", "plu", "present"): "masu",
			Key("3", "sng", "perfect"): "mashita",
			Key("3", "plu", "perfect"): "mashita",
		}),
	}
}

func (m *JapaneseVerbMorpher) Morph(stem string, props map[string]string) (string, error) {
	return m.base.Morph(stem, props)
}

package corpus

import (
	"strconv"
	"strings"
)

// StreamNgrams yields the order-grams of each line, with numeric tokens
// normalized to "*NUM*" so corpus statistics do not fragment across literal
// numbers. A nil tokenizer splits on whitespace.
func StreamNgrams(lines []string, order int, tokenize func(string) []string) []string {
	if tokenize == nil {
		tokenize = strings.Fields
	}
	var ngrams []string
	for _, line := range lines {
		words := tokenize(line)
		for i, w := range words {
			if isNumber(w) {
				words[i] = "*NUM*"
			}
		}
		for i := 0; i+order <= len(words); i++ {
			ngrams = append(ngrams, strings.Join(words[i:i+order], " "))
		}
	}
	return ngrams
}

// NgramCounts tallies the order-grams of the lines.
func NgramCounts(lines []string, order int) map[string]int {
	counts := make(map[string]int)
	for _, g := range StreamNgrams(lines, order, nil) {
		counts[g]++
	}
	return counts
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"synthling/internal/corpus"
)

var (
	statsIn    string
	statsOrder int
	statsTop   int
)

// statsCmd summarizes n-gram frequencies of a generated corpus
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print n-gram statistics for a generated corpus file",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsIn, "in", "", "corpus file, one sentence per line")
	statsCmd.Flags().IntVar(&statsOrder, "order", 2, "n-gram order")
	statsCmd.Flags().IntVar(&statsTop, "top", 20, "number of n-grams to print")
	statsCmd.MarkFlagRequired("in")
}

func runStats(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(statsIn)
	if err != nil {
		return fmt.Errorf("read corpus %s: %w", statsIn, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	counts := corpus.NgramCounts(lines, statsOrder)
	type entry struct {
		gram  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for g, c := range counts {
		entries = append(entries, entry{g, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].gram < entries[j].gram
	})

	fmt.Printf("%d lines, %d distinct %d-grams\n", len(lines), len(entries), statsOrder)
	for i, e := range entries {
		if i >= statsTop {
			break
		}
		fmt.Printf("%6d  %s\n", e.count, e.gram)
	}
	return nil
}

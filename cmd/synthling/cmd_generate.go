package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"synthling/internal/config"
	"synthling/internal/corpus"
	"synthling/internal/morph"
)

var (
	genLayers  []string
	genStart   string
	genSamples int
	genSeed    uint64
	genOut     string
	genDB      string
	genDepth   int
)

// generateCmd renders n samples from one cascade
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate sentences from a single cascade",
	Long: `Resolves an ordered list of layer files into one composite grammar and
renders the requested number of samples, one sentence per line.

Example:
  synthling generate --layer semantic.yaml --layer syntax.yaml --layer english.yaml \
      --start S -n 100 --seed 42 --out english.txt`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVar(&genLayers, "layer", nil, "layer file, upstream first (repeatable)")
	generateCmd.Flags().StringVar(&genStart, "start", "S", "start symbol")
	generateCmd.Flags().IntVarP(&genSamples, "samples", "n", 10, "number of samples")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "base random seed")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output path (default stdout)")
	generateCmd.Flags().StringVar(&genDB, "db", "", "write samples into this SQLite corpus database")
	generateCmd.Flags().IntVar(&genDepth, "max-depth", 0, "derivation depth ceiling (0 = default)")
	generateCmd.MarkFlagRequired("layer")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	layers, err := config.LoadCascade(genLayers)
	if err != nil {
		return err
	}

	aligner := corpus.NewAligner(genStart, morph.Builtin(), logger)
	aligner.MaxDepth = genDepth
	sentences, err := aligner.Generate(ctx, layers, genSamples, genSeed)
	if err != nil {
		return err
	}

	sink, cleanup, err := openSink(ctx, genOut, genDB)
	if err != nil {
		return err
	}
	defer cleanup()

	tuples := make([][]string, len(sentences))
	for i, s := range sentences {
		tuples[i] = []string{s}
	}
	if err := corpus.Emit(ctx, sink, tuples); err != nil {
		return err
	}
	logger.Info("generation complete",
		zap.Int("samples", len(sentences)),
		zap.Uint64("seed", genSeed))
	return nil
}

// openSink picks the output sink: SQLite when a db path is given, otherwise a
// line writer on the output path or stdout. The returned cleanup closes
// whatever was opened.
func openSink(ctx context.Context, outPath, dbPath string) (corpus.Sink, func(), error) {
	if dbPath != "" {
		sink, err := corpus.NewSQLiteSink(ctx, dbPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("writing corpus to sqlite",
			zap.String("path", dbPath),
			zap.String("run_id", sink.RunID()))
		return sink, func() { sink.Close() }, nil
	}

	var w io.Writer = os.Stdout
	cleanup := func() {}
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return nil, nil, fmt.Errorf("create output %s: %w", outPath, err)
		}
		w = f
		cleanup = func() { f.Close() }
	}
	return corpus.NewWriterSink(w), cleanup, nil
}

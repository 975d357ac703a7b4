// Package corpus drives sampling and rendering across one or more cascades to
// emit corpora. The aligner guarantees that cascades sharing an upstream
// layer produce structurally aligned output: sample i in every cascade
// derives from the same semantic content.
package corpus

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"synthling/internal/grammar"
	"synthling/internal/morph"
	"synthling/internal/render"
	"synthling/internal/sampler"
)

// CascadeDivergenceError reports that cascades handed to one parallel call do
// not share an upstream layer prefix, or that identically named shared layers
// resolved to different grammars. Proceeding would silently emit misaligned
// "parallel" data, so this is fatal.
type CascadeDivergenceError struct {
	Layer    string // diverging layer name; empty when no prefix exists at all
	CascadeA int
	CascadeB int
}

func (e *CascadeDivergenceError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("corpus: cascades %d and %d share no upstream layer", e.CascadeA, e.CascadeB)
	}
	return fmt.Sprintf("corpus: shared layer %q differs between cascades %d and %d", e.Layer, e.CascadeA, e.CascadeB)
}

// Aligner generates aligned corpora. Fields may be set before the first
// generation call; after that the aligner is read-only.
type Aligner struct {
	// Start is the symbol every derivation starts from.
	Start string
	// MaxDepth overrides the sampler depth ceiling when positive.
	MaxDepth int
	// Concurrency bounds the number of in-flight sample indices; zero means
	// GOMAXPROCS.
	Concurrency int

	morphers *morph.Registry
	logger   *zap.Logger
}

// NewAligner returns an aligner deriving from the given start symbol. A nil
// registry falls back to the builtin morphers; a nil logger disables logging.
func NewAligner(start string, morphers *morph.Registry, logger *zap.Logger) *Aligner {
	if morphers == nil {
		morphers = morph.Builtin()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aligner{Start: start, morphers: morphers, logger: logger}
}

// Generate renders n samples from a single cascade, in ascending sample-index
// order. Equivalent to GenerateParallel with one cascade, flattened.
func (a *Aligner) Generate(ctx context.Context, layers []*grammar.Layer, n int, baseSeed uint64) ([]string, error) {
	tuples, err := a.GenerateParallel(ctx, [][]*grammar.Layer{layers}, n, baseSeed)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(tuples))
	for i, t := range tuples {
		out[i] = t[0]
	}
	return out, nil
}

// GenerateParallel resolves each cascade, verifies they share an upstream
// layer prefix, and renders sample indices 0..n-1 through every cascade.
// Returns exactly n tuples in ascending index order, each with one surface
// string per cascade. Sample index i uses seed SeedForIndex(baseSeed, i) in
// every cascade, which is what keeps the shared-layer portion of each
// derivation identical across cascades.
//
// Indices are computed concurrently; each sample is a pure function of its
// inputs, so the only shared state is the read-only grammars. Any sample's
// failure fails the whole batch: skipping indices would break alignment.
func (a *Aligner) GenerateParallel(ctx context.Context, cascades [][]*grammar.Layer, n int, baseSeed uint64) ([][]string, error) {
	if len(cascades) == 0 {
		return nil, fmt.Errorf("corpus: no cascades given")
	}
	if n < 0 {
		return nil, fmt.Errorf("corpus: negative sample count %d", n)
	}

	resolver := grammar.NewResolver(a.morphers, a.logger)
	grammars := make([]*grammar.CompositeGrammar, len(cascades))
	for i, layers := range cascades {
		g, err := resolver.Resolve(layers...)
		if err != nil {
			return nil, fmt.Errorf("corpus: cascade %d: %w", i, err)
		}
		grammars[i] = g
	}
	if err := checkSharedPrefix(grammars); err != nil {
		return nil, err
	}

	smp := sampler.New(a.logger)
	if a.MaxDepth > 0 {
		smp.MaxDepth = a.MaxDepth
	}

	results := make([][]string, n)
	eg, egCtx := errgroup.WithContext(ctx)
	limit := a.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	eg.SetLimit(limit)

	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			seed := sampler.SeedForIndex(baseSeed, i)
			tuple := make([]string, len(grammars))
			for c, g := range grammars {
				node, err := smp.Sample(g, a.Start, seed)
				if err != nil {
					return fmt.Errorf("corpus: sample %d cascade %d: %w", i, c, err)
				}
				s, err := render.Render(g, node)
				if err != nil {
					return fmt.Errorf("corpus: sample %d cascade %d: %w", i, c, err)
				}
				tuple[c] = s
			}
			results[i] = tuple
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	a.logger.Info("corpus generated",
		zap.Int("samples", n),
		zap.Int("cascades", len(cascades)))
	return results, nil
}

// checkSharedPrefix verifies every pair of cascades shares at least one
// leading layer and that identically named leading layers resolved to equal
// fingerprints. Comparison uses the resolver's per-layer stamps, which hash
// the layer's resolved symbol set and production weights.
func checkSharedPrefix(grammars []*grammar.CompositeGrammar) error {
	if len(grammars) < 2 {
		return nil
	}
	base := grammars[0].Stamps()
	for j := 1; j < len(grammars); j++ {
		other := grammars[j].Stamps()
		shared := 0
		for shared < len(base) && shared < len(other) && base[shared].Name == other[shared].Name {
			if base[shared].Fingerprint != other[shared].Fingerprint {
				return &CascadeDivergenceError{Layer: base[shared].Name, CascadeA: 0, CascadeB: j}
			}
			shared++
		}
		if shared == 0 {
			return &CascadeDivergenceError{CascadeA: 0, CascadeB: j}
		}
	}
	return nil
}

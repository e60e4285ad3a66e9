// Package pipeline runs the six build stages in their required order: parse
// store, read base vocabularies, resolve specials, assemble, synthesize
// deferred vectors, finalize and persist. The stages consume the token pool
// destructively, so they must never run concurrently or out of order.
package pipeline

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/crimson-sun/vocabforge/internal/artifact"
	"github.com/crimson-sun/vocabforge/internal/assemble"
	"github.com/crimson-sun/vocabforge/internal/config"
	"github.com/crimson-sun/vocabforge/internal/glove"
	"github.com/crimson-sun/vocabforge/internal/vocab"
)

// MatrixSuffix and VocabSuffix name the two output artifacts relative to the
// configured prefix.
const (
	MatrixSuffix = ".safetensors"
	VocabSuffix  = ".vocab.json"
)

// Run executes one complete build. Any error aborts before artifacts are
// written; both files appear only after the matrix is finalized.
func Run(cfg config.Config) error {
	pool, err := glove.Load(cfg.VectorsPath)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	slog.Info("parsed pretrained vectors", "count", pool.Len(), "dim", pool.Dim())

	base, err := vocab.ReadBase(cfg.VocabPaths)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if len(cfg.VocabPaths) > 0 {
		slog.Info("read base vocabulary", "files", len(cfg.VocabPaths), "tokens", len(base))
	}

	specials := glove.ResolveSpecials(pool)

	a, err := assemble.Build(pool, specials, base, cfg.TargetSize)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if len(a.Deferred) > 0 {
		slog.Info("deferring tokens without pretrained vectors", "count", len(a.Deferred))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if err := a.SynthesizeDeferred(rng); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	m, err := a.Finalize()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := artifact.WriteMatrix(cfg.OutPrefix+MatrixSuffix, m); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := artifact.WriteVocab(cfg.OutPrefix+VocabSuffix, a.Vocab); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	rows, cols := m.Dims()
	slog.Info("wrote artifacts",
		"vocab_size", rows, "dim", cols,
		"matrix", cfg.OutPrefix+MatrixSuffix,
		"vocab", cfg.OutPrefix+VocabSuffix)
	return nil
}

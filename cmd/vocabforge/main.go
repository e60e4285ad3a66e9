// Command vocabforge builds a fixed-size vocabulary and its embedding matrix
// from a pretrained word-vector dump.
//
// Usage:
//
//	vocabforge -vectors glove.6B.300d.txt -vocab train.vocab -size 50000 -out data/emb
//
// writes data/emb.safetensors (half-precision matrix) and data/emb.vocab.json
// (token → row index).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/crimson-sun/vocabforge/internal/config"
	"github.com/crimson-sun/vocabforge/internal/logging"
	"github.com/crimson-sun/vocabforge/internal/pipeline"
)

// stringList collects repeated flag occurrences.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	cfg := config.Default()

	var vocabs stringList
	flag.StringVar(&cfg.VectorsPath, "vectors", "", "pretrained word-vector text file (required)")
	flag.Var(&vocabs, "vocab", "base-vocabulary file whose tokens must appear in the output (repeatable)")
	flag.IntVar(&cfg.TargetSize, "size", 0, "target vocabulary size (0 = unbounded)")
	flag.StringVar(&cfg.OutPrefix, "out", "", "output path prefix (required)")
	flag.Int64Var(&cfg.Seed, "seed", config.DefaultSeed, "seed for deferred-vector synthesis")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	flag.Parse()
	cfg.VocabPaths = vocabs

	logging.Init(cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		flag.Usage()
		os.Exit(2)
	}

	if err := pipeline.Run(cfg); err != nil {
		slog.Error("build failed", "err", err)
		os.Exit(1)
	}
}

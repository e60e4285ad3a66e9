package config

import (
	"errors"
	"fmt"
	"os"
)

// DefaultSeed is the fixed seed for deferred-vector synthesis. Builds with
// identical inputs and seed produce byte-identical artifacts.
const DefaultSeed = 1234

// Config holds all vocabforge settings. It is populated from command-line
// flags in cmd/vocabforge; the tool reads no environment variables.
type Config struct {
	// VectorsPath is the pretrained word-vector text file (GloVe/fastText dump).
	VectorsPath string
	// VocabPaths are zero or more base-vocabulary files whose tokens must
	// appear in the output.
	VocabPaths []string
	// TargetSize bounds the final vocabulary size. 0 means unbounded.
	TargetSize int
	// OutPrefix is the output path prefix; the tool writes
	// <prefix>.safetensors and <prefix>.vocab.json.
	OutPrefix string
	// Seed drives the synthesis RNG.
	Seed int64

	LogLevel  string // "debug", "info", "warn", "error"
	LogFormat string // "text" or "json"
}

// Default returns a Config with all optional fields at their defaults.
func Default() Config {
	return Config{
		Seed:      DefaultSeed,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Validate checks the configuration and returns all problems joined into one
// error, or nil.
func (c Config) Validate() error {
	var errs []error

	if c.VectorsPath == "" {
		errs = append(errs, errors.New("config: -vectors is required"))
	} else if _, err := os.Stat(c.VectorsPath); err != nil {
		errs = append(errs, fmt.Errorf("config: vectors file: %w", err))
	}

	for _, p := range c.VocabPaths {
		if _, err := os.Stat(p); err != nil {
			errs = append(errs, fmt.Errorf("config: vocab file: %w", err))
		}
	}

	if c.OutPrefix == "" {
		errs = append(errs, errors.New("config: -out is required"))
	}
	if c.TargetSize < 0 {
		errs = append(errs, fmt.Errorf("config: -size must be >= 0, got %d", c.TargetSize))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("config: -log-format must be 'text' or 'json', got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

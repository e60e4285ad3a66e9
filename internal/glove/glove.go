// Package glove parses pretrained word-vector text dumps (GloVe/fastText
// style) into an insertion-ordered token pool that downstream stages consume
// destructively.
package glove

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedLine marks a store line whose value count disagrees with the
// dimensionality established by the first line.
var ErrMalformedLine = errors.New("glove: malformed line")

// Scanner buffer large enough for fastText dumps with 300-dim vectors and
// long tokens.
const maxLineBytes = 1 << 20

// Load parses a whitespace-separated vector file where each line is
// "token v1 v2 ... vD". The first line fixes D; any later line with a
// different value count is a fatal error, since it would corrupt matrix row
// width. Duplicate tokens keep their first vector.
func Load(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("glove: %w", err)
	}
	defer f.Close()

	var pool *Pool
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		token, values := fields[0], fields[1:]

		if pool == nil {
			if len(values) == 0 {
				return nil, fmt.Errorf("%w: line 1 has no values", ErrMalformedLine)
			}
			pool = NewPool(len(values))
		}
		if len(values) != pool.Dim() {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d",
				ErrMalformedLine, lineNo, len(values), pool.Dim())
		}

		vec := make([]float64, len(values))
		for i, v := range values {
			vec[i], err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNo, err)
			}
		}

		if !pool.Add(token, vec) {
			slog.Debug("duplicate token in pretrained store", "token", token, "line", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("glove: read error: %w", err)
	}
	if pool == nil || pool.Len() == 0 {
		return nil, fmt.Errorf("glove: no vectors found in %s", path)
	}

	return pool, nil
}

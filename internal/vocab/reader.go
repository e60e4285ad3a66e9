package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"
)

// reservedBase is the base-vocabulary format's own reserved-name set. These
// are control tokens of the source format, not user tokens; the pipeline
// seeds its own specials, so they are dropped on read.
var reservedBase = map[string]bool{
	"<pad>": true,
	"<bos>": true,
	"<eos>": true,
	"<unk>": true,
}

// ReadBase reads the given base-vocabulary files and returns the union of
// their tokens. Each line's leading field is the token (trailing fields, such
// as frequency counts, are ignored). Order follows first occurrence across
// files in argument order; reserved tokens are excluded. Tokens are
// NFC-normalized so lookups against the pretrained pool are not defeated by
// decomposed Unicode forms.
func ReadBase(paths []string) ([]string, error) {
	var tokens []string
	seen := make(map[string]bool)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("vocab: %w", err)
		}
		tokens, err = readBase(f, tokens, seen)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("vocab: %s: %w", path, err)
		}
	}
	return tokens, nil
}

func readBase(r io.Reader, tokens []string, seen map[string]bool) ([]string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fields := splitFields(line)
		if len(fields) == 0 {
			continue
		}
		tok := norm.NFC.String(fields[0])
		if reservedBase[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return tokens, nil
}

// splitFields splits on ASCII spaces and tabs only. strings.Fields would also
// split on non-breaking space, which is a legitimate token character here.
func splitFields(line string) []string {
	var fields []string
	start := -1
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' || line[i] == '\t' {
			if start >= 0 {
				fields = append(fields, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, line[start:])
	}
	return fields
}

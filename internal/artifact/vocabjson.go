package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/crimson-sun/vocabforge/internal/vocab"
)

// WriteVocab writes the vocabulary to path as a JSON object mapping each
// token to its row index, keys in index order. Tokens are emitted verbatim:
// HTML escaping is off so "<s>"-style control tokens survive, and non-ASCII
// stays unescaped UTF-8.
func WriteVocab(path string, v *vocab.Vocab) error {
	return writeAtomic(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, "{"); err != nil {
			return err
		}
		for i, tok := range v.Tokens() {
			key, err := encodeJSONString(tok)
			if err != nil {
				return fmt.Errorf("encode token %q: %w", tok, err)
			}
			sep := ","
			if i == 0 {
				sep = ""
			}
			if _, err := fmt.Fprintf(w, "%s\n  %s: %d", sep, key, i); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n}\n")
		return err
	})
}

// encodeJSONString marshals s as a JSON string without HTML escaping.
func encodeJSONString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

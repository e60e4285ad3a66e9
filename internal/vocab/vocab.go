// Package vocab provides the insertion-ordered vocabulary assembled by the
// pipeline and the reader for caller-supplied base-vocabulary files.
package vocab

import "fmt"

// Vocab is an ordered set of unique tokens. A token's index is its row in the
// embedding matrix, so insertion order is significant and fixed for the
// lifetime of the artifact.
type Vocab struct {
	index  map[string]int
	tokens []string
}

// New creates an empty vocabulary.
func New() *Vocab {
	return &Vocab{index: make(map[string]int)}
}

// Add appends token and returns its index. Duplicates are an error: every
// index must map to exactly one token.
func (v *Vocab) Add(token string) (int, error) {
	if i, ok := v.index[token]; ok {
		return i, fmt.Errorf("vocab: duplicate token %q at index %d", token, i)
	}
	i := len(v.tokens)
	v.index[token] = i
	v.tokens = append(v.tokens, token)
	return i, nil
}

// Index returns the index of token.
func (v *Vocab) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Contains reports whether token is in the vocabulary.
func (v *Vocab) Contains(token string) bool {
	_, ok := v.index[token]
	return ok
}

// Len returns the number of tokens.
func (v *Vocab) Len() int { return len(v.tokens) }

// Tokens returns the tokens in index order. The slice is shared; callers must
// not modify it.
func (v *Vocab) Tokens() []string { return v.tokens }

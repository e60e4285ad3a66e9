// Package assemble merges special tokens, base-vocabulary tokens, and a
// size-bounded slice of pretrained tokens into one ordered vocabulary with a
// vector per token.
package assemble

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"gonum.org/v1/gonum/mat"

	"github.com/crimson-sun/vocabforge/internal/glove"
	"github.com/crimson-sun/vocabforge/internal/vocab"
)

// Canonical control tokens, in vocabulary index order.
const (
	PadToken = "<pad>"
	BosToken = "<bos>"
	EosToken = "<eos>"
	UnkToken = "<unk>"
)

// ErrMissingSpecial reports a sentence-boundary token absent from the
// pretrained store. <pad> and <unk> get placeholder vectors, but <bos> and
// <eos> have no synthesis path.
var ErrMissingSpecial = errors.New("assemble: missing required special token")

// lowerAlpha matches the tokens eligible for the auto-filled tail: strictly
// lowercase alphabetic, no digits, punctuation, or cased forms.
var lowerAlpha = regexp.MustCompile(`^[a-z]+$`)

// Assembly is the vocabulary and matrix under construction. Rows and tokens
// are appended strictly in lockstep: row i is always the vector for token i.
type Assembly struct {
	Vocab *vocab.Vocab
	// Deferred lists base tokens with no pretrained vector, in the order
	// they were encountered. SynthesizeDeferred appends their rows.
	Deferred []string

	rows [][]float64
	dim  int
}

// Rows returns the number of matrix rows appended so far.
func (a *Assembly) Rows() int { return len(a.rows) }

// Dim returns the vector dimensionality.
func (a *Assembly) Dim() int { return a.dim }

func (a *Assembly) appendRow(token string, vec []float64) error {
	if _, err := a.Vocab.Add(token); err != nil {
		return err
	}
	a.rows = append(a.rows, vec)
	return nil
}

// Build produces the vocabulary and partial matrix from the reduced pool, the
// resolved specials, and the base-token list, consuming pool vectors as it
// assigns them.
//
// Index order is fixed: <pad>, <bos>, <eos>, <unk>, resolved base tokens,
// then admitted pretrained tokens in pool order. Deferred base tokens are
// recorded for SynthesizeDeferred, which appends them after the admitted
// tail. When targetSize > 0, the admitted count is targetSize minus the
// mandatory tokens (specials, resolved base, deferred), clamped at zero.
func Build(pool *glove.Pool, specials map[string][]float64, base []string, targetSize int) (*Assembly, error) {
	a := &Assembly{Vocab: vocab.New(), dim: pool.Dim()}

	bos, ok := firstOf(specials, "<s>", BosToken)
	if !ok {
		return nil, fmt.Errorf("%w: %s (tried <s>, <bos>)", ErrMissingSpecial, BosToken)
	}
	eos, ok := firstOf(specials, "</s>", EosToken)
	if !ok {
		return nil, fmt.Errorf("%w: %s (tried </s>, <eos>)", ErrMissingSpecial, EosToken)
	}

	// <pad> and <unk> take zero placeholders; <unk> is overwritten with the
	// global mean in Finalize, <pad> is never consulted by the model.
	seed := []struct {
		token string
		vec   []float64
	}{
		{PadToken, make([]float64, a.dim)},
		{BosToken, bos},
		{EosToken, eos},
		{UnkToken, make([]float64, a.dim)},
	}
	for _, s := range seed {
		if err := a.appendRow(s.token, s.vec); err != nil {
			return nil, err
		}
	}

	// Moses-style tokenization escapes the hyphen as @-@, which pretrained
	// dumps never contain. Alias it to the plain hyphen's vector.
	if pool.Alias("@-@", "-") {
		slog.Debug("aliased @-@ to plain hyphen vector")
	}

	for _, tok := range base {
		vec, ok := pool.Take(tok)
		if !ok {
			a.Deferred = append(a.Deferred, tok)
			continue
		}
		if err := a.appendRow(tok, vec); err != nil {
			return nil, err
		}
	}

	admit := -1 // unbounded
	if targetSize > 0 {
		admit = targetSize - a.Vocab.Len() - len(a.Deferred)
		if admit < 0 {
			slog.Warn("target size smaller than mandatory token count, admitting none",
				"target", targetSize, "mandatory", a.Vocab.Len()+len(a.Deferred))
			admit = 0
		}
	}

	if admit != 0 {
		var admitted []string
		pool.Each(func(token string, _ []float64) bool {
			if !lowerAlpha.MatchString(token) {
				return true
			}
			admitted = append(admitted, token)
			return admit < 0 || len(admitted) < admit
		})
		for _, tok := range admitted {
			vec, _ := pool.Take(tok)
			if err := a.appendRow(tok, vec); err != nil {
				return nil, err
			}
		}
	}

	return a, nil
}

// firstOf returns the first present vector among the given names.
func firstOf(specials map[string][]float64, names ...string) ([]float64, bool) {
	for _, name := range names {
		if vec, ok := specials[name]; ok {
			return vec, true
		}
	}
	return nil, false
}

// Finalize assembles the final matrix and overwrites the <unk> row with the
// elementwise mean of all rows, deferred rows included.
func (a *Assembly) Finalize() (*mat.Dense, error) {
	if a.Vocab.Len() != len(a.rows) {
		return nil, fmt.Errorf("assemble: %d tokens but %d rows", a.Vocab.Len(), len(a.rows))
	}
	n := len(a.rows)
	if n == 0 {
		return nil, errors.New("assemble: empty vocabulary")
	}

	m := mat.NewDense(n, a.dim, nil)
	mean := make([]float64, a.dim)
	for i, row := range a.rows {
		m.SetRow(i, row)
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}

	unk, ok := a.Vocab.Index(UnkToken)
	if !ok {
		return nil, fmt.Errorf("assemble: vocabulary missing %s", UnkToken)
	}
	m.SetRow(unk, mean)
	return m, nil
}

package assemble

import (
	"fmt"
	"math/rand"
)

// sampleSize is the number of existing rows averaged per synthesized vector.
const sampleSize = 10000

// SynthesizeDeferred appends a row for each deferred token, in list order.
// Each vector is the elementwise mean of a fresh random sample of the rows
// assembled so far (all of them when fewer than sampleSize exist), so the
// token's own row never contributes to its sample. The caller owns the rng
// and its seed; identical seeds give identical matrices.
func (a *Assembly) SynthesizeDeferred(rng *rand.Rand) error {
	for _, tok := range a.Deferred {
		n := len(a.rows)
		if n == 0 {
			return fmt.Errorf("assemble: no rows to sample for deferred token %q", tok)
		}
		k := sampleSize
		if n < k {
			k = n
		}

		vec := make([]float64, a.dim)
		for _, ri := range rng.Perm(n)[:k] {
			for j, v := range a.rows[ri] {
				vec[j] += v
			}
		}
		inv := 1 / float64(k)
		for j := range vec {
			vec[j] *= inv
		}

		if err := a.appendRow(tok, vec); err != nil {
			return err
		}
	}
	return nil
}

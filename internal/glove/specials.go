package glove

import "strings"

// specialTokens is the fixed probe order for reserved sequence tokens.
// Different pretrained dumps spell these differently, so the assembler
// accepts <s>/<bos> and </s>/<eos> interchangeably.
var specialTokens = []string{"<s>", "</s>", "<unk>", "<oov>", "<bos>", "<eos>"}

// ResolveSpecials extracts reserved sequence tokens from the pool. For each
// canonical name it probes the exact lowercase form, then the uppercase form;
// a hit is removed from the pool and recorded under the lowercase name.
// Misses are simply absent from the result — the assembler decides which
// specials it can live without.
func ResolveSpecials(p *Pool) map[string][]float64 {
	resolved := make(map[string][]float64)
	for _, name := range specialTokens {
		if vec, ok := p.Take(name); ok {
			resolved[name] = vec
			continue
		}
		if vec, ok := p.Take(strings.ToUpper(name)); ok {
			resolved[name] = vec
		}
	}
	return resolved
}

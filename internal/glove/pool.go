package glove

// Pool is an insertion-ordered token→vector map. Iteration always follows the
// order tokens were first added (the pretrained file's line order), which
// keeps size-bounded selection deterministic across runs and platforms.
//
// Removal tombstones the slot instead of compacting, so Remove is O(1) and
// the order of surviving tokens is unchanged.
type Pool struct {
	index map[string]int
	order []string
	vecs  [][]float64
	dim   int
	live  int
}

// NewPool creates an empty pool for vectors of the given dimensionality.
func NewPool(dim int) *Pool {
	return &Pool{
		index: make(map[string]int),
		dim:   dim,
	}
}

// Dim returns the vector dimensionality.
func (p *Pool) Dim() int { return p.dim }

// Len returns the number of live (non-removed) tokens.
func (p *Pool) Len() int { return p.live }

// Add inserts a token at the end of the iteration order. It reports false if
// the token is already present (first occurrence wins).
func (p *Pool) Add(token string, vec []float64) bool {
	if _, ok := p.index[token]; ok {
		return false
	}
	p.index[token] = len(p.order)
	p.order = append(p.order, token)
	p.vecs = append(p.vecs, vec)
	p.live++
	return true
}

// Lookup returns the vector for token without consuming it.
func (p *Pool) Lookup(token string) ([]float64, bool) {
	i, ok := p.index[token]
	if !ok {
		return nil, false
	}
	return p.vecs[i], true
}

// Take removes token from the pool and returns its vector. Each token can be
// taken exactly once, so every vector ends up in at most one destination.
func (p *Pool) Take(token string) ([]float64, bool) {
	i, ok := p.index[token]
	if !ok {
		return nil, false
	}
	vec := p.vecs[i]
	delete(p.index, token)
	p.vecs[i] = nil
	p.live--
	return vec, true
}

// Alias inserts alias with a copy of src's vector, appended at the end of the
// iteration order. It reports false if src is absent or alias already exists.
func (p *Pool) Alias(alias, src string) bool {
	vec, ok := p.Lookup(src)
	if !ok {
		return false
	}
	cp := make([]float64, len(vec))
	copy(cp, vec)
	return p.Add(alias, cp)
}

// Each calls fn for every live token in insertion order. Returning false from
// fn stops the iteration. fn must not mutate the pool.
func (p *Pool) Each(fn func(token string, vec []float64) bool) {
	for i, token := range p.order {
		if p.vecs[i] == nil {
			continue
		}
		if !fn(token, p.vecs[i]) {
			return
		}
	}
}

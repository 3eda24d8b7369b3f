package index

// Pool is the inverted index owned by a single reference GroupBlock: a
// mapping from token to the Bucket holding every posting seen for that
// token. Pools are built once during reference ingestion and are read-only
// afterwards.
type Pool struct {
	buckets map[string]*Bucket
}

// NewPool creates an empty Pool.
func NewPool() *Pool {
	return &Pool{buckets: make(map[string]*Bucket)}
}

// Get returns the Bucket for a token, or nil if the token was never placed.
func (p *Pool) Get(token string) *Bucket {
	return p.buckets[token]
}

// Place adds a posting for the given token, creating the bucket if it does
// not exist yet.
func (p *Pool) Place(token string, posting Posting) {
	b, ok := p.buckets[token]
	if !ok {
		b = NewBucket(token)
		p.buckets[token] = b
	}

	b.Add(posting)
}

// Len returns the number of distinct tokens in the pool.
func (p *Pool) Len() int { return len(p.buckets) }

// Tokens returns every token known to the pool. The returned slice is not
// ordered.
func (p *Pool) Tokens() []string {
	tokens := make([]string, 0, len(p.buckets))
	for t := range p.buckets {
		tokens = append(tokens, t)
	}

	return tokens
}

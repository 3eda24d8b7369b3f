package index

import "fuzzylink/model"

// Bucket holds every Posting seen for a single token. Postings are
// deduplicated by row index: placing the same (token, row index) pair twice
// adds the weights together instead of creating a second entry.
type Bucket struct {
	token    string
	postings []Posting
	byIdx    map[model.RowIndex]int // row index -> position in postings
}

// NewBucket creates an empty Bucket for the given token.
func NewBucket(token string) *Bucket {
	return &Bucket{
		token: token,
		byIdx: make(map[model.RowIndex]int),
	}
}

// Token returns the token this bucket was built for.
func (b *Bucket) Token() string { return b.token }

// Add places a posting into the bucket, adding weight into the existing
// entry if the row index is already present.
func (b *Bucket) Add(p Posting) {
	if pos, ok := b.byIdx[p.Idx]; ok {
		b.postings[pos].Weight += p.Weight
		return
	}

	b.byIdx[p.Idx] = len(b.postings)
	b.postings = append(b.postings, p)
}

// Size returns the number of distinct row indices in the bucket.
func (b *Bucket) Size() int { return len(b.postings) }

// Entries returns the bucket's postings in insertion order. The returned
// slice must not be mutated by the caller.
func (b *Bucket) Entries() []Posting { return b.postings }

package index

import "fuzzylink/model"

// Posting is a (reference row index, accumulated weight) pair — one entry
// in a Bucket.
type Posting struct {
	Idx    model.RowIndex
	Weight float64
}

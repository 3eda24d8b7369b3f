package query

import (
	"container/heap"
	"sort"

	"fuzzylink/model"
)

// Candidate is a scored reference row surfaced during query analysis.
type Candidate struct {
	Idx    model.RowIndex
	Weight float64
}

// Analyzer is the per-query scratch object the matching engine builds
// once per target row. It holds the row's tokenized cells grouped by
// header, and a candidate reference row -> accumulated weight map kept
// in sync with a max-heap so the top candidates can be read off without
// sorting the whole map (spec.md §4.7).
//
// The heap and the map always agree: every idx present in items also
// has exactly one entry in the heap, and vice versa.
type Analyzer struct {
	cells map[string][]string

	items map[model.RowIndex]*candidateItem
	h     candidateHeap
}

// NewAnalyzer creates an empty Analyzer, ready for one query row.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		cells: make(map[string][]string),
		items: make(map[model.RowIndex]*candidateItem),
		h:     make(candidateHeap, 0),
	}
}

// SetCells records the tokens produced for a header on this query row.
func (a *Analyzer) SetCells(header string, tokens []string) {
	a.cells[header] = tokens
}

// Cells returns the tokens previously recorded for a header, or nil if
// none were set.
func (a *Analyzer) Cells(header string) []string { return a.cells[header] }

// Headers returns every header that has tokenized cells recorded.
func (a *Analyzer) Headers() []string {
	headers := make([]string, 0, len(a.cells))
	for h := range a.cells {
		headers = append(headers, h)
	}

	return headers
}

// Increase adds delta to the accumulated weight for a reference row
// index, inserting a new candidate if idx has not been seen yet. delta
// may be negative only if the caller is correcting a previous
// contribution; scoring itself only ever adds non-negative weight.
func (a *Analyzer) Increase(idx model.RowIndex, delta float64) {
	if item, ok := a.items[idx]; ok {
		item.weight += delta
		heap.Fix(&a.h, item.index)
		return
	}

	item := &candidateItem{idx: idx, weight: delta}
	a.items[idx] = item
	heap.Push(&a.h, item)
}

// Len returns the number of distinct candidates accumulated so far.
func (a *Analyzer) Len() int { return len(a.items) }

// Weight returns the accumulated weight for a candidate, or 0 if the
// candidate has not been seen.
func (a *Analyzer) Weight(idx model.RowIndex) float64 {
	if item, ok := a.items[idx]; ok {
		return item.weight
	}

	return 0
}

// DrainSorted destructively empties the heap, returning every candidate
// in descending weight order. After this call the Analyzer holds no
// candidates; Reset or discard it before reuse.
func (a *Analyzer) DrainSorted() []Candidate {
	out := make([]Candidate, 0, len(a.items))

	for a.h.Len() > 0 {
		item := heap.Pop(&a.h).(*candidateItem)
		out = append(out, Candidate{Idx: item.idx, Weight: item.weight})
	}

	a.items = make(map[model.RowIndex]*candidateItem)

	return out
}

// PeekSorted returns every candidate in descending weight order without
// modifying the Analyzer's state, grounded on the non-destructive
// getSortedIndexes helper in the original Java implementation. Prefer
// DrainSorted when the Analyzer will be discarded immediately after.
func (a *Analyzer) PeekSorted() []Candidate {
	out := make([]Candidate, 0, len(a.items))
	for _, item := range a.items {
		out = append(out, Candidate{Idx: item.idx, Weight: item.weight})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })

	return out
}

// Reset clears the Analyzer so it can be reused for the next query row:
// the cells map is emptied in place, the candidate map is replaced, and
// the heap keeps its backing array.
func (a *Analyzer) Reset() {
	for h := range a.cells {
		delete(a.cells, h)
	}

	a.items = make(map[model.RowIndex]*candidateItem)
	a.h = a.h[:0]
}

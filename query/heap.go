package query

import "fuzzylink/model"

// candidateItem is one entry in the candidate max-heap. Index is
// maintained by the heap.Interface methods so Analyzer.Increase can
// locate and fix an existing entry in O(log n) instead of rescanning
// the heap (grounded on queue.PriorityQueueItem).
type candidateItem struct {
	idx    model.RowIndex
	weight float64
	index  int
}

// candidateHeap is a max-heap over candidateItem.weight.
type candidateHeap []*candidateItem

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool { return h[i].weight > h[j].weight }

func (h candidateHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}

func (h *candidateHeap) Push(x any) {
	item := x.(*candidateItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]

	return item
}

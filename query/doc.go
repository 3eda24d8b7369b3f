// Package query holds the per-query scratch state used while scoring one
// target row against the reference index: the row's tokenized cells by
// header, a candidate reference row -> accumulated weight map, and a
// max-heap kept in sync with that map so the highest-scoring candidates
// can be drained in descending order without a full sort (spec.md §4.7).
package query

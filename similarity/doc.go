// Package similarity compares candidate rows during collision rearrangement
// and result scoring with string- and set-based distance measures: a
// normalized Damerau-Levenshtein edit distance, a Jaccard set-overlap
// score, and a Levenshtein variant with a transposition recurrence
// (spec.md §4.8).
package similarity

// Package engine builds the inverted-index matching engine over a
// reference table and scores target rows against it. Build indexes
// every reference row into the backbone's GroupBlocks (spec.md §4.5);
// Lookup and LookupBatch score a target row in two phases — an
// exact-key fast path that looks the raw target key up as a token in
// the reference key column's Pools and short-circuits on a hit, and a
// fuzzy scoring pass driven by the tokenizer and the length/bucket-size
// weighting formulas (spec.md §4.6).
package engine

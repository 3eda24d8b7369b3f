// Package index provides the inverted token index used to look up
// reference rows during fuzzy scoring.
//
// A Pool maps a token to the Bucket holding every Posting (reference row
// index, accumulated weight) seen for that token. Pools are built once per
// reference GroupBlock during ingestion and are read-only afterwards;
// Buckets deduplicate by row index, adding weights when the same token is
// placed for a row more than once (e.g. from two headers in the same
// group).
package index

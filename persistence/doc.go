// Package persistence writes and reads the opaque, versioned,
// self-describing byte stream that round-trips a built matching engine:
// the Backbone's groups, weights, and links, every reference Pool and
// Bucket, and the source reference Table (spec.md §4.10). The stateless
// Tokenizer is never persisted — it is reconstructed from the
// tokenizer's Profile at load time.
package persistence

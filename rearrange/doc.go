// Package rearrange resolves collisions where two or more query rows
// picked the same reference row as their top candidate. It runs an
// OPEN/VERIFIED state machine over the lookup results: colliding rows
// are compared on a name column with a transposition-aware edit
// distance, the closest keeps the contested reference row, and the
// others are promoted to their second-best candidate when it is close
// enough to the winner's distance (spec.md §4.9).
package rearrange

// Package model defines the core row/table types shared across fuzzylink.
//
// # Identity Types
//
//   - RowIndex: zero-based ordinal of a row within its source table,
//     carried as the synthetic "index" column.
//
// # Data Types
//
//   - Row: a header -> cell mapping; lookups never modify it.
//   - Table: an ordered sequence of Rows with a known column list.
package model

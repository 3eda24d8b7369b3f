package model

import (
	"errors"
	"fmt"
)

// ErrMissingIndexColumn is returned when a row has no synthetic "index" column.
var ErrMissingIndexColumn = errors.New("model: row is missing the synthetic index column")

// RowIndex is the zero-based ordinal of a Row within its source Table.
// It is dense and stable for the lifetime of a Table (tables are never
// mutated after ingestion).
type RowIndex int

// Row is a header -> cell value mapping for a single record; column
// order is kept by the owning Table's Columns, not by the Row. Every Row
// of a Table built with NewTable carries a synthetic "index" column
// holding the string form of its RowIndex. Lookups never modify Rows;
// their results are returned as separate query.ResultTuple values.
type Row map[string]string

// Index returns the Row's synthetic RowIndex, parsed from the "index" column.
func (r Row) Index() (RowIndex, error) {
	s, ok := r["index"]
	if !ok {
		return 0, ErrMissingIndexColumn
	}

	var idx int
	if _, err := fmt.Sscanf(s, "%d", &idx); err != nil {
		return 0, fmt.Errorf("model: invalid index column %q: %w", s, err)
	}

	return RowIndex(idx), nil
}

// Clone returns a shallow copy of the Row, safe to annotate independently.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}

	return out
}

// Table is an ordered sequence of Rows with a known list of column names.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a Table from rows, stamping the synthetic "index" column
// on every row if it is not already present.
func NewTable(columns []string, rows []Row) Table {
	for i, r := range rows {
		if _, ok := r["index"]; !ok {
			r["index"] = fmt.Sprintf("%d", i)
		}
	}

	return Table{Columns: columns, Rows: rows}
}

// Len returns the number of rows in the table.
func (t Table) Len() int { return len(t.Rows) }

// At returns the row at the given RowIndex.
func (t Table) At(idx RowIndex) (Row, bool) {
	if int(idx) < 0 || int(idx) >= len(t.Rows) {
		return nil, false
	}

	return t.Rows[idx], true
}

// Subset returns a new Table containing only the rows named by indices, in
// the order given. Out-of-range indices are skipped.
func (t Table) Subset(indices []RowIndex) Table {
	rows := make([]Row, 0, len(indices))

	for _, idx := range indices {
		if row, ok := t.At(idx); ok {
			rows = append(rows, row)
		}
	}

	return Table{Columns: t.Columns, Rows: rows}
}

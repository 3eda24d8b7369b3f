package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowIndex(t *testing.T) {
	row := Row{"index": "4", "Customer_Name": "Foo Bar LLC"}

	idx, err := row.Index()
	require.NoError(t, err)
	assert.Equal(t, RowIndex(4), idx)
}

func TestRowIndexMissing(t *testing.T) {
	row := Row{"Customer_Name": "Foo Bar LLC"}

	_, err := row.Index()
	require.ErrorIs(t, err, ErrMissingIndexColumn)
}

func TestNewTableStampsIndex(t *testing.T) {
	rows := []Row{
		{"Name": "Acme"},
		{"Name": "Beta"},
	}

	tbl := NewTable([]string{"Name"}, rows)

	idx0, err := tbl.Rows[0].Index()
	require.NoError(t, err)
	assert.Equal(t, RowIndex(0), idx0)

	idx1, err := tbl.Rows[1].Index()
	require.NoError(t, err)
	assert.Equal(t, RowIndex(1), idx1)
}

func TestTableSubset(t *testing.T) {
	tbl := NewTable([]string{"Name"}, []Row{
		{"Name": "Acme"},
		{"Name": "Beta"},
		{"Name": "Gamma"},
	})

	sub := tbl.Subset([]RowIndex{2, 0, 99})
	require.Len(t, sub.Rows, 2)
	assert.Equal(t, "Gamma", sub.Rows[0]["Name"])
	assert.Equal(t, "Acme", sub.Rows[1]["Name"])
}

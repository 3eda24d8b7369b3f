package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVPadsShortRows(t *testing.T) {
	csv := "index,Customer_ID,Customer_Name\n0,1,Jonathan Smith\n1,2\n"

	table, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.Equal(t, "Jonathan Smith", table.Rows[0]["Customer_Name"])
	assert.Equal(t, "", table.Rows[1]["Customer_Name"])
}

func TestLoadCSVRejectsNoHeader(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestPreprocessAppliesRulesInOrder(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("index,Customer_Name\n0,ACME  Corp.\n"))
	require.NoError(t, err)

	rules := []Rule{
		{Column: "Customer_Name", Pattern: `\.`, Replacement: ""},
		{Column: "Customer_Name", Pattern: `\s+`, Replacement: " "},
	}

	require.NoError(t, Preprocess(table, rules))
	assert.Equal(t, "ACME Corp", table.Rows[0]["Customer_Name"])
}

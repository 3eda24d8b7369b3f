package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuzzylink/backbone"
	"fuzzylink/model"
)

func buildTestBackbone(t *testing.T) *backbone.Backbone {
	t.Helper()

	cfg, err := backbone.ParseConfig([]byte(`
reference_groups:
  name:
    - Customer_Name(6)
reference_key_col: Customer_ID
target_groups:
  name:
    - Name(1)
target_key_col: Row_ID
ref_to_tgt:
  name: name
tgt_to_ref:
  name: [name]
`))
	require.NoError(t, err)

	bb, err := cfg.Build()
	require.NoError(t, err)

	return bb
}

func buildTestReference() model.Table {
	return model.NewTable([]string{"index", "Customer_ID", "Customer_Name"}, []model.Row{
		{"Customer_ID": "1", "Customer_Name": "Jonathan Smith"},
		{"Customer_ID": "2", "Customer_Name": "Acme Corp"},
	})
}

func TestBuildRejectsEmptyReference(t *testing.T) {
	bb := buildTestBackbone(t)
	e := New(bb)

	err := e.Build(model.Table{Columns: []string{"index", "Customer_ID", "Customer_Name"}})
	require.ErrorIs(t, err, ErrEmptyReference)
}

func TestBuildRejectsMissingKeyHeader(t *testing.T) {
	bb := buildTestBackbone(t)
	e := New(bb)

	ref := model.NewTable([]string{"index", "Customer_Name"}, []model.Row{
		{"Customer_Name": "Jonathan Smith"},
	})

	err := e.Build(ref)
	require.Error(t, err)

	var missing *ErrMissingKeyHeader
	assert.ErrorAs(t, err, &missing)
}

func TestLookupExactMatchWins(t *testing.T) {
	bb := buildTestBackbone(t)
	e := New(bb)
	require.NoError(t, e.Build(buildTestReference()))

	tuple, err := e.Lookup(0, model.Row{"Name": "Jonathan Smith"})
	require.NoError(t, err)

	require.True(t, tuple.HasCandidate())
	assert.Equal(t, model.RowIndex(0), tuple.TopIdx)
}

func TestLookupBeforeBuildFails(t *testing.T) {
	bb := buildTestBackbone(t)
	e := New(bb)

	_, err := e.Lookup(0, model.Row{"Name": "Jonathan Smith"})
	require.ErrorIs(t, err, ErrNotBuilt)
}

func TestLookupBatchPreservesOrder(t *testing.T) {
	bb := buildTestBackbone(t)
	e := New(bb)
	require.NoError(t, e.Build(buildTestReference()))

	rows := []model.Row{
		{"Name": "Jonathan Smith"},
		{"Name": "Acme Corp"},
	}

	results, err := e.LookupBatch(context.Background(), rows, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, model.RowIndex(0), results[0].QueryIdx)
	assert.Equal(t, model.RowIndex(1), results[1].QueryIdx)
}

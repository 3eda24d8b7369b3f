package persistence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuzzylink/backbone"
	"fuzzylink/index"
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

	pool := index.NewPool()
	pool.Place("$jonathan$", index.Posting{Idx: 0, Weight: 1.0})
	bb.Groups(backbone.Reference)["name"].SetPool(pool)

	return bb
}

func TestSaveLoadRoundTrip(t *testing.T) {
	bb := buildTestBackbone(t)
	ref := model.NewTable([]string{"index", "Customer_ID", "Customer_Name"}, []model.Row{
		{"Customer_ID": "1", "Customer_Name": "Jonathan Smith"},
	})

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, bb, ref))

	snap, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Manifest.ReferenceRows)
	assert.NotEmpty(t, snap.Manifest.BuildID)

	restoredBB, restoredRef, err := snap.Restore()
	require.NoError(t, err)

	assert.Equal(t, "Customer_ID", restoredBB.ReferenceKeyHeader())
	assert.Equal(t, 1, restoredRef.Len())

	groups := restoredBB.GroupsFromHeader(backbone.Reference, "Customer_Name")
	require.Len(t, groups, 1)
	pool := groups[0].Pool()
	require.NotNil(t, pool)

	bucket := pool.Get("$jonathan$")
	require.NotNil(t, bucket)
	assert.Equal(t, 1, bucket.Size())
}

func TestLoadRejectsForeignData(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not a fuzzylink snapshot at all")))
	require.Error(t, err)
}

func TestLoadRejectsCorruptedPayload(t *testing.T) {
	bb := buildTestBackbone(t)
	ref := model.NewTable([]string{"index", "Customer_ID", "Customer_Name"}, []model.Row{
		{"Customer_ID": "1", "Customer_Name": "Jonathan Smith"},
	})

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, bb, ref))

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	_, err := Load(bytes.NewReader(corrupted))
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

package backbone

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroupBlockSoftmaxSumsToOne(t *testing.T) {
	g, err := NewGroupBlock("name", []string{"First_Name", "Last_Name"}, []float64{6, 4})
	require.NoError(t, err)

	total := g.Weight("First_Name") + g.Weight("Last_Name")
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.True(t, g.Weight("First_Name") > g.Weight("Last_Name"))
}

func TestNewGroupBlockRejectsMismatchedLengths(t *testing.T) {
	_, err := NewGroupBlock("name", []string{"A", "B"}, []float64{1})
	require.Error(t, err)
}

func TestNewGroupBlockRejectsEmptyName(t *testing.T) {
	_, err := NewGroupBlock("", []string{"A"}, []float64{1})
	require.ErrorIs(t, err, ErrEmptyGroupName)
}

func TestParseWeightedHeader(t *testing.T) {
	h, w, err := parseWeightedHeader("Customer_Name(6)")
	require.NoError(t, err)
	assert.Equal(t, "Customer_Name", h)
	assert.InDelta(t, 6.0, w, 1e-9)

	h, w, err = parseWeightedHeader("Zip(2.5)")
	require.NoError(t, err)
	assert.Equal(t, "Zip", h)
	assert.InDelta(t, 2.5, w, 1e-9)

	_, _, err = parseWeightedHeader("NoWeight")
	require.ErrorIs(t, err, ErrMalformedWeight)
}

func TestRawConfigBuildRoutesHeadersAndLinks(t *testing.T) {
	doc := []byte(`
reference_groups:
  name:
    - First_Name(6)
    - Last_Name(4)
  address:
    - Street(5)
reference_key_col: Customer_ID
target_groups:
  name:
    - Name(1)
target_key_col: Row_ID
ref_to_tgt:
  name: name
tgt_to_ref:
  name: [name]
`)

	cfg, err := ParseConfig(doc)
	require.NoError(t, err)

	b, err := cfg.Build()
	require.NoError(t, err)

	assert.Equal(t, "Customer_ID", b.ReferenceKeyHeader())
	assert.Equal(t, "Row_ID", b.TargetKeyHeader())

	groups := b.GroupsFromHeader(Reference, "First_Name")
	require.Len(t, groups, 1)
	assert.Equal(t, "name", groups[0].Name())

	linked := b.LinksFrom(Reference, "name")
	require.Len(t, linked, 1)
	assert.Equal(t, "name", linked[0].Name())

	back := b.LinksFrom(Target, "name")
	require.Len(t, back, 1)
	assert.Equal(t, "name", back[0].Name())

	assert.Nil(t, b.LinksFrom(Reference, "address"))
}

func TestGroupsFromHeaderFansOutToEveryGroup(t *testing.T) {
	doc := []byte(`
reference_groups:
  id:
    - Customer_ID(1)
reference_key_col: Customer_ID
target_groups:
  id:
    - Customer_ID(5)
    - Customer_Name(1)
  name:
    - Customer_Name(4)
    - Customer_ID(1)
target_key_col: Customer_ID
`)

	cfg, err := ParseConfig(doc)
	require.NoError(t, err)

	b, err := cfg.Build()
	require.NoError(t, err)

	groups := b.GroupsFromHeader(Target, "Customer_Name")
	require.Len(t, groups, 2)

	names := map[string]bool{groups[0].Name(): true, groups[1].Name(): true}
	assert.True(t, names["id"])
	assert.True(t, names["name"])
}

func TestSoftmaxRejectsZeroTotal(t *testing.T) {
	_, err := softmax([]float64{math.Inf(-1), math.Inf(-1)})
	require.Error(t, err)
}

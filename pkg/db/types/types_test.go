package dbtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTripThroughDriver(t *testing.T) {
	list := StringList{"2026-02-01", "2026-02-15"}
	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["2026-02-01","2026-02-15"]`, v)

	var scanned StringList
	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, list, scanned)
}

func TestStringListEmptyAndNull(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var scanned StringList
	require.NoError(t, scanned.Scan(nil))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)

	require.NoError(t, scanned.Scan("null"))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan("{not json"))
}

func TestStringListContains(t *testing.T) {
	list := StringList{"a", "b"}
	assert.True(t, list.Contains("b"))
	assert.False(t, list.Contains("c"))
}

func TestJSONValueAndDecode(t *testing.T) {
	doc, err := Marshal(map[string]any{"proposalId": "abc", "itemCount": 2})
	require.NoError(t, err)

	v, err := doc.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"proposalId":"abc","itemCount":2}`, v.(string))

	var out struct {
		ProposalID string `json:"proposalId"`
		ItemCount  int    `json:"itemCount"`
	}
	require.NoError(t, doc.Decode(&out))
	assert.Equal(t, "abc", out.ProposalID)
	assert.Equal(t, 2, out.ItemCount)
}

func TestJSONNullHandling(t *testing.T) {
	var doc JSON
	assert.True(t, doc.IsNull())
	v, err := doc.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	raw, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	_, err = JSON(`{"broken"`).Value()
	assert.Error(t, err)
}

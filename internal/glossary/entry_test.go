package glossary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
)

func TestEntry_Valid(t *testing.T) {
	assert.True(t, Entry{Source: "さくら", Target: "櫻"}.Valid(segment.JaToZhHant))
	assert.True(t, Entry{Source: "山田", Target: "山田"}.Valid(segment.JaToZhHant))
	assert.False(t, Entry{Source: "Sakura", Target: "櫻"}.Valid(segment.JaToZhHant))
	assert.False(t, Entry{Source: "さくら", Target: "Sakura"}.Valid(segment.JaToZhHant))
	assert.False(t, Entry{Source: "", Target: "櫻"}.Valid(segment.JaToZhHant))
	assert.False(t, Entry{Source: "さくら", Target: ""}.Valid(segment.JaToZhHant))

	assert.True(t, Entry{Source: "Adam", Target: "亞當"}.Valid(segment.EnToZhHant))
	assert.False(t, Entry{Source: "Adam", Target: "Adam"}.Valid(segment.EnToZhHant))
}

func TestMerge_FirstWriterWins(t *testing.T) {
	original := []Entry{{Source: "さくら", Target: "櫻"}}
	incoming := []Entry{
		{Source: "さくら", Target: "沙庫拉"},
		{Source: "やまだ", Target: "山田"},
	}

	merged := Merge(original, incoming, func(e Entry) bool {
		return e.Valid(segment.JaToZhHant)
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "櫻", merged[0].Target)
	assert.Equal(t, "やまだ", merged[1].Source)
}

func TestMerge_FiltersInvalid(t *testing.T) {
	incoming := []Entry{
		{Source: "さくら", Target: "Sakura"},
		{Source: "", Target: "櫻"},
		{Source: "ともだち", Target: "朋友"},
	}

	merged := Merge(nil, incoming, func(e Entry) bool {
		return e.Valid(segment.JaToZhHant)
	})

	require.Len(t, merged, 1)
	assert.Equal(t, "ともだち", merged[0].Source)
}

func TestMerge_PreservesOriginalWithoutValidation(t *testing.T) {
	// Entries already in the store survive a merge even if they would
	// fail the current validity predicate.
	original := []Entry{{Source: "legacy", Target: "legacy"}}
	merged := Merge(original, nil, func(Entry) bool { return false })
	require.Len(t, merged, 1)
}

func TestEncodeEntries_RoundTrip(t *testing.T) {
	entries := []Entry{{Source: "さくら", Target: "櫻"}}
	encoded, err := EncodeEntries(entries, "jp", "zh")
	require.NoError(t, err)
	assert.Contains(t, encoded, `"jp":"さくら"`)
	assert.Contains(t, encoded, `"zh":"櫻"`)

	decoded, err := decodeEntries([]byte(encoded), "jp", "zh")
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

package glossary

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
)

func TestStore_MergeAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc_dictionary.json")
	store := NewStore(path, segment.JaToZhHant, nil)

	merged, err := store.MergeAndSave([]Entry{{Source: "さくら", Target: "櫻"}})
	require.NoError(t, err)
	require.Len(t, merged, 1)

	// A second merge re-reads disk state and never overwrites.
	merged, err = store.MergeAndSave([]Entry{
		{Source: "さくら", Target: "沙庫拉"},
		{Source: "やまだ", Target: "山田"},
	})
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "櫻", merged[0].Target)

	reloaded := NewStore(path, segment.JaToZhHant, nil).Load()
	assert.Equal(t, merged, reloaded)
}

func TestStore_MalformedFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc_dictionary.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewStore(path, segment.JaToZhHant, nil)
	assert.Nil(t, store.Load())

	merged, err := store.MergeAndSave([]Entry{{Source: "さくら", Target: "櫻"}})
	require.NoError(t, err)
	assert.Len(t, merged, 1)
}

func TestStore_MissingFileTreatedAsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"), segment.JaToZhHant, nil)
	assert.Nil(t, store.Load())
}

func TestStore_ConcurrentMergesLoseNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc_dictionary.json")
	mu := &sync.Mutex{}

	sources := []string{"あか", "あお", "みどり", "きいろ", "しろ"}
	targets := []string{"紅", "藍", "綠", "黃", "白"}

	var wg sync.WaitGroup
	for i := range sources {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store := NewStore(path, segment.JaToZhHant, mu)
			_, err := store.MergeAndSave([]Entry{{Source: sources[i], Target: targets[i]}})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	final := NewStore(path, segment.JaToZhHant, mu).Load()
	assert.Len(t, final, len(sources))
}

func TestSoundStore_SortedPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), SoundFileName)
	store := NewSoundStore(path, nil)

	_, err := store.MergeAndSave([]Entry{
		{Source: "どきどき", Target: "撲通撲通"},
		{Source: "あはは", Target: "啊哈哈"},
	})
	require.NoError(t, err)

	loaded := store.Load()
	require.Len(t, loaded, 2)
	assert.Equal(t, "あはは", loaded[0].Source)
	assert.Equal(t, "どきどき", loaded[1].Source)
}

func TestCleanIdenticalPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), SoundFileName)
	content := `[
  {"sound_jp": "どきどき", "sound_zh": "どきどき"},
  {"sound_jp": "あはは", "sound_zh": "啊哈哈"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	removed, err := CleanIdenticalPairs(path)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	remaining := NewSoundStore(path, nil).Load()
	require.Len(t, remaining, 1)
	assert.Equal(t, "あはは", remaining[0].Source)

	// Second pass finds nothing to remove.
	removed, err = CleanIdenticalPairs(path)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

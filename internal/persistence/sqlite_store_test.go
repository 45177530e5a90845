package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RecordAndList(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	first := RunRecord{
		Path:         "/docs/a.html",
		Direction:    "ja-zh",
		Status:       "completed",
		Translatable: 30,
		Success:      28,
		Failed:       2,
		StartedAt:    now.Add(-time.Minute),
		FinishedAt:   now.Add(-30 * time.Second),
	}
	second := RunRecord{
		Path:       "/docs/b.html",
		Direction:  "en-zh",
		Status:     "failed",
		Error:      "worker panic: boom",
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
	}
	require.NoError(t, store.RecordRun(ctx, first))
	require.NoError(t, store.RecordRun(ctx, second))

	records, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "/docs/b.html", records[0].Path)
	assert.Equal(t, "worker panic: boom", records[0].Error)
	assert.Equal(t, "/docs/a.html", records[1].Path)
	assert.Equal(t, 28, records[1].Success)
	assert.Equal(t, "ja-zh", records[1].Direction)
}

func TestSQLiteStore_LastRun(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	missing, err := store.LastRun(ctx, "/docs/never.html")
	require.NoError(t, err)
	assert.Nil(t, missing)

	base := time.Now().UTC().Truncate(time.Second)
	for i, status := range []string{"failed", "completed"} {
		require.NoError(t, store.RecordRun(ctx, RunRecord{
			Path:       "/docs/a.html",
			Status:     status,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + 30*time.Second),
		}))
	}

	last, err := store.LastRun(ctx, "/docs/a.html")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "completed", last.Status)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "runs.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.RecordRun(ctx, RunRecord{
		Path:       "/docs/a.html",
		Status:     "completed",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	records, err := reopened.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStore_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := NewSQLiteStore("  ")
	assert.Error(t, err)
}

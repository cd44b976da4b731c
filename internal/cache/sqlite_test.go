package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()
	b, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestSQLitePutGet(t *testing.T) {
	ctx := context.Background()
	b := newTestSQLite(t)

	now := time.Now().UTC()
	require.NoError(t, b.Put(ctx, "h1", "https://example.com", []byte("body"), now, now.Add(time.Hour)))

	got, err := b.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), got)
}

func TestSQLiteMissReturnsNil(t *testing.T) {
	b := newTestSQLite(t)

	got, err := b.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteExpiredEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	b := newTestSQLite(t)

	now := time.Now().UTC()
	require.NoError(t, b.Put(ctx, "h1", "u", []byte("stale"), now.Add(-2*time.Hour), now.Add(-time.Hour)))

	got, err := b.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLitePutUpserts(t *testing.T) {
	ctx := context.Background()
	b := newTestSQLite(t)

	now := time.Now().UTC()
	require.NoError(t, b.Put(ctx, "h1", "u", []byte("v1"), now, now.Add(time.Hour)))
	require.NoError(t, b.Put(ctx, "h1", "u", []byte("v2"), now, now.Add(time.Hour)))

	got, err := b.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	st, err := b.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Entries)
}

func TestSQLiteClearAndStats(t *testing.T) {
	ctx := context.Background()
	b := newTestSQLite(t)

	now := time.Now().UTC()
	require.NoError(t, b.Put(ctx, "h1", "u1", []byte("12345"), now, now.Add(time.Hour)))
	require.NoError(t, b.Put(ctx, "h2", "u2", []byte("123"), now, now.Add(time.Hour)))

	st, err := b.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Entries)
	assert.Equal(t, int64(8), st.SizeBytes)

	require.NoError(t, b.Clear(ctx))

	st, err = b.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Entries)
	assert.Zero(t, st.SizeBytes)
}

func TestSQLiteRebuildsCorruptDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a sqlite file"), 0o644))

	b, err := NewSQLite(path)
	require.NoError(t, err)
	defer b.Close()

	now := time.Now().UTC()
	require.NoError(t, b.Put(ctx, "h1", "u", []byte("fresh"), now, now.Add(time.Hour)))
	got, err := b.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), got)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	b, err := NewSQLite(path)
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, b.Put(ctx, "h1", "u", []byte("persist"), now, now.Add(time.Hour)))
	require.NoError(t, b.Close())

	b, err = NewSQLite(path)
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, []byte("persist"), got)
}

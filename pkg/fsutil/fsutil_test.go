package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/pkg/fsutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.md")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("# New\n"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# New\n", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "old")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "note.md")
		assert.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "note.md")
		err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0)
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestRead(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "hello")

	content, stamp, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	assert.Equal(t, path, stamp.Path)
	assert.Equal(t, int64(5), stamp.Size)
	assert.Equal(t, os.FileMode(0o600), stamp.Mode)

	_, _, err = fsutil.Read(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.Read(context.Background(), t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)
}

func TestStamp_Stale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "same")
		_, stamp, err := fsutil.Read(ctx, path)
		require.NoError(t, err)

		stale, err := stamp.Stale(ctx)
		require.NoError(t, err)
		assert.False(t, stale)
	})

	t.Run("content changed with same size and time", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "aaaa")
		_, stamp, err := fsutil.Read(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("bbbb"), 0o600))
		require.NoError(t, os.Chtimes(path, stamp.ModTime, stamp.ModTime))

		stale, err := stamp.Stale(ctx)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "gone")
		_, stamp, err := fsutil.Read(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		stale, err := stamp.Stale(ctx)
		require.NoError(t, err)
		assert.True(t, stale)
	})
}

func TestReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes when fresh", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "v1")
		_, stamp, err := fsutil.Read(ctx, path)
		require.NoError(t, err)

		next, err := fsutil.Replace(ctx, stamp, []byte("version 2"))
		require.NoError(t, err)
		assert.Equal(t, int64(9), next.Size)
		assert.Equal(t, os.FileMode(0o600), next.Mode)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "version 2", string(got))
	})

	t.Run("refuses when changed on disk", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "v1")
		_, stamp, err := fsutil.Read(ctx, path)
		require.NoError(t, err)

		later := stamp.ModTime.Add(time.Second)
		require.NoError(t, os.WriteFile(path, []byte("external"), 0o600))
		require.NoError(t, os.Chtimes(path, later, later))

		_, err = fsutil.Replace(ctx, stamp, []byte("mine"))
		require.ErrorIs(t, err, fsutil.ErrConflict)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "external", string(got))
	})
}

package refs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nopeNoshishi/nss/internal/hash"
)

func TestHeadBookmarkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HEAD")
	want := NewBookmarkHead("main")

	require.NoError(t, WriteHead(path, want))
	got, err := ReadHead(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHeadDetachedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HEAD")
	h := hash.Sum([]byte("commit"))
	want := NewDetachedHead(h)

	require.NoError(t, WriteHead(path, want))
	got, err := ReadHead(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, DetachedHead, got.Kind)
}

func TestReadBookmarkMissingIsNotFoundNotError(t *testing.T) {
	dir := t.TempDir()
	h, found, err := ReadBookmark(dir, "main")
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, h.IsZero())
}

func TestWriteReadDeleteBookmark(t *testing.T) {
	dir := t.TempDir()
	h := hash.Sum([]byte("x"))

	require.NoError(t, WriteBookmark(dir, "main", h))
	got, found, err := ReadBookmark(dir, "main")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, h, got)

	names, err := ListBookmarks(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, names)

	require.NoError(t, DeleteBookmark(dir, "main"))
	_, found, err = ReadBookmark(dir, "main")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListBookmarksEmptyDirIsNotError(t *testing.T) {
	names, err := ListBookmarks(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadBookmarkMalformedContent(t *testing.T) {
	dir := t.TempDir()
	path := BookmarkPath(dir, "broken")
	require.NoError(t, os.WriteFile(path, []byte("not-a-hash"), 0o644))

	_, _, err := ReadBookmark(dir, "broken")
	assert.Error(t, err)
}

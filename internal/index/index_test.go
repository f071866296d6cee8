package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nopeNoshishi/nss/internal/hash"
)

func metaFor(name string, content []byte) FileMeta {
	return FileMeta{
		Filename: name,
		Hash:     hash.Sum(content),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	idx := New()
	idx.Add(metaFor("b.txt", []byte("b")))
	idx.Add(metaFor("a.txt", []byte("a")))

	decoded, err := Decode(idx.Encode())
	require.NoError(t, err)
	assert.Equal(t, idx.Version, decoded.Version)
	assert.Equal(t, idx.Filenames(), decoded.Filenames())
	for _, name := range idx.Filenames() {
		want, _ := idx.Get(name)
		got, ok := decoded.Get(name)
		require.True(t, ok)
		assert.Equal(t, want.Hash, got.Hash)
	}
}

func TestDecodeEmptyInputYieldsEmptyIndex(t *testing.T) {
	idx, err := Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, currentVersion, idx.Version)
	assert.Empty(t, idx.FileMetas)
}

func TestDecodeRejectsMissingMagic(t *testing.T) {
	_, err := Decode([]byte("not an index"))
	assert.Error(t, err)
}

// TestSortOrderIsDescending checks the spec's explicit instruction that
// entries sort by filename in descending order, not ascending.
func TestSortOrderIsDescending(t *testing.T) {
	idx := New()
	idx.Add(metaFor("a.txt", []byte("a")))
	idx.Add(metaFor("z.txt", []byte("z")))
	idx.Add(metaFor("m.txt", []byte("m")))

	assert.Equal(t, []string{"z.txt", "m.txt", "a.txt"}, idx.Filenames())
}

// TestAddDedupsByFilenameAsWellAsHash documents the Open-Question decision
// recorded in index.go and DESIGN.md: staging the same path twice with
// different content replaces the old record rather than appending a second
// one for that path.
func TestAddDedupsByFilenameAsWellAsHash(t *testing.T) {
	idx := New()
	idx.Add(metaFor("a.txt", []byte("v1")))
	idx.Add(metaFor("a.txt", []byte("v2")))

	assert.Len(t, idx.FileMetas, 1)
	got, ok := idx.Get("a.txt")
	require.True(t, ok)
	assert.Equal(t, hash.Sum([]byte("v2")), got.Hash)
}

func TestRemove(t *testing.T) {
	idx := New()
	idx.Add(metaFor("a.txt", []byte("a")))

	assert.True(t, idx.Remove("a.txt"))
	assert.False(t, idx.Remove("a.txt"))
	_, ok := idx.Get("a.txt")
	assert.False(t, ok)
}

func TestReadWriteFile(t *testing.T) {
	idx := New()
	idx.Add(metaFor("a.txt", []byte("a")))
	path := filepath.Join(t.TempDir(), "index")

	require.NoError(t, idx.WriteFile(path))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, idx.Filenames(), got.Filenames())
}

func TestReadFileMissingYieldsEmptyIndex(t *testing.T) {
	got, err := ReadFile(filepath.Join(t.TempDir(), "missing-index"))
	require.NoError(t, err)
	assert.Empty(t, got.FileMetas)
}

// TestPaddingAlignment spot-checks the record-padding formula against a
// filename long enough to land exactly on an 8-byte boundary, where pad
// must wrap to a full 8 rather than 0.
func TestPaddingAlignment(t *testing.T) {
	// fixedLen(60) + 2 + len(name) must be a multiple of 8 for this case.
	name := "12" // len 2: 60+2+2 = 64, 64%8 = 0, pad = 8
	idx := New()
	idx.Add(metaFor(name, []byte("x")))
	encoded := idx.Encode()
	assert.Equal(t, 0, (len(encoded)-headerLen)%8, "each record must be 8-byte aligned")

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, decoded.Filenames())
}

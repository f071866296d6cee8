package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nopeNoshishi/nss/internal/config"
	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/index"
	"github.com/nopeNoshishi/nss/internal/refs"
)

func initTestRepo(t *testing.T) *Repository {
	t.Helper()
	root := t.TempDir()
	r, err := Init(root)
	require.NoError(t, err)
	require.NoError(t, config.Write(r.ConfigPath, config.Config{User: config.User{Name: "Tester", Email: "t@example.com"}}))
	return r
}

func writeWorkingFile(t *testing.T, r *Repository, rel, content string) {
	t.Helper()
	abs := filepath.Join(r.Root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

func TestInitLayout(t *testing.T) {
	r := initTestRepo(t)
	assert.DirExists(t, r.ObjectsDir)
	assert.DirExists(t, r.BookmarksDir)
	assert.FileExists(t, r.HeadPath)
	assert.FileExists(t, r.IndexPath)

	head, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, refs.NewBookmarkHead("main"), head)
}

func TestDiscoverFindsRepoFromSubdirectory(t *testing.T) {
	r := initTestRepo(t)
	sub := filepath.Join(r.Root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	found, err := Discover(sub)
	require.NoError(t, err)
	assert.Equal(t, r.Root, found.Root)
}

func TestDiscoverNotFound(t *testing.T) {
	_, err := Discover(t.TempDir())
	assert.Error(t, err)
}

func TestAddAndCommitFirstCommitIsRoot(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "hello")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))

	h, err := r.Commit("first commit")
	require.NoError(t, err)

	commit, err := r.Store.ReadCommit(h.String())
	require.NoError(t, err)
	assert.True(t, commit.IsRoot())
	assert.Equal(t, "first commit", commit.Message)
	assert.Equal(t, "Tester <t@example.com>", commit.Author)
}

func TestAddDirectoryRecursively(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "src/a.go", "package a")
	writeWorkingFile(t, r, "src/lib/b.go", "package lib")

	require.NoError(t, r.Add(r.Root))

	idx, err := r.ReadIndex()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/a.go", "src/lib/b.go"}, idx.Filenames())
}

func TestAddRespectsIgnoreFile(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, ".nssignore", "build/\n")
	writeWorkingFile(t, r, "build/out.bin", "binary")
	writeWorkingFile(t, r, "src/main.go", "package main")

	require.NoError(t, r.Add(r.Root))

	idx, err := r.ReadIndex()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.go", ".nssignore"}, idx.Filenames())
}

func TestRemoveUnstages(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "hello")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))

	require.NoError(t, r.Remove("a.txt"))
	idx, err := r.ReadIndex()
	require.NoError(t, err)
	assert.Empty(t, idx.Filenames())
}

func TestStatusBeforeFirstCommit(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "hello")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))

	changes, err := r.Status()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, index.Insert, changes[0].Tag)
	assert.Equal(t, "a.txt", changes[0].Filename)
}

func TestStatusAfterCommitIsClean(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "hello")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	_, err := r.Commit("first")
	require.NoError(t, err)

	changes, err := r.Status()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, index.Equal, changes[0].Tag)
}

func TestCommitChainSecondCommitHasParent(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "v1")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	first, err := r.Commit("first")
	require.NoError(t, err)

	writeWorkingFile(t, r, "a.txt", "v2")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	second, err := r.Commit("second")
	require.NoError(t, err)

	commit, err := r.Store.ReadCommit(second.String())
	require.NoError(t, err)
	require.Len(t, commit.Parents, 1)
	assert.Equal(t, first, commit.Parents[0])
}

func TestLogWalksFirstParentChain(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "v1")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	_, err := r.Commit("first")
	require.NoError(t, err)

	writeWorkingFile(t, r, "a.txt", "v2")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	_, err = r.Commit("second")
	require.NoError(t, err)

	commits, err := r.Log(0)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "second", commits[0].Message)
	assert.Equal(t, "first", commits[1].Message)
}

func TestLogRespectsLimit(t *testing.T) {
	r := initTestRepo(t)
	for i, content := range []string{"v1", "v2", "v3"} {
		writeWorkingFile(t, r, "a.txt", content)
		require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
		_, err := r.Commit([]string{"first", "second", "third"}[i])
		require.NoError(t, err)
	}

	commits, err := r.Log(2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "third", commits[0].Message)
	assert.Equal(t, "second", commits[1].Message)
}

func TestBookmarkCreateListDelete(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "v1")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	h, err := r.Commit("first")
	require.NoError(t, err)

	require.NoError(t, r.CreateBookmark("feature"))
	names, err := r.ListBookmarks()
	require.NoError(t, err)
	assert.Contains(t, names, "feature")

	got, found, err := r.BookmarkCommit("feature")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, h, got)

	require.NoError(t, r.DeleteBookmark("feature"))
	names, err = r.ListBookmarks()
	require.NoError(t, err)
	assert.NotContains(t, names, "feature")
}

func TestCheckoutDetachedRestoresWorkingTree(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "v1")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	first, err := r.Commit("first")
	require.NoError(t, err)

	writeWorkingFile(t, r, "a.txt", "v2")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	_, err = r.Commit("second")
	require.NoError(t, err)

	require.NoError(t, r.Checkout(first.String()))

	content, err := os.ReadFile(filepath.Join(r.Root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(content))

	head, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, refs.DetachedHead, head.Kind)
	assert.Equal(t, first, head.CommitHash)
}

func TestCheckoutBookmarkSwitchesWorkingTree(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "main-content")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	_, err := r.Commit("on main")
	require.NoError(t, err)
	require.NoError(t, r.CreateBookmark("feature"))

	writeWorkingFile(t, r, "a.txt", "main-content-2")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	_, err = r.Commit("more on main")
	require.NoError(t, err)

	require.NoError(t, r.Checkout("feature"))

	content, err := os.ReadFile(filepath.Join(r.Root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "main-content", string(content))

	head, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, refs.NewBookmarkHead("feature"), head)
}

// TestMergeBaseAcrossBookmarks reproduces spec §8 S6 through the repo
// façade: two bookmarks diverging from a shared commit must resolve to
// that commit as their merge base.
func TestMergeBaseAcrossBookmarks(t *testing.T) {
	r := initTestRepo(t)
	writeWorkingFile(t, r, "a.txt", "base")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	base, err := r.Commit("base")
	require.NoError(t, err)
	require.NoError(t, r.CreateBookmark("v1"))
	require.NoError(t, r.CreateBookmark("v2"))

	require.NoError(t, r.Checkout("v1"))
	writeWorkingFile(t, r, "a.txt", "v1-change")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	_, err = r.Commit("on v1")
	require.NoError(t, err)

	require.NoError(t, r.Checkout("v2"))
	writeWorkingFile(t, r, "a.txt", "v2-change")
	require.NoError(t, r.Add(filepath.Join(r.Root, "a.txt")))
	_, err = r.Commit("on v2")
	require.NoError(t, err)

	best, found, err := r.MergeBase("v1", "v2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, base, best)
}

// TestMergeBaseTiesBreakOnDistance reproduces
// original_source/src/structures/commit_graph.rs's test_common_vertex_value
// through the repo façade: two tips share two common ancestors (v2 and,
// transitively, v1 through v2), and MergeBase must pick v2, the one with
// the smaller summed distance, not just the first common commit it finds
// while walking. CommitMerge lets the test build the multi-parent commit
// (v4, parents v3 and v2) without needing a working-tree merge.
func TestMergeBaseTiesBreakOnDistance(t *testing.T) {
	r := initTestRepo(t)
	fakeTree := func(label string) hash.Hash { return hash.Sum([]byte("tree:" + label)) }

	v1, err := r.CommitMerge(fakeTree("v1"), nil, "v1")
	require.NoError(t, err)
	v2, err := r.CommitMerge(fakeTree("v2"), []hash.Hash{v1}, "v2")
	require.NoError(t, err)
	v3, err := r.CommitMerge(fakeTree("v3"), nil, "v3")
	require.NoError(t, err)
	v4, err := r.CommitMerge(fakeTree("v4"), []hash.Hash{v3, v2}, "v4")
	require.NoError(t, err)
	v7, err := r.CommitMerge(fakeTree("v7"), []hash.Hash{v4}, "v7")
	require.NoError(t, err)
	v5, err := r.CommitMerge(fakeTree("v5"), []hash.Hash{v2}, "v5")
	require.NoError(t, err)

	best, found, err := r.MergeBase(v7.String(), v5.String())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, v2, best, "v2 (summed distance 3) must win over v1 (summed distance 5)")
}

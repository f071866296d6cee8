package repo

import (
	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/nsserr"
	"github.com/nopeNoshishi/nss/internal/refs"
)

// CreateBookmark creates a named bookmark at HEAD's current commit (spec
// §4.F; CRUD supplemented per SPEC_FULL.md §3, since the spec defines the
// bookmark file format but not its lifecycle).
func (r *Repository) CreateBookmark(name string) error {
	h, found, err := r.HeadCommit()
	if err != nil {
		return err
	}
	if !found {
		return nsserr.Wrap("repo: creating bookmark", nsserr.ErrNotFoundObject)
	}
	return refs.WriteBookmark(r.BookmarksDir, name, h)
}

// DeleteBookmark removes a bookmark.
func (r *Repository) DeleteBookmark(name string) error {
	return refs.DeleteBookmark(r.BookmarksDir, name)
}

// ListBookmarks returns every bookmark name.
func (r *Repository) ListBookmarks() ([]string, error) {
	return refs.ListBookmarks(r.BookmarksDir)
}

// BookmarkCommit returns the commit hash a bookmark points to.
func (r *Repository) BookmarkCommit(name string) (hash.Hash, bool, error) {
	return refs.ReadBookmark(r.BookmarksDir, name)
}

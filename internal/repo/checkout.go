package repo

import (
	"os"
	"path/filepath"

	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/index"
	"github.com/nopeNoshishi/nss/internal/refs"
)

// Checkout switches HEAD to ref — a bookmark name if one exists, otherwise
// an object hash or abbreviated prefix naming a commit directly (detached
// HEAD) — and restores the working directory and index to that commit's
// tree (spec §4.F, §4.G).
func (r *Repository) Checkout(ref string) error {
	bookmarkPath := refs.BookmarkPath(r.BookmarksDir, ref)
	if _, err := os.Stat(bookmarkPath); err == nil {
		return r.checkoutBookmark(ref)
	}
	return r.checkoutDetached(ref)
}

func (r *Repository) checkoutBookmark(name string) error {
	commitHash, found, err := refs.ReadBookmark(r.BookmarksDir, name)
	if err != nil {
		return err
	}
	if !found {
		// bookmark exists but has never been committed to: just switch the
		// symbolic reference, nothing to materialize yet.
		return refs.WriteHead(r.HeadPath, refs.NewBookmarkHead(name))
	}
	if err := r.restoreWorkingTree(commitHash); err != nil {
		return err
	}
	return refs.WriteHead(r.HeadPath, refs.NewBookmarkHead(name))
}

func (r *Repository) checkoutDetached(hashOrPrefix string) error {
	commitHash, err := r.Store.Resolve(hashOrPrefix)
	if err != nil {
		return err
	}
	if err := r.restoreWorkingTree(commitHash); err != nil {
		return err
	}
	return refs.WriteHead(r.HeadPath, refs.NewDetachedHead(commitHash))
}

// restoreWorkingTree materializes commitHash's tree over the working
// directory, removes files staged previously but absent from the new
// tree, and rewrites the index to match (spec §4.D, §4.E "Tree -> Index").
func (r *Repository) restoreWorkingTree(commitHash hash.Hash) error {
	commit, err := r.Store.ReadCommit(commitHash.String())
	if err != nil {
		return err
	}

	oldIdx, err := r.ReadIndex()
	if err != nil {
		return err
	}

	rels, err := index.Materialize(r.Store, commit.TreeHash, r.Root)
	if err != nil {
		return err
	}

	kept := make(map[string]bool, len(rels))
	for _, rel := range rels {
		kept[rel] = true
	}
	for _, m := range oldIdx.FileMetas {
		if kept[m.Filename] {
			continue
		}
		if err := os.Remove(filepath.Join(r.Root, m.Filename)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	newIdx := index.New()
	for _, rel := range rels {
		abs := filepath.Join(r.Root, rel)
		content, err := os.ReadFile(abs)
		if err != nil {
			return err
		}
		meta, err := index.NewFileMeta(abs, rel, content)
		if err != nil {
			return err
		}
		newIdx.Add(meta)
	}
	return r.WriteIndex(newIdx)
}

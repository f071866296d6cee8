package repo

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nopeNoshishi/nss/internal/ignore"
	"github.com/nopeNoshishi/nss/internal/index"
	"github.com/nopeNoshishi/nss/internal/nsserr"
)

// Add stages path (a file or a directory, recursively) into the index,
// writing a blob object for every file (spec §4.D "Construction from a
// working-tree path").
func (r *Repository) Add(path string) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}

	matcher, err := ignore.Load(r.IgnorePath)
	if err != nil {
		return err
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.Root, path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nsserr.ErrNotFoundPath
		}
		return nsserr.Wrap("repo: stat add target", err)
	}

	if !info.IsDir() {
		if err := r.stageFile(idx, abs); err != nil {
			return err
		}
		return r.WriteIndex(idx)
	}

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(r.Root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matcher.Match(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.Match(rel) {
			return nil
		}
		return r.stageFile(idx, p)
	})
	if err != nil {
		return nsserr.Wrap("repo: adding directory", err)
	}

	return r.WriteIndex(idx)
}

func (r *Repository) stageFile(idx *index.Index, absPath string) error {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nsserr.Wrap("repo: reading file to stage", err)
	}
	if _, err := r.Store.WriteBlob(content); err != nil {
		return err
	}

	rel, err := filepath.Rel(r.Root, absPath)
	if err != nil {
		return nsserr.Wrap("repo: computing relative path", err)
	}
	rel = filepath.ToSlash(rel)

	meta, err := index.NewFileMeta(absPath, rel, content)
	if err != nil {
		return err
	}
	idx.Add(meta)
	return nil
}

// Remove unstages path.
func (r *Repository) Remove(path string) error {
	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}
	rel := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		rel, err = filepath.Rel(r.Root, path)
		if err != nil {
			return nsserr.Wrap("repo: computing relative path", err)
		}
		rel = filepath.ToSlash(rel)
	}
	idx.Remove(rel)
	return r.WriteIndex(idx)
}

// Status diffs the working index against the tree of the current HEAD
// commit, surfacing the Insert/Delete/Replace/Equal tags Diff already
// defines (spec §4.E) — a read-only composition of existing primitives
// (SPEC_FULL.md §3).
func (r *Repository) Status() ([]index.Change, error) {
	working, err := r.ReadIndex()
	if err != nil {
		return nil, err
	}

	committed, found, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	if !found {
		// no commits yet: every staged file is an Insert relative to an
		// empty committed tree.
		empty := index.New()
		return index.Diff(empty, working), nil
	}

	commit, err := r.Store.ReadCommit(committed.String())
	if err != nil {
		return nil, err
	}
	committedIdx, err := index.FromTree(r.Store, commit.TreeHash)
	if err != nil {
		return nil, err
	}

	return index.Diff(committedIdx, working), nil
}

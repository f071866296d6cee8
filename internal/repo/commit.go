package repo

import (
	"time"

	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/index"
	"github.com/nopeNoshishi/nss/internal/objects"
)

// Commit folds the staging index into a tree (component I + §4.E), writes
// a commit object referencing that tree and the current HEAD commit as its
// parent, and advances the active bookmark (or HEAD directly, when
// detached) to the new commit (spec §2 "Data flow").
func (r *Repository) Commit(message string) (hash.Hash, error) {
	idx, err := r.ReadIndex()
	if err != nil {
		return hash.Hash{}, err
	}

	treeHash, err := index.BuildTree(idx, r.Store)
	if err != nil {
		return hash.Hash{}, err
	}

	var parents []hash.Hash
	if parent, found, err := r.HeadCommit(); err != nil {
		return hash.Hash{}, err
	} else if found {
		parents = []hash.Hash{parent}
	}

	cfg, err := r.ReadConfig()
	if err != nil {
		return hash.Hash{}, err
	}
	signature := cfg.Signature()

	commit := &objects.Commit{
		TreeHash:  treeHash,
		Parents:   parents,
		Author:    signature,
		Committer: signature,
		Date:      time.Now().UTC(),
		Message:   message,
	}

	newHash, err := r.Store.Write(commit)
	if err != nil {
		return hash.Hash{}, err
	}

	if err := r.advanceHead(newHash); err != nil {
		return hash.Hash{}, err
	}
	return newHash, nil
}

// CommitMerge is Commit's multi-parent counterpart, used by a caller that
// has already computed a merged tree (e.g. after resolving a best-common-
// ancestor query) — parent order is preserved as declared (spec §3).
func (r *Repository) CommitMerge(treeHash hash.Hash, parents []hash.Hash, message string) (hash.Hash, error) {
	cfg, err := r.ReadConfig()
	if err != nil {
		return hash.Hash{}, err
	}
	signature := cfg.Signature()

	commit := &objects.Commit{
		TreeHash:  treeHash,
		Parents:   parents,
		Author:    signature,
		Committer: signature,
		Date:      time.Now().UTC(),
		Message:   message,
	}

	newHash, err := r.Store.Write(commit)
	if err != nil {
		return hash.Hash{}, err
	}
	if err := r.advanceHead(newHash); err != nil {
		return hash.Hash{}, err
	}
	return newHash, nil
}

// Log walks the first-parent chain from HEAD, returning up to limit
// commits (0 means unlimited) — the natural CLI-facing consumer of the
// commit graph beyond merge-base (SPEC_FULL.md §3).
func (r *Repository) Log(limit int) ([]*objects.Commit, error) {
	current, found, err := r.HeadCommit()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var commits []*objects.Commit
	for {
		commit, err := r.Store.ReadCommit(current.String())
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
		if limit > 0 && len(commits) >= limit {
			break
		}
		if commit.IsRoot() {
			break
		}
		current = commit.Parents[0]
	}
	return commits, nil
}

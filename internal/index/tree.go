package index

import (
	"os"
	"path/filepath"

	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/nsserr"
	"github.com/nopeNoshishi/nss/internal/objects"
	"github.com/nopeNoshishi/nss/internal/store"
	"github.com/nopeNoshishi/nss/internal/treebuild"
)

// BuildTree folds the index into a nested tree hierarchy (spec §4.E,
// "Index -> Tree"): filenames are grouped by containing directory
// (component I, internal/treebuild), each directory's tree is built
// bottom-up and written to st as it is built, and the root tree's hash —
// what a commit references — is returned.
func BuildTree(idx *Index, st *store.Store) (hash.Hash, error) {
	groups := treebuild.Group(idx.Filenames())
	treeHashes := make(map[string]hash.Hash, len(groups))

	for _, g := range groups {
		entries := make([]objects.TreeEntry, 0, len(g.Children))
		for _, child := range g.Children {
			if sub, ok := treeHashes[child]; ok {
				entries = append(entries, objects.TreeEntry{
					Mode: objects.ModeTree,
					Name: treebuild.Basename(child),
					Hash: sub,
				})
				continue
			}
			meta, ok := idx.Get(child)
			if !ok {
				return hash.Hash{}, nsserr.Wrap("index: building tree", nsserr.ErrMalformedIndex)
			}
			entries = append(entries, objects.TreeEntry{
				Mode: meta.Mode,
				Name: treebuild.Basename(child),
				Hash: meta.Hash,
			})
		}

		h, err := st.Write(objects.NewTree(entries))
		if err != nil {
			return hash.Hash{}, err
		}
		treeHashes[g.Path] = h
	}

	return treeHashes[""], nil
}

// Materialize recursively writes every blob reachable from root into
// destDir, recreating the tree's directory structure, and returns the
// repository-relative paths it wrote (spec §4.D, §4.E "Tree -> Index").
func Materialize(st *store.Store, root hash.Hash, destDir string) ([]string, error) {
	return materializeDir(st, root, destDir, "")
}

func materializeDir(st *store.Store, treeHash hash.Hash, destDir, prefix string) ([]string, error) {
	tree, err := st.ReadTree(treeHash.String())
	if err != nil {
		return nil, err
	}

	var rel []string
	for _, e := range tree.Entries {
		relPath := e.Name
		if prefix != "" {
			relPath = prefix + "/" + e.Name
		}
		fullPath := filepath.Join(destDir, relPath)

		switch objects.EntryKind(e.Mode) {
		case objects.TreeKind:
			if err := os.MkdirAll(fullPath, 0o755); err != nil {
				return nil, nsserr.Wrap("index: creating directory during materialize", err)
			}
			sub, err := materializeDir(st, e.Hash, destDir, relPath)
			if err != nil {
				return nil, err
			}
			rel = append(rel, sub...)
		default:
			blob, err := st.ReadBlob(e.Hash.String())
			if err != nil {
				return nil, err
			}
			if dir := filepath.Dir(fullPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, nsserr.Wrap("index: creating directory during materialize", err)
				}
			}
			if err := os.WriteFile(fullPath, blob.Content, 0o644); err != nil {
				return nil, nsserr.Wrap("index: writing file during materialize", err)
			}
			rel = append(rel, relPath)
		}
	}
	return rel, nil
}

// FromTree rebuilds a staged Index from a committed tree by materializing
// it into a throwaway temporary directory, stat-ing each file there to get
// a real FileMeta, and then discarding the directory — reusing
// NewFileMeta's single stat-to-record path rather than synthesizing
// records by hand (spec §4.E, "Tree -> Index").
func FromTree(st *store.Store, root hash.Hash) (*Index, error) {
	tmpDir, err := os.MkdirTemp("", "nss-restore-*")
	if err != nil {
		return nil, nsserr.Wrap("index: creating restore scratch directory", err)
	}
	defer os.RemoveAll(tmpDir) // best-effort; removed even if the build below fails

	rels, err := Materialize(st, root, tmpDir)
	if err != nil {
		return nil, err
	}

	idx := New()
	for _, rel := range rels {
		full := filepath.Join(tmpDir, rel)
		content, err := os.ReadFile(full)
		if err != nil {
			return nil, nsserr.Wrap("index: reading materialized file", err)
		}
		meta, err := NewFileMeta(full, rel, content)
		if err != nil {
			return nil, err
		}
		idx.Add(meta)
	}
	return idx, nil
}

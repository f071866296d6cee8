// Package repo is the repository façade (spec §4.G): it resolves the
// on-disk paths under "<root>/.nss" and composes the object store, index,
// refs and commit graph packages under one root, the way the teacher's
// checkVCSRepo plus its fmt.Sprintf(".%s/...", vcsName) path-building
// composes its own single-file equivalent.
package repo

import (
	"os"
	"path/filepath"

	"github.com/nopeNoshishi/nss/internal/config"
	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/index"
	"github.com/nopeNoshishi/nss/internal/nsserr"
	"github.com/nopeNoshishi/nss/internal/objects"
	"github.com/nopeNoshishi/nss/internal/refs"
	"github.com/nopeNoshishi/nss/internal/store"
)

// DirName is the on-disk name of the repository metadata directory.
const DirName = ".nss"

// Repository composes sub-stores A-F under one root (spec §4.G).
type Repository struct {
	Root string // working-tree root
	Dir  string // "<Root>/.nss"

	ConfigPath     string
	IndexPath      string
	ObjectsDir     string
	HeadPath       string
	BookmarksDir   string
	IgnorePath     string

	Store *store.Store
}

// Open composes a Repository façade over an already-discovered root.
func Open(root string) *Repository {
	dir := filepath.Join(root, DirName)
	return &Repository{
		Root:         root,
		Dir:          dir,
		ConfigPath:   filepath.Join(dir, "config"),
		IndexPath:    filepath.Join(dir, "INDEX"),
		ObjectsDir:   filepath.Join(dir, "objects"),
		HeadPath:     filepath.Join(dir, "HEAD"),
		BookmarksDir: filepath.Join(dir, "bookmarks"),
		IgnorePath:   filepath.Join(root, ".nssignore"),
		Store:        store.New(filepath.Join(dir, "objects")),
	}
}

// Discover walks up from startDir looking for a child ".nss" directory,
// stopping once it reaches the user's home directory without finding one
// (spec §4.G "Discovery").
func Discover(startDir string) (*Repository, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	dir := startDir
	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return Open(dir), nil
		}

		if home != "" && dir == home {
			return nil, nsserr.ErrNotFoundRepository
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nsserr.ErrNotFoundRepository
		}
		dir = parent
	}
}

// Init creates a fresh repository rooted at root (spec §6 "On-disk
// layout").
func Init(root string) (*Repository, error) {
	r := Open(root)

	dirs := []string{r.Dir, r.ObjectsDir, r.BookmarksDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, nsserr.Wrap("repo: creating "+d, err)
		}
	}

	if err := refs.WriteHead(r.HeadPath, refs.NewBookmarkHead("main")); err != nil {
		return nil, err
	}
	if err := index.New().WriteFile(r.IndexPath); err != nil {
		return nil, err
	}
	if _, err := os.Create(r.ConfigPath); err != nil {
		return nil, nsserr.Wrap("repo: creating config file", err)
	}

	return r, nil
}

// ReadIndex loads the staging index.
func (r *Repository) ReadIndex() (*index.Index, error) {
	return index.ReadFile(r.IndexPath)
}

// WriteIndex overwrites the staging index.
func (r *Repository) WriteIndex(idx *index.Index) error {
	return idx.WriteFile(r.IndexPath)
}

// ReadConfig loads the user config.
func (r *Repository) ReadConfig() (config.Config, error) {
	return config.Read(r.ConfigPath)
}

// Head reads the current HEAD.
func (r *Repository) Head() (refs.Head, error) {
	return refs.ReadHead(r.HeadPath)
}

// RequireBookmark returns the current bookmark name, or DetachedHead if
// HEAD is direct (spec §7).
func (r *Repository) RequireBookmark() (string, error) {
	h, err := r.Head()
	if err != nil {
		return "", err
	}
	if h.Kind != refs.BookmarkHead {
		return "", nsserr.ErrDetachedHead
	}
	return h.BookmarkName, nil
}

// HeadCommit resolves HEAD to a commit hash. found is false when HEAD
// points at a bookmark that has no commits yet.
func (r *Repository) HeadCommit() (h hash.Hash, found bool, err error) {
	head, err := r.Head()
	if err != nil {
		return hash.Hash{}, false, err
	}
	switch head.Kind {
	case refs.BookmarkHead:
		return refs.ReadBookmark(r.BookmarksDir, head.BookmarkName)
	default:
		return head.CommitHash, true, nil
	}
}

// advanceHead moves the active bookmark (or HEAD directly, when detached)
// to newCommit (spec §2, "the active bookmark ... is advanced").
func (r *Repository) advanceHead(newCommit hash.Hash) error {
	head, err := r.Head()
	if err != nil {
		return err
	}
	if head.Kind == refs.BookmarkHead {
		return refs.WriteBookmark(r.BookmarksDir, head.BookmarkName, newCommit)
	}
	return refs.WriteHead(r.HeadPath, refs.NewDetachedHead(newCommit))
}

// ReadObject reads and decodes any object by hash or abbreviated prefix.
func (r *Repository) ReadObject(hashOrPrefix string) (objects.Object, error) {
	return r.Store.Read(hashOrPrefix)
}

// ResolveRef resolves ref to a commit hash: a bookmark name if one exists,
// otherwise an object hash or abbreviated prefix.
func (r *Repository) ResolveRef(ref string) (hash.Hash, error) {
	if h, found, err := refs.ReadBookmark(r.BookmarksDir, ref); err != nil {
		return hash.Hash{}, err
	} else if found {
		return h, nil
	}
	return r.Store.Resolve(ref)
}

// Package refs implements HEAD and bookmarks (spec §4.F): HEAD is a
// symbolic-or-direct pointer to a commit, serialized as TOML with an
// externally tagged discriminant (spec §9, "HEAD as a sum type"); a
// bookmark is a plain-text file holding a commit's hex hash.
package refs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/nsserr"
)

// Kind discriminates the two HEAD variants.
type Kind int

const (
	BookmarkHead Kind = iota
	DetachedHead
)

// Head is the tagged union described in spec §3/§4.F.
type Head struct {
	Kind         Kind
	BookmarkName string   // set when Kind == BookmarkHead
	CommitHash   hash.Hash // set when Kind == DetachedHead
}

// NewBookmarkHead builds a Head pointing at a named bookmark.
func NewBookmarkHead(name string) Head {
	return Head{Kind: BookmarkHead, BookmarkName: name}
}

// NewDetachedHead builds a Head pointing directly at a commit.
func NewDetachedHead(h hash.Hash) Head {
	return Head{Kind: DetachedHead, CommitHash: h}
}

// headFile is the externally tagged TOML representation: exactly one of
// the two tables is present on disk.
type headFile struct {
	Bookmark *bookmarkTable `toml:"bookmark,omitempty"`
	Detached *detachedTable `toml:"detached,omitempty"`
}

type bookmarkTable struct {
	Path string `toml:"path"`
}

type detachedTable struct {
	Hash string `toml:"hash"`
}

func (h Head) toFile() headFile {
	if h.Kind == BookmarkHead {
		return headFile{Bookmark: &bookmarkTable{Path: h.BookmarkName}}
	}
	return headFile{Detached: &detachedTable{Hash: h.CommitHash.String()}}
}

func fromFile(f headFile) (Head, error) {
	switch {
	case f.Bookmark != nil:
		return NewBookmarkHead(f.Bookmark.Path), nil
	case f.Detached != nil:
		h, err := hash.Parse(f.Detached.Hash)
		if err != nil {
			return Head{}, nsserr.Wrap("refs: parsing detached HEAD hash", err)
		}
		return NewDetachedHead(h), nil
	default:
		return Head{}, nsserr.Wrap("refs: decoding HEAD", nsserr.ErrMalformedObject)
	}
}

// ReadHead reads and decodes the HEAD file at path.
func ReadHead(path string) (Head, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Head{}, nsserr.Wrap("refs: reading HEAD", err)
	}
	var f headFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Head{}, nsserr.Wrap("refs: parsing HEAD TOML", err)
	}
	return fromFile(f)
}

// WriteHead serializes h as TOML and replaces path by writing a temporary
// file and renaming it into place.
func WriteHead(path string, h Head) error {
	data, err := toml.Marshal(h.toFile())
	if err != nil {
		return nsserr.Wrap("refs: encoding HEAD TOML", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nsserr.Wrap("refs: writing temp HEAD file", err)
	}
	return nsserr.Wrap("refs: renaming temp HEAD file into place", os.Rename(tmp, path))
}

// ---------------------------------------------------------------- bookmarks

// BookmarkPath returns the on-disk path of a bookmark file under dir
// (typically "<repo>/.nss/bookmarks").
func BookmarkPath(dir, name string) string {
	return filepath.Join(dir, name)
}

// ReadBookmark reads the commit hash a bookmark points to. found is false
// (with a nil error) when the bookmark has never been committed to yet —
// the root-commit case the teacher's empty ref file also models.
func ReadBookmark(dir, name string) (h hash.Hash, found bool, err error) {
	data, readErr := os.ReadFile(BookmarkPath(dir, name))
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return hash.Hash{}, false, nil
		}
		return hash.Hash{}, false, nsserr.Wrap("refs: reading bookmark", readErr)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return hash.Hash{}, false, nil
	}
	h, err = hash.Parse(text)
	if err != nil {
		return hash.Hash{}, false, nsserr.ErrBookmarkMismatch
	}
	return h, true, nil
}

// WriteBookmark overwrites the bookmark file for name with h's hex hash.
func WriteBookmark(dir, name string, h hash.Hash) error {
	path := BookmarkPath(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nsserr.Wrap("refs: creating bookmarks directory", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(h.String()), 0o644); err != nil {
		return nsserr.Wrap("refs: writing temp bookmark file", err)
	}
	return nsserr.Wrap("refs: renaming temp bookmark file into place", os.Rename(tmp, path))
}

// DeleteBookmark removes a bookmark file.
func DeleteBookmark(dir, name string) error {
	err := os.Remove(BookmarkPath(dir, name))
	if err != nil && !os.IsNotExist(err) {
		return nsserr.Wrap("refs: deleting bookmark", err)
	}
	return nil
}

// ListBookmarks returns every bookmark name under dir.
func ListBookmarks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, nsserr.Wrap("refs: listing bookmarks", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

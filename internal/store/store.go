// Package store implements the content-addressed object store (spec §4.B):
// objects are sharded by the first two hex characters of their hash and
// persisted as zlib-compressed canonical framings, one file per object,
// write-once.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/nsserr"
	"github.com/nopeNoshishi/nss/internal/objects"
)

// Store is a sharded, zlib-framed object store rooted at Dir (typically
// "<repo>/.nss/objects").
type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

func shard(h hash.Hash) (dir, rest string) {
	full := h.String()
	return full[:2], full[2:]
}

func (s *Store) path(h hash.Hash) string {
	dir, rest := shard(h)
	return filepath.Join(s.Dir, dir, rest)
}

// Write persists obj under its hash and returns the hash. Writing an object
// that already exists is a no-op success — AlreadyExists is translated to
// success per spec §7.
func (s *Store) Write(obj objects.Object) (hash.Hash, error) {
	h := obj.Hash()
	dir, rest := shard(h)
	dirPath := filepath.Join(s.Dir, dir)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return h, nsserr.Wrap("store: creating shard directory", err)
	}

	finalPath := filepath.Join(dirPath, rest)
	if _, err := os.Stat(finalPath); err == nil {
		return h, nil // already present, write is idempotent
	} else if !errors.Is(err, os.ErrNotExist) {
		return h, nsserr.Wrap("store: stat object file", err)
	}

	tmp, err := os.CreateTemp(dirPath, rest+".tmp-*")
	if err != nil {
		return h, nsserr.Wrap("store: creating temp object file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed away

	w := zlib.NewWriter(tmp)
	if _, err := w.Write(obj.Bytes()); err != nil {
		w.Close()
		tmp.Close()
		return h, nsserr.Wrap("store: writing compressed object", err)
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return h, nsserr.Wrap("store: closing zlib writer", err)
	}
	if err := tmp.Close(); err != nil {
		return h, nsserr.Wrap("store: closing temp object file", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return h, nil
		}
		return h, nsserr.Wrap("store: renaming temp object file into place", err)
	}
	return h, nil
}

// Has reports whether an object with the given hash is present.
func (s *Store) Has(h hash.Hash) bool {
	_, err := os.Stat(s.path(h))
	return err == nil
}

// Read resolves a hash or abbreviated prefix (spec §4.B) and returns the
// decoded Object.
func (s *Store) Read(hashOrPrefix string) (objects.Object, error) {
	h, err := s.Resolve(hashOrPrefix)
	if err != nil {
		return nil, err
	}
	data, err := s.readRaw(h)
	if err != nil {
		return nil, err
	}
	return objects.Decode(data)
}

// ReadCommit reads h and requires it to be a Commit, surfacing
// TypeMismatchError otherwise.
func (s *Store) ReadCommit(hashOrPrefix string) (*objects.Commit, error) {
	obj, err := s.Read(hashOrPrefix)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*objects.Commit)
	if !ok {
		return nil, nsserr.NewTypeMismatch(objects.CommitKind.String(), obj.Kind().String())
	}
	return c, nil
}

// ReadTree reads h and requires it to be a Tree.
func (s *Store) ReadTree(hashOrPrefix string) (*objects.Tree, error) {
	obj, err := s.Read(hashOrPrefix)
	if err != nil {
		return nil, err
	}
	t, ok := obj.(*objects.Tree)
	if !ok {
		return nil, nsserr.NewTypeMismatch(objects.TreeKind.String(), obj.Kind().String())
	}
	return t, nil
}

// ReadBlob reads h and requires it to be a Blob.
func (s *Store) ReadBlob(hashOrPrefix string) (*objects.Blob, error) {
	obj, err := s.Read(hashOrPrefix)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*objects.Blob)
	if !ok {
		return nil, nsserr.NewTypeMismatch(objects.BlobKind.String(), obj.Kind().String())
	}
	return b, nil
}

func (s *Store) readRaw(h hash.Hash) ([]byte, error) {
	f, err := os.Open(s.path(h))
	if err != nil {
		return nil, nsserr.Wrap("store: opening object file", err)
	}
	defer f.Close()

	r, err := zlib.NewReader(f)
	if err != nil {
		return nil, nsserr.Wrap("store: opening zlib reader", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nsserr.Wrap("store: decompressing object", err)
	}
	return data, nil
}

// Resolve implements the abbreviated-hash lookup rule (spec §4.B): the
// prefix must be at least 6 hex characters; within the two-char shard
// directory named by the prefix's first two characters, any entry whose
// remaining filename contains the rest of the prefix as a substring is a
// candidate. Zero candidates is NotFoundObject, more than one is
// AmbiguousHash.
func (s *Store) Resolve(prefix string) (hash.Hash, error) {
	if len(prefix) == hash.Size*2 {
		if h, err := hash.Parse(prefix); err == nil {
			if s.Has(h) {
				return h, nil
			}
			return hash.Hash{}, nsserr.ErrNotFoundObject
		}
	}

	if err := hash.ValidPrefix(prefix); err != nil {
		return hash.Hash{}, err
	}

	dirName, rest := prefix[:2], prefix[2:]
	entries, err := os.ReadDir(filepath.Join(s.Dir, dirName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return hash.Hash{}, nsserr.ErrNotFoundObject
		}
		return hash.Hash{}, nsserr.Wrap("store: reading shard directory", err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") || strings.Contains(e.Name(), ".tmp-") {
			continue
		}
		if strings.Contains(e.Name(), rest) {
			matches = append(matches, e.Name())
		}
	}

	switch len(matches) {
	case 0:
		return hash.Hash{}, nsserr.ErrNotFoundObject
	case 1:
		return hash.Parse(dirName + matches[0])
	default:
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = dirName + m
		}
		return hash.Hash{}, nsserr.NewAmbiguousHash(prefix, candidates)
	}
}

// WriteBlob is a convenience wrapper writing a *objects.Blob.
func (s *Store) WriteBlob(content []byte) (hash.Hash, error) {
	return s.Write(objects.NewBlob(content))
}

// String renders a small debug summary, mirroring the teacher's habit of a
// String() method on most value types.
func (s *Store) String() string {
	return fmt.Sprintf("store(%s)", s.Dir)
}

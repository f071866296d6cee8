// Package objects implements the three object kinds of the nss object
// model — blob, tree and commit — together with their canonical byte
// framing (spec §4.A) and codecs (spec §4.C).
//
// Blob, Tree and Commit share one small capability set, as the design notes
// (spec §9) ask for: render canonical bytes and report the SHA-1 hash of
// those bytes. Dispatch on the Kind tag avoids any inheritance hierarchy.
package objects

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/nsserr"
)

// Kind tags the three object variants.
type Kind uint8

const (
	BlobKind Kind = iota
	TreeKind
	CommitKind
)

func (k Kind) String() string {
	switch k {
	case BlobKind:
		return "blob"
	case TreeKind:
		return "tree"
	case CommitKind:
		return "commit"
	default:
		return "unknown"
	}
}

// Object is implemented by Blob, Tree and Commit.
type Object interface {
	Kind() Kind
	Bytes() []byte
	Hash() hash.Hash
}

// Entry kind-discriminating mode values (spec §3 "Tree entry").
const (
	ModeBlob = 0o100644
	ModeExec = 0o100755
	ModeTree = 0o040755
)

// EntryKind classifies a tree-entry mode by its high nibble.
func EntryKind(mode uint32) Kind {
	if mode>>12 == 0x4 {
		return TreeKind
	}
	return BlobKind
}

// ---------------------------------------------------------------- Blob

// Blob is an opaque, immutable byte sequence.
type Blob struct {
	Content []byte
}

func NewBlob(content []byte) *Blob { return &Blob{Content: content} }

func (b *Blob) Kind() Kind { return BlobKind }

// Bytes renders the canonical framing: "blob " || len || 0x00 || content.
func (b *Blob) Bytes() []byte {
	header := fmt.Sprintf("blob %d\x00", len(b.Content))
	return append([]byte(header), b.Content...)
}

func (b *Blob) Hash() hash.Hash { return hash.Sum(b.Bytes()) }

// DecodeBlob builds a Blob from a body whose framing header Header has
// already stripped, keeping the payload verbatim.
func DecodeBlob(body []byte) (*Blob, error) {
	return &Blob{Content: append([]byte(nil), body...)}, nil
}

// ---------------------------------------------------------------- Tree

// TreeEntry is one (mode, name, hash) triple within a Tree.
type TreeEntry struct {
	Mode uint32
	Name string
	Hash hash.Hash
}

// Tree is an ordered set of entries, unique and sorted by Name for hashing.
type Tree struct {
	Entries []TreeEntry
}

func NewTree(entries []TreeEntry) *Tree {
	t := &Tree{Entries: append([]TreeEntry(nil), entries...)}
	t.sort()
	return t
}

func (t *Tree) Kind() Kind { return TreeKind }

func (t *Tree) sort() {
	sort.Slice(t.Entries, func(i, j int) bool { return t.Entries[i].Name < t.Entries[j].Name })
}

// Bytes renders the canonical framing: "tree " || len(body) || 0x00 || body,
// where body is each entry's "mode name\0hash", name-sorted.
func (t *Tree) Bytes() []byte {
	t.sort()
	var body bytes.Buffer
	for _, e := range t.Entries {
		body.WriteString(strconv.FormatUint(uint64(e.Mode), 10))
		body.WriteByte(' ')
		body.WriteString(e.Name)
		body.WriteByte(0)
		body.Write(e.Hash[:])
	}
	header := fmt.Sprintf("tree %d\x00", body.Len())
	return append([]byte(header), body.Bytes()...)
}

func (t *Tree) Hash() hash.Hash { return hash.Sum(t.Bytes()) }

// Find returns the entry with the given name, if present.
func (t *Tree) Find(name string) (TreeEntry, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return TreeEntry{}, false
}

// DecodeTree parses a stream of "mode name\0hash" triples. Entries may
// arrive in any order; decode always re-sorts by name to canonicalize
// (spec §4.C).
func DecodeTree(body []byte) (*Tree, error) {
	var entries []TreeEntry
	i := 0
	for i < len(body) {
		spaceIdx := bytes.IndexByte(body[i:], ' ')
		if spaceIdx == -1 {
			return nil, fmt.Errorf("%w: tree entry missing space after mode", nsserr.ErrMalformedObject)
		}
		modeStr := string(body[i : i+spaceIdx])
		mode, err := strconv.ParseUint(modeStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid mode %q: %v", nsserr.ErrMalformedObject, modeStr, err)
		}
		i += spaceIdx + 1

		nullIdx := bytes.IndexByte(body[i:], 0)
		if nullIdx == -1 {
			return nil, fmt.Errorf("%w: tree entry missing name terminator", nsserr.ErrMalformedObject)
		}
		name := string(body[i : i+nullIdx])
		i += nullIdx + 1

		if i+hash.Size > len(body) {
			return nil, fmt.Errorf("%w: tree entry truncated hash", nsserr.ErrMalformedObject)
		}
		var h hash.Hash
		copy(h[:], body[i:i+hash.Size])
		i += hash.Size

		entries = append(entries, TreeEntry{Mode: uint32(mode), Name: name, Hash: h})
	}
	return NewTree(entries), nil
}

// ---------------------------------------------------------------- Commit

// Commit is a snapshot object referencing a root tree and zero or more
// ordered parents.
type Commit struct {
	TreeHash  hash.Hash
	Parents   []hash.Hash
	Author    string
	Committer string
	Date      time.Time
	Message   string
}

func (c *Commit) Kind() Kind { return CommitKind }

// Bytes renders the canonical framing described in spec §4.A. Parent-less
// commits still emit a "parent None" line, preserving round-trip with
// commits produced before multi-parent support existed.
func (c *Commit) Bytes() []byte {
	var body bytes.Buffer
	fmt.Fprintf(&body, "tree %s\n", c.TreeHash.String())
	if len(c.Parents) == 0 {
		body.WriteString("parent None\n")
	} else {
		for _, p := range c.Parents {
			fmt.Fprintf(&body, "parent %s\n", p.String())
		}
	}
	fmt.Fprintf(&body, "author %s\n", c.Author)
	fmt.Fprintf(&body, "committer %s\n", c.Committer)
	fmt.Fprintf(&body, "date %d\n", c.Date.UTC().Unix())
	body.WriteString("\n")
	body.WriteString(c.Message)
	body.WriteString("\n")

	header := fmt.Sprintf("commit %d\x00", body.Len())
	return append([]byte(header), body.Bytes()...)
}

func (c *Commit) Hash() hash.Hash { return hash.Sum(c.Bytes()) }

// IsMerge reports whether the commit has two or more parents.
func (c *Commit) IsMerge() bool { return len(c.Parents) >= 2 }

// IsRoot reports whether the commit has no parents.
func (c *Commit) IsRoot() bool { return len(c.Parents) == 0 }

// DecodeCommit parses the text body produced by Commit.Bytes.
func DecodeCommit(body []byte) (*Commit, error) {
	text := string(body)

	headerText := text
	message := ""
	if idx := strings.Index(text, "\n\n"); idx != -1 {
		headerText = text[:idx]
		message = strings.TrimSuffix(text[idx+2:], "\n")
	}

	c := &Commit{}
	for _, line := range strings.Split(headerText, "\n") {
		if line == "" {
			continue
		}
		token, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("%w: commit line %q has no value", nsserr.ErrMalformedObject, line)
		}
		switch token {
		case "tree":
			h, err := hash.Parse(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: commit tree hash: %v", nsserr.ErrMalformedObject, err)
			}
			c.TreeHash = h
		case "parent":
			if rest == "None" {
				continue
			}
			h, err := hash.Parse(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: commit parent hash: %v", nsserr.ErrMalformedObject, err)
			}
			c.Parents = append(c.Parents, h)
		case "author":
			c.Author = rest
		case "committer":
			c.Committer = rest
		case "date":
			secs, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: commit date: %v", nsserr.ErrMalformedObject, err)
			}
			c.Date = time.Unix(secs, 0).UTC()
		}
	}

	c.Message = message
	return c, nil
}

// ---------------------------------------------------------------- dispatch

// Header peels "<kind> <len>\x00" off data and returns the kind, the body,
// and an error if the framing is malformed.
func Header(data []byte) (Kind, []byte, error) {
	nullIdx := bytes.IndexByte(data, 0)
	if nullIdx == -1 {
		return 0, nil, fmt.Errorf("%w: missing header terminator", nsserr.ErrMalformedObject)
	}
	header := string(data[:nullIdx])
	kindStr, lenStr, ok := strings.Cut(header, " ")
	if !ok {
		return 0, nil, fmt.Errorf("%w: invalid header %q", nsserr.ErrMalformedObject, header)
	}
	wantLen, err := strconv.Atoi(lenStr)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: invalid length in header %q", nsserr.ErrMalformedObject, header)
	}
	body := data[nullIdx+1:]
	if len(body) != wantLen {
		return 0, nil, fmt.Errorf("%w: declared length %d, got %d bytes", nsserr.ErrMalformedObject, wantLen, len(body))
	}

	switch kindStr {
	case "blob":
		return BlobKind, body, nil
	case "tree":
		return TreeKind, body, nil
	case "commit":
		return CommitKind, body, nil
	default:
		return 0, nil, fmt.Errorf("%w: unknown object kind %q", nsserr.ErrMalformedObject, kindStr)
	}
}

// Decode parses a full canonical framing into its typed Object.
func Decode(data []byte) (Object, error) {
	kind, body, err := Header(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case BlobKind:
		return DecodeBlob(body)
	case TreeKind:
		return DecodeTree(body)
	case CommitKind:
		return DecodeCommit(body)
	default:
		return nil, fmt.Errorf("%w: unknown object kind", nsserr.ErrMalformedObject)
	}
}

// Package index implements the staging area: the FileMeta record (spec
// §4.D) and the binary Index container (spec §4.E), including the
// tree<->index round-trip and the diff used by status.
package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/nopeNoshishi/nss/internal/nsserr"
)

const (
	magic         = "DIRC"
	fixedLen      = 60 // bytes 0..59 of a FileMeta record, before filename_size
	headerLen     = 4 + 4 + 4
	currentVersion uint32 = 1
)

// Index is the ordered set of staged FileMeta records.
type Index struct {
	Version   uint32
	FileMetas []FileMeta
}

// New returns an empty, version-1 index.
func New() *Index {
	return &Index{Version: currentVersion}
}

func (idx *Index) sort() {
	sort.SliceStable(idx.FileMetas, func(i, j int) bool {
		return idx.FileMetas[i].Filename > idx.FileMetas[j].Filename // descending, per spec §9
	})
}

// Filenames returns the staged paths in the index's on-disk (descending)
// order.
func (idx *Index) Filenames() []string {
	names := make([]string, len(idx.FileMetas))
	for i, m := range idx.FileMetas {
		names[i] = m.Filename
	}
	return names
}

// Get returns the record for name, if staged.
func (idx *Index) Get(name string) (FileMeta, bool) {
	for _, m := range idx.FileMetas {
		if m.Filename == name {
			return m, true
		}
	}
	return FileMeta{}, false
}

// Add stages meta, replacing any existing record that either names the
// same path or already carries the same blob hash (spec §4.D, §4.E).
//
// The spec's own wording only calls for removing a record with the same
// Hash before appending (mirroring FileMeta's hash-only equality, §3).
// Taken literally that allows two records for the same path to coexist
// whenever their hashes differ, which breaks the tree-entry uniqueness
// invariant (§3) as soon as Index→Tree tries to build a directory with two
// entries named the same thing. Add therefore also drops any existing
// record for meta.Filename; see DESIGN.md for this Open-Question decision.
func (idx *Index) Add(meta FileMeta) {
	kept := idx.FileMetas[:0:0]
	for _, existing := range idx.FileMetas {
		if existing.Hash == meta.Hash || existing.Filename == meta.Filename {
			continue
		}
		kept = append(kept, existing)
	}
	idx.FileMetas = append(kept, meta)
	idx.sort()
}

// Remove unstages the record for name, if any, reporting whether a record
// was removed.
func (idx *Index) Remove(name string) bool {
	for i, m := range idx.FileMetas {
		if m.Filename == name {
			idx.FileMetas = append(idx.FileMetas[:i], idx.FileMetas[i+1:]...)
			return true
		}
	}
	return false
}

// Encode renders the binary DIRC container described in spec §4.E.
func (idx *Index) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	writeU32(&buf, idx.Version)
	writeU32(&buf, uint32(len(idx.FileMetas)))

	for _, m := range idx.FileMetas {
		writeU32(&buf, m.Ctime)
		writeU32(&buf, m.CtimeNsec)
		writeU32(&buf, m.Mtime)
		writeU32(&buf, m.MtimeNsec)
		writeU32(&buf, m.Dev)
		writeU32(&buf, m.Ino)
		writeU32(&buf, m.Mode)
		writeU32(&buf, m.Uid)
		writeU32(&buf, m.Gid)
		writeU32(&buf, m.Filesize)
		buf.Write(m.Hash[:])

		name := m.Filename
		n := uint16(len(name))
		writeU16(&buf, n)
		buf.WriteString(name)

		recordHeader := fixedLen + 2 + int(n)
		pad := 8 - (recordHeader % 8)
		if pad == 0 {
			pad = 8
		}
		buf.Write(make([]byte, pad))
	}

	return buf.Bytes()
}

// Decode parses the binary DIRC container. A zero-length input decodes to
// an empty, version-1 index (spec §4.E, "Empty-input decode policy").
func Decode(data []byte) (*Index, error) {
	if len(data) == 0 {
		return New(), nil
	}
	if len(data) < headerLen || string(data[:4]) != magic {
		return nil, fmt.Errorf("%w: missing DIRC magic", nsserr.ErrMalformedIndex)
	}

	version := binary.BigEndian.Uint32(data[4:8])
	count := binary.BigEndian.Uint32(data[8:12])

	idx := &Index{Version: version}
	off := headerLen
	for i := uint32(0); i < count; i++ {
		if off+fixedLen+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated record %d", nsserr.ErrMalformedIndex, i)
		}
		var m FileMeta
		m.Ctime = binary.BigEndian.Uint32(data[off:])
		m.CtimeNsec = binary.BigEndian.Uint32(data[off+4:])
		m.Mtime = binary.BigEndian.Uint32(data[off+8:])
		m.MtimeNsec = binary.BigEndian.Uint32(data[off+12:])
		m.Dev = binary.BigEndian.Uint32(data[off+16:])
		m.Ino = binary.BigEndian.Uint32(data[off+20:])
		m.Mode = binary.BigEndian.Uint32(data[off+24:])
		m.Uid = binary.BigEndian.Uint32(data[off+28:])
		m.Gid = binary.BigEndian.Uint32(data[off+32:])
		m.Filesize = binary.BigEndian.Uint32(data[off+36:])
		copy(m.Hash[:], data[off+40:off+60])
		n := binary.BigEndian.Uint16(data[off+60:])
		m.FilenameLen = n

		nameStart := off + fixedLen + 2
		if nameStart+int(n) > len(data) {
			return nil, fmt.Errorf("%w: truncated filename in record %d", nsserr.ErrMalformedIndex, i)
		}
		m.Filename = string(data[nameStart : nameStart+int(n)])

		recordHeader := fixedLen + 2 + int(n)
		pad := 8 - (recordHeader % 8)
		if pad == 0 {
			pad = 8
		}
		recordLen := recordHeader + pad
		if off+recordLen > len(data) {
			return nil, fmt.Errorf("%w: record %d padding overruns file", nsserr.ErrMalformedIndex, i)
		}

		idx.FileMetas = append(idx.FileMetas, m)
		off += recordLen
	}

	return idx, nil
}

// ReadFile reads and decodes the index file at path.
func ReadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, nsserr.Wrap("index: reading index file", err)
	}
	return Decode(data)
}

// WriteFile replaces path with idx's encoding: the full encoding is written
// to a temporary file that is then renamed over path, so a reader sees either
// the previous or the next complete index.
func (idx *Index) WriteFile(path string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, idx.Encode(), 0o644); err != nil {
		return nsserr.Wrap("index: writing temp index file", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nsserr.Wrap("index: renaming temp index file into place", err)
	}
	return nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

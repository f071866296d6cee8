package index

import (
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/nsserr"
	"github.com/nopeNoshishi/nss/internal/objects"
)

// FileMeta is one staging-area record: a POSIX stat snapshot plus the blob
// hash of the file's content and its repository-relative name (spec §3
// "FileMeta (index record)", spec §4.D).
type FileMeta struct {
	Ctime       uint32
	CtimeNsec   uint32
	Mtime       uint32
	MtimeNsec   uint32
	Dev         uint32
	Ino         uint32
	Mode        uint32
	Uid         uint32
	Gid         uint32
	Filesize    uint32
	Hash        hash.Hash
	FilenameLen uint16
	Filename    string
}

// Equal implements the spec's deliberately narrow equality rule (§3, §9
// Open Questions): two records are equal iff their blob hashes are equal.
// A re-stage of unchanged content with a fresh mtime therefore compares
// equal to the prior record.
func (m FileMeta) Equal(other FileMeta) bool {
	return m.Hash == other.Hash
}

// NewFileMeta stats path, hashes its content, and builds a FileMeta whose
// Filename is relPath (already made repository-relative by the caller).
func NewFileMeta(path, relPath string, content []byte) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileMeta{}, nsserr.ErrNotFoundPath
		}
		return FileMeta{}, nsserr.Wrap("index: stat file", err)
	}

	relPath = filepath.ToSlash(relPath)
	m := FileMeta{
		Mode:        uint32(modeOf(info)),
		Filesize:    uint32(info.Size()),
		Hash:        objects.NewBlob(content).Hash(),
		Filename:    relPath,
		FilenameLen: uint16(len(relPath)),
	}

	mtime := info.ModTime()
	m.Mtime, m.MtimeNsec = uint32(mtime.Unix()), uint32(mtime.Nanosecond())

	if sys, ok := info.Sys().(*syscall.Stat_t); ok {
		m.Dev = uint32(sys.Dev)
		m.Ino = uint32(sys.Ino)
		m.Uid = sys.Uid
		m.Gid = sys.Gid
		ctime := time.Unix(sys.Ctim.Sec, sys.Ctim.Nsec)
		m.Ctime, m.CtimeNsec = uint32(ctime.Unix()), uint32(ctime.Nanosecond())
	} else {
		// Non-POSIX stat_t (unsupported platform): fall back to mtime for
		// ctime rather than leaving it zero.
		m.Ctime, m.CtimeNsec = m.Mtime, m.MtimeNsec
	}

	return m, nil
}

func modeOf(info os.FileInfo) int {
	if info.Mode()&0o111 != 0 {
		return 0o100755
	}
	return 0o100644
}

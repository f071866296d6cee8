// Package ignore reads ".nssignore" (spec §6): a line-oriented list of
// repository-root-relative paths to exclude from working-tree scans. This
// is a non-core collaborator — the core treats it only through the small
// Matcher interface below (spec §1).
package ignore

import (
	"bufio"
	"os"
	"strings"

	"github.com/nopeNoshishi/nss/internal/nsserr"
)

// alwaysIgnored directories are excluded regardless of .nssignore content.
var alwaysIgnored = []string{".nss/", ".git/"}

// Matcher answers whether a repository-relative path should be skipped
// during a working-tree scan.
type Matcher struct {
	patterns []string
}

// Load reads the .nssignore file at path. A missing file is not an error —
// it simply means no additional patterns beyond the always-ignored
// directories.
func Load(path string) (*Matcher, error) {
	m := &Matcher{patterns: append([]string(nil), alwaysIgnored...)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, nsserr.Wrap("ignore: opening .nssignore", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.Contains(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nsserr.Wrap("ignore: reading .nssignore", err)
	}
	return m, nil
}

// Match reports whether relPath (or one of its ancestor directories) is
// excluded.
func (m *Matcher) Match(relPath string) bool {
	relPath = strings.TrimPrefix(relPath, "./")
	for _, p := range m.patterns {
		trimmed := strings.TrimSuffix(p, "/")
		if relPath == trimmed || strings.HasPrefix(relPath, trimmed+"/") {
			return true
		}
	}
	return false
}

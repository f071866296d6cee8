// Package treebuild implements component I of the design: grouping an
// index's flat path list into nested directories, deepest first, so a
// caller can hash children before parents (spec §4.I).
package treebuild

import (
	"sort"
	"strings"
)

// Group is one directory's worth of immediate children: plain file paths
// and immediate subdirectory paths, both given in full (repo-relative)
// form. Path is "" for the repository root.
type Group struct {
	Path     string
	Children []string
}

// Group partitions filenames into post-order directory groups: every
// directory appears after all of its subdirectories, so a bottom-up walk
// of the result can hash each directory's children before the directory
// itself.
func Group(filenames []string) []Group {
	childSets := map[string]map[string]struct{}{"": {}}

	addChild := func(dir, child string) {
		set, ok := childSets[dir]
		if !ok {
			set = map[string]struct{}{}
			childSets[dir] = set
		}
		set[child] = struct{}{}
	}

	for _, name := range filenames {
		parts := strings.Split(name, "/")
		for i := 1; i < len(parts); i++ {
			parent := strings.Join(parts[:i-1], "/")
			child := strings.Join(parts[:i], "/")
			addChild(parent, child)
		}
		fileDir := strings.Join(parts[:len(parts)-1], "/")
		addChild(fileDir, name)
	}

	dirs := make([]string, 0, len(childSets))
	for dir := range childSets {
		dirs = append(dirs, dir)
	}

	depth := func(p string) int {
		if p == "" {
			return 0
		}
		return strings.Count(p, "/") + 1
	}

	sort.Slice(dirs, func(i, j int) bool {
		di, dj := depth(dirs[i]), depth(dirs[j])
		if di != dj {
			return di > dj // deepest first (post-order)
		}
		return dirs[i] < dirs[j]
	})

	groups := make([]Group, 0, len(dirs))
	for _, dir := range dirs {
		children := make([]string, 0, len(childSets[dir]))
		for c := range childSets[dir] {
			children = append(children, c)
		}
		sort.Strings(children)
		groups = append(groups, Group{Path: dir, Children: children})
	}
	return groups
}

// Basename returns the last path component of a repo-relative path.
func Basename(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx != -1 {
		return path[idx+1:]
	}
	return path
}

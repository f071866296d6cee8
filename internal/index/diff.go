package index

import "sort"

// Tag classifies one filename's status between two indices (spec §4.E).
type Tag int

const (
	Equal Tag = iota
	Insert
	Delete
	Replace
)

func (t Tag) String() string {
	switch t {
	case Equal:
		return "Equal"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case Replace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// Change is one entry of a Diff result.
type Change struct {
	Tag      Tag
	Filename string
}

// Diff compares two indices and returns one Change per filename appearing
// in either (spec §4.E, §8 property 8: totality over the union of names).
func Diff(a, b *Index) []Change {
	names := map[string]struct{}{}
	for _, m := range a.FileMetas {
		names[m.Filename] = struct{}{}
	}
	for _, m := range b.FileMetas {
		names[m.Filename] = struct{}{}
	}

	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	changes := make([]Change, 0, len(sorted))
	for _, name := range sorted {
		ma, inA := a.Get(name)
		mb, inB := b.Get(name)
		switch {
		case inA && !inB:
			changes = append(changes, Change{Tag: Delete, Filename: name})
		case !inA && inB:
			changes = append(changes, Change{Tag: Insert, Filename: name})
		case ma.Hash == mb.Hash:
			changes = append(changes, Change{Tag: Equal, Filename: name})
		default:
			changes = append(changes, Change{Tag: Replace, Filename: name})
		}
	}
	return changes
}

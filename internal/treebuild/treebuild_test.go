package treebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupFlatFiles(t *testing.T) {
	groups := Group([]string{"a.txt", "b.txt"})
	require.Len(t, groups, 1)
	assert.Equal(t, "", groups[0].Path)
	assert.Equal(t, []string{"a.txt", "b.txt"}, groups[0].Children)
}

// TestGroupIsPostOrder checks that every directory appears strictly after
// all of its subdirectories, so a bottom-up walk hashes children first.
func TestGroupIsPostOrder(t *testing.T) {
	groups := Group([]string{
		"README.md",
		"src/main.go",
		"src/lib/util.go",
		"src/lib/inner/deep.go",
	})

	index := map[string]int{}
	for i, g := range groups {
		index[g.Path] = i
	}

	assert.Less(t, index["src/lib/inner"], index["src/lib"])
	assert.Less(t, index["src/lib"], index["src"])
	assert.Less(t, index["src"], index[""])
}

func TestGroupChildrenContents(t *testing.T) {
	groups := Group([]string{"src/main.go", "src/lib/util.go"})

	byPath := map[string][]string{}
	for _, g := range groups {
		byPath[g.Path] = g.Children
	}

	assert.Equal(t, []string{"src"}, byPath[""])
	assert.Equal(t, []string{"src/lib", "src/main.go"}, byPath["src"])
	assert.Equal(t, []string{"src/lib/util.go"}, byPath["src/lib"])
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "util.go", Basename("src/lib/util.go"))
	assert.Equal(t, "README.md", Basename("README.md"))
}

func TestGroupEmpty(t *testing.T) {
	groups := Group(nil)
	require.Len(t, groups, 1)
	assert.Equal(t, "", groups[0].Path)
	assert.Empty(t, groups[0].Children)
}

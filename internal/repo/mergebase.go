package repo

import (
	"github.com/nopeNoshishi/nss/internal/graph"
	"github.com/nopeNoshishi/nss/internal/hash"
)

// MaxAncestryDepth bounds the depth-limited DFS used when building a commit
// graph for a merge-base query; deep enough for any realistic history
// without risking unbounded recursion on a pathological input.
const MaxAncestryDepth = 100000

// MergeBase resolves refA and refB to commits, builds each one's ancestry
// graph (spec §4.H) and returns their best common ancestor (S6).
func (r *Repository) MergeBase(refA, refB string) (hash.Hash, bool, error) {
	a, err := r.ResolveRef(refA)
	if err != nil {
		return hash.Hash{}, false, err
	}
	b, err := r.ResolveRef(refB)
	if err != nil {
		return hash.Hash{}, false, err
	}

	ga, err := graph.Build(r.Store, a, MaxAncestryDepth)
	if err != nil {
		return hash.Hash{}, false, err
	}
	gb, err := graph.Build(r.Store, b, MaxAncestryDepth)
	if err != nil {
		return hash.Hash{}, false, err
	}

	best, found := graph.BestCommonAncestor(ga, gb, a, b)
	return best, found, nil
}

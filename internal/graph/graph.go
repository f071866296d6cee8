// Package graph builds the commit ancestry DAG on demand and answers
// best-common-ancestor queries across two histories (spec §4.H).
//
// Vertices live in an arena indexed by an integer VertexIndex, deduplicated
// by commit hash on insert; edges are (child, parent) index pairs and are
// never deduplicated, per the design notes in spec §9 ("model vertices in
// an arena... this avoids ownership cycles entirely").
package graph

import (
	"sort"

	"github.com/nopeNoshishi/nss/internal/hash"
	"github.com/nopeNoshishi/nss/internal/store"
)

// VertexIndex indexes Graph.Vertices.
type VertexIndex int

// Edge points from a commit to one of its parents.
type Edge struct {
	Child  VertexIndex
	Parent VertexIndex
}

// Graph is a directed multigraph of commit hashes.
type Graph struct {
	Vertices []hash.Hash
	Edges    []Edge

	indexOf map[hash.Hash]VertexIndex
	parents map[VertexIndex][]VertexIndex
}

func newGraph() *Graph {
	return &Graph{
		indexOf: map[hash.Hash]VertexIndex{},
		parents: map[VertexIndex][]VertexIndex{},
	}
}

func (g *Graph) vertex(h hash.Hash) VertexIndex {
	if idx, ok := g.indexOf[h]; ok {
		return idx
	}
	idx := VertexIndex(len(g.Vertices))
	g.Vertices = append(g.Vertices, h)
	g.indexOf[h] = idx
	return idx
}

func (g *Graph) addEdge(child, parent VertexIndex) {
	g.Edges = append(g.Edges, Edge{Child: child, Parent: parent})
	g.parents[child] = append(g.parents[child], parent)
}

// IndexOf returns the vertex index for h, if present.
func (g *Graph) IndexOf(h hash.Hash) (VertexIndex, bool) {
	idx, ok := g.indexOf[h]
	return idx, ok
}

// Build performs a depth-limited DFS from start, reading each commit from
// st. depth bounds the number of generations walked; depth <= 0 yields a
// single-vertex graph containing only start.
func Build(st *store.Store, start hash.Hash, depth int) (*Graph, error) {
	g := newGraph()
	if err := g.walk(st, start, depth); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) walk(st *store.Store, h hash.Hash, remaining int) error {
	idx := g.vertex(h)
	if remaining <= 0 {
		return nil
	}
	commit, err := st.ReadCommit(h.String())
	if err != nil {
		return err
	}
	for _, parent := range commit.Parents {
		parentIdx := g.vertex(parent)
		g.addEdge(idx, parentIdx)
		if err := g.walk(st, parent, remaining-1); err != nil {
			return err
		}
	}
	return nil
}

// BFSDistance returns the number of generations from `from` to `to`,
// following edges from a commit to its parents, using a FIFO queue and a
// visited bitmap sized to the vertex count (spec §4.H).
func BFSDistance(g *Graph, from, to hash.Hash) (int, bool) {
	start, ok := g.IndexOf(from)
	if !ok {
		return 0, false
	}
	target, ok := g.IndexOf(to)
	if !ok {
		return 0, false
	}
	if start == target {
		return 0, true
	}

	visited := make([]bool, len(g.Vertices))
	visited[start] = true
	queue := []VertexIndex{start}
	dist := map[VertexIndex]int{start: 0}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, parent := range g.parents[cur] {
			if visited[parent] {
				continue
			}
			visited[parent] = true
			dist[parent] = dist[cur] + 1
			if parent == target {
				return dist[parent], true
			}
			queue = append(queue, parent)
		}
	}
	return 0, false
}

// BestCommonAncestor returns the commit hash reachable from both s1 (in g1)
// and s2 (in g2) that minimizes the summed BFS distance from each tip (spec
// §4.H, S6). Ties are broken by the lexicographically smallest hex hash,
// which is deterministic but otherwise arbitrary, as the spec allows.
func BestCommonAncestor(g1, g2 *Graph, s1, s2 hash.Hash) (hash.Hash, bool) {
	common := make([]hash.Hash, 0)
	for _, v := range g1.Vertices {
		if _, ok := g2.IndexOf(v); ok {
			common = append(common, v)
		}
	}
	sort.Slice(common, func(i, j int) bool { return common[i].String() < common[j].String() })

	best := hash.Hash{}
	bestSum := -1
	found := false
	for _, v := range common {
		d1, ok1 := BFSDistance(g1, s1, v)
		d2, ok2 := BFSDistance(g2, s2, v)
		if !ok1 || !ok2 {
			continue
		}
		sum := d1 + d2
		if !found || sum < bestSum {
			bestSum = sum
			best = v
			found = true
		}
	}
	return best, found
}

// File: types.go
// Role: Node, Link and Graph — the directed capacitated topology every
// other component places tunnels onto.
//
// Concurrency: Graph is safe for single-threaded use during construction
// (AddNode/AddEdge) and for concurrent reads thereafter (Neighbors, Link,
// NodeIDs, LinkCount); no mutation is exposed once the topology is built, so
// no internal lock is needed — callers that build concurrently must
// synchronise externally.
package topology

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Link is a directed, capacitated edge. Id is dense and assigned in
// insertion order starting at 0. Link is
// immutable after construction.
type Link struct {
	ID int64
	Src int64
	Dst int64
	Capacity float64 // Gbps
}

// Graph is a directed capacitated graph: a set of nodes, a dense
// monotonically-assigned link-id space, and an adjacency list preserving
// insertion order per source node.
//
// The internal gonum WeightedDirectedGraph tracks node membership and a
// single capacity-weighted edge per (src, dst) pair for O(1) existence
// checks; the authoritative, order-preserving, multi-link-capable adjacency
// truth is the Graph's own outgoing slice, matching "mapping
// from source node to ordered list of outgoing links" exactly (gonum's
// simple graph has no parallel-edge support, so it cannot be that source of
// truth by itself).
type Graph struct {
	inner *simple.WeightedDirectedGraph

	nextLinkID int64
	nodeOrder []int64 // insertion order, for deterministic NodeIDs
	outgoing map[int64][]*Link // src -> ordered outgoing links
	byID []*Link // link id -> Link, dense from 0
}

// NewGraph returns an empty directed capacitated graph.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		inner: simple.NewWeightedDirectedGraph(0, 0),
		outgoing: make(map[int64][]*Link),
	}
}

// AddNode inserts node id into the graph. Idempotent: re-adding an existing
// node is a no-op.
// Complexity: O(1) amortised.
func (g *Graph) AddNode(id int64) {
	if g.inner.Node(id) != nil {
		return
	}
	g.nodeOrder = append(g.nodeOrder, id)
	g.outgoing[id] = nil
	g.inner.AddNode(simple.Node(id))
}

// HasNode reports whether id is present in the graph, answered directly from
// the gonum-backed view rather than re-deriving membership from outgoing.
func (g *Graph) HasNode(id int64) bool {
	return g.inner.Node(id) != nil
}

// AddEdge adds both endpoints (if absent) and a new directed link from src
// to dst with the given capacity, assigning it the next dense link id.
// Returns the created Link. Capacity is not validated here: the loader (see
// loader.go) rejects a negative capacity with ErrInvalidInput before calling
// AddEdge. A self edge (src == dst) panics, because the gonum-backed view
// rejects self edges.
// Complexity: O(1) amortised.
func (g *Graph) AddEdge(src, dst int64, capacity float64) *Link {
	g.AddNode(src)
	g.AddNode(dst)

	link := &Link{ID: g.nextLinkID, Src: src, Dst: dst, Capacity: capacity}
	g.nextLinkID++
	g.byID = append(g.byID, link)
	g.outgoing[src] = append(g.outgoing[src], link)

	// Mirror into the gonum-backed view. Parallel edges collapse to the
	// most-recently-added capacity there; callers needing per-link detail
	// use Neighbors/Link, not the gonum view.
	g.inner.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(src), T: simple.Node(dst), W: capacity})

	return link
}

// Link returns the first link from src to dst, or (nil, false) if none
// exists. Existence is checked against the gonum-backed view first, so a
// non-adjacent (src, dst) pair never pays the outgoing-slice scan.
// Complexity: O(1) on absence, O(out-degree(src)) on presence.
func (g *Graph) Link(src, dst int64) (*Link, bool) {
	if !g.inner.HasEdgeFromTo(src, dst) {
		return nil, false
	}
	for _, l := range g.outgoing[src] {
		if l.Dst == dst {
			return l, true
		}
	}
	return nil, false
}

// LinkByID returns the link with the given dense id, or (nil, false).
func (g *Graph) LinkByID(id int64) (*Link, bool) {
	if id < 0 || id >= int64(len(g.byID)) {
		return nil, false
	}
	return g.byID[id], true
}

// Neighbors returns the ordered list of outgoing links from node id, in
// insertion order. The returned slice must
// not be mutated by the caller.
// Complexity: O(1).
func (g *Graph) Neighbors(id int64) []*Link {
	return g.outgoing[id]
}

// NodeIDs returns every node id in insertion order. Deterministic across calls.
func (g *Graph) NodeIDs() []int64 {
	out := make([]int64, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

// SortedNodeIDs returns every node id in ascending order — convenient for
// deterministic iteration independent of insertion order.
func (g *Graph) SortedNodeIDs() []int64 {
	out := g.NodeIDs()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LinkCount returns the total number of links added to the graph.
func (g *Graph) LinkCount() int {
	return len(g.byID)
}

// Links returns every link in the graph, ordered by link id.
func (g *Graph) Links() []*Link {
	out := make([]*Link, len(g.byID))
	copy(out, g.byID)
	return out
}

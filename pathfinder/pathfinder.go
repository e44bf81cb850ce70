// File: pathfinder.go
// Role: best-first (widest-path) single- and multi-path search over a
// topology.Graph, using a container/heap runner re-keyed from "shortest
// delay" to "prefer high-capacity links".
//
// Resolved open question: "capacity as the relaxing key" is
// read as the classic widest-path objective — maximise the minimum link
// capacity (bottleneck) along the path — rather than a single-hop greedy
// choice, since a single-hop-greedy walk has no notion of "the path so
// far" and cannot be tie-broken meaningfully across multi-hop routes.
package pathfinder

import (
	"container/heap"

	"github.com/katalvlaran/pulsenet/topology"
)

// maxExpansions bounds the number of frontier pops a single FindMultiPath or
// FindAllPaths call will perform, guarding against combinatorial blow-up on
// densely cyclic graphs when per-branch (not global) visited sets are used.
// Exceeding it stops the search early and returns whatever was collected so
// far — a bounded-effort safety valve in the spirit of .
const maxExpansions = 200000

// Finder searches a fixed topology.Graph for tunnels. A Finder also owns
// the incremental allocation state consumed by AllocateDemandBandwidth; it
// is not safe for concurrent use.
type Finder struct {
	g *topology.Graph

	// linkAllocated tracks bandwidth already spoken for by
	// AllocateDemandBandwidth calls on this Finder, keyed by link id.
	linkAllocated map[int64]float64
}

// New returns a Finder over g.
func New(g *topology.Graph) *Finder {
	return &Finder{g: g, linkAllocated: make(map[int64]float64)}
}

// FindPath returns a single simple path from src to dst maximising the
// minimum link capacity along the route. Returns an empty
// Tunnel if no path exists.
// Complexity: O((V+E) log V).
func (f *Finder) FindPath(src, dst int64) Tunnel {
	if src == dst {
		return Tunnel{}
	}

	dist := map[int64]float64{src: posInf}
	visited := make(map[int64]bool)
	tunnels := map[int64]Tunnel{src: {}}

	pq := &itemHeap{}
	heap.Init(pq)
	var seq int64
	heap.Push(pq, &pathItem{node: src, tunnel: Tunnel{}, priority: -posInf, seq: seq})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pathItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == dst {
			return item.tunnel
		}

		bottleneck := -item.priority
		for _, link := range f.g.Neighbors(u) {
			if visited[link.Dst] {
				continue
			}
			newBottleneck := minF(bottleneck, link.Capacity)
			if best, ok := dist[link.Dst]; ok && newBottleneck <= best {
				continue
			}
			dist[link.Dst] = newBottleneck

			newTunnel := make(Tunnel, len(item.tunnel)+1)
			copy(newTunnel, item.tunnel)
			newTunnel[len(item.tunnel)] = link
			tunnels[link.Dst] = newTunnel

			seq++
			heap.Push(pq, &pathItem{node: link.Dst, tunnel: newTunnel, priority: -newBottleneck, seq: seq})
		}
	}

	return Tunnel{}
}

// FindMultiPath returns up to k distinct simple paths from src to dst,
// preferring high-bottleneck-capacity paths first, each differing from
// every other by at least one link.
// Complexity: bounded by maxExpansions frontier pops.
func (f *Finder) FindMultiPath(src, dst int64, k int) []Tunnel {
	if k <= 0 || src == dst {
		return nil
	}

	pq := &itemHeap{}
	heap.Init(pq)
	var seq int64
	start := map[int64]struct{}{src: {}}
	heap.Push(pq, &pathItem{node: src, tunnel: Tunnel{}, priority: -posInf, seq: seq, visited: start})

	var results []Tunnel
	seen := make(map[string]struct{})
	expansions := 0

	for pq.Len() > 0 && len(results) < k && expansions < maxExpansions {
		item := heap.Pop(pq).(*pathItem)
		expansions++

		if item.node == dst {
			key := tunnelKey(item.tunnel)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				results = append(results, item.tunnel)
			}
			continue
		}

		bottleneck := -item.priority
		for _, link := range f.g.Neighbors(item.node) {
			if _, was := item.visited[link.Dst]; was {
				continue
			}
			newVisited := make(map[int64]struct{}, len(item.visited)+1)
			for n := range item.visited {
				newVisited[n] = struct{}{}
			}
			newVisited[link.Dst] = struct{}{}

			newTunnel := make(Tunnel, len(item.tunnel)+1)
			copy(newTunnel, item.tunnel)
			newTunnel[len(item.tunnel)] = link

			seq++
			heap.Push(pq, &pathItem{
				node: link.Dst,
				tunnel: newTunnel,
				priority: -minF(bottleneck, link.Capacity),
				seq: seq,
				visited: newVisited,
			})
		}
	}

	return results
}

// FindAllPaths enumerates up to maxPaths simple paths from src to dst via
// bounded breadth-first search with a per-branch visited set, used by AllocateDemandBandwidth.
func (f *Finder) FindAllPaths(src, dst int64, maxPaths int) []Tunnel {
	if maxPaths <= 0 || src == dst {
		return nil
	}

	type frame struct {
		node int64
		tunnel Tunnel
		visited map[int64]struct{}
	}

	queue := []frame{{node: src, tunnel: Tunnel{}, visited: map[int64]struct{}{src: {}}}}
	var results []Tunnel
	expansions := 0

	for len(queue) > 0 && len(results) < maxPaths && expansions < maxExpansions {
		cur := queue[0]
		queue = queue[1:]
		expansions++

		if cur.node == dst && len(cur.tunnel) > 0 {
			results = append(results, cur.tunnel)
			continue
		}

		for _, link := range f.g.Neighbors(cur.node) {
			if _, was := cur.visited[link.Dst]; was {
				continue
			}
			newVisited := make(map[int64]struct{}, len(cur.visited)+1)
			for n := range cur.visited {
				newVisited[n] = struct{}{}
			}
			newVisited[link.Dst] = struct{}{}

			newTunnel := make(Tunnel, len(cur.tunnel)+1)
			copy(newTunnel, cur.tunnel)
			newTunnel[len(cur.tunnel)] = link

			queue = append(queue, frame{node: link.Dst, tunnel: newTunnel, visited: newVisited})
		}
	}

	return results
}

func tunnelKey(t Tunnel) string {
	key := make([]byte, 0, len(t)*9)
	for _, l := range t {
		key = append(key, byte(l.ID), byte(l.ID>>8), byte(l.ID>>16), byte(l.ID>>24),
			byte(l.ID>>32), byte(l.ID>>40), byte(l.ID>>48), byte(l.ID>>56), ',')
	}
	return string(key)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

const posInf = 1e308

// itemHeap is a min-heap of *pathItem ordered by (priority asc, seq asc),
// i.e. highest bottleneck capacity first, ties broken by expansion order —
// a container/heap priority queue generalised to carry a tunnel and a
// tie-break sequence instead of a bare distance.
type itemHeap []*pathItem

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) {
	*h = append(*h, x.(*pathItem))
}
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

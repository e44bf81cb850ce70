package pathfinder

import "github.com/katalvlaran/pulsenet/topology"

// Tunnel is an ordered list of links forming a simple path from a
// workload's source to its destination.
type Tunnel []*topology.Link

// Demand is a bandwidth request between two nodes, the minimal shape
// AllocateDemandBandwidth needs (decoupled from schedule.Workload so this
// package has no dependency on the job/schedule model).
type Demand struct {
	Src int64
	Dst int64
	Bandwidth float64
}

// PathAllocation pairs one enumerated path with the bandwidth greedily
// assigned to it by AllocateDemandBandwidth.
type PathAllocation struct {
	Path Tunnel
	Bandwidth float64
}

// pathItem is one entry in the best-first search frontier: the node
// reached, the tunnel travelled to reach it, the accumulated priority key,
// and a monotonically increasing sequence number that breaks ties in
// expansion order (lowest sequence wins, i.e. first-discovered-first-
// expanded), matching "tie-broken by expansion order".
type pathItem struct {
	node int64
	tunnel Tunnel
	priority float64 // lower is better: the negated bottleneck capacity
	seq int64
	visited map[int64]struct{}
}

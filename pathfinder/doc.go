// Package pathfinder searches a topology.Graph for simple paths between a
// source and destination node, and greedily spreads a bandwidth demand
// across several enumerated paths.
//
// Three search modes:
//
// - FindPath: a single best-first path, preferring high-capacity links,
// tie-broken by expansion order — a container/heap runner re-keyed from
// shortest-delay to highest-capacity.
// - FindMultiPath: up to k distinct paths from the same best-first search,
// continuing past the first arrival at the destination.
// - FindAllPaths: bounded breadth-first enumeration of up to max_paths
// simple paths, used by AllocateDemandBandwidth.
//
// No exceptions cross this package's boundary: an empty path/slice result
// means "no route with sufficient capacity".
package pathfinder

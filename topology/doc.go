// Package topology defines the directed, capacitated Graph that every other
// component schedules traffic onto: integer node ids, dense integer link
// ids assigned in insertion order, and an immutable per-link capacity.
//
// Adjacency is kept in the Graph's own per-source slices of outgoing links,
// in insertion order. A gonum.org/v1/gonum/graph/simple.WeightedDirectedGraph
// mirrors node membership and one edge per (src, dst) pair for O(1)
// existence checks; the public API never leaks gonum types so callers only
// ever see Node, Link and Graph.
package topology

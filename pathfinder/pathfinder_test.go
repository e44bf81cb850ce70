package pathfinder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pulsenet/pathfinder"
	"github.com/katalvlaran/pulsenet/topology"
)

func line(t *testing.T) *topology.Graph {
	t.Helper()
	g := topology.NewGraph()
	g.AddEdge(1, 2, 100)
	g.AddEdge(2, 3, 100)
	return g
}

func TestFindPath_SimpleChain(t *testing.T) {
	g := line(t)
	f := pathfinder.New(g)

	path := f.FindPath(1, 3)
	require.Len(t, path, 2)
	assert.Equal(t, int64(2), path[0].Dst)
	assert.Equal(t, int64(3), path[1].Dst)
}

func TestFindPath_NoRoute(t *testing.T) {
	g := topology.NewGraph()
	g.AddEdge(1, 2, 100)
	g.AddNode(3) // disconnected

	f := pathfinder.New(g)
	path := f.FindPath(1, 3)
	assert.Empty(t, path)
}

func TestFindPath_PrefersHigherBottleneckCapacity(t *testing.T) {
	g := topology.NewGraph()
	// Path A: 1->2->4 with bottleneck 10
	g.AddEdge(1, 2, 10)
	g.AddEdge(2, 4, 100)
	// Path B: 1->3->4 with bottleneck 50
	g.AddEdge(1, 3, 50)
	g.AddEdge(3, 4, 50)

	f := pathfinder.New(g)
	path := f.FindPath(1, 4)
	require.Len(t, path, 2)
	assert.Equal(t, int64(3), path[0].Dst)
	assert.Equal(t, int64(4), path[1].Dst)
}

func TestFindMultiPath_DistinctPaths(t *testing.T) {
	g := topology.NewGraph()
	g.AddEdge(1, 2, 10)
	g.AddEdge(2, 4, 10)
	g.AddEdge(1, 3, 20)
	g.AddEdge(3, 4, 20)

	f := pathfinder.New(g)
	paths := f.FindMultiPath(1, 4, 2)
	require.Len(t, paths, 2)
	assert.NotEqual(t, paths[0][0].ID, paths[1][0].ID)
}

func TestFindAllPaths_Bounded(t *testing.T) {
	g := topology.NewGraph()
	g.AddEdge(1, 2, 10)
	g.AddEdge(2, 3, 10)
	g.AddEdge(1, 3, 20)

	f := pathfinder.New(g)
	paths := f.FindAllPaths(1, 3, 5)
	assert.Len(t, paths, 2)
}

func TestAllocateDemandBandwidth_SplitsAcrossPaths(t *testing.T) {
	g := topology.NewGraph()
	g.AddEdge(1, 2, 10)
	g.AddEdge(2, 3, 10)
	g.AddEdge(1, 3, 5)

	f := pathfinder.New(g)
	allocs := f.AllocateDemandBandwidth(pathfinder.Demand{Src: 1, Dst: 3, Bandwidth: 12}, 5)
	require.NotNil(t, allocs)

	var total float64
	for _, a := range allocs {
		total += a.Bandwidth
	}
	assert.InDelta(t, 12, total, 1e-9)
}

func TestAllocateDemandBandwidth_RollsBackOnFailure(t *testing.T) {
	g := topology.NewGraph()
	g.AddEdge(1, 2, 5)

	f := pathfinder.New(g)
	allocs := f.AllocateDemandBandwidth(pathfinder.Demand{Src: 1, Dst: 2, Bandwidth: 100}, 5)
	assert.Nil(t, allocs)

	// Nothing should be reserved — a subsequent demand still sees full capacity.
	allocs2 := f.AllocateDemandBandwidth(pathfinder.Demand{Src: 1, Dst: 2, Bandwidth: 5}, 5)
	require.Len(t, allocs2, 1)
	assert.InDelta(t, 5, allocs2[0].Bandwidth, 1e-9)
}

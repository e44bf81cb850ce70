package topology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pulsenet/topology"
)

func TestGraph_AddEdge_DenseLinkIDs(t *testing.T) {
	g := topology.NewGraph()

	l0 := g.AddEdge(1, 2, 100)
	l1 := g.AddEdge(2, 3, 50)

	assert.Equal(t, int64(0), l0.ID)
	assert.Equal(t, int64(1), l1.ID)
	assert.Equal(t, 2, g.LinkCount())
	assert.ElementsMatch(t, []int64{1, 2, 3}, g.NodeIDs())
}

func TestGraph_AddNode_Idempotent(t *testing.T) {
	g := topology.NewGraph()
	g.AddNode(5)
	g.AddNode(5)
	assert.Equal(t, []int64{5}, g.NodeIDs())
}

func TestGraph_HasNode(t *testing.T) {
	g := topology.NewGraph()
	g.AddEdge(1, 2, 100)

	assert.True(t, g.HasNode(1))
	assert.True(t, g.HasNode(2))
	assert.False(t, g.HasNode(3))
}

func TestGraph_Link_Lookup(t *testing.T) {
	g := topology.NewGraph()
	g.AddEdge(1, 2, 100)

	l, ok := g.Link(1, 2)
	require.True(t, ok)
	assert.Equal(t, float64(100), l.Capacity)

	_, ok = g.Link(2, 1)
	assert.False(t, ok)
}

func TestGraph_Neighbors_InsertionOrder(t *testing.T) {
	g := topology.NewGraph()
	g.AddEdge(1, 2, 10)
	g.AddEdge(1, 3, 20)
	g.AddEdge(1, 4, 30)

	neighbors := g.Neighbors(1)
	require.Len(t, neighbors, 3)
	assert.Equal(t, int64(2), neighbors[0].Dst)
	assert.Equal(t, int64(3), neighbors[1].Dst)
	assert.Equal(t, int64(4), neighbors[2].Dst)
}

func TestBuildGraph_RejectsNegativeCapacity(t *testing.T) {
	_, err := topology.BuildGraph([]topology.Record{{ANode: 1, ZNode: 2, Capacity: -1}})
	require.ErrorIs(t, err, topology.ErrInvalidInput)
}

func TestBuildGraph_DirectedPairExpressesUndirected(t *testing.T) {
	g, err := topology.BuildGraph([]topology.Record{
		{ANode: 1, ZNode: 2, Capacity: 100},
		{ANode: 2, ZNode: 1, Capacity: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, g.LinkCount())
	_, ok1 := g.Link(1, 2)
	_, ok2 := g.Link(2, 1)
	assert.True(t, ok1)
	assert.True(t, ok2)
}

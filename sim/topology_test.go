package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTopologyRespectsDegreeBoundsAndConnectivity(t *testing.T) {
	rng := NewRng(7)
	adj := BuildTopology(rng, 12, 2, 4)
	require.Len(t, adj, 12)
	require.True(t, isConnected(adj))

	for i, neighbors := range adj {
		require.GreaterOrEqual(t, len(neighbors), 2, "node %d below min degree", i)
		require.LessOrEqual(t, len(neighbors), 4, "node %d above max degree", i)
		for j := 1; j < len(neighbors); j++ {
			require.Less(t, neighbors[j-1], neighbors[j], "neighbors must be sorted ascending")
		}
	}
}

func TestBuildTopologyIsSymmetric(t *testing.T) {
	rng := NewRng(11)
	adj := BuildTopology(rng, 8, 2, 3)
	for i, neighbors := range adj {
		for _, nb := range neighbors {
			require.Contains(t, adj[nb], NodeID(i), "edge %d-%d must be mutual", i, nb)
		}
	}
}

func TestIsConnectedDetectsDisconnectedGraph(t *testing.T) {
	adj := [][]NodeID{
		{1}, {0}, {3}, {2},
	}
	require.False(t, isConnected(adj))
}

func TestSortNodeIDs(t *testing.T) {
	got := sortNodeIDs([]NodeID{5, 1, 3, 2, 4})
	require.Equal(t, []NodeID{1, 2, 3, 4, 5}, got)
}

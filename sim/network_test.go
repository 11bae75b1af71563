package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shivansh1010/P2P-Crypto-Simulator/config"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Simulation.TotalNodes = 6
	cfg.Simulation.ExecutionTime = 50
	cfg.Simulation.Seed = 99
	cfg.Node.MinNeighbors = 2
	cfg.Node.MaxNeighbors = 4
	return cfg
}

func TestNewSimulatorAssignsLastTwoNodesAsAdversaries(t *testing.T) {
	s := NewSimulator(testConfig())
	for i := 0; i < 4; i++ {
		require.False(t, s.Node(NodeID(i)).Adversary)
	}
	require.True(t, s.Node(4).Adversary)
	require.True(t, s.Node(5).Adversary)
	require.False(t, s.Node(4).IsSlow, "adversaries must be fast, spec.md §4.8 step 2")
	require.False(t, s.Node(4).IsLowCPU)
}

func TestAssignHashingPowerGivesHighCPUTenTimesLowCPU(t *testing.T) {
	cfg := testConfig()
	cfg.Node.AdversaryOneMiningPower = 10
	cfg.Node.AdversaryTwoMiningPower = 10
	s := NewSimulator(cfg)

	var low, high float64
	var haveLow, haveHigh bool
	for i := 0; i < 4; i++ {
		n := s.Node(NodeID(i))
		if n.IsLowCPU {
			low, haveLow = n.HashingPower, true
		} else {
			high, haveHigh = n.HashingPower, true
		}
	}
	if haveLow && haveHigh {
		require.InDelta(t, high, 10*low, 1e-9)
	}
	require.InDelta(t, 0.10, s.Node(4).HashingPower, 1e-9)
	require.InDelta(t, 0.10, s.Node(5).HashingPower, 1e-9)
}

func TestRunStopsAtExecutionTimeHorizon(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.ExecutionTime = 20
	s := NewSimulator(cfg)
	s.Run()

	require.LessOrEqual(t, s.Now(), cfg.Simulation.ExecutionTime)
	require.Greater(t, s.Metrics().EventsDispatched.Count(), int64(0))
}

func TestSameSeedProducesIdenticalRunMetrics(t *testing.T) {
	cfg := testConfig()
	a := NewSimulator(cfg)
	a.Run()
	b := NewSimulator(cfg)
	b.Run()

	require.Equal(t, a.Metrics().EventsDispatched.Count(), b.Metrics().EventsDispatched.Count())
	require.Equal(t, a.Metrics().BlocksMined.Count(), b.Metrics().BlocksMined.Count())
	require.Equal(t, a.Now(), b.Now())
}

func TestAllBalancesRemainNonNegativeAfterARun(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.ExecutionTime = 100
	s := NewSimulator(cfg)
	s.Run()

	for _, n := range s.Nodes() {
		balances := n.GetBalances(cfg.Simulation.TotalNodes, cfg.Mining.GenesisBalance, n.Tip)
		for id, bal := range balances {
			require.GreaterOrEqual(t, bal, 0.0, "node %d's view of balance %d must not go negative", n.ID, id)
		}
	}
}

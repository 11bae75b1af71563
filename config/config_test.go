package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTOML = `
[simulation]
total_nodes = 5
execution_time = 200
percent_slow_nodes = 0
percent_low_cpu_nodes = 0
output_dir = "./out"
debug = false

[node]
min_neighbors = 3
max_neighbors = 4
adversary_one_mining_power = 0
adversary_two_mining_power = 0

[transaction]
size = 8
mean_interarrival_time_sec = 5

[network]
min_light_prop_delay = 0.01
max_light_prop_delay = 0.5
slow_node_link_speed = 100
fast_node_link_speed = 1000
queuing_delay_constant = 96

[mining]
mean_mining_time_sec = 10
mining_reward = 50
max_txn_in_block = 5
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))
	return path
}

func TestLoadDecodesAllGroups(t *testing.T) {
	path := writeSample(t)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 5, cfg.Simulation.TotalNodes)
	require.Equal(t, 200.0, cfg.Simulation.ExecutionTime)
	require.Equal(t, 3, cfg.Node.MinNeighbors)
	require.Equal(t, 4, cfg.Node.MaxNeighbors)
	require.Equal(t, 8, cfg.Transaction.Size)
	require.Equal(t, 96.0, cfg.Network.QueuingDelayConstant)
	require.Equal(t, 5, cfg.Mining.MaxTxnInBlock)
	// Fields absent from the TOML file retain their Default() value.
	require.Equal(t, 1000.0, cfg.Mining.GenesisBalance)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}

func TestValidateRejectsTooFewNodes(t *testing.T) {
	cfg := Default()
	cfg.Simulation.TotalNodes = 2
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsBadNeighborBounds(t *testing.T) {
	cfg := Default()
	cfg.Node.MinNeighbors = 5
	cfg.Node.MaxNeighbors = 3
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsOversizedAdversaryPower(t *testing.T) {
	cfg := Default()
	cfg.Node.AdversaryOneMiningPower = 60
	cfg.Node.AdversaryTwoMiningPower = 60
	require.Error(t, Validate(cfg))
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shivansh1010/P2P-Crypto-Simulator/sim/simmetrics"
)

// newTestSimulator builds a minimal 3-node fully-connected honest network
// with deterministic params, for exercising node.go's handlers directly
// without going through NewSimulator/config.
func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	rng := NewRng(42)
	s := &Simulator{
		params: Params{
			TotalNodes:              3,
			ExecutionTime:           1000,
			MinNeighbors:            2,
			MaxNeighbors:            2,
			TransactionSize:         8,
			MeanInterarrivalTimeSec: 5,
			MeanMiningTimeSec:       10,
			MiningReward:            50,
			MaxTxnInBlock:           10,
			GenesisBalance:          1000,
		},
		rng:   rng,
		queue: NewEventQueue(),
		delay: NewDelayModel(rng, 0.01, 0.01, 100, 1000, 96),
	}
	s.metrics = simmetrics.New()

	genesis := NewGenesisBlock()
	s.nodes = make([]*Node, 3)
	for i := 0; i < 3; i++ {
		n := NewNode(NodeID(i), false, false, false, genesis)
		n.HashingPower = 1
		s.nodes[i] = n
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				s.nodes[i].Neighbors = append(s.nodes[i].Neighbors, NodeID(j))
			}
		}
	}
	return s
}

func TestHandleTxnCreateBroadcastsToAllNeighbors(t *testing.T) {
	s := newTestSimulator(t)
	n0 := s.Node(0)
	n0.HandleTxnCreate(s, 0)

	// one broadcast per neighbor, plus the next self-scheduled txn_create
	require.Equal(t, 3, s.queue.Len())
	require.Equal(t, 1, n0.TxnPool.Len())
}

func TestHandleTxnRecvDropsDuplicates(t *testing.T) {
	s := newTestSimulator(t)
	n1 := s.Node(1)
	txn := NewTransaction(0, 0, 2, 5)

	n1.HandleTxnRecv(s, 0, txn, 0)
	require.Equal(t, 1, n1.TxnPool.Len())
	queuedAfterFirst := s.queue.Len()

	n1.HandleTxnRecv(s, 0, txn, 0)
	require.Equal(t, 1, n1.TxnPool.Len(), "duplicate receipt must not re-add to the pool")
	require.Equal(t, queuedAfterFirst, s.queue.Len(), "duplicate receipt must not re-broadcast")
}

func TestBlockMineHonestDiscardsStaleBlock(t *testing.T) {
	s := newTestSimulator(t)
	n0 := s.Node(0)

	stale := NewBlock(n0.Tip, 1, 0, []Transaction{NewCoinbase(0, 0, 50)})
	n0.BlockHashBeingMined = "some-other-hash"
	n0.HandleBlockMine(s, 1, stale)

	require.Equal(t, int64(1), s.metrics.BlocksStaleDiscarded.Count())
	require.NotEqual(t, stale.Hash, n0.Tip, "a stale-mined block must not become the tip")
}

func TestBlockMineHonestAcceptsFreshBlockAndAdvancesTip(t *testing.T) {
	s := newTestSimulator(t)
	n0 := s.Node(0)

	block := n0.assembleBlock(s, 1, n0.Tip)
	n0.BlockHashBeingMined = block.Hash
	n0.HandleBlockMine(s, 1, block)

	require.Equal(t, block.Hash, n0.Tip)
	require.Equal(t, int64(1), s.metrics.BlocksMined.Count())
	// broadcast to both neighbors, plus the next block_create's implicit
	// scheduleBlockMine event for the new tip
	require.Equal(t, 3, s.queue.Len())
}

func TestBlockRecvHonestBuffersOrphanThenAdoptsOnParentArrival(t *testing.T) {
	s := newTestSimulator(t)
	n0 := s.Node(0)

	parent := n0.assembleBlock(s, 1, n0.Tip)
	child := NewBlock(parent.Hash, parent.Height+1, 2, []Transaction{NewCoinbase(2, 0, 50)})

	n0.HandleBlockRecv(s, 2, child, 1)
	require.Equal(t, 1, n0.PendingBlocks.Len(), "a block whose parent is unknown must be buffered")
	require.NotEqual(t, child.Hash, n0.Tip)

	n0.HandleBlockRecv(s, 3, parent, 1)
	require.Equal(t, 0, n0.PendingBlocks.Len(), "arrival of the missing parent must drain the pending set")
	require.Equal(t, child.Hash, n0.Tip, "the buffered child must be adopted once its parent lands")
}

func TestBlockRecvHonestIgnoresLooplessSelfDelivery(t *testing.T) {
	s := newTestSimulator(t)
	n0 := s.Node(0)
	block := n0.assembleBlock(s, 1, n0.Tip)

	n0.HandleBlockRecv(s, 1, block, n0.ID)
	require.Equal(t, genesisParentHash, n0.BlockRegistry[n0.Tip].ParentHash, "a block arriving from self must be dropped")
}

func TestReorgReturnsAbandonedBranchTxnsToPool(t *testing.T) {
	s := newTestSimulator(t)
	n0 := s.Node(0)
	genesisHash := n0.Tip

	txn := NewTransaction(0, 1, 2, 1)
	n0.TxnPool.Add(txn)
	abandoned := n0.assembleBlock(s, 1, genesisHash)
	n0.BlockRegistry[abandoned.Hash] = abandoned
	n0.TxnPool.Remove(txn.ID)
	n0.Tip = abandoned.Hash

	rival := NewBlock(genesisHash, 1, 1, []Transaction{NewCoinbase(1, 2, 50)})
	n0.BlockRegistry[rival.Hash] = rival
	longer := NewBlock(rival.Hash, 2, 2, []Transaction{NewCoinbase(2, 2, 50)})

	n0.HandleBlockRecv(s, 2, longer, 1)

	require.Equal(t, longer.Hash, n0.Tip)
	require.True(t, n0.TxnPool.Has(txn.ID), "the abandoned branch's non-coinbase txn must return to the pool")
}

func TestGetBalancesStartsFromGenesisBalanceAndAppliesCoinbaseAndSpends(t *testing.T) {
	s := newTestSimulator(t)
	n0 := s.Node(0)
	genesisHash := n0.Tip

	pay := NewTransaction(1, 0, 1, 40)
	block := NewBlock(genesisHash, 1, 1, []Transaction{NewCoinbase(1, 2, 50), pay})
	n0.BlockRegistry[block.Hash] = block

	balances := n0.GetBalances(3, 1000, block.Hash)
	require.Equal(t, 960.0, balances[0])
	require.Equal(t, 1040.0, balances[1])
	require.Equal(t, 1050.0, balances[2])
}

func TestIsBlockValidRejectsOverspendAndBadHeight(t *testing.T) {
	s := newTestSimulator(t)
	n0 := s.Node(0)
	genesisHash := n0.Tip

	overspend := NewBlock(genesisHash, 1, 1, []Transaction{
		NewCoinbase(1, 0, 50),
		NewTransaction(1, 1, 2, 1_000_000),
	})
	require.False(t, isBlockValid(n0, s, overspend))

	badHeight := NewBlock(genesisHash, 5, 1, []Transaction{NewCoinbase(1, 0, 50)})
	require.False(t, isBlockValid(n0, s, badHeight))

	valid := NewBlock(genesisHash, 1, 1, []Transaction{NewCoinbase(1, 0, 50)})
	require.True(t, isBlockValid(n0, s, valid))
}

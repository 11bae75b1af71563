package sim

import (
	"github.com/shivansh1010/P2P-Crypto-Simulator/log"
)

var nodeLog = log.New("pkg", "sim")

// Node is the per-node state machine of spec.md §3. A single struct
// represents both honest and selfish-mining variants (spec.md §9's
// design note: "represent the node as a sum type... or a capability
// with two implementations"); the Adversary flag and the
// adversary-only fields below select which behaviour a handler call
// dispatches to. Neighbors and pool contents use order-preserving
// collections so that a fixed seed reproduces an identical run
// (spec.md §5) — a plain Go map's randomized iteration would not.
type Node struct {
	ID           NodeID
	IsSlow       bool
	IsLowCPU     bool
	Adversary    bool
	HashingPower float64

	Neighbors []NodeID

	BlockRegistry map[string]Block
	// Tip is longest_leaf_hash for an honest node and l_v_c_hash for an
	// adversary (spec.md §3); both play the identical "tip I mine on /
	// consider public" role so one field suffices.
	Tip string

	TxnPool     *txnPool
	TxnRegistry map[string]struct{}
	PendingBlocks *pendingSet

	BlockHashBeingMined string

	// Adversary-only state, spec.md §3.
	PrivateChain                []string
	LastAdversaryBlockMinedHash string
	HasLastAdversaryBlockMinedHash bool
}

// NewNode constructs a node seeded with the shared genesis block.
func NewNode(id NodeID, isSlow, isLowCPU, adversary bool, genesis Block) *Node {
	n := &Node{
		ID:            id,
		IsSlow:        isSlow,
		IsLowCPU:      isLowCPU,
		Adversary:     adversary,
		BlockRegistry: map[string]Block{genesis.Hash: genesis},
		Tip:           genesis.Hash,
		TxnPool:       newTxnPool(),
		TxnRegistry:   make(map[string]struct{}),
		PendingBlocks: newPendingSet(),
	}
	return n
}

func (n *Node) hasNeighbor(id NodeID) bool {
	for _, nb := range n.Neighbors {
		if nb == id {
			return true
		}
	}
	return false
}

// heightOf returns the height of the block named by hash in the node's
// own registry, or -1 if unknown.
func (n *Node) heightOf(hash string) int {
	if b, ok := n.BlockRegistry[hash]; ok {
		return b.Height
	}
	return -1
}

// GetBalances computes, by chain traversal from tipHash back to genesis
// (without pool adjustments), a node-id -> balance map: every node starts
// with the configured genesis balance, then every transaction on the
// branch debits its sender and credits its receiver, and every coinbase
// credits its miner (spec.md §4.3 "get_balances").
func (n *Node) GetBalances(totalNodes int, genesisBalance float64, tipHash string) map[NodeID]float64 {
	balances := make(map[NodeID]float64, totalNodes)
	for i := 0; i < totalNodes; i++ {
		balances[NodeID(i)] = genesisBalance
	}

	hash := tipHash
	for {
		b, ok := n.BlockRegistry[hash]
		if !ok {
			break
		}
		if cb, ok := b.Coinbase(); ok {
			balances[cb.Receiver] += cb.Amount
		}
		for _, t := range b.NonCoinbaseTxns() {
			balances[t.Sender] -= t.Amount
			balances[t.Receiver] += t.Amount
		}
		if b.Height == 0 {
			break
		}
		hash = b.ParentHash
	}
	return balances
}

// GetAmount is the balance visible to the transaction generator: the
// chain balance at Tip, adjusted by this node's own pending pool
// transactions, clamped at 0 (spec.md §4.3).
func (n *Node) GetAmount(totalNodes int, genesisBalance float64) float64 {
	balances := n.GetBalances(totalNodes, genesisBalance, n.Tip)
	amt := balances[n.ID]
	for _, t := range n.TxnPool.Values() {
		if !t.IsCoinbase() && t.Sender == n.ID {
			amt -= t.Amount
		}
		if t.Receiver == n.ID {
			amt += t.Amount
		}
	}
	if amt < 0 {
		amt = 0
	}
	return amt
}

// isBlockValid implements spec.md §4.7: parent already present is a
// precondition checked by the caller (pending-block buffering happens
// before validation is ever attempted).
func isBlockValid(n *Node, s *Simulator, block Block) bool {
	parent, ok := n.BlockRegistry[block.ParentHash]
	if !ok {
		return false
	}
	if parent.Height+1 != block.Height {
		return false
	}
	if block.computeHash() != block.Hash {
		return false
	}
	if len(block.Txns) < 1 || len(block.Txns) > s.params.MaxTxnInBlock {
		return false
	}
	cb, ok := block.Coinbase()
	if !ok || cb.Amount > s.params.MiningReward {
		return false
	}

	balances := n.GetBalances(s.params.TotalNodes, s.params.GenesisBalance, block.ParentHash)
	for _, t := range block.NonCoinbaseTxns() {
		if round4(balances[t.Sender]) < round4(t.Amount) {
			return false
		}
		balances[t.Sender] -= t.Amount
		balances[t.Receiver] += t.Amount
	}
	return true
}

// broadcastTxn sends txn to every neighbor except the one named by
// exceptID (when hasExcept is true), scheduling each delivery at
// txn.Timestamp + delay(...), per spec.md §4.3's txn_recv formula (used
// for both the originating broadcast and every re-broadcast hop).
func (n *Node) broadcastTxn(s *Simulator, txn Transaction, exceptID NodeID, hasExcept bool) {
	for _, nb := range n.Neighbors {
		if hasExcept && nb == exceptID {
			continue
		}
		d := s.DelayBetween(n.ID, nb, float64(s.params.TransactionSize))
		t := txn
		s.Enqueue(Event{
			Time:     txn.Timestamp + d,
			Sender:   n.ID,
			Receiver: nb,
			Kind:     EventTxnRecv,
			Txn:      &t,
		})
	}
}

// broadcastBlock sends block to every neighbor except exceptID (if
// hasExcept), scheduling each delivery at now + delay(len(txns)*size),
// per spec.md §4.5 step 9 / §4.4's "broadcast".
func (n *Node) broadcastBlock(s *Simulator, now float64, block Block, exceptID NodeID, hasExcept bool) {
	size := float64(len(block.Txns) * s.params.TransactionSize)
	for _, nb := range n.Neighbors {
		if hasExcept && nb == exceptID {
			continue
		}
		d := s.DelayBetween(n.ID, nb, size)
		cp := block.Clone()
		s.Enqueue(Event{
			Time:     now + d,
			Sender:   n.ID,
			Receiver: nb,
			Kind:     EventBlkRecv,
			Block:    &cp,
		})
	}
}

// ScheduleNextTxnCreate enqueues the node's next self-addressed
// txn_create event (spec.md §4.3).
func (n *Node) ScheduleNextTxnCreate(s *Simulator, now float64) {
	t := now + s.rng.Exp(s.params.MeanInterarrivalTimeSec)
	s.Enqueue(Event{Time: t, Sender: n.ID, Receiver: n.ID, Kind: EventTxnCreate})
}

// HandleTxnCreate implements spec.md §4.3's txn_create handler.
func (n *Node) HandleTxnCreate(s *Simulator, now float64) {
	if len(n.Neighbors) == 0 {
		n.ScheduleNextTxnCreate(s, now)
		return
	}
	receiver := n.Neighbors[s.rng.Intn(len(n.Neighbors))]
	for receiver == n.ID && len(n.Neighbors) > 1 {
		receiver = n.Neighbors[s.rng.Intn(len(n.Neighbors))]
	}

	selfBalance := n.GetAmount(s.params.TotalNodes, s.params.GenesisBalance)
	if selfBalance < 0 {
		selfBalance = 0
	}
	amount := round4(s.rng.Uniform(0, selfBalance))

	txn := NewTransaction(now, n.ID, receiver, amount)
	n.TxnPool.Add(txn)
	n.TxnRegistry[txn.ID] = struct{}{}

	n.broadcastTxn(s, txn, 0, false)
	n.ScheduleNextTxnCreate(s, now)
}

// HandleTxnRecv implements spec.md §4.3's txn_recv handler.
func (n *Node) HandleTxnRecv(s *Simulator, now float64, txn Transaction, from NodeID) {
	if _, dup := n.TxnRegistry[txn.ID]; dup || n.TxnPool.Has(txn.ID) {
		return
	}
	n.TxnRegistry[txn.ID] = struct{}{}
	n.TxnPool.Add(txn)
	n.broadcastTxn(s, txn, from, true)
}

// BlockCreate dispatches to the honest or adversary block-assembly
// strategy (spec.md §4.4 / §4.6).
func (n *Node) BlockCreate(s *Simulator, now float64) {
	if n.Adversary {
		n.blockCreateAdversary(s, now)
		return
	}
	n.blockCreateHonest(s, now)
}

// assembleBlock implements the shared assembly algorithm of spec.md
// §4.4 steps 2-5: build the coinbase, greedily include pool
// transactions the running balance can afford, and construct the
// block on top of parentHash.
func (n *Node) assembleBlock(s *Simulator, now float64, parentHash string) Block {
	coinbase := NewCoinbase(now, n.ID, s.params.MiningReward)
	included := []Transaction{coinbase}

	balances := n.GetBalances(s.params.TotalNodes, s.params.GenesisBalance, parentHash)
	for _, t := range n.TxnPool.Values() {
		if len(included) >= s.params.MaxTxnInBlock {
			break
		}
		if round4(balances[t.Sender]) >= round4(t.Amount) {
			included = append(included, t)
			balances[t.Sender] -= t.Amount
			balances[t.Receiver] += t.Amount
		}
	}

	parentHeight := n.heightOf(parentHash)
	return NewBlock(parentHash, parentHeight+1, now, included)
}

func (n *Node) scheduleBlockMine(s *Simulator, now float64, block Block) {
	t := now + s.rng.Exp(s.params.MeanMiningTimeSec/n.HashingPower)
	n.BlockHashBeingMined = block.Hash
	s.Enqueue(Event{Time: t, Sender: n.ID, Receiver: n.ID, Kind: EventBlkMine, Block: &block})
}

func (n *Node) blockCreateHonest(s *Simulator, now float64) {
	if n.HashingPower <= 0 {
		return
	}
	block := n.assembleBlock(s, now, n.Tip)
	n.scheduleBlockMine(s, now, block)
}

// HandleBlockMine dispatches to the honest or adversary mined-block
// handler (spec.md §4.4 / §4.6).
func (n *Node) HandleBlockMine(s *Simulator, now float64, block Block) {
	if n.Adversary {
		n.blockMineAdversary(s, now, block)
		return
	}
	n.blockMineHonest(s, now, block)
}

func (n *Node) blockMineHonest(s *Simulator, now float64, block Block) {
	if block.Hash != n.BlockHashBeingMined || block.Height <= n.heightOf(n.Tip) {
		s.metrics.BlocksStaleDiscarded.Inc(1)
		return
	}
	block.MineTime = now
	n.BlockRegistry[block.Hash] = block
	n.Tip = block.Hash
	for _, t := range block.NonCoinbaseTxns() {
		n.TxnPool.Remove(t.ID)
	}
	s.metrics.BlocksMined.Inc(1)

	n.broadcastBlock(s, now, block, 0, false)
	n.BlockCreate(s, now)
}

// HandleBlockRecv dispatches to the honest or adversary block-reception
// handler (spec.md §4.5 / §4.6).
func (n *Node) HandleBlockRecv(s *Simulator, now float64, block Block, from NodeID) {
	if n.Adversary {
		n.blockRecvAdversary(s, now, block, from)
		return
	}
	n.blockRecvHonest(s, now, block, from, false)
}

// blockRecvHonest implements spec.md §4.5. fromSelf is true only when
// re-delivering a previously pending block to itself (step 7); in that
// case the loopless-forwarding check of step 1 does not apply, since it
// exists to stop echoing a block back to the peer it arrived from, not
// to block a node from finishing its own deferred work.
func (n *Node) blockRecvHonest(s *Simulator, now float64, block Block, from NodeID, fromSelf bool) {
	if !fromSelf && from == n.ID {
		return
	}
	if _, dup := n.BlockRegistry[block.Hash]; dup {
		return
	}
	if _, ok := n.BlockRegistry[block.ParentHash]; !ok {
		n.PendingBlocks.Add(block)
		return
	}
	if !isBlockValid(n, s, block) {
		nodeLog.Warn("dropping invalid block", "node", n.ID, "hash", block.Hash[:7])
		return
	}

	n.BlockRegistry[block.Hash] = block
	for _, t := range block.NonCoinbaseTxns() {
		n.TxnPool.Remove(t.ID)
	}

	oldTipHeight := n.heightOf(n.Tip)
	if block.Height > oldTipHeight {
		if block.ParentHash != n.Tip {
			n.reorg(s, n.Tip, block.ParentHash)
			s.metrics.Reorgs.Inc(1)
		}
		n.Tip = block.Hash
	}

	for _, pending := range n.PendingBlocks.ChildrenOf(block.Hash) {
		n.PendingBlocks.Remove(pending.Hash)
		n.blockRecvHonest(s, now, pending, n.ID, true)
	}

	n.BlockHashBeingMined = ""
	n.BlockCreate(s, now)

	n.broadcastBlock(s, now, block, from, true)
}

// reorg walks oldTip and newParent backwards in lock-step until their
// ancestors coincide, re-inserting the abandoned branch's non-coinbase
// transactions into the pool and removing the adopted branch's, per
// spec.md §4.5 step 6.
func (n *Node) reorg(s *Simulator, oldTip, newParent string) {
	oldBranch, newBranch := oldTip, newParent
	for oldBranch != newBranch {
		oldBlock, oldOK := n.BlockRegistry[oldBranch]
		newBlock, newOK := n.BlockRegistry[newBranch]
		if !oldOK || !newOK {
			break
		}
		for _, t := range oldBlock.NonCoinbaseTxns() {
			n.TxnPool.Add(t)
		}
		for _, t := range newBlock.NonCoinbaseTxns() {
			n.TxnPool.Remove(t.ID)
		}
		if oldBlock.Height == 0 || newBlock.Height == 0 {
			break
		}
		oldBranch = oldBlock.ParentHash
		newBranch = newBlock.ParentHash
	}
}

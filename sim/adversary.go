package sim

// This file implements the selfish-mining adversary variant of
// spec.md §4.6: it withholds privately mined blocks and releases them
// strategically as a function of its lead over the public chain. It is
// the Adversary-dispatch half of the sum type described in node.go; the
// gossip, balance, and validation helpers it calls are shared with the
// honest node.

// blockCreateAdversary implements spec.md §4.6's block_create: the
// adversary mines on top of its last privately mined block if it is
// holding one, else on top of the public tip (Tip / l_v_c_hash).
func (n *Node) blockCreateAdversary(s *Simulator, now float64) {
	if n.HashingPower <= 0 {
		return
	}
	parentHash := n.Tip
	if n.HasLastAdversaryBlockMinedHash {
		parentHash = n.LastAdversaryBlockMinedHash
	}
	block := n.assembleBlock(s, now, parentHash)
	n.scheduleBlockMine(s, now, block)
}

// blockMineAdversary implements spec.md §4.6's blk_mine handler.
func (n *Node) blockMineAdversary(s *Simulator, now float64, block Block) {
	if block.Hash != n.BlockHashBeingMined {
		s.metrics.BlocksStaleDiscarded.Inc(1)
		return
	}
	block.MineTime = now
	n.BlockRegistry[block.Hash] = block
	s.metrics.BlocksMined.Inc(1)

	newLead := block.Height - n.heightOf(n.Tip)
	wasHolding := n.HasLastAdversaryBlockMinedHash

	if newLead == 1 && wasHolding {
		released := block
		released.ReleaseTime = now
		released.HasReleaseTime = true
		n.BlockRegistry[block.Hash] = released
		n.broadcastBlock(s, now, released, 0, false)
		n.Tip = released.Hash
	} else {
		n.PrivateChain = append(n.PrivateChain, block.Hash)
	}
	n.LastAdversaryBlockMinedHash = block.Hash
	n.HasLastAdversaryBlockMinedHash = true

	n.BlockCreate(s, now)
}

// blockRecvAdversary implements spec.md §4.6's blk_recv handler: the
// same validation/registration/pool-update/re-org logic as the honest
// node (tracking Tip as l_v_c_hash), followed by the lead-dependent
// publish policy.
func (n *Node) blockRecvAdversary(s *Simulator, now float64, block Block, from NodeID) {
	n.blockRecvAdversaryInner(s, now, block, from, false)
}

func (n *Node) blockRecvAdversaryInner(s *Simulator, now float64, block Block, from NodeID, fromSelf bool) {
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
		nodeLog.Warn("adversary dropping invalid block", "node", n.ID, "hash", block.Hash[:7])
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
		n.blockRecvAdversaryInner(s, now, pending, n.ID, true)
	}

	var lead int
	if n.HasLastAdversaryBlockMinedHash {
		lead = n.heightOf(n.LastAdversaryBlockMinedHash) - n.heightOf(n.Tip)
	}

	switch {
	case lead <= 0:
		n.HasLastAdversaryBlockMinedHash = false
		n.PrivateChain = nil
	case lead == 1 || lead == 2:
		n.blockReleaseAll(s, now)
	default:
		n.blockReleaseOne(s, now)
	}

	n.BlockHashBeingMined = ""
	n.BlockCreate(s, now)
}

// blockReleaseOne publishes only the head of the private chain, per
// spec.md §4.6's block_release_one.
func (n *Node) blockReleaseOne(s *Simulator, now float64) {
	if len(n.PrivateChain) == 0 {
		return
	}
	hash := n.PrivateChain[0]
	n.PrivateChain = n.PrivateChain[1:]
	n.release(s, now, hash)
}

// blockReleaseAll publishes every queued private block in FIFO order,
// per spec.md §4.6's block_release_all.
func (n *Node) blockReleaseAll(s *Simulator, now float64) {
	for len(n.PrivateChain) > 0 {
		hash := n.PrivateChain[0]
		n.PrivateChain = n.PrivateChain[1:]
		n.release(s, now, hash)
	}
}

func (n *Node) release(s *Simulator, now float64, hash string) {
	block, ok := n.BlockRegistry[hash]
	if !ok {
		return
	}
	block.ReleaseTime = now
	block.HasReleaseTime = true
	n.BlockRegistry[hash] = block
	n.broadcastBlock(s, now, block, 0, false)
	n.Tip = block.Hash
}

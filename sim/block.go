package sim

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// genesisParentHash is the sentinel parent hash of the genesis block,
// spec.md §3.
const genesisParentHash = "GENESIS"

// Block is a height-stamped, parent-linked container of transactions,
// spec.md §3. Its content hash is a truncated SHA-256 digest of a
// canonical encoding of (height, parent hash, creation time, txns); the
// spec explicitly waives cryptographic security (§1 Non-goals) in favor
// of a cheap, deterministic identifier.
type Block struct {
	ParentHash string
	Height     int
	Timestamp  float64
	Txns       []Transaction
	Hash       string

	MineTime float64

	// HasReleaseTime/ReleaseTime are adversary-only (spec.md §3): set
	// when a withheld block is published to the public network.
	HasReleaseTime bool
	ReleaseTime    float64
}

// NewGenesisBlock builds the shared genesis block every node starts from.
func NewGenesisBlock() Block {
	b := Block{
		ParentHash: genesisParentHash,
		Height:     0,
		Timestamp:  0,
	}
	b.Hash = b.computeHash()
	return b
}

// NewBlock constructs a block on top of parent with the given coinbase and
// included transactions (coinbase must be txns[0], spec.md §3 invariant 4)
// and computes its content hash.
func NewBlock(parentHash string, height int, ts float64, txns []Transaction) Block {
	b := Block{
		ParentHash: parentHash,
		Height:     height,
		Timestamp:  ts,
		Txns:       txns,
	}
	b.Hash = b.computeHash()
	return b
}

// computeHash recomputes the block's content hash from its canonical
// string encoding, used both to stamp a freshly built block and, during
// validation, to check a received block wasn't tampered with
// (spec.md §4.7 step 2).
func (b Block) computeHash() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "h:%d|p:%s|t:%.9f|n:%d", b.Height, b.ParentHash, b.Timestamp, len(b.Txns))
	for _, t := range b.Txns {
		fmt.Fprintf(&sb, "|%s:%d:%d:%.4f", t.ID, t.Sender, t.Receiver, t.Amount)
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])[:32]
}

// Coinbase returns the block's first, mandatory coinbase transaction.
// Only the genesis block has no transactions at all.
func (b Block) Coinbase() (Transaction, bool) {
	if len(b.Txns) == 0 {
		return Transaction{}, false
	}
	return b.Txns[0], true
}

// NonCoinbaseTxns returns every included transaction after the coinbase.
func (b Block) NonCoinbaseTxns() []Transaction {
	if len(b.Txns) <= 1 {
		return nil
	}
	return b.Txns[1:]
}

// Clone returns an independent copy of b whose Txns slice and release-time
// flag can be mutated without affecting the original — every broadcast
// re-materializes a fresh copy, per spec.md §3's ownership rule that
// mutations (e.g. an adversary setting ReleaseTime) never leak across
// nodes.
func (b Block) Clone() Block {
	cp := b
	cp.Txns = append([]Transaction(nil), b.Txns...)
	return cp
}

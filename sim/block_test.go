package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenesisBlockHasHeightZeroAndSentinelParent(t *testing.T) {
	g := NewGenesisBlock()
	require.Equal(t, 0, g.Height)
	require.Equal(t, genesisParentHash, g.ParentHash)
	require.NotEmpty(t, g.Hash)
}

func TestBlockHashIsStableAndContentAddressed(t *testing.T) {
	cb := NewCoinbase(1, 0, 50)
	b1 := NewBlock("parent", 1, 1.0, []Transaction{cb})
	b2 := NewBlock("parent", 1, 1.0, []Transaction{cb})
	require.Equal(t, b1.Hash, b2.Hash, "identical content must hash identically")

	b3 := NewBlock("parent", 1, 1.000001, []Transaction{cb})
	require.NotEqual(t, b1.Hash, b3.Hash, "different timestamp must change the hash")
}

func TestBlockHashIs32HexChars(t *testing.T) {
	b := NewBlock("parent", 1, 1.0, []Transaction{NewCoinbase(1, 0, 50)})
	require.Len(t, b.Hash, 32)
}

func TestBlockRecomputedHashMatchesStoredHash(t *testing.T) {
	b := NewBlock("parent", 1, 1.0, []Transaction{NewCoinbase(1, 0, 50)})
	require.Equal(t, b.Hash, b.computeHash(), "spec.md invariant 3: recomputing the hash must match")
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	b := NewBlock("parent", 1, 1.0, []Transaction{NewCoinbase(1, 0, 50), NewTransaction(1, 0, 1, 5)})
	cp := b.Clone()
	cp.Txns[1] = NewTransaction(1, 0, 1, 999)
	cp.HasReleaseTime = true
	cp.ReleaseTime = 42

	require.NotEqual(t, b.Txns[1].Amount, cp.Txns[1].Amount)
	require.False(t, b.HasReleaseTime, "mutating the clone must not affect the original")
}

func TestCoinbaseAndNonCoinbaseTxns(t *testing.T) {
	cb := NewCoinbase(1, 0, 50)
	other := NewTransaction(1, 0, 1, 5)
	b := NewBlock("parent", 1, 1.0, []Transaction{cb, other})

	got, ok := b.Coinbase()
	require.True(t, ok)
	require.True(t, got.IsCoinbase())
	require.Equal(t, []Transaction{other}, b.NonCoinbaseTxns())
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxnPoolPreservesInsertionOrder(t *testing.T) {
	p := newTxnPool()
	a := NewTransaction(0, 1, 2, 1)
	b := NewTransaction(0, 2, 3, 2)
	c := NewTransaction(0, 3, 1, 3)
	p.Add(a)
	p.Add(b)
	p.Add(c)

	require.Equal(t, []Transaction{a, b, c}, p.Values())
	require.Equal(t, 3, p.Len())
	require.True(t, p.Has(a.ID))
}

func TestTxnPoolReinsertionUpdatesInPlace(t *testing.T) {
	p := newTxnPool()
	a := NewTransaction(0, 1, 2, 1)
	p.Add(a)
	updated := a
	updated.Amount = 99
	p.Add(updated)

	require.Equal(t, 1, p.Len(), "re-adding an existing id must not duplicate it")
	require.Equal(t, 99.0, p.Values()[0].Amount)
}

func TestTxnPoolRemove(t *testing.T) {
	p := newTxnPool()
	a := NewTransaction(0, 1, 2, 1)
	b := NewTransaction(0, 2, 3, 2)
	p.Add(a)
	p.Add(b)
	p.Remove(a.ID)

	require.False(t, p.Has(a.ID))
	require.Equal(t, []Transaction{b}, p.Values())

	p.Remove("nonexistent")
	require.Equal(t, 1, p.Len())
}

func TestPendingSetChildrenOfPreservesArrivalOrder(t *testing.T) {
	p := newPendingSet()
	b1 := NewBlock("root", 1, 1, nil)
	b2 := NewBlock("root", 1, 2, nil)
	other := NewBlock("elsewhere", 1, 3, nil)
	p.Add(b1)
	p.Add(b2)
	p.Add(other)

	children := p.ChildrenOf("root")
	require.Equal(t, []Block{b1, b2}, children)
}

func TestPendingSetAddIsIdempotentByHash(t *testing.T) {
	p := newPendingSet()
	b := NewBlock("root", 1, 1, nil)
	p.Add(b)
	p.Add(b)
	require.Equal(t, 1, p.Len())
}

func TestPendingSetRemove(t *testing.T) {
	p := newPendingSet()
	b := NewBlock("root", 1, 1, nil)
	p.Add(b)
	p.Remove(b.Hash)
	require.False(t, p.Has(b.Hash))
	require.Equal(t, 0, p.Len())
}

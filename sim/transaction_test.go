package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCoinbaseIsMarkedAsCoinbase(t *testing.T) {
	cb := NewCoinbase(1.0, 3, 50)
	require.True(t, cb.IsCoinbase())
	require.Equal(t, NodeID(3), cb.Receiver)
	require.Equal(t, 50.0, cb.Amount)
}

func TestNewTransactionIsNotCoinbase(t *testing.T) {
	tx := NewTransaction(1.0, 1, 2, 10.12345)
	require.False(t, tx.IsCoinbase())
	require.Equal(t, 10.1235, tx.Amount, "amount must round to 4 decimals")
}

func TestTransactionIDsAreUnique(t *testing.T) {
	a := NewTransaction(0, 1, 2, 1)
	b := NewTransaction(0, 1, 2, 1)
	require.NotEqual(t, a.ID, b.ID)
}

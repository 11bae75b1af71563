package sim

import (
	"fmt"
	"math"

	uuid "github.com/satori/go.uuid"
)

// NodeID identifies a node within the simulated overlay.
type NodeID int

// Transaction is an immutable payment record, spec.md §3. A coinbase
// transaction has no sender and mints the mining reward to the receiver.
type Transaction struct {
	ID         string
	Timestamp  float64
	hasSender  bool
	Sender     NodeID
	Receiver   NodeID
	Amount     float64
}

// NewTransaction builds a sender-to-receiver payment stamped at ts.
func NewTransaction(ts float64, sender, receiver NodeID, amount float64) Transaction {
	return Transaction{
		ID:        uuid.NewV4().String(),
		Timestamp: ts,
		hasSender: true,
		Sender:    sender,
		Receiver:  receiver,
		Amount:    round4(amount),
	}
}

// NewCoinbase builds the mining-reward transaction that must be the first
// element of every mined block's transaction list (spec.md §3 invariant 4).
func NewCoinbase(ts float64, receiver NodeID, reward float64) Transaction {
	return Transaction{
		ID:        uuid.NewV4().String(),
		Timestamp: ts,
		hasSender: false,
		Receiver:  receiver,
		Amount:    reward,
	}
}

// IsCoinbase reports whether t mints new coins rather than transferring
// between two existing nodes.
func (t Transaction) IsCoinbase() bool { return !t.hasSender }

func (t Transaction) String() string {
	if t.IsCoinbase() {
		return fmt.Sprintf("%s: coinbase %v to %d", t.ID, t.Amount, t.Receiver)
	}
	return fmt.Sprintf("%s: %d pays %d %v", t.ID, t.Sender, t.Receiver, t.Amount)
}

// round4 rounds to 4 decimal places, matching spec.md §4.3/§4.4's repeated
// "rounded to 4 decimals" comparisons so that balance checks are exact.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

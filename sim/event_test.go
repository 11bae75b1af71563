package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventQueuePopsInTimeOrder(t *testing.T) {
	q := NewEventQueue()
	q.Push(Event{Time: 5, Kind: EventBlkMine})
	q.Push(Event{Time: 1, Kind: EventTxnCreate})
	q.Push(Event{Time: 3, Kind: EventTxnRecv})

	first, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, 1.0, first.Time)

	second, _ := q.Pop()
	require.Equal(t, 3.0, second.Time)

	third, _ := q.Pop()
	require.Equal(t, 5.0, third.Time)

	_, ok = q.Pop()
	require.False(t, ok, "popping an empty queue must report ok=false")
}

func TestEventQueueBreaksTiesByInsertionOrder(t *testing.T) {
	q := NewEventQueue()
	q.Push(Event{Time: 2, Receiver: 1})
	q.Push(Event{Time: 2, Receiver: 2})
	q.Push(Event{Time: 2, Receiver: 3})

	first, _ := q.Pop()
	second, _ := q.Pop()
	third, _ := q.Pop()
	require.Equal(t, []NodeID{1, 2, 3}, []NodeID{first.Receiver, second.Receiver, third.Receiver})
}

func TestEventQueueLen(t *testing.T) {
	q := NewEventQueue()
	require.Equal(t, 0, q.Len())
	q.Push(Event{Time: 1})
	q.Push(Event{Time: 2})
	require.Equal(t, 2, q.Len())
	q.Pop()
	require.Equal(t, 1, q.Len())
}

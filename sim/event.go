package sim

import "container/heap"

// EventKind tags what an Event asks its receiver to do, spec.md §4.1.
type EventKind int

const (
	EventTxnCreate EventKind = iota
	EventTxnRecv
	EventBlkMine
	EventBlkRecv
)

func (k EventKind) String() string {
	switch k {
	case EventTxnCreate:
		return "txn_create"
	case EventTxnRecv:
		return "txn_recv"
	case EventBlkMine:
		return "blk_mine"
	case EventBlkRecv:
		return "blk_recv"
	default:
		return "unknown"
	}
}

// Event is a timestamped instruction dispatched to Receiver, carrying an
// optional transaction or block payload, spec.md §4.1.
type Event struct {
	Time     float64
	Sender   NodeID
	Receiver NodeID
	Kind     EventKind
	Txn      *Transaction
	Block    *Block

	// seq breaks ties between equal timestamps in FIFO insertion order,
	// spec.md §4.1 ("ties broken by insertion order") — needed because
	// container/heap is not otherwise stable.
	seq int64
}

// EventQueue is a min-heap of Events ordered by (Time, seq), spec.md §4.1.
type EventQueue struct {
	items  eventHeap
	nextSeq int64
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.items)
	return q
}

// Push inserts e in O(log n), stamping its tie-break sequence number.
func (q *EventQueue) Push(e Event) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.items, e)
}

// Pop removes and returns the earliest event. ok is false when the queue
// is empty (spec.md §4.1: "failing with Empty when drained").
func (q *EventQueue) Pop() (Event, bool) {
	if q.items.Len() == 0 {
		return Event{}, false
	}
	e := heap.Pop(&q.items).(Event)
	return e, true
}

// Len reports the number of pending events.
func (q *EventQueue) Len() int { return q.items.Len() }

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

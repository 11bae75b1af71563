package sim

import (
	"github.com/shivansh1010/P2P-Crypto-Simulator/config"
	"github.com/shivansh1010/P2P-Crypto-Simulator/log"
	"github.com/shivansh1010/P2P-Crypto-Simulator/sim/simmetrics"
)

var netLog = log.New("pkg", "sim", "component", "network")

// Params is the simulator's resolved configuration, flattened from
// config.Config's five groups (spec.md §6) into the fields the event
// handlers in node.go/adversary.go read.
type Params struct {
	TotalNodes    int
	ExecutionTime float64

	MinNeighbors, MaxNeighbors int

	TransactionSize         int
	MeanInterarrivalTimeSec float64

	MeanMiningTimeSec float64
	MiningReward      float64
	MaxTxnInBlock     int
	GenesisBalance    float64
}

func paramsFromConfig(cfg config.Config) Params {
	return Params{
		TotalNodes:              cfg.Simulation.TotalNodes,
		ExecutionTime:           cfg.Simulation.ExecutionTime,
		MinNeighbors:            cfg.Node.MinNeighbors,
		MaxNeighbors:            cfg.Node.MaxNeighbors,
		TransactionSize:         cfg.Transaction.Size,
		MeanInterarrivalTimeSec: cfg.Transaction.MeanInterarrivalTimeSec,
		MeanMiningTimeSec:       cfg.Mining.MeanMiningTimeSec,
		MiningReward:            cfg.Mining.MiningReward,
		MaxTxnInBlock:           cfg.Mining.MaxTxnInBlock,
		GenesisBalance:          cfg.Mining.GenesisBalance,
	}
}

// Simulator is C7 of spec.md §2: it builds the overlay, allocates roles
// and hashing power, seeds the initial events, and runs the main event
// loop. Nodes hold no reference back to it (spec.md §9's design note
// against cyclic back-references); every handler call receives the
// Simulator explicitly as a per-call context.
type Simulator struct {
	params  Params
	rng     *Rng
	queue   *EventQueue
	delay   *DelayModel
	nodes   []*Node
	metrics *simmetrics.Counters
	now     float64
}

// NewSimulator builds the overlay (topology, roles, hashing power) from
// cfg and a seed, per spec.md §4.8 steps 1-3.
func NewSimulator(cfg config.Config) *Simulator {
	rng := NewRng(cfg.Simulation.Seed)

	s := &Simulator{
		params:  paramsFromConfig(cfg),
		rng:     rng,
		queue:   NewEventQueue(),
		metrics: simmetrics.New(),
		delay: NewDelayModel(rng,
			cfg.Network.MinLightPropDelay, cfg.Network.MaxLightPropDelay,
			cfg.Network.SlowNodeLinkSpeed, cfg.Network.FastNodeLinkSpeed,
			cfg.Network.QueuingDelayConstant),
	}

	genesis := NewGenesisBlock()
	n := cfg.Simulation.TotalNodes

	adj := BuildTopology(rng, n, cfg.Node.MinNeighbors, cfg.Node.MaxNeighbors)

	s.nodes = make([]*Node, n)
	for i := 0; i < n; i++ {
		isSlow := rng.Float64() <= cfg.Simulation.PercentSlowNodes/100
		isLowCPU := rng.Float64() <= cfg.Simulation.PercentLowCPUNodes/100
		adversary := i == n-1 || i == n-2
		if adversary {
			// Adversaries are fast and high-cpu, spec.md §4.8 step 2.
			isSlow, isLowCPU = false, false
		}
		node := NewNode(NodeID(i), isSlow, isLowCPU, adversary, genesis)
		node.Neighbors = adj[i]
		s.nodes[i] = node
	}

	s.assignHashingPower(cfg)

	netLog.Info("network built", "nodes", n, "adversary_one_power", cfg.Node.AdversaryOneMiningPower,
		"adversary_two_power", cfg.Node.AdversaryTwoMiningPower)
	return s
}

// assignHashingPower implements spec.md §4.8 step 3.
func (s *Simulator) assignHashingPower(cfg config.Config) {
	n := cfg.Simulation.TotalNodes
	adv1 := cfg.Node.AdversaryOneMiningPower / 100
	adv2 := cfg.Node.AdversaryTwoMiningPower / 100
	honestShare := 1 - (adv1 + adv2)

	var highCPU, lowCPU int
	for i := 0; i < n-2; i++ {
		if s.nodes[i].IsLowCPU {
			lowCPU++
		} else {
			highCPU++
		}
	}

	denom := float64(10*highCPU + lowCPU)
	var low, high float64
	if denom > 0 {
		low = honestShare / denom
		high = 10 * low
	}

	for i := 0; i < n-2; i++ {
		if s.nodes[i].IsLowCPU {
			s.nodes[i].HashingPower = low
		} else {
			s.nodes[i].HashingPower = high
		}
	}
	if n >= 2 {
		s.nodes[n-2].HashingPower = adv1
		s.nodes[n-1].HashingPower = adv2
	}
}

// Node returns the node with the given id.
func (s *Simulator) Node(id NodeID) *Node { return s.nodes[int(id)] }

// Nodes returns every node, in id order.
func (s *Simulator) Nodes() []*Node { return s.nodes }

// Now returns the simulator's current virtual time.
func (s *Simulator) Now() float64 { return s.now }

// Enqueue pushes e onto the event queue (C3, spec.md §4.1).
func (s *Simulator) Enqueue(e Event) { s.queue.Push(e) }

// DelayBetween computes the delay for a message of sizeBytes from
// sender to receiver, consulting both endpoints' slow-link status
// (spec.md §4.2).
func (s *Simulator) DelayBetween(sender, receiver NodeID, sizeBytes float64) float64 {
	return s.delay.Compute(s.rng, sizeBytes, s.Node(sender).IsSlow, s.Node(receiver).IsSlow)
}

// Metrics exposes the run's counters.
func (s *Simulator) Metrics() *simmetrics.Counters { return s.metrics }

// Run seeds the initial per-node events and drains the event queue, per
// spec.md §4.8 steps 4-5. It stops when the queue empties or the next
// event's timestamp exceeds ExecutionTime.
func (s *Simulator) Run() {
	for _, n := range s.nodes {
		n.ScheduleNextTxnCreate(s, 0)
		n.BlockCreate(s, 0)
	}

	for {
		e, ok := s.queue.Pop()
		if !ok {
			break
		}
		if e.Time > s.params.ExecutionTime {
			break
		}
		s.now = e.Time
		s.dispatch(e)
		s.metrics.EventsDispatched.Inc(1)
	}

	netLog.Info("run complete", "events_dispatched", s.metrics.EventsDispatched.Count(),
		"blocks_mined", s.metrics.BlocksMined.Count(), "reorgs", s.metrics.Reorgs.Count())
}

func (s *Simulator) dispatch(e Event) {
	receiver := s.Node(e.Receiver)
	switch e.Kind {
	case EventTxnCreate:
		receiver.HandleTxnCreate(s, e.Time)
	case EventTxnRecv:
		receiver.HandleTxnRecv(s, e.Time, *e.Txn, e.Sender)
	case EventBlkMine:
		receiver.HandleBlockMine(s, e.Time, *e.Block)
	case EventBlkRecv:
		receiver.HandleBlockRecv(s, e.Time, *e.Block, e.Sender)
	}
}

// Package simmetrics registers the run counters the simulator exposes,
// mirroring the way the teacher's work/worker.go registers its own
// mining counters with rcrowley/go-metrics
// (metrics.NewRegisteredCounter("miner/timelimitreached", nil)).
package simmetrics

import "github.com/rcrowley/go-metrics"

// Counters bundles every counter a simulation run updates.
type Counters struct {
	EventsDispatched      metrics.Counter
	BlocksMined           metrics.Counter
	BlocksOrphaned        metrics.Counter
	Reorgs                metrics.Counter
	BlocksStaleDiscarded  metrics.Counter
}

// New registers a fresh set of counters in their own isolated registry,
// so that multiple simulation runs in the same process (e.g. the
// scenario tests) never share counts.
func New() *Counters {
	r := metrics.NewRegistry()
	return &Counters{
		EventsDispatched:     metrics.NewRegisteredCounter("sim/events-dispatched", r),
		BlocksMined:          metrics.NewRegisteredCounter("sim/blocks-mined", r),
		BlocksOrphaned:       metrics.NewRegisteredCounter("sim/blocks-orphaned", r),
		Reorgs:               metrics.NewRegisteredCounter("sim/reorgs", r),
		BlocksStaleDiscarded: metrics.NewRegisteredCounter("sim/blocks-stale-discarded", r),
	}
}

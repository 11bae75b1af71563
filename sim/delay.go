package sim

import "math"

// DelayModel computes inter-node message delay, spec.md §4.2. PropDelay is
// drawn once per simulation and then held fixed; queueing delay is
// redrawn independently for every send.
type DelayModel struct {
	PropDelay            float64
	SlowLinkSpeedKbps    float64
	FastLinkSpeedKbps    float64
	QueuingDelayConstant float64
}

// NewDelayModel draws PropDelay ~ Uniform(minProp, maxProp) once and
// fixes the remaining parameters for the simulation's lifetime.
func NewDelayModel(rng *Rng, minProp, maxProp, slowKbps, fastKbps, queuingConst float64) *DelayModel {
	return &DelayModel{
		PropDelay:            rng.Uniform(minProp, maxProp),
		SlowLinkSpeedKbps:    slowKbps,
		FastLinkSpeedKbps:    fastKbps,
		QueuingDelayConstant: queuingConst,
	}
}

// Compute returns the delay for a message of sizeBytes between a sender
// and receiver, either of which may be "slow" (spec.md §4.2).
func (d *DelayModel) Compute(rng *Rng, sizeBytes float64, senderSlow, receiverSlow bool) float64 {
	linkSpeed := d.FastLinkSpeedKbps
	if senderSlow || receiverSlow {
		linkSpeed = d.SlowLinkSpeedKbps
	}
	linkSpeedBps := linkSpeed * 1024

	transmission := (sizeBytes * 8) / linkSpeedBps
	queueing := rng.Exp(d.QueuingDelayConstant / linkSpeedBps)

	delay := d.PropDelay + transmission + queueing
	if !(delay > 0) || math.IsInf(delay, 0) {
		// Delay must be strictly positive (spec.md §4.2); a degenerate
		// configuration (zero link speed, zero prop delay) falls back
		// to an epsilon so the event queue still makes forward progress.
		delay = 1e-9
	}
	return delay
}

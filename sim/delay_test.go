package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDelayModelDrawsPropDelayWithinRange(t *testing.T) {
	rng := NewRng(1)
	d := NewDelayModel(rng, 0.01, 0.5, 100, 5000, 96000)
	require.GreaterOrEqual(t, d.PropDelay, 0.01)
	require.LessOrEqual(t, d.PropDelay, 0.5)
}

func TestComputeUsesSlowLinkWhenEitherEndIsSlow(t *testing.T) {
	rng := NewRng(2)
	d := NewDelayModel(rng, 0.1, 0.1, 100, 5000, 96000)

	slow := d.Compute(rng, 8000, true, false)
	fast := d.Compute(rng, 8000, false, false)
	require.Greater(t, slow, fast, "a slow endpoint must not transmit faster than an all-fast link")
}

func TestComputeIsAlwaysStrictlyPositive(t *testing.T) {
	rng := NewRng(3)
	d := NewDelayModel(rng, 0, 0, 0, 0, 0)
	for i := 0; i < 50; i++ {
		require.Greater(t, d.Compute(rng, 0, false, false), 0.0)
	}
}

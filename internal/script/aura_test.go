package script

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuraCycleHappyPath(t *testing.T) {
	t.Parallel()

	a := &Aura{}
	assert.Equal(t, AuraIdle, a.State())

	assert.True(t, a.To(AuraListening))
	assert.True(t, a.To(AuraProcessing))
	assert.True(t, a.To(AuraResponding))
	assert.True(t, a.To(AuraIdle))
}

func TestAuraRejectsOutOfOrderTransitions(t *testing.T) {
	t.Parallel()

	a := &Aura{}
	assert.False(t, a.To(AuraProcessing), "cannot skip listening")
	assert.False(t, a.To(AuraResponding))
	assert.Equal(t, AuraIdle, a.State())

	a.To(AuraListening)
	// A stale tick for the state we already left is a no-op.
	assert.False(t, a.To(AuraListening))
	assert.Equal(t, AuraListening, a.State())
}

func TestAuraSettle(t *testing.T) {
	t.Parallel()

	a := &Aura{}
	a.To(AuraListening)
	a.To(AuraProcessing)
	a.Settle()
	assert.Equal(t, AuraIdle, a.State())
}

func TestAuraDwell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Duration(0), AuraIdle.Dwell(), "idle holds until input")
	assert.Greater(t, AuraProcessing.Dwell(), AuraListening.Dwell(),
		"processing is the longest beat of the cycle")
}

func TestAuraStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", AuraIdle.String())
	assert.Equal(t, "processing", AuraProcessing.String())
	assert.Equal(t, "unknown", AuraState(99).String())
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickDividerSteady(t *testing.T) {
	d := NewTickDivider(TickMicros)

	assert.Equal(t, 0, d.Advance(0), "first call only sets the phase")
	assert.Equal(t, 0, d.Advance(9999))
	assert.Equal(t, 1, d.Advance(10000))
	assert.Equal(t, 2, d.Advance(35000))
	assert.Equal(t, 0, d.Advance(39999))
	assert.Equal(t, 1, d.Advance(40000))
	assert.Zero(t, d.Skipped())
}

func TestTickDividerWraps(t *testing.T) {
	d := NewTickDivider(TickMicros)

	start := uint32(0xFFFFFFFF - 5000)
	d.Advance(start)
	assert.Equal(t, 0, d.Advance(4998))
	assert.Equal(t, 1, d.Advance(5000))
}

func TestTickDividerCatchUpLimit(t *testing.T) {
	d := NewTickDivider(TickMicros)

	d.Advance(0)
	assert.Equal(t, MaxCatchUpTicks, d.Advance(1000000))
	assert.Equal(t, uint32(90), d.Skipped())

	// phase restarts from the stall
	assert.Equal(t, 0, d.Advance(1005000))
	assert.Equal(t, 1, d.Advance(1010000))
}

func TestTickDividerDefaultPeriod(t *testing.T) {
	d := NewTickDivider(0)
	d.Advance(100)
	assert.Equal(t, 1, d.Advance(100+TickMicros))
}

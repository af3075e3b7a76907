package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterLanes(t *testing.T) {
	d := newRecordingDisplay()
	c := NewCounterHandler(d)

	deliver(c, EventMasterBroken, 7)
	deliver(c, EventSlaveBroken, 23)
	assertDigits(t, d.SegmentDisplay, [NumDigits]uint8{7, 0, 3, 2})
	assert.Equal(t, KindCounter, c.Kind())
}

func TestCounterIgnoresTicksAndButtons(t *testing.T) {
	d := newRecordingDisplay()
	c := NewCounterHandler(d)

	deliver(c, EventMS10, 1000)
	c.Handle(EventMasterButton)
	c.Handle(EventSlaveButton)

	assert.Empty(t, d.calls)
}

func TestMeasureIsNoOp(t *testing.T) {
	d := newRecordingDisplay()
	m := MeasureHandler{}

	for _, ev := range []Event{EventMasterBroken, EventSlaveBroken, EventMasterButton, EventSlaveButton, EventMS10} {
		deliver(m, ev, 10)
	}

	assert.Empty(t, d.calls)
	assert.Equal(t, KindMeasure, m.Kind())
}

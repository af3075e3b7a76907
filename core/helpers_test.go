package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recordingDisplay wraps SegmentDisplay and logs every mutating call
type recordingDisplay struct {
	*SegmentDisplay
	calls []string
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{SegmentDisplay: NewSegmentDisplay()}
}

func (r *recordingDisplay) Zero() {
	r.calls = append(r.calls, "Zero")
	r.SegmentDisplay.Zero()
}

func (r *recordingDisplay) Set(d0, d1, d2, d3 uint8) {
	r.calls = append(r.calls, "Set")
	r.SegmentDisplay.Set(d0, d1, d2, d3)
}

func (r *recordingDisplay) Increase(moduli ...uint8) bool {
	r.calls = append(r.calls, "Increase")
	return r.SegmentDisplay.Increase(moduli...)
}

func (r *recordingDisplay) IncreaseLS() {
	r.calls = append(r.calls, "IncreaseLS")
	r.SegmentDisplay.IncreaseLS()
}

func (r *recordingDisplay) IncreaseMS() {
	r.calls = append(r.calls, "IncreaseMS")
	r.SegmentDisplay.IncreaseMS()
}

func (r *recordingDisplay) SetFrozen(frozen bool) {
	r.calls = append(r.calls, "SetFrozen")
	r.SegmentDisplay.SetFrozen(frozen)
}

func (r *recordingDisplay) RequestRefresh() {
	r.calls = append(r.calls, "RequestRefresh")
	r.SegmentDisplay.RequestRefresh()
}

func (r *recordingDisplay) reset() {
	r.calls = nil
}

// fakeStorage serves calibration bytes from a map, missing addresses read 0
type fakeStorage map[uint16]byte

func (s fakeStorage) ByteAt(addr uint16) byte {
	return s[addr]
}

// countingPrompt always answers value and counts how often it was asked
type countingPrompt struct {
	value uint8
	asked int
	max   uint8
}

func (p *countingPrompt) Choose(max uint8) uint8 {
	p.asked++
	p.max = max
	return p.value
}

// recordingSpeaker keeps every requested sound duration
type recordingSpeaker struct {
	sounds []uint8
}

func (s *recordingSpeaker) Sound(ticks uint8) {
	s.sounds = append(s.sounds, ticks)
}

func deliver(h Handler, ev Event, n int) {
	for i := 0; i < n; i++ {
		h.Handle(ev)
	}
}

func assertDigits(t *testing.T, d *SegmentDisplay, want [NumDigits]uint8) {
	t.Helper()
	if diff := cmp.Diff(want, d.Digits()); diff != "" {
		t.Errorf("display digits mismatch (-want +got):\n%s", diff)
	}
}

package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calibrationFixture gives mode i broken byte i and delay byte i%8
func calibrationFixture() fakeStorage {
	s := fakeStorage{}
	for i := uint8(0); i < NumModes; i++ {
		broken, delay := CalibrationAddr(i)
		s[broken] = i
		s[delay] = i % 8
	}
	return s
}

func newTestBoard(storage Storage, prompt Prompt) Board {
	return Board{
		Display: NewSegmentDisplay(),
		Speaker: &recordingSpeaker{},
		Storage: storage,
		Prompt:  prompt,
	}
}

func TestSelectModePacketFormula(t *testing.T) {
	b := newTestBoard(calibrationFixture(), &countingPrompt{value: 3})

	for i := uint8(0); i < NumModes; i++ {
		m, err := SelectMode(i, b)
		require.NoError(t, err, "mode %d", i)

		want := uint8(((m.IRDelay/100)-1)<<5) | (m.IRBroken - 1)
		assert.Equal(t, want, m.Packet, "mode %d packet", i)
		assert.Equal(t, i, m.Index)
	}
}

func TestSelectModeCalibration(t *testing.T) {
	storage := fakeStorage{8: 4, 9: 2}
	m, err := SelectMode(ModeConfirm1, newTestBoard(storage, nil))
	require.NoError(t, err)

	assert.Equal(t, uint16(300), m.IRDelay)
	assert.Equal(t, uint8(5), m.IRBroken)
	assert.Equal(t, uint8(2<<5|4), m.Packet)

	irDelay, irBroken := UnpackConfig(m.Packet)
	assert.Equal(t, m.IRDelay, irDelay)
	assert.Equal(t, m.IRBroken, irBroken)
}

func TestSelectModeMeasureOverrides(t *testing.T) {
	storage := fakeStorage{14: 9, 15: 3}
	m, err := SelectMode(ModeMeasure, newTestBoard(storage, nil))
	require.NoError(t, err)

	assert.Equal(t, uint16(0), m.IRDelay)
	assert.Equal(t, uint8(255), m.IRBroken)
	assert.Equal(t, uint8(0xFE), m.Packet)
	assert.Equal(t, KindMeasure, m.Handler.Kind())
	assert.Equal(t, [NumFlags]bool{true, true, true}, m.Settings.Flags)
}

func TestSelectModeHandlers(t *testing.T) {
	testCases := []struct {
		index uint8
		kind  Kind
		flags [NumFlags]bool
	}{
		{ModeTimer1, KindTimer, [NumFlags]bool{true, true, true, false, false, false, true}},
		{ModeTimer2, KindTimer, [NumFlags]bool{true, true, true, false, false, false, true}},
		{ModeCounter1, KindCounter, [NumFlags]bool{true, false, true, false, false, false, true}},
		{ModeCounter2, KindCounter, [NumFlags]bool{true, false, true, false, false, false, true}},
		{ModeConfirm1, KindConfirmCounter, [NumFlags]bool{true, false, true, false, false, false, true}},
		{ModeConfirm2, KindConfirmCounter, [NumFlags]bool{true, false, true, false, false, false, true}},
		{ModeAlarm, KindAlarm, [NumFlags]bool{false, false, false, false, true}},
		{ModeMeasure, KindMeasure, [NumFlags]bool{true, true, true}},
	}

	for _, tc := range testCases {
		prompt := &countingPrompt{value: 5}
		m, err := SelectMode(tc.index, newTestBoard(calibrationFixture(), prompt))
		require.NoError(t, err)

		assert.Equal(t, tc.kind, m.Handler.Kind(), "mode %d", tc.index)
		assert.Equal(t, tc.flags, m.Settings.Flags, "mode %d", tc.index)
		if tc.kind == KindAlarm {
			assert.Equal(t, uint8(1<<DotLLS), m.Settings.Init, "armed alarm shows the LLS dot")
		} else {
			assert.Zero(t, m.Settings.Init, "mode %d starts with dots off", tc.index)
		}

		if tc.kind == KindTimer {
			assert.Equal(t, 1, prompt.asked)
			assert.Equal(t, uint8(MaxLaps), prompt.max)
			assert.Equal(t, uint8(5), m.Laps)
		} else {
			assert.Zero(t, prompt.asked, "mode %d must not prompt", tc.index)
			assert.Zero(t, m.Laps)
		}
	}
}

func TestSelectModeClampsLaps(t *testing.T) {
	m, err := SelectMode(ModeTimer1, newTestBoard(fakeStorage{}, &countingPrompt{value: 42}))
	require.NoError(t, err)
	assert.Equal(t, uint8(MaxLaps), m.Laps)
}

func TestSelectModeInvalidIndex(t *testing.T) {
	for _, index := range []uint8{NumModes, 9, 255} {
		m, err := SelectMode(index, newTestBoard(fakeStorage{}, nil))
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, ErrInvalidMode), "index %d: %v", index, err)
	}
}

func TestSelectModeFreshHandlerState(t *testing.T) {
	b := newTestBoard(fakeStorage{}, &countingPrompt{value: 0})

	first, err := SelectMode(ModeTimer1, b)
	require.NoError(t, err)
	first.Handle(EventMasterBroken)
	require.True(t, first.Handler.(*TimerHandler).Active())

	second, err := SelectMode(ModeTimer1, b)
	require.NoError(t, err)
	timer := second.Handler.(*TimerHandler)
	assert.False(t, timer.Active())
	assert.True(t, timer.Zeroed())
}

func TestConfirmModeDrivesOwnSettings(t *testing.T) {
	m, err := SelectMode(ModeConfirm2, newTestBoard(fakeStorage{}, nil))
	require.NoError(t, err)

	m.Handle(EventSlaveBroken)
	assert.True(t, m.Settings.Dot(DotMMS))
}

func TestPackConfigWraps(t *testing.T) {
	// delay in bits 5-7, threshold in bits 0-4
	assert.Equal(t, uint8(0x1F), PackConfig(100, 32))
	assert.Equal(t, uint8(0xE0), PackConfig(800, 1))
	assert.Equal(t, uint8(0x20|0x1F), PackConfig(200, 32))
}

func TestCalibrationAddr(t *testing.T) {
	broken, delay := CalibrationAddr(ModeAlarm)
	assert.Equal(t, uint16(12), broken)
	assert.Equal(t, uint16(13), delay)
}

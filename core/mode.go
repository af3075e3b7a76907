package core

import (
	"errors"
	"fmt"
)

// Mode indices as selected by the operator
const (
	ModeTimer1 = iota
	ModeTimer2
	ModeCounter1
	ModeCounter2
	ModeConfirm1
	ModeConfirm2
	ModeAlarm
	ModeMeasure

	NumModes
)

// MaxLaps is the largest lap count offered when entering a timer mode
const MaxLaps = 10

var ErrInvalidMode = errors.New("invalid mode index")

// Mode is the active configuration: handler, IR calibration, lap count,
// display settings and the packed configuration byte for the paired unit.
type Mode struct {
	Index    uint8
	IRDelay  uint16 // beam break gate time in 10ms units
	IRBroken uint8  // beam break count threshold, 255 means unused
	Laps     uint8
	Settings DisplaySettings
	Handler  Handler
	Packet   uint8
}

// Handle delivers one event to the mode's handler
func (m *Mode) Handle(ev Event) {
	m.Handler.Handle(ev)
}

// updatePacket recomputes Packet, call it whenever IRDelay or IRBroken change
func (m *Mode) updatePacket() {
	m.Packet = PackConfig(m.IRDelay, m.IRBroken)
}

// PackConfig packs the IR calibration into one byte for the paired unit:
// bits 5-7 hold irDelay/100-1, bits 0-4 hold irBroken-1. The arithmetic wraps
// at 8 bits, so the measure mode's irDelay=0, irBroken=255 packs to 0xFE.
func PackConfig(irDelay uint16, irBroken uint8) uint8 {
	return uint8(irDelay/100-1)<<5 | (irBroken - 1)
}

// UnpackConfig is the receiving side of PackConfig
func UnpackConfig(packet uint8) (irDelay uint16, irBroken uint8) {
	irDelay = 100 * (uint16(packet>>5) + 1)
	irBroken = packet&0x1F + 1
	return irDelay, irBroken
}

// CalibrationAddr returns the storage addresses of a mode's calibration bytes:
// the IR broken threshold and the IR delay
func CalibrationAddr(index uint8) (broken, delay uint16) {
	return 2 * uint16(index), 2*uint16(index) + 1
}

// SelectMode builds a fresh Mode for index. Calibration comes from b.Storage,
// timer modes ask b.Prompt for the lap count. Handler state is always new, so
// selecting the same index again resets it.
func SelectMode(index uint8, b Board) (*Mode, error) {
	if index >= NumModes {
		return nil, fmt.Errorf("select mode %d: %w", index, ErrInvalidMode)
	}

	brokenAddr, delayAddr := CalibrationAddr(index)
	m := &Mode{
		Index:    index,
		IRDelay:  100 * (uint16(b.Storage.ByteAt(delayAddr)) + 1),
		IRBroken: b.Storage.ByteAt(brokenAddr) + 1,
	}

	switch index {
	case ModeTimer1, ModeTimer2:
		m.Laps = b.Prompt.Choose(MaxLaps)
		if m.Laps > MaxLaps {
			m.Laps = MaxLaps
		}
		m.Settings = NewDisplaySettings(true, true, true, false, false, false, true)
		m.Handler = NewTimerHandler(b.Display, m.Laps)
	case ModeCounter1, ModeCounter2:
		m.Settings = NewDisplaySettings(true, false, true, false, false, false, true)
		m.Handler = NewCounterHandler(b.Display)
	case ModeConfirm1, ModeConfirm2:
		m.Settings = NewDisplaySettings(true, false, true, false, false, false, true)
		m.Handler = NewConfirmCounterHandler(b.Display, &m.Settings)
	case ModeAlarm:
		m.Settings = NewDisplaySettings(false, false, false, false, true)
		m.Handler = NewAlarmHandler(b.Display, b.Speaker, &m.Settings)
	case ModeMeasure:
		m.Settings = NewDisplaySettings(true, true, true)
		m.Handler = MeasureHandler{}
		m.IRBroken = 255
		m.IRDelay = 0
	}
	m.updatePacket()

	return m, nil
}

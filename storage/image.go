// Package storage holds the calibration table read at mode selection.
//
// The table has two bytes per mode (IR broken threshold, IR delay) at the
// addresses core.CalibrationAddr returns. On disk and in flash it is followed
// by a big-endian CRC16 so a blank or torn copy is detected and replaced by
// the factory defaults.
package storage

import (
	"errors"
	"fmt"

	"irtimer/core"
)

const (
	// CalibrationSize is the number of calibration bytes, two per mode
	CalibrationSize = 2 * core.NumModes

	// ImageSize is the calibration bytes plus the CRC16 trailer
	ImageSize = CalibrationSize + 2
)

var (
	ErrShortImage = errors.New("calibration image too short")
	ErrBlankImage = errors.New("calibration image is blank")
	ErrChecksum   = errors.New("calibration image checksum mismatch")
)

// Calibration is the raw table, indexed by storage address
type Calibration [CalibrationSize]byte

// DefaultCalibration is used when no valid image exists: every lane needs a
// single break and gates for one second.
var DefaultCalibration = Calibration{}

// Encode returns the table followed by its CRC16
func Encode(cal Calibration) []byte {
	out := make([]byte, 0, ImageSize)
	out = append(out, cal[:]...)
	crc := Checksum(cal[:])
	return append(out, byte(crc>>8), byte(crc))
}

// Decode validates an image and returns its table. Erased flash (all 0xFF)
// reports ErrBlankImage rather than a checksum error.
func Decode(data []byte) (Calibration, error) {
	var cal Calibration
	if len(data) < ImageSize {
		return cal, fmt.Errorf("%w: %d of %d bytes", ErrShortImage, len(data), ImageSize)
	}
	data = data[:ImageSize]

	blank := true
	for _, b := range data {
		if b != 0xFF {
			blank = false
			break
		}
	}
	if blank {
		return cal, ErrBlankImage
	}

	want := uint16(data[CalibrationSize])<<8 | uint16(data[CalibrationSize+1])
	if got := Checksum(data[:CalibrationSize]); got != want {
		return cal, fmt.Errorf("%w: stored %04X, computed %04X", ErrChecksum, want, got)
	}

	copy(cal[:], data)
	return cal, nil
}

// Set stores the calibration bytes for one mode
func (c *Calibration) Set(index uint8, broken, delay byte) error {
	if index >= core.NumModes {
		return fmt.Errorf("calibrate mode %d: %w", index, core.ErrInvalidMode)
	}
	brokenAddr, delayAddr := core.CalibrationAddr(index)
	c[brokenAddr] = broken
	c[delayAddr] = delay
	return nil
}

// Memory serves a calibration table to the mode factory
type Memory struct {
	cal Calibration
}

// NewMemory wraps a calibration table
func NewMemory(cal Calibration) *Memory {
	return &Memory{cal: cal}
}

// Load decodes an image. On a blank or corrupt image it still returns a
// usable store holding DefaultCalibration, together with the reason.
func Load(data []byte) (*Memory, error) {
	cal, err := Decode(data)
	if err != nil {
		return NewMemory(DefaultCalibration), err
	}
	return NewMemory(cal), nil
}

// ByteAt returns the calibration byte at addr, 0 outside the table
func (m *Memory) ByteAt(addr uint16) byte {
	if int(addr) >= CalibrationSize {
		return 0
	}
	return m.cal[addr]
}

// Calibration returns a copy of the table
func (m *Memory) Calibration() Calibration {
	return m.cal
}

// Set changes one mode's calibration, taking effect on the next selection
func (m *Memory) Set(index uint8, broken, delay byte) error {
	return m.cal.Set(index, broken, delay)
}

// Compile-time interface satisfaction check.
var _ core.Storage = (*Memory)(nil)

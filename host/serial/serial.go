// Package serial opens the link to a paired instrument.
//
// The paired unit's receiver takes the configuration packet as a single raw
// byte. Port abstracts the device so tests can use a pipe or buffer.
package serial

import (
	"fmt"
	"io"
)

// Port represents a serial port interface
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate of the paired unit's receiver
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is the paired unit's receiver speed
const DefaultBaud = 9600

// DefaultConfig returns the configuration for a paired unit on device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100, // 100ms read timeout
	}
}

// SendPacket writes the one-byte configuration packet to w
func SendPacket(w io.Writer, packet byte) error {
	n, err := w.Write([]byte{packet})
	if err != nil {
		return fmt.Errorf("send packet %02X: %w", packet, err)
	}
	if n != 1 {
		return fmt.Errorf("send packet %02X: %w", packet, io.ErrShortWrite)
	}
	return nil
}

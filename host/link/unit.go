// Package link keeps the connection to a paired instrument and hands it the
// active mode's configuration packet.
package link

import (
	"fmt"
	"log/slog"

	"irtimer/host/serial"
)

// Unit represents the paired instrument on the other end of the link
type Unit struct {
	port serial.Port
	log  *slog.Logger

	// Connection state
	connected  bool
	lastPacket byte
	sent       int
}

// NewUnit creates a Unit that is not yet connected
func NewUnit(logger *slog.Logger) *Unit {
	if logger == nil {
		logger = slog.Default()
	}
	return &Unit{log: logger}
}

// Connect opens the link on device at the receiver's default baud rate
func (u *Unit) Connect(device string) error {
	return u.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig opens the link with a custom serial config
func (u *Unit) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect paired unit: %w", err)
	}
	u.Attach(port)
	u.log.Info("paired unit connected", "device", cfg.Device, "baud", cfg.Baud)
	return nil
}

// Attach uses an already open port, tests pass an in-memory one
func (u *Unit) Attach(port serial.Port) {
	u.port = port
	u.connected = true
}

// Connected reports whether a link is open
func (u *Unit) Connected() bool {
	return u.connected
}

// SendConfig transmits the configuration packet. Without a link it only
// records the packet, so the simulator runs the same with or without one.
func (u *Unit) SendConfig(packet byte) error {
	u.lastPacket = packet
	if !u.connected {
		return nil
	}
	if err := serial.SendPacket(u.port, packet); err != nil {
		return err
	}
	if err := u.port.Flush(); err != nil {
		return fmt.Errorf("flush packet: %w", err)
	}
	u.sent++
	u.log.Debug("packet sent", "packet", fmt.Sprintf("0x%02X", packet))
	return nil
}

// LastPacket returns the most recent packet handed to SendConfig
func (u *Unit) LastPacket() byte {
	return u.lastPacket
}

// Sent returns how many packets went over the link
func (u *Unit) Sent() int {
	return u.sent
}

// Close closes the link
func (u *Unit) Close() error {
	if !u.connected {
		return nil
	}
	u.connected = false
	return u.port.Close()
}

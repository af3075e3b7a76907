//go:build rp2040

package main

import (
	"machine"

	"irtimer/core"
)

// Pin assignments
const (
	pinMasterBeam   = machine.GPIO2
	pinSlaveBeam    = machine.GPIO3
	pinMasterButton = machine.GPIO4
	pinSlaveButton  = machine.GPIO5
	pinBuzzer       = machine.GPIO15
	pinDisplayCLK   = machine.GPIO16
	pinDisplayDIO   = machine.GPIO17
	pinLinkTX       = machine.GPIO0
	pinLinkRX       = machine.GPIO1
)

// events is fed by the pin interrupts and drained by the main loop
var events core.EventQueue

// initInputs configures the beam receivers and buttons. A receiver output
// goes high when its beam is interrupted, buttons pull low when pressed.
func initInputs() {
	beams := []struct {
		pin machine.Pin
		ev  core.Event
	}{
		{pinMasterBeam, core.EventMasterBroken},
		{pinSlaveBeam, core.EventSlaveBroken},
	}
	for _, b := range beams {
		ev := b.ev
		b.pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
		b.pin.SetInterrupt(machine.PinRising, func(machine.Pin) {
			events.Push(ev)
		})
	}

	pinMasterButton.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	pinSlaveButton.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
}

// armButtons routes button presses to the event queue. Until then the
// buttons are polled by the chooser.
func armButtons() {
	pinMasterButton.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		events.Push(core.EventMasterButton)
	})
	pinSlaveButton.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		events.Push(core.EventSlaveButton)
	})
}

func pressed(p machine.Pin) bool {
	return !p.Get()
}

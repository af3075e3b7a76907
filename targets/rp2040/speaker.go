//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/buzzer"
)

// beeper drives a piezo buzzer for a number of MS10 ticks. Sound only arms
// the countdown, the main loop calls tick.
type beeper struct {
	dev       buzzer.Device
	remaining uint8
}

func newBeeper() *beeper {
	pinBuzzer.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b := &beeper{dev: buzzer.New(pinBuzzer)}
	b.dev.Off()
	return b
}

// Sound implements core.Speaker
func (b *beeper) Sound(ticks uint8) {
	b.remaining = ticks
	if ticks == 0 {
		b.dev.Off()
		return
	}
	b.dev.On()
}

func (b *beeper) tick() {
	if b.remaining == 0 {
		return
	}
	b.remaining--
	if b.remaining == 0 {
		b.dev.Off()
	}
}

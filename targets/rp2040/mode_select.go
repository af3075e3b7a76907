//go:build rp2040

package main

import (
	"machine"
	"time"

	"irtimer/core"
)

// chooser lets the operator pick a number with the two buttons: master
// steps the value, slave confirms it. It implements core.Prompt.
type chooser struct {
	panel *panel
}

const debounce = 30 * time.Millisecond

// Choose blocks until a value in [0, max] is confirmed
func (c chooser) Choose(max uint8) uint8 {
	var v uint8
	c.panel.number(v)
	for {
		switch {
		case pressed(pinMasterButton):
			if v >= max {
				v = 0
			} else {
				v++
			}
			c.panel.number(v)
			waitRelease(pinMasterButton)
		case pressed(pinSlaveButton):
			waitRelease(pinSlaveButton)
			return v
		}
		time.Sleep(debounce)
	}
}

func waitRelease(p machine.Pin) {
	time.Sleep(debounce)
	for pressed(p) {
		time.Sleep(debounce)
	}
}

// chooseMode asks for the mode index at boot
func chooseMode(c chooser) uint8 {
	return c.Choose(core.NumModes - 1)
}

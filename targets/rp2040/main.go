//go:build rp2040

package main

import (
	"machine"
	"time"

	"irtimer/core"
)

// linkUART carries the configuration packet to the paired unit
var linkUART = machine.UART0

func main() {
	// Disable watchdog on boot to clear any previous state
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	core.SetDebugWriter(func(s string) {
		machine.Serial.Write([]byte(s + "\r\n"))
	})

	linkUART.Configure(machine.UARTConfig{
		BaudRate: 9600,
		TX:       pinLinkTX,
		RX:       pinLinkRX,
	})

	initInputs()
	display := core.NewSegmentDisplay()
	pnl := newPanel()
	beep := newBeeper()
	prompt := chooser{panel: pnl}

	in := core.NewInstrument(core.Board{
		Display: display,
		Speaker: beep,
		Storage: loadCalibration(),
		Prompt:  prompt,
	})

	m, err := in.Select(chooseMode(prompt))
	if err != nil {
		core.DebugPrintln("[MODE] " + err.Error())
		m, _ = in.Select(core.ModeTimer1)
	}
	linkUART.WriteByte(m.Packet)

	armButtons()
	events.Reset()

	divider := core.NewTickDivider(core.TickMicros)
	var dropped uint32
	for {
		in.Drain(&events)

		n := divider.Advance(GetHardwareTime())
		for i := 0; i < n; i++ {
			in.Dispatch(core.EventMS10)
			beep.tick()
		}

		if display.TakeRefresh() {
			pnl.render(display, &m.Settings)
		}

		if d := events.Dropped(); d != dropped {
			dropped = d
			core.DebugPrintln("[EVENTS] queue overflow")
			in.Ring().Dump()
		}

		time.Sleep(100 * time.Microsecond)
	}
}

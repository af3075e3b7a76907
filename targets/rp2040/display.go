//go:build rp2040

package main

import (
	"tinygo.org/x/drivers/tm1637"

	"irtimer/core"
)

// panel draws a core.SegmentDisplay on a four digit TM1637 module. The
// module has a single colon, it lights for the separator or any indicator dot.
type panel struct {
	dev tm1637.Device
}

func newPanel() *panel {
	p := &panel{dev: tm1637.New(pinDisplayCLK, pinDisplayDIO, 5)}
	p.dev.Configure()
	p.dev.ClearDisplay()
	return p
}

// render draws d using the enabled digit pairs in ds
func (p *panel) render(d *core.SegmentDisplay, ds *core.DisplaySettings) {
	digits := d.Digits()
	colon := ds.ShowSeparator() || ds.ShowDots() && ds.Init != 0

	if !ds.ShowLS() && !ds.ShowMS() {
		p.dev.ClearDisplay()
		return
	}
	p.dev.DisplayClock(uint8(digits[3]*10+digits[2]), uint8(digits[1]*10+digits[0]), colon)
}

// number shows n right aligned, used by the chooser
func (p *panel) number(n uint8) {
	p.dev.DisplayNumber(int16(n))
}

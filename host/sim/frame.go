package sim

import (
	"fmt"
	"strings"

	"irtimer/core"
)

// Frame is what the operator sees after a redraw
type Frame struct {
	Digits    [core.NumDigits]uint8 // d0 first
	Dots      [core.NumDigits]bool  // indexed like Digits
	ShowLS    bool
	ShowMS    bool
	Separator bool
	Frozen    bool

	Selected bool
	Mode     uint8
	Kind     core.Kind
	Packet   uint8
	Ticks    uint32
}

// String renders the digits most significant first, e.g. "12:34." with a
// '.' after each lit dot. Disabled digit pairs render as blanks.
func (f Frame) String() string {
	var b strings.Builder
	digit := func(i int, show bool) {
		if show {
			b.WriteByte('0' + f.Digits[i]%10)
		} else {
			b.WriteByte(' ')
		}
		if f.Dots[i] {
			b.WriteByte('.')
		}
	}
	digit(3, f.ShowMS)
	digit(2, f.ShowMS)
	if f.Separator {
		b.WriteByte(':')
	} else {
		b.WriteByte(' ')
	}
	digit(1, f.ShowLS)
	digit(0, f.ShowLS)
	return b.String()
}

// Status is a one-line summary of the active mode
func (f Frame) Status() string {
	if !f.Selected {
		return "no mode selected"
	}
	s := fmt.Sprintf("mode %d %s packet=0x%02X ticks=%d", f.Mode, f.Kind, f.Packet, f.Ticks)
	if f.Frozen {
		s += " frozen"
	}
	return s
}

func snapshot(d *core.SegmentDisplay, in *core.Instrument) Frame {
	f := Frame{
		Digits: d.Digits(),
		Frozen: d.Frozen(),
		Ticks:  in.Ticks(),
	}
	m := in.Mode()
	if m == nil {
		return f
	}
	f.Selected = true
	f.Mode = m.Index
	f.Kind = m.Handler.Kind()
	f.Packet = m.Packet
	f.ShowLS = m.Settings.ShowLS()
	f.ShowMS = m.Settings.ShowMS()
	f.Separator = m.Settings.ShowSeparator()
	if m.Settings.ShowDots() {
		for i := range f.Dots {
			f.Dots[i] = m.Settings.Dot(uint8(i))
		}
	}
	return f
}

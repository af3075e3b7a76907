package core

import "fmt"

// NumDigits is the number of digit fields on the instrument display
const NumDigits = 4

// SegmentDisplay is the in-memory display model. Hardware targets and the
// simulator render its fields, tests inspect them directly.
//
// Every mutation marks the display for refresh. While frozen the fields keep
// changing but TakeRefresh withholds the redraw.
type SegmentDisplay struct {
	digits      [NumDigits]uint8
	frozen      bool
	needRefresh bool
}

// NewSegmentDisplay returns a zeroed display with a pending refresh
func NewSegmentDisplay() *SegmentDisplay {
	return &SegmentDisplay{needRefresh: true}
}

// Zero clears every field
func (d *SegmentDisplay) Zero() {
	d.digits = [NumDigits]uint8{}
	d.needRefresh = true
}

// Set writes the four fields directly, d0 is least significant
func (d *SegmentDisplay) Set(d0, d1, d2, d3 uint8) {
	d.digits = [NumDigits]uint8{d0, d1, d2, d3}
	d.needRefresh = true
}

// Increase adds one to d0 and carries upward. Field i rolls over at moduli[i];
// fields beyond the listed moduli are plain decimal. The result reports
// whether the last listed field rolled over.
func (d *SegmentDisplay) Increase(moduli ...uint8) bool {
	d.needRefresh = true
	rolled := false
	for i := 0; i < NumDigits; i++ {
		mod := uint8(10)
		if i < len(moduli) && moduli[i] != 0 {
			mod = moduli[i]
		}
		d.digits[i]++
		if d.digits[i] < mod {
			return rolled
		}
		d.digits[i] = 0
		if i == len(moduli)-1 {
			rolled = true
		}
	}
	return rolled
}

// IncreaseLS increments the two-digit lower counter d1d0, wrapping at 100
func (d *SegmentDisplay) IncreaseLS() {
	d.increasePair(0)
}

// IncreaseMS increments the two-digit upper counter d3d2, wrapping at 100
func (d *SegmentDisplay) IncreaseMS() {
	d.increasePair(2)
}

func (d *SegmentDisplay) increasePair(low int) {
	d.needRefresh = true
	d.digits[low]++
	if d.digits[low] < 10 {
		return
	}
	d.digits[low] = 0
	d.digits[low+1]++
	if d.digits[low+1] >= 10 {
		d.digits[low+1] = 0
	}
}

// SetFrozen suspends or resumes visual updates. Unfreezing schedules a redraw
// so the operator sees the value that accumulated meanwhile.
func (d *SegmentDisplay) SetFrozen(frozen bool) {
	if d.frozen && !frozen {
		d.needRefresh = true
	}
	d.frozen = frozen
}

// Frozen reports whether visual updates are suspended
func (d *SegmentDisplay) Frozen() bool {
	return d.frozen
}

// RequestRefresh schedules a redraw, used when only the dots changed
func (d *SegmentDisplay) RequestRefresh() {
	d.needRefresh = true
}

// NeedRefresh reports whether a redraw is pending, frozen or not
func (d *SegmentDisplay) NeedRefresh() bool {
	return d.needRefresh
}

// TakeRefresh returns true once per pending redraw while not frozen
func (d *SegmentDisplay) TakeRefresh() bool {
	if d.frozen || !d.needRefresh {
		return false
	}
	d.needRefresh = false
	return true
}

// Digits returns the four fields, d0 first
func (d *SegmentDisplay) Digits() [NumDigits]uint8 {
	return d.digits
}

// Value returns the fields as a decimal number d3d2d1d0
func (d *SegmentDisplay) Value() int {
	return int(d.digits[3])*1000 + int(d.digits[2])*100 + int(d.digits[1])*10 + int(d.digits[0])
}

// String formats the fields most significant first as "d3d2:d1d0"
func (d *SegmentDisplay) String() string {
	return fmt.Sprintf("%d%d:%d%d", d.digits[3], d.digits[2], d.digits[1], d.digits[0])
}

// Compile-time interface satisfaction check.
var _ Display = (*SegmentDisplay)(nil)

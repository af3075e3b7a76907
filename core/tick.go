package core

// TickMicros is the length of one MS10 tick in microseconds
const TickMicros = 10000

// MaxCatchUpTicks bounds how many ticks one Advance call reports. A loop that
// stalled longer than this drops the excess instead of replaying it in a burst.
const MaxCatchUpTicks = 10

// TickDivider turns a free-running microsecond counter into whole MS10 ticks.
// The counter may wrap at 32 bits.
type TickDivider struct {
	period  uint32
	next    uint32
	started bool
	skipped uint32
}

// NewTickDivider returns a divider producing one tick per period microseconds
func NewTickDivider(period uint32) *TickDivider {
	if period == 0 {
		period = TickMicros
	}
	return &TickDivider{period: period}
}

// Advance returns how many ticks became due at time now. The first call only
// starts the phase and returns 0.
func (d *TickDivider) Advance(now uint32) int {
	if !d.started {
		d.started = true
		d.next = now + d.period
		return 0
	}

	n := 0
	for int32(now-d.next) >= 0 {
		if n == MaxCatchUpTicks {
			// too far behind, resync to now
			d.skipped += (now-d.next)/d.period + 1
			d.next = now + d.period
			break
		}
		n++
		d.next += d.period
	}
	return n
}

// Skipped returns how many ticks were dropped because the loop fell behind
func (d *TickDivider) Skipped() uint32 {
	return d.skipped
}

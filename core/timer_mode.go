package core

// Timer mode tick constants, in 10ms ticks
const (
	LapFreezeTicks = 255 // how long a lap split stays on the display
	SecondTicks    = 100 // ticks per second once past the first minute
)

// TimerHandler is the stopwatch with lap splits.
//
// States: zeroed idle (initial), active, stopped (not zeroed). A beam break
// starts the clock, further breaks take lap splits until the configured lap
// count is used up, then the next break stops it. A button press on a stopped
// timer zeroes it.
type TimerHandler struct {
	display Display
	laps    uint8

	active        bool
	zeroed        bool
	minutes       bool  // past 60s, display shows mm:ss
	secondTimeout uint8 // ticks until the next seconds step in minutes mode
	lapTimeout    uint8 // ticks until a frozen lap split is released
	lapsRemaining uint8
}

// NewTimerHandler creates a zeroed, idle timer that takes up to laps splits per run
func NewTimerHandler(display Display, laps uint8) *TimerHandler {
	return &TimerHandler{
		display: display,
		laps:    laps,
		zeroed:  true,
	}
}

// Handle processes one event
func (t *TimerHandler) Handle(ev Event) {
	switch {
	case t.active:
		t.handleActive(ev)
	case t.zeroed:
		if ev.IsBroken() {
			t.active = true
			t.zeroed = false
			t.lapsRemaining = t.laps
		}
	default:
		if ev.IsButton() {
			t.zeroed = true
			t.display.Zero()
			t.minutes = false
		}
	}
}

func (t *TimerHandler) handleActive(ev Event) {
	switch {
	case ev.IsBroken():
		if t.lapsRemaining == 0 {
			t.active = false
			t.display.SetFrozen(false)
			t.display.RequestRefresh()
			return
		}
		t.lapsRemaining--
		t.lapTimeout = LapFreezeTicks
		t.display.SetFrozen(true)

	case ev == EventMS10:
		if t.lapTimeout > 0 {
			t.lapTimeout--
		}
		if t.lapTimeout == 0 {
			t.display.SetFrozen(false)
		}
		t.advance()
	}
}

// advance moves the running clock forward by one tick
func (t *TimerHandler) advance() {
	if !t.minutes {
		// centiseconds, deciseconds, seconds, tens of seconds
		if t.display.Increase(10, 10, 10, 6) {
			t.display.Set(0, 0, 1, 0)
			t.minutes = true
			t.secondTimeout = SecondTicks
		}
		return
	}

	t.secondTimeout--
	if t.secondTimeout == 0 {
		t.secondTimeout = SecondTicks
		t.display.Increase(10, 6)
	}
}

// Kind returns KindTimer
func (t *TimerHandler) Kind() Kind { return KindTimer }

// Active reports whether the clock is running
func (t *TimerHandler) Active() bool { return t.active }

// Zeroed reports whether the timer is idle with a zeroed display
func (t *TimerHandler) Zeroed() bool { return t.zeroed }

// Minutes reports whether the clock has passed the first minute
func (t *TimerHandler) Minutes() bool { return t.minutes }

// LapsRemaining returns how many lap splits are left in the current run
func (t *TimerHandler) LapsRemaining() uint8 { return t.lapsRemaining }

func (t *TimerHandler) sealed() {}

package core

// Alarm timing, in 10ms ticks. One full cycle is 2s: on for the first half,
// off for the second.
const (
	AlarmCycleTicks = 200
	AlarmHalfTicks  = 100
	AlarmSoundTicks = 255
)

// AlarmHandler latches on any beam break and then beeps and blinks every
// second until a button is pressed.
type AlarmHandler struct {
	display Display
	speaker Speaker
	ds      *DisplaySettings

	triggered bool
	timeout   uint8
}

// NewAlarmHandler creates an armed alarm. The first tick after a trigger fires
// immediately.
func NewAlarmHandler(display Display, speaker Speaker, ds *DisplaySettings) *AlarmHandler {
	return &AlarmHandler{
		display: display,
		speaker: speaker,
		ds:      ds,
		timeout: 1,
	}
}

// Handle processes one event
func (a *AlarmHandler) Handle(ev Event) {
	switch {
	case ev.IsBroken():
		// re-triggering keeps the running countdown
		a.triggered = true

	case ev.IsButton():
		a.triggered = false
		a.ds.Init = 1 << DotLLS
		a.display.Set(0, 0, 0, 0)
		a.timeout = 1

	case ev == EventMS10 && a.triggered:
		a.timeout--
		switch a.timeout {
		case 0:
			a.speaker.Sound(AlarmSoundTicks)
			a.timeout = AlarmCycleTicks
			a.ds.Init = AllDots
			a.display.Set(8, 8, 8, 8)
		case AlarmHalfTicks:
			a.speaker.Sound(AlarmSoundTicks)
			a.ds.Init = 1 << DotLLS
			a.display.Set(0, 0, 0, 0)
		}
	}
}

// Kind returns KindAlarm
func (a *AlarmHandler) Kind() Kind { return KindAlarm }

// Triggered reports whether the alarm is latched
func (a *AlarmHandler) Triggered() bool { return a.triggered }

// Timeout returns the ticks left until the next on/off edge
func (a *AlarmHandler) Timeout() uint8 { return a.timeout }

func (a *AlarmHandler) sealed() {}

package core

// ConfirmTimeoutTicks is how long a beam break waits for its button, 10s
const ConfirmTimeoutTicks = 1000

// confirmLane is the per-lane confirmation state machine: idle or pending.
type confirmLane struct {
	broken   Event
	button   Event
	dot      uint8
	increase func()

	pending bool
	timeout uint16
}

func (l *confirmLane) handle(ev Event, ds *DisplaySettings, display Display) {
	if !l.pending {
		if ev == l.broken {
			l.pending = true
			ds.SetDot(l.dot)
			display.RequestRefresh()
			l.timeout = ConfirmTimeoutTicks
		}
		return
	}

	switch ev {
	case EventMS10:
		l.timeout--
		if l.timeout == 0 {
			// expired, the break is dropped
			l.pending = false
			ds.ClearDot(l.dot)
			display.RequestRefresh()
		}
	case l.button:
		l.pending = false
		ds.ClearDot(l.dot)
		l.increase()
	}
}

// ConfirmCounterHandler counts beam breaks that the operator confirms with the
// lane's button within ConfirmTimeoutTicks. A pending break lights the lane's
// indicator dot (DotLLS for master, DotMMS for slave).
type ConfirmCounterHandler struct {
	ds      *DisplaySettings
	display Display
	master  confirmLane
	slave   confirmLane
}

// NewConfirmCounterHandler creates a handler with both lanes idle.
// ds is the active mode's settings, whose dots the handler drives.
func NewConfirmCounterHandler(display Display, ds *DisplaySettings) *ConfirmCounterHandler {
	return &ConfirmCounterHandler{
		ds:      ds,
		display: display,
		master: confirmLane{
			broken:   EventMasterBroken,
			button:   EventMasterButton,
			dot:      DotLLS,
			increase: display.IncreaseLS,
		},
		slave: confirmLane{
			broken:   EventSlaveBroken,
			button:   EventSlaveButton,
			dot:      DotMMS,
			increase: display.IncreaseMS,
		},
	}
}

// Handle feeds the event to both lanes
func (c *ConfirmCounterHandler) Handle(ev Event) {
	c.master.handle(ev, c.ds, c.display)
	c.slave.handle(ev, c.ds, c.display)
}

// Kind returns KindConfirmCounter
func (c *ConfirmCounterHandler) Kind() Kind { return KindConfirmCounter }

// MasterPending reports whether a master break awaits confirmation
func (c *ConfirmCounterHandler) MasterPending() bool { return c.master.pending }

// SlavePending reports whether a slave break awaits confirmation
func (c *ConfirmCounterHandler) SlavePending() bool { return c.slave.pending }

func (c *ConfirmCounterHandler) sealed() {}

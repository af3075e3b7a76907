package core

// Instrument owns the single active Mode and feeds it events. It is not safe
// for concurrent use: callers deliver one event at a time from one goroutine
// or the firmware main loop.
type Instrument struct {
	board Board
	mode  *Mode
	ticks uint32
	ring  EventRing
}

// NewInstrument creates an instrument with no mode selected
func NewInstrument(b Board) *Instrument {
	return &Instrument{board: b}
}

// Select replaces the active mode with a freshly built one for index.
// The display is zeroed and unfrozen for the new mode. On error the
// previous mode stays active.
func (in *Instrument) Select(index uint8) (*Mode, error) {
	m, err := SelectMode(index, in.board)
	if err != nil {
		DebugPrintln("[MODE] select failed index=" + itoa(int(index)))
		return nil, err
	}

	in.board.Display.SetFrozen(false)
	in.board.Display.Zero()
	in.mode = m
	in.ticks = 0

	DebugPrintln("[MODE] select index=" + itoa(int(index)) +
		" kind=" + m.Handler.Kind().String() +
		" ir_delay=" + itoa(int(m.IRDelay)) +
		" ir_broken=" + itoa(int(m.IRBroken)) +
		" laps=" + itoa(int(m.Laps)) +
		" packet=" + itoa(int(m.Packet)))
	return m, nil
}

// Dispatch delivers ev to the active mode. Returns false when no mode is
// selected yet.
func (in *Instrument) Dispatch(ev Event) bool {
	if in.mode == nil {
		return false
	}
	if ev == EventMS10 {
		in.ticks++
	} else {
		DebugAsync("[EVENT] " + ev.String() + " tick=" + utoa(in.ticks))
	}
	in.ring.Record(EventRecord{Tick: in.ticks, Mode: in.mode.Index, Event: ev})
	in.mode.Handle(ev)
	return true
}

// Drain dispatches every queued event in order and returns how many ran
func (in *Instrument) Drain(q *EventQueue) int {
	n := 0
	for {
		ev, ok := q.Pop()
		if !ok {
			return n
		}
		if in.Dispatch(ev) {
			n++
		}
	}
}

// Mode returns the active mode, nil before the first Select
func (in *Instrument) Mode() *Mode {
	return in.mode
}

// Ticks returns the MS10 ticks delivered since the last Select
func (in *Instrument) Ticks() uint32 {
	return in.ticks
}

// Ring returns the post-mortem ring of dispatched events
func (in *Instrument) Ring() *EventRing {
	return &in.ring
}

// Board returns the collaborators the instrument was built with
func (in *Instrument) Board() Board {
	return in.board
}

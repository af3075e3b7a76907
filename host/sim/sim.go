// Package sim runs the instrument on the host. A single command loop owns
// the instrument; beam, button and tick events reach it over channels.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"irtimer/core"
	"irtimer/host/link"
	"irtimer/host/trace"
	"irtimer/storage"
)

// CommandType enumerates the requests the command loop understands
type CommandType int

const (
	CmdEvent    CommandType = iota // deliver Event
	CmdTicks                       // deliver Count MS10 ticks
	CmdSelect                      // select Mode with Laps
	CmdSnapshot                    // report the current frame
	CmdDump                        // dump the event ring to the debug writer
)

func (c CommandType) String() string {
	switch c {
	case CmdEvent:
		return "event"
	case CmdTicks:
		return "ticks"
	case CmdSelect:
		return "select"
	case CmdSnapshot:
		return "snapshot"
	case CmdDump:
		return "dump"
	default:
		return fmt.Sprintf("CMD(%d)", int(c))
	}
}

// Command is a message for the command loop. Reply is optional.
type Command struct {
	Type  CommandType
	Event core.Event
	Count int
	Mode  uint8
	Laps  uint8
	Reply chan Reply
}

// Reply carries the frame after the command ran
type Reply struct {
	Frame Frame
	Err   error
}

// Options configures a Simulator. Zero values pick host defaults.
type Options struct {
	Storage core.Storage
	Speaker core.Speaker
	Link    *link.Unit    // receives the packet on every selection
	Trace   *trace.Writer // records every dispatched event
	Logger  *slog.Logger

	// Ticks drives the MS10 clock, a 10ms ticker when nil
	Ticks <-chan time.Time

	// OnRender is called from the command loop after each redraw
	OnRender func(Frame)
}

// Simulator is the host instrument
type Simulator struct {
	opts    Options
	log     *slog.Logger
	display *core.SegmentDisplay
	in      *core.Instrument
	divider *core.TickDivider
	cmdCh   chan Command
	laps    uint8 // answer for the lap prompt of the pending selection
}

// New creates a simulator with no mode selected
func New(opts Options) *Simulator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory(storage.DefaultCalibration)
	}
	if opts.Speaker == nil {
		logger := opts.Logger
		opts.Speaker = core.SpeakerFunc(func(ticks uint8) {
			logger.Debug("sound", "ticks", ticks)
		})
	}

	s := &Simulator{
		opts:    opts,
		log:     opts.Logger,
		display: core.NewSegmentDisplay(),
		divider: core.NewTickDivider(core.TickMicros),
		cmdCh:   make(chan Command, 32),
	}
	s.in = core.NewInstrument(core.Board{
		Display: s.display,
		Speaker: opts.Speaker,
		Storage: opts.Storage,
		Prompt:  core.PromptFunc(func(uint8) uint8 { return s.laps }),
	})
	return s
}

// Run executes the command loop until ctx is cancelled
func (s *Simulator) Run(ctx context.Context) error {
	ticks := s.opts.Ticks
	if ticks == nil {
		t := time.NewTicker(core.TickMicros * time.Microsecond)
		defer t.Stop()
		ticks = t.C
	}

	var epoch time.Time
	for {
		select {
		case <-ctx.Done():
			if skipped := s.divider.Skipped(); skipped > 0 {
				s.log.Warn("ticks skipped", "count", skipped)
			}
			return nil
		case now := <-ticks:
			if epoch.IsZero() {
				epoch = now
			}
			n := s.divider.Advance(uint32(now.Sub(epoch).Microseconds()))
			for i := 0; i < n; i++ {
				s.dispatch(core.EventMS10)
			}
			s.render()
		case cmd := <-s.cmdCh:
			reply := s.execute(cmd)
			s.render()
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- reply:
				default:
				}
			}
		}
	}
}

// Enqueue posts cmd without waiting for it to run. If the loop stays busy
// for too long the command is dropped.
func (s *Simulator) Enqueue(cmd Command) {
	select {
	case s.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		s.log.Warn("command dropped", "type", cmd.Type)
	}
}

// Do posts cmd and waits for its reply
func (s *Simulator) Do(ctx context.Context, cmd Command) (Reply, error) {
	cmd.Reply = make(chan Reply, 1)
	select {
	case s.cmdCh <- cmd:
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
	select {
	case r := <-cmd.Reply:
		return r, r.Err
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
}

// Event delivers one event and waits for it to be handled
func (s *Simulator) Event(ctx context.Context, ev core.Event) (Frame, error) {
	r, err := s.Do(ctx, Command{Type: CmdEvent, Event: ev})
	return r.Frame, err
}

// Ticks delivers n MS10 ticks at once
func (s *Simulator) Ticks(ctx context.Context, n int) (Frame, error) {
	r, err := s.Do(ctx, Command{Type: CmdTicks, Count: n})
	return r.Frame, err
}

// Select switches to mode index. laps answers the lap prompt of the timer modes.
func (s *Simulator) Select(ctx context.Context, index, laps uint8) (Frame, error) {
	r, err := s.Do(ctx, Command{Type: CmdSelect, Mode: index, Laps: laps})
	return r.Frame, err
}

// Snapshot returns the current frame
func (s *Simulator) Snapshot(ctx context.Context) (Frame, error) {
	r, err := s.Do(ctx, Command{Type: CmdSnapshot})
	return r.Frame, err
}

func (s *Simulator) execute(cmd Command) Reply {
	var err error
	switch cmd.Type {
	case CmdEvent:
		s.dispatch(cmd.Event)
	case CmdTicks:
		for i := 0; i < cmd.Count; i++ {
			s.dispatch(core.EventMS10)
		}
	case CmdSelect:
		err = s.selectMode(cmd.Mode, cmd.Laps)
	case CmdSnapshot:
	case CmdDump:
		s.in.Ring().Dump()
	default:
		err = fmt.Errorf("unknown command %s", cmd.Type)
	}
	return Reply{Frame: snapshot(s.display, s.in), Err: err}
}

func (s *Simulator) selectMode(index, laps uint8) error {
	s.laps = laps
	m, err := s.in.Select(index)
	if err != nil {
		return err
	}
	s.log.Info("mode selected",
		"mode", m.Index,
		"kind", m.Handler.Kind(),
		"laps", m.Laps,
		"packet", fmt.Sprintf("0x%02X", m.Packet))

	if s.opts.Trace != nil {
		if err := s.opts.Trace.Select(m.Index, m.Laps); err != nil {
			s.log.Warn("trace select", "err", err)
		}
	}
	if s.opts.Link != nil {
		if err := s.opts.Link.SendConfig(m.Packet); err != nil {
			return fmt.Errorf("send config packet: %w", err)
		}
	}
	return nil
}

func (s *Simulator) dispatch(ev core.Event) {
	if !s.in.Dispatch(ev) {
		return
	}
	if s.opts.Trace != nil {
		if err := s.opts.Trace.Event(ev); err != nil {
			s.log.Warn("trace event", "event", ev, "err", err)
		}
	}
}

func (s *Simulator) render() {
	if s.opts.OnRender == nil || !s.display.TakeRefresh() {
		return
	}
	s.opts.OnRender(snapshot(s.display, s.in))
}

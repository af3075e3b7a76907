package sim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irtimer/core"
	"irtimer/host/link"
	"irtimer/host/trace"
	"irtimer/storage"
)

type bufferPort struct {
	bytes.Buffer
}

func (p *bufferPort) Close() error { return nil }
func (p *bufferPort) Flush() error { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startSim runs s until the test ends
func startSim(t *testing.T, s *Simulator) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return ctx
}

func TestCounterThroughCommandLoop(t *testing.T) {
	s := New(Options{Logger: quietLogger(), Ticks: make(chan time.Time)})
	ctx := startSim(t, s)

	f, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.False(t, f.Selected)
	assert.Equal(t, "no mode selected", f.Status())

	_, err = s.Select(ctx, core.ModeCounter1, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = s.Event(ctx, core.EventMasterBroken)
		require.NoError(t, err)
	}
	_, err = s.Event(ctx, core.EventSlaveBroken)
	require.NoError(t, err)
	f, err = s.Event(ctx, core.EventSlaveBroken)
	require.NoError(t, err)

	assert.Equal(t, [core.NumDigits]uint8{3, 0, 2, 0}, f.Digits)
	assert.Equal(t, core.KindCounter, f.Kind)
	assert.Equal(t, "02 03", f.String())
}

func TestSelectSendsPacketAndRecordsTrace(t *testing.T) {
	var cal storage.Calibration
	require.NoError(t, cal.Set(core.ModeTimer1, 3, 2))

	port := &bufferPort{}
	unit := link.NewUnit(quietLogger())
	unit.Attach(port)

	var traceBuf bytes.Buffer
	tw, err := trace.NewWriter(&traceBuf, trace.NewHeader(nil))
	require.NoError(t, err)

	s := New(Options{
		Storage: storage.NewMemory(cal),
		Link:    unit,
		Trace:   tw,
		Logger:  quietLogger(),
		Ticks:   make(chan time.Time),
	})
	ctx := startSim(t, s)

	f, err := s.Select(ctx, core.ModeTimer1, 4)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x43), f.Packet)
	assert.Equal(t, []byte{0x43}, port.Bytes())
	assert.Equal(t, 1, unit.Sent())

	_, err = s.Event(ctx, core.EventMasterBroken)
	require.NoError(t, err)
	_, err = s.Ticks(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	r, err := trace.NewReader(&traceBuf)
	require.NoError(t, err)
	var kinds []trace.RecordKind
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		kinds = append(kinds, rec.Kind)
		if rec.Kind == trace.RecordSelect {
			assert.Equal(t, uint8(4), rec.Laps)
		}
	}
	assert.Equal(t, []trace.RecordKind{trace.RecordSelect, trace.RecordEvent, trace.RecordTicks}, kinds)
}

func TestTickChannelDrivesClock(t *testing.T) {
	ticks := make(chan time.Time)
	s := New(Options{Logger: quietLogger(), Ticks: ticks})
	ctx := startSim(t, s)

	_, err := s.Select(ctx, core.ModeTimer1, 0)
	require.NoError(t, err)
	_, err = s.Event(ctx, core.EventSlaveBroken)
	require.NoError(t, err)

	epoch := time.Unix(1000, 0)
	for i := 0; i < 4; i++ {
		ticks <- epoch.Add(time.Duration(i) * 10 * time.Millisecond)
	}
	f, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), f.Ticks, "first tick only sets the phase")

	// a stalled loop catches up at most MaxCatchUpTicks
	ticks <- epoch.Add(200 * time.Millisecond)
	f, err = s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(3+core.MaxCatchUpTicks), f.Ticks)
	assert.Equal(t, [core.NumDigits]uint8{3, 1, 0, 0}, f.Digits)
	assert.Equal(t, "00:13", f.String())
}

func TestRenderSkipsFrozenDisplay(t *testing.T) {
	var (
		mu     sync.Mutex
		frames []Frame
	)
	s := New(Options{
		Logger: quietLogger(),
		Ticks:  make(chan time.Time),
		OnRender: func(f Frame) {
			mu.Lock()
			frames = append(frames, f)
			mu.Unlock()
		},
	})
	ctx := startSim(t, s)

	_, err := s.Select(ctx, core.ModeTimer1, 1)
	require.NoError(t, err)
	_, err = s.Event(ctx, core.EventMasterBroken)
	require.NoError(t, err)
	_, err = s.Ticks(ctx, 20)
	require.NoError(t, err)

	mu.Lock()
	before := len(frames)
	mu.Unlock()

	// lap split freezes the display
	f, err := s.Event(ctx, core.EventMasterBroken)
	require.NoError(t, err)
	require.True(t, f.Frozen)
	_, err = s.Ticks(ctx, 10)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, before, len(frames), "no redraw while frozen")
	require.NotEmpty(t, frames)
	assert.Equal(t, core.KindTimer, frames[0].Kind)
}

func TestSelectInvalidModeKeepsPrevious(t *testing.T) {
	s := New(Options{Logger: quietLogger(), Ticks: make(chan time.Time)})
	ctx := startSim(t, s)

	_, err := s.Select(ctx, core.ModeAlarm, 0)
	require.NoError(t, err)
	f, err := s.Select(ctx, core.NumModes, 0)
	assert.True(t, errors.Is(err, core.ErrInvalidMode), "got %v", err)
	assert.Equal(t, uint8(core.ModeAlarm), f.Mode)
}

func TestDoHonoursContext(t *testing.T) {
	s := New(Options{Logger: quietLogger(), Ticks: make(chan time.Time)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// nothing runs the loop, the buffered send succeeds but no reply comes
	_, err := s.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFrameString(t *testing.T) {
	f := Frame{
		Digits:    [core.NumDigits]uint8{4, 3, 2, 1},
		ShowLS:    true,
		ShowMS:    true,
		Separator: true,
	}
	f.Dots[0] = true
	f.Dots[3] = true
	assert.Equal(t, "1.2:34.", f.String())

	f.ShowMS = false
	f.Separator = false
	assert.Equal(t, " .  34.", f.String())
}

func TestAlarmFireShowsAllSegments(t *testing.T) {
	s := New(Options{Logger: quietLogger(), Ticks: make(chan time.Time)})
	ctx := startSim(t, s)

	f, err := s.Select(ctx, core.ModeAlarm, 0)
	require.NoError(t, err)
	armed := f.String()
	assert.Equal(t, "00 00.", armed)

	_, err = s.Event(ctx, core.EventMasterBroken)
	require.NoError(t, err)
	f, err = s.Ticks(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "8.8.:8.8.", f.String())

	f, err = s.Event(ctx, core.EventMasterButton)
	require.NoError(t, err)
	assert.Equal(t, armed, f.String(), "reset returns to the armed frame")
}

func TestFramePerMode(t *testing.T) {
	testCases := []struct {
		mode   uint8
		entry  string
		events []core.Event
		ticks  int
		after  string
	}{
		{core.ModeTimer1, "00:00", []core.Event{core.EventMasterBroken}, 1, "00:01"},
		{core.ModeTimer2, "00:00", []core.Event{core.EventSlaveBroken}, 1, "00:01"},
		{core.ModeCounter1, "00 00", []core.Event{core.EventMasterBroken}, 0, "00 01"},
		{core.ModeCounter2, "00 00", []core.Event{core.EventSlaveBroken}, 0, "01 00"},
		{core.ModeConfirm1, "00 00", []core.Event{core.EventMasterBroken}, 0, "00 00."},
		{core.ModeConfirm2, "00 00", []core.Event{core.EventSlaveBroken}, 0, "0.0 00"},
		{core.ModeAlarm, "00 00.", []core.Event{core.EventMasterBroken}, 1, "8.8.:8.8."},
		{core.ModeMeasure, "00:00", []core.Event{core.EventMasterBroken}, 1, "00:00"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("mode%d", tc.mode), func(t *testing.T) {
			s := New(Options{Logger: quietLogger(), Ticks: make(chan time.Time)})
			ctx := startSim(t, s)

			f, err := s.Select(ctx, tc.mode, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.entry, f.String(), "mode %d entry", tc.mode)

			for _, ev := range tc.events {
				f, err = s.Event(ctx, ev)
				require.NoError(t, err)
			}
			f, err = s.Ticks(ctx, tc.ticks)
			require.NoError(t, err)
			assert.Equal(t, tc.after, f.String(), "mode %d after first change", tc.mode)
		})
	}
}

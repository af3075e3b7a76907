package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"irtimer/core"
)

// Writer appends records to a trace. Not safe for concurrent use.
type Writer struct {
	enc    *cbor.Encoder
	closer io.Closer
	ticks  uint32 // pending coalesced MS10 run
	n      int
}

// NewWriter writes h to w and returns a writer for the records that follow
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	enc := encMode.NewEncoder(w)
	if err := enc.Encode(h); err != nil {
		return nil, fmt.Errorf("write trace header: %w", err)
	}
	tw := &Writer{enc: enc}
	if c, ok := w.(io.Closer); ok {
		tw.closer = c
	}
	return tw, nil
}

// Create truncates path and starts a trace there
func Create(path string, h Header) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	w, err := NewWriter(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// Event records one delivered event
func (w *Writer) Event(ev core.Event) error {
	if ev == core.EventMS10 {
		w.ticks++
		return nil
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return w.write(Record{Kind: RecordEvent, Event: ev})
}

// Select records a mode selection with the lap count the operator chose
func (w *Writer) Select(index, laps uint8) error {
	if err := w.Flush(); err != nil {
		return err
	}
	return w.write(Record{Kind: RecordSelect, Mode: index, Laps: laps})
}

// Flush writes out a pending tick run
func (w *Writer) Flush() error {
	if w.ticks == 0 {
		return nil
	}
	n := w.ticks
	w.ticks = 0
	return w.write(Record{Kind: RecordTicks, Count: n})
}

// Records returns how many records were written so far
func (w *Writer) Records() int {
	return w.n
}

// Close flushes pending ticks and closes the underlying file, if any
func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (w *Writer) write(rec Record) error {
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("write trace %s record: %w", rec.Kind, err)
	}
	w.n++
	return nil
}

package trace

import (
	"errors"
	"fmt"
	"io"

	"irtimer/core"
	"irtimer/storage"
)

// Replay feeds every record of r into a new instrument built on b and
// returns it with the number of events dispatched. Timer lap counts come
// from the recorded selections, so b.Prompt is ignored. When b.Storage is
// nil the calibration stored in the header is used.
func Replay(r *Reader, b core.Board) (*core.Instrument, int, error) {
	if b.Storage == nil {
		b.Storage = storage.NewMemory(storage.DefaultCalibration)
		if img := r.Header().Calibration; len(img) > 0 {
			mem, err := storage.Load(img)
			if err != nil {
				return nil, 0, fmt.Errorf("replay calibration: %w", err)
			}
			b.Storage = mem
		}
	}
	var laps uint8
	b.Prompt = core.PromptFunc(func(uint8) uint8 { return laps })

	in := core.NewInstrument(b)
	n := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return in, n, nil
		}
		if err != nil {
			return in, n, err
		}

		switch rec.Kind {
		case RecordSelect:
			laps = rec.Laps
			if _, err := in.Select(rec.Mode); err != nil {
				return in, n, fmt.Errorf("replay select: %w", err)
			}
		case RecordTicks:
			for i := uint32(0); i < rec.Count; i++ {
				if in.Dispatch(core.EventMS10) {
					n++
				}
			}
		case RecordEvent:
			if in.Dispatch(rec.Event) {
				n++
			}
		default:
			return in, n, fmt.Errorf("replay: unknown record kind %s", rec.Kind)
		}
	}
}

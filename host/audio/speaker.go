// Package audio plays the instrument's alert tone on the host sound card.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"irtimer/core"
)

// TickDuration is the length of one speaker tick
const TickDuration = 10 * time.Millisecond

// Speaker implements core.Speaker with a sine tone. A new Sound replaces the
// tone that is still playing, like re-arming a countdown.
type Speaker struct {
	sampleRate beep.SampleRate
	frequency  float64
	log        *slog.Logger

	mu     sync.Mutex
	sounds int
	last   uint8
}

// NewSpeaker initializes the sound card. On failure the returned error says
// why, and the caller may fall back to a Silent speaker.
func NewSpeaker(sampleRate int, frequency float64, logger *slog.Logger) (*Speaker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Speaker{
		sampleRate: sr,
		frequency:  frequency,
		log:        logger,
	}, nil
}

// Sound plays the tone for ticks * 10ms
func (s *Speaker) Sound(ticks uint8) {
	s.mu.Lock()
	s.sounds++
	s.last = ticks
	s.mu.Unlock()

	d := time.Duration(ticks) * TickDuration
	speaker.Clear()
	speaker.Play(beep.Take(s.sampleRate.N(d), Tone(s.sampleRate, s.frequency)))
	s.log.Debug("sound", "ticks", ticks, "duration", d)
}

// Count returns how many sounds were requested
func (s *Speaker) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sounds
}

// Close stops playback
func (s *Speaker) Close() {
	speaker.Clear()
}

// Tone is an endless sine wave at freq Hz
func Tone(sr beep.SampleRate, freq float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sr)
	var phase float64
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			v := 0.3 * math.Sin(phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += step
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
		return len(samples), true
	})
}

// Silent is a speaker without a sound card. It logs and counts instead.
type Silent struct {
	log *slog.Logger

	mu     sync.Mutex
	sounds int
	last   uint8
}

// NewSilent returns a Silent speaker logging to logger
func NewSilent(logger *slog.Logger) *Silent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Silent{log: logger}
}

// Sound records the request
func (s *Silent) Sound(ticks uint8) {
	s.mu.Lock()
	s.sounds++
	s.last = ticks
	s.mu.Unlock()
	s.log.Debug("beep", "ticks", ticks)
}

// Count returns how many sounds were requested
func (s *Silent) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sounds
}

// Last returns the duration of the most recent sound
func (s *Silent) Last() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Compile-time interface satisfaction checks.
var (
	_ core.Speaker = (*Speaker)(nil)
	_ core.Speaker = (*Silent)(nil)
)

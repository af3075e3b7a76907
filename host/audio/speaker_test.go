package audio

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneIsBoundedSine(t *testing.T) {
	sr := beep.SampleRate(8000)
	samples := make([][2]float64, 8000)

	n, ok := Tone(sr, 1000).Stream(samples)
	require.True(t, ok)
	require.Equal(t, len(samples), n)

	crossings := 0
	for i, s := range samples {
		assert.LessOrEqual(t, math.Abs(s[0]), 0.3+1e-9)
		assert.Equal(t, s[0], s[1], "mono tone on both channels")
		if i > 0 && samples[i-1][0] < 0 && s[0] >= 0 {
			crossings++
		}
	}
	// one upward zero crossing per period, 1000 periods in one second
	assert.InDelta(t, 1000, crossings, 2)
}

func TestToneTakeLength(t *testing.T) {
	sr := beep.SampleRate(1000)
	s := beep.Take(sr.N(255*TickDuration), Tone(sr, 100))

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sr.N(255*TickDuration), total)
	assert.InDelta(t, 2550, total, 1)
}

func TestSilentCounts(t *testing.T) {
	s := NewSilent(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Sound(255)
	s.Sound(10)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, uint8(10), s.Last())
}

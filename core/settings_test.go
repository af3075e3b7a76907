package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplaySettingsRendering(t *testing.T) {
	testCases := []struct {
		name          string
		flags         []bool
		init          uint8
		ls, ms, sep   bool
		dots          bool
		wantEntryDots uint8
	}{
		{"timer", []bool{true, true, true, false, false, false, true}, 0, true, true, true, true, 0},
		{"counter", []bool{true, false, true, false, false, false, true}, 0, true, true, false, true, 0},
		{"measure", []bool{true, true, true}, 0, true, true, true, false, 0},
		{"alarm armed", []bool{false, false, false, false, true}, 1 << DotLLS, true, true, false, true, 1 << DotLLS},
		{"alarm fired", []bool{false, false, false, false, true}, AllDots, true, true, true, true, 1 << DotLLS},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds := NewDisplaySettings(tc.flags...)
			assert.Equal(t, tc.wantEntryDots, ds.Init, "entry dots")
			ds.Init = tc.init

			assert.Equal(t, tc.ls, ds.ShowLS(), "ShowLS")
			assert.Equal(t, tc.ms, ds.ShowMS(), "ShowMS")
			assert.Equal(t, tc.sep, ds.ShowSeparator(), "ShowSeparator")
			assert.Equal(t, tc.dots, ds.ShowDots(), "ShowDots")
		})
	}
}

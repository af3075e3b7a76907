package core

// Indicator dot bits in DisplaySettings.Init, one per corner dot.
// The bit layout is shared with the physical display and must not change.
const (
	DotLLS = 0 // lower digit of the LS pair
	DotMLS = 1 // upper digit of the LS pair
	DotLMS = 2 // lower digit of the MS pair
	DotMMS = 3 // upper digit of the MS pair
)

// AllDots has every corner dot lit
const AllDots = 1<<DotLLS | 1<<DotMLS | 1<<DotLMS | 1<<DotMMS

// Display setting positions. The meaning of each position is only known from
// the mode configurations that use it, so the names describe observed usage:
//
//	timer          T T T F F F T
//	counter(s)     T F T F F F T
//	alarm          F F F F T
//	measure        T T T
const (
	FlagLSDigits     = 0 // LS digit pair enabled (timer, counters, measure)
	FlagSeparator    = 1 // separator between pairs (timer, measure)
	FlagMSDigits     = 2 // MS digit pair enabled (timer, counters, measure)
	FlagReserved3    = 3 // never set
	FlagAlarmPattern = 4 // handler drives digits and dots, LLS dot lit at entry (alarm only)
	FlagReserved5    = 5 // never set
	FlagLaneDots     = 6 // lane indicator dots (timer, counters)

	NumFlags = 7
)

// DisplaySettings describes which digit groups and dots are active at mode entry.
// Flags are fixed after construction; Init is the live indicator bitmask that
// handlers flip to show transient state.
type DisplaySettings struct {
	Flags [NumFlags]bool
	Init  uint8
}

// NewDisplaySettings builds settings from positional flags.
// Positions not given are false, extra positions are ignored. Init starts
// at EntryDots.
func NewDisplaySettings(flags ...bool) DisplaySettings {
	var ds DisplaySettings
	copy(ds.Flags[:], flags)
	ds.Init = ds.EntryDots()
	return ds
}

// EntryDots returns the indicator mask a mode starts with. The alarm shows
// the LLS dot while armed, the same as after a reset.
func (ds *DisplaySettings) EntryDots() uint8 {
	if ds.Flags[FlagAlarmPattern] {
		return 1 << DotLLS
	}
	return 0
}

// ShowLS reports whether the LS digit pair is drawn
func (ds *DisplaySettings) ShowLS() bool {
	return ds.Flags[FlagLSDigits] || ds.Flags[FlagAlarmPattern]
}

// ShowMS reports whether the MS digit pair is drawn
func (ds *DisplaySettings) ShowMS() bool {
	return ds.Flags[FlagMSDigits] || ds.Flags[FlagAlarmPattern]
}

// ShowSeparator reports whether the separator is lit. The alarm pattern
// lights it together with all four dots, so every segment is on.
func (ds *DisplaySettings) ShowSeparator() bool {
	if ds.Flags[FlagSeparator] {
		return true
	}
	return ds.Flags[FlagAlarmPattern] && ds.Init == AllDots
}

// ShowDots reports whether the indicator dots in Init are drawn
func (ds *DisplaySettings) ShowDots() bool {
	return ds.Flags[FlagLaneDots] || ds.Flags[FlagAlarmPattern]
}

// Flag returns the setting at position pos
func (ds *DisplaySettings) Flag(pos int) bool {
	if pos < 0 || pos >= NumFlags {
		return false
	}
	return ds.Flags[pos]
}

// SetDot lights one indicator dot
func (ds *DisplaySettings) SetDot(dot uint8) {
	ds.Init |= 1 << dot
}

// ClearDot turns one indicator dot off
func (ds *DisplaySettings) ClearDot(dot uint8) {
	ds.Init &^= 1 << dot
}

// Dot reports whether an indicator dot is lit
func (ds *DisplaySettings) Dot(dot uint8) bool {
	return ds.Init&(1<<dot) != 0
}

package core

// Speaker is the audible alert. Sound is set-and-forget: the implementation
// keeps the tone on for the given number of 10ms ticks.
type Speaker interface {
	Sound(ticks uint8)
}

// SpeakerFunc adapts a plain function to the Speaker interface
type SpeakerFunc func(ticks uint8)

// Sound calls f(ticks)
func (f SpeakerFunc) Sound(ticks uint8) {
	f(ticks)
}

package core

// Storage is the non-volatile calibration store, read only at mode selection
type Storage interface {
	// ByteAt returns the byte stored at addr
	ByteAt(addr uint16) byte
}

// Prompt asks the operator for a number in [0, max]
type Prompt interface {
	Choose(max uint8) uint8
}

// PromptFunc adapts a plain function to the Prompt interface
type PromptFunc func(max uint8) uint8

// Choose calls f(max)
func (f PromptFunc) Choose(max uint8) uint8 {
	return f(max)
}

// Board bundles the collaborators a mode needs. Nothing in core keeps
// them in package state.
type Board struct {
	Display Display
	Speaker Speaker
	Storage Storage
	Prompt  Prompt
}

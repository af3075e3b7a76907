package core

// Display is the abstract numeric display the mode handlers drive.
// Four digit fields, d0 is the least significant. Rendering to hardware
// is the implementation's business.
type Display interface {
	// Zero clears every digit field
	Zero()

	// Set writes all four digit fields directly (d0 least significant)
	Set(d0, d1, d2, d3 uint8)

	// Increase adds one to the lowest field and carries upward.
	// moduli[i] is the rollover value of field i. Returns true when the
	// last listed field rolled over.
	Increase(moduli ...uint8) bool

	// IncreaseLS increments the lower counter field (d1d0)
	IncreaseLS()

	// IncreaseMS increments the upper counter field (d3d2)
	IncreaseMS()

	// SetFrozen suspends (true) or resumes (false) visual updates.
	// Underlying fields keep changing while frozen.
	SetFrozen(frozen bool)

	// Frozen reports whether visual updates are suspended
	Frozen() bool

	// RequestRefresh asks for a redraw on the next render pass
	RequestRefresh()
}

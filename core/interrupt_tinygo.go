//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts so the pin ISRs cannot touch the event
// queue, returning the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the state saved by disableInterrupts
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

//go:build !tinygo

package core

// State stands in for the saved interrupt state on regular Go
type State uintptr

// disableInterrupts is a no-op on regular Go, the simulator and tests
// deliver events from a single goroutine
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op on regular Go
func restoreInterrupts(state State) {}

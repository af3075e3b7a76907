package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether DebugPrintln produces output.
	// Disabled by default so the tick path stays quiet.
	debugEnabled bool = false

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function.
// The simulator routes it to slog, the firmware to the USB console.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine.
// Call this from main() after SetDebugWriter.
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output.
// Returns immediately and drops the message if the channel is full.
func DebugAsync(msg string) {
	if !debugEnabled {
		return
	}
	if debugChan == nil {
		DebugPrintln(msg)
		return
	}
	select {
	case debugChan <- msg:
	default:
		// Channel full, drop message
	}
}

// EventRingSize is how many dispatched events are kept for post-mortem dumps
const EventRingSize = 32

// EventRecord is one dispatched event as seen by the instrument
type EventRecord struct {
	Tick  uint32 // MS10 ticks since the mode was selected
	Mode  uint8  // active mode index
	Event Event
}

// EventRing keeps the last EventRingSize dispatched events.
// Recording never allocates, so it is safe on the tick path.
type EventRing struct {
	records [EventRingSize]EventRecord
	head    uint8 // Next write position
	count   uint8
}

// Record appends rec, overwriting the oldest entry when full
func (r *EventRing) Record(rec EventRecord) {
	r.records[r.head] = rec
	r.head = (r.head + 1) % EventRingSize
	if r.count < EventRingSize {
		r.count++
	}
}

// Len returns the number of stored records
func (r *EventRing) Len() int {
	return int(r.count)
}

// Records returns the stored records, oldest first
func (r *EventRing) Records() []EventRecord {
	out := make([]EventRecord, 0, r.count)
	start := (r.head + EventRingSize - r.count) % EventRingSize
	for i := uint8(0); i < r.count; i++ {
		out = append(out, r.records[(start+i)%EventRingSize])
	}
	return out
}

// Clear empties the ring
func (r *EventRing) Clear() {
	*r = EventRing{}
}

// Dump writes the ring through the debug writer, oldest first.
// It bypasses the enabled flag, it is meant for error paths.
func (r *EventRing) Dump() {
	if debugPrintln == nil {
		return
	}
	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, rec := range r.Records() {
		debugPrintln("[EVENTS] tick=" + utoa(rec.Tick) +
			" mode=" + itoa(int(rec.Mode)) +
			" event=" + rec.Event.String())
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

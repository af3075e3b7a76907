package core

// EventQueueSize is the capacity of an EventQueue
const EventQueueSize = 16

// EventQueue is a fixed ring of pending events. Pin interrupt handlers push,
// the main loop pops; both sides mask interrupts around the ring update.
// When full, new events are dropped and counted.
type EventQueue struct {
	buf     [EventQueueSize]Event
	head    uint8 // Next read position
	count   uint8
	dropped uint32
}

// Push appends ev. Returns false if the queue was full and ev was dropped.
// Safe to call from interrupt context.
func (q *EventQueue) Push(ev Event) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if q.count == EventQueueSize {
		q.dropped++
		return false
	}
	q.buf[(q.head+q.count)%EventQueueSize] = ev
	q.count++
	return true
}

// Pop removes the oldest event
func (q *EventQueue) Pop() (Event, bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if q.count == 0 {
		return 0, false
	}
	ev := q.buf[q.head]
	q.head = (q.head + 1) % EventQueueSize
	q.count--
	return ev, true
}

// Len returns the number of queued events
func (q *EventQueue) Len() int {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return int(q.count)
}

// Dropped returns how many events were lost to a full queue
func (q *EventQueue) Dropped() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return q.dropped
}

// Reset discards queued events and the drop counter
func (q *EventQueue) Reset() {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	*q = EventQueue{}
}

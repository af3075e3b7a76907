package core

// Kind identifies which state machine a Handler runs
type Kind uint8

const (
	KindTimer Kind = iota
	KindCounter
	KindConfirmCounter
	KindAlarm
	KindMeasure
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindTimer:
		return "timer"
	case KindCounter:
		return "counter"
	case KindConfirmCounter:
		return "confirm-counter"
	case KindAlarm:
		return "alarm"
	case KindMeasure:
		return "measure"
	default:
		return "unknown"
	}
}

// Handler is one mode's event-driven state machine.
// The set of implementations is closed: TimerHandler, CounterHandler,
// ConfirmCounterHandler, AlarmHandler and MeasureHandler.
type Handler interface {
	// Handle processes one event to completion. It never blocks.
	Handle(ev Event)

	// Kind identifies the implementation
	Kind() Kind

	sealed()
}

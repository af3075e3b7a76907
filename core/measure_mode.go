package core

// MeasureHandler reserves the measurement mode. Its behavior is not defined
// yet, so it consumes every event without touching any state.
type MeasureHandler struct{}

// Handle ignores ev
func (MeasureHandler) Handle(ev Event) {}

// Kind returns KindMeasure
func (MeasureHandler) Kind() Kind { return KindMeasure }

func (MeasureHandler) sealed() {}

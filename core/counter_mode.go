package core

// CounterHandler counts beam breaks on both lanes independently.
// Master breaks go to the LS field, slave breaks to the MS field.
type CounterHandler struct {
	display Display
}

// NewCounterHandler creates a counter driving display
func NewCounterHandler(display Display) CounterHandler {
	return CounterHandler{display: display}
}

// Handle processes one event
func (c CounterHandler) Handle(ev Event) {
	switch ev {
	case EventMasterBroken:
		c.display.IncreaseLS()
	case EventSlaveBroken:
		c.display.IncreaseMS()
	}
}

// Kind returns KindCounter
func (c CounterHandler) Kind() Kind { return KindCounter }

func (c CounterHandler) sealed() {}

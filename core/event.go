package core

import (
	"fmt"
	"strings"
)

// Event is a single discrete input delivered to the active mode.
// Exactly one event is handled per call, there is no payload beyond the tag.
type Event uint8

const (
	EventMasterBroken Event = iota // master beam went from unbroken to broken
	EventSlaveBroken               // slave beam went from unbroken to broken
	EventMasterButton              // master button press edge
	EventSlaveButton               // slave button press edge
	EventMS10                      // 10ms periodic tick
)

var eventNames = [...]string{
	EventMasterBroken: "MASTER_BROKEN",
	EventSlaveBroken:  "SLAVE_BROKEN",
	EventMasterButton: "MASTER_BUTTON",
	EventSlaveButton:  "SLAVE_BUTTON",
	EventMS10:         "MS10",
}

// String returns the event tag name
func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("EVENT(%d)", uint8(e))
}

// IsBroken reports whether the event is a beam break on either lane
func (e Event) IsBroken() bool {
	return e == EventMasterBroken || e == EventSlaveBroken
}

// IsButton reports whether the event is a button press on either lane
func (e Event) IsButton() bool {
	return e == EventMasterButton || e == EventSlaveButton
}

// ParseEvent converts a tag name (case insensitive) back into an Event
func ParseEvent(name string) (Event, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range eventNames {
		if n == upper {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event %q", name)
}

// Package trace records instrument sessions as a CBOR stream and replays
// them into a fresh instrument.
//
// A trace is a Header followed by Records. Runs of MS10 ticks are coalesced
// into a single RecordTicks entry.
package trace

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"irtimer/core"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: cbor encoder mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("trace: cbor decoder mode: %v", err))
	}
}

// Header opens every trace
type Header struct {
	SessionID   uuid.UUID `cbor:"1,keyasint"`
	Created     time.Time `cbor:"2,keyasint"`
	Calibration []byte    `cbor:"3,keyasint,omitempty"`
}

// NewHeader returns a header with a fresh session id
func NewHeader(calibration []byte) Header {
	return Header{
		SessionID:   uuid.New(),
		Created:     time.Now(),
		Calibration: calibration,
	}
}

// RecordKind says what a Record carries
type RecordKind uint8

const (
	RecordEvent  RecordKind = iota + 1 // one non-tick event
	RecordTicks                        // Count consecutive MS10 ticks
	RecordSelect                       // mode selection
)

func (k RecordKind) String() string {
	switch k {
	case RecordEvent:
		return "event"
	case RecordTicks:
		return "ticks"
	case RecordSelect:
		return "select"
	default:
		return fmt.Sprintf("RECORD(%d)", uint8(k))
	}
}

// Record is one trace entry
type Record struct {
	Kind  RecordKind `cbor:"1,keyasint"`
	Event core.Event `cbor:"2,keyasint,omitempty"`
	Count uint32     `cbor:"3,keyasint,omitempty"`
	Mode  uint8      `cbor:"4,keyasint,omitempty"`
	Laps  uint8      `cbor:"5,keyasint,omitempty"`
}

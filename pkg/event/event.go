package event

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Well-known payload keys.
const (
	KeyType        = "Type"
	KeyTimestamp   = "Timestamp"
	KeyResults     = "Results"
	KeyReason      = "Reason"
	KeyDescription = "Description"
	KeyNewPeriod   = "NewPeriod"
)

// Event is a single client-visible notification.
type Event struct {
	// ID is a ULID assigned when the event is created.
	ID string `cbor:"1,keyasint" json:"id"`

	// Name is the correlation name clients match on.
	Name string `cbor:"2,keyasint" json:"name"`

	// Kind is the event type of the originating subscription kind
	// (e.g. "WifiScannerScan"), or the facade name for other sources.
	Kind string `cbor:"3,keyasint" json:"kind"`

	// Handle is the originating subscription handle (0 if none).
	Handle int `cbor:"4,keyasint,omitempty" json:"handle,omitempty"`

	// Outcome classifies the callback (e.g. "onResults").
	Outcome string `cbor:"5,keyasint" json:"outcome"`

	// Timestamp is when the event was created.
	Timestamp time.Time `cbor:"6,keyasint" json:"timestamp"`

	// Data is the kind-specific payload.
	Data map[string]any `cbor:"7,keyasint,omitempty" json:"data,omitempty"`
}

// Sink receives events. Implementations must be safe for concurrent use.
type Sink interface {
	Post(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Post calls f(ev).
func (f SinkFunc) Post(ev Event) { f(ev) }

// Compose builds the correlation name "<eventType><handle><outcome>".
func Compose(eventType string, handle int, outcome string) string {
	return eventType + strconv.Itoa(handle) + outcome
}

// New creates an event for (kind, handle, outcome) with a fresh ID and the
// current time. The Type and Timestamp payload keys are filled in.
func New(kind string, handle int, outcome string, data map[string]any) Event {
	now := time.Now()
	if data == nil {
		data = make(map[string]any, 2)
	}
	data[KeyType] = outcome
	data[KeyTimestamp] = now.Unix()

	return Event{
		ID:        NewID(now),
		Name:      Compose(kind, handle, outcome),
		Kind:      kind,
		Handle:    handle,
		Outcome:   outcome,
		Timestamp: now,
		Data:      data,
	}
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewID returns a ULID string for t. IDs generated within the same
// millisecond are strictly increasing.
func NewID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), idEntropy).String()
}

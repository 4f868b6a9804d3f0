package log

import (
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// Event represents a capture log event recorded at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// RemoteAddr is the peer address (IP:port).
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	// SessionID is set once the handshake has completed.
	SessionID string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"`
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Delivery    *DeliveryEvent    `cbor:"13,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the framing layer (raw bytes).
	LayerTransport Layer = 0
	// LayerRPC is the envelope layer (decoded CBOR).
	LayerRPC Layer = 1
	// LayerFacade is the subscription and event relay layer.
	LayerFacade Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerRPC:
		return "RPC"
	case LayerFacade:
		return "FACADE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a frame or RPC message.
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryDelivery indicates a client event relayed from a subscription.
	CategoryDelivery Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryDelivery:
		return "DELIVERY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw frame data at the transport layer.
type FrameEvent struct {
	// Size is the frame size in bytes (including length prefix).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a decoded envelope at the RPC layer.
type MessageEvent struct {
	// Type is the envelope type.
	Type wire.MessageType `cbor:"1,keyasint"`

	// RequestID correlates request/response pairs (0 otherwise).
	RequestID uint32 `cbor:"2,keyasint,omitempty"`

	// Method is the called method (requests and their responses).
	Method string `cbor:"3,keyasint,omitempty"`

	// Code is the error code of a failed response.
	Code *wire.Code `cbor:"4,keyasint,omitempty"`

	// Payload is the request params, the response result, or the name of a
	// pushed event.
	Payload any `cbor:"5,keyasint,omitempty"`

	// ProcessingTime is the duration from request receipt to response send
	// (response only). Stored as nanoseconds.
	ProcessingTime *time.Duration `cbor:"6,keyasint,omitempty"`
}

// StateChangeEvent captures connection, session and subscription lifecycle.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`

	// Kind and Handle identify a subscription (StateEntitySubscription).
	Kind   string `cbor:"5,keyasint,omitempty"`
	Handle int    `cbor:"6,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityConnection indicates a connection state change.
	StateEntityConnection StateEntity = 0
	// StateEntitySession indicates a session state change.
	StateEntitySession StateEntity = 1
	// StateEntitySubscription indicates a subscription state change.
	StateEntitySubscription StateEntity = 2
	// StateEntityPowerTest indicates an A2DP power test transition.
	StateEntityPowerTest StateEntity = 3
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntitySession:
		return "SESSION"
	case StateEntitySubscription:
		return "SUBSCRIPTION"
	case StateEntityPowerTest:
		return "POWER_TEST"
	default:
		return "UNKNOWN"
	}
}

// DeliveryEvent captures a client event relayed from a subscription.
type DeliveryEvent struct {
	// EventID is the ULID of the client event.
	EventID string `cbor:"1,keyasint"`

	// Name is the correlation name, e.g. "WifiScannerScan1onResults".
	Name string `cbor:"2,keyasint"`

	Kind    string `cbor:"3,keyasint,omitempty"`
	Handle  int    `cbor:"4,keyasint,omitempty"`
	Outcome string `cbor:"5,keyasint,omitempty"`

	// Pushed is true when the event went straight to the client instead of
	// the session queue.
	Pushed bool `cbor:"6,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}

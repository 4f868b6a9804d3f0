package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/rcbridge/rcbridge-go/pkg/event"
)

// MessageType identifies the payload of an Envelope.
type MessageType uint8

const (
	TypeHello        MessageType = 1
	TypeHelloAck     MessageType = 2
	TypeRequest      MessageType = 3
	TypeResponse     MessageType = 4
	TypeNotification MessageType = 5
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case TypeHello:
		return "HELLO"
	case TypeHelloAck:
		return "HELLO_ACK"
	case TypeRequest:
		return "REQUEST"
	case TypeResponse:
		return "RESPONSE"
	case TypeNotification:
		return "NOTIFICATION"
	default:
		return "UNKNOWN"
	}
}

// ErrInvalidEnvelope is returned when an envelope's type and payload disagree.
var ErrInvalidEnvelope = errors.New("invalid envelope")

// Envelope is the unit carried by one frame.
//
// CBOR encoding:
//
//	{
//	  1: type,          // uint8
//	  2: hello,         // TypeHello only
//	  3: helloAck,      // TypeHelloAck only
//	  4: request,       // TypeRequest only
//	  5: response,      // TypeResponse only
//	  6: notification   // TypeNotification only
//	}
type Envelope struct {
	Type         MessageType   `cbor:"1,keyasint"`
	Hello        *Hello        `cbor:"2,keyasint,omitempty"`
	HelloAck     *HelloAck     `cbor:"3,keyasint,omitempty"`
	Request      *Request      `cbor:"4,keyasint,omitempty"`
	Response     *Response     `cbor:"5,keyasint,omitempty"`
	Notification *Notification `cbor:"6,keyasint,omitempty"`
}

// Validate checks that exactly the payload named by Type is set.
func (e *Envelope) Validate() error {
	set := 0
	for _, p := range []bool{e.Hello != nil, e.HelloAck != nil, e.Request != nil, e.Response != nil, e.Notification != nil} {
		if p {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: %d payloads set", ErrInvalidEnvelope, set)
	}

	var ok bool
	switch e.Type {
	case TypeHello:
		ok = e.Hello != nil
	case TypeHelloAck:
		ok = e.HelloAck != nil
	case TypeRequest:
		ok = e.Request != nil && e.Request.Validate() == nil
	case TypeResponse:
		ok = e.Response != nil
	case TypeNotification:
		ok = e.Notification != nil
	}
	if !ok {
		return fmt.Errorf("%w: type %s does not match payload", ErrInvalidEnvelope, e.Type)
	}
	return nil
}

// Hello opens a session.
type Hello struct {
	// Version is the client's protocol version ("major.minor").
	Version string `cbor:"1,keyasint"`

	// Nonce is a client chosen random value used for key derivation.
	Nonce []byte `cbor:"2,keyasint,omitempty"`

	// Proof authenticates the client when the bridge has a secret.
	Proof []byte `cbor:"3,keyasint,omitempty"`

	// Client is a free-form client name for logs.
	Client string `cbor:"4,keyasint,omitempty"`
}

// HelloAck accepts a session.
type HelloAck struct {
	SessionID string `cbor:"1,keyasint"`
	Version   string `cbor:"2,keyasint"`
	Server    string `cbor:"3,keyasint,omitempty"`
}

// Request is a method call.
//
// CBOR encoding:
//
//	{
//	  1: id,       // uint32, non-zero
//	  2: method,   // string
//	  3: params    // map of string to any
//	}
type Request struct {
	ID     uint32 `cbor:"1,keyasint"`
	Method string `cbor:"2,keyasint"`
	Params Params `cbor:"3,keyasint,omitempty"`
}

// Validate checks if the request is valid.
func (r *Request) Validate() error {
	if r.ID == 0 {
		return fmt.Errorf("request id 0 is reserved")
	}
	if r.Method == "" {
		return fmt.Errorf("request method is empty")
	}
	return nil
}

// Response answers a Request with the same ID.
type Response struct {
	ID     uint32          `cbor:"1,keyasint"`
	Result cbor.RawMessage `cbor:"2,keyasint,omitempty"`
	Error  *Error          `cbor:"3,keyasint,omitempty"`
}

// IsSuccess returns true if the response carries no error.
func (r *Response) IsSuccess() bool {
	return r.Error == nil
}

// Decode decodes the result into v. It returns the response error if set.
func (r *Response) Decode(v any) error {
	if r.Error != nil {
		return r.Error
	}
	if len(r.Result) == 0 || v == nil {
		return nil
	}
	return Unmarshal(r.Result, v)
}

// Notification pushes a client event.
type Notification struct {
	Event event.Event `cbor:"1,keyasint"`
}

// NewResponse builds a successful response carrying result.
func NewResponse(id uint32, result any) (*Response, error) {
	resp := &Response{ID: id}
	if result == nil {
		return resp, nil
	}
	data, err := Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	resp.Result = data
	return resp, nil
}

// NewErrorResponse builds an error response.
func NewErrorResponse(id uint32, code Code, msg string) *Response {
	return &Response{ID: id, Error: &Error{Code: code, Message: msg}}
}

package wire

// Code is an RPC error code.
type Code uint8

const (
	// CodeOK is never sent on the wire; it marks the absence of an error.
	CodeOK Code = 0

	// CodeInvalidArgument indicates malformed or missing parameters.
	CodeInvalidArgument Code = 1

	// CodeNotFound indicates an unknown handle.
	CodeNotFound Code = 2

	// CodeUnknownMethod indicates the method is not registered.
	CodeUnknownMethod Code = 3

	// CodeUnauthenticated indicates a failed or missing handshake.
	CodeUnauthenticated Code = 4

	// CodeTimeout indicates a wait expired before the awaited event arrived.
	CodeTimeout Code = 5

	// CodeUnavailable indicates a disabled facade or closed session.
	CodeUnavailable Code = 6

	// CodeInternal indicates an unexpected failure, including platform errors.
	CodeInternal Code = 7
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeInvalidArgument:
		return "INVALID_ARGUMENT"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeUnknownMethod:
		return "UNKNOWN_METHOD"
	case CodeUnauthenticated:
		return "UNAUTHENTICATED"
	case CodeTimeout:
		return "TIMEOUT"
	case CodeUnavailable:
		return "UNAVAILABLE"
	case CodeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Error is an RPC error carried in a Response.
type Error struct {
	Code    Code   `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint,omitempty"`
}

// Error implements error.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Message
}

// Is reports whether target is an *Error with the same code, so callers can
// test against the sentinel values below with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel errors for errors.Is matching on the client side.
var (
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument}
	ErrNotFound        = &Error{Code: CodeNotFound}
	ErrUnknownMethod   = &Error{Code: CodeUnknownMethod}
	ErrUnauthenticated = &Error{Code: CodeUnauthenticated}
	ErrTimeout         = &Error{Code: CodeTimeout}
	ErrUnavailable     = &Error{Code: CodeUnavailable}
	ErrInternal        = &Error{Code: CodeInternal}
)

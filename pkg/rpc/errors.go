package rpc

import (
	"context"
	"errors"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/owner"
	"github.com/rcbridge/rcbridge-go/pkg/registry"
	"github.com/rcbridge/rcbridge-go/pkg/wifi"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// Protocol errors.
var (
	ErrDuplicateMethod  = errors.New("method already registered")
	ErrClientClosed     = errors.New("client is closed")
	ErrUnexpectedReply  = errors.New("unexpected reply")
	ErrRequestTimeout   = errors.New("request timed out")
	ErrSessionClosed    = errors.New("session closed")
	ErrManifestMismatch = errors.New("registered methods do not match manifest")
)

// Remote errors returned by Client calls. They compare by code, so
// errors.Is(err, ErrNotFound) holds for any NotFound response.
var (
	ErrInvalidArgument = wire.ErrInvalidArgument
	ErrNotFound        = wire.ErrNotFound
	ErrUnknownMethod   = wire.ErrUnknownMethod
	ErrUnauthenticated = wire.ErrUnauthenticated
	ErrTimeout         = wire.ErrTimeout
	ErrUnavailable     = wire.ErrUnavailable
	ErrInternal        = wire.ErrInternal
)

// ErrorCode maps a handler error to the code sent to the client.
func ErrorCode(err error) wire.Code {
	var we *wire.Error
	switch {
	case err == nil:
		return wire.CodeOK
	case errors.As(err, &we):
		return we.Code
	case errors.Is(err, wifi.ErrInvalidArgument),
		errors.Is(err, wire.ErrInvalidParam),
		errors.Is(err, registry.ErrUnknownKind):
		return wire.CodeInvalidArgument
	case errors.Is(err, registry.ErrNotFound):
		return wire.CodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return wire.CodeTimeout
	case errors.Is(err, owner.ErrNotRunning),
		errors.Is(err, event.ErrQueueClosed),
		errors.Is(err, context.Canceled):
		return wire.CodeUnavailable
	default:
		return wire.CodeInternal
	}
}

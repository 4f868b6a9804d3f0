package facade

import (
	"errors"

	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// Facade errors. The unavailable errors carry their RPC code.
var (
	ErrScannerUnavailable   = &wire.Error{Code: wire.CodeUnavailable, Message: "wifi scanner not available"}
	ErrPowerTestUnavailable = &wire.Error{Code: wire.CodeUnavailable, Message: "a2dp power test not enabled"}
	ErrUnexpectedListener   = errors.New("subscription holds an unexpected listener")

	errEmptyName = errors.New("event name is empty")
)

// rpcError returns err as a wire error with code, keeping err's text as the
// message.
func rpcError(code wire.Code, err error) error {
	return &wire.Error{Code: code, Message: err.Error()}
}

package rpc

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// Handler serves one RPC method. The returned result is CBOR-encoded into the
// response; a nil result produces an empty success response.
type Handler func(ctx context.Context, params wire.Params) (any, error)

// Registrar accepts method handlers.
type Registrar interface {
	Handle(method string, h Handler) error
}

// Dispatcher routes requests to handlers by method name.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Handle registers h for method.
func (d *Dispatcher) Handle(method string, h Handler) error {
	if method == "" || h == nil {
		return fmt.Errorf("%w: empty method or nil handler", wire.ErrInvalidParam)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.handlers[method]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMethod, method)
	}
	d.handlers[method] = h
	return nil
}

// Has reports whether method is registered.
func (d *Dispatcher) Has(method string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[method]
	return ok
}

// Methods returns the registered method names, sorted.
func (d *Dispatcher) Methods() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler for req and builds its response. It never
// returns nil.
func (d *Dispatcher) Dispatch(ctx context.Context, req *wire.Request) *wire.Response {
	d.mu.RLock()
	h, ok := d.handlers[req.Method]
	d.mu.RUnlock()
	if !ok {
		return wire.NewErrorResponse(req.ID, wire.CodeUnknownMethod, "unknown method "+req.Method)
	}

	result, err := d.call(ctx, req, h)
	if err != nil {
		code := ErrorCode(err)
		if code == wire.CodeInternal {
			d.logger.Error("handler failed", "method", req.Method, "id", req.ID, "error", err)
		}
		msg := err.Error()
		if we, ok := err.(*wire.Error); ok {
			msg = we.Message
		}
		return wire.NewErrorResponse(req.ID, code, msg)
	}

	resp, err := wire.NewResponse(req.ID, result)
	if err != nil {
		d.logger.Error("encode result failed", "method", req.Method, "error", err)
		return wire.NewErrorResponse(req.ID, wire.CodeInternal, err.Error())
	}
	return resp
}

func (d *Dispatcher) call(ctx context.Context, req *wire.Request, h Handler) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic in %s: %v", wire.ErrInternal, req.Method, p)
		}
	}()
	return h(ctx, req.Params)
}

package facade

import (
	"context"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/rpc"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// Event RPC methods.
const (
	MethodEventPoll        = "eventPoll"
	MethodEventWaitAndGet  = "eventWaitAndGet"
	MethodEventWait        = "eventWait"
	MethodEventClearBuffer = "eventClearBuffer"
	MethodEventStreamStart = "eventStreamStart"
	MethodEventStreamStop  = "eventStreamStop"
)

// DefaultWaitTimeout bounds event waits that give no timeout. It is shorter
// than the client's default call timeout.
const DefaultWaitTimeout = 20 * time.Second

// Streamer switches a session between buffered and pushed events.
type Streamer interface {
	StartStream()
	StopStream()
	Streaming() bool
}

// Events exposes a session's event queue.
type Events struct {
	queue    *event.Queue
	streamer Streamer
}

// NewEvents creates the event facade. streamer may be nil, in which case the
// stream methods report ErrUnavailable.
func NewEvents(queue *event.Queue, streamer Streamer) *Events {
	return &Events{queue: queue, streamer: streamer}
}

// Poll removes and returns up to n of the oldest events; n <= 0 returns all.
func (e *Events) Poll(n int) []event.Event {
	return e.queue.Poll(n)
}

// WaitAndGet waits up to timeout for the oldest event named name and removes
// it. An empty name matches any event. A non-positive timeout selects
// DefaultWaitTimeout.
func (e *Events) WaitAndGet(ctx context.Context, name string, timeout time.Duration) (event.Event, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return e.queue.WaitFor(ctx, name)
}

// Clear drops every buffered event and returns how many were dropped.
func (e *Events) Clear() int {
	return e.queue.Clear()
}

// Register adds the event methods to r.
func (e *Events) Register(r rpc.Registrar) error {
	return register(r, map[string]rpc.Handler{
		MethodEventPoll:        e.rpcPoll,
		MethodEventWaitAndGet:  e.rpcWaitAndGet,
		MethodEventWait:        e.rpcWait,
		MethodEventClearBuffer: e.rpcClear,
		MethodEventStreamStart: e.rpcStream(true),
		MethodEventStreamStop:  e.rpcStream(false),
	})
}

func (e *Events) rpcPoll(_ context.Context, p wire.Params) (any, error) {
	n, err := p.IntOr("n", 0)
	if err != nil {
		return nil, err
	}
	return e.Poll(n), nil
}

func (e *Events) rpcWaitAndGet(ctx context.Context, p wire.Params) (any, error) {
	name, err := p.String("name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, rpcError(wire.CodeInvalidArgument, errEmptyName)
	}
	return e.wait(ctx, name, p)
}

func (e *Events) rpcWait(ctx context.Context, p wire.Params) (any, error) {
	return e.wait(ctx, "", p)
}

func (e *Events) wait(ctx context.Context, name string, p wire.Params) (any, error) {
	ms, err := p.IntOr("timeoutMs", 0)
	if err != nil {
		return nil, err
	}
	return e.WaitAndGet(ctx, name, time.Duration(ms)*time.Millisecond)
}

func (e *Events) rpcClear(context.Context, wire.Params) (any, error) {
	return e.Clear(), nil
}

func (e *Events) rpcStream(on bool) rpc.Handler {
	return func(context.Context, wire.Params) (any, error) {
		if e.streamer == nil {
			return nil, rpc.ErrUnavailable
		}
		if on {
			e.streamer.StartStream()
		} else {
			e.streamer.StopStream()
		}
		return e.streamer.Streaming(), nil
	}
}

package rpc

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/log"
	"github.com/rcbridge/rcbridge-go/pkg/owner"
	"github.com/rcbridge/rcbridge-go/pkg/registry"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// Conn is the frame sink a session answers on.
type Conn interface {
	Send(data []byte) error
}

// SessionConfig configures a Session.
type SessionConfig struct {
	// ID identifies the session. Required.
	ID string

	// ConnID and RemoteAddr annotate capture events.
	ConnID     string
	RemoteAddr string

	// QueueSize bounds the event queue (default event.DefaultQueueSize).
	QueueSize int

	Logger  *slog.Logger
	Capture log.Logger

	// Hooks are chained after the session's own capture hooks.
	Hooks registry.Hooks
}

// Session is the per-connection state: registry, owner, event queue and
// method table.
type Session struct {
	id      string
	connID  string
	remote  string
	conn    Conn
	logger  *slog.Logger
	capture log.Logger

	owner      *owner.Owner
	registry   *registry.Registry
	queue      *event.Queue
	dispatcher *Dispatcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closers []func()
	closed  bool
}

// NewSession creates a session answering on conn.
func NewSession(conn Conn, cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Capture == nil {
		cfg.Capture = log.NoopLogger{}
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = event.DefaultQueueSize
	}

	s := &Session{
		id:      cfg.ID,
		connID:  cfg.ConnID,
		remote:  cfg.RemoteAddr,
		conn:    conn,
		logger:  cfg.Logger.With("session", cfg.ID),
		capture: cfg.Capture,
		owner:   owner.New(),
		queue:   event.NewQueue(cfg.QueueSize),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.dispatcher = NewDispatcher(s.logger)
	s.owner.Start()
	s.registry = registry.New(registry.Config{
		Owner:  s.owner,
		Sink:   s.queue,
		Logger: s.logger,
		Hooks:  s.hooks(cfg.Hooks),
	})

	s.logState(log.StateEntitySession, "", "OPEN", "")
	return s
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Context is canceled when the session closes.
func (s *Session) Context() context.Context { return s.ctx }

// Logger returns the session's operational logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// Registry returns the session's subscription registry.
func (s *Session) Registry() *registry.Registry { return s.registry }

// Queue returns the session's event queue.
func (s *Session) Queue() *event.Queue { return s.queue }

// Owner returns the session's owner goroutine.
func (s *Session) Owner() *owner.Owner { return s.owner }

// Handle registers a method on the session.
func (s *Session) Handle(method string, h Handler) error {
	return s.dispatcher.Handle(method, h)
}

// Methods returns the session's registered methods, sorted.
func (s *Session) Methods() []string {
	return s.dispatcher.Methods()
}

// OnClose registers fn to run when the session closes. Functions run in
// reverse registration order.
func (s *Session) OnClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, fn)
}

// StartStream pushes events to the client as notifications instead of
// buffering them. Buffered events are sent first.
func (s *Session) StartStream() {
	s.queue.SetPushHandler(s.pushEvent)
}

// StopStream returns the session to buffering events.
func (s *Session) StopStream() {
	s.queue.SetPushHandler(nil)
}

// Streaming reports whether events are pushed.
func (s *Session) Streaming() bool {
	return s.queue.Pushing()
}

// HandleFrame decodes one frame received after the handshake. Requests are
// served on their own goroutine.
func (s *Session) HandleFrame(data []byte) {
	env, err := wire.DecodeEnvelope(data)
	if err != nil {
		s.logger.Warn("dropping invalid frame", "error", err)
		s.logError("decode", err)
		return
	}

	if env.Type != wire.TypeRequest {
		s.logger.Warn("unexpected envelope", "type", env.Type)
		return
	}

	req := env.Request
	s.logMessage(log.DirectionIn, &log.MessageEvent{
		Type:      wire.TypeRequest,
		RequestID: req.ID,
		Method:    req.Method,
		Payload:   map[string]any(req.Params),
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.send(wire.NewErrorResponse(req.ID, wire.CodeUnavailable, ErrSessionClosed.Error()), req.Method, time.Now())
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		start := time.Now()
		s.send(s.dispatcher.Dispatch(s.ctx, req), req.Method, start)
	}()
}

// Close cancels in-flight requests, runs close functions, shuts down the
// registry and releases the queue. It is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}

	s.queue.Close()
	s.owner.Stop()
	s.logState(log.StateEntitySession, "OPEN", "CLOSED", "")
}

func (s *Session) send(resp *wire.Response, method string, start time.Time) {
	data, err := wire.EncodeEnvelope(wire.ResponseEnvelope(resp))
	if err != nil {
		s.logger.Error("encode response failed", "id", resp.ID, "error", err)
		return
	}

	elapsed := time.Since(start)
	me := &log.MessageEvent{
		Type:           wire.TypeResponse,
		RequestID:      resp.ID,
		Method:         method,
		ProcessingTime: &elapsed,
	}
	if resp.Error != nil {
		code := resp.Error.Code
		me.Code = &code
		me.Payload = resp.Error.Message
	}
	s.logMessage(log.DirectionOut, me)

	if err := s.conn.Send(data); err != nil {
		s.logger.Debug("send response failed", "id", resp.ID, "error", err)
	}
}

func (s *Session) pushEvent(ev event.Event) {
	data, err := wire.EncodeEnvelope(wire.NotificationEnvelope(&wire.Notification{Event: ev}))
	if err != nil {
		s.logger.Error("encode notification failed", "event", ev.Name, "error", err)
		return
	}
	s.logMessage(log.DirectionOut, &log.MessageEvent{Type: wire.TypeNotification, Payload: ev.Name})
	if err := s.conn.Send(data); err != nil {
		s.logger.Debug("push event failed", "event", ev.Name, "error", err)
	}
}

// hooks records subscription lifecycle and deliveries to the capture log and
// then calls next.
func (s *Session) hooks(next registry.Hooks) registry.Hooks {
	return registry.Hooks{
		OnRegister: func(sub registry.Subscription) {
			s.logSubscription(sub, "", "ACTIVE", "")
			if next.OnRegister != nil {
				next.OnRegister(sub)
			}
		},
		OnRemove: func(sub registry.Subscription, reason registry.RemoveReason) {
			s.logSubscription(sub, "ACTIVE", "REMOVED", string(reason))
			if next.OnRemove != nil {
				next.OnRemove(sub, reason)
			}
		},
		OnDeliver: func(ev event.Event) {
			s.capture.Log(log.Event{
				Timestamp:    time.Now(),
				ConnectionID: s.connID,
				SessionID:    s.id,
				Direction:    log.DirectionOut,
				Layer:        log.LayerFacade,
				Category:     log.CategoryDelivery,
				Delivery: &log.DeliveryEvent{
					EventID: ev.ID,
					Name:    ev.Name,
					Kind:    ev.Kind,
					Handle:  ev.Handle,
					Outcome: ev.Outcome,
					Pushed:  s.queue.Pushing(),
				},
			})
			if next.OnDeliver != nil {
				next.OnDeliver(ev)
			}
		},
	}
}

func (s *Session) logMessage(dir log.Direction, me *log.MessageEvent) {
	s.capture.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		SessionID:    s.id,
		Direction:    dir,
		Layer:        log.LayerRPC,
		Category:     log.CategoryMessage,
		RemoteAddr:   s.remote,
		Message:      me,
	})
}

func (s *Session) logState(entity log.StateEntity, oldState, newState, reason string) {
	s.capture.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		SessionID:    s.id,
		Layer:        log.LayerRPC,
		Category:     log.CategoryState,
		RemoteAddr:   s.remote,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (s *Session) logSubscription(sub registry.Subscription, oldState, newState, reason string) {
	s.capture.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		SessionID:    s.id,
		Layer:        log.LayerFacade,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntitySubscription,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
			Kind:     sub.Kind.String(),
			Handle:   sub.Handle,
		},
	})
}

func (s *Session) logError(op string, err error) {
	s.capture.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: s.connID,
		SessionID:    s.id,
		Layer:        log.LayerRPC,
		Category:     log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerRPC,
			Message: err.Error(),
			Context: op,
		},
	})
}

package registry

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/owner"
	"github.com/rcbridge/rcbridge-go/pkg/wifi"
)

// Registry errors.
var (
	ErrNotFound    = errors.New("subscription not found")
	ErrUnknownKind = errors.New("unknown subscription kind")
	ErrNilListener = errors.New("factory returned nil listener")
)

// Factory constructs the listener for a freshly allocated handle. It runs on
// the owner goroutine.
type Factory func(handle int) (any, error)

// StopFunc stops the platform side of a subscription during Shutdown.
type StopFunc func(sub Subscription) error

// Hooks observe subscription lifecycle changes. Hooks are invoked outside the
// registry lock and must not block.
type Hooks struct {
	OnRegister func(sub Subscription)
	OnRemove   func(sub Subscription, reason RemoveReason)
	OnDeliver  func(ev event.Event)
}

// Config configures a Registry.
type Config struct {
	// Owner runs factories. If nil the registry creates and owns one.
	Owner *owner.Owner

	// Sink receives delivered events. If nil events are discarded.
	Sink event.Sink

	Logger *slog.Logger
	Hooks  Hooks
}

// Registry tracks active subscriptions of every kind and routes their
// callbacks to the event sink.
type Registry struct {
	owner     *owner.Owner
	ownsOwner bool
	sink      event.Sink
	logger    *slog.Logger
	hooks     Hooks

	counters [len(kindIndex)]atomic.Int64

	mu   sync.RWMutex
	subs map[Kind]map[int]*record
}

var kindIndex = [...]Kind{KindScan, KindChange, KindBssid}

// New creates a registry.
func New(cfg Config) *Registry {
	r := &Registry{
		owner:  cfg.Owner,
		sink:   cfg.Sink,
		logger: cfg.Logger,
		hooks:  cfg.Hooks,
		subs:   make(map[Kind]map[int]*record, len(kindIndex)),
	}
	if r.owner == nil {
		r.owner = owner.New()
		r.owner.Start()
		r.ownsOwner = true
	}
	if r.sink == nil {
		r.sink = event.SinkFunc(func(event.Event) {})
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	for _, k := range kindIndex {
		r.subs[k] = make(map[int]*record)
	}
	return r
}

// Close stops the owner goroutine if the registry created it.
func (r *Registry) Close() {
	if r.ownsOwner {
		r.owner.Stop()
	}
}

// Register allocates the next handle for kind, runs factory on the owner
// goroutine and stores the returned listener as an Active subscription.
//
// The handle is consumed even when factory fails, so handles within a kind
// stay strictly increasing. ctx bounds only the wait for the owner to accept
// the request.
func (r *Registry) Register(ctx context.Context, kind Kind, factory Factory) (int, error) {
	if !kind.Valid() {
		return 0, ErrUnknownKind
	}

	handle := int(r.counters[kind-1].Add(1))

	sub, err := owner.Call(ctx, r.owner, func() (Subscription, error) {
		l, err := factory(handle)
		if err != nil {
			return Subscription{}, err
		}
		if l == nil {
			return Subscription{}, ErrNilListener
		}

		rec := &record{Subscription: Subscription{
			Handle:    handle,
			Kind:      kind,
			State:     StateActive,
			Listener:  l,
			CreatedAt: time.Now(),
		}}

		r.mu.Lock()
		r.subs[kind][handle] = rec
		r.mu.Unlock()

		return rec.Subscription, nil
	})
	if err != nil {
		return 0, err
	}

	if r.hooks.OnRegister != nil {
		r.hooks.OnRegister(sub)
	}
	return handle, nil
}

// Lookup returns a snapshot of the subscription.
func (r *Registry) Lookup(kind Kind, handle int) (Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.subs[kind][handle]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	return rec.Subscription, nil
}

// Unregister removes a subscription in response to a stop request.
func (r *Registry) Unregister(kind Kind, handle int) (Subscription, error) {
	return r.Remove(kind, handle, ReasonStopped)
}

// Remove removes a subscription and its cached results.
func (r *Registry) Remove(kind Kind, handle int, reason RemoveReason) (Subscription, error) {
	r.mu.Lock()
	rec, ok := r.subs[kind][handle]
	if !ok {
		r.mu.Unlock()
		return Subscription{}, ErrNotFound
	}
	delete(r.subs[kind], handle)
	rec.State = StateStopped
	rec.results = nil
	rec.hasResults = false
	sub := rec.Subscription
	r.mu.Unlock()

	if r.hooks.OnRemove != nil {
		r.hooks.OnRemove(sub, reason)
	}
	return sub, nil
}

// Handles returns the active handles of kind in ascending order.
func (r *Registry) Handles(kind Kind) []int {
	r.mu.RLock()
	handles := make([]int, 0, len(r.subs[kind]))
	for h := range r.subs[kind] {
		handles = append(handles, h)
	}
	r.mu.RUnlock()

	slices.Sort(handles)
	return handles
}

// Len returns the number of active subscriptions of every kind.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, m := range r.subs {
		n += len(m)
	}
	return n
}

// Deliver posts the client event for (kind, handle, outcome) to the sink.
// Events are delivered even if the subscription has already been removed,
// since platform callbacks may race with a stop.
func (r *Registry) Deliver(kind Kind, handle int, outcome string, data map[string]any) event.Event {
	ev := event.New(kind.EventType(), handle, outcome, data)

	r.mu.Lock()
	if rec, ok := r.subs[kind][handle]; ok {
		rec.Deliveries++
		rec.LastOutcome = outcome
	}
	r.mu.Unlock()

	r.sink.Post(ev)

	if r.hooks.OnDeliver != nil {
		r.hooks.OnDeliver(ev)
	}
	return ev
}

// Fail delivers an onFailure event. Scan subscriptions are removed; Change and
// Bssid subscriptions remain registered.
func (r *Registry) Fail(kind Kind, handle int, reason int, description string) event.Event {
	ev := r.Deliver(kind, handle, OutcomeFailure, map[string]any{
		event.KeyReason:      reason,
		event.KeyDescription: description,
	})

	if kind == KindScan {
		if _, err := r.Remove(kind, handle, ReasonFailed); err == nil {
			r.logger.Debug("scan removed after failure", "handle", handle, "reason", reason)
		}
	}
	return ev
}

// StoreResults replaces the cached result batch of an active scan. It reports
// false if handle is not an active scan subscription.
func (r *Registry) StoreResults(handle int, results []wifi.ScanResult) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.subs[KindScan][handle]
	if !ok {
		return false
	}
	rec.results = slices.Clone(results)
	rec.hasResults = true
	return true
}

// LastResults returns the cached result batch of an active scan. The result is
// empty if no batch has been delivered yet.
func (r *Registry) LastResults(handle int) ([]wifi.ScanResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.subs[KindScan][handle]
	if !ok {
		return nil, ErrNotFound
	}
	if !rec.hasResults {
		return []wifi.ScanResult{}, nil
	}
	return slices.Clone(rec.results), nil
}

// Shutdown stops and removes every live subscription. Each stop failure is
// logged and the sweep continues; the registry is empty afterwards. Shutdown
// does not wait for in-flight callbacks.
func (r *Registry) Shutdown(stop StopFunc) {
	for _, kind := range Kinds {
		for _, handle := range r.Handles(kind) {
			sub, err := r.Lookup(kind, handle)
			if err != nil {
				continue
			}
			if stop != nil {
				if err := stop(sub); err != nil {
					r.logger.Warn("stop failed during shutdown",
						"kind", kind.String(),
						"handle", handle,
						"error", err)
				}
			}
			_, _ = r.Remove(kind, handle, ReasonShutdown)
		}
	}
}

// Snapshot returns all active subscriptions ordered by kind then handle.
func (r *Registry) Snapshot() []Subscription {
	var out []Subscription
	for _, kind := range Kinds {
		for _, handle := range r.Handles(kind) {
			if sub, err := r.Lookup(kind, handle); err == nil {
				out = append(out, sub)
			}
		}
	}
	return out
}

package owner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Owner errors.
var (
	ErrNotRunning = errors.New("owner is not running")
	ErrPanicked   = errors.New("owner task panicked")
)

// request is a unit of work handed to the owner goroutine.
type request struct {
	fn    func() error
	reply chan error
}

// Owner runs submitted functions one at a time on its own goroutine.
type Owner struct {
	reqs chan request

	mu      sync.Mutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// New creates an owner. Call Start before submitting work.
func New() *Owner {
	return &Owner{
		reqs: make(chan request),
	}
}

// Start launches the owner goroutine. Calling Start on a running owner is a no-op.
func (o *Owner) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running.Load() {
		return
	}
	o.stopCh = make(chan struct{})
	o.running.Store(true)

	o.wg.Add(1)
	go o.loop(o.stopCh)
}

// Stop terminates the owner goroutine after the request in progress (if any)
// completes. Pending callers blocked in Do receive ErrNotRunning.
func (o *Owner) Stop() {
	o.mu.Lock()
	if !o.running.Swap(false) {
		o.mu.Unlock()
		return
	}
	close(o.stopCh)
	o.mu.Unlock()

	o.wg.Wait()
}

// Running reports whether the owner goroutine is active.
func (o *Owner) Running() bool {
	return o.running.Load()
}

// Do runs fn on the owner goroutine and returns its error.
func (o *Owner) Do(ctx context.Context, fn func() error) error {
	if !o.running.Load() {
		return ErrNotRunning
	}

	o.mu.Lock()
	stopCh := o.stopCh
	o.mu.Unlock()

	req := request{fn: fn, reply: make(chan error, 1)}

	select {
	case o.reqs <- req:
	case <-stopCh:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	// Accepted: wait for completion even if ctx is cancelled meanwhile.
	return <-req.reply
}

// Call runs fn on the owner goroutine and returns its value.
func Call[T any](ctx context.Context, o *Owner, fn func() (T, error)) (T, error) {
	var result T
	err := o.Do(ctx, func() error {
		v, err := fn()
		result = v
		return err
	})
	return result, err
}

func (o *Owner) loop(stopCh chan struct{}) {
	defer o.wg.Done()

	for {
		select {
		case <-stopCh:
			return
		case req := <-o.reqs:
			req.reply <- o.run(req.fn)
		}
	}
}

// run executes fn, converting a panic into an error so the owner survives.
func (o *Owner) run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return fn()
}

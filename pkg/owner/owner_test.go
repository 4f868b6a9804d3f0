package owner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestOwnerRunsOnSingleGoroutine(t *testing.T) {
	o := New()
	o.Start()
	defer o.Stop()

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := o.Do(context.Background(), func() error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("Do() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("max concurrent tasks = %d, want 1", maxSeen)
	}
}

func TestOwnerCallReturnsValue(t *testing.T) {
	o := New()
	o.Start()
	defer o.Stop()

	v, err := Call(context.Background(), o, func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if v != 42 {
		t.Errorf("Call() = %d, want 42", v)
	}
}

func TestOwnerPropagatesError(t *testing.T) {
	o := New()
	o.Start()
	defer o.Stop()

	want := errors.New("boom")
	if err := o.Do(context.Background(), func() error { return want }); !errors.Is(err, want) {
		t.Errorf("Do() error = %v, want %v", err, want)
	}
}

func TestOwnerRecoversPanic(t *testing.T) {
	o := New()
	o.Start()
	defer o.Stop()

	err := o.Do(context.Background(), func() error { panic("bad listener") })
	if !errors.Is(err, ErrPanicked) {
		t.Fatalf("Do() error = %v, want ErrPanicked", err)
	}

	// Owner must still serve requests.
	if err := o.Do(context.Background(), func() error { return nil }); err != nil {
		t.Errorf("Do() after panic error = %v", err)
	}
}

func TestOwnerNotRunning(t *testing.T) {
	o := New()

	if err := o.Do(context.Background(), func() error { return nil }); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Do() before Start error = %v, want ErrNotRunning", err)
	}

	o.Start()
	o.Stop()

	if err := o.Do(context.Background(), func() error { return nil }); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Do() after Stop error = %v, want ErrNotRunning", err)
	}
}

func TestOwnerContextCancelledWhileQueued(t *testing.T) {
	o := New()
	o.Start()
	defer o.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	go o.Do(context.Background(), func() error {
		close(started)
		<-release
		return nil
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := o.Do(ctx, func() error { return nil })
	close(release)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Do() error = %v, want DeadlineExceeded", err)
	}
}

func TestOwnerStartStopIdempotent(t *testing.T) {
	o := New()
	o.Start()
	o.Start()
	if !o.Running() {
		t.Error("Running() = false after Start")
	}
	o.Stop()
	o.Stop()
	if o.Running() {
		t.Error("Running() = true after Stop")
	}
}

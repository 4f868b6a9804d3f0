package alarm

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// Alarm errors.
var (
	ErrAlarmNotFound = errors.New("alarm not found")
	ErrInvalidDelay  = errors.New("invalid delay")
	ErrClosed        = errors.New("alarm manager closed")
)

// MaxDelay is the longest delay accepted by Set.
const MaxDelay = 24 * time.Hour

// Alarm is a pending one-shot alarm.
type Alarm struct {
	ID      string
	SetAt   time.Time
	Delay   time.Duration
	Payload any

	timer *time.Timer
	seq   uint64
}

// FiresAt returns when the alarm will fire.
func (a *Alarm) FiresAt() time.Time {
	return a.SetAt.Add(a.Delay)
}

// Remaining returns the time until the alarm fires.
func (a *Alarm) Remaining() time.Duration {
	if r := a.Delay - time.Since(a.SetAt); r > 0 {
		return r
	}
	return 0
}

// Manager schedules alarms.
type Manager struct {
	mu     sync.Mutex
	alarms map[string]*Alarm
	seq    uint64
	closed bool
	onFire func(id string, payload any)
}

// NewManager creates an alarm manager.
func NewManager() *Manager {
	return &Manager{alarms: make(map[string]*Alarm)}
}

// OnFire sets the callback invoked when an alarm fires.
func (m *Manager) OnFire(fn func(id string, payload any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFire = fn
}

// Set schedules or replaces the alarm with the given id.
func (m *Manager) Set(id string, delay time.Duration, payload any) error {
	if delay < 0 || delay > MaxDelay {
		return ErrInvalidDelay
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	if existing, ok := m.alarms[id]; ok {
		existing.timer.Stop()
	}

	m.seq++
	a := &Alarm{
		ID:      id,
		SetAt:   time.Now(),
		Delay:   delay,
		Payload: payload,
		seq:     m.seq,
	}
	seq := a.seq
	a.timer = time.AfterFunc(delay, func() { m.fire(id, seq) })
	m.alarms[id] = a
	return nil
}

// Schedule is Set under the name used by alarm consumers.
func (m *Manager) Schedule(id string, delay time.Duration, payload any) error {
	return m.Set(id, delay, payload)
}

// Cancel removes a pending alarm without firing it.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.alarms[id]
	if !ok {
		return ErrAlarmNotFound
	}
	a.timer.Stop()
	delete(m.alarms, id)
	return nil
}

// CancelAll removes every pending alarm.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.alarms {
		a.timer.Stop()
		delete(m.alarms, id)
	}
}

// Get returns a copy of the pending alarm with the given id.
func (m *Manager) Get(id string) (*Alarm, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alarms[id]
	if !ok {
		return nil, false
	}
	return &Alarm{ID: a.ID, SetAt: a.SetAt, Delay: a.Delay, Payload: a.Payload}, true
}

// Pending returns the ids of all pending alarms, sorted.
func (m *Manager) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.alarms))
	for id := range m.alarms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of pending alarms.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.alarms)
}

// Close cancels all alarms and rejects further Set calls.
func (m *Manager) Close() {
	m.CancelAll()
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func (m *Manager) fire(id string, seq uint64) {
	m.mu.Lock()
	a, ok := m.alarms[id]
	// A replaced alarm's timer may already be running; only the current one fires.
	if !ok || a.seq != seq {
		m.mu.Unlock()
		return
	}
	delete(m.alarms, id)
	callback := m.onFire
	m.mu.Unlock()

	if callback != nil {
		callback(id, a.Payload)
	}
}

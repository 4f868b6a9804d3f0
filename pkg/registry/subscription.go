package registry

import (
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/wifi"
)

// State is the live state of a subscription.
type State uint8

// Subscription states.
const (
	StateActive State = iota
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "stopped"
}

// RemoveReason says why a subscription left the registry.
type RemoveReason string

// Remove reasons.
const (
	ReasonStopped  RemoveReason = "stopped"
	ReasonFailed   RemoveReason = "failed"
	ReasonShutdown RemoveReason = "shutdown"
	ReasonRollback RemoveReason = "rollback"
)

// Subscription is a snapshot of one registered listener.
type Subscription struct {
	Handle    int
	Kind      Kind
	State     State
	Listener  any
	CreatedAt time.Time

	// Deliveries counts events delivered for this subscription.
	Deliveries uint64

	// LastOutcome is the outcome of the most recent delivery.
	LastOutcome string
}

// record is the registry-owned subscription state.
type record struct {
	Subscription

	// results is the last result batch (KindScan only).
	results    []wifi.ScanResult
	hasResults bool
}

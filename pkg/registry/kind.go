package registry

import (
	"fmt"
	"strings"
)

// Kind identifies a subscription kind.
type Kind uint8

// Subscription kinds.
const (
	KindScan Kind = iota + 1
	KindChange
	KindBssid
)

// Kinds lists every subscription kind in shutdown order.
var Kinds = []Kind{KindScan, KindChange, KindBssid}

// Event types used as the event name prefix.
const (
	EventTypeScan   = "WifiScannerScan"
	EventTypeChange = "WifiScannerChange"
	EventTypeBssid  = "WifiScannerBssid"
)

// Callback outcomes.
const (
	OutcomeSuccess       = "onSuccess"
	OutcomeFailure       = "onFailure"
	OutcomeResults       = "onResults"
	OutcomeFullResult    = "onFullResult"
	OutcomePeriodChanged = "onPeriodChanged"
	OutcomeChanging      = "onChanging"
	OutcomeQuiescence    = "onQuiescence"
	OutcomeBssidFound    = "onBssidFound"
	OutcomeBssidLost     = "onBssidLost"
)

// EventType returns the event name prefix for the kind.
func (k Kind) EventType() string {
	switch k {
	case KindScan:
		return EventTypeScan
	case KindChange:
		return EventTypeChange
	case KindBssid:
		return EventTypeBssid
	default:
		return fmt.Sprintf("WifiScannerUnknown%d", uint8(k))
	}
}

// String returns the short kind name.
func (k Kind) String() string {
	switch k {
	case KindScan:
		return "scan"
	case KindChange:
		return "change"
	case KindBssid:
		return "bssid"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= KindScan && k <= KindBssid
}

// ParseKind parses a short kind name or an event type.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "scan", strings.ToLower(EventTypeScan):
		return KindScan, nil
	case "change", strings.ToLower(EventTypeChange):
		return KindChange, nil
	case "bssid", strings.ToLower(EventTypeBssid):
		return KindBssid, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

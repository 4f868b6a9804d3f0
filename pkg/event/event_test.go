package event

import (
	"testing"
	"time"
)

func TestCompose(t *testing.T) {
	if got := Compose("WifiScannerScan", 12, "onResults"); got != "WifiScannerScan12onResults" {
		t.Errorf("Compose() = %q, want %q", got, "WifiScannerScan12onResults")
	}
}

func TestNewFillsPayload(t *testing.T) {
	before := time.Now().Unix()
	ev := New("WifiScannerBssid", 2, "onBssidLost", map[string]any{"Results": []string{"x"}})

	if ev.Name != "WifiScannerBssid2onBssidLost" {
		t.Errorf("Name = %q", ev.Name)
	}
	if ev.Data[KeyType] != "onBssidLost" {
		t.Errorf("Data[Type] = %v, want onBssidLost", ev.Data[KeyType])
	}
	ts, ok := ev.Data[KeyTimestamp].(int64)
	if !ok || ts < before {
		t.Errorf("Data[Timestamp] = %v, want unix seconds >= %d", ev.Data[KeyTimestamp], before)
	}
	if _, ok := ev.Data["Results"]; !ok {
		t.Error("caller data was dropped")
	}
	if len(ev.ID) != 26 {
		t.Errorf("ID = %q, want 26 char ULID", ev.ID)
	}
}

func TestNewIDMonotonic(t *testing.T) {
	now := time.Now()
	prev := NewID(now)
	for i := 0; i < 100; i++ {
		id := NewID(now)
		if id <= prev {
			t.Fatalf("NewID() = %s, not greater than %s", id, prev)
		}
		prev = id
	}
}

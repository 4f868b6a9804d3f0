package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/log"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.cbor")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

var testTime = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

// sessionEvents is a short scan session: a start request and its response,
// the subscription becoming active, and one delivered result batch.
func sessionEvents() []log.Event {
	code := wire.CodeNotFound
	took := 1500 * time.Microsecond
	return []log.Event{
		{
			Timestamp: testTime, ConnectionID: "conn-aaaa-1111", SessionID: "s1",
			Direction: log.DirectionIn, Layer: log.LayerRPC, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Type: wire.TypeRequest, RequestID: 1, Method: "wifiScannerStartScan",
				Payload: map[string]any{"settings": map[string]any{"periodInMs": uint64(1000)}}},
		},
		{
			Timestamp: testTime.Add(time.Millisecond), ConnectionID: "conn-aaaa-1111", SessionID: "s1",
			Direction: log.DirectionOut, Layer: log.LayerRPC, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Type: wire.TypeResponse, RequestID: 1, Method: "wifiScannerStartScan",
				Payload: uint64(1), ProcessingTime: &took},
		},
		{
			Timestamp: testTime.Add(2 * time.Millisecond), ConnectionID: "conn-aaaa-1111", SessionID: "s1",
			Layer: log.LayerFacade, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{Entity: log.StateEntitySubscription, NewState: "ACTIVE", Kind: "Scan", Handle: 1},
		},
		{
			Timestamp: testTime.Add(time.Second), ConnectionID: "conn-aaaa-1111", SessionID: "s1",
			Direction: log.DirectionOut, Layer: log.LayerFacade, Category: log.CategoryDelivery,
			Delivery: &log.DeliveryEvent{EventID: "01J0000000000000000000000", Name: "WifiScannerScan1onResults",
				Kind: "Scan", Handle: 1, Outcome: "onResults"},
		},
		{
			Timestamp: testTime.Add(2 * time.Second), ConnectionID: "conn-aaaa-1111", SessionID: "s1",
			Direction: log.DirectionIn, Layer: log.LayerRPC, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Type: wire.TypeRequest, RequestID: 2, Method: "wifiScannerStopScan"},
		},
		{
			Timestamp: testTime.Add(2*time.Second + time.Millisecond), ConnectionID: "conn-aaaa-1111", SessionID: "s1",
			Direction: log.DirectionOut, Layer: log.LayerRPC, Category: log.CategoryMessage,
			Message: &log.MessageEvent{Type: wire.TypeResponse, RequestID: 2, Method: "wifiScannerStopScan", Code: &code},
		},
	}
}

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

func logJSON(t *testing.T, ev Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(ev)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsFrameEvent(t *testing.T) {
	entry := logJSON(t, Event{
		Timestamp:    time.Now(),
		ConnectionID: "conn-123",
		Direction:    DirectionIn,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
		Frame:        &FrameEvent{Size: 256},
	})

	if entry["conn_id"] != "conn-123" {
		t.Errorf("conn_id: got %v, want %q", entry["conn_id"], "conn-123")
	}
	if entry["layer"] != "TRANSPORT" {
		t.Errorf("layer: got %v, want TRANSPORT", entry["layer"])
	}
	if entry["frame_size"] != float64(256) {
		t.Errorf("frame_size: got %v, want 256", entry["frame_size"])
	}
}

func TestSlogAdapterLogsMessageEvent(t *testing.T) {
	code := wire.CodeInvalidArgument
	entry := logJSON(t, Event{
		ConnectionID: "c",
		SessionID:    "s",
		Layer:        LayerRPC,
		Message: &MessageEvent{
			Type:      wire.TypeResponse,
			RequestID: 9,
			Method:    "wifiScannerStartScan",
			Code:      &code,
		},
	})

	if entry["msg_type"] != "RESPONSE" {
		t.Errorf("msg_type: got %v", entry["msg_type"])
	}
	if entry["method"] != "wifiScannerStartScan" {
		t.Errorf("method: got %v", entry["method"])
	}
	if entry["code"] != "INVALID_ARGUMENT" {
		t.Errorf("code: got %v", entry["code"])
	}
	if entry["session_id"] != "s" {
		t.Errorf("session_id: got %v", entry["session_id"])
	}
}

func TestSlogAdapterLogsDeliveryAndState(t *testing.T) {
	entry := logJSON(t, Event{
		Layer:    LayerFacade,
		Category: CategoryDelivery,
		Delivery: &DeliveryEvent{EventID: "01H", Name: "WifiScannerScan1onResults"},
	})
	if entry["event"] != "WifiScannerScan1onResults" {
		t.Errorf("event: got %v", entry["event"])
	}

	entry = logJSON(t, Event{
		Layer:    LayerFacade,
		Category: CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   StateEntitySubscription,
			NewState: "active",
			Kind:     "bssid",
			Handle:   4,
		},
	})
	if entry["entity"] != "SUBSCRIPTION" || entry["kind"] != "bssid" || entry["handle"] != float64(4) {
		t.Errorf("state entry = %v", entry)
	}
}

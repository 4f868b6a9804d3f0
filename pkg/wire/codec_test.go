package wire

import (
	"errors"
	"testing"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/event"
)

func TestEnvelopeRequestRoundTrip(t *testing.T) {
	env := RequestEnvelope(&Request{
		ID:     7,
		Method: "wifiScannerStartScan",
		Params: Params{
			"settings": map[string]any{"periodInMs": 1000, "reportEvents": 1},
		},
	})

	data, err := EncodeEnvelope(env)
	if err != nil {
		t.Fatalf("EncodeEnvelope() error = %v", err)
	}
	got, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}

	if got.Type != TypeRequest || got.Request.ID != 7 || got.Request.Method != "wifiScannerStartScan" {
		t.Errorf("DecodeEnvelope() = %+v", got.Request)
	}
	settings, err := got.Request.Params.Object("settings")
	if err != nil {
		t.Fatalf("Object(settings) error = %v", err)
	}
	if settings["periodInMs"] != uint64(1000) {
		t.Errorf("periodInMs = %#v, want uint64(1000)", settings["periodInMs"])
	}
}

func TestResponseResultDecode(t *testing.T) {
	resp, err := NewResponse(3, []int{1, 2, 5})
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}

	data, err := EncodeEnvelope(ResponseEnvelope(resp))
	if err != nil {
		t.Fatalf("EncodeEnvelope() error = %v", err)
	}
	env, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}

	var handles []int
	if err := env.Response.Decode(&handles); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(handles) != 3 || handles[2] != 5 {
		t.Errorf("handles = %v, want [1 2 5]", handles)
	}
}

func TestResponseErrorDecode(t *testing.T) {
	env := ResponseEnvelope(NewErrorResponse(4, CodeNotFound, "scan 9 does not exist"))
	data, err := EncodeEnvelope(env)
	if err != nil {
		t.Fatalf("EncodeEnvelope() error = %v", err)
	}
	got, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}

	err = got.Response.Decode(nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Decode() error = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("error matched the wrong code")
	}
	if got.Response.IsSuccess() {
		t.Error("IsSuccess() = true, want false")
	}
}

func TestNotificationRoundTrip(t *testing.T) {
	ev := event.New("WifiScannerScan", 2, "onResults", map[string]any{"Results": []any{}})

	data, err := EncodeEnvelope(NotificationEnvelope(&Notification{Event: ev}))
	if err != nil {
		t.Fatalf("EncodeEnvelope() error = %v", err)
	}
	got, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}

	n := got.Notification.Event
	if n.Name != ev.Name || n.ID != ev.ID || n.Handle != 2 || n.Outcome != "onResults" {
		t.Errorf("event = %+v, want %+v", n, ev)
	}
	if n.Timestamp.Sub(ev.Timestamp).Abs() > time.Millisecond {
		t.Errorf("Timestamp = %v, want %v", n.Timestamp, ev.Timestamp)
	}
	if n.Data["Type"] != "onResults" {
		t.Errorf("Data[Type] = %v", n.Data["Type"])
	}
}

func TestEnvelopeValidate(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
	}{
		{"empty", Envelope{Type: TypeRequest}},
		{"type mismatch", Envelope{Type: TypeResponse, Request: &Request{ID: 1, Method: "x"}}},
		{"two payloads", Envelope{Type: TypeHello, Hello: &Hello{}, HelloAck: &HelloAck{}}},
		{"zero request id", Envelope{Type: TypeRequest, Request: &Request{Method: "x"}}},
		{"empty method", Envelope{Type: TypeRequest, Request: &Request{ID: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EncodeEnvelope(&tt.env); !errors.Is(err, ErrInvalidEnvelope) {
				t.Errorf("EncodeEnvelope() error = %v, want ErrInvalidEnvelope", err)
			}
		})
	}
}

func TestDecodeEnvelopeGarbage(t *testing.T) {
	if _, err := DecodeEnvelope([]byte{0xFF, 0x00}); err == nil {
		t.Error("DecodeEnvelope(garbage) error = nil")
	}
}

func TestCodeString(t *testing.T) {
	if CodeNotFound.String() != "NOT_FOUND" {
		t.Errorf("String() = %s", CodeNotFound.String())
	}
	err := &Error{Code: CodeInvalidArgument, Message: "periodInMs is required"}
	if err.Error() != "INVALID_ARGUMENT: periodInMs is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}

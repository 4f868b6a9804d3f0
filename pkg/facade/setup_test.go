package facade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/rpc"
	"github.com/rcbridge/rcbridge-go/pkg/version"
	"github.com/rcbridge/rcbridge-go/pkg/wifi"
	"github.com/rcbridge/rcbridge-go/pkg/wifi/sim"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// chanConn collects the frames a session sends.
type chanConn struct{ frames chan []byte }

func (c *chanConn) Send(data []byte) error {
	c.frames <- data
	return nil
}

type sessionHarness struct {
	t       *testing.T
	conn    *chanConn
	session *rpc.Session
	nextID  uint32
}

func newSessionHarness(t *testing.T, deps Deps) *sessionHarness {
	t.Helper()
	conn := &chanConn{frames: make(chan []byte, 64)}
	s := rpc.NewSession(conn, rpc.SessionConfig{ID: "test"})
	require.NoError(t, Setup(deps)(s))
	t.Cleanup(s.Close)
	return &sessionHarness{t: t, conn: conn, session: s}
}

// call sends a request and waits for its response, skipping notifications.
func (h *sessionHarness) call(method string, params wire.Params) *wire.Response {
	h.t.Helper()
	h.nextID++
	data, err := wire.EncodeEnvelope(wire.RequestEnvelope(&wire.Request{ID: h.nextID, Method: method, Params: params}))
	require.NoError(h.t, err)
	h.session.HandleFrame(data)

	timeout := time.After(5 * time.Second)
	for {
		select {
		case frame := <-h.conn.frames:
			env, err := wire.DecodeEnvelope(frame)
			require.NoError(h.t, err)
			if env.Type == wire.TypeResponse && env.Response.ID == h.nextID {
				return env.Response
			}
		case <-timeout:
			h.t.Fatalf("no response to %s", method)
			return nil
		}
	}
}

func TestSetupCoversManifest(t *testing.T) {
	m, err := version.LoadCurrentManifest()
	require.NoError(t, err)

	h := newSessionHarness(t, Deps{Manifest: m})
	res := m.Validate(h.session.Methods())
	assert.True(t, res.Valid, "missing %v extra %v", res.Missing, res.Extra)
}

func TestSessionScanFlow(t *testing.T) {
	scanner := sim.New(sim.Config{
		AccessPoints: []sim.AccessPoint{
			{SSID: "lab", BSSID: "aa:bb:cc:dd:ee:01", Level: -50, Frequency: 2412},
		},
		Interval: 10 * time.Millisecond,
		Jitter:   -1,
	})
	defer scanner.Close()

	h := newSessionHarness(t, Deps{Scanner: scanner})

	resp := h.call(MethodStartScan, wire.Params{"settings": `{"periodInMs": 10, "reportEvents": 1}`})
	var handle int
	require.NoError(t, resp.Decode(&handle))
	assert.Equal(t, 1, handle)

	resp = h.call(MethodEventWaitAndGet, wire.Params{"name": "WifiScannerScan1onResults", "timeoutMs": 2000})
	var ev event.Event
	require.NoError(t, resp.Decode(&ev))
	assert.Equal(t, "onResults", ev.Outcome)

	resp = h.call(MethodGetScanResults, wire.Params{"handle": handle})
	var results []wifi.ScanResult
	require.NoError(t, resp.Decode(&results))
	require.NotEmpty(t, results)
	assert.Equal(t, "aa:bb:cc:dd:ee:01", results[0].BSSID)

	resp = h.call(MethodListScans, nil)
	var handles []int
	require.NoError(t, resp.Decode(&handles))
	assert.Equal(t, []int{1}, handles)

	resp = h.call(MethodStopScan, wire.Params{"handle": handle})
	require.True(t, resp.IsSuccess(), "stop: %v", resp.Error)
	assert.Equal(t, 0, scanner.Active())

	resp = h.call(MethodStopScan, wire.Params{"handle": handle})
	require.NotNil(t, resp.Error)
	assert.Equal(t, wire.CodeNotFound, resp.Error.Code)
}

func TestSessionErrorCodes(t *testing.T) {
	scanner := sim.New(sim.Config{})
	defer scanner.Close()
	h := newSessionHarness(t, Deps{Scanner: scanner})

	tests := []struct {
		method string
		params wire.Params
		code   wire.Code
	}{
		{MethodStartScan, wire.Params{"settings": `{"reportEvents": 1}`}, wire.CodeInvalidArgument},
		{MethodStartScan, wire.Params{"settings": `{not json`}, wire.CodeInvalidArgument},
		{MethodStartScan, nil, wire.CodeInvalidArgument},
		{MethodGetScanResults, wire.Params{"handle": 42}, wire.CodeNotFound},
		{MethodStopTrackingChange, wire.Params{"handle": 1}, wire.CodeNotFound},
		{MethodStartTrackingBssids, wire.Params{"bssidSpecs": []string{"aa -40"}, "apLostThreshold": 1}, wire.CodeInvalidArgument},
		{MethodStartTrackingChange, wire.Params{"bssidSpecs": []string{"aa -40 2412"}}, wire.CodeInvalidArgument},
		{MethodEventWaitAndGet, wire.Params{"name": "never", "timeoutMs": 5}, wire.CodeTimeout},
		{MethodPowerTestStatus, nil, wire.CodeUnavailable},
		{MethodDescribe, wire.Params{"method": "nope"}, wire.CodeNotFound},
		{"noSuchMethod", nil, wire.CodeUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := h.call(tt.method, tt.params)
			require.NotNil(t, resp.Error, "expected an error")
			if resp.Error.Code != tt.code {
				t.Errorf("%s code = %v, want %v (%s)", tt.method, resp.Error.Code, tt.code, resp.Error.Message)
			}
		})
	}
}

func TestSessionCloseShutsDownSubscriptions(t *testing.T) {
	scanner := sim.New(sim.Config{Interval: time.Hour})
	defer scanner.Close()
	h := newSessionHarness(t, Deps{Scanner: scanner})

	for i := 0; i < 3; i++ {
		resp := h.call(MethodStartScan, wire.Params{"settings": map[string]any{"periodInMs": 1000, "reportEvents": 0}})
		require.True(t, resp.IsSuccess())
	}
	require.Equal(t, 3, scanner.Active())

	h.session.Close()
	assert.Equal(t, 0, scanner.Active())
	assert.Zero(t, h.session.Registry().Len())
}

package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbridge/rcbridge-go/pkg/a2dp"
	"github.com/rcbridge/rcbridge-go/pkg/config"
	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/facade"
	"github.com/rcbridge/rcbridge-go/pkg/journal"
	"github.com/rcbridge/rcbridge-go/pkg/log"
	"github.com/rcbridge/rcbridge-go/pkg/rpc"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Listen = "127.0.0.1:0"
	cfg.Secret = "s3cret"
	cfg.MDNS.Enabled = false
	cfg.Scanner.Interval = 20 * time.Millisecond
	cfg.Log.ProtocolLog = filepath.Join(dir, "capture.cbor")
	cfg.Journal.Path = filepath.Join(dir, "journal.db")
	cfg.A2DP.StatusLog = filepath.Join(dir, "status.txt")
	require.NoError(t, cfg.Validate())
	return cfg
}

func startBridge(t *testing.T, cfg *config.Config) *bridge {
	t.Helper()
	b, err := newBridge(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NoError(t, b.Start(context.Background()))
	return b
}

func TestBridgeScanSession(t *testing.T) {
	cfg := testConfig(t)
	b := startBridge(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := rpc.Dial(ctx, b.server.Addr(), rpc.ClientConfig{Secret: []byte(cfg.Secret)})
	require.NoError(t, err)

	handle, err := rpc.CallResult[int](ctx, client, facade.MethodStartScan,
		wire.Params{"settings": map[string]any{"periodInMs": 20, "reportEvents": 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, handle)

	ev, err := rpc.CallResult[event.Event](ctx, client, facade.MethodEventWaitAndGet,
		wire.Params{"name": "WifiScannerScan1onResults", "timeoutMs": 2000})
	require.NoError(t, err)
	assert.Equal(t, "WifiScannerScan1onResults", ev.Name)

	require.NoError(t, client.Close())
	b.Close()

	j, err := journal.Open(cfg.Journal.Path)
	require.NoError(t, err)
	defer j.Close()

	records, err := j.List(journal.Filter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Active())
	assert.Positive(t, records[0].Deliveries)

	reader, err := log.NewReader(cfg.Log.ProtocolLog)
	require.NoError(t, err)
	defer reader.Close()
	_, err = reader.Next()
	assert.NoError(t, err)
}

func TestBridgePowerTestStatus(t *testing.T) {
	cfg := testConfig(t)
	b := startBridge(t, cfg)
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := rpc.Dial(ctx, b.server.Addr(), rpc.ClientConfig{Secret: []byte(cfg.Secret)})
	require.NoError(t, err)
	defer client.Close()

	status, err := rpc.CallResult[a2dp.Status](ctx, client, facade.MethodPowerTestStatus, nil)
	require.NoError(t, err)
	assert.Equal(t, a2dp.PhaseIdle, status.Phase)

	_, err = os.Stat(cfg.A2DP.StatusLog)
	assert.NoError(t, err)
}

func TestBridgeWithoutPowerTest(t *testing.T) {
	cfg := testConfig(t)
	cfg.A2DP.Enabled = false
	cfg.Journal.Path = ""
	cfg.Log.ProtocolLog = ""
	b := startBridge(t, cfg)
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := rpc.Dial(ctx, b.server.Addr(), rpc.ClientConfig{Secret: []byte(cfg.Secret)})
	require.NoError(t, err)
	defer client.Close()

	err = client.Call(ctx, facade.MethodPowerTestStatus, nil, nil)
	var werr *wire.Error
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, wire.CodeUnavailable, werr.Code)
}

func TestListenPort(t *testing.T) {
	assert.Equal(t, 9999, listenPort("127.0.0.1:9999"))
	assert.Equal(t, 0, listenPort("nonsense"))
}

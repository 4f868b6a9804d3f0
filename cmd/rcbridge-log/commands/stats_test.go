package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbridge/rcbridge-go/pkg/log"
)

func TestCollect(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	stats, err := Collect(path)
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalEvents)
	assert.Equal(t, 4, stats.EventsByLayer[log.LayerRPC])
	assert.Equal(t, 2, stats.EventsByLayer[log.LayerFacade])
	assert.Equal(t, 1, stats.EventsByCategory[log.CategoryDelivery])
	assert.Equal(t, map[string]int{"wifiScannerStartScan": 1, "wifiScannerStopScan": 1}, stats.Methods)
	assert.Equal(t, map[string]int{"onResults": 1}, stats.Deliveries)

	conn := stats.Connections["conn-aaaa-1111"]
	require.NotNil(t, conn)
	assert.Equal(t, "s1", conn.SessionID)
	assert.Equal(t, 2, conn.Requests)
	assert.Equal(t, 1, conn.Failed)
}

func TestRunStatsOutput(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	output := buf.String()

	for _, want := range []string{"Total Events: 6", "RPC:", "FACADE:", "DELIVERY:", "wifiScannerStartScan:", "onResults:", "Connections: 1", "[conn-aaa]", "Requests: 2 (1 failed)"} {
		if !strings.Contains(output, want) {
			t.Errorf("RunStats() missing %q in:\n%s", want, output)
		}
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	assert.Contains(t, buf.String(), "Total Events: 0")
	assert.NotContains(t, buf.String(), "Time Range")
}

package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbridge/rcbridge-go/pkg/event"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, event.DefaultQueueSize, cfg.Events.QueueSize)
	assert.True(t, cfg.Scanner.Simulated)
	assert.NotEmpty(t, cfg.Scanner.AccessPoints)
	assert.NotEmpty(t, cfg.MDNS.Instance)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default().Listen, cfg.Listen)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rcbridge.yaml")
	data := `
listen: "127.0.0.1:7000"
secret: s3cret
log:
  level: debug
  format: json
  protocol_log: /tmp/capture.cbor
journal:
  path: /tmp/journal.db
mdns:
  enabled: false
  ttl: 30s
events:
  queue_size: 16
scanner:
  simulated: true
  interval: 250ms
  access_points:
    - ssid: lab
      bssid: "AA:BB:CC:DD:EE:01"
      level: -40
      frequency: 5180
a2dp:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 7000, cfg.Port())
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/capture.cbor", cfg.Log.ProtocolLog)
	assert.Equal(t, "/tmp/journal.db", cfg.Journal.Path)
	assert.False(t, cfg.MDNS.Enabled)
	assert.Equal(t, 30*time.Second, cfg.MDNS.TTL)
	assert.Equal(t, 16, cfg.Events.QueueSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Scanner.Interval)
	require.Len(t, cfg.Scanner.AccessPoints, 1)
	assert.Equal(t, "lab", cfg.Scanner.AccessPoints[0].SSID)
	assert.False(t, cfg.A2DP.Enabled)

	// Unset sections keep their defaults.
	assert.Equal(t, "rcbridge", cfg.Name)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("listen: \":1\"\nbogus: 1\n"), 0o600))
	_, err = Load(unknown)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("scanner: [\n"), 0o600))
	_, err = Load(broken)
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	cfg := Default()
	require.NoError(t, Parse(nil, cfg))
	assert.Equal(t, Default().Listen, cfg.Listen)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"listen without port", func(c *Config) { c.Listen = "localhost" }, ErrInvalidListen},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
		{"queue size", func(c *Config) { c.Events.QueueSize = 0 }, ErrInvalidQueueSize},
		{"mdns instance", func(c *Config) { c.MDNS.Instance = "" }, ErrInvalidMDNS},
		{"mdns instance long", func(c *Config) { c.MDNS.Instance = strings.Repeat("x", 64) }, ErrInvalidMDNS},
		{"no scanner", func(c *Config) { c.Scanner.Simulated = false }, ErrNoScanner},
		{"interval", func(c *Config) { c.Scanner.Interval = -time.Second }, ErrInvalidInterval},
		{"bssid", func(c *Config) { c.Scanner.AccessPoints[0].BSSID = "nope" }, ErrInvalidAccessPoint},
		{"frequency", func(c *Config) { c.Scanner.AccessPoints[0].Frequency = 0 }, ErrInvalidAccessPoint},
		{"level", func(c *Config) { c.Scanner.AccessPoints[0].Level = 3 }, ErrInvalidAccessPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMDNSDisabledIgnoresInstance(t *testing.T) {
	cfg := Default()
	cfg.MDNS.Enabled = false
	cfg.MDNS.Instance = ""

	assert.NoError(t, cfg.Validate())
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := LogConfig{Level: tt.in}.SlogLevel()
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
}

func TestSimConfig(t *testing.T) {
	s := ScannerConfig{
		Interval: time.Second,
		AccessPoints: []AccessPointConfig{
			{SSID: "lab", BSSID: "AA:BB:CC:DD:EE:01", Level: -40, Frequency: 2412},
		},
	}

	got := s.SimConfig(nil)

	assert.Equal(t, time.Second, got.Interval)
	require.Len(t, got.AccessPoints, 1)
	assert.Equal(t, "aa:bb:cc:dd:ee:01", got.AccessPoints[0].BSSID)
	assert.Equal(t, 2412, got.AccessPoints[0].Frequency)
}

func TestPortInvalid(t *testing.T) {
	cfg := &Config{Listen: "nonsense"}
	assert.Equal(t, 0, cfg.Port())
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rcbridge/rcbridge-go/pkg/discovery"
	"github.com/rcbridge/rcbridge-go/pkg/event"
	"github.com/rcbridge/rcbridge-go/pkg/wifi/sim"
)

// DefaultPort is the default RPC listen port.
const DefaultPort = 9999

// Configuration errors.
var (
	ErrInvalidListen      = errors.New("invalid listen address")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
	ErrInvalidQueueSize   = errors.New("invalid event queue size")
	ErrInvalidInterval    = errors.New("invalid scanner interval")
	ErrInvalidAccessPoint = errors.New("invalid access point")
	ErrInvalidMDNS        = errors.New("invalid mdns settings")
	ErrNoScanner          = errors.New("no scanner backend configured")
)

// Config is the server configuration.
type Config struct {
	Listen  string        `yaml:"listen"`
	Secret  string        `yaml:"secret"`
	Name    string        `yaml:"name"`
	Log     LogConfig     `yaml:"log"`
	Journal JournalConfig `yaml:"journal"`
	MDNS    MDNSConfig    `yaml:"mdns"`
	Events  EventsConfig  `yaml:"events"`
	Scanner ScannerConfig `yaml:"scanner"`
	A2DP    A2DPConfig    `yaml:"a2dp"`
}

// LogConfig configures operational and protocol logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`

	// ProtocolLog is the path of the CBOR capture file. Empty disables it.
	ProtocolLog string `yaml:"protocol_log"`
}

// JournalConfig configures the subscription journal.
type JournalConfig struct {
	// Path of the SQLite database. Empty disables the journal.
	Path string `yaml:"path"`
}

// MDNSConfig configures service advertisement.
type MDNSConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Instance  string        `yaml:"instance"`
	Interface string        `yaml:"interface"`
	TTL       time.Duration `yaml:"ttl"`
}

// EventsConfig configures per-session event queues.
type EventsConfig struct {
	QueueSize int `yaml:"queue_size"`
}

// ScannerConfig configures the scanner backend.
type ScannerConfig struct {
	Simulated    bool                `yaml:"simulated"`
	Interval     time.Duration       `yaml:"interval"`
	AccessPoints []AccessPointConfig `yaml:"access_points"`
}

// AccessPointConfig is a simulated access point.
type AccessPointConfig struct {
	SSID         string `yaml:"ssid"`
	BSSID        string `yaml:"bssid"`
	Capabilities string `yaml:"capabilities"`
	Level        int    `yaml:"level"`
	Frequency    int    `yaml:"frequency"`
}

// A2DPConfig configures the power-test receiver.
type A2DPConfig struct {
	Enabled   bool   `yaml:"enabled"`
	StatusLog string `yaml:"status_log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "rcbridge"
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}

	return &Config{
		Listen: fmt.Sprintf(":%d", DefaultPort),
		Name:   "rcbridge",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		MDNS: MDNSConfig{
			Enabled:  true,
			Instance: host,
			TTL:      discovery.DefaultTTL,
		},
		Events: EventsConfig{QueueSize: event.DefaultQueueSize},
		Scanner: ScannerConfig{
			Simulated:    true,
			AccessPoints: DefaultAccessPoints(),
		},
		A2DP: A2DPConfig{
			Enabled:   true,
			StatusLog: "a2dp_power_test.txt",
		},
	}
}

// DefaultAccessPoints returns the simulated access points used when the file
// names none.
func DefaultAccessPoints() []AccessPointConfig {
	return []AccessPointConfig{
		{SSID: "rcbridge-2g", BSSID: "02:00:00:00:01:01", Capabilities: "[WPA2-PSK-CCMP][ESS]", Level: -42, Frequency: 2412},
		{SSID: "rcbridge-5g", BSSID: "02:00:00:00:01:02", Capabilities: "[WPA2-PSK-CCMP][ESS]", Level: -55, Frequency: 5180},
		{SSID: "guest", BSSID: "02:00:00:00:02:01", Capabilities: "[ESS]", Level: -71, Frequency: 2437},
		{SSID: "lab-dfs", BSSID: "02:00:00:00:03:01", Capabilities: "[WPA2-EAP-CCMP][ESS]", Level: -66, Frequency: 5260},
	}
}

// Load reads path over Default(). An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidListen, c.Listen)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	if c.Events.QueueSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQueueSize, c.Events.QueueSize)
	}
	if c.MDNS.Enabled {
		if err := discovery.ValidateInstanceName(c.MDNS.Instance); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMDNS, err)
		}
		if c.MDNS.TTL < 0 {
			return fmt.Errorf("%w: negative ttl", ErrInvalidMDNS)
		}
	}
	if !c.Scanner.Simulated {
		return ErrNoScanner
	}
	if c.Scanner.Interval < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, c.Scanner.Interval)
	}
	for i, ap := range c.Scanner.AccessPoints {
		if err := ap.validate(); err != nil {
			return fmt.Errorf("%w %d: %v", ErrInvalidAccessPoint, i, err)
		}
	}
	return nil
}

func (ap AccessPointConfig) validate() error {
	if _, err := net.ParseMAC(ap.BSSID); err != nil {
		return fmt.Errorf("bssid %q", ap.BSSID)
	}
	if ap.Frequency <= 0 {
		return fmt.Errorf("frequency %d", ap.Frequency)
	}
	if ap.Level >= 0 {
		return fmt.Errorf("level %d", ap.Level)
	}
	return nil
}

// Port returns the numeric listen port, or 0 when it cannot be parsed.
func (c *Config) Port() int {
	_, port, err := net.SplitHostPort(c.Listen)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return 0
	}
	return n
}

// SlogLevel converts Level to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
}

// NewLogger builds the operational logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SimConfig converts the scanner section to a simulated scanner config.
func (s ScannerConfig) SimConfig(logger *slog.Logger) sim.Config {
	aps := make([]sim.AccessPoint, 0, len(s.AccessPoints))
	for _, ap := range s.AccessPoints {
		aps = append(aps, sim.AccessPoint{
			SSID:         ap.SSID,
			BSSID:        strings.ToLower(ap.BSSID),
			Capabilities: ap.Capabilities,
			Level:        ap.Level,
			Frequency:    ap.Frequency,
		})
	}
	return sim.Config{
		AccessPoints: aps,
		Interval:     s.Interval,
		Logger:       logger,
	}
}

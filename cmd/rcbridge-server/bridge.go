package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/a2dp"
	a2dpsim "github.com/rcbridge/rcbridge-go/pkg/a2dp/sim"
	"github.com/rcbridge/rcbridge-go/pkg/alarm"
	"github.com/rcbridge/rcbridge-go/pkg/config"
	"github.com/rcbridge/rcbridge-go/pkg/discovery"
	"github.com/rcbridge/rcbridge-go/pkg/facade"
	"github.com/rcbridge/rcbridge-go/pkg/journal"
	"github.com/rcbridge/rcbridge-go/pkg/log"
	"github.com/rcbridge/rcbridge-go/pkg/registry"
	"github.com/rcbridge/rcbridge-go/pkg/rpc"
	"github.com/rcbridge/rcbridge-go/pkg/statuslog"
	"github.com/rcbridge/rcbridge-go/pkg/version"
	wifisim "github.com/rcbridge/rcbridge-go/pkg/wifi/sim"
)

// simulatedCodecDelay is how long the simulated profile takes to apply a
// codec preference.
const simulatedCodecDelay = 300 * time.Millisecond

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *secret != "" {
		cfg.Secret = *secret
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *protocolLog != "" {
		cfg.Log.ProtocolLog = *protocolLog
	}
	if *journalPath != "" {
		cfg.Journal.Path = *journalPath
	}
	if *noMDNS {
		cfg.MDNS.Enabled = false
	}
	return cfg, cfg.Validate()
}

// bridge owns the process-wide services shared by all sessions.
type bridge struct {
	cfg    *config.Config
	logger *slog.Logger

	capture    log.Logger
	fileLog    *log.FileLogger
	scanner    *wifisim.Scanner
	alarms     *alarm.Manager
	receiver   *a2dp.Receiver
	journal    *journal.Journal
	server     *rpc.Server
	advertiser *discovery.Advertiser
}

func newBridge(cfg *config.Config, logger *slog.Logger) (*bridge, error) {
	b := &bridge{cfg: cfg, logger: logger, capture: log.NoopLogger{}}

	if cfg.Log.ProtocolLog != "" {
		fl, err := log.NewFileLogger(cfg.Log.ProtocolLog)
		if err != nil {
			return nil, fmt.Errorf("open protocol log: %w", err)
		}
		b.fileLog = fl
		b.capture = fl
		if cfg.Log.Level == "debug" {
			b.capture = log.NewMultiLogger(fl, log.NewSlogAdapter(logger))
		}
		logger.Info("protocol capture enabled", "path", cfg.Log.ProtocolLog)
	}

	b.scanner = wifisim.New(cfg.Scanner.SimConfig(logger.With("component", "scanner")))

	if cfg.A2DP.Enabled {
		if err := b.setupPowerTest(); err != nil {
			b.Close()
			return nil, err
		}
	}

	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("open journal: %w", err)
		}
		b.journal = j
		logger.Info("subscription journal enabled", "path", cfg.Journal.Path)
	}

	manifest, err := version.LoadCurrentManifest()
	if err != nil {
		b.Close()
		return nil, err
	}

	deps := facade.Deps{Scanner: b.scanner, PowerTest: b.receiver, Manifest: manifest}

	serverCfg := rpc.ServerConfig{
		Address:   cfg.Listen,
		Secret:    []byte(cfg.Secret),
		Name:      cfg.Name,
		QueueSize: cfg.Events.QueueSize,
		Logger:    logger,
		Capture:   b.capture,
		Setup:     facade.Setup(deps),
		Manifest:  manifest,
	}
	if b.journal != nil {
		serverCfg.Hooks = func(sessionID string) registry.Hooks {
			return b.journal.Hooks(sessionID, logger)
		}
	}

	server, err := rpc.NewServer(serverCfg)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.server = server

	if cfg.MDNS.Enabled {
		b.advertiser = discovery.NewAdvertiser(discovery.AdvertiserConfig{
			Interface: cfg.MDNS.Interface,
			TTL:       cfg.MDNS.TTL,
			Logger:    logger,
		})
	}
	return b, nil
}

// setupPowerTest builds the receiver on simulated Bluetooth and media
// services, driven by the alarm manager.
func (b *bridge) setupPowerTest() error {
	logger := b.logger.With("component", "a2dp")
	b.alarms = alarm.NewManager()

	rcfg := a2dp.Config{
		Adapter:   a2dpsim.NewAdapter(a2dp.Device{Address: "02:00:00:00:aa:01", Name: "sim-headset", Connected: true}),
		Profile:   a2dpsim.NewProfile(nil, simulatedCodecDelay),
		Players:   &a2dpsim.PlayerFactory{Logger: logger},
		Scheduler: b.alarms,
		Logger:    logger,
		Capture:   b.capture,
	}
	if b.cfg.A2DP.StatusLog != "" {
		rcfg.Status = statuslog.Open(b.cfg.A2DP.StatusLog, logger)
	}

	r, err := a2dp.NewReceiver(rcfg)
	if err != nil {
		return fmt.Errorf("power test receiver: %w", err)
	}
	b.alarms.OnFire(func(_ string, payload any) { r.HandleAlarm(payload) })
	b.receiver = r
	return nil
}

// Start listens for clients and advertises the service.
func (b *bridge) Start(ctx context.Context) error {
	if err := b.server.Start(ctx); err != nil {
		return err
	}
	b.logger.Info("rcbridge listening",
		"addr", b.server.Addr(),
		"version", version.Current,
		"auth", b.cfg.Secret != "",
		"power_test", b.receiver != nil)

	if b.advertiser != nil {
		info := &discovery.Info{
			Instance: b.cfg.MDNS.Instance,
			Port:     listenPort(b.server.Addr()),
			Version:  version.Current,
			Auth:     b.cfg.Secret != "",
			Name:     b.cfg.Name,
		}
		if err := b.advertiser.Advertise(ctx, info); err != nil {
			b.logger.Warn("mdns advertisement failed", "error", err)
		}
	}
	return nil
}

// listenPort extracts the bound port, which differs from the configured one
// when listening on port 0.
func listenPort(addr string) int {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 0
	}
	n, _ := strconv.Atoi(port)
	return n
}

// Close stops everything in reverse order of construction.
func (b *bridge) Close() {
	if b.advertiser != nil {
		b.advertiser.Stop()
	}
	if b.server != nil {
		if err := b.server.Stop(); err != nil {
			b.logger.Warn("stop server", "error", err)
		}
	}
	if b.receiver != nil {
		b.receiver.Abort()
	}
	if b.alarms != nil {
		b.alarms.Close()
	}
	if b.scanner != nil {
		b.scanner.Close()
	}
	var errs []error
	if b.journal != nil {
		errs = append(errs, b.journal.Close())
	}
	if ec, ok := b.capture.(interface{ Errors() int }); ok {
		if n := ec.Errors(); n > 0 {
			b.logger.Warn("protocol capture dropped events", "errors", n)
		}
	}
	if b.fileLog != nil {
		errs = append(errs, b.fileLog.Close())
	}
	if err := errors.Join(errs...); err != nil {
		b.logger.Warn("close", "error", err)
	}
}

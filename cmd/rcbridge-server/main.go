// Command rcbridge-server exposes a wifi scanner and an A2DP power-test
// receiver to remote script clients.
//
// Every client connection gets its own session: a listener registry, an
// event queue and the facades. Subscriptions started by a client are torn
// down when it disconnects.
//
// Usage:
//
//	rcbridge-server [flags]
//
// Flags:
//
//	-config string        Configuration file path
//	-listen string        Listen address (overrides config)
//	-secret string        Shared secret for the Hello handshake
//	-log-level string     Log level: debug, info, warn, error
//	-log-format string    Log format: text, json
//	-protocol-log string  Capture file for protocol events (CBOR)
//	-journal string       SQLite subscription journal path
//	-no-mdns              Disable mDNS advertisement
//
// Examples:
//
//	# Start with defaults (simulated scanner on :9999)
//	rcbridge-server
//
//	# Require a secret and capture protocol traffic
//	rcbridge-server -secret s3cret -protocol-log /tmp/capture.cbor
//
//	# Use a config file
//	rcbridge-server -config /etc/rcbridge/server.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var (
	configFile  = flag.String("config", "", "Configuration file path")
	listen      = flag.String("listen", "", "Listen address (overrides config)")
	secret      = flag.String("secret", "", "Shared secret for the Hello handshake")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat   = flag.String("log-format", "", "Log format: text, json")
	protocolLog = flag.String("protocol-log", "", "Capture file for protocol events (CBOR)")
	journalPath = flag.String("journal", "", "SQLite subscription journal path")
	noMDNS      = flag.Bool("no-mdns", false, "Disable mDNS advertisement")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.Log.NewLogger(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b, err := newBridge(cfg, logger)
	if err != nil {
		logger.Error("failed to set up bridge", "error", err)
		os.Exit(1)
	}

	if err := b.Start(ctx); err != nil {
		logger.Error("failed to start bridge", "error", err)
		b.Close()
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")
	b.Close()
}

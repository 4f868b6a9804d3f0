// Command rcbridge-cli is an interactive client for rcbridge-server.
//
// Without -addr the first server advertised over mDNS is used.
//
// Usage:
//
//	rcbridge-cli [flags]
//
// Flags:
//
//	-addr string      Server address host:port (default: discover via mDNS)
//	-secret string    Shared secret for the Hello handshake
//	-timeout duration Per-call timeout (default 30s)
//	-exec string      Run one command and exit
//	-log-level string Log level: debug, info, warn, error (default "warn")
//
// Examples:
//
//	# Discover a server and open a shell
//	rcbridge-cli
//
//	# Start a scan on a known server
//	rcbridge-cli -addr 192.168.1.20:9999 -exec "scan 5000"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rcbridge/rcbridge-go/cmd/rcbridge-cli/interactive"
	"github.com/rcbridge/rcbridge-go/pkg/config"
	"github.com/rcbridge/rcbridge-go/pkg/discovery"
	"github.com/rcbridge/rcbridge-go/pkg/rpc"
)

var (
	addr     = flag.String("addr", "", "Server address host:port (default: discover via mDNS)")
	secret   = flag.String("secret", "", "Shared secret for the Hello handshake")
	timeout  = flag.Duration("timeout", rpc.DefaultCallTimeout, "Per-call timeout")
	execLine = flag.String("exec", "", "Run one command and exit")
	logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	iface    = flag.String("interface", "", "Network interface for mDNS discovery")
)

func main() {
	flag.Parse()

	logger := config.LogConfig{Level: *logLevel, Format: "text"}.NewLogger(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	target, err := resolve(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client, err := rpc.Dial(ctx, target, rpc.ClientConfig{
		Secret:  []byte(*secret),
		Name:    "rcbridge-cli",
		Timeout: *timeout,
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: connect %s: %v\n", target, err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Printf("Connected to %s (%s, protocol %s, session %s)\n",
		target, client.ServerName(), client.ServerVersion(), client.SessionID())

	shell := interactive.NewShell(client, os.Stdout)
	if *execLine != "" {
		_ = shell.Exec(ctx, *execLine)
		return
	}

	go func() {
		select {
		case <-client.Done():
			fmt.Fprintln(os.Stderr, "\nConnection closed")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := shell.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolve returns -addr or the first server found over mDNS.
func resolve(ctx context.Context, logger *slog.Logger) (string, error) {
	if *addr != "" {
		return *addr, nil
	}

	fmt.Println("Discovering rcbridge servers...")
	browser := discovery.NewBrowser(discovery.BrowserConfig{Interface: *iface})
	findCtx, cancel := context.WithTimeout(ctx, discovery.BrowseTimeout)
	defer cancel()

	svc, err := browser.FindFirst(findCtx)
	if err != nil {
		return "", fmt.Errorf("discovery: %w (use -addr)", err)
	}
	if len(svc.Addresses) == 0 {
		return "", fmt.Errorf("discovery: %s has no addresses", svc.Instance)
	}
	logger.Info("found server", "instance", svc.Instance, "host", svc.Host, "auth", svc.Auth)
	if svc.Auth && *secret == "" {
		fmt.Fprintln(os.Stderr, "Warning: server requires a secret (use -secret)")
	}
	return net.JoinHostPort(svc.Addresses[0], strconv.Itoa(svc.Port)), nil
}

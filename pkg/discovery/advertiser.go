package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration

	// Logger receives advertisement lifecycle messages. Optional.
	Logger *slog.Logger
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{TTL: DefaultTTL}
}

// server is the part of *zeroconf.Server the advertiser uses.
type server interface {
	SetText(txt []string)
	Shutdown()
}

type registerFunc func(instance, service, domain string, port int, txt []string, ifaces []net.Interface, opts ...zeroconf.ServerOption) (server, error)

func zeroconfRegister(instance, service, domain string, port int, txt []string, ifaces []net.Interface, opts ...zeroconf.ServerOption) (server, error) {
	s, err := zeroconf.Register(instance, service, domain, port, txt, ifaces, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Advertiser publishes the bridge service over mDNS.
type Advertiser struct {
	config   AdvertiserConfig
	register registerFunc

	mu     sync.Mutex
	server server
	info   *Info
}

// NewAdvertiser creates a new mDNS advertiser.
func NewAdvertiser(config AdvertiserConfig) *Advertiser {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Advertiser{
		config:   config,
		register: zeroconfRegister,
	}
}

// interfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *Advertiser) interfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise starts advertising info, replacing any current advertisement.
func (a *Advertiser) Advertise(ctx context.Context, info *Info) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
		a.info = nil
	}

	txt := TXTRecordsToStrings(EncodeTXT(info))
	opts := []zeroconf.ServerOption{zeroconf.TTL(uint32(a.config.TTL.Seconds()))}

	srv, err := a.register(info.Instance, ServiceType, Domain, info.Port, txt, a.interfaces(), opts...)
	if err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	a.server = srv
	copied := *info
	a.info = &copied
	a.config.Logger.Info("mdns advertising", "instance", info.Instance, "port", info.Port, "auth", info.Auth)
	return nil
}

// Update replaces the TXT records of the current advertisement.
func (a *Advertiser) Update(info *Info) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotAdvertising
	}
	if info.Instance != a.info.Instance || info.Port != a.info.Port {
		return fmt.Errorf("%w: instance and port cannot change", ErrInvalidTXTRecord)
	}

	a.server.SetText(TXTRecordsToStrings(EncodeTXT(info)))
	copied := *info
	a.info = &copied
	return nil
}

// Stop withdraws the advertisement. It is a no-op when not advertising.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return
	}
	a.server.Shutdown()
	a.config.Logger.Info("mdns advertisement withdrawn", "instance", a.info.Instance)
	a.server = nil
	a.info = nil
}

// Advertising returns the advertised info, or nil.
func (a *Advertiser) Advertising() *Info {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.info == nil {
		return nil
	}
	copied := *a.info
	return &copied
}

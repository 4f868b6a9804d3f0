package discovery

import (
	"errors"
	"time"
)

// Service constants.
const (
	// ServiceType is the DNS-SD service type of bridge servers.
	ServiceType = "_rcbridge._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultTTL is the record TTL when none is configured.
	DefaultTTL = 120 * time.Second

	// BrowseTimeout bounds Find when the context has no deadline.
	BrowseTimeout = 10 * time.Second

	// MaxInstanceNameLen is the DNS label limit for instance names.
	MaxInstanceNameLen = 63
)

// TXT record keys.
const (
	TXTKeyVersion  = "ver"
	TXTKeyAuth     = "auth"
	TXTKeyInstance = "inst"
)

// Discovery errors.
var (
	ErrMissingRequired     = errors.New("missing required field")
	ErrInvalidTXTRecord    = errors.New("invalid TXT record")
	ErrInstanceNameTooLong = errors.New("instance name too long")
	ErrInvalidPort         = errors.New("invalid port")
	ErrNotAdvertising      = errors.New("not advertising")
	ErrNotFound            = errors.New("no server found")
)

// Info is what a server advertises.
type Info struct {
	// Instance is the DNS-SD instance name.
	Instance string

	// Port is the TCP port of the RPC listener.
	Port int

	// Version is the protocol version.
	Version string

	// Auth reports whether the handshake requires a secret.
	Auth bool

	// Name is a human readable server name. Defaults to Instance.
	Name string
}

// Validate checks the fields needed to register the service.
func (i *Info) Validate() error {
	if err := ValidateInstanceName(i.Instance); err != nil {
		return err
	}
	if i.Port <= 0 || i.Port > 65535 {
		return ErrInvalidPort
	}
	if i.Version == "" {
		return ErrMissingRequired
	}
	return nil
}

// Service is a server found by browsing.
type Service struct {
	Instance  string
	Host      string
	Port      int
	Addresses []string
	Version   string
	Auth      bool
	Name      string
}

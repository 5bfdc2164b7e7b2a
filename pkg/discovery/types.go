package discovery

import (
	"errors"
	"log/slog"
	"time"
)

const (
	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultServiceType is the DNS-SD service type of an announced station.
	DefaultServiceType = "_staconn._tcp"

	// DefaultPort is advertised when no port is configured (discard).
	DefaultPort = 9

	// DefaultTTL is the DNS record TTL.
	DefaultTTL = 120 * time.Second

	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// MaxTXTRecordLen is the limit for a single "key=value" string.
	MaxTXTRecordLen = 255
)

// TXT record keys set by the announcer.
const (
	TXTKeyHost    = "host"
	TXTKeyIP      = "ip"
	TXTKeyNetmask = "mask"
	TXTKeyGateway = "gw"
)

// Errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrReservedTXTKey      = errors.New("reserved TXT key")
	ErrInvalidInstanceName = errors.New("invalid instance name")
	ErrInvalidServiceType  = errors.New("invalid service type")
	ErrClosed              = errors.New("announcer closed")
)

// Config configures an Announcer.
type Config struct {
	// Instance is the service instance name, usually the station hostname.
	Instance string

	// Hostname is published in the host TXT record. Defaults to Instance.
	Hostname string

	// Service is the DNS-SD service type. Default: DefaultServiceType.
	Service string

	// Port advertised in the SRV record. Default: DefaultPort.
	Port int

	// Interface restricts announcements to one network interface.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL. Default: DefaultTTL.
	TTL time.Duration

	// TXT holds additional records.
	TXT TXTRecordMap

	// Register performs the registration. If nil, zeroconf.Register is used.
	// Set this in tests to avoid binding multicast sockets.
	Register RegisterFunc

	// Logger receives announcement diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a configuration for the given instance name.
func DefaultConfig(instance string) Config {
	return Config{
		Instance: instance,
		Service:  DefaultServiceType,
		Port:     DefaultPort,
		TTL:      DefaultTTL,
	}
}

func (c *Config) applyDefaults() {
	if c.Service == "" {
		c.Service = DefaultServiceType
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
	if c.Hostname == "" {
		c.Hostname = c.Instance
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

package discovery

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"

	"github.com/staconn/staconn-go/pkg/connection"
	"github.com/staconn/staconn-go/pkg/events"
	"github.com/staconn/staconn-go/pkg/netif"
)

// Server is a live mDNS registration.
type Server interface {
	SetText(text []string)
	Shutdown()
}

// RegisterFunc registers a service instance. It has the shape of
// zeroconf.Register.
type RegisterFunc func(instance, service, domain string, port int, text []string, ifaces []net.Interface, opts ...zeroconf.ServerOption) (Server, error)

func zeroconfRegister(instance, service, domain string, port int, text []string, ifaces []net.Interface, opts ...zeroconf.ServerOption) (Server, error) {
	server, err := zeroconf.Register(instance, service, domain, port, text, ifaces, opts...)
	if err != nil {
		return nil, err
	}
	return server, nil
}

// Source delivers connection lifecycle events.
// *connection.Controller implements it.
type Source interface {
	Subscribe(handler func(connection.Event)) *events.Subscription
}

// Announcer keeps an mDNS registration in step with a station connection.
type Announcer struct {
	config   Config
	register RegisterFunc
	logger   *slog.Logger

	mu     sync.Mutex
	server Server
	info   netif.IPInfo
	sub    *events.Subscription
	closed bool
}

// NewAnnouncer validates the configuration and creates an announcer.
// Nothing is registered until Announce is called or an attached source
// reports ConnectionSucceeded.
func NewAnnouncer(config Config) (*Announcer, error) {
	config.applyDefaults()

	if err := ValidateInstanceName(config.Instance); err != nil {
		return nil, err
	}
	if err := ValidateServiceType(config.Service); err != nil {
		return nil, err
	}
	if config.Port < 1 || config.Port > 65535 {
		return nil, fmt.Errorf("discovery: port %d out of range", config.Port)
	}
	for k := range config.TXT {
		if isReserved(k) {
			return nil, fmt.Errorf("%w: %s", ErrReservedTXTKey, k)
		}
	}
	if err := config.TXT.Validate(); err != nil {
		return nil, err
	}

	register := config.Register
	if register == nil {
		register = zeroconfRegister
	}

	return &Announcer{
		config:   config,
		register: register,
		logger:   config.Logger.With("component", "discovery", "instance", config.Instance, "service", config.Service),
	}, nil
}

// Attach subscribes to lifecycle events from src. Only one source can be
// attached; attaching again replaces the previous subscription.
func (a *Announcer) Attach(src Source) {
	sub := src.Subscribe(a.HandleEvent)

	a.mu.Lock()
	old := a.sub
	a.sub = sub
	a.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// HandleEvent registers on ConnectionSucceeded and withdraws on terminal
// events. Registration errors are logged.
func (a *Announcer) HandleEvent(ev connection.Event) {
	switch e := ev.(type) {
	case connection.ConnectionSucceeded:
		if err := a.Announce(e.IPInfo); err != nil && !errors.Is(err, ErrClosed) {
			a.logger.Warn("mdns announce failed", "ip", e.IPInfo.IP, "error", err)
		}
	case connection.ConnectionFailed, connection.Disconnected:
		a.Withdraw()
	}
}

// Announce registers the station with the given addressing. If a
// registration is already live its TXT records are updated in place.
func (a *Announcer) Announce(info netif.IPInfo) error {
	txt, err := StationTXT(a.config.Hostname, info, a.config.TXT)
	if err != nil {
		return err
	}
	text := txt.Strings()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	if a.server != nil {
		if info != a.info {
			a.server.SetText(text)
			a.info = info
			a.logger.Debug("mdns records updated", "ip", info.IP)
		}
		return nil
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := a.register(
		a.config.Instance,
		a.config.Service,
		Domain,
		a.config.Port,
		text,
		a.interfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register station service: %w", err)
	}

	a.server = server
	a.info = info
	a.logger.Info("mdns announced", "ip", info.IP, "port", a.config.Port)
	return nil
}

// Withdraw shuts down the registration, if any.
func (a *Announcer) Withdraw() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.withdrawLocked()
}

func (a *Announcer) withdrawLocked() {
	if a.server == nil {
		return
	}
	a.server.Shutdown()
	a.server = nil
	a.info = netif.IPInfo{}
	a.logger.Info("mdns withdrawn")
}

// Active reports whether a registration is live.
func (a *Announcer) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}

// Info returns the addressing of the live registration.
func (a *Announcer) Info() (netif.IPInfo, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.info, a.server != nil
}

// Close detaches from the source and withdraws the registration.
// It is safe to call more than once.
func (a *Announcer) Close() error {
	a.mu.Lock()
	sub := a.sub
	a.sub = nil
	a.closed = true
	a.withdrawLocked()
	a.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
	return nil
}

// interfaces returns the network interfaces to announce on.
// Returns nil to use all interfaces.
func (a *Announcer) interfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		a.logger.Warn("mdns interface not found, using all", "iface", a.config.Interface, "error", err)
		return nil
	}
	return []net.Interface{*iface}
}

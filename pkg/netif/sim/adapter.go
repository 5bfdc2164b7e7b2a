package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"sync"

	"github.com/staconn/staconn-go/pkg/events"
	"github.com/staconn/staconn-go/pkg/netif"
)

// TopicRaw is the bus topic raw events are published on.
const TopicRaw = "netif.raw"

var (
	// ErrInterfaceExists is returned by CreateStation when a station interface exists.
	ErrInterfaceExists = errors.New("station interface already exists")

	errLinkDown = errors.New("link is down")
)

// Config configures the simulated stack.
type Config struct {
	// Name is the interface name.
	Name string

	// SSID is the network the simulated access point serves.
	// Empty accepts whatever SSID the station is started with.
	SSID string

	// Lease is the configuration handed out by the simulated DHCP server.
	Lease netif.IPInfo

	// MAC is the factory station MAC address.
	MAC net.HardwareAddr

	// BSSIDs are the access points of the network. Roam cycles through them.
	BSSIDs []string

	// Channel is the operating channel reported on link-up.
	Channel uint8

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a configuration for a typical home network.
func DefaultConfig() Config {
	return Config{
		Name: "sta0",
		Lease: netif.IPInfo{
			IP:      netip.MustParseAddr("192.168.4.2"),
			Netmask: netip.MustParseAddr("255.255.255.0"),
			Gateway: netip.MustParseAddr("192.168.4.1"),
		},
		MAC:     net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
		BSSIDs:  []string{"02:00:00:00:10:01", "02:00:00:00:10:02"},
		Channel: 6,
	}
}

// Stats counts calls made into the simulated stack.
type Stats struct {
	Created            int
	Destroyed          int
	Starts             int
	Stops              int
	Associations       int
	DisconnectRequests int
	Hostname           string
	MAC                string
	Static             bool
}

type station struct {
	name string
	id   int
}

func (s *station) Name() string { return s.name }

// Adapter is a simulated netif.Adapter.
type Adapter struct {
	mu sync.Mutex

	cfg    Config
	logger *slog.Logger
	bus    *events.Bus
	out    *events.Outbox[netif.Event]

	iface   *station
	nextID  int
	started bool
	linked  bool
	bssid   int

	station  netif.StationConfig
	static   *netif.IPInfo
	mac      net.HardwareAddr
	lastAddr netip.Addr

	failNext     int
	failReason   netif.DisconnectReason
	associateErr error

	stats Stats
}

// New creates a simulated stack.
func New(cfg Config) *Adapter {
	def := DefaultConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if !cfg.Lease.Valid() {
		cfg.Lease = def.Lease
	}
	if len(cfg.MAC) != 6 {
		cfg.MAC = def.MAC
	}
	if len(cfg.BSSIDs) == 0 {
		cfg.BSSIDs = def.BSSIDs
	}
	if cfg.Channel == 0 {
		cfg.Channel = def.Channel
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	a := &Adapter{
		cfg:    cfg,
		logger: cfg.Logger.With("component", "sim"),
		bus:    events.NewBus(cfg.Logger),
	}
	a.out = events.NewOutbox(func(ev netif.Event) {
		if err := a.bus.Publish(TopicRaw, ev); err != nil {
			a.logger.Debug("raw event dropped", "event", ev.String(), "error", err)
		}
	})
	return a
}

// Close flushes pending events and shuts the event bus down.
func (a *Adapter) Close() {
	a.out.Close()
	a.bus.Close()
}

// Subscribe implements netif.Adapter.
func (a *Adapter) Subscribe(handler func(netif.Event)) *events.Subscription {
	return events.Subscribe(a.bus, TopicRaw, handler)
}

// CreateStation implements netif.Adapter.
func (a *Adapter) CreateStation() (netif.Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.iface != nil {
		return nil, ErrInterfaceExists
	}
	a.nextID++
	a.iface = &station{name: a.cfg.Name, id: a.nextID}
	a.mac = append(net.HardwareAddr(nil), a.cfg.MAC...)
	a.static = nil
	a.stats.Created++
	a.logger.Debug("station interface created", "name", a.iface.name)
	return a.iface, nil
}

// DestroyInterface implements netif.Adapter.
func (a *Adapter) DestroyInterface(h netif.Handle) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkHandle(h); err != nil {
		a.logger.Warn("destroy of unknown interface", "error", err)
		return
	}
	a.iface = nil
	a.linked = false
	a.stats.Destroyed++
}

// SetHostname implements netif.Adapter.
func (a *Adapter) SetHostname(h netif.Handle, hostname string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkHandle(h); err != nil {
		return err
	}
	a.stats.Hostname = hostname
	return nil
}

// SetMAC implements netif.Adapter.
func (a *Adapter) SetMAC(h netif.Handle, mac net.HardwareAddr) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkHandle(h); err != nil {
		return err
	}
	if len(mac) != 6 {
		return fmt.Errorf("invalid station MAC %s", mac)
	}
	a.mac = append(net.HardwareAddr(nil), mac...)
	a.stats.MAC = mac.String()
	return nil
}

// SetStaticAddress implements netif.Adapter.
func (a *Adapter) SetStaticAddress(h netif.Handle, info netif.IPInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkHandle(h); err != nil {
		return err
	}
	if !info.Valid() {
		return fmt.Errorf("invalid static address %s", info)
	}
	a.static = &info
	a.stats.Static = true
	return nil
}

// CreateIP6LinkLocal implements netif.Adapter.
func (a *Adapter) CreateIP6LinkLocal(h netif.Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkHandle(h); err != nil {
		return err
	}
	if !a.linked {
		return errLinkDown
	}
	a.out.Push(netif.SecondaryAddressAcquired{Info: netif.IP6Info{IP: LinkLocalFromMAC(a.mac)}})
	return nil
}

// Start implements netif.Adapter.
func (a *Adapter) Start(cfg netif.StationConfig) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return netif.ErrAlreadyStarted
	}
	a.station = cfg
	a.started = true
	a.stats.Starts++
	a.logger.Debug("station started", "config", cfg.String())
	return nil
}

// Associate implements netif.Adapter.
func (a *Adapter) Associate() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return netif.ErrNotStarted
	}
	if a.associateErr != nil {
		return a.associateErr
	}
	a.stats.Associations++

	switch {
	case a.failNext > 0:
		a.failNext--
		a.out.Push(netif.LinkDisconnected{SSID: a.station.SSID, Reason: a.failReason})
	case a.cfg.SSID != "" && a.cfg.SSID != a.station.SSID:
		a.out.Push(netif.LinkDisconnected{SSID: a.station.SSID, Reason: netif.ReasonNoAPFound})
	default:
		a.linkUpLocked()
	}
	return nil
}

// RequestDisconnect implements netif.Adapter.
func (a *Adapter) RequestDisconnect() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return netif.ErrNotStarted
	}
	a.stats.DisconnectRequests++
	if a.linked {
		a.linked = false
		a.out.Push(netif.LinkDisconnected{SSID: a.station.SSID, Reason: netif.ReasonAssocLeave})
	}
	return nil
}

// Stop implements netif.Adapter.
func (a *Adapter) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return netif.ErrNotStarted
	}
	a.started = false
	a.linked = false
	a.stats.Stops++
	return nil
}

// Drop simulates loss of an established link.
// Returns false if the link was not up.
func (a *Adapter) Drop(reason netif.DisconnectReason) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.linked {
		return false
	}
	a.linked = false
	a.out.Push(netif.LinkDisconnected{SSID: a.station.SSID, Reason: reason})
	return true
}

// Roam simulates a hop to the next access point of the same network: the link
// drops with netif.ReasonRoaming and comes back on its own.
func (a *Adapter) Roam() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.linked {
		return false
	}
	a.out.Push(netif.LinkDisconnected{SSID: a.station.SSID, Reason: netif.ReasonRoaming})
	a.bssid = (a.bssid + 1) % len(a.cfg.BSSIDs)
	a.linkUpLocked()
	return true
}

// FailAssociations makes the next n association attempts fail with reason.
func (a *Adapter) FailAssociations(n int, reason netif.DisconnectReason) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.failNext = n
	a.failReason = reason
}

// SetAssociateError makes Associate return err until reset with nil.
func (a *Adapter) SetAssociateError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.associateErr = err
}

// Linked reports whether the simulated link is up.
func (a *Adapter) Linked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.linked
}

// Stats returns a snapshot of the call counters.
func (a *Adapter) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

func (a *Adapter) linkUpLocked() {
	a.linked = true
	a.out.Push(netif.LinkConnected{
		SSID:    a.station.SSID,
		BSSID:   a.cfg.BSSIDs[a.bssid],
		Channel: a.cfg.Channel,
	})

	info := a.cfg.Lease
	if a.static != nil {
		info = *a.static
	}
	changed := a.lastAddr != info.IP
	a.lastAddr = info.IP
	a.out.Push(netif.PrimaryAddressAcquired{Info: info, Changed: changed})
}

func (a *Adapter) checkHandle(h netif.Handle) error {
	st, ok := h.(*station)
	if !ok || a.iface == nil || st != a.iface {
		return netif.ErrInvalidHandle
	}
	return nil
}

// LinkLocalFromMAC derives the EUI-64 based IPv6 link-local address for mac.
func LinkLocalFromMAC(mac net.HardwareAddr) netip.Addr {
	var b [16]byte
	b[0], b[1] = 0xfe, 0x80
	if len(mac) == 6 {
		b[8] = mac[0] ^ 0x02
		b[9], b[10] = mac[1], mac[2]
		b[11], b[12] = 0xff, 0xfe
		b[13], b[14], b[15] = mac[3], mac[4], mac[5]
	}
	return netip.AddrFrom16(b)
}

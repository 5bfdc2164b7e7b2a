package netif

import (
	"errors"
	"net"

	"github.com/staconn/staconn-go/pkg/events"
)

// Adapter errors.
var (
	// ErrNotStarted is returned by Associate when the station is not running,
	// typically because it is being torn down.
	ErrNotStarted = errors.New("station not started")

	// ErrAlreadyStarted is returned by Start when the station is running.
	ErrAlreadyStarted = errors.New("station already started")

	// ErrInvalidHandle is returned for unknown or destroyed interface handles.
	ErrInvalidHandle = errors.New("invalid interface handle")
)

// Handle identifies a station network interface created by an Adapter.
type Handle interface {
	// Name returns the interface name, e.g. "wlan0" or "sta0".
	Name() string
}

// Adapter is the network stack seen by the connection controller.
type Adapter interface {
	// CreateStation creates the station network interface.
	CreateStation() (Handle, error)

	// DestroyInterface releases the interface. The handle must not be used afterwards.
	DestroyInterface(h Handle)

	// SetHostname sets the DHCP hostname of the interface.
	SetHostname(h Handle, hostname string) error

	// SetMAC overrides the station MAC address.
	SetMAC(h Handle, mac net.HardwareAddr) error

	// SetStaticAddress disables the DHCP client and assigns info. The stack
	// still reports PrimaryAddressAcquired once the link is up.
	SetStaticAddress(h Handle, info IPInfo) error

	// CreateIP6LinkLocal starts IPv6 link-local address configuration.
	CreateIP6LinkLocal(h Handle) error

	// Start configures and starts the station.
	Start(cfg StationConfig) error

	// Associate requests association with the configured network.
	// Returns ErrNotStarted if the station is not running.
	Associate() error

	// RequestDisconnect requests disassociation.
	RequestDisconnect() error

	// Stop stops the station.
	Stop() error

	// Subscribe registers handler for raw events. See the package
	// documentation for the ordering guarantee.
	Subscribe(handler func(Event)) *events.Subscription
}

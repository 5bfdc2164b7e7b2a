package connection

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/staconn/staconn-go/pkg/log"
	"github.com/staconn/staconn-go/pkg/netif"
)

// Addressing selects how the primary address is obtained.
type Addressing uint8

const (
	// AddressingDynamic leaves address acquisition to the stack's DHCP client.
	AddressingDynamic Addressing = iota

	// AddressingStatic assigns Config.Static before association.
	AddressingStatic
)

// String returns the addressing mode name.
func (a Addressing) String() string {
	switch a {
	case AddressingDynamic:
		return "dhcp"
	case AddressingStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Config configures a Controller. It is read-only once the controller exists.
type Config struct {
	// Station is handed to the stack when the station starts.
	Station netif.StationConfig

	// Hostname is set on the interface before association. Empty keeps the
	// stack default.
	Hostname string

	// MAC overrides the factory station address when set.
	MAC net.HardwareAddr

	// Addressing selects DHCP or the static triple in Static.
	Addressing Addressing
	Static     netif.IPInfo

	// Retry is the link loss policy.
	Retry RetryPolicy

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger

	// TraceLogger receives the lifecycle trace. Nil disables tracing.
	TraceLogger log.Logger
}

// DefaultConfig returns a DHCP configuration for ssid with the default retry policy.
func DefaultConfig(ssid, passphrase string) Config {
	return Config{
		Station: netif.StationConfig{
			SSID:          ssid,
			Passphrase:    passphrase,
			AuthThreshold: netif.AuthWPA2PSK,
			RSSIThreshold: netif.DefaultRSSIThreshold,
		},
		Retry: DefaultRetryPolicy(),
	}
}

func (c Config) validate() error {
	if c.Station.SSID == "" {
		return fmt.Errorf("%w: empty SSID", ErrInvalidConfig)
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("%w: negative max retries %d", ErrInvalidConfig, c.Retry.MaxRetries)
	}
	if c.MAC != nil && len(c.MAC) != 6 {
		return fmt.Errorf("%w: MAC %s is not a 48-bit address", ErrInvalidConfig, c.MAC)
	}
	switch c.Addressing {
	case AddressingDynamic:
	case AddressingStatic:
		if !c.Static.Valid() {
			return fmt.Errorf("%w: incomplete static address %s", ErrInvalidConfig, c.Static)
		}
	default:
		return fmt.Errorf("%w: unknown addressing mode %d", ErrInvalidConfig, c.Addressing)
	}
	return nil
}

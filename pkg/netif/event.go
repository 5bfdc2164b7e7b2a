package netif

import "fmt"

// Event is a raw event emitted by the network stack.
// The concrete types are LinkConnected, LinkDisconnected,
// PrimaryAddressAcquired and SecondaryAddressAcquired.
type Event interface {
	rawEvent()
	fmt.Stringer
}

// LinkConnected reports that the station associated and authenticated.
type LinkConnected struct {
	SSID    string
	BSSID   string
	Channel uint8
}

// LinkDisconnected reports that the link was lost or could not be established.
type LinkDisconnected struct {
	SSID   string
	Reason DisconnectReason
	RSSI   int8
}

// PrimaryAddressAcquired reports a usable IPv4 configuration.
type PrimaryAddressAcquired struct {
	Info IPInfo

	// Changed is set when the address differs from the previous one.
	Changed bool
}

// SecondaryAddressAcquired reports a valid IPv6 address.
type SecondaryAddressAcquired struct {
	Info IP6Info
}

func (LinkConnected) rawEvent()            {}
func (LinkDisconnected) rawEvent()         {}
func (PrimaryAddressAcquired) rawEvent()   {}
func (SecondaryAddressAcquired) rawEvent() {}

func (e LinkConnected) String() string {
	return fmt.Sprintf("LINK_CONNECTED ssid=%q bssid=%s ch=%d", e.SSID, e.BSSID, e.Channel)
}

func (e LinkDisconnected) String() string {
	return fmt.Sprintf("LINK_DISCONNECTED reason=%s", e.Reason)
}

func (e PrimaryAddressAcquired) String() string {
	return fmt.Sprintf("GOT_IP %s", e.Info)
}

func (e SecondaryAddressAcquired) String() string {
	return fmt.Sprintf("GOT_IP6 %s (%s)", e.Info.IP, IP6AddrTypeOf(e.Info.IP))
}

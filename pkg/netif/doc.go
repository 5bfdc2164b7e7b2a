// Package netif defines the contract between the connection controller and the
// network stack that actually drives the Wi-Fi station.
//
// The network stack (a vendor SDK, a wpa_supplicant bridge, or the simulated
// stack in package sim) is an external collaborator. It creates and destroys
// the station interface, performs association, DHCP and address resolution,
// and reports what happened as raw events:
//
//   - LinkConnected: association and authentication completed.
//   - LinkDisconnected: the link was lost; Reason carries the 802.11 or vendor code.
//   - PrimaryAddressAcquired: an IPv4 configuration is usable (DHCP lease or static).
//   - SecondaryAddressAcquired: an IPv6 address became valid.
//
// # Ordering
//
// An Adapter delivers all raw events to a subscriber on a single goroutine, in
// the order the stack generated them. A LinkDisconnected generated after a
// PrimaryAddressAcquired is never observed before it. Consumers may rely on this.
//
// # Blocking
//
// Adapter methods must not block on network activity. Associate returns once
// association has been requested; the outcome is reported by events.
package netif

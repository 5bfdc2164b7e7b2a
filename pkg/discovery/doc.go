// Package discovery announces a connected station over mDNS/DNS-SD.
//
// An Announcer follows the lifecycle events of a connection.Controller.
// When the station obtains an address the announcer registers a service
// instance named after the configured hostname. Any terminal event
// (ConnectionFailed or Disconnected) withdraws the registration, so peers
// never resolve a station that has left the network.
//
// # TXT Records
//
// The announcement carries the station's addressing in TXT records:
//   - host: hostname
//   - ip: IPv4 address
//   - mask: netmask
//   - gw: gateway (omitted when unset)
//
// User-supplied records are merged in and may not override these keys.
package discovery

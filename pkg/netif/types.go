package netif

import (
	"fmt"
	"net/netip"
)

// IPInfo is an IPv4 interface configuration.
type IPInfo struct {
	IP      netip.Addr
	Netmask netip.Addr
	Gateway netip.Addr
}

// Valid reports whether the address and netmask are IPv4 addresses.
// The gateway may be unset.
func (i IPInfo) Valid() bool {
	if !i.IP.Is4() || !i.Netmask.Is4() {
		return false
	}
	return !i.Gateway.IsValid() || i.Gateway.Is4()
}

// Prefix returns the address with its netmask as a prefix.
func (i IPInfo) Prefix() (netip.Prefix, error) {
	if !i.Valid() {
		return netip.Prefix{}, fmt.Errorf("invalid ipv4 info %s", i)
	}
	bits := 0
	mask := i.Netmask.As4()
	seenZero := false
	for _, b := range mask {
		for bit := 7; bit >= 0; bit-- {
			if b&(1<<bit) != 0 {
				if seenZero {
					return netip.Prefix{}, fmt.Errorf("non-contiguous netmask %s", i.Netmask)
				}
				bits++
			} else {
				seenZero = true
			}
		}
	}
	return i.IP.Prefix(bits)
}

// String formats the info as "ip/netmask gw gateway".
func (i IPInfo) String() string {
	return fmt.Sprintf("%s/%s gw %s", i.IP, i.Netmask, i.Gateway)
}

// IP6Info is an IPv6 address reported by the stack.
type IP6Info struct {
	IP netip.Addr
}

// IP6AddrType classifies IPv6 addresses for diagnostics.
type IP6AddrType uint8

const (
	IP6AddrUnknown IP6AddrType = iota
	IP6AddrLinkLocal
	IP6AddrGlobal
	IP6AddrUniqueLocal
	IP6AddrSiteLocal
	IP6AddrIPv4Mapped
)

// String returns the type name.
func (t IP6AddrType) String() string {
	switch t {
	case IP6AddrLinkLocal:
		return "LINK_LOCAL"
	case IP6AddrGlobal:
		return "GLOBAL"
	case IP6AddrUniqueLocal:
		return "UNIQUE_LOCAL"
	case IP6AddrSiteLocal:
		return "SITE_LOCAL"
	case IP6AddrIPv4Mapped:
		return "IPV4_MAPPED"
	default:
		return "UNKNOWN"
	}
}

var (
	siteLocalPrefix   = netip.MustParsePrefix("fec0::/10")
	uniqueLocalPrefix = netip.MustParsePrefix("fc00::/7")
	globalPrefix      = netip.MustParsePrefix("2000::/3")
)

// IP6AddrTypeOf classifies addr.
func IP6AddrTypeOf(addr netip.Addr) IP6AddrType {
	switch {
	case !addr.Is6():
		return IP6AddrUnknown
	case addr.Is4In6():
		return IP6AddrIPv4Mapped
	case addr.IsLinkLocalUnicast():
		return IP6AddrLinkLocal
	case siteLocalPrefix.Contains(addr):
		return IP6AddrSiteLocal
	case uniqueLocalPrefix.Contains(addr):
		return IP6AddrUniqueLocal
	case globalPrefix.Contains(addr):
		return IP6AddrGlobal
	default:
		return IP6AddrUnknown
	}
}

// Package sim provides an in-memory network stack implementing netif.Adapter.
//
// The simulated station hands out a fixed DHCP lease, honours static
// addressing, derives an IPv6 link-local address from its MAC and lets callers
// inject link failures:
//
//	a := sim.New(sim.DefaultConfig())
//	defer a.Close()
//	a.FailAssociations(2, netif.ReasonNoAPFound) // next two attempts fail
//	a.Drop(netif.ReasonBeaconTimeout)            // lose an established link
//	a.Roam()                                     // hop to another access point
//
// Raw events are queued and published from a single goroutine, so every
// subscriber observes them in generation order.
package sim

package sim

import (
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staconn/staconn-go/pkg/netif"
)

func recorder(t *testing.T, a *Adapter) (<-chan netif.Event, func()) {
	t.Helper()
	ch := make(chan netif.Event, 64)
	sub := a.Subscribe(func(ev netif.Event) { ch <- ev })
	return ch, sub.Close
}

func next(t *testing.T, ch <-chan netif.Event) netif.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for raw event")
		return nil
	}
}

func started(t *testing.T, cfg Config) (*Adapter, netif.Handle) {
	t.Helper()
	a := New(cfg)
	t.Cleanup(a.Close)

	h, err := a.CreateStation()
	require.NoError(t, err)
	require.NoError(t, a.Start(netif.StationConfig{SSID: "home"}))
	return a, h
}

func TestAssociateEmitsOrderedEvents(t *testing.T) {
	a, h := started(t, DefaultConfig())
	ch, stop := recorder(t, a)
	defer stop()

	require.NoError(t, a.Associate())
	require.NoError(t, a.CreateIP6LinkLocal(h))
	require.True(t, a.Drop(netif.ReasonBeaconTimeout))

	linked, ok := next(t, ch).(netif.LinkConnected)
	require.True(t, ok)
	assert.Equal(t, "home", linked.SSID)
	assert.Equal(t, "02:00:00:00:10:01", linked.BSSID)

	got, ok := next(t, ch).(netif.PrimaryAddressAcquired)
	require.True(t, ok)
	assert.Equal(t, DefaultConfig().Lease, got.Info)
	assert.True(t, got.Changed)

	v6, ok := next(t, ch).(netif.SecondaryAddressAcquired)
	require.True(t, ok)
	assert.Equal(t, netif.IP6AddrLinkLocal, netif.IP6AddrTypeOf(v6.Info.IP))

	lost, ok := next(t, ch).(netif.LinkDisconnected)
	require.True(t, ok)
	assert.Equal(t, netif.ReasonBeaconTimeout, lost.Reason)
	assert.False(t, a.Linked())
}

func TestOrderingAcrossManyEvents(t *testing.T) {
	a, _ := started(t, DefaultConfig())
	ch, stop := recorder(t, a)
	defer stop()

	for i := 0; i < 20; i++ {
		require.NoError(t, a.Associate())
		require.True(t, a.Drop(netif.DisconnectReason(i+1)))
	}

	for i := 0; i < 20; i++ {
		_, ok := next(t, ch).(netif.LinkConnected)
		require.True(t, ok, "iteration %d", i)
		_, ok = next(t, ch).(netif.PrimaryAddressAcquired)
		require.True(t, ok, "iteration %d", i)
		lost, ok := next(t, ch).(netif.LinkDisconnected)
		require.True(t, ok, "iteration %d", i)
		assert.Equal(t, netif.DisconnectReason(i+1), lost.Reason)
	}
}

func TestStaticAddress(t *testing.T) {
	a, h := started(t, DefaultConfig())
	static := netif.IPInfo{
		IP:      netip.MustParseAddr("10.0.0.50"),
		Netmask: netip.MustParseAddr("255.255.255.0"),
		Gateway: netip.MustParseAddr("10.0.0.1"),
	}
	require.NoError(t, a.SetStaticAddress(h, static))
	ch, stop := recorder(t, a)
	defer stop()

	require.NoError(t, a.Associate())
	_ = next(t, ch)
	got, ok := next(t, ch).(netif.PrimaryAddressAcquired)
	require.True(t, ok)
	assert.Equal(t, static, got.Info)
	assert.True(t, a.Stats().Static)

	assert.Error(t, a.SetStaticAddress(h, netif.IPInfo{}))
}

func TestFailAssociations(t *testing.T) {
	a, _ := started(t, DefaultConfig())
	ch, stop := recorder(t, a)
	defer stop()

	a.FailAssociations(2, netif.ReasonAuthFail)
	for i := 0; i < 2; i++ {
		require.NoError(t, a.Associate())
		lost, ok := next(t, ch).(netif.LinkDisconnected)
		require.True(t, ok)
		assert.Equal(t, netif.ReasonAuthFail, lost.Reason)
	}

	require.NoError(t, a.Associate())
	_, ok := next(t, ch).(netif.LinkConnected)
	assert.True(t, ok)
	assert.Equal(t, 3, a.Stats().Associations)
}

func TestWrongSSID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SSID = "office"
	a, _ := started(t, cfg)
	ch, stop := recorder(t, a)
	defer stop()

	require.NoError(t, a.Associate())
	lost, ok := next(t, ch).(netif.LinkDisconnected)
	require.True(t, ok)
	assert.Equal(t, netif.ReasonNoAPFound, lost.Reason)
}

func TestRoam(t *testing.T) {
	a, _ := started(t, DefaultConfig())
	ch, stop := recorder(t, a)
	defer stop()

	assert.False(t, a.Roam())
	require.NoError(t, a.Associate())
	_ = next(t, ch)
	_ = next(t, ch)

	require.True(t, a.Roam())
	lost, ok := next(t, ch).(netif.LinkDisconnected)
	require.True(t, ok)
	assert.True(t, lost.Reason.IsRoaming())

	linked, ok := next(t, ch).(netif.LinkConnected)
	require.True(t, ok)
	assert.Equal(t, "02:00:00:00:10:02", linked.BSSID)

	got, ok := next(t, ch).(netif.PrimaryAddressAcquired)
	require.True(t, ok)
	assert.False(t, got.Changed)
}

func TestLifecycleErrors(t *testing.T) {
	a := New(DefaultConfig())
	defer a.Close()

	assert.ErrorIs(t, a.Associate(), netif.ErrNotStarted)
	assert.ErrorIs(t, a.RequestDisconnect(), netif.ErrNotStarted)
	assert.ErrorIs(t, a.Stop(), netif.ErrNotStarted)

	h, err := a.CreateStation()
	require.NoError(t, err)
	_, err = a.CreateStation()
	assert.ErrorIs(t, err, ErrInterfaceExists)

	require.NoError(t, a.Start(netif.StationConfig{SSID: "home"}))
	assert.ErrorIs(t, a.Start(netif.StationConfig{SSID: "home"}), netif.ErrAlreadyStarted)

	a.SetAssociateError(net.ErrClosed)
	assert.ErrorIs(t, a.Associate(), net.ErrClosed)
	a.SetAssociateError(nil)

	require.NoError(t, a.SetHostname(h, "sensor-1"))
	require.NoError(t, a.SetMAC(h, net.HardwareAddr{0x02, 0xaa, 0xbb, 0xcc, 0xdd, 0xee}))
	assert.Error(t, a.SetMAC(h, net.HardwareAddr{0x01}))
	assert.ErrorIs(t, a.CreateIP6LinkLocal(h), errLinkDown)

	a.DestroyInterface(h)
	assert.ErrorIs(t, a.SetHostname(h, "x"), netif.ErrInvalidHandle)

	stats := a.Stats()
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 1, stats.Destroyed)
	assert.Equal(t, "sensor-1", stats.Hostname)
	assert.Equal(t, "02:aa:bb:cc:dd:ee", stats.MAC)
}

func TestLinkLocalFromMAC(t *testing.T) {
	mac := net.HardwareAddr{0x00, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e}
	assert.Equal(t, netip.MustParseAddr("fe80::21a:2bff:fe3c:4d5e"), LinkLocalFromMAC(mac))
}

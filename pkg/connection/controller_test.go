package connection

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/staconn/staconn-go/pkg/events"
	"github.com/staconn/staconn-go/pkg/log"
	"github.com/staconn/staconn-go/pkg/netif"
	"github.com/staconn/staconn-go/pkg/netif/mocks"
)

type testHandle string

func (h testHandle) Name() string { return string(h) }

const sta0 = testHandle("sta0")

var lease = netif.IPInfo{
	IP:      netip.MustParseAddr("10.0.0.20"),
	Netmask: netip.MustParseAddr("255.255.255.0"),
	Gateway: netip.MustParseAddr("10.0.0.1"),
}

type harness struct {
	t       *testing.T
	adapter *mocks.MockAdapter
	ctrl    *Controller
	events  chan Event

	mu       sync.Mutex
	handlers []func(netif.Event)
	subs     []*events.Subscription
}

func testConfig(maxRetries int) Config {
	cfg := DefaultConfig("home", "correct horse")
	cfg.Retry.MaxRetries = maxRetries
	cfg.Logger = slog.New(slog.DiscardHandler)
	return cfg
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()

	h := &harness{
		t:       t,
		adapter: mocks.NewMockAdapter(t),
		events:  make(chan Event, 64),
	}

	rawBus := events.NewBus(cfg.Logger)
	t.Cleanup(rawBus.Close)

	h.adapter.EXPECT().Subscribe(mock.Anything).RunAndReturn(func(fn func(netif.Event)) *events.Subscription {
		sub := events.Subscribe(rawBus, "raw", func(netif.Event) {})
		h.mu.Lock()
		h.handlers = append(h.handlers, fn)
		h.subs = append(h.subs, sub)
		h.mu.Unlock()
		return sub
	}).Maybe()

	ctrl, err := NewController(h.adapter, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		// Tests may end mid-session; Close then tears it down.
		h.adapter.EXPECT().RequestDisconnect().Return(nil).Maybe()
		h.adapter.EXPECT().DestroyInterface(mock.Anything).Return().Maybe()
		h.adapter.EXPECT().Stop().Return(nil).Maybe()
		_ = ctrl.Close()
	})
	h.ctrl = ctrl

	ctrl.Subscribe(func(ev Event) { h.events <- ev })
	return h
}

// raw delivers ev to the handler registered by the most recent Connect.
func (h *harness) raw(ev netif.Event) {
	h.t.Helper()
	h.mu.Lock()
	require.NotEmpty(h.t, h.handlers, "no raw subscription")
	fn := h.handlers[len(h.handlers)-1]
	h.mu.Unlock()
	fn(ev)
}

func (h *harness) subscriptions() []*events.Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*events.Subscription(nil), h.subs...)
}

func (h *harness) next() Event {
	h.t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for lifecycle event")
		return nil
	}
}

func (h *harness) noEvent() {
	h.t.Helper()
	select {
	case ev := <-h.events:
		h.t.Fatalf("unexpected lifecycle event %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func (h *harness) expectSetup() {
	h.adapter.EXPECT().CreateStation().Return(sta0, nil).Once()
	h.adapter.EXPECT().Start(mock.Anything).Return(nil).Once()
}

func (h *harness) expectTeardown() {
	h.adapter.EXPECT().RequestDisconnect().Return(nil).Once()
	h.adapter.EXPECT().DestroyInterface(sta0).Return().Once()
	h.adapter.EXPECT().Stop().Return(nil).Once()
}

func (h *harness) connect() {
	h.t.Helper()
	require.NoError(h.t, h.ctrl.Connect(context.Background()))
	require.Equal(h.t, PhaseConnecting, h.ctrl.Phase())
}

func (h *harness) gotIP() {
	h.t.Helper()
	h.raw(netif.PrimaryAddressAcquired{Info: lease, Changed: true})
	assert.Equal(h.t, ConnectionSucceeded{IPInfo: lease}, h.next())
}

func linkLost(reason netif.DisconnectReason) netif.LinkDisconnected {
	return netif.LinkDisconnected{SSID: "home", Reason: reason}
}

func TestControllerReattemptsOncePerLoss(t *testing.T) {
	h := newHarness(t, testConfig(3))
	h.expectSetup()
	h.adapter.EXPECT().Associate().Return(nil).Times(1 + 3)
	h.connect()

	for i := 1; i <= 3; i++ {
		h.raw(linkLost(netif.ReasonBeaconTimeout))
		assert.Equal(t, i, h.ctrl.RetryCount())
		assert.Equal(t, PhaseConnecting, h.ctrl.Phase())
	}
	h.noEvent()
}

func TestControllerExhaustion(t *testing.T) {
	t.Run("NeverConnected", func(t *testing.T) {
		h := newHarness(t, testConfig(2))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Times(1 + 2)
		h.expectTeardown()
		h.connect()

		for i := 0; i < 2+1; i++ {
			h.raw(linkLost(netif.ReasonNoAPFound))
		}

		assert.Equal(t, ConnectionFailed{}, h.next())
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
		assert.True(t, h.subscriptions()[0].Closed())
		assert.NoError(t, h.ctrl.Err())
		h.noEvent()
	})

	t.Run("AfterSuccess", func(t *testing.T) {
		h := newHarness(t, testConfig(2))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Times(1 + 2)
		h.expectTeardown()
		h.connect()
		h.gotIP()

		for i := 0; i < 2+1; i++ {
			h.raw(linkLost(netif.ReasonBeaconTimeout))
		}

		assert.Equal(t, Disconnected{Reason: ReasonUnsolicited}, h.next())
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
		assert.False(t, h.ctrl.IPInfo().IP.IsValid())
	})

	t.Run("ZeroRetries", func(t *testing.T) {
		h := newHarness(t, testConfig(0))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.expectTeardown()
		h.connect()

		h.raw(linkLost(netif.ReasonAuthFail))
		assert.Equal(t, ConnectionFailed{}, h.next())
	})

	t.Run("LateEventsIgnored", func(t *testing.T) {
		h := newHarness(t, testConfig(0))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.expectTeardown()
		h.connect()

		h.raw(linkLost(netif.ReasonAuthFail))
		assert.Equal(t, ConnectionFailed{}, h.next())

		h.raw(linkLost(netif.ReasonAuthFail))
		h.raw(netif.PrimaryAddressAcquired{Info: lease})
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
		h.noEvent()
	})
}

func TestControllerRoaming(t *testing.T) {
	t.Run("NeverCountedOrReattempted", func(t *testing.T) {
		h := newHarness(t, testConfig(1))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.connect()
		h.gotIP()

		for i := 0; i < 5; i++ {
			h.raw(linkLost(netif.ReasonRoaming))
		}
		assert.Equal(t, 0, h.ctrl.RetryCount())
		assert.Equal(t, PhaseConnected, h.ctrl.Phase())
		h.noEvent()
	})

	t.Run("KeepCount", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Times(1 + 2)
		h.connect()

		h.raw(linkLost(netif.ReasonBeaconTimeout))
		h.raw(linkLost(netif.ReasonRoaming))
		assert.Equal(t, 1, h.ctrl.RetryCount())
		h.raw(linkLost(netif.ReasonBeaconTimeout))
		assert.Equal(t, 2, h.ctrl.RetryCount())
	})

	t.Run("ResetCount", func(t *testing.T) {
		cfg := testConfig(3)
		cfg.Retry.Roaming = RoamingResetCount
		h := newHarness(t, cfg)
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Times(1 + 2)
		h.connect()

		h.raw(linkLost(netif.ReasonBeaconTimeout))
		h.raw(linkLost(netif.ReasonRoaming))
		assert.Equal(t, 0, h.ctrl.RetryCount())
		h.raw(linkLost(netif.ReasonBeaconTimeout))
		assert.Equal(t, 1, h.ctrl.RetryCount())
	})
}

func TestControllerAddressAcquisition(t *testing.T) {
	t.Run("PrimaryResetsCount", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Times(1 + 2)
		h.connect()

		h.raw(linkLost(netif.ReasonBeaconTimeout))
		h.raw(linkLost(netif.ReasonBeaconTimeout))
		require.Equal(t, 2, h.ctrl.RetryCount())

		h.gotIP()
		assert.Equal(t, 0, h.ctrl.RetryCount())
		assert.Equal(t, PhaseConnected, h.ctrl.Phase())
		assert.Equal(t, lease, h.ctrl.IPInfo())
		h.noEvent()
	})

	t.Run("EveryAcquisitionPublished", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Times(2)
		h.connect()

		h.gotIP()
		h.raw(linkLost(netif.ReasonBeaconTimeout))
		assert.Equal(t, PhaseConnecting, h.ctrl.Phase())

		renewed := lease
		renewed.IP = netip.MustParseAddr("10.0.0.21")
		h.raw(netif.PrimaryAddressAcquired{Info: renewed, Changed: true})
		assert.Equal(t, ConnectionSucceeded{IPInfo: renewed}, h.next())
	})

	t.Run("LinkUpCreatesLinkLocal", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.adapter.EXPECT().CreateIP6LinkLocal(sta0).Return(errors.New("no ipv6")).Once()
		h.connect()

		h.raw(netif.LinkConnected{SSID: "home", BSSID: "02:00:00:00:10:01", Channel: 6})
		assert.Equal(t, PhaseConnecting, h.ctrl.Phase())
		h.noEvent()
	})

	t.Run("SecondaryIsDiagnosticOnly", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Times(2)
		h.connect()

		h.raw(linkLost(netif.ReasonBeaconTimeout))
		h.raw(netif.SecondaryAddressAcquired{Info: netif.IP6Info{IP: netip.MustParseAddr("fe80::1")}})
		assert.Equal(t, PhaseConnecting, h.ctrl.Phase())
		assert.Equal(t, 1, h.ctrl.RetryCount())
		h.noEvent()
	})
}

func TestControllerDisconnect(t *testing.T) {
	t.Run("AfterSuccess", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.expectTeardown()
		h.connect()
		h.gotIP()

		require.NoError(t, h.ctrl.Disconnect())
		assert.Equal(t, Disconnected{Reason: ReasonRequested}, h.next())
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
		assert.True(t, h.subscriptions()[0].Closed())
	})

	t.Run("BeforeSuccess", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.expectTeardown()
		h.connect()

		require.NoError(t, h.ctrl.Disconnect())
		assert.Equal(t, ConnectionFailed{}, h.next())
		h.noEvent()
	})

	t.Run("WhileReattempting", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Times(2)
		h.expectTeardown()
		h.connect()
		h.gotIP()
		h.raw(linkLost(netif.ReasonBeaconTimeout))

		require.NoError(t, h.ctrl.Disconnect())
		assert.Equal(t, Disconnected{Reason: ReasonRequested}, h.next())
	})

	t.Run("WhenIdle", func(t *testing.T) {
		h := newHarness(t, testConfig(3))

		require.NoError(t, h.ctrl.Disconnect())
		assert.Equal(t, ConnectionFailed{}, h.next())
		require.NoError(t, h.ctrl.Disconnect())
		assert.Equal(t, ConnectionFailed{}, h.next())
		assert.Empty(t, h.subscriptions())
	})

	t.Run("RequestFailureLogged", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.adapter.EXPECT().RequestDisconnect().Return(errors.New("radio busy")).Once()
		h.adapter.EXPECT().DestroyInterface(sta0).Return().Once()
		h.adapter.EXPECT().Stop().Return(nil).Once()
		h.connect()

		require.NoError(t, h.ctrl.Disconnect())
		assert.Equal(t, ConnectionFailed{}, h.next())
	})

	t.Run("StopErrorReturned", func(t *testing.T) {
		stopErr := errors.New("firmware timeout")
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.adapter.EXPECT().RequestDisconnect().Return(nil).Once()
		h.adapter.EXPECT().DestroyInterface(sta0).Return().Once()
		h.adapter.EXPECT().Stop().Return(stopErr).Once()
		h.connect()

		err := h.ctrl.Disconnect()
		assert.ErrorIs(t, err, stopErr)
		assert.Equal(t, ConnectionFailed{}, h.next())
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
	})
}

func TestControllerConnectTwice(t *testing.T) {
	h := newHarness(t, testConfig(3))
	h.expectSetup()
	h.adapter.EXPECT().Associate().Return(nil).Once()
	h.connect()

	err := h.ctrl.Connect(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyActive)
	assert.Len(t, h.subscriptions(), 1)

	h.gotIP()
	assert.ErrorIs(t, h.ctrl.Connect(context.Background()), ErrAlreadyActive)
	assert.Len(t, h.subscriptions(), 1)
	assert.Equal(t, PhaseConnected, h.ctrl.Phase())
}

func TestControllerSubscribeSkipsQueuedEvents(t *testing.T) {
	h := newHarness(t, testConfig(3))
	h.expectSetup()
	h.adapter.EXPECT().Associate().Return(nil).Once()
	h.expectTeardown()

	// Stall the emitter on the first phase change so the session's events
	// are still queued when the late subscriber registers.
	hold := make(chan struct{})
	var once sync.Once
	h.ctrl.OnPhaseChange(func(Phase, Phase) { once.Do(func() { <-hold }) })

	h.connect()
	h.raw(netif.PrimaryAddressAcquired{Info: lease, Changed: true})
	require.NoError(t, h.ctrl.Disconnect())

	late := make(chan Event, 8)
	sub := h.ctrl.Subscribe(func(ev Event) { late <- ev })
	defer sub.Close()
	close(hold)

	assert.Equal(t, ConnectionSucceeded{IPInfo: lease}, h.next())
	assert.Equal(t, Disconnected{Reason: ReasonRequested}, h.next())

	require.NoError(t, h.ctrl.Disconnect())
	assert.Equal(t, ConnectionFailed{}, h.next())
	select {
	case ev := <-late:
		assert.Equal(t, ConnectionFailed{}, ev)
	case <-time.After(2 * time.Second):
		t.Fatal("late subscriber missed an event generated after it subscribed")
	}
	select {
	case ev := <-late:
		t.Fatalf("late subscriber saw earlier event %v", ev)
	default:
	}
}

func TestControllerRoundTrip(t *testing.T) {
	h := newHarness(t, testConfig(2))
	h.adapter.EXPECT().CreateStation().Return(sta0, nil).Times(2)
	h.adapter.EXPECT().Start(mock.Anything).Return(nil).Times(2)
	h.adapter.EXPECT().Associate().Return(nil).Times(2 + 1)
	h.adapter.EXPECT().RequestDisconnect().Return(nil).Times(2)
	h.adapter.EXPECT().DestroyInterface(sta0).Return().Times(2)
	h.adapter.EXPECT().Stop().Return(nil).Times(2)

	h.connect()
	firstSession := h.ctrl.SessionID()
	h.raw(linkLost(netif.ReasonBeaconTimeout))
	h.gotIP()
	require.NoError(t, h.ctrl.Disconnect())
	assert.Equal(t, Disconnected{Reason: ReasonRequested}, h.next())

	h.connect()
	assert.Equal(t, 0, h.ctrl.RetryCount())
	assert.NotEqual(t, firstSession, h.ctrl.SessionID())

	subs := h.subscriptions()
	require.Len(t, subs, 2)
	assert.True(t, subs[0].Closed())
	assert.False(t, subs[1].Closed())

	// The first session's handler is dead.
	h.mu.Lock()
	stale := h.handlers[0]
	h.mu.Unlock()
	stale(netif.PrimaryAddressAcquired{Info: lease})
	assert.Equal(t, PhaseConnecting, h.ctrl.Phase())
	h.noEvent()

	// A fresh session never connected: disconnect reports failure.
	require.NoError(t, h.ctrl.Disconnect())
	assert.Equal(t, ConnectionFailed{}, h.next())
}

func TestControllerSetupFailure(t *testing.T) {
	t.Run("CreateStation", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.adapter.EXPECT().CreateStation().Return(nil, errors.New("out of memory")).Once()

		err := h.ctrl.Connect(context.Background())
		assert.ErrorIs(t, err, ErrInterfaceCreate)
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
		assert.True(t, h.subscriptions()[0].Closed())
		h.noEvent()
	})

	t.Run("Start", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.adapter.EXPECT().CreateStation().Return(sta0, nil).Once()
		h.adapter.EXPECT().Start(mock.Anything).Return(netif.ErrAlreadyStarted).Once()
		h.adapter.EXPECT().DestroyInterface(sta0).Return().Once()

		err := h.ctrl.Connect(context.Background())
		assert.ErrorIs(t, err, netif.ErrAlreadyStarted)
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
		h.noEvent()
	})

	t.Run("Associate", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(errors.New("no radio")).Once()
		h.adapter.EXPECT().DestroyInterface(sta0).Return().Once()
		h.adapter.EXPECT().Stop().Return(nil).Once()

		require.Error(t, h.ctrl.Connect(context.Background()))
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
		h.noEvent()

		// The controller is reusable after a failed setup.
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.connect()
	})

	t.Run("CanceledContext", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, h.ctrl.Connect(ctx), context.Canceled)
		assert.Empty(t, h.subscriptions())
	})
}

func TestControllerReattemptErrors(t *testing.T) {
	t.Run("NotStartedSwallowed", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.adapter.EXPECT().Associate().Return(netif.ErrNotStarted).Once()
		h.connect()

		h.raw(linkLost(netif.ReasonBeaconTimeout))
		assert.Equal(t, PhaseConnecting, h.ctrl.Phase())
		assert.NoError(t, h.ctrl.Err())
		h.noEvent()
	})

	t.Run("OtherErrorFatal", func(t *testing.T) {
		busErr := errors.New("driver crashed")
		h := newHarness(t, testConfig(3))
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.adapter.EXPECT().Associate().Return(busErr).Once()
		h.expectTeardown()
		h.connect()
		h.gotIP()

		h.raw(linkLost(netif.ReasonBeaconTimeout))
		assert.Equal(t, Disconnected{Reason: ReasonUnsolicited}, h.next())
		assert.Equal(t, PhaseIdle, h.ctrl.Phase())
		assert.ErrorIs(t, h.ctrl.Err(), busErr)
	})
}

func TestControllerInterfaceConfiguration(t *testing.T) {
	cfg := testConfig(3)
	cfg.Hostname = "weather-station"
	cfg.MAC = net.HardwareAddr{0x02, 0x11, 0x22, 0x33, 0x44, 0x55}
	cfg.Addressing = AddressingStatic
	cfg.Static = lease
	cfg.Station.AuthThreshold = netif.AuthWPA3PSK

	h := newHarness(t, cfg)
	h.adapter.EXPECT().CreateStation().Return(sta0, nil).Once()
	h.adapter.EXPECT().SetHostname(sta0, "weather-station").Return(nil).Once()
	h.adapter.EXPECT().SetMAC(sta0, cfg.MAC).Return(nil).Once()
	h.adapter.EXPECT().SetStaticAddress(sta0, lease).Return(nil).Once()
	h.adapter.EXPECT().Start(mock.Anything).Run(func(sc netif.StationConfig) {
		assert.Equal(t, "home", sc.SSID)
		assert.Equal(t, netif.AuthWPA3PSK, sc.AuthThreshold)
	}).Return(nil).Once()
	h.adapter.EXPECT().Associate().Return(nil).Once()

	h.connect()
	h.gotIP()
}

func TestControllerPhaseChanges(t *testing.T) {
	h := newHarness(t, testConfig(3))

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	h.ctrl.OnPhaseChange(func(oldPhase, newPhase Phase) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, oldPhase.String()+">"+newPhase.String())
		if newPhase == PhaseIdle {
			close(done)
		}
	})

	h.expectSetup()
	h.adapter.EXPECT().Associate().Return(nil).Once()
	h.expectTeardown()
	h.connect()
	h.gotIP()
	require.NoError(t, h.ctrl.Disconnect())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for phase changes")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"IDLE>CONNECTING",
		"CONNECTING>CONNECTED",
		"CONNECTED>DISCONNECTING",
		"DISCONNECTING>IDLE",
	}, got)
}

func TestControllerBackoff(t *testing.T) {
	cfg := testConfig(3)
	cfg.Retry.Backoff = &BackoffConfig{Initial: 20 * time.Millisecond, Max: 20 * time.Millisecond}

	t.Run("DelaysReattempt", func(t *testing.T) {
		h := newHarness(t, cfg)
		h.expectSetup()

		var mu sync.Mutex
		calls := 0
		h.adapter.EXPECT().Associate().RunAndReturn(func() error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return nil
		}).Times(2)
		h.connect()

		h.raw(linkLost(netif.ReasonBeaconTimeout))
		st, ok := h.ctrl.BackoffState()
		require.True(t, ok)
		assert.Equal(t, 1, st.Attempts)

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return calls == 2
		}, 2*time.Second, 5*time.Millisecond)

		h.gotIP()
		st, _ = h.ctrl.BackoffState()
		assert.Equal(t, BackoffState{Next: 20 * time.Millisecond}, st)
	})

	t.Run("DisabledByDefault", func(t *testing.T) {
		h := newHarness(t, testConfig(3))
		_, ok := h.ctrl.BackoffState()
		assert.False(t, ok)
	})

	t.Run("CanceledByDisconnect", func(t *testing.T) {
		slow := cfg
		slow.Retry.Backoff = &BackoffConfig{Initial: 100 * time.Millisecond, Max: 100 * time.Millisecond}
		h := newHarness(t, slow)
		h.expectSetup()
		h.adapter.EXPECT().Associate().Return(nil).Once()
		h.expectTeardown()
		h.connect()

		h.raw(linkLost(netif.ReasonBeaconTimeout))
		require.NoError(t, h.ctrl.Disconnect())
		assert.Equal(t, ConnectionFailed{}, h.next())

		// Associate is expected exactly once; a late timer would fail the mock.
		time.Sleep(200 * time.Millisecond)
	})
}

type traceRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *traceRecorder) Log(ev log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *traceRecorder) byCategory(c log.Category) []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []log.Event
	for _, ev := range r.events {
		if ev.Category == c {
			out = append(out, ev)
		}
	}
	return out
}

func TestControllerTrace(t *testing.T) {
	rec := &traceRecorder{}
	cfg := testConfig(1)
	cfg.TraceLogger = rec

	h := newHarness(t, cfg)
	h.expectSetup()
	h.adapter.EXPECT().Associate().Return(nil).Times(2)
	h.expectTeardown()
	h.connect()
	session := h.ctrl.SessionID()

	h.raw(linkLost(netif.ReasonRoaming))
	h.raw(linkLost(netif.ReasonBeaconTimeout))
	h.raw(linkLost(netif.ReasonBeaconTimeout))
	assert.Equal(t, ConnectionFailed{}, h.next())

	retries := rec.byCategory(log.CategoryRetry)
	require.Len(t, retries, 3)
	assert.Equal(t, log.RetrySuppressed, retries[0].Retry.Action)
	assert.Equal(t, log.RetryReattempt, retries[1].Retry.Action)
	assert.Equal(t, 1, retries[1].Retry.Attempt)
	assert.Equal(t, log.RetryExhausted, retries[2].Retry.Action)
	assert.Equal(t, uint16(netif.ReasonBeaconTimeout), retries[2].Retry.Reason)

	raws := rec.byCategory(log.CategoryRaw)
	require.Len(t, raws, 3)
	assert.Equal(t, "ROAMING", raws[0].Raw.ReasonName)
	assert.Equal(t, "sta0", raws[0].Interface)

	lifecycle := rec.byCategory(log.CategoryLifecycle)
	require.Len(t, lifecycle, 1)
	assert.Equal(t, log.LifecycleFailed, lifecycle[0].Lifecycle.Kind)

	for _, ev := range rec.byCategory(log.CategoryState) {
		assert.Equal(t, session, ev.SessionID)
	}
}

func TestNewControllerValidation(t *testing.T) {
	adapter := mocks.NewMockAdapter(t)

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty SSID", func(c *Config) { c.Station.SSID = "" }},
		{"negative retries", func(c *Config) { c.Retry.MaxRetries = -1 }},
		{"short MAC", func(c *Config) { c.MAC = net.HardwareAddr{1, 2, 3} }},
		{"static without address", func(c *Config) { c.Addressing = AddressingStatic }},
		{"unknown addressing", func(c *Config) { c.Addressing = Addressing(7) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(3)
			tt.modify(&cfg)
			_, err := NewController(adapter, cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := NewController(nil, testConfig(3))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestControllerClose(t *testing.T) {
	h := newHarness(t, testConfig(3))
	h.expectSetup()
	h.adapter.EXPECT().Associate().Return(nil).Once()
	h.expectTeardown()
	h.connect()
	h.gotIP()

	require.NoError(t, h.ctrl.Close())
	assert.Equal(t, Disconnected{Reason: ReasonRequested}, h.next())
	assert.ErrorIs(t, h.ctrl.Connect(context.Background()), ErrClosed)
	assert.ErrorIs(t, h.ctrl.Disconnect(), ErrClosed)
	assert.NoError(t, h.ctrl.Close())
}

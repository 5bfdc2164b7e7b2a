package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staconn/staconn-go/pkg/events"
	"github.com/staconn/staconn-go/pkg/log"
	"github.com/staconn/staconn-go/pkg/netif"
)

// Controller errors.
var (
	ErrAlreadyActive    = errors.New("connection already active")
	ErrClosed           = errors.New("controller closed")
	ErrInterfaceCreate  = errors.New("create station interface")
	ErrConnectionFailed = errors.New("connection failed")
	ErrInvalidConfig    = errors.New("invalid connection config")
)

// notice is an entry of the controller outbox: either a lifecycle event for
// subscribers or a phase change for the OnPhaseChange callback.
type notice struct {
	event    Event
	seq      uint64
	oldPhase Phase
	newPhase Phase
}

// envelope is what travels on the lifecycle topic. seq orders the event
// against subscriptions: a subscriber only sees events emitted after it
// registered.
type envelope struct {
	seq   uint64
	event Event
}

// Controller owns one station connection: its phase, its retry counter and
// the interface handle. Raw stack events are interpreted on the adapter's
// delivery goroutine; lifecycle events are published in generation order by
// a single emitter goroutine.
type Controller struct {
	mu sync.Mutex

	adapter netif.Adapter
	cfg     Config
	logger  *slog.Logger
	trace   log.Logger

	bus *events.Bus
	out *events.Outbox[notice]

	phase               Phase
	retryCount          int
	disconnectRequested bool
	connectedOnce       bool
	started             bool
	closed              bool

	handle    netif.Handle
	rawSub    *events.Subscription
	session   uint64
	emitted   uint64
	sessionID string
	ipInfo    netif.IPInfo
	err       error

	backoff *Backoff
	timer   *time.Timer

	onPhaseChange func(oldPhase, newPhase Phase)
}

// NewController creates a controller for adapter.
func NewController(adapter netif.Adapter, cfg Config) (*Controller, error) {
	if adapter == nil {
		return nil, fmt.Errorf("%w: nil adapter", ErrInvalidConfig)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	trace := cfg.TraceLogger
	if trace == nil {
		trace = log.NoopLogger{}
	}

	c := &Controller{
		adapter: adapter,
		cfg:     cfg,
		logger:  logger.With("component", "connection"),
		trace:   trace,
		bus:     events.NewBus(logger),
	}
	if cfg.Retry.Backoff != nil {
		c.backoff = NewBackoffWithConfig(*cfg.Retry.Backoff)
	}
	c.out = events.NewOutbox(c.deliver)
	return c, nil
}

// Subscribe registers handler for lifecycle events. Events are delivered by
// value, in the order they were generated. Only events generated after
// Subscribe returns are delivered; anything still queued from earlier is
// skipped. The subscription may be opened and closed from within a handler.
func (c *Controller) Subscribe(handler func(Event)) *events.Subscription {
	var after uint64
	ready := make(chan struct{})

	sub := events.Subscribe(c.bus, TopicLifecycle, func(env envelope) {
		<-ready
		if env.seq <= after {
			return
		}
		handler(env.event)
	})

	// The bus registration happens first so nothing emitted past the mark
	// can be published before the subscriber exists.
	c.mu.Lock()
	after = c.emitted
	c.mu.Unlock()
	close(ready)

	return sub
}

// OnPhaseChange sets a callback for phase transitions. It runs on the emitter
// goroutine, in transition order.
func (c *Controller) OnPhaseChange(fn func(oldPhase, newPhase Phase)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPhaseChange = fn
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// RetryCount returns the number of consecutive reattempts since the last
// primary address acquisition.
func (c *Controller) RetryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retryCount
}

// IPInfo returns the primary address of the current session, if any.
func (c *Controller) IPInfo() netif.IPInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ipInfo
}

// SessionID returns the identifier of the current or last session.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// BackoffState reports the reattempt spacing of the current session. ok is
// false when reattempts are immediate.
func (c *Controller) BackoffState() (state BackoffState, ok bool) {
	if c.backoff == nil {
		return BackoffState{}, false
	}
	return c.backoff.State(), true
}

// Err returns the error that ended the last session, if the controller tore
// it down because of an unexpected adapter failure.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Connect starts a session: it subscribes to raw events, creates and
// configures the station interface, starts the station and requests
// association. It returns once association is requested; completion is
// reported by a lifecycle event.
//
// A setup failure rolls everything back and is returned; no lifecycle event
// is published for it.
func (c *Controller) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.phase != PhaseIdle {
		return ErrAlreadyActive
	}

	c.session++
	session := c.session
	c.sessionID = uuid.NewString()
	c.retryCount = 0
	c.disconnectRequested = false
	c.connectedOnce = false
	c.ipInfo = netif.IPInfo{}
	c.err = nil
	if c.backoff != nil {
		c.backoff.Reset()
	}

	c.setPhaseLocked(PhaseConnecting, "connect")
	c.rawSub = c.adapter.Subscribe(func(ev netif.Event) {
		c.handleRaw(session, ev)
	})

	if err := c.setupLocked(); err != nil {
		c.logger.Error("connect failed", "ssid", c.cfg.Station.SSID, "error", err)
		c.traceErrorLocked(log.LayerController, err, "connect", true)
		c.rollbackLocked()
		return err
	}

	c.logger.Info("connecting",
		"ssid", c.cfg.Station.SSID,
		"addressing", c.cfg.Addressing.String(),
		"session", c.sessionID)
	return nil
}

func (c *Controller) setupLocked() error {
	h, err := c.adapter.CreateStation()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInterfaceCreate, err)
	}
	c.handle = h

	if c.cfg.Hostname != "" {
		if err := c.adapter.SetHostname(h, c.cfg.Hostname); err != nil {
			return fmt.Errorf("set hostname: %w", err)
		}
	}
	if len(c.cfg.MAC) > 0 {
		if err := c.adapter.SetMAC(h, c.cfg.MAC); err != nil {
			return fmt.Errorf("set MAC: %w", err)
		}
	}
	if c.cfg.Addressing == AddressingStatic {
		if err := c.adapter.SetStaticAddress(h, c.cfg.Static); err != nil {
			return fmt.Errorf("set static address: %w", err)
		}
		c.logger.Info("static address configured", "addr", c.cfg.Static.String())
	}

	if err := c.adapter.Start(c.cfg.Station); err != nil {
		return fmt.Errorf("start station: %w", err)
	}
	c.started = true

	if err := c.adapter.Associate(); err != nil {
		return fmt.Errorf("associate: %w", err)
	}
	return nil
}

// rollbackLocked undoes a partial setup without publishing an event.
func (c *Controller) rollbackLocked() {
	c.releaseLocked()
	c.destroyLocked()
	if c.started {
		if err := c.adapter.Stop(); err != nil {
			c.logger.Warn("stop after failed connect", "error", err)
		}
		c.started = false
	}
	c.setPhaseLocked(PhaseIdle, "setup failed")
}

// Disconnect ends the session. Exactly one terminal event is published per
// call: Disconnected{ReasonRequested} if the session was connected at least
// once, ConnectionFailed otherwise (including when no session is running).
//
// The raw subscription is released before Disconnect returns. The error
// reported by the stack when stopping the station is returned.
func (c *Controller) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.disconnectRequested = true
	if c.phase == PhaseIdle {
		c.logger.Debug("disconnect without session")
		c.emitLocked(ConnectionFailed{})
		return nil
	}
	return c.teardownLocked("requested")
}

// Close tears down a running session and stops event delivery. Pending
// lifecycle events are delivered before Close returns. Close must not be
// called from a lifecycle handler.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	var err error
	if c.phase.Active() {
		c.disconnectRequested = true
		err = c.teardownLocked("close")
	}
	c.closed = true
	c.mu.Unlock()

	c.out.Close()
	c.bus.Close()
	return err
}

// teardownLocked runs the disconnect sequence shared by Disconnect and the
// retry exhaustion path. The terminal event is composed from the state as it
// was before teardown started.
func (c *Controller) teardownLocked(why string) error {
	reason := ReasonUnsolicited
	if c.disconnectRequested {
		reason = ReasonRequested
	}
	var terminal Event = ConnectionFailed{}
	if c.connectedOnce {
		terminal = Disconnected{Reason: reason}
	}

	c.setPhaseLocked(PhaseDisconnecting, why)
	c.releaseLocked()
	c.emitLocked(terminal)

	if err := c.adapter.RequestDisconnect(); err != nil && !errors.Is(err, netif.ErrNotStarted) {
		c.logger.Warn("disconnect request failed", "error", err)
		c.traceErrorLocked(log.LayerLink, err, "request disconnect", false)
	}
	c.destroyLocked()

	var err error
	if c.started {
		if stopErr := c.adapter.Stop(); stopErr != nil {
			err = fmt.Errorf("stop station: %w", stopErr)
		}
		c.started = false
	}

	c.ipInfo = netif.IPInfo{}
	c.setPhaseLocked(PhaseIdle, why)
	return err
}

// releaseLocked drops the raw subscription and invalidates everything still
// in flight for the current session.
func (c *Controller) releaseLocked() {
	if c.rawSub != nil {
		c.rawSub.Close()
		c.rawSub = nil
	}
	c.session++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) destroyLocked() {
	if c.handle == nil {
		return
	}
	c.adapter.DestroyInterface(c.handle)
	c.handle = nil
}

func (c *Controller) handleRaw(session uint64, ev netif.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if session != c.session || !c.phase.Active() {
		c.logger.Debug("stale raw event dropped", "event", ev.String())
		c.traceRawLocked(ev, true)
		return
	}
	c.traceRawLocked(ev, false)

	switch e := ev.(type) {
	case netif.LinkConnected:
		c.onLinkUpLocked(e)
	case netif.LinkDisconnected:
		c.onLinkDownLocked(e)
	case netif.PrimaryAddressAcquired:
		c.onPrimaryAddressLocked(e)
	case netif.SecondaryAddressAcquired:
		c.onSecondaryAddressLocked(e)
	}
}

func (c *Controller) onLinkUpLocked(e netif.LinkConnected) {
	c.logger.Info("link up", "ssid", e.SSID, "bssid", e.BSSID, "channel", e.Channel)
	if err := c.adapter.CreateIP6LinkLocal(c.handle); err != nil {
		c.logger.Warn("IPv6 link-local setup failed", "error", err)
		c.traceErrorLocked(log.LayerAddress, err, "create link-local", false)
	}
}

func (c *Controller) onPrimaryAddressLocked(e netif.PrimaryAddressAcquired) {
	c.retryCount = 0
	if c.backoff != nil {
		c.backoff.Reset()
	}
	c.connectedOnce = true
	c.ipInfo = e.Info

	c.logger.Info("got ip",
		"ip", e.Info.IP,
		"netmask", e.Info.Netmask,
		"gateway", e.Info.Gateway,
		"changed", e.Changed)
	c.setPhaseLocked(PhaseConnected, "address acquired")
	c.emitLocked(ConnectionSucceeded{IPInfo: e.Info})
}

func (c *Controller) onSecondaryAddressLocked(e netif.SecondaryAddressAcquired) {
	c.logger.Info("got ipv6", "ip", e.Info.IP, "type", netif.IP6AddrTypeOf(e.Info.IP).String())
}

func (c *Controller) onLinkDownLocked(e netif.LinkDisconnected) {
	action, count := c.cfg.Retry.decide(c.retryCount, e.Reason)
	c.retryCount = count

	switch action {
	case actionSuppress:
		c.logger.Info("roaming, reassociation left to the stack",
			"reason", e.Reason.String(), "retry", count)
		c.traceRetryLocked(log.RetrySuppressed, e.Reason, 0)

	case actionReattempt:
		c.setPhaseLocked(PhaseConnecting, e.Reason.String())
		attrs := []any{
			"reason", e.Reason.String(),
			"retry", count,
			"max_retries", c.cfg.Retry.MaxRetries,
		}
		var delay time.Duration
		if c.backoff != nil {
			delay = c.backoff.Next()
			st := c.backoff.State()
			attrs = append(attrs, "delay", delay, "backoff_attempts", st.Attempts, "next_base", st.Next)
		}
		c.logger.Info("link lost, reattempting", attrs...)
		c.traceRetryLocked(log.RetryReattempt, e.Reason, delay)

		if delay == 0 {
			c.reassociateLocked()
			return
		}
		// A pending reattempt is superseded by the newer one.
		if c.timer != nil {
			c.timer.Stop()
		}
		session := c.session
		c.timer = time.AfterFunc(delay, func() { c.reattempt(session) })

	case actionGiveUp:
		c.logger.Warn("retries exhausted",
			"reason", e.Reason.String(), "max_retries", c.cfg.Retry.MaxRetries)
		c.traceRetryLocked(log.RetryExhausted, e.Reason, 0)
		if err := c.teardownLocked("retries exhausted"); err != nil {
			c.logger.Warn("teardown", "error", err)
		}
	}
}

func (c *Controller) reattempt(session uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if session != c.session || c.phase != PhaseConnecting {
		return
	}
	c.timer = nil
	c.reassociateLocked()
}

// reassociateLocked issues one association request. ErrNotStarted means the
// stack is mid-teardown and is ignored; any other failure ends the session.
func (c *Controller) reassociateLocked() {
	err := c.adapter.Associate()
	switch {
	case err == nil:
	case errors.Is(err, netif.ErrNotStarted):
		c.logger.Debug("reattempt skipped, station not started")
	default:
		c.err = fmt.Errorf("reassociate: %w", err)
		c.logger.Error("reattempt failed", "error", err)
		c.traceErrorLocked(log.LayerLink, err, "reassociate", true)
		if err := c.teardownLocked("reattempt failed"); err != nil {
			c.logger.Warn("teardown", "error", err)
		}
	}
}

func (c *Controller) setPhaseLocked(p Phase, reason string) {
	if c.phase == p {
		return
	}
	old := c.phase
	c.phase = p
	c.logger.Debug("phase change", "old", old.String(), "new", p.String(), "reason", reason)
	c.traceStateLocked(old, p, reason)
	c.out.Push(notice{oldPhase: old, newPhase: p})
}

func (c *Controller) emitLocked(ev Event) {
	c.traceLifecycleLocked(ev)
	c.emitted++
	if !c.out.Push(notice{event: ev, seq: c.emitted}) {
		c.logger.Warn("lifecycle event dropped, controller closed", "event", ev.String())
	}
}

// deliver runs on the outbox goroutine.
func (c *Controller) deliver(n notice) {
	if n.event == nil {
		c.mu.Lock()
		fn := c.onPhaseChange
		c.mu.Unlock()
		if fn != nil {
			fn(n.oldPhase, n.newPhase)
		}
		return
	}
	if err := c.bus.Publish(TopicLifecycle, envelope{seq: n.seq, event: n.event}); err != nil {
		c.logger.Warn("lifecycle event not delivered", "event", n.event.String(), "error", err)
	}
}

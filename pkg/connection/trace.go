package connection

import (
	"time"

	"github.com/staconn/staconn-go/pkg/log"
	"github.com/staconn/staconn-go/pkg/netif"
)

func (c *Controller) traceBase(layer log.Layer, category log.Category) log.Event {
	ev := log.Event{
		Timestamp: time.Now(),
		SessionID: c.sessionID,
		Layer:     layer,
		Category:  category,
		SSID:      c.cfg.Station.SSID,
	}
	if c.handle != nil {
		ev.Interface = c.handle.Name()
	}
	return ev
}

func (c *Controller) traceRawLocked(raw netif.Event, stale bool) {
	layer := log.LayerLink
	rec := &log.RawEvent{Stale: stale}

	switch e := raw.(type) {
	case netif.LinkConnected:
		rec.Kind = log.RawLinkUp
		rec.BSSID = e.BSSID
		rec.Channel = e.Channel
	case netif.LinkDisconnected:
		rec.Kind = log.RawLinkDown
		rec.Reason = uint16(e.Reason)
		rec.ReasonName = e.Reason.String()
	case netif.PrimaryAddressAcquired:
		layer = log.LayerAddress
		rec.Kind = log.RawGotIP
		rec.Address = e.Info.IP.String()
		rec.Netmask = e.Info.Netmask.String()
		if e.Info.Gateway.IsValid() {
			rec.Gateway = e.Info.Gateway.String()
		}
		rec.Changed = e.Changed
	case netif.SecondaryAddressAcquired:
		layer = log.LayerAddress
		rec.Kind = log.RawGotIP6
		rec.Address = e.Info.IP.String()
		rec.AddrType = netif.IP6AddrTypeOf(e.Info.IP).String()
	default:
		return
	}

	ev := c.traceBase(layer, log.CategoryRaw)
	ev.Raw = rec
	c.trace.Log(ev)
}

func (c *Controller) traceStateLocked(old, p Phase, reason string) {
	ev := c.traceBase(log.LayerController, log.CategoryState)
	ev.StateChange = &log.StateChangeEvent{
		OldState: old.String(),
		NewState: p.String(),
		Reason:   reason,
	}
	c.trace.Log(ev)
}

func (c *Controller) traceLifecycleLocked(le Event) {
	rec := &log.LifecycleEvent{}
	switch e := le.(type) {
	case ConnectionSucceeded:
		rec.Kind = log.LifecycleSucceeded
		rec.Address = e.IPInfo.IP.String()
		rec.Netmask = e.IPInfo.Netmask.String()
		if e.IPInfo.Gateway.IsValid() {
			rec.Gateway = e.IPInfo.Gateway.String()
		}
	case ConnectionFailed:
		rec.Kind = log.LifecycleFailed
	case Disconnected:
		rec.Kind = log.LifecycleDisconnected
		rec.Reason = e.Reason.String()
	}

	ev := c.traceBase(log.LayerController, log.CategoryLifecycle)
	ev.Lifecycle = rec
	c.trace.Log(ev)
}

func (c *Controller) traceRetryLocked(action log.RetryAction, reason netif.DisconnectReason, delay time.Duration) {
	ev := c.traceBase(log.LayerController, log.CategoryRetry)
	ev.Retry = &log.RetryEvent{
		Action:     action,
		Attempt:    c.retryCount,
		MaxRetries: c.cfg.Retry.MaxRetries,
		Reason:     uint16(reason),
		Delay:      delay,
	}
	c.trace.Log(ev)
}

func (c *Controller) traceErrorLocked(layer log.Layer, err error, context string, fatal bool) {
	ev := c.traceBase(layer, log.CategoryError)
	ev.Error = &log.ErrorEventData{
		Layer:   layer,
		Message: err.Error(),
		Context: context,
		Fatal:   fatal,
	}
	c.trace.Log(ev)
}

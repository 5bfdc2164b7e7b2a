package connection

import (
	"context"
	"fmt"

	"github.com/staconn/staconn-go/pkg/netif"
)

// ConnectAndWait connects c and blocks until the first lifecycle event of
// the session. It returns the acquired address on ConnectionSucceeded and
// ErrConnectionFailed if the session ended first. When ctx ends first the
// session keeps running; the caller decides whether to Disconnect.
func ConnectAndWait(ctx context.Context, c *Controller) (netif.IPInfo, error) {
	ch := make(chan Event)
	done := make(chan struct{})
	defer close(done)

	sub := c.Subscribe(func(ev Event) {
		select {
		case ch <- ev:
		case <-done:
		}
	})
	defer sub.Close()

	if err := c.Connect(ctx); err != nil {
		return netif.IPInfo{}, err
	}

	for {
		select {
		case <-ctx.Done():
			return netif.IPInfo{}, ctx.Err()
		case ev := <-ch:
			switch e := ev.(type) {
			case ConnectionSucceeded:
				return e.IPInfo, nil
			case ConnectionFailed:
				return netif.IPInfo{}, ErrConnectionFailed
			case Disconnected:
				return netif.IPInfo{}, fmt.Errorf("%w: disconnected (%s)", ErrConnectionFailed, e.Reason)
			}
		}
	}
}

// WaitFor calls trigger and blocks until an event accepted by match is
// published, or ctx ends. The subscription is made before trigger runs.
func WaitFor(ctx context.Context, c *Controller, trigger func() error, match func(Event) bool) (Event, error) {
	ch := make(chan Event)
	done := make(chan struct{})
	defer close(done)

	sub := c.Subscribe(func(ev Event) {
		if !match(ev) {
			return
		}
		select {
		case ch <- ev:
		case <-done:
		}
	})
	defer sub.Close()

	if trigger != nil {
		if err := trigger(); err != nil {
			return nil, err
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev := <-ch:
		return ev, nil
	}
}

// IsTerminal reports whether ev ends a session.
func IsTerminal(ev Event) bool {
	switch ev.(type) {
	case ConnectionFailed, Disconnected:
		return true
	default:
		return false
	}
}

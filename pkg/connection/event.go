package connection

import (
	"fmt"

	"github.com/staconn/staconn-go/pkg/netif"
)

// TopicLifecycle is the bus topic lifecycle events are published on.
const TopicLifecycle = "connection.lifecycle"

// Event is a lifecycle event delivered to subscribers.
// It is one of ConnectionSucceeded, ConnectionFailed or Disconnected.
type Event interface {
	lifecycleEvent()
	fmt.Stringer
}

// ConnectionSucceeded is published on every primary address acquisition.
type ConnectionSucceeded struct {
	IPInfo netif.IPInfo
}

// ConnectionFailed is the terminal event of a session that never acquired
// a primary address.
type ConnectionFailed struct{}

// Disconnected is the terminal event of a session that was connected at least once.
type Disconnected struct {
	Reason DisconnectReason
}

// DisconnectReason tells whether the application asked for the disconnect.
type DisconnectReason uint8

const (
	// ReasonRequested indicates Disconnect was called.
	ReasonRequested DisconnectReason = iota

	// ReasonUnsolicited indicates the controller gave up: retries were
	// exhausted or reassociation failed.
	ReasonUnsolicited
)

// String returns the reason name.
func (r DisconnectReason) String() string {
	switch r {
	case ReasonRequested:
		return "REQUESTED"
	case ReasonUnsolicited:
		return "UNSOLICITED"
	default:
		return "UNKNOWN"
	}
}

func (ConnectionSucceeded) lifecycleEvent() {}
func (ConnectionFailed) lifecycleEvent()    {}
func (Disconnected) lifecycleEvent()        {}

func (e ConnectionSucceeded) String() string {
	return "CONNECTION_SUCCEEDED " + e.IPInfo.String()
}

func (ConnectionFailed) String() string {
	return "CONNECTION_FAILED"
}

func (e Disconnected) String() string {
	return "DISCONNECTED reason=" + e.Reason.String()
}

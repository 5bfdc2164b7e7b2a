package log

import (
	"time"
)

// Event is a single entry of a connection lifecycle trace.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one connect/disconnect cycle (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Interface is the station interface name, once created.
	Interface string `cbor:"3,keyasint,omitempty"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// SSID of the network the session targets.
	SSID string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Raw         *RawEvent         `cbor:"10,keyasint,omitempty"` // Adapter event
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"` // Controller phase
	Lifecycle   *LifecycleEvent   `cbor:"12,keyasint,omitempty"` // Published to the application
	Retry       *RetryEvent       `cbor:"13,keyasint,omitempty"` // Retry policy decision
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Layer indicates which part of the stack produced the event.
type Layer uint8

const (
	// LayerLink is the 802.11 association layer.
	LayerLink Layer = 0
	// LayerAddress is IP address configuration (DHCP, static, IPv6).
	LayerAddress Layer = 1
	// LayerController is the connection lifecycle controller.
	LayerController Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerLink:
		return "LINK"
	case LayerAddress:
		return "ADDRESS"
	case LayerController:
		return "CONTROLLER"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRaw indicates an event received from the network stack.
	CategoryRaw Category = 0
	// CategoryState indicates a controller phase change.
	CategoryState Category = 1
	// CategoryLifecycle indicates an event published to subscribers.
	CategoryLifecycle Category = 2
	// CategoryRetry indicates a retry policy decision.
	CategoryRetry Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRaw:
		return "RAW"
	case CategoryState:
		return "STATE"
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryRetry:
		return "RETRY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RawEvent captures an event delivered by the network stack.
type RawEvent struct {
	// Kind of raw event.
	Kind RawKind `cbor:"1,keyasint"`

	// Link fields.
	BSSID   string `cbor:"2,keyasint,omitempty"`
	Channel uint8  `cbor:"3,keyasint,omitempty"`

	// Reason is the 802.11 or stack disconnect reason code (link down only).
	Reason uint16 `cbor:"4,keyasint,omitempty"`

	// ReasonName is the symbolic reason name.
	ReasonName string `cbor:"5,keyasint,omitempty"`

	// Address fields, textual.
	Address string `cbor:"6,keyasint,omitempty"`
	Netmask string `cbor:"7,keyasint,omitempty"`
	Gateway string `cbor:"8,keyasint,omitempty"`

	// AddrType classifies IPv6 addresses.
	AddrType string `cbor:"9,keyasint,omitempty"`

	// Changed reports whether the primary address differs from the previous one.
	Changed bool `cbor:"10,keyasint,omitempty"`

	// Stale marks events discarded because they belong to an ended session.
	Stale bool `cbor:"11,keyasint,omitempty"`
}

// RawKind distinguishes raw stack events.
type RawKind uint8

const (
	// RawLinkUp indicates association completed.
	RawLinkUp RawKind = 0
	// RawLinkDown indicates the link was lost.
	RawLinkDown RawKind = 1
	// RawGotIP indicates a primary (IPv4) address was acquired.
	RawGotIP RawKind = 2
	// RawGotIP6 indicates a secondary (IPv6) address was acquired.
	RawGotIP6 RawKind = 3
)

// String returns the raw kind name.
func (k RawKind) String() string {
	switch k {
	case RawLinkUp:
		return "LINK_UP"
	case RawLinkDown:
		return "LINK_DOWN"
	case RawGotIP:
		return "GOT_IP"
	case RawGotIP6:
		return "GOT_IP6"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures controller phase transitions.
type StateChangeEvent struct {
	// OldState is the previous phase (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new phase.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// LifecycleEvent captures an event published to application subscribers.
type LifecycleEvent struct {
	// Kind of lifecycle event.
	Kind LifecycleKind `cbor:"1,keyasint"`

	// Address configuration (succeeded only).
	Address string `cbor:"2,keyasint,omitempty"`
	Netmask string `cbor:"3,keyasint,omitempty"`
	Gateway string `cbor:"4,keyasint,omitempty"`

	// Reason is REQUESTED or UNSOLICITED (disconnected only).
	Reason string `cbor:"5,keyasint,omitempty"`
}

// LifecycleKind distinguishes lifecycle events.
type LifecycleKind uint8

const (
	// LifecycleSucceeded indicates a primary address was acquired.
	LifecycleSucceeded LifecycleKind = 0
	// LifecycleFailed indicates a session ended without ever connecting.
	LifecycleFailed LifecycleKind = 1
	// LifecycleDisconnected indicates a connected session ended.
	LifecycleDisconnected LifecycleKind = 2
)

// String returns the lifecycle kind name.
func (k LifecycleKind) String() string {
	switch k {
	case LifecycleSucceeded:
		return "CONNECTION_SUCCEEDED"
	case LifecycleFailed:
		return "CONNECTION_FAILED"
	case LifecycleDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// RetryEvent captures what the retry policy decided for a link loss.
type RetryEvent struct {
	// Action taken.
	Action RetryAction `cbor:"1,keyasint"`

	// Attempt is the retry counter after the decision.
	Attempt int `cbor:"2,keyasint"`

	// MaxRetries is the configured ceiling.
	MaxRetries int `cbor:"3,keyasint"`

	// Reason is the disconnect reason code that triggered the decision.
	Reason uint16 `cbor:"4,keyasint,omitempty"`

	// Delay before the reattempt (zero for immediate).
	Delay time.Duration `cbor:"5,keyasint,omitempty"`
}

// RetryAction indicates the retry policy outcome.
type RetryAction uint8

const (
	// RetryReattempt indicates association is requested again.
	RetryReattempt RetryAction = 0
	// RetrySuppressed indicates a roaming hop left to the stack.
	RetrySuppressed RetryAction = 1
	// RetryExhausted indicates the ceiling was reached and the session is torn down.
	RetryExhausted RetryAction = 2
)

// String returns the retry action name.
func (a RetryAction) String() string {
	switch a {
	case RetryReattempt:
		return "REATTEMPT"
	case RetrySuppressed:
		return "SUPPRESSED"
	case RetryExhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`

	// Fatal marks errors that ended the session.
	Fatal bool `cbor:"4,keyasint,omitempty"`
}

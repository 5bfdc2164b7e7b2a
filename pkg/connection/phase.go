package connection

// Phase is the controller lifecycle phase.
type Phase uint8

const (
	// PhaseIdle indicates no session: no interface, no raw subscription.
	PhaseIdle Phase = iota

	// PhaseConnecting indicates association or address acquisition is in progress.
	PhaseConnecting

	// PhaseConnected indicates a primary address has been acquired.
	PhaseConnected

	// PhaseDisconnecting indicates teardown is running.
	PhaseDisconnecting
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseConnecting:
		return "CONNECTING"
	case PhaseConnected:
		return "CONNECTED"
	case PhaseDisconnecting:
		return "DISCONNECTING"
	default:
		return "UNKNOWN"
	}
}

// Active reports whether a session is running.
func (p Phase) Active() bool {
	return p == PhaseConnecting || p == PhaseConnected
}

package log

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Outcome is how a session ended, taken from its first terminal lifecycle
// event.
type Outcome uint8

const (
	// OutcomeOpen means the trace holds no terminal event for the session.
	OutcomeOpen Outcome = iota
	// OutcomeFailed means the session never acquired an address.
	OutcomeFailed
	// OutcomeRequested means a connected session was ended by the application.
	OutcomeRequested
	// OutcomeUnsolicited means a connected session was lost.
	OutcomeUnsolicited
)

var outcomeNames = []string{
	OutcomeOpen:        "OPEN",
	OutcomeFailed:      "FAILED",
	OutcomeRequested:   "REQUESTED",
	OutcomeUnsolicited: "UNSOLICITED",
}

// String returns the outcome name.
func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "UNKNOWN"
}

// ParseOutcome parses an outcome name, case-insensitively.
func ParseOutcome(s string) (Outcome, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range outcomeNames {
		if name == upper {
			return Outcome(i), nil
		}
	}
	return OutcomeOpen, fmt.Errorf("unknown outcome %q (use open, failed, requested, unsolicited)", s)
}

// TerminalOutcome reports the outcome event ends its session with, if it is
// a terminal lifecycle event.
func TerminalOutcome(event Event) (Outcome, bool) {
	if event.Lifecycle == nil {
		return OutcomeOpen, false
	}
	switch event.Lifecycle.Kind {
	case LifecycleFailed:
		return OutcomeFailed, true
	case LifecycleDisconnected:
		if event.Lifecycle.Reason == "REQUESTED" {
			return OutcomeRequested, true
		}
		return OutcomeUnsolicited, true
	default:
		return OutcomeOpen, false
	}
}

// DisconnectReason returns the reason code carried by a link loss or a retry
// decision.
func DisconnectReason(event Event) (uint16, bool) {
	switch {
	case event.Raw != nil && event.Raw.Kind == RawLinkDown:
		return event.Raw.Reason, true
	case event.Retry != nil:
		return event.Retry.Reason, true
	default:
		return 0, false
	}
}

// SessionOutcomes reads the trace at path and reports how every session in
// it ended. A disconnect issued while idle is traced under the previous
// session; only the first terminal event counts.
func SessionOutcomes(path string) (map[string]Outcome, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	outcomes := make(map[string]Outcome)
	ended := make(map[string]bool)
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return outcomes, nil
		}
		if err != nil {
			return nil, err
		}
		if _, seen := outcomes[event.SessionID]; !seen {
			outcomes[event.SessionID] = OutcomeOpen
		}
		if ended[event.SessionID] {
			continue
		}
		if o, ok := TerminalOutcome(event); ok {
			outcomes[event.SessionID] = o
			ended[event.SessionID] = true
		}
	}
}

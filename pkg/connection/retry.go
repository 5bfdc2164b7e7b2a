package connection

import (
	"github.com/staconn/staconn-go/pkg/netif"
)

// DefaultMaxRetries is the retry ceiling used when none is configured.
const DefaultMaxRetries = 5

// RoamingPolicy selects what a roaming hop does to the retry counter.
type RoamingPolicy uint8

const (
	// RoamingKeepCount leaves the counter untouched, so a failure right after
	// a hop continues from the pre-hop count.
	RoamingKeepCount RoamingPolicy = iota

	// RoamingResetCount clears the counter on a hop.
	RoamingResetCount
)

// String returns the policy name.
func (p RoamingPolicy) String() string {
	switch p {
	case RoamingKeepCount:
		return "keep"
	case RoamingResetCount:
		return "reset"
	default:
		return "unknown"
	}
}

// RetryPolicy decides what happens after an unsolicited link loss.
type RetryPolicy struct {
	// MaxRetries is the number of consecutive reattempts allowed since the
	// last primary address acquisition. Zero gives up on the first loss.
	MaxRetries int

	// Roaming selects the counter behaviour for roaming hops.
	Roaming RoamingPolicy

	// Backoff spaces reattempts. Nil reattempts immediately.
	Backoff *BackoffConfig
}

// DefaultRetryPolicy returns DefaultMaxRetries immediate reattempts,
// keeping the counter across roaming hops.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultMaxRetries}
}

type retryAction uint8

const (
	actionSuppress retryAction = iota
	actionReattempt
	actionGiveUp
)

// decide applies the policy to a link loss seen with count consecutive
// failures. It returns the action and the updated count.
func (p RetryPolicy) decide(count int, reason netif.DisconnectReason) (retryAction, int) {
	if reason.IsRoaming() {
		if p.Roaming == RoamingResetCount {
			count = 0
		}
		return actionSuppress, count
	}
	if count < p.MaxRetries {
		return actionReattempt, count + 1
	}
	return actionGiveUp, count
}

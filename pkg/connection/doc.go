// Package connection manages the lifecycle of a station-mode Wi-Fi connection.
//
// A Controller drives a netif.Adapter through connect, bounded recovery from
// link loss, and teardown, and reports the outcome as lifecycle events:
//
//   - ConnectionSucceeded on every primary (IPv4) address acquisition
//   - ConnectionFailed when a session ends without ever connecting
//   - Disconnected{ReasonRequested|ReasonUnsolicited} when a connected session ends
//
// # States
//
//	IDLE --Connect--> CONNECTING --got ip--> CONNECTED
//	                    ^    |                   |
//	                    +----+---link lost-------+
//	                         |
//	   retries exhausted or Disconnect
//	                         v
//	                   DISCONNECTING --> IDLE
//
// # Retry Policy
//
// Each unsolicited link loss is counted. While the count is below
// RetryPolicy.MaxRetries the controller requests association once more;
// the next loss after that tears the session down. A primary address resets
// the count. Roaming hops (netif.ReasonRoaming) are never counted and never
// reattempted since the stack reassociates on its own; RetryPolicy.Roaming
// selects whether a hop clears the count.
//
// Reattempts are immediate unless RetryPolicy.Backoff is set, in which case
// they are spaced with exponential backoff and jitter:
//
//	actual_delay = base_delay + random(0, base_delay * jitter)
//
// # Ordering
//
// Raw events are handled on the adapter's delivery goroutine under the
// controller lock. Lifecycle events are queued in generation order and
// published by a single goroutine, so a slow subscriber never stalls the
// state machine and no event is dropped.
package connection

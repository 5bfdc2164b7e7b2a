// Package events provides ordered, lossless event delivery for staconn.
//
// Two building blocks are provided:
//
//   - Bus: a topic based fan-out built on github.com/cskr/pubsub. Publish blocks
//     until the message has been accepted; nothing is dropped.
//   - Outbox: an unbounded FIFO drained by a single goroutine. Producers that
//     hold locks (state machines, driver callbacks) push into an Outbox and never
//     block; the Outbox forwards to a Bus in push order.
//
// # Subscriptions
//
// Subscribe returns a *Subscription handle. Each subscription drains the bus
// into its own unbounded queue and runs the handler on the queue goroutine, so
// messages for one subscriber arrive in publish order and a slow handler
// delays neither the bus nor other subscribers.
//
//	sub := events.Subscribe(bus, "lifecycle", func(ev connection.Event) {
//	    fmt.Println(ev)
//	})
//	defer sub.Close()
//
// Subscribe and Close may both be called from inside a handler. After Close
// returns no further message is handed to the handler.
package events
